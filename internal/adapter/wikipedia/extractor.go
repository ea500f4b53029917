package wikipedia

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const (
	UnknownTitle = "Unknown Title"

	maxSummaryLength      = 500
	minSummaryParagraph   = 100
	maxBodyLength         = 8000
	bodySoftCapLength     = 6000
	maxBodyParagraphs     = 20
	minBodyParagraph      = 20
	minRawFallbackLength  = 500
	maxSections           = 10
	coordinatesPrefix     = "Coordinates:"
	documentTitleSuffix   = " - Wikipedia"
	primaryHeadingByClass = "h1.firstHeading"
	primaryHeadingByID    = "h1#firstHeading"
)

var (
	citationPattern   = regexp.MustCompile(`\[\d+\]`)
	whitespacePattern = regexp.MustCompile(`[\s\p{Z}\v]+`)

	// Tried in order when locating the summary paragraph.
	summaryContainers = []string{"div.mw-parser-output", "div#mw-content-text"}
	// Tried in order when collecting body paragraphs.
	bodyContainers = []string{"div#mw-content-text", "div.mw-parser-output", "div#bodyContent"}

	skippedSections = map[string]struct{}{
		"Contents":       {},
		"References":     {},
		"External links": {},
		"See also":       {},
		"Notes":          {},
		"Bibliography":   {},
	}
)

// titleStrategy locates the article title, returning "" when it finds nothing.
type titleStrategy func(doc *goquery.Document) string

var titleStrategies = []titleStrategy{
	titleFromPrimaryHeadingClass,
	titleFromPrimaryHeadingID,
	titleFromDocumentTitle,
}

// Extractor implements domain.ArticleExtractor with goquery.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract never fails: fields it cannot locate come back empty (or UnknownTitle for the title).
func (e *Extractor) Extract(url, rawMarkup string) domain.ExtractedArticle {
	article := domain.ExtractedArticle{
		URL:      url,
		Title:    UnknownTitle,
		Sections: []string{},
		Entities: domain.NewEntities(),
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawMarkup))
	if err != nil {
		logger.Get().Warn("Failed to parse article markup", zap.String("url", url), zap.Error(err))
		return article
	}

	article.Title = extractTitle(doc)
	article.Summary = extractSummary(doc)
	article.Body = extractBody(doc)
	article.Sections = extractSections(doc)
	article.Entities = extractEntities(doc)
	return article
}

func extractTitle(doc *goquery.Document) string {
	for _, strategy := range titleStrategies {
		if title := strategy(doc); title != "" {
			return title
		}
	}
	return UnknownTitle
}

func titleFromPrimaryHeadingClass(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find(primaryHeadingByClass).First().Text())
}

func titleFromPrimaryHeadingID(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find(primaryHeadingByID).First().Text())
}

func titleFromDocumentTitle(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	return strings.TrimSpace(strings.TrimSuffix(title, documentTitleSuffix))
}

// findContainer returns the first element matched by the first selector that matches anything.
func findContainer(doc *goquery.Document, selectors []string) *goquery.Selection {
	for _, selector := range selectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel
		}
	}
	return nil
}

func extractSummary(doc *goquery.Document) string {
	container := findContainer(doc, summaryContainers)
	if container == nil {
		return ""
	}

	summary := ""
	container.ChildrenFiltered("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := strings.TrimSpace(p.Text())
		if utf8.RuneCountInString(text) > minSummaryParagraph && !strings.HasPrefix(text, coordinatesPrefix) {
			summary = truncateRunes(stripCitations(text), maxSummaryLength)
			return false
		}
		return true
	})
	return summary
}

func extractBody(doc *goquery.Document) string {
	container := findContainer(doc, bodyContainers)
	if container == nil {
		return ""
	}

	paragraphs := container.Find("p")
	if paragraphs.Length() == 0 {
		return rawTextFallback(container)
	}

	var parts []string
	total := 0
	paragraphs.EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := strings.TrimSpace(p.Text())
		n := utf8.RuneCountInString(text)
		if n == 0 || n < minBodyParagraph || strings.HasPrefix(text, coordinatesPrefix) {
			return true
		}
		parts = append(parts, text)
		total += n
		return len(parts) < maxBodyParagraphs && total <= bodySoftCapLength
	})

	if len(parts) == 0 {
		return ""
	}

	body := stripCitations(strings.Join(parts, " "))
	body = strings.TrimSpace(collapseWhitespace(body))
	return truncateRunes(body, maxBodyLength)
}

// rawTextFallback is used when the content container holds no paragraphs at all.
func rawTextFallback(container *goquery.Selection) string {
	text := container.Text()
	if utf8.RuneCountInString(text) <= minRawFallbackLength {
		return ""
	}
	return truncateRunes(strings.TrimSpace(collapseWhitespace(text)), maxBodyLength)
}

func extractSections(doc *goquery.Document) []string {
	sections := []string{}
	doc.Find("h2, h3").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
		label := heading.Find("span.mw-headline").First()
		if label.Length() == 0 {
			return true
		}
		text := strings.TrimSpace(label.Text())
		if _, skip := skippedSections[text]; skip {
			return true
		}
		sections = append(sections, text)
		return len(sections) < maxSections
	})
	return sections
}

func stripCitations(s string) string {
	return citationPattern.ReplaceAllString(s, "")
}

func collapseWhitespace(s string) string {
	return whitespacePattern.ReplaceAllString(s, " ")
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}

var _ domain.ArticleExtractor = (*Extractor)(nil)
