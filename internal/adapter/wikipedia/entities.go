package wikipedia

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"wiki-quiz/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxEntityLinks      = 100
	maxEntitiesPerKind  = 5
	minEntityTextLength = 3
	maxEntityTextLength = 50
	minPersonNameWords  = 2
	maxPersonNameWords  = 4
	entityContainer     = "div.mw-parser-output"
	internalLinkPrefix  = "/wiki/"
)

var (
	namespaceMarkers = []string{"Wikipedia:", "Help:", "Category:", "File:", "Template:", "Portal:"}

	organizationKeywords = []string{"University", "Institute", "Company", "Organization", "Corporation", "Association"}
	locationKeywords     = []string{"United States", "Kingdom", "City", "Country", "State"}
)

type entityKind int

const (
	entityNone entityKind = iota
	entityPerson
	entityOrganization
	entityLocation
)

// extractEntities classifies internal link texts with keyword and capitalization heuristics.
// It is deliberately naive; misclassification is expected.
func extractEntities(doc *goquery.Document) domain.Entities {
	entities := domain.NewEntities()

	content := doc.Find(entityContainer).First()
	if content.Length() == 0 {
		return entities
	}

	links := content.Find("a").FilterFunction(func(_ int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		return ok && strings.HasPrefix(href, internalLinkPrefix)
	})

	seen := make(map[string]struct{})
	links.Slice(0, min(links.Length(), maxEntityLinks)).Each(func(_ int, a *goquery.Selection) {
		text := strings.TrimSpace(a.Text())
		href, _ := a.Attr("href")

		n := utf8.RuneCountInString(text)
		if n < minEntityTextLength || n > maxEntityTextLength || isAllDigits(text) {
			return
		}
		if containsAny(href, namespaceMarkers) {
			return
		}
		if _, dup := seen[text]; dup {
			return
		}
		seen[text] = struct{}{}

		switch classifyEntity(text) {
		case entityOrganization:
			entities.Organizations = appendCapped(entities.Organizations, text)
		case entityLocation:
			entities.Locations = appendCapped(entities.Locations, text)
		case entityPerson:
			entities.People = appendCapped(entities.People, text)
		}
	})

	return entities
}

func classifyEntity(text string) entityKind {
	switch {
	case containsAny(text, organizationKeywords):
		return entityOrganization
	case containsAny(text, locationKeywords):
		return entityLocation
	case looksLikePersonName(text):
		return entityPerson
	default:
		return entityNone
	}
}

func looksLikePersonName(text string) bool {
	words := strings.Fields(text)
	if len(words) < minPersonNameWords || len(words) > maxPersonNameWords {
		return false
	}
	for _, w := range words {
		r, _ := utf8.DecodeRuneInString(w)
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func appendCapped(list []string, text string) []string {
	if len(list) >= maxEntitiesPerKind {
		return list
	}
	return append(list, text)
}

func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
