package quizgen

import "fmt"

const quizPromptTemplate = `You are an expert quiz creator. Create a comprehensive quiz based on the following Wikipedia article.

Article Title: %s

Article Content:
%s

Requirements:
1. Create %d multiple-choice questions
2. Each question must have EXACTLY 4 options
3. Questions should cover different aspects of the article
4. Include a mix of difficulty levels: easy (2-3 questions), medium (3-4 questions), hard (2-3 questions)
5. Ensure all questions and answers are factually accurate based ONLY on the article content
6. DO NOT make up information not present in the article
7. Each question must have a brief explanation

Also suggest 5-7 related Wikipedia topics for further reading.

Return your response in the following JSON format ONLY (no markdown, no extra text):
{
  "questions": [
    {
      "question": "Question text here?",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "answer": "The correct option text",
      "difficulty": "easy",
      "explanation": "Brief explanation of why this is correct"
    }
  ],
  "related_topics": ["Topic 1", "Topic 2", "Topic 3", "Topic 4", "Topic 5"]
}

Make sure each question is clear, unambiguous, and tests understanding of the article content.
IMPORTANT: Return ONLY the JSON object, no other text before or after.
`

// BuildPrompt renders the quiz instructions for one article. The output depends only on its arguments.
func BuildPrompt(title, content string, numQuestions int) string {
	return fmt.Sprintf(quizPromptTemplate, title, content, numQuestions)
}

// ClampQuestionCount bounds n to [lo, hi].
func ClampQuestionCount(n, lo, hi int) int {
	return max(lo, min(hi, n))
}
