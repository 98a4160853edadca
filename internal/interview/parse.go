// Package interview scrapes role-specific interview question banks.
package interview

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/skillscan/internal/fetch"
	"github.com/jonathan/skillscan/internal/types"
)

// DefaultLimit is the most question/answer pairs returned for a page.
const DefaultLimit = 20

// NoAnswer is the answer recorded for a question without a following paragraph.
const NoAnswer = "No answer available."

const minQuestionLength = 10

// Parse extracts question/answer pairs from a question bank page. Every h3
// whose text contains "?" or is longer than ten characters is a question;
// its answer is the next sibling paragraph, converted to Markdown. At most
// limit pairs are returned; a non-positive limit uses DefaultLimit.
func Parse(html string, limit int) ([]types.QuestionAnswer, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	pairs := make([]types.QuestionAnswer, 0, limit)
	doc.Find("h3").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
		question := strings.TrimSpace(heading.Text())
		if !strings.Contains(question, "?") && utf8.RuneCountInString(question) <= minQuestionLength {
			return true
		}

		pairs = append(pairs, types.QuestionAnswer{
			Question: question,
			Answer:   answerFor(heading),
		})
		return len(pairs) < limit
	})

	return pairs, nil
}

func answerFor(heading *goquery.Selection) string {
	paragraph := heading.NextAllFiltered("p").First()
	if paragraph.Length() == 0 {
		return NoAnswer
	}

	fragment, err := goquery.OuterHtml(paragraph)
	if err == nil {
		if markdown, err := fetch.ToMarkdown(fragment); err == nil && markdown != "" {
			return markdown
		}
	}
	if text := strings.TrimSpace(paragraph.Text()); text != "" {
		return text
	}
	return NoAnswer
}
