// Package classify turns generated study plans and analysis reports into an
// ordered sequence of typed presentation blocks, one block per input line.
package classify

import (
	"strings"

	"github.com/jonathan/skillscan/internal/types"
)

// Classifier applies an ordered rule table to each line of a document.
// A Classifier holds no mutable state and is safe for concurrent use.
type Classifier struct {
	rules []Rule
}

// New creates a classifier over the given rules. With no rules it uses
// DefaultRules.
func New(rules ...Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

var defaultClassifier = New()

// Classify splits document on "\n" and classifies every line with the
// default rules. Empty input yields no blocks; a trailing newline yields a
// trailing blank block.
func Classify(document string) []types.Block {
	return defaultClassifier.Classify(document)
}

// Classify splits document on "\n" and returns exactly one block per line,
// in input order.
func (c *Classifier) Classify(document string) []types.Block {
	if document == "" {
		return []types.Block{}
	}
	lines := strings.Split(document, "\n")
	blocks := make([]types.Block, len(lines))
	for i, line := range lines {
		blocks[i] = c.Line(line)
	}
	return blocks
}

// Line classifies one line: the first matching rule wins, and a line no
// rule accepts becomes a verbatim paragraph.
func (c *Classifier) Line(line string) types.Block {
	block, _ := c.explain(line)
	return block
}

// Explain reports which rule classified each line, for debugging rule order.
// Lines that fell through every rule report "paragraph".
func (c *Classifier) Explain(document string) []string {
	if document == "" {
		return []string{}
	}
	lines := strings.Split(document, "\n")
	names := make([]string, len(lines))
	for i, line := range lines {
		_, names[i] = c.explain(line)
	}
	return names
}

func (c *Classifier) explain(line string) (types.Block, string) {
	for _, r := range c.rules {
		if block, ok := r.Match(line); ok {
			return block, r.Name()
		}
	}
	return types.Paragraph(line), "paragraph"
}

// ClassifyDocument classifies a checked raw document.
func ClassifyDocument(doc types.RawDocument) []types.Block {
	return Classify(doc.String())
}

// ClassifyBytes validates raw bytes and classifies them. It fails only with
// *types.InvalidInputError, when data is nil or not UTF-8.
func ClassifyBytes(data []byte) ([]types.Block, error) {
	doc, err := types.NewRawDocument(data)
	if err != nil {
		return nil, err
	}
	return ClassifyDocument(doc), nil
}
