package classify

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/skillscan/internal/types"
)

// Bullet is the glyph that opens resource and bullet lines.
const Bullet = "•"

// KeyTopicsLabel is the inline label recognized by the key-topics rule.
const KeyTopicsLabel = "Key Topics"

// sectionLabels are the bare markers that stand alone on a line.
var sectionLabels = []string{"Resources:", "Daily Practice:"}

var (
	headingPattern  = regexp.MustCompile(`^##\s+`)
	weekPattern     = regexp.MustCompile(`(?i)week (\d+):`)
	numberedPattern = regexp.MustCompile(`^(\d+)\.`)
)

// resourceMarker ties a resource kind to the keyword spellings that select it.
// Book and Website only count when the colon follows the keyword directly.
type resourceMarker struct {
	kind          types.ResourceKind
	pattern       *regexp.Regexp
	colonRequired bool
}

// resourceMarkers are tested in order; the first kind whose marker appears
// anywhere in the line wins.
var resourceMarkers = []resourceMarker{
	newResourceMarker(types.ResourceBook, true, "Book"),
	newResourceMarker(types.ResourceWebsite, true, "Website"),
	newResourceMarker(types.ResourceLeetCode, false, "LeetCode", "Leetcode"),
	newResourceMarker(types.ResourceHackerRank, false, "HackerRank"),
	newResourceMarker(types.ResourcePractice, false, "Practice"),
	newResourceMarker(types.ResourceConduct, false, "Conduct"),
	newResourceMarker(types.ResourceArticle, false, "Article"),
}

func newResourceMarker(kind types.ResourceKind, colonRequired bool, spellings ...string) resourceMarker {
	words := make([]string, 0, len(spellings))
	for _, w := range spellings {
		words = append(words, regexp.QuoteMeta(w))
	}
	expr := regexp.QuoteMeta(Bullet) + `\s*(?:` + strings.Join(words, "|") + `)`
	return resourceMarker{kind: kind, pattern: regexp.MustCompile(expr), colonRequired: colonRequired}
}

// find returns the byte range of the first complete marker in line,
// including a colon directly after the keyword.
func (m resourceMarker) find(line string) (start, end int, ok bool) {
	for _, loc := range m.pattern.FindAllStringIndex(line, -1) {
		stop := loc[1]
		if strings.HasPrefix(line[stop:], ":") {
			return loc[0], stop + 1, true
		}
		if m.colonRequired || !wordEnds(line, stop) {
			continue
		}
		return loc[0], stop, true
	}
	return 0, 0, false
}

// wordEnds reports whether no letter, digit or underscore follows offset i.
// RE2's \b only knows ASCII, so "Booké" would otherwise match "Book".
func wordEnds(line string, i int) bool {
	if i >= len(line) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(line[i:])
	return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
}

// Rule classifies a single line. Match reports false when the rule does not
// apply, letting the next rule in the table try.
type Rule interface {
	Name() string
	Match(line string) (types.Block, bool)
}

// RuleFunc adapts a plain function into a Rule.
type RuleFunc struct {
	RuleName string
	Fn       func(line string) (types.Block, bool)
}

// Name returns the rule name.
func (r RuleFunc) Name() string { return r.RuleName }

// Match runs the wrapped function.
func (r RuleFunc) Match(line string) (types.Block, bool) { return r.Fn(line) }

// DefaultRules returns the line rules in priority order. Rules overlap, so
// the order decides ambiguous lines: "Week 3: • Book: X" is a week header.
func DefaultRules() []Rule {
	return []Rule{
		RuleFunc{"heading", matchHeading},
		RuleFunc{"week_header", matchWeekHeader},
		RuleFunc{"key_topics", matchKeyTopics},
		RuleFunc{"section_label", matchSectionLabel},
		RuleFunc{"resource_item", matchResourceItem},
		RuleFunc{"bullet_item", matchBulletItem},
		RuleFunc{"numbered_item", matchNumberedItem},
		RuleFunc{"blank", matchBlank},
	}
}

func matchHeading(line string) (types.Block, bool) {
	loc := headingPattern.FindStringIndex(line)
	if loc == nil {
		return types.Block{}, false
	}
	return types.Heading(strings.TrimSpace(line[loc[1]:])), true
}

func matchWeekHeader(line string) (types.Block, bool) {
	m := weekPattern.FindStringSubmatch(line)
	if m == nil {
		return types.Block{}, false
	}
	return types.WeekHeader(parseCount(m[1]), afterFirstColon(line)), true
}

func matchKeyTopics(line string) (types.Block, bool) {
	if !strings.Contains(line, KeyTopicsLabel+":") {
		return types.Block{}, false
	}
	return types.LabeledField(KeyTopicsLabel, afterFirstColon(line)), true
}

func matchSectionLabel(line string) (types.Block, bool) {
	trimmed := strings.TrimSpace(line)
	for _, label := range sectionLabels {
		if trimmed == label {
			return types.SectionLabel(strings.TrimSuffix(label, ":")), true
		}
	}
	return types.Block{}, false
}

func matchResourceItem(line string) (types.Block, bool) {
	for _, marker := range resourceMarkers {
		start, end, ok := marker.find(line)
		if !ok {
			continue
		}
		// only the marker is cut; text on either side of it stays
		return types.ResourceItem(marker.kind, strings.TrimSpace(line[:start]+line[end:])), true
	}
	return types.Block{}, false
}

func matchBulletItem(line string) (types.Block, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, Bullet) {
		return types.Block{}, false
	}
	return types.BulletItem(strings.TrimSpace(strings.TrimPrefix(trimmed, Bullet))), true
}

func matchNumberedItem(line string) (types.Block, bool) {
	trimmed := strings.TrimSpace(line)
	m := numberedPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return types.Block{}, false
	}
	// everything after the first period, so "1. Use fmt.Println" keeps its dot
	return types.NumberedItem(parseCount(m[1]), strings.TrimSpace(trimmed[len(m[0]):])), true
}

func matchBlank(line string) (types.Block, bool) {
	if strings.TrimSpace(line) != "" {
		return types.Block{}, false
	}
	return types.Blank(), true
}

// afterFirstColon returns the trimmed text following the first colon, or ""
// when the colon ends the line.
func afterFirstColon(line string) string {
	_, rest, found := strings.Cut(line, ":")
	if !found {
		return ""
	}
	return strings.TrimSpace(rest)
}

// parseCount parses a run of ASCII digits, saturating at math.MaxInt.
func parseCount(digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return math.MaxInt
	}
	return n
}
