// Package types provides type definitions for structured data used throughout the skillscan system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
)

// BlockKind identifies which variant a Block holds
type BlockKind string

// Block kinds, one per line shape the classifier recognizes
const (
	KindHeading      BlockKind = "heading"
	KindWeekHeader   BlockKind = "week_header"
	KindLabeledField BlockKind = "labeled_field"
	KindSectionLabel BlockKind = "section_label"
	KindResourceItem BlockKind = "resource_item"
	KindBulletItem   BlockKind = "bullet_item"
	KindNumberedItem BlockKind = "numbered_item"
	KindBlank        BlockKind = "blank"
	KindParagraph    BlockKind = "paragraph"
)

// ResourceKind is the category of a bulleted resource line
type ResourceKind string

// Recognized resource categories
const (
	ResourceBook       ResourceKind = "Book"
	ResourceWebsite    ResourceKind = "Website"
	ResourceLeetCode   ResourceKind = "LeetCode"
	ResourceHackerRank ResourceKind = "HackerRank"
	ResourcePractice   ResourceKind = "Practice"
	ResourceConduct    ResourceKind = "Conduct"
	ResourceArticle    ResourceKind = "Article"
)

// ResourceKinds lists every resource category in classification order.
func ResourceKinds() []ResourceKind {
	return []ResourceKind{
		ResourceBook,
		ResourceWebsite,
		ResourceLeetCode,
		ResourceHackerRank,
		ResourcePractice,
		ResourceConduct,
		ResourceArticle,
	}
}

// Block is one classified line of a document. Only the fields belonging to
// Kind are meaningful; the rest stay at their zero values.
type Block struct {
	Kind BlockKind

	// Text is set for headings, section labels and paragraphs
	Text string
	// WeekNumber and Title are set for week headers
	WeekNumber int
	Title      string
	// Label is set for labeled fields
	Label string
	// Resource is set for resource items
	Resource ResourceKind
	// Index is set for numbered items
	Index int
	// Content is set for labeled fields, resource items, bullets and numbered items
	Content string
}

// Heading creates a top-level section title block.
func Heading(text string) Block {
	return Block{Kind: KindHeading, Text: text}
}

// WeekHeader creates a recurring sub-section marker block.
func WeekHeader(weekNumber int, title string) Block {
	return Block{Kind: KindWeekHeader, WeekNumber: weekNumber, Title: title}
}

// LabeledField creates a "Label: value" block.
func LabeledField(label, content string) Block {
	return Block{Kind: KindLabeledField, Label: label, Content: content}
}

// SectionLabel creates a bare section marker block.
func SectionLabel(text string) Block {
	return Block{Kind: KindSectionLabel, Text: text}
}

// ResourceItem creates a bulleted resource block.
func ResourceItem(kind ResourceKind, content string) Block {
	return Block{Kind: KindResourceItem, Resource: kind, Content: content}
}

// BulletItem creates a generic bullet block.
func BulletItem(content string) Block {
	return Block{Kind: KindBulletItem, Content: content}
}

// NumberedItem creates an enumerated line block.
func NumberedItem(index int, content string) Block {
	return Block{Kind: KindNumberedItem, Index: index, Content: content}
}

// Blank creates an empty-line block.
func Blank() Block {
	return Block{Kind: KindBlank}
}

// Paragraph creates the fallback block for unrecognized lines.
func Paragraph(text string) Block {
	return Block{Kind: KindParagraph, Text: text}
}

// blockJSON is the wire shape of a Block. Pointers keep fields of other
// variants out of the output while still emitting legitimate zero values
// such as "0. intro" numbered items.
type blockJSON struct {
	Kind       BlockKind    `json:"kind"`
	Text       *string      `json:"text,omitempty"`
	WeekNumber *int         `json:"week_number,omitempty"`
	Title      *string      `json:"title,omitempty"`
	Label      *string      `json:"label,omitempty"`
	Resource   ResourceKind `json:"resource_kind,omitempty"`
	Index      *int         `json:"index,omitempty"`
	Content    *string      `json:"content,omitempty"`
}

// MarshalJSON emits only the fields that belong to the block's kind.
func (b Block) MarshalJSON() ([]byte, error) {
	w := blockJSON{Kind: b.Kind}
	switch b.Kind {
	case KindHeading, KindSectionLabel, KindParagraph:
		w.Text = &b.Text
	case KindWeekHeader:
		w.WeekNumber = &b.WeekNumber
		w.Title = &b.Title
	case KindLabeledField:
		w.Label = &b.Label
		w.Content = &b.Content
	case KindResourceItem:
		w.Resource = b.Resource
		w.Content = &b.Content
	case KindBulletItem:
		w.Content = &b.Content
	case KindNumberedItem:
		w.Index = &b.Index
		w.Content = &b.Content
	case KindBlank:
	default:
		return nil, fmt.Errorf("unknown block kind %q", b.Kind)
	}
	return json.Marshal(w)
}

// UnmarshalJSON reads the wire shape produced by MarshalJSON.
func (b *Block) UnmarshalJSON(data []byte) error {
	var w blockJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*b = Block{Kind: w.Kind, Resource: w.Resource}
	if w.Text != nil {
		b.Text = *w.Text
	}
	if w.WeekNumber != nil {
		b.WeekNumber = *w.WeekNumber
	}
	if w.Title != nil {
		b.Title = *w.Title
	}
	if w.Label != nil {
		b.Label = *w.Label
	}
	if w.Index != nil {
		b.Index = *w.Index
	}
	if w.Content != nil {
		b.Content = *w.Content
	}
	return nil
}

// String returns a compact debug representation of the block.
func (b Block) String() string {
	switch b.Kind {
	case KindHeading:
		return fmt.Sprintf("Heading{%q}", b.Text)
	case KindWeekHeader:
		return fmt.Sprintf("WeekHeader{%d, %q}", b.WeekNumber, b.Title)
	case KindLabeledField:
		return fmt.Sprintf("LabeledField{%q, %q}", b.Label, b.Content)
	case KindSectionLabel:
		return fmt.Sprintf("SectionLabel{%q}", b.Text)
	case KindResourceItem:
		return fmt.Sprintf("ResourceItem{%s, %q}", b.Resource, b.Content)
	case KindBulletItem:
		return fmt.Sprintf("BulletItem{%q}", b.Content)
	case KindNumberedItem:
		return fmt.Sprintf("NumberedItem{%d, %q}", b.Index, b.Content)
	case KindBlank:
		return "Blank"
	case KindParagraph:
		return fmt.Sprintf("Paragraph{%q}", b.Text)
	default:
		return fmt.Sprintf("Block{%q}", b.Kind)
	}
}
