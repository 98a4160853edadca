package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlock_MarshalJSON_OnlyKindFields(t *testing.T) {
	tests := []struct {
		name  string
		block Block
		want  string
	}{
		{"heading", Heading("Plan"), `{"kind":"heading","text":"Plan"}`},
		{"week header", WeekHeader(2, "Trees"), `{"kind":"week_header","week_number":2,"title":"Trees"}`},
		{"labeled field", LabeledField("Key Topics", "Heaps"), `{"kind":"labeled_field","label":"Key Topics","content":"Heaps"}`},
		{"section label", SectionLabel("Resources"), `{"kind":"section_label","text":"Resources"}`},
		{"resource", ResourceItem(ResourceLeetCode, "Top 75"), `{"kind":"resource_item","resource_kind":"LeetCode","content":"Top 75"}`},
		{"bullet", BulletItem(""), `{"kind":"bullet_item","content":""}`},
		{"numbered zero index", NumberedItem(0, "intro"), `{"kind":"numbered_item","index":0,"content":"intro"}`},
		{"blank", Blank(), `{"kind":"blank"}`},
		{"paragraph", Paragraph("  hi "), `{"kind":"paragraph","text":"  hi "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.block)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestBlock_MarshalJSON_UnknownKind(t *testing.T) {
	_, err := json.Marshal(Block{Kind: "table"})
	assert.Error(t, err)
}

func TestBlock_UnmarshalJSON(t *testing.T) {
	var blocks []Block
	err := json.Unmarshal([]byte(`[
		{"kind":"week_header","week_number":3,"title":"Graphs"},
		{"kind":"numbered_item","index":0,"content":"intro"},
		{"kind":"blank"}
	]`), &blocks)
	require.NoError(t, err)

	assert.Equal(t, []Block{WeekHeader(3, "Graphs"), NumberedItem(0, "intro"), Blank()}, blocks)
}

func TestBlock_String(t *testing.T) {
	assert.Equal(t, `WeekHeader{2, "• Book: Clean Code"}`, WeekHeader(2, "• Book: Clean Code").String())
	assert.Equal(t, "Blank", Blank().String())
	assert.Equal(t, `ResourceItem{Book, "SICP"}`, ResourceItem(ResourceBook, "SICP").String())
}

func TestResourceKinds_Order(t *testing.T) {
	assert.Equal(t, []ResourceKind{
		ResourceBook, ResourceWebsite, ResourceLeetCode, ResourceHackerRank,
		ResourcePractice, ResourceConduct, ResourceArticle,
	}, ResourceKinds())
}
