// Package schemas holds the JSON Schemas of the documents skillscan emits.
package schemas

import "embed"

// Schema file names
const (
	BlockDocument = "block_document.schema.json"
	ScoreBundle   = "score_bundle.schema.json"
)

// FS contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
