package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/skillscan/internal/classify"
	"github.com/jonathan/skillscan/internal/rendering"
	"github.com/jonathan/skillscan/internal/schemas"
	"github.com/jonathan/skillscan/internal/types"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [file...]",
	Short: "Split generated text into presentation blocks",
	Long: "Classify every line of one or more study plans or analysis reports into typed blocks. " +
		"With no files, standard input is read. Files are classified concurrently; output keeps argument order.",
	RunE: runClassify,
}

var (
	classifyFormat  string
	classifyExplain bool
)

func init() {
	classifyCmd.Flags().StringVarP(&classifyFormat, "format", "f", "json", "Output format: json, text or html")
	classifyCmd.Flags().BoolVar(&classifyExplain, "explain", false, "Print the rule that matched each line instead of blocks")
	rootCmd.AddCommand(classifyCmd)
}

// classified is the result for one input
type classified struct {
	Source string        `json:"source"`
	Blocks []types.Block `json:"blocks"`
	rules  []string
}

func runClassify(cmd *cobra.Command, args []string) error {
	if err := checkFormat(classifyFormat, "json", "text", "html"); err != nil {
		return err
	}

	sources := args
	if len(sources) == 0 {
		sources = []string{"-"}
	}

	results := make([]classified, len(sources))
	g, _ := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.NumCPU())

	for i, source := range sources {
		g.Go(func() error {
			data, err := readInput(cmd, source)
			if err != nil {
				return err
			}
			blocks, err := classify.ClassifyBytes(data)
			if err != nil {
				return fmt.Errorf("%s: %w", source, err)
			}
			results[i] = classified{Source: source, Blocks: blocks}
			if classifyExplain {
				results[i].rules = classify.New().Explain(string(data))
			}
			logger.Debug("classified document", zap.String("source", source), zap.Int("blocks", len(blocks)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if classifyExplain {
		return writeExplain(out, results)
	}

	switch classifyFormat {
	case "text":
		for _, r := range results {
			_, _ = fmt.Fprintln(out, rendering.Terminal(r.Blocks))
		}
		return nil
	case "html":
		for _, r := range results {
			html, err := rendering.HTML(r.Blocks)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out, html)
		}
		return nil
	}

	for _, r := range results {
		if err := checkBlocks(cmd, r); err != nil {
			return err
		}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if len(results) == 1 {
		return enc.Encode(types.ClassifyResponse{Blocks: results[0].Blocks})
	}
	return enc.Encode(results)
}

// checkBlocks validates emitted blocks against the embedded schema. A schema
// that fails to load only produces a warning.
func checkBlocks(cmd *cobra.Command, r classified) error {
	err := schemas.ValidateBlocks(r.Blocks)
	if err == nil {
		return nil
	}

	var validationErr *schemas.ValidationError
	var schemaLoadErr *schemas.SchemaLoadError
	switch {
	case errors.As(err, &validationErr):
		return fmt.Errorf("%s: blocks do not validate against schema: %w", r.Source, err)
	case errors.As(err, &schemaLoadErr):
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Could not validate output against schema (schema loading failed): %v\n", err)
	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Could not validate output against schema: %v\n", err)
	}
	return nil
}

func writeExplain(out io.Writer, results []classified) error {
	for _, r := range results {
		if len(results) > 1 {
			_, _ = fmt.Fprintf(out, "== %s\n", r.Source)
		}
		for i, rule := range r.rules {
			_, _ = fmt.Fprintf(out, "%4d  %-14s %s\n", i+1, rule, r.Blocks[i])
		}
	}
	return nil
}
