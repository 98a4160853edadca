package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/skillscan/internal/classify"
	"github.com/jonathan/skillscan/internal/db"
	"github.com/jonathan/skillscan/internal/rendering"
)

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "List or show stored study plans and analyses",
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored documents, newest first",
	Args:  cobra.NoArgs,
	RunE:  runDocumentsList,
}

var documentsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsShow,
}

var (
	documentsKind  string
	documentsLimit int
	documentsJSON  bool
)

func init() {
	documentsListCmd.Flags().StringVar(&documentsKind, "kind", "", "Filter by kind: study_plan or analysis")
	documentsListCmd.Flags().IntVarP(&documentsLimit, "limit", "n", db.DefaultListLimit, "Maximum number of documents")
	documentsListCmd.Flags().BoolVar(&documentsJSON, "json", false, "Print JSON")

	documentsCmd.AddCommand(documentsListCmd, documentsShowCmd)
	rootCmd.AddCommand(documentsCmd)
}

func runDocumentsList(cmd *cobra.Command, _ []string) error {
	kind, err := db.ParseDocumentKind(documentsKind)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	docs, err := store.ListDocuments(ctx, db.ListOptions{Kind: kind, Limit: documentsLimit})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if documentsJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tKIND\tSUBJECT\tSCORE\tCREATED")
	for _, doc := range docs {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			doc.ID, doc.Kind, documentSubject(doc), documentScore(doc), doc.CreatedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func documentSubject(doc db.Document) string {
	switch {
	case doc.Role != nil && doc.Weeks != nil:
		return fmt.Sprintf("%s (%d weeks)", *doc.Role, *doc.Weeks)
	case doc.Role != nil:
		return *doc.Role
	case doc.AnalysisType != nil:
		return *doc.AnalysisType
	default:
		return "-"
	}
}

func documentScore(doc db.Document) string {
	if doc.OverallScore == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *doc.OverallScore)
}

func runDocumentsShow(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid document id: %w", err)
	}

	ctx := cmd.Context()
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	doc, err := store.GetDocument(ctx, id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if doc.Kind == db.KindAnalysis {
		_, _ = fmt.Fprintln(out, rendering.TerminalAnalysis(doc.RawText))
		return nil
	}
	_, _ = fmt.Fprintln(out, rendering.Terminal(classify.Classify(doc.RawText)))
	return nil
}
