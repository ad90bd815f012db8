package shell

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dgallion1/markdownql/internal/config"
	"github.com/dgallion1/markdownql/internal/executor"
)

// PrintResult writes result to w as text or indented JSON.
func PrintResult(w io.Writer, result *executor.QueryResult, format string) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(normalize(result))
	case config.OutputText, "":
		r := normalize(result)
		printSection(w, "Headings", r.Headings)
		printSection(w, "Paragraphs", r.Paragraphs)
		printSection(w, "Matching text", r.MatchingText)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func printSection(w io.Writer, title string, items []string) {
	fmt.Fprintf(w, "%s (%d):\n", title, len(items))
	for _, item := range items {
		fmt.Fprintf(w, "  %q\n", item)
	}
}

// normalize replaces nil lists so they encode as [].
func normalize(r *executor.QueryResult) *executor.QueryResult {
	if r == nil {
		r = &executor.QueryResult{}
	}
	out := *r
	if out.Headings == nil {
		out.Headings = []string{}
	}
	if out.Paragraphs == nil {
		out.Paragraphs = []string{}
	}
	if out.MatchingText == nil {
		out.MatchingText = []string{}
	}
	return &out
}
