package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeDoc(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	doc := "# Title\n\n> nested paragraph\n\nSome text here.\n"
	if err := os.WriteFile(filepath.Join(dir, "doc.md"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestQueryCommand_JSON(t *testing.T) {
	dir := writeDoc(t)
	out, _, err := runCLI(t, "query", "--dir", dir, "-o", "json", `SELECT * FROM "doc.md"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"Title"`) || !strings.Contains(out, `"nested paragraph"`) {
		t.Errorf("unexpected output %q", out)
	}
}

func TestQueryCommand_RootTraversal(t *testing.T) {
	dir := writeDoc(t)
	out, _, err := runCLI(t, "query", "--dir", dir, "--traversal", "root", "SELECT", "paragraphs", `FROM "doc.md"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "nested paragraph") || !strings.Contains(out, "Some text here.") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestQueryCommand_Failure(t *testing.T) {
	dir := writeDoc(t)
	_, errOut, err := runCLI(t, "query", "--dir", dir, `SELECT * FROM "missing.md"`)
	if !errors.Is(err, errQueryFailed) {
		t.Fatalf("expected errQueryFailed, got %v", err)
	}
	if !strings.HasPrefix(errOut, "Query execution error: ") {
		t.Errorf("unexpected stderr %q", errOut)
	}
}

func TestInvalidFlags(t *testing.T) {
	for _, args := range [][]string{
		{"--traversal", "sideways"},
		{"--max-file-bytes", "0"},
		{"--max-file-bytes=-5"},
	} {
		args = append([]string{"query"}, append(args, `SELECT * FROM "x.md"`)...)
		_, _, err := runCLI(t, args...)
		if err == nil || errors.Is(err, errQueryFailed) {
			t.Errorf("%v: expected a configuration error, got %v", args, err)
		}
	}
}
