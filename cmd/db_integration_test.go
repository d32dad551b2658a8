package cmd

import (
	"path/filepath"
	"strings"
	"testing"
)

// TestDbExportImportIntegration round-trips the encrypted database through
// an export and an import.
func TestDbExportImportIntegration(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCommand(t, "entry", "new", "--title", "Before export", "--body", "keep me")
	if err != nil {
		t.Fatalf("entry new failed: %v\nOutput: %s", err, output)
	}

	exportDir := t.TempDir()
	ResetGlobalState()
	output, err = runCommand(t, "db", "export", "--dest", exportDir)
	if err != nil {
		t.Fatalf("db export failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "Exported database") {
		t.Errorf("Expected export message: %s", output)
	}

	matches, err := filepath.Glob(filepath.Join(exportDir, "journal_export_*.db"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("Expected exactly one export file, got %v (err %v)", matches, err)
	}

	// Destroy the journal, then bring it back from the export.
	ResetGlobalState()
	if output, err := runCommand(t, "entry", "delete", "--all", "--force"); err != nil {
		t.Fatalf("entry delete failed: %v\nOutput: %s", err, output)
	}

	ResetGlobalState()
	output, err = runCommand(t, "db", "import", matches[0])
	if err != nil {
		t.Fatalf("db import failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "Imported") {
		t.Errorf("Expected import message: %s", output)
	}

	ResetGlobalState()
	output, err = runCommand(t, "entry", "list")
	if err != nil {
		t.Fatalf("entry list failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "Before export") {
		t.Errorf("Expected restored entry in listing: %s", output)
	}
}

func TestDbExportWithoutDatabase(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCommand(t, "db", "export", "--dest", t.TempDir())
	if err != nil {
		t.Fatalf("db export returned an internal error: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "✗") {
		t.Errorf("Expected a failure indicator in output: %s", output)
	}
}
