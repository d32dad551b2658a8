// Package cmd contains testing utilities shared between integration tests.
// This file provides common functions for setting up test environments and
// capturing output.
package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/seralba/journal/internal/configs"
	"github.com/seralba/journal/internal/keychain"

	"github.com/spf13/cobra"
)

// setupTestEnvironment points the application at temporary directories and
// an encrypted-file keyring so tests never touch the real OS keychain.
func setupTestEnvironment(t *testing.T) {
	t.Helper()

	tempDataDir := t.TempDir()
	tempConfigDir := t.TempDir()

	originalSettings := configs.JournalSettings
	t.Cleanup(func() {
		configs.JournalSettings = originalSettings
		keychain.ResetProcessCache()
		ResetGlobalState()
	})

	configs.JournalSettings = &configs.Settings{
		DataDir:          filepath.Join(tempDataDir, "Journal-dev"),
		AlternateDataDir: filepath.Join(tempDataDir, "Journal"),
		ConfigsPath:      tempConfigDir,
		Profile:          configs.ProfileDev,
	}

	config := &configs.AppConfig{}
	config.Keychain.Backend = "file"
	config.Keychain.FileDir = filepath.Join(tempDataDir, "keyring")
	if err := configs.SaveAppConfig(config); err != nil {
		t.Fatalf("Failed to save test config: %v", err)
	}

	t.Setenv("JOURNAL_KEYRING_FILE_PASSWORD", "test-password")

	keychain.ResetProcessCache()
	ResetGlobalState()
}

// runCommand executes a subcommand under a fresh root and returns its
// combined stdout and stderr.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	rootCmd := &cobra.Command{Use: "journal"}
	rootCmd.AddCommand(KeyCmd)
	rootCmd.AddCommand(EntryCmd)
	rootCmd.AddCommand(DbCmd)
	rootCmd.SetArgs(args)

	return captureOutput(func() error {
		return rootCmd.Execute()
	})
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Printf("Failed to copy stdout: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stderrReader); err != nil {
			log.Printf("Failed to copy stderr: %s", err)
		}
		outputChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}
