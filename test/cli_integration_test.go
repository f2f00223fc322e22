//go:build integration

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

const storyDocument = `<BEGIN SLOTS>
HERO -> knight,wizard\s,$heroes
PLACE -> castle,forest
<END SLOTS>
<BEGIN TEMPLATES>
STORY -> The <HERO> rode to the <PLACE>.\nThe end.
<END TEMPLATES>
`

// TestServeAndHotReload starts the server, generates, then edits the
// definitions document and waits for the watcher to pick it up.
func TestServeAndHotReload(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	tmpDir := t.TempDir()
	definitions := writeWorkspace(t, tmpDir)

	configFile := filepath.Join(tmpDir, "slotgen.yaml")
	createTestConfig(t, configFile, `
definitions:
  path: "definitions.txt"
corpus:
  backend: "dir"
  dir: "corpora"
reload:
  watch: true
  debounce: 50ms
server:
  listen_address: "127.0.0.1:18090"
telemetry:
  logging:
    level: "info"
    format: "json"
  metrics:
    enabled: true
`)

	binaryPath := buildSlotgenBinary(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, binaryPath, "serve", "--config", configFile)
	cmd.Dir = tmpDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		t.Fatalf("failed to start server: %v", err)
	}
	defer func() {
		if cmd.Process != nil {
			cmd.Process.Kill()
		}
	}()

	base := "http://127.0.0.1:18090"
	if !waitForHealthy(base+"/ready", 10*time.Second) {
		t.Fatalf("server did not become ready\nstdout: %s\nstderr: %s", stdout.String(), stderr.String())
	}

	var generated struct {
		Outputs []string   `json:"outputs"`
		Lines   [][]string `json:"lines"`
	}
	getJSON(t, base+"/v1/generate/STORY?count=3&split=true", &generated)
	if len(generated.Outputs) != 3 || len(generated.Lines) != 3 {
		t.Fatalf("generate = %+v, want 3 outputs with lines", generated)
	}
	for _, lines := range generated.Lines {
		if len(lines) != 2 || lines[1] != "The end." {
			t.Errorf("split lines = %q", lines)
		}
	}

	updated := strings.Replace(storyDocument, "<END TEMPLATES>", "EPILOGUE -> Long live the <HERO>.\n<END TEMPLATES>", 1)
	if err := os.WriteFile(definitions, []byte(updated), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		var templates struct {
			Templates []string `json:"templates"`
		}
		getJSON(t, base+"/v1/templates", &templates)
		if slices.Contains(templates.Templates, "EPILOGUE") {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("reload not observed, templates = %v\nstderr: %s", templates.Templates, stderr.String())
		}
		time.Sleep(100 * time.Millisecond)
	}

	resp, err := http.Get(base + "/metrics")
	if err != nil {
		t.Fatalf("metrics request failed: %v", err)
	}
	defer resp.Body.Close()
	var metrics bytes.Buffer
	metrics.ReadFrom(resp.Body)
	if !strings.Contains(metrics.String(), `slotgen_engine_reloads_total{result="success",trigger="watch"}`) {
		t.Errorf("metrics missing watch reload:\n%s", metrics.String())
	}

	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		t.Fatalf("failed to send interrupt: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			t.Logf("server exited with: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Error("server did not shut down within timeout")
	}
}

// TestCorpusImportPipeline imports a corpus into SQLite and generates from it.
func TestCorpusImportPipeline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	tmpDir := t.TempDir()
	writeWorkspace(t, tmpDir)

	configFile := filepath.Join(tmpDir, "slotgen.yaml")
	createTestConfig(t, configFile, `
corpus:
  backend: "sqlite"
  sqlite:
    path: "corpora.db"
`)

	binaryPath := buildSlotgenBinary(t)

	run := func(args ...string) (string, error) {
		cmd := exec.Command(binaryPath, append(args, "--config", configFile)...)
		cmd.Dir = tmpDir
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	if output, err := run("generate", "STORY"); err == nil {
		t.Fatalf("generate should fail before the corpus is imported\nOutput: %s", output)
	}

	if output, err := run("corpus", "import", "--dir", "corpora"); err != nil {
		t.Fatalf("corpus import failed: %v\nOutput: %s", err, output)
	}

	output, err := run("generate", "STORY", "--count", "5", "--seed", "1", "--format", "json")
	if err != nil {
		t.Fatalf("generate failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, `"seed": 1`) {
		t.Errorf("generate output missing seed: %s", output)
	}
}

// TestLintExitCodes checks the exit code contract of lint.
func TestLintExitCodes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	tmpDir := t.TempDir()
	writeWorkspace(t, tmpDir)

	unused := filepath.Join(tmpDir, "unused.txt")
	createTestConfig(t, unused, strings.Replace(storyDocument, "<END SLOTS>", "UNUSED -> a,b\n<END SLOTS>", 1))

	broken := filepath.Join(tmpDir, "broken.txt")
	createTestConfig(t, broken, strings.Replace(storyDocument, "<PLACE>", "<PALACE>", 1))

	binaryPath := buildSlotgenBinary(t)

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{"valid", []string{"lint"}, 0},
		{"warnings", []string{"lint", "--file", unused}, 0},
		{"warnings strict", []string{"lint", "--file", unused, "--strict"}, 3},
		{"broken", []string{"lint", "--file", broken}, 1},
		{"bad config", []string{"lint", "--config", filepath.Join(tmpDir, "missing.yaml")}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binaryPath, tt.args...)
			cmd.Dir = tmpDir
			output, err := cmd.CombinedOutput()

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("failed to run: %v", err)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nOutput: %s", code, tt.wantCode, output)
			}
		})
	}
}

// TestCommandVersionOutput tests the version command
func TestCommandVersionOutput(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	output, err := exec.Command(buildSlotgenBinary(t), "version").CombinedOutput()
	if err != nil {
		t.Fatalf("version command failed: %v\nOutput: %s", err, output)
	}
	if !bytes.Contains(output, []byte("slotgen")) {
		t.Errorf("version output should contain 'slotgen', got: %s", output)
	}
}

// Helper functions

// buildSlotgenBinary builds the slotgen binary for testing
func buildSlotgenBinary(t *testing.T) string {
	t.Helper()

	binaryPath, err := filepath.Abs("../bin/slotgen")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(binaryPath); err == nil {
		return binaryPath
	}

	t.Log("Building slotgen binary...")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../cmd/slotgen")
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build slotgen: %v\nOutput: %s", err, output)
	}

	return binaryPath
}

// writeWorkspace writes definitions.txt and corpora/heroes under dir.
func writeWorkspace(t *testing.T, dir string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Join(dir, "corpora"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "corpora", "heroes"), []byte("ranger\nbard\n"), 0644); err != nil {
		t.Fatal(err)
	}
	definitions := filepath.Join(dir, "definitions.txt")
	if err := os.WriteFile(definitions, []byte(storyDocument), 0644); err != nil {
		t.Fatal(err)
	}
	return definitions
}

// waitForHealthy waits for a health endpoint to return 200
func waitForHealthy(url string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	client := &http.Client{Timeout: 1 * time.Second}

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return true
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(100 * time.Millisecond)
	}

	return false
}

func getJSON(t *testing.T, url string, v any) {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
}

// createTestConfig writes content to path
func createTestConfig(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
}

