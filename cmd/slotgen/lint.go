package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mercator-hq/slotgen/pkg/cli"
	"mercator-hq/slotgen/pkg/generator"
	"mercator-hq/slotgen/pkg/grammar"
	grammarerrors "mercator-hq/slotgen/pkg/grammar/errors"
	"mercator-hq/slotgen/pkg/telemetry/logging"
)

var lintFlags struct {
	file   string
	strict bool
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate a definitions document",
	Long: `Parse a definitions document and report errors and warnings.

Errors stop the document from loading:
  - Missing, repeated, or misordered section markers
  - Lines without a single '->' or with an empty name or value
  - Unterminated <SLOT> references
  - Duplicate slot or template names
  - References to undefined slots
  - Unreadable corpus files

Warnings are reported for documents that load:
  - Slots no template references
  - Templates without slot references
  - Values listed twice in one slot
  - Values with surrounding whitespace
  - Slots whose every value is single-use

Examples:
  # Lint the configured document
  slotgen lint

  # Strict mode (warnings fail with exit code 3)
  slotgen lint --file story.txt --strict

  # JSON output for CI
  slotgen lint --file story.txt --format json`,
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "definitions document (default from config)")
	lintCmd.Flags().BoolVar(&lintFlags.strict, "strict", false, "treat warnings as errors")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

// LintResult is the lint outcome for one document.
type LintResult struct {
	File      string        `json:"file"`
	Valid     bool          `json:"valid"`
	Slots     int           `json:"slots"`
	Templates int           `json:"templates"`
	Errors    []LintFinding `json:"errors,omitempty"`
	Warnings  []LintFinding `json:"warnings,omitempty"`
}

// LintFinding is a single error or warning.
type LintFinding struct {
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
	Type       string `json:"type,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

func findingFrom(e *grammarerrors.Error) LintFinding {
	return LintFinding{
		Line:       e.Location.Line,
		Column:     e.Location.Column,
		Type:       string(e.Type),
		Message:    e.Message,
		Suggestion: e.Suggestion,
	}
}

func runLint(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(lintFlags.format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	loader, closer, err := openCorpusLoader(cfg)
	if err != nil {
		return cli.NewCommandError("lint", err)
	}
	defer closer.Close()

	path := definitionsPath(cfg, lintFlags.file)
	result := LintResult{File: path, Valid: true}

	doc, findings, err := grammar.Lint(path, loader)
	if err == nil {
		// The document must also bind into an engine.
		_, err = generator.NewFromDocument(doc, generator.WithLogger(logging.Discard()))
	}
	if err != nil {
		result.Valid = false
		if e, ok := grammarerrors.As(err); ok {
			result.Errors = append(result.Errors, findingFrom(e))
		} else {
			result.Errors = append(result.Errors, LintFinding{Message: err.Error()})
		}
	} else {
		result.Slots = len(doc.Slots)
		result.Templates = len(doc.Templates)
		for _, f := range findings {
			result.Warnings = append(result.Warnings, findingFrom(f))
		}
	}

	out := cmd.OutOrStdout()
	if format == cli.FormatJSON {
		if err := cli.NewFormatter(format).FormatTo(out, result); err != nil {
			return err
		}
	} else {
		writeLintText(out, result)
	}

	if !result.Valid {
		return cli.NewCommandError("lint", fmt.Errorf("%s is invalid", path))
	}
	if lintFlags.strict && len(result.Warnings) > 0 {
		return &cli.FindingsError{Count: len(result.Warnings)}
	}
	return nil
}

func writeLintText(w io.Writer, result LintResult) {
	fmt.Fprintf(w, "Validating %s...\n", result.File)

	for _, e := range result.Errors {
		fmt.Fprintf(w, "✗ Error: %s%s [%s]\n", e.Message, position(e), e.Type)
		if e.Suggestion != "" {
			fmt.Fprintf(w, "  suggestion: %s\n", e.Suggestion)
		}
	}
	for _, warn := range result.Warnings {
		fmt.Fprintf(w, "⚠  Warning: %s%s\n", warn.Message, position(warn))
	}

	if result.Valid {
		fmt.Fprintf(w, "✓ %d slot(s), %d template(s)\n", result.Slots, result.Templates)
	}
	fmt.Fprintf(w, "\nSummary:\n  %d error(s), %d warning(s)\n", len(result.Errors), len(result.Warnings))
}

func position(f LintFinding) string {
	switch {
	case f.Line > 0 && f.Column > 0:
		return fmt.Sprintf(" (line %d, col %d)", f.Line, f.Column)
	case f.Line > 0:
		return fmt.Sprintf(" (line %d)", f.Line)
	default:
		return ""
	}
}
