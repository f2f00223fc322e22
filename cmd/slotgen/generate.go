package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mercator-hq/slotgen/pkg/cli"
	"mercator-hq/slotgen/pkg/generator"
)

var generateFlags struct {
	file       string
	count      int
	seed       int64
	splitLines bool
	format     string
}

var generateCmd = &cobra.Command{
	Use:   "generate <template>",
	Short: "Generate text from a template",
	Long: `Generate one or more outputs from a template of a definitions document.

Outputs from one invocation share draw state: with --count, single-use values
are not repeated until their slot has been exhausted.

Examples:
  # One output from definitions.txt
  slotgen generate SENTENCE

  # Ten reproducible outputs
  slotgen generate SENTENCE --file story.txt --count 10 --seed 42

  # Print each \n marker as a real line break
  slotgen generate POEM --split-lines

  # JSON output
  slotgen generate SENTENCE --count 3 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateFlags.file, "file", "f", "", "definitions document (default from config)")
	generateCmd.Flags().IntVarP(&generateFlags.count, "count", "n", 1, "number of outputs")
	generateCmd.Flags().Int64Var(&generateFlags.seed, "seed", 0, "random seed for reproducible output")
	generateCmd.Flags().BoolVar(&generateFlags.splitLines, "split-lines", false, "split outputs on the newline marker")
	generateCmd.Flags().StringVar(&generateFlags.format, "format", "text", "output format: text, json")
}

// GenerateResult is the JSON output of the generate command.
type GenerateResult struct {
	Template string   `json:"template"`
	Seed     *int64   `json:"seed,omitempty"`
	Outputs  []string `json:"outputs"`
}

func runGenerate(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(generateFlags.format)
	if err != nil {
		return err
	}
	if generateFlags.count < 1 {
		return cli.NewConfigError("count", fmt.Sprintf("must be at least 1, got %d", generateFlags.count))
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	loader, closer, err := openCorpusLoader(cfg)
	if err != nil {
		return cli.NewCommandError("generate", err)
	}
	defer closer.Close()

	seedSet := cmd.Flags().Changed("seed")
	engine, err := generator.New(
		definitionsPath(cfg, generateFlags.file),
		engineOptions(cfg, loader, generateFlags.seed, seedSet)...,
	)
	if err != nil {
		return err
	}

	outputs, err := engine.GenerateN(args[0], generateFlags.count)
	if err != nil {
		return err
	}

	if generateFlags.splitLines {
		var lines []string
		for _, out := range outputs {
			lines = append(lines, generator.SplitOutput(out, cfg.Generator.NewlineMarker)...)
		}
		outputs = lines
	}

	if format == cli.FormatJSON {
		result := GenerateResult{Template: args[0], Outputs: outputs}
		if seed, ok := engine.Seed(); ok {
			result.Seed = &seed
		}
		return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), result)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(outputs, "\n"))
	return err
}
