package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mercator-hq/slotgen/pkg/cli"
	"mercator-hq/slotgen/pkg/generator"
	"mercator-hq/slotgen/pkg/grammar"
)

var listFlags struct {
	file   string
	slots  bool
	match  string
	format string
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the templates of a definitions document",
	Long: `List template names, or slot names with --slots.

--match filters names with fuzzy matching, best match first.

Examples:
  slotgen list
  slotgen list --slots --file story.txt
  slotgen list --match stry`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listFlags.file, "file", "f", "", "definitions document (default from config)")
	listCmd.Flags().BoolVar(&listFlags.slots, "slots", false, "list slots instead of templates")
	listCmd.Flags().StringVarP(&listFlags.match, "match", "m", "", "fuzzy filter")
	listCmd.Flags().StringVar(&listFlags.format, "format", "text", "output format: text, json")
}

func runList(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(listFlags.format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	loader, closer, err := openCorpusLoader(cfg)
	if err != nil {
		return cli.NewCommandError("list", err)
	}
	defer closer.Close()

	doc, err := grammar.Parse(definitionsPath(cfg, listFlags.file), loader)
	if err != nil {
		return err
	}

	names := doc.TemplateNames()
	if listFlags.slots {
		names = doc.SlotNames()
	}
	names = generator.MatchNames(listFlags.match, names)

	if len(names) == 0 && format == cli.FormatText {
		_, err := fmt.Fprintln(cmd.ErrOrStderr(), "no matches")
		return err
	}
	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), names)
}
