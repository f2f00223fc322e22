package main

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/slotgen/pkg/cli"
	"mercator-hq/slotgen/pkg/corpus"
)

var corpusFlags struct {
	dir    string
	format string
}

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Manage the SQLite corpus store",
	Long: `Import, list and delete corpora in the SQLite store configured under
corpus.sqlite. Set corpus.backend to "sqlite" to resolve $name references
from the store instead of the corpus directory.`,
}

var corpusImportCmd = &cobra.Command{
	Use:   "import [<name> <file>]",
	Short: "Import corpus files into the store",
	Long: `Import one corpus file under a name, or every file of a directory with
--dir (each named after its file). Importing an existing name replaces it.

Examples:
  slotgen corpus import animals corpora/animals
  slotgen corpus import --dir corpora`,
	Args: func(cmd *cobra.Command, args []string) error {
		if corpusFlags.dir != "" {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(2)(cmd, args)
	},
	RunE: runCorpusImport,
}

var corpusListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored corpora",
	RunE:  runCorpusList,
}

var corpusDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored corpus",
	Args:  cobra.ExactArgs(1),
	RunE:  runCorpusDelete,
}

func init() {
	rootCmd.AddCommand(corpusCmd)
	corpusCmd.AddCommand(corpusImportCmd, corpusListCmd, corpusDeleteCmd)

	corpusImportCmd.Flags().StringVarP(&corpusFlags.dir, "dir", "d", "", "import every file of a directory")
	corpusListCmd.Flags().StringVar(&corpusFlags.format, "format", "text", "output format: text, json")
}

func runCorpusImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openCorpusStore(cfg)
	if err != nil {
		return cli.NewCommandError("corpus import", err)
	}
	defer store.Close()

	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()

	if corpusFlags.dir == "" {
		n, err := store.ImportFile(ctx, args[0], args[1])
		if err != nil {
			return cli.NewCommandError("corpus import", err)
		}
		fmt.Fprintf(out, "✓ Imported %s (%d values)\n", args[0], n)
		return nil
	}

	dirLoader := corpus.NewDirLoader(corpusFlags.dir)
	names, err := dirLoader.List()
	if err != nil {
		return cli.NewCommandError("corpus import", err)
	}

	progress := cli.NewProgressReporter(cmd.ErrOrStderr())
	progress.Start(len(names))
	total := 0
	for _, name := range names {
		n, err := store.ImportFile(ctx, name, filepath.Join(corpusFlags.dir, name))
		if err != nil {
			progress.Finish()
			return cli.NewCommandError("corpus import", err)
		}
		total += n
		progress.Step(name)
	}
	progress.Finish()

	fmt.Fprintf(out, "✓ Imported %d corpora (%d values)\n", len(names), total)
	return nil
}

func runCorpusList(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(corpusFlags.format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openCorpusStore(cfg)
	if err != nil {
		return cli.NewCommandError("corpus list", err)
	}
	defer store.Close()

	infos, err := store.List(commandContext(cmd))
	if err != nil {
		return cli.NewCommandError("corpus list", err)
	}

	if format == cli.FormatJSON {
		if infos == nil {
			infos = []corpus.CorpusInfo{}
		}
		return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), infos)
	}

	if len(infos) == 0 {
		_, err := fmt.Fprintln(cmd.ErrOrStderr(), "no corpora stored")
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVALUES\tSOURCE\tIMPORTED")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n",
			info.Name, info.ValueCount, info.Source, info.ImportedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}

func runCorpusDelete(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openCorpusStore(cfg)
	if err != nil {
		return cli.NewCommandError("corpus delete", err)
	}
	defer store.Close()

	if err := store.Delete(commandContext(cmd), args[0]); err != nil {
		return cli.NewCommandError("corpus delete", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %s\n", args[0])
	return nil
}
