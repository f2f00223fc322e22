package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mercator-hq/slotgen/pkg/cli"
	"mercator-hq/slotgen/pkg/generator"
	"mercator-hq/slotgen/pkg/reload"
)

var watchFlags struct {
	file  string
	count int
	seed  int64
}

var watchCmd = &cobra.Command{
	Use:   "watch <template>",
	Short: "Regenerate whenever the definitions change",
	Long: `Generate from a template, then regenerate each time the definitions
document or a corpus file changes. A change that breaks the document is
reported and the previous definitions stay in use.

Examples:
  slotgen watch SENTENCE
  slotgen watch STORY --file story.txt --count 3 --seed 7`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.file, "file", "f", "", "definitions document (default from config)")
	watchCmd.Flags().IntVarP(&watchFlags.count, "count", "n", 1, "outputs per regeneration")
	watchCmd.Flags().Int64Var(&watchFlags.seed, "seed", 0, "random seed for reproducible output")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchFlags.count < 1 {
		return cli.NewConfigError("count", fmt.Sprintf("must be at least 1, got %d", watchFlags.count))
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	loader, closer, err := openCorpusLoader(cfg)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer closer.Close()

	path := definitionsPath(cfg, watchFlags.file)
	opts := engineOptions(cfg, loader, watchFlags.seed, cmd.Flags().Changed("seed"))
	holder, err := reload.NewHolder(func() (*generator.Engine, error) {
		return generator.New(path, opts...)
	})
	if err != nil {
		return err
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	emit := func() error {
		outputs, err := holder.Generate(args[0], watchFlags.count)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, strings.Join(outputs, "\n"))
		return err
	}
	if err := emit(); err != nil {
		return err
	}

	watcher, err := reload.NewFileWatcher(&reload.FileWatcherConfig{
		Paths:            watchPaths(cfg, path),
		DebounceInterval: cfg.Reload.Debounce,
	}, nil)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer watcher.Stop()

	ctx, stop := cli.SetupSignalHandler(commandContext(cmd))
	defer stop()

	return watcher.Watch(ctx, func() error {
		if err := holder.Reload(reload.TriggerWatch); err != nil {
			fmt.Fprintf(errOut, "✗ %v\n", err)
			return nil
		}
		fmt.Fprintln(out, "---")
		if err := emit(); err != nil {
			fmt.Fprintf(errOut, "✗ %v\n", err)
		}
		return nil
	})
}
