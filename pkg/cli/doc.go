/*
Package cli provides helpers shared by the slotgen commands.

Output Formatting:

Commands accept --format text|json:

	format, err := cli.ParseFormat(flagFormat)
	if err != nil {
		return err
	}
	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), names)

Errors and exit codes:

ConfigError (exit 2) and FindingsError (exit 3, lint --strict) are mapped by
ExitCode; everything else exits 1.

Progress Reporting:

	progress := cli.NewProgressReporter(cmd.ErrOrStderr())
	progress.Start(len(files))
	for _, f := range files {
		// import f
		progress.Step(f)
	}
	progress.Finish()

Signal Handling:

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()
*/
package cli
