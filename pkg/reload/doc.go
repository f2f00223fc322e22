// Package reload keeps a long-running process serving the latest definitions.
//
// A Holder owns the current generator.Engine. A FileWatcher (fsnotify) and a
// Scheduler (cron) both call Holder.Reload; a rebuild that fails to parse
// leaves the previous engine in place.
//
//	holder, err := reload.NewHolder(build, reload.WithRecorder(collector))
//	watcher, err := reload.NewFileWatcher(&reload.FileWatcherConfig{
//	    Paths:            []string{cfg.Definitions.Path, cfg.Corpus.Dir},
//	    DebounceInterval: cfg.Reload.Debounce,
//	}, logger)
//	go watcher.Watch(ctx, func() error { return holder.Reload(reload.TriggerWatch) })
//
// Reloading discards draw state: single-use values already drawn become
// available again in the new engine.
package reload
