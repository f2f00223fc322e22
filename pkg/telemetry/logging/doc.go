// Package logging builds the structured loggers used across slotgen.
//
// Loggers are plain *slog.Logger values configured from the telemetry.logging
// section:
//
//	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging, os.Stderr))
//	if err != nil {
//	    return err
//	}
//	slog.SetDefault(logger)
//
// Components derive their own logger with a component attribute:
//
//	log := logger.With("component", "reload")
//
// Request handlers attach request fields through the context:
//
//	ctx = logging.WithRequestID(ctx, id)
//	logging.FromContext(ctx, log).Info("generated", "count", n)
package logging
