// Package logging provides structured logging for debate runs.
//
// It wraps log/slog with a JSON handler that writes to debate.log inside the
// output directory. The file is rotated by size through [RotatingWriter],
// keeping a fixed number of numbered backups (debate.log.1 is the newest).
//
// Child loggers carry persistent attributes:
//
//	logger, err := logging.NewLogger("output", "info", logging.DefaultRotationConfig())
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	runLog := logger.WithRun(runID)
//	runLog.WithSegment("proposition_opening").Info("speech drafted", "chars", 2048)
//
// Output:
//
//	{"time":"...","level":"INFO","msg":"speech drafted","run_id":"...","segment":"proposition_opening","chars":2048}
//
// All types are safe for concurrent use. Child loggers share the root's
// writer, so only the root should be closed.
package logging
