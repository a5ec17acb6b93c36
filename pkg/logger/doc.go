// Package logger builds *slog.Logger values for the validation engine and
// its command line tool.
//
// New applies functional options (format, level, output, static attributes)
// and wraps the chosen handler with LogHandlerDecorator, which runs
// ContextExtractor callbacks on every record. The default extractor adds the
// run_id stored with WithRunID, so every trace line of a validation run can
// be correlated.
//
// Attribute helpers (Field, Rule, Value, Outcome, RunID, Error, ...) keep
// key names consistent across packages:
//
//	log := logger.New(logger.WithDevelopment("ruleval"))
//	ctx := logger.WithRunID(context.Background(), id)
//	log.DebugContext(ctx, "rule evaluated",
//	    logger.Field("email"),
//	    logger.Rule("required"),
//	    logger.Outcome("pass"),
//	)
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally.
package logger
