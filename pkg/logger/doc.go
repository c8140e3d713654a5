// Package logger builds log/slog loggers for the site server.
//
// Loggers are JSON in production and text in development. A decorating handler
// pulls request-scoped attributes (request ID, locale, environment) out of the
// context on every record, so handlers log with the *Context methods and never
// thread those values by hand:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "landing"),
//		logger.WithContextExtractors(requestid.LoggerExtractor(), i18n.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "contact submitted", logger.SubmissionID(id))
//
// The attribute helpers in attr.go keep key names consistent across packages.
package logger
