// Package logger provides structured logging built on log/slog with
// functional options, context-aware attribute extraction, and domain
// attribute helpers.
//
// Loggers are created with New and configured through options:
//
//	log := logger.New(
//		logger.WithProduction("notifyd"),
//		logger.WithContextExtractors(requestid.LogExtractor()),
//	)
//	logger.SetAsDefault(log)
//
// Context extractors run on every log call and inject request-scoped
// attributes, so handlers can log through the plain slog API without
// threading identifiers by hand:
//
//	log.InfoContext(ctx, "notifications listed",
//		logger.UserID(userID),
//		logger.Count(len(items)),
//	)
package logger
