// Package logger builds the slog loggers used by pebble applications.
//
// [FromConfig] reads the "app" configuration section:
//
//	app:
//	  debug: false
//	  env: production
//	  log:
//	    file: var/log/critical.log
//	    level: info
//	  sentry:
//	    dsn: https://key@sentry.example.com/1
//
// Debug mode writes text records at debug level to stdout. Otherwise
// records are JSON, and error records are also appended to log.file, the
// critical log. A Sentry DSN, from the file or SENTRY_DSN, sends errors to
// Sentry as issues and warnings as searchable logs. A sink that cannot be
// opened is reported in the returned error while the logger keeps working
// without it.
//
// # Context Extractors
//
// A [ContextExtractor] turns a request-scoped value into an attribute.
// Extractors run on every record logged with a context, so values set
// late in the request are still picked up:
//
//	log, err := logger.FromConfig(cfg, middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "note created")
//	// {"level":"INFO","msg":"note created","request_id":"9b2f..."}
//
// [NewLogHandlerDecorator] adds extractors to any slog.Handler.
// [NewNope] discards everything and is meant for tests.
package logger
