// Package logging provides structured logging for the Nutriplan client.
//
// This package wraps zap logger with convenience functions for the logging
// patterns used throughout the client. Logging is silent by default so that
// it never corrupts the interactive terminal UI; set NUTRIPLAN_LOG_LEVEL to
// enable output.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (backend requests/responses, retries)
//   - Info: Normal operations (submissions, discovery results)
//   - Warn: Non-fatal issues (slow backend, submit recovery timeouts)
//   - Error: Fatal issues (startup failures)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Plan submitted",
//	    zap.String("backend", "http://192.168.1.50:5000"),
//	    zap.String("goal", "lose"),
//	    zap.Int("duration_days", 60),
//	)
//
// # Configuration
//
// Initialize logging at startup:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Output Format
//
// Logs are written to stderr in console format so they can be redirected
// away from the interactive terminal:
//
//	2026-08-27T10:30:45.123-0800  DEBUG  Backend request
//	  method=POST
//	  url=http://192.168.1.50:5000/
//	  attempt=1
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
