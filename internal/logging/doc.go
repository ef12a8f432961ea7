// Package logging provides structured logging utilities built on log/slog.
//
// It defines canonical attribute keys used across the application so that
// log output stays consistent and greppable, along with helpers for
// attaching common attributes (operation, tool, transport, status, error).
//
// Email bodies and addresses are PII. Code that needs to log them should
// go through Snippet (short previews of bodies) or AnonymizeEmail (hashed
// correlation IDs) rather than logging raw values.
//
// Example usage:
//
//	logger := logging.Setup(slog.LevelInfo, "text")
//	logger.Info("categorizing email",
//	    logging.Operation("categorize"),
//	    "preview", logging.Snippet(body, 100),
//	)
package logging
