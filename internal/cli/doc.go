// Package cli holds the pieces the command-line entrypoints share:
// exit-code errors, log flag validation, and logger construction. It
// handles process-level concerns so the commands themselves stay thin.
package cli
