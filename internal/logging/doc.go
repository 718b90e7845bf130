// Package logging provides structured logging for the maskedit engine and
// its hosts.
//
// This package wraps a zap logger with convenience functions. The engine
// itself only logs at Debug level; the CLI, interactive editor and WebSocket
// server log their own lifecycle at Info.
//
// # Log Levels
//
//   - Debug: pipeline phases, proposals, hook verdicts, value fixes
//   - Info: server start/stop, connections, opened sessions
//   - Warn: rejected messages, dropped connections
//   - Error: startup failures
//
// # Silent by Default
//
// Nothing is written unless a level is configured, either through
// Initialize or the MASKEDIT_LOG_LEVEL environment variable:
//
//	if err := logging.Initialize(flagLevel); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// # Specialized Logging
//
//	logging.LogPhase(sessionID, "overlaying")
//	logging.LogCommand(sessionID, "increment", 1)
//	logging.LogTokenChange(seq, "09", "10")
//	logging.LogConnection(remoteAddr, "websocket_upgraded")
//
// # Thread Safety
//
// All logging functions are safe for concurrent use once Initialize has
// returned.
package logging
