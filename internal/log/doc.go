// Package log provides slog based logging that masks credentials before
// they reach the output.
//
// The bot handles a Discord bot token, signed interaction requests and an
// Authorization header on every REST call. SecureHandler wraps any
// slog.Handler and replaces:
//   - attributes whose key names a credential (token, authorization, secret, signature)
//   - values that look like a Discord bot token, a "Bot" or "Bearer" header, or a JWT
//   - private key blocks
//
// Masking happens at every log level, including debug.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("registering commands",
//	    "authorization", "Bot "+token, // logged as ***REDACTED***
//	    "guild", guildID,
//	)
//	slog.SetDefault(logger)
package log
