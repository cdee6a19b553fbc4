// Package discord exposes menu queries as Discord slash commands.
//
// Each guild command is named after a dining hall, so "/카이마루" replies
// with the current Kaimaru menu. Two transports answer the commands:
//
//   - Serve and ListenAndServe run the HTTP interactions endpoint. Discord
//     POSTs each command to it, signed with the application's Ed25519 key,
//     and the handler answers in the same response.
//   - RunGateway connects to the gateway WebSocket with a bot token, the
//     way a classic bot does, and needs no public endpoint.
//
// Payload types, signature checks and REST calls come from discordgo.
//
//	bot, err := discord.NewBot(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	if err := bot.Register(ctx); err != nil { // once per deployment
//	    return err
//	}
//	return bot.ListenAndServe(ctx)
//
// The package holds no menu logic of its own. It forwards the command name
// to query.Service and turns the result into a reply.
package discord
