package general

import (
	"fmt"

	"github.com/KurokuTetsuya/gorou/internal/command"

	"github.com/bwmarrin/discordgo"
)

// Ping reports gateway latency.
type Ping struct {
	command.Base
}

func NewPing() *Ping {
	return &Ping{Base: command.Base{
		CmdName:        "ping",
		CmdDescription: "Shows the current ping of the bot.",
		CmdUsage:       "{prefix}ping",
		CmdAliases:     []string{"pong", "peng", "p", "pingpong"},
	}}
}

func (c *Ping) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *Ping) Run(ctx *command.Context) error {
	description := "🏓 Pong!"
	if ctx.Session != nil {
		description = fmt.Sprintf("🏓 Pong! Gateway latency: **%d** ms", ctx.Session.HeartbeatLatency().Milliseconds())
	}
	return ctx.Responder.SendEmbed(ctx, &discordgo.MessageEmbed{Description: description})
}
