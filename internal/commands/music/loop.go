package music

import (
	"fmt"
	"strings"

	"github.com/KurokuTetsuya/gorou/internal/command"
	"github.com/KurokuTetsuya/gorou/internal/player"

	"github.com/bwmarrin/discordgo"
)

// Loop sets or cycles the loop mode for the current session.
type Loop struct {
	command.Base
	players *player.Manager
}

func NewLoop(players *player.Manager) *Loop {
	return &Loop{
		Base: command.Base{
			CmdName:        "loop",
			CmdDescription: "Loop the current song or the whole queue.",
			CmdUsage:       "{prefix}loop [off|track|queue]",
			CmdAliases:     []string{"repeat"},
		},
		players: players,
	}
}

func (c *Loop) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "mode",
				Description: "Loop mode to switch to",
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "off", Value: "off"},
					{Name: "track", Value: "track"},
					{Name: "queue", Value: "queue"},
				},
			},
		},
	}
}

func (c *Loop) Run(ctx *command.Context) error {
	session, ok := c.players.Get(ctx.GuildID)
	if !ok {
		return nil
	}
	mode := session.Loop().Next()
	if len(ctx.Args) > 0 {
		parsed, ok := player.ParseLoopMode(strings.ToLower(ctx.Args[0]))
		if !ok {
			return ctx.Responder.SendEphemeral(ctx, "Loop mode must be one of `off`, `track` or `queue`.")
		}
		mode = parsed
	}
	session.SetLoop(mode)
	return ctx.Responder.SendEmbed(ctx, &discordgo.MessageEmbed{
		Description: fmt.Sprintf("🔁 Loop mode set to **%s**", mode),
	})
}
