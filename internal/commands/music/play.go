package music

import (
	"fmt"
	"strings"

	"github.com/KurokuTetsuya/gorou/internal/command"
	"github.com/KurokuTetsuya/gorou/internal/player"

	"github.com/bwmarrin/discordgo"
)

// Play enqueues a track on the guild's session, creating one on first use.
type Play struct {
	command.Base
	players *player.Manager
}

func NewPlay(players *player.Manager) *Play {
	return &Play{
		Base: command.Base{
			CmdName:        "play",
			CmdDescription: "Play a song by title or URL.",
			CmdUsage:       "{prefix}play <query>",
			CmdAliases:     []string{"pl"},
		},
		players: players,
	}
}

func (c *Play) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "query",
				Description: "Song title or URL",
				Required:    true,
			},
		},
	}
}

func (c *Play) Run(ctx *command.Context) error {
	query := strings.TrimSpace(strings.Join(ctx.Args, " "))
	if query == "" {
		return ctx.Responder.SendEphemeral(ctx, "Please provide a song title or URL.")
	}

	session := c.players.GetOrCreate(ctx.GuildID)
	_, hadTrack := session.Current()
	session.Enqueue(player.Track{Title: query, RequesterID: ctx.Author.ID})

	if !hadTrack {
		content := fmt.Sprintf("▶ Start playing: **%s**", query)
		return ctx.Responder.SendComponents(ctx, content, controlRow())
	}
	return ctx.Responder.SendEmbed(ctx, &discordgo.MessageEmbed{
		Description: fmt.Sprintf("✅ Added **%s** to the queue", query),
	})
}
