package music

import (
	"fmt"
	"strings"

	"github.com/KurokuTetsuya/gorou/internal/command"
	"github.com/KurokuTetsuya/gorou/internal/player"

	"github.com/bwmarrin/discordgo"
)

const queuePageSize = 10

// Queue lists the pending tracks.
type Queue struct {
	command.Base
	players *player.Manager
}

func NewQueue(players *player.Manager) *Queue {
	return &Queue{
		Base: command.Base{
			CmdName:        "queue",
			CmdDescription: "List of queued songs.",
			CmdUsage:       "{prefix}queue",
			CmdAliases:     []string{"q"},
			CooldownSec:    3,
		},
		players: players,
	}
}

func (c *Queue) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *Queue) Run(ctx *command.Context) error {
	session, ok := c.players.Get(ctx.GuildID)
	if !ok {
		return nil
	}

	var lines []string
	for i, track := range session.Queue() {
		if i == queuePageSize {
			lines = append(lines, fmt.Sprintf("...and %d more", len(session.Queue())-queuePageSize))
			break
		}
		lines = append(lines, fmt.Sprintf("**%d.** %s <@%s>", i+1, track.Title, track.RequesterID))
	}
	body := "Empty, add some by using the `play` command"
	if len(lines) > 0 {
		body = strings.Join(lines, "\n")
	}

	embed := &discordgo.MessageEmbed{Description: body}
	if current, ok := session.Current(); ok {
		embed.Title = fmt.Sprintf("▶ Now playing: %s", current.Title)
	}
	return ctx.Responder.SendEmbed(ctx, embed)
}
