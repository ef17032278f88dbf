// Package music implements the playback commands. They drive the per-guild
// session collaborator; resolving and streaming the actual media lives
// behind that surface.
package music

import (
	"github.com/KurokuTetsuya/gorou/internal/command"
	"github.com/KurokuTetsuya/gorou/internal/player"
	"github.com/KurokuTetsuya/gorou/internal/token"

	"github.com/bwmarrin/discordgo"
)

// WithSession guards a command behind an active playback session. Without
// one the invoker gets a not-playing notice and the wrapped command never
// runs.
func WithSession(players *player.Manager) command.Middleware {
	return func(cmd command.Command) command.Command {
		return &command.Wrapped{
			Command: cmd,
			Wrap: func(ctx *command.Context) error {
				if _, ok := players.Get(ctx.GuildID); !ok {
					if ctx.Responder != nil {
						return ctx.Responder.SendEphemeral(ctx, "I'm not playing anything right now.")
					}
					return nil
				}
				return cmd.Run(ctx)
			},
		}
	}
}

// controlRow builds the playback button row. The ids round-trip through the
// component token format back into the button actions.
func controlRow() []discordgo.MessageComponent {
	buttons := []struct {
		label  string
		action string
	}{
		{"Pause/Resume", "resumepause"},
		{"Stop", "stop"},
		{"Skip", "skip"},
		{"Loop", "loop"},
		{"Shuffle", "shuffle"},
	}
	row := discordgo.ActionsRow{}
	for _, b := range buttons {
		row.Components = append(row.Components, discordgo.Button{
			Label:    b.label,
			Style:    discordgo.SecondaryButton,
			CustomID: token.PlayerAction(b.action),
		})
	}
	return []discordgo.MessageComponent{row}
}
