package music

import (
	"fmt"

	"github.com/KurokuTetsuya/gorou/internal/command"
	"github.com/KurokuTetsuya/gorou/internal/player"

	"github.com/bwmarrin/discordgo"
)

func plainSlash(name, description string) *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{Name: name, Description: description}
}

// Skip advances to the next queued track.
type Skip struct {
	command.Base
	players *player.Manager
}

func NewSkip(players *player.Manager) *Skip {
	return &Skip{
		Base: command.Base{
			CmdName:        "skip",
			CmdDescription: "Skip the current song.",
			CmdUsage:       "{prefix}skip",
			CmdAliases:     []string{"next"},
			CooldownSec:    3,
		},
		players: players,
	}
}

func (c *Skip) SlashDefinition() *discordgo.ApplicationCommand {
	return plainSlash(c.Name(), c.Description())
}

func (c *Skip) Run(ctx *command.Context) error {
	session, ok := c.players.Get(ctx.GuildID)
	if !ok {
		return nil
	}
	if next, ok := session.Skip(); ok {
		return ctx.Responder.SendEmbed(ctx, &discordgo.MessageEmbed{
			Description: fmt.Sprintf("⏭ Skipped. Now playing **%s**", next.Title),
		})
	}
	return ctx.Responder.SendEmbed(ctx, &discordgo.MessageEmbed{
		Description: "⏭ Skipped. The queue is now empty.",
	})
}

// Stop destroys the session and resets playback state.
type Stop struct {
	command.Base
	players *player.Manager
}

func NewStop(players *player.Manager) *Stop {
	return &Stop{
		Base: command.Base{
			CmdName:        "stop",
			CmdDescription: "Stop the current queue.",
			CmdUsage:       "{prefix}stop",
			CmdAliases:     []string{"dc", "disconnect"},
			CooldownSec:    3,
		},
		players: players,
	}
}

func (c *Stop) SlashDefinition() *discordgo.ApplicationCommand {
	return plainSlash(c.Name(), c.Description())
}

func (c *Stop) Run(ctx *command.Context) error {
	session, ok := c.players.Get(ctx.GuildID)
	if !ok {
		return nil
	}
	session.Reset()
	c.players.Destroy(ctx.GuildID)
	return ctx.Responder.SendEmbed(ctx, &discordgo.MessageEmbed{Description: "⏹ Stopped current queue"})
}

// Pause toggles the pause state.
type Pause struct {
	command.Base
	players *player.Manager
}

func NewPause(players *player.Manager) *Pause {
	return &Pause{
		Base: command.Base{
			CmdName:        "pause",
			CmdDescription: "Pause or resume the current song.",
			CmdUsage:       "{prefix}pause",
			CmdAliases:     []string{"resume"},
		},
		players: players,
	}
}

func (c *Pause) SlashDefinition() *discordgo.ApplicationCommand {
	return plainSlash(c.Name(), c.Description())
}

func (c *Pause) Run(ctx *command.Context) error {
	session, ok := c.players.Get(ctx.GuildID)
	if !ok {
		return nil
	}
	if session.TogglePause() {
		return ctx.Responder.SendEmbed(ctx, &discordgo.MessageEmbed{Description: "⏸ Paused current music"})
	}
	return ctx.Responder.SendEmbed(ctx, &discordgo.MessageEmbed{Description: "▶ Resumed current music"})
}

// Shuffle randomizes the queue order.
type Shuffle struct {
	command.Base
	players *player.Manager
}

func NewShuffle(players *player.Manager) *Shuffle {
	return &Shuffle{
		Base: command.Base{
			CmdName:        "shuffle",
			CmdDescription: "Shuffle the queue.",
			CmdUsage:       "{prefix}shuffle",
		},
		players: players,
	}
}

func (c *Shuffle) SlashDefinition() *discordgo.ApplicationCommand {
	return plainSlash(c.Name(), c.Description())
}

func (c *Shuffle) Run(ctx *command.Context) error {
	session, ok := c.players.Get(ctx.GuildID)
	if !ok {
		return nil
	}
	session.Shuffle()
	return ctx.Responder.SendEmbed(ctx, &discordgo.MessageEmbed{Description: "🔀 Shuffled the queue"})
}

// NowPlaying shows the current track.
type NowPlaying struct {
	command.Base
	players *player.Manager
}

func NewNowPlaying(players *player.Manager) *NowPlaying {
	return &NowPlaying{
		Base: command.Base{
			CmdName:        "nowplaying",
			CmdDescription: "Show the song that is currently playing.",
			CmdUsage:       "{prefix}nowplaying",
			CmdAliases:     []string{"np"},
		},
		players: players,
	}
}

func (c *NowPlaying) SlashDefinition() *discordgo.ApplicationCommand {
	return plainSlash(c.Name(), c.Description())
}

func (c *NowPlaying) Run(ctx *command.Context) error {
	session, ok := c.players.Get(ctx.GuildID)
	if !ok {
		return nil
	}
	current, ok := session.Current()
	if !ok {
		return ctx.Responder.SendEphemeral(ctx, "Nothing is playing right now.")
	}
	state := "▶"
	if session.Paused() {
		state = "⏸"
	}
	content := fmt.Sprintf("%s **%s** <@%s>", state, current.Title, current.RequesterID)
	return ctx.Responder.SendComponents(ctx, content, controlRow())
}
