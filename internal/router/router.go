// Package router re-routes component interactions (menus, buttons, context
// actions, slash calls) back into the dispatch pipeline, or performs inline
// playback actions for player buttons.
package router

import (
	"fmt"
	"log"
	"time"

	"github.com/KurokuTetsuya/gorou/internal/command"
	"github.com/KurokuTetsuya/gorou/internal/dispatch"
	"github.com/KurokuTetsuya/gorou/internal/player"
	"github.com/KurokuTetsuya/gorou/internal/token"

	"github.com/bwmarrin/discordgo"
)

// guardNoticeTTL is how long button guard failures stay visible.
const guardNoticeTTL = 5 * time.Second

// VoiceStatus is the live voice/channel state the button guards need. The
// discord package implements it over the gateway state cache.
type VoiceStatus interface {
	// UserChannel returns the voice channel the user currently occupies.
	UserChannel(guildID, userID string) (string, bool)
	// BotChannel returns the voice channel the bot is bound to, if any.
	BotChannel(guildID string) (string, bool)
	// HasVoicePermissions reports whether the bot may connect and speak.
	HasVoicePermissions(guildID, channelID string) bool
	// Joinable reports whether the channel has room for the bot.
	Joinable(guildID, channelID string) bool
}

// Router decodes component tokens, re-authorizes the original invoker and
// replays the appropriate action.
type Router struct {
	dispatcher *dispatch.Dispatcher
	players    *player.Manager
	voice      VoiceStatus
}

// New builds a router over the dispatcher, session manager and voice state.
func New(d *dispatch.Dispatcher, players *player.Manager, voice VoiceStatus) *Router {
	return &Router{dispatcher: d, players: players, voice: voice}
}

// HandleApplicationCommand routes a structured invocation: a slash call by
// declared schema name, or a context-menu action by declared action name.
func (r *Router) HandleApplicationCommand(ctx *command.Context, data discordgo.ApplicationCommandInteractionData) {
	if data.CommandType == discordgo.MessageApplicationCommand {
		cmd, ok := r.dispatcher.Registry().Find(func(c command.Command) bool {
			cp, ok := command.Root(c).(command.ContextMenuProvider)
			return ok && cp.ContextDefinition() != nil && cp.ContextDefinition().Name == data.Name
		})
		if !ok {
			return
		}
		r.dispatcher.Dispatch(cmd, ctx)
		return
	}

	cmd, ok := r.dispatcher.Registry().Find(func(c command.Command) bool {
		sp, ok := command.Root(c).(command.SlashProvider)
		return ok && sp.SlashDefinition() != nil && slashName(c) == data.Name
	})
	if !ok {
		// Structured invocations require an acknowledgement.
		if ctx.Responder != nil {
			_ = ctx.Responder.SendEphemeral(ctx, "Command not found.")
		}
		return
	}
	ctx.Args = optionArgs(data)
	r.dispatcher.Dispatch(cmd, ctx)
}

// HandleComponent routes a select-menu choice or button press.
func (r *Router) HandleComponent(ctx *command.Context, data discordgo.MessageComponentInteractionData) {
	raw, err := token.Decode(data.CustomID)
	if err != nil {
		log.Printf("[WARN] Undecodable component id %q: %v", data.CustomID, err)
		return
	}

	ctx.FromComponent = true
	if data.ComponentType == discordgo.SelectMenuComponent {
		r.handleSelect(ctx, raw, data.Values)
		return
	}
	r.handleButton(ctx, raw)
}

// handleSelect re-authorizes the original invoker, attaches the selected
// values and replays the command. The originating menu is disabled best
// effort afterwards.
func (r *Router) handleSelect(ctx *command.Context, raw string, values []string) {
	userID, cmdName := token.ParseUserCommand(raw)
	if ctx.Author == nil || ctx.Author.ID != userID {
		if ctx.Responder != nil {
			_ = ctx.Responder.SendEphemeral(ctx, fmt.Sprintf("That menu is only for <@%s>.", userID))
		}
		return
	}

	cmd, ok := r.dispatcher.Resolve(cmdName)
	if !ok {
		return
	}
	if ctx.Extra == nil {
		ctx.Extra = make(map[string]any)
	}
	ctx.Extra["values"] = values
	r.dispatcher.Dispatch(cmd, ctx)

	if ctx.Responder != nil {
		if err := ctx.Responder.DisableComponents(ctx); err != nil {
			log.Println("[WARN] Failed to disable select menu:", err)
		}
	}
}

// handleButton validates the playback preconditions in order and applies the
// action. The first failing guard wins; each failure is a self-dismissing
// ephemeral notice.
func (r *Router) handleButton(ctx *command.Context, raw string) {
	action, ok := token.SplitPlayerAction(raw)
	if !ok {
		return
	}
	if ctx.Author == nil {
		return
	}

	session, reason := r.guard(ctx)
	if reason != "" {
		if ctx.Responder != nil {
			_ = ctx.Responder.SendTransient(ctx, reason, guardNoticeTTL)
		}
		return
	}

	switch action {
	case "resumepause":
		if session.TogglePause() {
			r.transient(ctx, "Paused current music.")
		} else {
			r.transient(ctx, "Resumed current music.")
		}
	case "stop":
		session.Reset()
		r.players.Destroy(ctx.GuildID)
		r.transient(ctx, "Stopped current queue.")
	case "loop":
		// Re-enter the pipeline as if the user typed the loop command
		// with the next mode.
		cmd, ok := r.dispatcher.Resolve("loop")
		if !ok {
			return
		}
		ctx.Args = []string{session.Loop().Next().String()}
		r.dispatcher.Dispatch(cmd, ctx)
	default:
		cmd, ok := r.dispatcher.Resolve(action)
		if !ok {
			return
		}
		r.dispatcher.Dispatch(cmd, ctx)
	}
}

// guard evaluates the button preconditions. An empty reason means all guards
// passed and the session is usable.
func (r *Router) guard(ctx *command.Context) (*player.Session, string) {
	session, ok := r.players.Get(ctx.GuildID)
	if !ok {
		return nil, "I'm not playing anything right now."
	}
	userChannel, ok := r.voice.UserChannel(ctx.GuildID, ctx.Author.ID)
	if !ok {
		return nil, "Please join a voice channel."
	}
	if !r.voice.HasVoicePermissions(ctx.GuildID, userChannel) {
		return nil, "I'm missing Connect or Speak permission in your voice channel."
	}
	if !r.voice.Joinable(ctx.GuildID, userChannel) {
		return nil, "I can't join your voice channel."
	}
	if botChannel, bound := r.voice.BotChannel(ctx.GuildID); bound && botChannel != userChannel {
		return nil, "I'm already used in another voice channel."
	}
	return session, ""
}

func (r *Router) transient(ctx *command.Context, content string) {
	if ctx.Responder == nil {
		return
	}
	if err := ctx.Responder.SendTransient(ctx, content, guardNoticeTTL); err != nil {
		log.Println("[WARN] Failed to send player notice:", err)
	}
}

// slashName returns the name a command's slash schema registers under.
func slashName(c command.Command) string {
	sp, ok := command.Root(c).(command.SlashProvider)
	if !ok {
		return ""
	}
	def := sp.SlashDefinition()
	if def == nil {
		return ""
	}
	if def.Name != "" {
		return def.Name
	}
	return c.Name()
}

// optionArgs flattens typed option values into positional arguments so
// commands can treat both invocation shapes alike.
func optionArgs(data discordgo.ApplicationCommandInteractionData) []string {
	var args []string
	for _, opt := range data.Options {
		switch opt.Type {
		case discordgo.ApplicationCommandOptionString:
			args = append(args, opt.StringValue())
		case discordgo.ApplicationCommandOptionInteger:
			args = append(args, fmt.Sprintf("%d", opt.IntValue()))
		case discordgo.ApplicationCommandOptionBoolean:
			args = append(args, fmt.Sprintf("%t", opt.BoolValue()))
		}
	}
	return args
}
