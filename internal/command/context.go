package command

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// Context is the normalized invocation passed to every command, whether it
// came from a text message, a structured interaction, or a replayed UI
// component.
type Context struct {
	Session *discordgo.Session

	// Exactly one of Message/Event is set, depending on the invocation shape.
	Message *discordgo.MessageCreate
	Event   *discordgo.InteractionCreate

	Author    *discordgo.User
	GuildID   string
	ChannelID string

	// Args are positional tokens for text invocations or arguments the
	// router synthesized when replaying a component.
	Args []string

	// Extra carries router-attached data, e.g. "values" for a selection
	// menu choice or "message" for a context-menu target.
	Extra map[string]any

	// FromComponent marks follow-up invocations replayed from UI elements.
	FromComponent bool

	// Responder abstracts reply/follow-up/edit so commands never talk to
	// the transport directly.
	Responder Responder
}

// Responder is the engine's "send a response" surface. The discord package
// provides the production implementation; tests inject fakes.
type Responder interface {
	Send(ctx *Context, content string) error
	SendEmbed(ctx *Context, embed *discordgo.MessageEmbed) error
	SendEphemeral(ctx *Context, content string) error
	SendEphemeralEmbed(ctx *Context, embed *discordgo.MessageEmbed) error

	// SendTransient sends a message that self-deletes after ttl.
	SendTransient(ctx *Context, content string, ttl time.Duration) error

	// SendComponents sends a message carrying interactive components.
	SendComponents(ctx *Context, content string, components []discordgo.MessageComponent) error

	// DisableComponents edits the originating component message so its
	// elements cannot be reused. Best effort; errors are for logging only.
	DisableComponents(ctx *Context) error
}

// StringExtra returns a string slice stored in Extra, or nil.
func (c *Context) StringExtra(key string) []string {
	if c.Extra == nil {
		return nil
	}
	if v, ok := c.Extra[key].([]string); ok {
		return v
	}
	return nil
}
