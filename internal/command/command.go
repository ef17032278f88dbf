// Package command defines the contracts between the dispatch engine and the
// commands it runs: the Command interface, the invocation Context, optional
// provider interfaces for platform registration, and middleware wrappers.
package command

import (
	"github.com/bwmarrin/discordgo"
)

// Command is what the registry indexes and the pipeline executes. Metadata
// is immutable after load except the disabled flag, which the registry owns.
type Command interface {
	Name() string
	Description() string
	Usage() string
	Aliases() []string
	Category() string
	Cooldown() int // seconds; 0 means the tracker default
	DevOnly() bool
	Disabled() bool
	Run(ctx *Context) error
}

// SlashProvider is implemented by commands that declare a structured
// (slash) invocation schema to be registered with the platform.
type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

// ContextMenuProvider is implemented by commands that declare a
// right-click context action.
type ContextMenuProvider interface {
	ContextDefinition() *discordgo.ApplicationCommand
}

// CategoryAssignable is implemented by commands whose category is attached
// at load time from the containing pack.
type CategoryAssignable interface {
	AssignCategory(key string)
}

// Base carries command metadata; concrete commands embed it and implement
// Run. Fields are read through the Command interface accessors.
type Base struct {
	CmdName        string
	CmdDescription string
	CmdUsage       string
	CmdAliases     []string
	CmdCategory    string
	CooldownSec    int
	Dev            bool
	Off            bool
}

func (b *Base) Name() string              { return b.CmdName }
func (b *Base) Description() string       { return b.CmdDescription }
func (b *Base) Usage() string             { return b.CmdUsage }
func (b *Base) Aliases() []string         { return b.CmdAliases }
func (b *Base) Category() string          { return b.CmdCategory }
func (b *Base) Cooldown() int             { return b.CooldownSec }
func (b *Base) DevOnly() bool             { return b.Dev }
func (b *Base) Disabled() bool            { return b.Off }
func (b *Base) AssignCategory(key string) { b.CmdCategory = key }
