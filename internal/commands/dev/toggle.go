package dev

import (
	"fmt"
	"strings"

	"github.com/KurokuTetsuya/gorou/internal/command"
	"github.com/KurokuTetsuya/gorou/internal/registry"

	"github.com/bwmarrin/discordgo"
)

// Toggle enables or disables a command at runtime.
type Toggle struct {
	command.Base
	registry *registry.Registry
}

func NewToggle(reg *registry.Registry) *Toggle {
	return &Toggle{
		Base: command.Base{
			CmdName:        "toggle",
			CmdDescription: "Enable or disable a command.",
			CmdUsage:       "{prefix}toggle <command>",
			Dev:            true,
		},
		registry: reg,
	}
}

func (c *Toggle) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "command",
				Description: "Command name or alias to toggle",
				Required:    true,
			},
		},
	}
}

func (c *Toggle) Run(ctx *command.Context) error {
	if len(ctx.Args) == 0 {
		return ctx.Responder.SendEphemeral(ctx, "Usage: "+strings.ReplaceAll(c.Usage(), "{prefix}", ""))
	}
	name := strings.ToLower(ctx.Args[0])
	target, ok := c.registry.Get(name)
	if !ok {
		return ctx.Responder.SendEphemeral(ctx, fmt.Sprintf("Command `%s` not found.", name))
	}
	if target.Name() == c.Name() {
		return ctx.Responder.SendEphemeral(ctx, "Refusing to toggle myself.")
	}
	next := !c.registry.IsDisabled(target.Name())
	c.registry.SetDisabled(target.Name(), next)
	state := "enabled"
	if next {
		state = "disabled"
	}
	return ctx.Responder.SendEphemeral(ctx, fmt.Sprintf("Command `%s` is now %s.", target.Name(), state))
}
