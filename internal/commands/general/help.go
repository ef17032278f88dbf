package general

import (
	"fmt"
	"strings"

	"github.com/KurokuTetsuya/gorou/internal/command"
	"github.com/KurokuTetsuya/gorou/internal/cooldown"
	"github.com/KurokuTetsuya/gorou/internal/registry"
	"github.com/KurokuTetsuya/gorou/internal/token"
	"github.com/KurokuTetsuya/gorou/internal/version"

	"github.com/bwmarrin/discordgo"
)

// Help lists commands by category or shows detail for one command. Near
// misses get a select menu whose choices replay help for the picked command.
type Help struct {
	command.Base
	registry *registry.Registry
	prefix   string
	isDev    func(userID string) bool
}

func NewHelp(reg *registry.Registry, prefix string, isDev func(string) bool) *Help {
	return &Help{
		Base: command.Base{
			CmdName:        "help",
			CmdDescription: "Shows the help menu or help for a specific command.",
			CmdUsage:       "{prefix}help [command]",
			CmdAliases:     []string{"commands", "cmds", "info"},
		},
		registry: reg,
		prefix:   prefix,
		isDev:    isDev,
	}
}

func (c *Help) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "command",
				Description: "Command name to view specific info about",
			},
		},
	}
}

func (c *Help) Run(ctx *command.Context) error {
	target := ""
	if len(ctx.Args) > 0 {
		target = strings.ToLower(ctx.Args[0])
	} else if values := ctx.StringExtra("values"); len(values) > 0 {
		target = values[0]
	}

	if target == "" {
		return c.sendListing(ctx)
	}
	if cmd, ok := c.registry.Get(target); ok {
		return c.sendDetail(ctx, cmd)
	}
	return c.sendSuggestions(ctx, target)
}

func (c *Help) sendListing(ctx *command.Context) error {
	privileged := c.isDev != nil && c.isDev(ctx.Author.ID)

	embed := &discordgo.MessageEmbed{
		Title:  version.AppName + " Help Menu",
		Footer: &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("%shelp <command> to get more info on a specific command", c.prefix)},
	}
	for _, cat := range c.registry.Categories() {
		if cat.Hidden && !privileged {
			continue
		}
		var names []string
		for _, cmd := range c.registry.CommandsIn(cat.Key) {
			if cmd.DevOnly() && !privileged {
				continue
			}
			names = append(names, fmt.Sprintf("`%s`", cmd.Name()))
		}
		if len(names) == 0 {
			continue
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  cat.Name,
			Value: strings.Join(names, ", "),
		})
	}
	return ctx.Responder.SendEmbed(ctx, embed)
}

func (c *Help) sendDetail(ctx *command.Context, cmd command.Command) error {
	aliases := "none"
	if len(cmd.Aliases()) > 0 {
		aliases = strings.Join(cmd.Aliases(), ", ")
	}
	seconds := cmd.Cooldown()
	if seconds <= 0 {
		seconds = cooldown.DefaultSeconds
	}
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Information for the %s command", cmd.Name()),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Name", Value: cmd.Name(), Inline: true},
			{Name: "Category", Value: cmd.Category(), Inline: true},
			{Name: "Aliases", Value: aliases, Inline: true},
			{Name: "Cooldown", Value: fmt.Sprintf("%ds", seconds), Inline: true},
			{Name: "Description", Value: cmd.Description()},
			{Name: "Usage", Value: strings.ReplaceAll(cmd.Usage(), "{prefix}", c.prefix)},
		},
	}
	return ctx.Responder.SendEmbed(ctx, embed)
}

// sendSuggestions offers near-miss command names in a select menu bound to
// the asking user.
func (c *Help) sendSuggestions(ctx *command.Context, target string) error {
	matches := c.registry.Filter(func(cmd command.Command) bool {
		return strings.Contains(cmd.Name(), target) && !cmd.DevOnly()
	})
	if len(matches) == 0 {
		return ctx.Responder.SendEphemeral(ctx, fmt.Sprintf("Couldn't find a command named `%s`.", target))
	}

	options := make([]discordgo.SelectMenuOption, 0, len(matches))
	for _, m := range matches {
		if len(options) == 10 {
			break
		}
		options = append(options, discordgo.SelectMenuOption{
			Label:       m.Name(),
			Value:       m.Name(),
			Description: m.Description(),
		})
	}
	menu := discordgo.SelectMenu{
		CustomID:    token.UserCommand(ctx.Author.ID, "help"),
		Placeholder: "Did you mean one of these?",
		Options:     options,
	}
	return ctx.Responder.SendComponents(ctx,
		fmt.Sprintf("Couldn't find a command named `%s`. Maybe you meant:", target),
		[]discordgo.MessageComponent{discordgo.ActionsRow{Components: []discordgo.MessageComponent{menu}}},
	)
}
