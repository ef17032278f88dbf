package discord

import (
	"errors"
	"log"
	"time"

	"github.com/KurokuTetsuya/gorou/internal/command"

	"github.com/bwmarrin/discordgo"
)

// EmbedColor is the accent color for all bot embeds.
const EmbedColor = 0x00b0f4

// responder implements command.Responder over the live session carried on
// each context. Interaction contexts reply (or follow up once a reply
// exists); message contexts send to the originating channel.
type responder struct{}

func (responder) Send(ctx *command.Context, content string) error {
	if ctx.Event != nil {
		return respondOrFollowup(ctx, &discordgo.InteractionResponseData{Content: content}, false)
	}
	_, err := ctx.Session.ChannelMessageSend(ctx.ChannelID, content)
	return err
}

func (responder) SendEmbed(ctx *command.Context, embed *discordgo.MessageEmbed) error {
	if embed.Color == 0 {
		embed.Color = EmbedColor
	}
	if ctx.Event != nil {
		return respondOrFollowup(ctx, &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		}, false)
	}
	_, err := ctx.Session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
	return err
}

func (responder) SendEphemeral(ctx *command.Context, content string) error {
	if ctx.Event != nil {
		return respondOrFollowup(ctx, &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		}, true)
	}
	_, err := ctx.Session.ChannelMessageSend(ctx.ChannelID, content)
	return err
}

func (responder) SendEphemeralEmbed(ctx *command.Context, embed *discordgo.MessageEmbed) error {
	if embed.Color == 0 {
		embed.Color = EmbedColor
	}
	if ctx.Event != nil {
		return respondOrFollowup(ctx, &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		}, true)
	}
	_, err := ctx.Session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
	return err
}

// SendTransient delivers a notice that cleans itself up after ttl.
func (responder) SendTransient(ctx *command.Context, content string, ttl time.Duration) error {
	if ctx.Event != nil {
		msg, err := ctx.Session.FollowupMessageCreate(ctx.Event.Interaction, true, &discordgo.WebhookParams{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		})
		if err != nil {
			// No prior response to follow up on; reply instead.
			if rerr := ctx.Session.InteractionRespond(ctx.Event.Interaction, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: &discordgo.InteractionResponseData{
					Content: content,
					Flags:   discordgo.MessageFlagsEphemeral,
				},
			}); rerr != nil {
				return rerr
			}
			interaction := ctx.Event.Interaction
			time.AfterFunc(ttl, func() {
				if derr := ctx.Session.InteractionResponseDelete(interaction); derr != nil {
					log.Println("[WARN] Failed to delete transient response:", derr)
				}
			})
			return nil
		}
		interaction := ctx.Event.Interaction
		time.AfterFunc(ttl, func() {
			if derr := ctx.Session.FollowupMessageDelete(interaction, msg.ID); derr != nil {
				log.Println("[WARN] Failed to delete transient followup:", derr)
			}
		})
		return nil
	}

	msg, err := ctx.Session.ChannelMessageSend(ctx.ChannelID, content)
	if err != nil {
		return err
	}
	time.AfterFunc(ttl, func() {
		if derr := ctx.Session.ChannelMessageDelete(ctx.ChannelID, msg.ID); derr != nil {
			log.Println("[WARN] Failed to delete transient message:", derr)
		}
	})
	return nil
}

func (responder) SendComponents(ctx *command.Context, content string, components []discordgo.MessageComponent) error {
	if ctx.Event != nil {
		return respondOrFollowup(ctx, &discordgo.InteractionResponseData{
			Content:    content,
			Components: components,
		}, false)
	}
	_, err := ctx.Session.ChannelMessageSendComplex(ctx.ChannelID, &discordgo.MessageSend{
		Content:    content,
		Components: components,
	})
	return err
}

// DisableComponents strips the components off the message the interaction
// originated from, so a consumed menu cannot be replayed.
func (responder) DisableComponents(ctx *command.Context) error {
	if ctx.Event == nil || ctx.Event.Message == nil {
		return errors.New("no originating component message")
	}
	edit := discordgo.NewMessageEdit(ctx.Event.Message.ChannelID, ctx.Event.Message.ID)
	empty := []discordgo.MessageComponent{}
	edit.Components = &empty
	_, err := ctx.Session.ChannelMessageEditComplex(edit)
	return err
}

// respondOrFollowup replies to the interaction, falling back to a followup
// when a response already exists.
func respondOrFollowup(ctx *command.Context, data *discordgo.InteractionResponseData, ephemeral bool) error {
	err := ctx.Session.InteractionRespond(ctx.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err == nil {
		return nil
	}
	_, ferr := ctx.Session.FollowupMessageCreate(ctx.Event.Interaction, ephemeral, &discordgo.WebhookParams{
		Content:    data.Content,
		Embeds:     data.Embeds,
		Components: data.Components,
		Flags:      data.Flags,
	})
	return ferr
}
