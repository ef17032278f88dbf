// Package discord owns the gateway session and adapts its events onto the
// dispatch pipeline and the interaction router.
package discord

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/KurokuTetsuya/gorou/internal/command"
	"github.com/KurokuTetsuya/gorou/internal/config"
	"github.com/KurokuTetsuya/gorou/internal/cooldown"
	"github.com/KurokuTetsuya/gorou/internal/dispatch"
	"github.com/KurokuTetsuya/gorou/internal/player"
	"github.com/KurokuTetsuya/gorou/internal/registry"
	"github.com/KurokuTetsuya/gorou/internal/router"
	"github.com/KurokuTetsuya/gorou/internal/storage"
	"github.com/KurokuTetsuya/gorou/internal/version"

	"github.com/bwmarrin/discordgo"
)

// Bot wires the session to the engine's components.
type Bot struct {
	dg         *discordgo.Session
	cfg        *config.Config
	storage    *storage.Storage
	registry   *registry.Registry
	dispatcher *dispatch.Dispatcher
	router     *router.Router
	players    *player.Manager
	packs      []registry.Pack
	responder  command.Responder
	loadOnce   sync.Once
}

// NewBot assembles the engine. packs is the static command table.
func NewBot(cfg *config.Config, store *storage.Storage, reg *registry.Registry, players *player.Manager, packs []registry.Pack) *Bot {
	b := &Bot{
		cfg:      cfg,
		storage:  store,
		registry: reg,
		players:  players,
		packs:    packs,
	}
	b.responder = &responder{}

	b.dispatcher = dispatch.New(reg, cooldown.New(), cfg.Prefix, cfg.DevUserIDs)
	if store != nil {
		b.dispatcher.SetHistory(store)
	}
	b.router = router.New(b.dispatcher, players, &voiceStatus{bot: b})
	return b
}

// Dispatcher exposes the pipeline, mainly for command packs that need it.
func (b *Bot) Dispatcher() *dispatch.Dispatcher { return b.dispatcher }

// Run opens the gateway session and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	b.dg = dg

	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent |
		discordgo.IntentsGuildVoiceStates

	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onInteractionCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	log.Println("[INFO] Shutdown signal received. Cleaning up...")
	return nil
}

// onReady loads the command packs once and registers schemas remotely.
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.loadOnce.Do(func() {
		opts := registry.LoadOptions{
			Development: b.cfg.IsDev(),
			DevGuildIDs: b.cfg.DevGuildIDs,
		}
		if b.cfg.RegisterCommands {
			opts.Platform = &appPlatform{dg: s}
			if b.storage != nil {
				opts.Hashes = b.storage
			}
		} else {
			log.Println("[INFO] Remote command registration skipped")
		}
		b.registry.Load(b.packs, opts)
	})
	log.Printf("[INFO] %s is running as %s.", version.AppName, r.User.Username)
}

// onMessageCreate feeds prefixed messages into the pipeline.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	ctx := &command.Context{
		Session:   s,
		Message:   m,
		Author:    m.Author,
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		Responder: b.responder,
	}
	b.dispatcher.HandleText(ctx, m.Content)
}

// onInteractionCreate routes structured invocations and component replays.
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		return
	}
	ctx := &command.Context{
		Session:   s,
		Event:     i,
		Author:    interactionUser(i),
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
		Responder: b.responder,
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.router.HandleApplicationCommand(ctx, i.ApplicationCommandData())
	case discordgo.InteractionMessageComponent:
		b.router.HandleComponent(ctx, i.MessageComponentData())
	}
}

// interactionUser resolves the invoking user from either guild or DM shape.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}
