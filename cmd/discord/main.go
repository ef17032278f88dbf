// cmd/discord/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KurokuTetsuya/gorou/internal/commands"
	"github.com/KurokuTetsuya/gorou/internal/config"
	"github.com/KurokuTetsuya/gorou/internal/cooldown"
	"github.com/KurokuTetsuya/gorou/internal/discord"
	"github.com/KurokuTetsuya/gorou/internal/player"
	"github.com/KurokuTetsuya/gorou/internal/registry"
	"github.com/KurokuTetsuya/gorou/internal/storage"
	v "github.com/KurokuTetsuya/gorou/internal/version"
)

func main() {
	log.Printf("[INFO] Starting %v bot...", v.AppName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New()
	if err != nil {
		log.Fatal(err)
	}

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	reg := registry.New()
	players := player.NewManager()

	bot := discord.NewBot(cfg, store, reg, players, commands.Packs(commands.Deps{
		Registry: reg,
		Players:  players,
		Prefix:   cfg.Prefix,
		IsDev:    cfg.IsDevUser,
	}))

	go cooldown.RunSweeper(ctx, bot.Dispatcher().Cooldowns(), time.Minute)

	errCh := make(chan error, 1)
	go func() {
		if err := bot.Run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("[INFO] Received signal %s, shutting down...\n", s)
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Println("[ERR] Discord bot error:", err)
		}
		cancel()
	case <-ctx.Done():
	}

	log.Printf("[INFO] %s exited cleanly", v.AppName)
}
