// Package commands assembles the command packs the bot loads at startup.
package commands

import (
	"github.com/KurokuTetsuya/gorou/internal/command"
	"github.com/KurokuTetsuya/gorou/internal/commands/dev"
	"github.com/KurokuTetsuya/gorou/internal/commands/general"
	"github.com/KurokuTetsuya/gorou/internal/commands/music"
	"github.com/KurokuTetsuya/gorou/internal/player"
	"github.com/KurokuTetsuya/gorou/internal/registry"
)

// Deps carries the shared state command constructors close over.
type Deps struct {
	Registry *registry.Registry
	Players  *player.Manager
	Prefix   string
	IsDev    func(userID string) bool
}

func factory(fn func() command.Command) registry.Factory {
	return func() (command.Command, error) { return fn(), nil }
}

// Packs returns every command pack grouped by category.
func Packs(d Deps) []registry.Pack {
	withSession := func(cmd command.Command) command.Command {
		return command.ApplyMiddlewares(cmd, music.WithSession(d.Players))
	}
	return []registry.Pack{
		{
			Category: registry.Category{Key: "general", Name: "General"},
			Commands: []registry.Factory{
				factory(func() command.Command { return general.NewPing() }),
				factory(func() command.Command { return general.NewHelp(d.Registry, d.Prefix, d.IsDev) }),
			},
		},
		{
			Category: registry.Category{Key: "music", Name: "Music"},
			Commands: []registry.Factory{
				// play creates the session; everything else needs one.
				factory(func() command.Command { return music.NewPlay(d.Players) }),
				factory(func() command.Command { return withSession(music.NewQueue(d.Players)) }),
				factory(func() command.Command { return withSession(music.NewSkip(d.Players)) }),
				factory(func() command.Command { return withSession(music.NewStop(d.Players)) }),
				factory(func() command.Command { return withSession(music.NewPause(d.Players)) }),
				factory(func() command.Command { return withSession(music.NewLoop(d.Players)) }),
				factory(func() command.Command { return withSession(music.NewShuffle(d.Players)) }),
				factory(func() command.Command { return withSession(music.NewNowPlaying(d.Players)) }),
			},
		},
		{
			Category: registry.Category{Key: "dev", Name: "Developer", Hidden: true},
			Commands: []registry.Factory{
				factory(func() command.Command { return dev.NewToggle(d.Registry) }),
			},
		},
	}
}
