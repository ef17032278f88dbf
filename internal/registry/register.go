package registry

import (
	"context"
	"log"
	"time"

	"github.com/KurokuTetsuya/gorou/internal/command"
	"github.com/KurokuTetsuya/gorou/pkg/retrylimit"

	"github.com/bwmarrin/discordgo"
)

// Platform is the narrow slice of the chat platform the registry needs for
// registration. scope is a guild ID, or "" for the global scope.
type Platform interface {
	RegisteredCommands(scope string) (map[string]*discordgo.ApplicationCommand, error)
	CreateCommand(scope string, def *discordgo.ApplicationCommand) error
}

// HashCache persists definition hashes between restarts so unchanged
// definitions are not re-sent. A nil cache disables that optimization.
type HashCache interface {
	CommandHashes(scope string) map[string]string
	SetCommandHashes(scope string, hashes map[string]string) error
}

// LoadOptions configures the remote registration pass of Load.
type LoadOptions struct {
	Platform Platform
	Hashes   HashCache

	// Development routes registration to DevGuildIDs instead of the
	// global scope.
	Development bool
	DevGuildIDs []string
}

func (o LoadOptions) scopes() []string {
	if o.Development {
		return o.DevGuildIDs
	}
	return []string{""}
}

// registerRemote registers slash schemas and context actions, scope by
// scope, sequentially so log ordering and partial failures stay predictable.
// Failures are logged per command and never abort the pass.
func (r *Registry) registerRemote(opts LoadOptions) {
	lim := retrylimit.NewAdaptiveLimiter(5, 1, 20, 1, 0.5)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, scope := range opts.scopes() {
		r.registerScope(ctx, opts, scope, lim)
	}
}

func (r *Registry) registerScope(ctx context.Context, opts LoadOptions, scope string, lim *retrylimit.AdaptiveLimiter) {
	remote, err := opts.Platform.RegisteredCommands(scope)
	if err != nil {
		log.Printf("[ERR] [%s] Failed to fetch registered commands: %v", scopeLabel(scope), err)
		remote = map[string]*discordgo.ApplicationCommand{}
	}

	var cached map[string]string
	if opts.Hashes != nil {
		cached = opts.Hashes.CommandHashes(scope)
	}
	hashes := make(map[string]string, len(cached))
	for k, v := range cached {
		hashes[k] = v
	}

	for _, cmd := range r.All() {
		for _, def := range definitions(cmd) {
			_, exists := remote[def.Name]
			h := hashDefinition(def)
			if exists && cached[def.Name] == h {
				continue
			}
			if exists && opts.Hashes == nil {
				// No persisted hashes: trust the platform snapshot.
				continue
			}

			err := retrylimit.WithRetryMax(ctx, func() error {
				return opts.Platform.CreateCommand(scope, def)
			}, lim, 3)
			if err != nil {
				log.Printf("[ERR] [%s] Failed to register %s: %v", scopeLabel(scope), def.Name, err)
				continue
			}
			hashes[def.Name] = h
			log.Printf("[DONE] [%s] Registered %s", scopeLabel(scope), def.Name)
		}
	}

	if opts.Hashes != nil {
		if err := opts.Hashes.SetCommandHashes(scope, hashes); err != nil {
			log.Printf("[WARN] [%s] Failed to save command hashes: %v", scopeLabel(scope), err)
		}
	}
}

// definitions returns the platform definitions a command declares: its
// slash schema and/or its context action.
func definitions(cmd command.Command) []*discordgo.ApplicationCommand {
	root := command.Root(cmd)
	var defs []*discordgo.ApplicationCommand

	if sp, ok := root.(command.SlashProvider); ok {
		if def := sp.SlashDefinition(); def != nil {
			if def.Name == "" {
				def.Name = cmd.Name()
			}
			if def.Description == "" {
				def.Description = cmd.Description()
			}
			if def.Type == 0 {
				def.Type = discordgo.ChatApplicationCommand
			}
			defs = append(defs, def)
		}
	}
	if cp, ok := root.(command.ContextMenuProvider); ok {
		if def := cp.ContextDefinition(); def != nil {
			if def.Type == 0 {
				def.Type = discordgo.MessageApplicationCommand
			}
			defs = append(defs, def)
		}
	}
	return defs
}

func scopeLabel(scope string) string {
	if scope == "" {
		return "global"
	}
	return scope
}
