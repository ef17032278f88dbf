// Package dispatch resolves invocations to registered commands and executes
// them behind the authorization and cooldown gates, containing any failure
// so one bad command never takes the process down.
package dispatch

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/KurokuTetsuya/gorou/internal/command"
	"github.com/KurokuTetsuya/gorou/internal/cooldown"
	"github.com/KurokuTetsuya/gorou/internal/registry"
	"github.com/KurokuTetsuya/gorou/internal/storage"
)

// cooldownNoticeTTL is how long the transient rate-limit notice stays up.
const cooldownNoticeTTL = 3500 * time.Millisecond

// History receives the audit trail of executed commands. *storage.Storage
// implements it; a nil history disables persistence.
type History interface {
	AppendCommandHistory(guildID string, rec storage.CommandHistoryRecord) error
}

// Dispatcher is the pipeline between a raw invocation and a command's Run.
type Dispatcher struct {
	registry  *registry.Registry
	cooldowns *cooldown.Tracker
	prefix    string
	devs      map[string]struct{}
	history   History
}

// New builds a dispatcher over the given registry and tracker. devIDs are
// the privileged users: exempt from cooldowns, allowed dev-only commands.
func New(reg *registry.Registry, cd *cooldown.Tracker, prefix string, devIDs []string) *Dispatcher {
	devs := make(map[string]struct{}, len(devIDs))
	for _, id := range devIDs {
		devs[id] = struct{}{}
	}
	return &Dispatcher{
		registry:  reg,
		cooldowns: cd,
		prefix:    prefix,
		devs:      devs,
	}
}

// SetHistory attaches the audit sink.
func (d *Dispatcher) SetHistory(h History) { d.history = h }

// Prefix returns the configured text command prefix.
func (d *Dispatcher) Prefix() string { return d.prefix }

// IsDev reports whether a user is in the developer allow-list.
func (d *Dispatcher) IsDev(userID string) bool {
	_, ok := d.devs[userID]
	return ok
}

// Registry exposes the registry for collaborators (router, help).
func (d *Dispatcher) Registry() *registry.Registry { return d.registry }

// Cooldowns exposes the tracker so callers can run its sweeper.
func (d *Dispatcher) Cooldowns() *cooldown.Tracker { return d.cooldowns }

// HandleText feeds a raw message through the pipeline. Content not starting
// with the prefix, unknown names and disabled commands are silently dropped.
func (d *Dispatcher) HandleText(ctx *command.Context, content string) {
	if !strings.HasPrefix(content, d.prefix) {
		return
	}
	tokens := strings.Fields(strings.TrimPrefix(content, d.prefix))
	if len(tokens) == 0 {
		return
	}
	name := strings.ToLower(tokens[0])
	cmd, ok := d.registry.Get(name)
	if !ok {
		return
	}
	ctx.Args = tokens[1:]
	d.Dispatch(cmd, ctx)
}

// Resolve looks up a command by name or alias. Disabled commands still
// resolve; Dispatch is the gate that drops them.
func (d *Dispatcher) Resolve(name string) (command.Command, bool) {
	cmd, ok := d.registry.Get(name)
	if !ok {
		return nil, false
	}
	return cmd, true
}

// Dispatch runs the authorization and cooldown gates, then executes.
// Unauthorized and disabled invocations are dropped without feedback;
// cooldown denials get a transient notice.
func (d *Dispatcher) Dispatch(cmd command.Command, ctx *command.Context) {
	if ctx.Author == nil {
		return
	}
	if d.registry.IsDisabled(cmd.Name()) {
		return
	}

	privileged := d.IsDev(ctx.Author.ID)

	// Deny by silence: dev-only commands must not reveal themselves.
	if cmd.DevOnly() && !privileged {
		return
	}

	remaining, ok := d.cooldowns.Check(cmd.Name(), ctx.Author.ID, cmd.Cooldown(), privileged)
	if !ok {
		if ctx.Responder != nil {
			notice := fmt.Sprintf("**%s**, please wait **%.1f** seconds of cooldown time.", ctx.Author.Username, remaining)
			if err := ctx.Responder.SendTransient(ctx, notice, cooldownNoticeTTL); err != nil {
				log.Println("[WARN] Failed to send cooldown notice:", err)
			}
		}
		return
	}

	d.execute(cmd, ctx)
}

// execute contains every failure mode of a command body: error returns are
// logged, panics are recovered, and the audit line is written either way.
func (d *Dispatcher) execute(cmd command.Command, ctx *command.Context) {
	defer d.audit(cmd, ctx)
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERR] Command %s panicked: %v", cmd.Name(), r)
		}
	}()

	if err := cmd.Run(ctx); err != nil {
		log.Printf("[ERR] Command %s from %s category failed for %s [%s]: %v",
			cmd.Name(), cmd.Category(), ctx.Author.Username, ctx.Author.ID, err)
	}
}

// audit writes the per-invocation log line and history record. Dev-only
// commands are suppressed entirely so their existence never leaks into logs
// visible to non-privileged audiences.
func (d *Dispatcher) audit(cmd command.Command, ctx *command.Context) {
	if cmd.DevOnly() {
		return
	}
	log.Printf("[INFO] %s [%s] is using %s command from %s category",
		ctx.Author.Username, ctx.Author.ID, cmd.Name(), cmd.Category())

	if d.history != nil {
		rec := storage.CommandHistoryRecord{
			ChannelID: ctx.ChannelID,
			UserID:    ctx.Author.ID,
			Username:  ctx.Author.Username,
			Command:   cmd.Name(),
			Category:  cmd.Category(),
			Datetime:  time.Now(),
		}
		if err := d.history.AppendCommandHistory(ctx.GuildID, rec); err != nil {
			log.Println("[WARN] Failed to record command history:", err)
		}
	}
}
