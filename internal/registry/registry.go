// Package registry loads command packs into name and alias indexes and
// performs one-time, idempotent registration of structured invocation
// schemas with the platform.
package registry

import (
	"log"
	"sort"
	"sync"

	"github.com/KurokuTetsuya/gorou/internal/command"
)

// Category is a named bucket of commands.
type Category struct {
	Key  string
	Name string

	// Hidden categories are excluded from general listings unless the
	// viewer is privileged.
	Hidden bool
}

// Factory produces one command instance. A failing factory is the static
// equivalent of a malformed command file.
type Factory func() (command.Command, error)

// Pack is one category's worth of command factories, the static counterpart
// of a commands directory.
type Pack struct {
	Category Category
	Commands []Factory
}

// Registry owns the command, alias, and category maps for the process
// lifetime. Populated once by Load; afterwards mutation is limited to the
// disabled toggle.
type Registry struct {
	mu         sync.RWMutex
	commands   map[string]command.Command
	aliases    map[string]string // alias -> canonical name
	categories []Category
	disabled   map[string]bool
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		commands: make(map[string]command.Command),
		aliases:  make(map[string]string),
		disabled: make(map[string]bool),
	}
}

// Load instantiates every pack's commands and populates the indexes. A
// factory that fails is logged and skipped; the rest of its category still
// loads. Remote registration, when configured in opts, runs afterwards and
// is partial-failure tolerant.
func (r *Registry) Load(packs []Pack, opts LoadOptions) {
	for _, pack := range packs {
		r.loadPack(pack)
	}
	log.Println("[INFO] All categories have been registered.")

	if opts.Platform != nil {
		r.registerRemote(opts)
	}
}

func (r *Registry) loadPack(pack Pack) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[ERR] Category %s load abandoned: %v", pack.Category.Key, rec)
		}
	}()

	if pack.Category.Key == "" {
		log.Printf("[ERR] Skipping category with empty key")
		return
	}
	log.Printf("[INFO] Registering %s category, %d command(s) found...", pack.Category.Key, len(pack.Commands))

	r.mu.Lock()
	r.categories = append(r.categories, pack.Category)
	r.mu.Unlock()

	loaded, disabledCount := 0, 0
	for _, factory := range pack.Commands {
		cmd, err := factory()
		if err != nil || cmd == nil || cmd.Name() == "" {
			log.Printf("[ERR] Invalid command in %s category: %v", pack.Category.Key, err)
			continue
		}
		if ca, ok := command.Root(cmd).(command.CategoryAssignable); ok {
			ca.AssignCategory(pack.Category.Key)
		}
		r.index(cmd)
		loaded++
		if cmd.Disabled() {
			disabledCount++
		}
	}

	log.Printf("[INFO] Done loading %d command(s) in %s category.", loaded, pack.Category.Key)
	if disabledCount != 0 {
		log.Printf("[INFO] %d out of %d command(s) in %s category is disabled.", disabledCount, loaded, pack.Category.Key)
	}
}

func (r *Registry) index(cmd command.Command) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := cmd.Name()
	if _, exists := r.commands[name]; exists {
		log.Printf("[WARN] Command %s registered twice, keeping the last", name)
	}
	r.commands[name] = cmd
	if cmd.Disabled() {
		r.disabled[name] = true
	}

	for _, alias := range cmd.Aliases() {
		if prior, exists := r.aliases[alias]; exists && prior != name {
			log.Printf("[WARN] Alias %s moves from %s to %s (last write wins)", alias, prior, name)
		}
		r.aliases[alias] = name
	}
}

// Get resolves a command by exact name, falling back to the alias map.
func (r *Registry) Get(name string) (command.Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if cmd, ok := r.commands[name]; ok {
		return cmd, true
	}
	if canonical, ok := r.aliases[name]; ok {
		cmd, ok := r.commands[canonical]
		return cmd, ok
	}
	return nil, false
}

// Find returns the first command matching the predicate.
func (r *Registry) Find(pred func(command.Command) bool) (command.Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cmd := range r.commands {
		if pred(cmd) {
			return cmd, true
		}
	}
	return nil, false
}

// Filter returns every command matching the predicate, sorted by name.
func (r *Registry) Filter(pred func(command.Command) bool) []command.Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []command.Command
	for _, cmd := range r.commands {
		if pred(cmd) {
			out = append(out, cmd)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// All returns every registered command, sorted by name.
func (r *Registry) All() []command.Command {
	return r.Filter(func(command.Command) bool { return true })
}

// Categories returns the categories in load order.
func (r *Registry) Categories() []Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Category, len(r.categories))
	copy(out, r.categories)
	return out
}

// CommandsIn returns the live view of a category's members.
func (r *Registry) CommandsIn(key string) []command.Command {
	return r.Filter(func(c command.Command) bool { return c.Category() == key })
}

// SetDisabled toggles whether a command may execute. The command stays
// discoverable either way.
func (r *Registry) SetDisabled(name string, disabled bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	canonical := name
	if _, ok := r.commands[canonical]; !ok {
		canonical = r.aliases[name]
		if _, ok := r.commands[canonical]; !ok {
			return false
		}
	}
	if disabled {
		r.disabled[canonical] = true
	} else {
		delete(r.disabled, canonical)
	}
	return true
}

// IsDisabled reports whether dispatch must refuse the command.
func (r *Registry) IsDisabled(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if canonical, ok := r.aliases[name]; ok {
		name = canonical
	}
	return r.disabled[name]
}
