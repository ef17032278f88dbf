package registry

import (
	"errors"
	"fmt"
	"testing"

	"github.com/KurokuTetsuya/gorou/internal/command"

	"github.com/bwmarrin/discordgo"
)

type testCommand struct {
	command.Base
	slash *discordgo.ApplicationCommand
}

func (c *testCommand) Run(ctx *command.Context) error { return nil }

func (c *testCommand) SlashDefinition() *discordgo.ApplicationCommand { return c.slash }

func newTestCommand(name string, aliases ...string) *testCommand {
	return &testCommand{Base: command.Base{CmdName: name, CmdAliases: aliases}}
}

func factoryFor(cmd command.Command) Factory {
	return func() (command.Command, error) { return cmd, nil }
}

func TestLoad_AliasesResolve(t *testing.T) {
	r := New()
	ping := newTestCommand("ping", "pong", "p")
	r.Load([]Pack{{
		Category: Category{Key: "general", Name: "General"},
		Commands: []Factory{factoryFor(ping)},
	}}, LoadOptions{})

	for _, name := range []string{"ping", "pong", "p"} {
		got, ok := r.Get(name)
		if !ok {
			t.Fatalf("Get(%q) = !ok", name)
		}
		if got.Name() != "ping" {
			t.Errorf("Get(%q).Name() = %q, want ping", name, got.Name())
		}
	}
	if ping.Category() != "general" {
		t.Errorf("category = %q, want general (assigned at load)", ping.Category())
	}
}

func TestLoad_AliasCollisionLastWins(t *testing.T) {
	r := New()
	first := newTestCommand("first", "x")
	second := newTestCommand("second", "x")
	r.Load([]Pack{{
		Category: Category{Key: "general"},
		Commands: []Factory{factoryFor(first), factoryFor(second)},
	}}, LoadOptions{})

	got, ok := r.Get("x")
	if !ok {
		t.Fatal("alias x did not resolve")
	}
	// Documented behavior, not an error: the last registered command owns
	// the alias.
	if got.Name() != "second" {
		t.Errorf("alias x resolves to %q, want second", got.Name())
	}
}

func TestLoad_MalformedCommandSkipped(t *testing.T) {
	r := New()
	factories := []Factory{
		factoryFor(newTestCommand("a")),
		factoryFor(newTestCommand("b")),
		func() (command.Command, error) { return nil, errors.New("bad file") },
		factoryFor(newTestCommand("c")),
		factoryFor(newTestCommand("d")),
	}
	r.Load([]Pack{{Category: Category{Key: "general"}, Commands: factories}}, LoadOptions{})

	if got := len(r.CommandsIn("general")); got != 4 {
		t.Errorf("category has %d commands, want 4", got)
	}
	for _, name := range []string{"a", "b", "c", "d"} {
		if _, ok := r.Get(name); !ok {
			t.Errorf("command %q missing after load", name)
		}
	}
}

func TestLoad_BadCategoryDoesNotStopOthers(t *testing.T) {
	r := New()
	r.Load([]Pack{
		{Category: Category{Key: ""}, Commands: []Factory{factoryFor(newTestCommand("lost"))}},
		{Category: Category{Key: "general"}, Commands: []Factory{factoryFor(newTestCommand("kept"))}},
	}, LoadOptions{})

	if _, ok := r.Get("kept"); !ok {
		t.Error("second category did not load after first failed")
	}
	if _, ok := r.Get("lost"); ok {
		t.Error("command from invalid category was indexed")
	}
}

func TestDisabledToggle(t *testing.T) {
	r := New()
	cmd := newTestCommand("queue", "q")
	r.Load([]Pack{{Category: Category{Key: "music"}, Commands: []Factory{factoryFor(cmd)}}}, LoadOptions{})

	if r.IsDisabled("queue") {
		t.Fatal("command disabled before toggle")
	}
	if !r.SetDisabled("q", true) {
		t.Fatal("SetDisabled via alias failed")
	}
	if !r.IsDisabled("queue") || !r.IsDisabled("q") {
		t.Error("disabled flag not visible by name and alias")
	}
	// Still discoverable.
	if _, ok := r.Get("queue"); !ok {
		t.Error("disabled command no longer discoverable")
	}
	r.SetDisabled("queue", false)
	if r.IsDisabled("queue") {
		t.Error("disabled flag not cleared")
	}
}

func TestLoad_SeedsDeclaredDisabled(t *testing.T) {
	r := New()
	cmd := newTestCommand("legacy")
	cmd.Off = true
	r.Load([]Pack{{Category: Category{Key: "general"}, Commands: []Factory{factoryFor(cmd)}}}, LoadOptions{})

	if !r.IsDisabled("legacy") {
		t.Error("declared-disabled command not marked disabled")
	}
}

// fakePlatform records registration calls.
type fakePlatform struct {
	remote  map[string]*discordgo.ApplicationCommand
	created map[string][]string // scope -> names
	fail    map[string]bool     // names whose creation fails
}

func newFakePlatform(existing ...string) *fakePlatform {
	p := &fakePlatform{
		remote:  make(map[string]*discordgo.ApplicationCommand),
		created: make(map[string][]string),
		fail:    make(map[string]bool),
	}
	for _, name := range existing {
		p.remote[name] = &discordgo.ApplicationCommand{Name: name}
	}
	return p
}

func (p *fakePlatform) RegisteredCommands(scope string) (map[string]*discordgo.ApplicationCommand, error) {
	return p.remote, nil
}

func (p *fakePlatform) CreateCommand(scope string, def *discordgo.ApplicationCommand) error {
	if p.fail[def.Name] {
		return fmt.Errorf("no access for %s", def.Name)
	}
	p.created[scope] = append(p.created[scope], def.Name)
	return nil
}

func slashCommand(name string) *testCommand {
	c := newTestCommand(name)
	c.slash = &discordgo.ApplicationCommand{Name: name, Description: name}
	return c
}

func TestRegisterRemote_SkipsAlreadyRegistered(t *testing.T) {
	r := New()
	plat := newFakePlatform("ping")
	r.Load([]Pack{{
		Category: Category{Key: "general"},
		Commands: []Factory{factoryFor(slashCommand("ping")), factoryFor(slashCommand("help"))},
	}}, LoadOptions{Platform: plat})

	names := plat.created[""]
	if len(names) != 1 || names[0] != "help" {
		t.Errorf("created = %v, want only help (ping already registered)", names)
	}
}

func TestRegisterRemote_DevScopes(t *testing.T) {
	r := New()
	plat := newFakePlatform()
	r.Load([]Pack{{
		Category: Category{Key: "general"},
		Commands: []Factory{factoryFor(slashCommand("ping"))},
	}}, LoadOptions{Platform: plat, Development: true, DevGuildIDs: []string{"g1", "g2"}})

	if len(plat.created[""]) != 0 {
		t.Error("development mode registered to the global scope")
	}
	for _, scope := range []string{"g1", "g2"} {
		if len(plat.created[scope]) != 1 {
			t.Errorf("scope %s got %v, want [ping]", scope, plat.created[scope])
		}
	}
}

func TestRegisterRemote_PartialFailureTolerated(t *testing.T) {
	r := New()
	plat := newFakePlatform()
	plat.fail["ping"] = true
	r.Load([]Pack{{
		Category: Category{Key: "general"},
		Commands: []Factory{factoryFor(slashCommand("ping")), factoryFor(slashCommand("help"))},
	}}, LoadOptions{Platform: plat})

	names := plat.created[""]
	if len(names) != 1 || names[0] != "help" {
		t.Errorf("created = %v, want help despite ping failing", names)
	}
}

type memoryHashes struct {
	store map[string]map[string]string
}

func (m *memoryHashes) CommandHashes(scope string) map[string]string {
	if m.store[scope] == nil {
		return map[string]string{}
	}
	return m.store[scope]
}

func (m *memoryHashes) SetCommandHashes(scope string, hashes map[string]string) error {
	if m.store == nil {
		m.store = make(map[string]map[string]string)
	}
	m.store[scope] = hashes
	return nil
}

func TestRegisterRemote_HashCacheSkipsUnchanged(t *testing.T) {
	hashes := &memoryHashes{}
	packs := func() []Pack {
		return []Pack{{
			Category: Category{Key: "general"},
			Commands: []Factory{factoryFor(slashCommand("ping"))},
		}}
	}

	first := newFakePlatform()
	New().Load(packs(), LoadOptions{Platform: first, Hashes: hashes})
	if len(first.created[""]) != 1 {
		t.Fatalf("first load created %v, want [ping]", first.created[""])
	}

	// Second process lifetime: platform reports ping registered, hash
	// unchanged, so nothing is re-sent.
	second := newFakePlatform("ping")
	New().Load(packs(), LoadOptions{Platform: second, Hashes: hashes})
	if len(second.created[""]) != 0 {
		t.Errorf("second load re-created %v, want none", second.created[""])
	}
}

func TestFindFilter(t *testing.T) {
	r := New()
	r.Load([]Pack{{
		Category: Category{Key: "music"},
		Commands: []Factory{factoryFor(newTestCommand("queue")), factoryFor(newTestCommand("skip"))},
	}}, LoadOptions{})

	got, ok := r.Find(func(c command.Command) bool { return c.Name() == "skip" })
	if !ok || got.Name() != "skip" {
		t.Error("Find by name failed")
	}
	if n := len(r.Filter(func(c command.Command) bool { return c.Category() == "music" })); n != 2 {
		t.Errorf("Filter returned %d commands, want 2", n)
	}
}
