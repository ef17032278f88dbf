package config

import (
	"os"
	"testing"
)

func clearEnv() {
	for _, key := range []string{
		"DISCORD_TOKEN", "PREFIX", "DEV_USER_IDS", "DEV_GUILD_IDS",
		"ENVIRONMENT", "STORAGE_PATH", "REGISTER_COMMANDS",
	} {
		os.Unsetenv(key)
	}
}

func TestNew_Defaults(t *testing.T) {
	clearEnv()
	os.Setenv("DISCORD_TOKEN", "token")
	defer clearEnv()

	cfg, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Prefix != "!" {
		t.Errorf("Prefix = %q, want %q", cfg.Prefix, "!")
	}
	if cfg.Environment != "production" {
		t.Errorf("Environment = %q, want %q", cfg.Environment, "production")
	}
	if cfg.IsDev() {
		t.Error("IsDev() = true, want false by default")
	}
	if !cfg.RegisterCommands {
		t.Error("RegisterCommands = false, want true by default")
	}
	if cfg.StoragePath != "datastore.json" {
		t.Errorf("StoragePath = %q, want %q", cfg.StoragePath, "datastore.json")
	}
}

func TestNew_RequiresToken(t *testing.T) {
	clearEnv()
	if _, err := New(); err == nil {
		t.Fatal("expected error when DISCORD_TOKEN is unset")
	}
}

func TestNew_Overrides(t *testing.T) {
	clearEnv()
	os.Setenv("DISCORD_TOKEN", "token")
	os.Setenv("PREFIX", "?")
	os.Setenv("DEV_USER_IDS", "111,222")
	os.Setenv("DEV_GUILD_IDS", "333")
	os.Setenv("ENVIRONMENT", "development")
	os.Setenv("REGISTER_COMMANDS", "false")
	defer clearEnv()

	cfg, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Prefix != "?" {
		t.Errorf("Prefix = %q, want %q", cfg.Prefix, "?")
	}
	if !cfg.IsDev() {
		t.Error("IsDev() = false, want true")
	}
	if !cfg.IsDevUser("222") {
		t.Error("IsDevUser(222) = false, want true")
	}
	if cfg.IsDevUser("999") {
		t.Error("IsDevUser(999) = true, want false")
	}
	if len(cfg.DevGuildIDs) != 1 || cfg.DevGuildIDs[0] != "333" {
		t.Errorf("DevGuildIDs = %v, want [333]", cfg.DevGuildIDs)
	}
	if cfg.RegisterCommands {
		t.Error("RegisterCommands = true, want false")
	}
}
