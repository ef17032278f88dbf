package config

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, falling back to system environment variables")
	}
}

// Config holds everything the bot reads from the environment.
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,required"`

	// Prefix for text commands, e.g. "!ping".
	Prefix string `env:"PREFIX" envDefault:"!"`

	// DevUserIDs are exempt from cooldowns and may run dev-only commands.
	DevUserIDs []string `env:"DEV_USER_IDS" envSeparator:","`

	// DevGuildIDs receive slash command registration in development mode
	// instead of the global scope.
	DevGuildIDs []string `env:"DEV_GUILD_IDS" envSeparator:","`

	Environment string `env:"ENVIRONMENT" envDefault:"production"`

	StoragePath string `env:"STORAGE_PATH" envDefault:"datastore.json"`

	// RegisterCommands can be switched off to skip remote slash command
	// registration entirely (useful on restricted tokens).
	RegisterCommands bool `env:"REGISTER_COMMANDS" envDefault:"true"`
}

// New parses the environment into a Config.
func New() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsDev reports whether the bot runs in development mode.
func (c *Config) IsDev() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

// IsDevUser reports whether the given user ID is in the developer allow-list.
func (c *Config) IsDevUser(userID string) bool {
	for _, id := range c.DevUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}
