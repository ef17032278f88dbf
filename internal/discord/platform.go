package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// appPlatform implements registry.Platform over the live session. A scope is
// a guild ID, or "" for the global application scope.
type appPlatform struct {
	dg *discordgo.Session
}

func (p *appPlatform) appID() (string, error) {
	if p.dg.State != nil && p.dg.State.User != nil && p.dg.State.User.ID != "" {
		return p.dg.State.User.ID, nil
	}
	u, err := p.dg.User("@me")
	if err != nil {
		return "", fmt.Errorf("failed to fetch bot user: %w", err)
	}
	return u.ID, nil
}

func (p *appPlatform) RegisteredCommands(scope string) (map[string]*discordgo.ApplicationCommand, error) {
	appID, err := p.appID()
	if err != nil {
		return nil, err
	}
	remote, err := p.dg.ApplicationCommands(appID, scope)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*discordgo.ApplicationCommand, len(remote))
	for _, c := range remote {
		byName[c.Name] = c
	}
	return byName, nil
}

func (p *appPlatform) CreateCommand(scope string, def *discordgo.ApplicationCommand) error {
	appID, err := p.appID()
	if err != nil {
		return err
	}
	_, err = p.dg.ApplicationCommandCreate(appID, scope, def)
	return err
}
