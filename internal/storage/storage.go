// Package storage persists the bot's small bits of durable state: per-guild
// command audit history and the slash registration hash cache.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/keshon/datastore"
)

const commandHistoryLimit = 20

// Storage wraps the datastore with typed accessors.
type Storage struct {
	ds *datastore.DataStore
}

// CommandHistoryRecord is one audited command execution.
type CommandHistoryRecord struct {
	ChannelID string    `json:"channel_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Command   string    `json:"command"`
	Category  string    `json:"category"`
	Datetime  time.Time `json:"datetime"`
}

// GuildRecord is everything stored per guild.
type GuildRecord struct {
	CommandsHistory []CommandHistoryRecord `json:"cmd_history"`
}

// New opens (or creates) the datastore file.
func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

func guildKey(guildID string) string { return "guild:" + guildID }
func hashesKey(scope string) string  { return "cmdhash:" + scope }

// getGuildRecord loads (or initializes) the record for a guild. The
// datastore hands back decoded JSON, so the value is round-tripped into the
// typed struct.
func (s *Storage) getGuildRecord(guildID string) (*GuildRecord, error) {
	data, exists := s.ds.Get(guildKey(guildID))
	if !exists {
		return &GuildRecord{}, nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("error marshalling guild record: %w", err)
	}
	var record GuildRecord
	if err := json.Unmarshal(jsonData, &record); err != nil {
		return nil, fmt.Errorf("error unmarshalling guild record: %w", err)
	}
	return &record, nil
}

// AppendCommandHistory records a command execution for a guild, keeping only
// the most recent entries.
func (s *Storage) AppendCommandHistory(guildID string, rec CommandHistoryRecord) error {
	record, err := s.getGuildRecord(guildID)
	if err != nil {
		return err
	}
	record.CommandsHistory = append(record.CommandsHistory, rec)
	if n := len(record.CommandsHistory); n > commandHistoryLimit {
		record.CommandsHistory = record.CommandsHistory[n-commandHistoryLimit:]
	}
	s.ds.Add(guildKey(guildID), record)
	return nil
}

// CommandHistory returns the audited executions for a guild, newest last.
func (s *Storage) CommandHistory(guildID string) ([]CommandHistoryRecord, error) {
	record, err := s.getGuildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.CommandsHistory, nil
}

// CommandHashes returns the cached definition hashes for a registration
// scope ("" is the global scope). Missing or unreadable caches come back
// empty so registration degrades to re-sending.
func (s *Storage) CommandHashes(scope string) map[string]string {
	out := make(map[string]string)
	data, exists := s.ds.Get(hashesKey(scope))
	if !exists {
		return out
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return out
	}
	_ = json.Unmarshal(jsonData, &out)
	return out
}

// SetCommandHashes replaces the cached definition hashes for a scope.
func (s *Storage) SetCommandHashes(scope string, hashes map[string]string) error {
	s.ds.Add(hashesKey(scope), hashes)
	return nil
}
