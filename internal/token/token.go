// Package token encodes and decodes the opaque identifiers the bot embeds in
// its own UI components (select menus, buttons). The encoding is reversible
// base64, not a signature: any client that knows the format can forge a
// token, so consumers must re-validate claims (such as the originating user)
// against live interaction data.
package token

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// PlayerNamespace prefixes button identifiers that map to inline playback
// actions instead of commands.
const PlayerNamespace = "player"

// UserCommand builds a component identifier binding a command follow-up to
// its originating user, e.g. "123456_help".
func UserCommand(userID, command string) string {
	return encode(userID + "_" + command)
}

// PlayerAction builds a button identifier for an inline playback action,
// e.g. "player_stop".
func PlayerAction(action string) string {
	return encode(PlayerNamespace + "_" + action)
}

// Decode reverses a component identifier into its raw payload.
func Decode(customID string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(customID)
	if err != nil {
		return "", fmt.Errorf("malformed component id: %w", err)
	}
	return string(raw), nil
}

// ParseUserCommand splits a decoded payload into user ID and command name.
// Either part may be empty when the payload is not in "<uid>_<cmd>" form.
func ParseUserCommand(raw string) (userID, command string) {
	parts := strings.SplitN(raw, "_", 2)
	userID = parts[0]
	if len(parts) > 1 {
		command = parts[1]
	}
	return userID, command
}

// SplitPlayerAction extracts the sub-action from a "player_<action>" payload.
func SplitPlayerAction(raw string) (action string, ok bool) {
	if !strings.HasPrefix(raw, PlayerNamespace) {
		return "", false
	}
	parts := strings.SplitN(raw, "_", 2)
	if len(parts) < 2 {
		return "", false
	}
	return parts[1], true
}

func encode(raw string) string {
	return base64.StdEncoding.EncodeToString([]byte(raw))
}
