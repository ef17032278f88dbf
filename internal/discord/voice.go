package discord

import (
	"github.com/bwmarrin/discordgo"
)

// voiceStatus implements router.VoiceStatus over the gateway state cache.
type voiceStatus struct {
	bot *Bot
}

func (v *voiceStatus) session() *discordgo.Session { return v.bot.dg }

func (v *voiceStatus) UserChannel(guildID, userID string) (string, bool) {
	s := v.session()
	if s == nil || s.State == nil {
		return "", false
	}
	vs, err := s.State.VoiceState(guildID, userID)
	if err != nil || vs == nil || vs.ChannelID == "" {
		return "", false
	}
	return vs.ChannelID, true
}

func (v *voiceStatus) BotChannel(guildID string) (string, bool) {
	s := v.session()
	if s == nil || s.State == nil || s.State.User == nil {
		return "", false
	}
	return v.UserChannel(guildID, s.State.User.ID)
}

func (v *voiceStatus) HasVoicePermissions(guildID, channelID string) bool {
	s := v.session()
	if s == nil || s.State == nil || s.State.User == nil {
		return false
	}
	perms, err := s.UserChannelPermissions(s.State.User.ID, channelID)
	if err != nil {
		return false
	}
	required := int64(discordgo.PermissionVoiceConnect | discordgo.PermissionVoiceSpeak)
	return perms&required == required
}

// Joinable checks the channel's user limit against its current occupancy.
func (v *voiceStatus) Joinable(guildID, channelID string) bool {
	s := v.session()
	if s == nil || s.State == nil {
		return false
	}
	ch, err := s.State.Channel(channelID)
	if err != nil || ch == nil {
		return true // unknown channel state, let the join attempt decide
	}
	if ch.UserLimit == 0 {
		return true
	}
	guild, err := s.State.Guild(guildID)
	if err != nil || guild == nil {
		return true
	}
	occupants := 0
	for _, vs := range guild.VoiceStates {
		if vs.ChannelID == channelID {
			occupants++
		}
	}
	return occupants < ch.UserLimit
}
