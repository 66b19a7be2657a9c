package utils

import (
	"community-bot/model"
	"log"

	"go.uber.org/ratelimit"
)

// dmLimiter throttles outbound DMs process-wide so notification bursts
// stay inside Discord's per-bot DM limits.
var dmLimiter = ratelimit.New(1)

// SendPrivateMessage sends a direct message to a user. Failures are
// logged and swallowed; DM delivery is always best-effort.
func SendPrivateMessage(s model.DiscordSession, userID, message string) {
	dmLimiter.Take()
	channel, err := s.UserChannelCreate(userID)
	if err != nil {
		log.Printf("Error creating private channel with user %s: %v", userID, err)
		return
	}
	if _, err := s.ChannelMessageSend(channel.ID, message); err != nil {
		log.Printf("Error sending private message to user %s: %v", userID, err)
	}
}
