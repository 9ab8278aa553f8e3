package handler

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/teamtext2/bot/internal/schedule"
)

// DiscordNotifier delivers reminder text as a plain channel message.
type DiscordNotifier struct {
	session *discordgo.Session
}

func NewDiscordNotifier(session *discordgo.Session) *DiscordNotifier {
	return &DiscordNotifier{session: session}
}

func (n *DiscordNotifier) Send(ctx context.Context, chatID, text string) error {
	_, err := n.session.ChannelMessageSend(chatID, text, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to send channel message: %w", err)
	}
	return nil
}

var _ schedule.Notifier = (*DiscordNotifier)(nil)
