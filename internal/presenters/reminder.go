package presenters

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/teamtext2/bot/internal/repository"
)

var noRemindersResponse = &discordgo.InteractionResponse{
	Type: discordgo.InteractionResponseChannelMessageWithSource,
	Data: &discordgo.InteractionResponseData{
		Content: "You have no pending reminders.",
	},
}

func reminderToBlock(r repository.Reminder) string {
	return fmt.Sprintf("ID: %s\n⏰ %s\n🔹 %s", r.ID, r.Due, r.Message)
}

// BuildListRemindersResponse renders a channel's pending reminders as
// one block per reminder, in insertion order.
func BuildListRemindersResponse(reminders []repository.Reminder) *discordgo.InteractionResponse {
	if len(reminders) == 0 {
		return noRemindersResponse
	}

	blocks := make([]string, 0, len(reminders))
	for _, r := range reminders {
		blocks = append(blocks, reminderToBlock(r))
	}

	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: strings.Join(blocks, "\n\n"),
		},
	}
}
