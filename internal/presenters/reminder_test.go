package presenters_test

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/google/go-cmp/cmp"
	"github.com/teamtext2/bot/internal/presenters"
	"github.com/teamtext2/bot/internal/repository"
)

func TestBuildListRemindersResponse_Empty(t *testing.T) {
	got := presenters.BuildListRemindersResponse(nil)

	want := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "You have no pending reminders.",
		},
	}

	diff := cmp.Diff(want, got)
	if diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildListRemindersResponse_Blocks(t *testing.T) {
	reminders := []repository.Reminder{
		{ID: "302808d9-141e-410d-a69d-2418ad15b5de", ChatID: "chat-1", Due: "2099-01-02 15:04", Message: "pay rent"},
		{ID: "8597e24a-f204-4c88-bad0-fe0ab9a73ff1", ChatID: "chat-1", Due: "2099-03-04 05:06", Message: "team meeting"},
	}

	got := presenters.BuildListRemindersResponse(reminders)

	want := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "ID: 302808d9-141e-410d-a69d-2418ad15b5de\n⏰ 2099-01-02 15:04\n🔹 pay rent\n\n" +
				"ID: 8597e24a-f204-4c88-bad0-fe0ab9a73ff1\n⏰ 2099-03-04 05:06\n🔹 team meeting",
		},
	}

	diff := cmp.Diff(want, got)
	if diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}
