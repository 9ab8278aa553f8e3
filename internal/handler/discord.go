package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/teamtext2/bot/internal/reminder"
	"github.com/teamtext2/bot/internal/repository"
)

type ReadyHandler = func(*discordgo.Session, *discordgo.Ready)
type InteractionCreateHandler = func(*discordgo.Session, *discordgo.InteractionCreate)

var ReadyLog = func(s *discordgo.Session, r *discordgo.Ready) {
	username := r.User.Username
	userID := r.User.ID
	slog.Info("Bot is ready", "username", username, "userID", userID)
}

// DiscordSession is the slice of discordgo.Session the interaction
// handler needs, so tests can substitute a recording session.
type DiscordSession interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

const helpText = "Hey! I'm the Text2 reminder bot 💫\n" +
	"Use /remind add date:YYYY-MM-DD time:HH:MM message:... to schedule a one-time reminder.\n" +
	"Example: /remind add date:2025-11-05 time:14:30 message:team meeting\n" +
	"/remind list shows this channel's pending reminders and /remind cancel id:... cancels one."

const addUsage = "Invalid format. Use /remind add date:YYYY-MM-DD time:HH:MM message:your text\n" +
	"Example: /remind add date:2025-11-05 time:14:30 message:team meeting"

const genericFailure = "Something went wrong. Please try again later."

// ReminderAddRequest is the parsed form of a /remind add command.
type ReminderAddRequest struct {
	DueAt   time.Time
	Message string
}

// CommandToAddRequest extracts and validates the date, time and message
// options of a /remind add command. The due time is interpreted in
// local wall-clock time at minute resolution.
func CommandToAddRequest(options []*discordgo.ApplicationCommandInteractionDataOption) (*ReminderAddRequest, error) {
	var dateStr, timeStr, message string

	for _, option := range options {
		if option.Type != discordgo.ApplicationCommandOptionString {
			return nil, &UserError{Message: addUsage}
		}
		switch option.Name {
		case "date":
			dateStr = option.StringValue()
		case "time":
			timeStr = option.StringValue()
		case "message":
			message = option.StringValue()
		}
	}

	if dateStr == "" || timeStr == "" || message == "" {
		return nil, &UserError{Message: addUsage}
	}

	dueAt, err := time.ParseInLocation(repository.DueLayout, dateStr+" "+timeStr, time.Local)
	if err != nil {
		return nil, &UserError{Message: addUsage}
	}

	return &ReminderAddRequest{
		DueAt:   dueAt,
		Message: message,
	}, nil
}

// ListPresenter builds the interaction response for /remind list.
type ListPresenter func(reminders []repository.Reminder) *discordgo.InteractionResponse

// NewInteractionHandler routes slash command interactions to the
// reminder service.
func NewInteractionHandler(svc *reminder.Service, present ListPresenter) func(DiscordSession, *discordgo.InteractionCreate) {
	return func(s DiscordSession, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}

		command := i.ApplicationCommandData()
		switch command.Name {
		case "ping":
			respondContent(s, i, "Pong!")
		case "remind":
			if len(command.Options) == 0 {
				slog.Warn("No subcommand provided for remind command")
				return
			}
			subCommand := command.Options[0]
			switch subCommand.Name {
			case "add":
				handleAdd(s, i, svc, subCommand.Options)
			case "list":
				handleList(s, i, svc, present)
			case "cancel":
				handleCancel(s, i, svc, subCommand.Options)
			case "help":
				respondContent(s, i, helpText)
			}
		}
	}
}

func handleAdd(s DiscordSession, i *discordgo.InteractionCreate, svc *reminder.Service, options []*discordgo.ApplicationCommandInteractionDataOption) {
	req, err := CommandToAddRequest(options)
	if err != nil {
		var userErr *UserError
		if errors.As(err, &userErr) {
			respondContent(s, i, userErr.Message)
			return
		}
		slog.Error("failed to parse add command", "error", err)
		respondContent(s, i, genericFailure)
		return
	}

	r, err := svc.Create(context.Background(), i.ChannelID, req.DueAt, req.Message)
	if err != nil {
		var validationErr *reminder.ValidationError
		if errors.As(err, &validationErr) {
			respondContent(s, i, "⏰ "+validationErr.Message+".")
			return
		}
		slog.Error("failed to create reminder", "channelID", i.ChannelID, "error", err)
		respondContent(s, i, genericFailure)
		return
	}

	confirmation := fmt.Sprintf(
		"✅ Saved reminder: %q for %s\nID: %s",
		r.Message,
		req.DueAt.Format("15:04 02/01/2006"),
		r.ID,
	)
	respondContent(s, i, confirmation)
}

func handleList(s DiscordSession, i *discordgo.InteractionCreate, svc *reminder.Service, present ListPresenter) {
	reminders, err := svc.ListByChat(context.Background(), i.ChannelID)
	if err != nil {
		slog.Error("failed to list reminders", "channelID", i.ChannelID, "error", err)
		respondContent(s, i, genericFailure)
		return
	}

	if err := s.InteractionRespond(i.Interaction, present(reminders)); err != nil {
		slog.Error("failed to respond to list command", "error", err)
	}
}

func handleCancel(s DiscordSession, i *discordgo.InteractionCreate, svc *reminder.Service, options []*discordgo.ApplicationCommandInteractionDataOption) {
	var id string
	for _, option := range options {
		if option.Name == "id" && option.Type == discordgo.ApplicationCommandOptionString {
			id = option.StringValue()
		}
	}
	if id == "" {
		respondContent(s, i, "Use /remind cancel id:<reminder-id>")
		return
	}

	err := svc.Cancel(context.Background(), i.ChannelID, id)
	if err != nil {
		var notFound *reminder.NotFoundError
		if errors.As(err, &notFound) {
			respondContent(s, i, "No reminder with that ID was found in this channel.")
			return
		}
		slog.Error("failed to cancel reminder", "channelID", i.ChannelID, "id", id, "error", err)
		respondContent(s, i, genericFailure)
		return
	}

	respondContent(s, i, "Reminder cancelled.")
}

func respondContent(s DiscordSession, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
	if err != nil {
		slog.Error("failed to respond to interaction", "error", err)
	}
}

// MakeInteractionCreateHandler adapts the testable handler to the
// discordgo handler signature.
func MakeInteractionCreateHandler(svc *reminder.Service, present ListPresenter) InteractionCreateHandler {
	h := NewInteractionHandler(svc, present)
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		h(s, i)
	}
}

type Handlers struct {
	Ready             ReadyHandler
	InteractionCreate InteractionCreateHandler
}

func NewSession(token string, handlers Handlers) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}

	if handlers.Ready != nil {
		s.AddHandler(handlers.Ready)
	}
	if handlers.InteractionCreate != nil {
		s.AddHandler(handlers.InteractionCreate)
	}

	return s, nil
}
