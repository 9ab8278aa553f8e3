package handler

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

var addCommandOptions = []*discordgo.ApplicationCommandOption{
	{
		Name:        "date",
		Type:        discordgo.ApplicationCommandOptionString,
		Description: "Due date in YYYY-MM-DD format.",
		Required:    true,
	},
	{
		Name:        "time",
		Type:        discordgo.ApplicationCommandOptionString,
		Description: "Due time in HH:MM format, 24-hour local time.",
		Required:    true,
	},
	{
		Name:        "message",
		Type:        discordgo.ApplicationCommandOptionString,
		Description: "What to be reminded about.",
		Required:    true,
	},
}

// Commands is a list of all the commands the bot can handle.
// This is used to register the commands with Discord.
var Commands = []*discordgo.ApplicationCommand{
	{
		Name:        "ping",
		Description: "Check that the bot is alive",
	},
	{
		Name:        "remind",
		Description: "Manage one-time reminders for this channel",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "add",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "Schedule a one-time reminder",
				Options:     addCommandOptions,
			},
			{
				Name:        "list",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "List pending reminders for this channel",
			},
			{
				Name:        "cancel",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "Cancel a pending reminder by its ID",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        "id",
						Type:        discordgo.ApplicationCommandOptionString,
						Description: "The reminder ID shown by /remind add and /remind list.",
						Required:    true,
					},
				},
			},
			{
				Name:        "help",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "Show how to use the reminder commands",
			},
		},
	},
}

func EstablishCommands(s *discordgo.Session, guildID string) error {
	_, err := s.ApplicationCommandBulkOverwrite(s.State.User.ID, guildID, Commands)
	if err != nil {
		return fmt.Errorf("failed to establish commands: %w", err)
	}
	return nil
}
