package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/teamtext2/bot/internal/config"
	"github.com/teamtext2/bot/internal/generator"
	"github.com/teamtext2/bot/internal/repository"
	"github.com/teamtext2/bot/internal/util"
	"github.com/urfave/cli/v2"
)

var stdinReader = bufio.NewReader(os.Stdin)

var uuidGenerator = generator.UUIDV4Generator{}

func prompt(label string) string {
	fmt.Printf("%s: ", label)
	input, _ := stdinReader.ReadString('\n')
	return strings.TrimSpace(input)
}

func main() {
	if err := config.LoadEnv(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to load .env file: %v", err)
	}

	storageConfig, err := config.NewStorageConfigFromEnv()
	if err != nil {
		log.Fatalf("Failed to load storage config: %v", err)
	}
	store := repository.NewFileStore(storageConfig.File)

	chatIDFlag := &cli.StringFlag{
		Name:     "chat-id",
		Usage:    "ID of the channel the reminder belongs to",
		Required: true,
	}

	app := &cli.App{
		Name:        "remind-cli",
		Description: "A development CLI tool for inspecting the reminder store without Discord",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List pending reminders for a channel",
				Action: func(c *cli.Context) error {
					reminders, err := store.LoadAll(c.Context)
					if err != nil {
						return cli.Exit("Failed to load reminders: "+err.Error(), 1)
					}

					mine := util.Filter(reminders, func(r repository.Reminder) bool {
						return r.ChatID == c.String("chat-id")
					})
					if len(mine) == 0 {
						log.Println("No pending reminders found for the specified channel.")
						return nil
					}

					for _, r := range mine {
						log.Printf("ID: %s | %s | %s", r.ID, r.Due, r.Message)
					}
					return nil
				},
				Flags: []cli.Flag{chatIDFlag},
			},
			{
				Name:  "add",
				Usage: "Add a reminder record (the bot schedules it on its next start)",
				Action: func(c *cli.Context) error {
					date := prompt("Enter due date (YYYY-MM-DD)")
					timeStr := prompt("Enter due time (HH:MM)")
					message := prompt("Enter message")

					dueAt, err := time.ParseInLocation(repository.DueLayout, date+" "+timeStr, time.Local)
					if err != nil {
						return cli.Exit("Invalid due time: "+err.Error(), 1)
					}
					if !dueAt.After(time.Now()) {
						return cli.Exit("Due time must be in the future", 1)
					}

					id, err := uuidGenerator.Next()
					if err != nil {
						return cli.Exit("Failed to generate id: "+err.Error(), 1)
					}

					r := repository.Reminder{
						ID:      id,
						ChatID:  c.String("chat-id"),
						Due:     dueAt.Format(repository.DueLayout),
						Message: message,
					}
					if err := store.Append(c.Context, r); err != nil {
						return cli.Exit("Failed to save reminder: "+err.Error(), 1)
					}

					log.Printf("Reminder added with ID %s.", id)
					return nil
				},
				Flags: []cli.Flag{chatIDFlag},
			},
			{
				Name:      "cancel",
				Usage:     "Remove a reminder record by ID",
				ArgsUsage: "<reminder-id>",
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return cli.Exit("Please provide a reminder ID", 1)
					}

					reminders, err := store.LoadAll(c.Context)
					if err != nil {
						return cli.Exit("Failed to load reminders: "+err.Error(), 1)
					}
					_, found := util.FindFirst(reminders, func(r repository.Reminder) bool {
						return r.ID == id && r.ChatID == c.String("chat-id")
					})
					if !found {
						return cli.Exit("No reminder with that ID for the specified channel", 1)
					}

					if err := store.RemoveByID(c.Context, id); err != nil {
						return cli.Exit("Failed to remove reminder: "+err.Error(), 1)
					}

					log.Println("Reminder removed.")
					return nil
				},
				Flags: []cli.Flag{chatIDFlag},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("Error running CLI: %v", err)
	}
}
