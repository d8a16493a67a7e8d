package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "ecostore-api",
		Usage: "EcoStore order and payment backend",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "env-file",
				Aliases: []string{"e"},
				Usage:   "dotenv files to load before reading the environment",
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP server",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "Apply the database schema",
				Action: migrate,
			},
			{
				Name:  "user",
				Usage: "Manage users",
				Subcommands: []*cli.Command{
					{
						Name:  "create",
						Usage: "Create a user and print a session token",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "email", Required: true},
							&cli.StringFlag{Name: "name"},
						},
						Action: createUser,
					},
				},
			},
			{
				Name:  "session",
				Usage: "Manage session tokens",
				Subcommands: []*cli.Command{
					{
						Name:  "issue",
						Usage: "Rotate and print the session token of a user",
						Flags: []cli.Flag{
							&cli.UintFlag{Name: "user-id", Required: true},
						},
						Action: issueSession,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
