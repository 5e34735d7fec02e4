package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/wopihost/cmd/app/commands"
	"github.com/allisson/wopihost/internal/app"
	"github.com/allisson/wopihost/internal/config"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "issue-user-token",
			Usage: "Sign a host user JWT",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "user",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "User id to embed in the token",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				tokenService, err := container.TokenService()
				if err != nil {
					return err
				}

				return commands.RunIssueUserToken(
					tokenService,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("user"),
					cmd.String("format"),
				)
			},
		},
	}
}
