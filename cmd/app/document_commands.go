package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/wopihost/cmd/app/commands"
	"github.com/allisson/wopihost/internal/app"
	"github.com/allisson/wopihost/internal/config"
)

func getDocumentCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-document",
			Usage: "Import a file as a new document",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "file",
					Aliases:  []string{"f"},
					Required: true,
					Usage:    "Path of the file to import ('-' reads stdin)",
				},
				&cli.StringFlag{
					Name:    "name",
					Aliases: []string{"n"},
					Usage:   "Document name (defaults to the file's base name)",
				},
				&cli.StringFlag{
					Name:    "mime-type",
					Aliases: []string{"m"},
					Usage:   "MIME type (detected when omitted)",
				},
				&cli.StringFlag{
					Name:     "owner",
					Aliases:  []string{"o"},
					Required: true,
					Usage:    "Owner user id",
				},
				&cli.StringFlag{
					Name:  "format",
					Value: "text",
					Usage: "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				documentUseCase, err := container.DocumentUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateDocument(
					ctx,
					documentUseCase,
					container.Logger(),
					commands.DefaultIO(),
					commands.CreateDocumentInput{
						Path:     cmd.String("file"),
						Name:     cmd.String("name"),
						MimeType: cmd.String("mime-type"),
						OwnerID:  cmd.String("owner"),
						Format:   cmd.String("format"),
					},
				)
			},
		},
	}
}
