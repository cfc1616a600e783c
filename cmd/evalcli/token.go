package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/speedrun-coding/backend/user/auth"
	"github.com/urfave/cli/v3"
)

const defaultTokenTTL = 24 * time.Hour

func tokenCmd() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "mint a JWT for local development",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true},
			&cli.StringFlag{Name: "uuid", Usage: "user uuid, random when omitted"},
			&cli.BoolFlag{Name: "staff"},
			&cli.DurationFlag{Name: "ttl", Value: defaultTokenTTL},
			&cli.StringFlag{Name: "key", Sources: cli.EnvVars("JWT_KEY"), Usage: "signing key"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			key := cmd.String("key")
			if key == "" {
				return errors.New("JWT_KEY is not set")
			}
			id := uuid.New()
			if s := cmd.String("uuid"); s != "" {
				var err error
				if id, err = uuid.Parse(s); err != nil {
					return fmt.Errorf("invalid --uuid: %w", err)
				}
			}

			token, err := auth.GenerateJWT(cmd.String("username"), id, cmd.Bool("staff"), []byte(key), cmd.Duration("ttl"))
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}
}
