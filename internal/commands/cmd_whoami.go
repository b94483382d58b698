package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/urfave/cli/v3"

	"github.com/traindesk/traindesk/internal/core/credentials"
	"github.com/traindesk/traindesk/internal/printer"
)

type WhoamiCmd struct {
	flags *Flags
}

// NewWhoamiCmd creates a new whoami command
func NewWhoamiCmd(flags *Flags) *WhoamiCmd {
	return &WhoamiCmd{flags: flags}
}

// Register adds the whoami command to the application
func (cmd *WhoamiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "whoami",
		Usage:     "Show the stored session",
		UsageText: "traindesk whoami",
		Description: `Prints who is logged in and when the access token expires.
The token is decoded locally without contacting the server.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *WhoamiCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	creds, err := cmd.flags.Creds.Load()
	if err != nil {
		if errors.Is(err, credentials.ErrNotLoggedIn) {
			p.Infof("Not logged in")
			return nil
		}
		return fmt.Errorf("load credentials: %w", err)
	}

	p.Printf("Email:  %s", creds.Email)

	if creds.AccessToken == "" {
		p.Infof("No access token yet; the next request mints one from the renewal cookie")
		return nil
	}

	// Signature verification is the server's job; we only read claims.
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(creds.AccessToken, claims); err != nil {
		p.Warnf("Stored access token is not a readable JWT: %v", err)
		return nil
	}

	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		p.Printf("Subject: %s", sub)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		p.Infof("Token carries no expiry claim")
		return nil
	}

	switch {
	case time.Now().After(exp.Time):
		p.Warnf("Access token expired %s (it will be renewed on the next request)", exp.Format(time.RFC822))
	default:
		p.Printf("Expires: %s (%s from now)", exp.Format(time.RFC822), time.Until(exp.Time).Round(time.Second))
	}

	return nil
}
