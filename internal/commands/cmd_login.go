package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/traindesk/traindesk/internal/api"
	"github.com/traindesk/traindesk/internal/core/validate"
	"github.com/traindesk/traindesk/internal/printer"
)

type LoginCmd struct {
	flags    *Flags
	email    string
	password string
}

// NewLoginCmd creates a new login command
func NewLoginCmd(flags *Flags) *LoginCmd {
	return &LoginCmd{flags: flags}
}

// Register adds the login command to the application
func (cmd *LoginCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "login",
		Usage:     "Authenticate against the back-office API",
		UsageText: "traindesk login --email you@example.com",
		Description: `Exchanges your credentials for an access token and a renewal cookie.
Both are stored locally so later commands run without logging in again.

The password is read from the terminal when not passed via --password.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "email",
				Usage:       "account email",
				Sources:     cli.EnvVars("TRAINDESK_EMAIL"),
				Destination: &cmd.email,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "password",
				Usage:       "account password (prompted when omitted)",
				Sources:     cli.EnvVars("TRAINDESK_PASSWORD"),
				Destination: &cmd.password,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LoginCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if err := validate.Email(cmd.email); err != nil {
		return fmt.Errorf("--email: %w", err)
	}

	password := cmd.password
	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		password = string(raw)
	}
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	user, err := cmd.flags.API.Login(ctx, api.LoginRequest{Email: cmd.email, Password: password})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	name := user.FullName()
	if name == "" {
		name = cmd.email
	}
	p.Successf("Logged in as %s", name)
	return nil
}
