package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/traindesk/traindesk/internal/api"
	"github.com/traindesk/traindesk/internal/core/validate"
	"github.com/traindesk/traindesk/internal/printer"
)

type RegisterCmd struct {
	flags *Flags
	in    api.RegisterRequest
}

// NewRegisterCmd creates a new register command
func NewRegisterCmd(flags *Flags) *RegisterCmd {
	return &RegisterCmd{flags: flags}
}

// Register adds the register command to the application
func (cmd *RegisterCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "register",
		Usage:     "Create a new back-office account",
		UsageText: "traindesk register --email ... --password ... --first-name ...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "first-name", Usage: "first name", Destination: &cmd.in.FirstName, Required: true},
			&cli.StringFlag{Name: "last-name", Usage: "last name", Destination: &cmd.in.LastName},
			&cli.StringFlag{Name: "email", Usage: "account email", Destination: &cmd.in.Email, Required: true},
			&cli.StringFlag{Name: "password", Usage: "account password", Destination: &cmd.in.Password, Required: true},
			&cli.StringFlag{Name: "phone", Usage: "phone number", Destination: &cmd.in.Phone},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RegisterCmd) run(ctx context.Context, c *cli.Command) error {
	if err := validate.Email(cmd.in.Email); err != nil {
		return fmt.Errorf("--email: %w", err)
	}

	u, err := cmd.flags.API.Register(ctx, cmd.in)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	printer.Ctx(ctx).Successf("Account %s created; run traindesk login to sign in", u.FullName())
	return nil
}
