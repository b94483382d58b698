package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/traindesk/traindesk/internal/api"
	"github.com/traindesk/traindesk/internal/core/validate"
	"github.com/traindesk/traindesk/internal/printer"
)

type UserCmd struct {
	flags *Flags

	firstName string
	lastName  string
	email     string
	phone     string
	password  string
}

// NewUserCmd creates a new user command
func NewUserCmd(flags *Flags) *UserCmd {
	return &UserCmd{flags: flags}
}

// Register adds the user command and its subcommands to the application
func (cmd *UserCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "user",
		Usage: "Manage back-office accounts",
		Commands: []*cli.Command{
			{
				Name:      "ls",
				Usage:     "List all accounts",
				UsageText: "traindesk user ls",
				Action:    cmd.runLs,
			},
			{
				Name:      "edit",
				Usage:     "Update an account",
				UsageText: "traindesk user edit <id> [flags]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "first-name", Usage: "first name", Destination: &cmd.firstName},
					&cli.StringFlag{Name: "last-name", Usage: "last name", Destination: &cmd.lastName},
					&cli.StringFlag{Name: "email", Usage: "account email", Destination: &cmd.email},
					&cli.StringFlag{Name: "phone", Usage: "phone number", Destination: &cmd.phone},
				},
				Action: cmd.runEdit,
			},
			{
				Name:      "rm",
				Usage:     "Delete an account",
				UsageText: "traindesk user rm <id>",
				Action:    cmd.runRm,
			},
			{
				Name:      "passwd",
				Usage:     "Change an account password",
				UsageText: "traindesk user passwd <id> --password <new>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "password", Usage: "new password", Destination: &cmd.password, Required: true},
				},
				Action: cmd.runPasswd,
			},
		},
	})

	return app
}

func (cmd *UserCmd) runLs(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	users, err := cmd.flags.API.Users(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	if len(users) == 0 {
		p.Infof("No accounts found")
		return nil
	}

	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE")
	for _, u := range users {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.FullName(), u.Email, u.Phone)
	}
	return w.Flush()
}

func (cmd *UserCmd) runEdit(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("usage: traindesk user edit <id> [flags]")
	}

	if cmd.email != "" {
		if err := validate.Email(cmd.email); err != nil {
			return err
		}
	}

	// The update endpoint replaces the record, so unset flags keep
	// their current values.
	users, err := cmd.flags.API.Users(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	var current *api.UpdateUser
	for _, u := range users {
		if u.ID == id {
			current = &api.UpdateUser{FirstName: u.FirstName, LastName: u.LastName, Email: u.Email, Phone: u.Phone}
			break
		}
	}
	if current == nil {
		return fmt.Errorf("no account with id %s", id)
	}

	in := api.UpdateUser{
		FirstName: firstNonEmpty(cmd.firstName, current.FirstName),
		LastName:  firstNonEmpty(cmd.lastName, current.LastName),
		Email:     firstNonEmpty(cmd.email, current.Email),
		Phone:     firstNonEmpty(cmd.phone, current.Phone),
	}

	u, err := cmd.flags.API.SaveUser(ctx, id, in)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	printer.Ctx(ctx).Successf("Account %s updated", u.FullName())
	return nil
}

func (cmd *UserCmd) runRm(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("usage: traindesk user rm <id>")
	}

	if err := cmd.flags.API.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	printer.Ctx(ctx).Successf("Account %s deleted", id)
	return nil
}

func (cmd *UserCmd) runPasswd(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("usage: traindesk user passwd <id> --password <new>")
	}

	if err := cmd.flags.API.SetPassword(ctx, id, cmd.password); err != nil {
		return fmt.Errorf("set password: %w", err)
	}

	printer.Ctx(ctx).Successf("Password updated")
	return nil
}
