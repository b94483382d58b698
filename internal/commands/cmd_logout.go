package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/traindesk/traindesk/internal/printer"
)

type LogoutCmd struct {
	flags *Flags
}

// NewLogoutCmd creates a new logout command
func NewLogoutCmd(flags *Flags) *LogoutCmd {
	return &LogoutCmd{flags: flags}
}

// Register adds the logout command to the application
func (cmd *LogoutCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "logout",
		Usage:       "Forget the stored session",
		UsageText:   "traindesk logout",
		Description: "Deletes the locally stored access token and renewal cookie.",
		Action:      cmd.run,
	})

	return app
}

func (cmd *LogoutCmd) run(ctx context.Context, c *cli.Command) error {
	if err := cmd.flags.API.Logout(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	printer.Ctx(ctx).Successf("Logged out")
	return nil
}
