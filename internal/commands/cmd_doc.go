package commands

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

//go:embed doc/guide.md
var guide string

type DocCmd struct {
	flags *Flags
}

// NewDocCmd creates a new doc command
func NewDocCmd(flags *Flags) *DocCmd {
	return &DocCmd{flags: flags}
}

// Register adds the doc command to the application
func (cmd *DocCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doc",
		Usage:       "Show the built-in usage guide",
		UsageText:   "traindesk doc",
		Description: "Renders the usage guide in the terminal.",
		Action:      cmd.run,
	})

	return app
}

func (cmd *DocCmd) run(ctx context.Context, c *cli.Command) error {
	width := 100
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && w < width {
		width = w
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("tokyo-night"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	out, err := renderer.Render(guide)
	if err != nil {
		return fmt.Errorf("render guide: %w", err)
	}

	_, err = fmt.Fprint(c.Root().Writer, out)
	return err
}
