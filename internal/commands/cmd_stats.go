package commands

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/traindesk/traindesk/internal/core/catalog"
	"github.com/traindesk/traindesk/internal/printer"
	"github.com/traindesk/traindesk/internal/store/jsonfile"
)

type StatsCmd struct {
	flags  *Flags
	cached bool
}

// NewStatsCmd creates a new stats command
func NewStatsCmd(flags *Flags) *StatsCmd {
	return &StatsCmd{flags: flags}
}

// Register adds the stats command to the application
func (cmd *StatsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "stats",
		Usage:     "Show dashboard totals",
		UsageText: "traindesk stats [--cached]",
		Description: `Prints the aggregate counts the dashboard shows. With --cached the
last snapshot written by the dashboard is used and no request is made.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "cached",
				Usage:       "read the local snapshot instead of the server",
				Destination: &cmd.cached,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *StatsCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	var totals catalog.Totals
	if cmd.cached {
		snap, err := cmd.flags.Service.CachedSnapshot()
		if err != nil {
			if errors.Is(err, jsonfile.ErrNoSnapshot) {
				p.Infof("No cached snapshot yet; run without --cached first")
				return nil
			}
			return fmt.Errorf("read snapshot: %w", err)
		}
		totals = snap.Totals
		p.Infof("Snapshot from %s", snap.FetchedAt.Format("2006-01-02 15:04:05"))
	} else {
		list, err := cmd.flags.API.Batches(ctx)
		if err != nil {
			return fmt.Errorf("fetch totals: %w", err)
		}
		totals = list.Totals
	}

	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Branches\t%d\n", totals.Branches)
	_, _ = fmt.Fprintf(w, "Courses\t%d\n", totals.Courses)
	_, _ = fmt.Fprintf(w, "Instructors\t%d\n", totals.Instructors)
	_, _ = fmt.Fprintf(w, "Batches\t%d\n", totals.Batches)
	return w.Flush()
}
