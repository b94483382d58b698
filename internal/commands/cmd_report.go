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

type ReportCmd struct {
	flags *Flags
	from  string
	to    string
}

// NewReportCmd creates a new report command
func NewReportCmd(flags *Flags) *ReportCmd {
	return &ReportCmd{flags: flags}
}

// Register adds the report command and its subcommands to the application
func (cmd *ReportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "report",
		Usage: "Run back-office reports",
		Commands: []*cli.Command{
			{
				Name:      "instructors",
				Usage:     "Instructor utilization for a date range",
				UsageText: "traindesk report instructors --from <date> --to <date>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "from", Usage: "start date (YYYY-MM-DD)", Destination: &cmd.from, Required: true},
					&cli.StringFlag{Name: "to", Usage: "end date (YYYY-MM-DD)", Destination: &cmd.to, Required: true},
				},
				Action: cmd.runInstructors,
			},
		},
	})

	return app
}

func (cmd *ReportCmd) runInstructors(ctx context.Context, c *cli.Command) error {
	if err := validate.DateRange(cmd.from, cmd.to); err != nil {
		return err
	}

	rows, err := cmd.flags.API.InstructorReport(ctx, api.ReportQuery{FromDate: cmd.from, ToDate: cmd.to})
	if err != nil {
		return fmt.Errorf("instructor report: %w", err)
	}

	p := printer.Ctx(ctx)
	if len(rows) == 0 {
		p.Infof("No assignments between %s and %s", cmd.from, cmd.to)
		return nil
	}

	p.Section(fmt.Sprintf("Instructor utilization %s to %s", cmd.from, cmd.to))
	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tEMAIL\tBATCHES\tDAYS")
	for _, r := range rows {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", r.Name, r.Email, r.BatchCount, r.AssignedDays)
	}
	return w.Flush()
}
