package commands

import (
	"context"
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/traindesk/traindesk/internal/api"
	"github.com/traindesk/traindesk/internal/core/catalog"
	"github.com/traindesk/traindesk/internal/core/validate"
	"github.com/traindesk/traindesk/internal/printer"
	"github.com/traindesk/traindesk/internal/styles"
)

type BatchCmd struct {
	flags *Flags

	code       string
	name       string
	on         string
	from       string
	to         string
	branch     string
	course     string
	instructor string
}

// NewBatchCmd creates a new batch command
func NewBatchCmd(flags *Flags) *BatchCmd {
	return &BatchCmd{flags: flags}
}

// Register adds the batch command and its subcommands to the application
func (cmd *BatchCmd) Register(app *cli.Command) *cli.Command {
	dateFlags := []cli.Flag{
		&cli.StringFlag{Name: "from", Usage: "start date (YYYY-MM-DD)", Destination: &cmd.from},
		&cli.StringFlag{Name: "to", Usage: "end date (YYYY-MM-DD)", Destination: &cmd.to},
	}
	fieldFlags := append([]cli.Flag{
		&cli.StringFlag{Name: "code", Usage: "batch code", Destination: &cmd.code},
		&cli.StringFlag{Name: "name", Usage: "batch name", Destination: &cmd.name},
		&cli.StringFlag{Name: "branch", Usage: "branch id", Destination: &cmd.branch},
		&cli.StringFlag{Name: "course", Usage: "course id", Destination: &cmd.course},
		&cli.StringFlag{Name: "instructor", Usage: "instructor id", Destination: &cmd.instructor},
	}, dateFlags...)

	app.Commands = append(app.Commands, &cli.Command{
		Name:  "batch",
		Usage: "Manage scheduled course batches",
		Commands: []*cli.Command{
			{
				Name:      "ls",
				Usage:     "List all batches",
				UsageText: "traindesk batch ls [--on <date>]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "on", Usage: "only batches running on this date (YYYY-MM-DD)", Destination: &cmd.on},
				},
				Action: cmd.runLs,
			},
			{
				Name:      "get",
				Usage:     "Show one batch",
				UsageText: "traindesk batch get <id>",
				Action:    cmd.runGet,
			},
			{
				Name:      "book",
				Usage:     "Schedule a new batch",
				UsageText: "traindesk batch book [flags]",
				Description: `Schedules a batch. Fields not given as flags are collected through
an interactive form; the instructor choices are limited to those
free for the selected dates.`,
				Flags:  fieldFlags,
				Action: cmd.runBook,
			},
			{
				Name:      "edit",
				Usage:     "Update a batch",
				UsageText: "traindesk batch edit <id> [flags]",
				Flags:     fieldFlags,
				Action:    cmd.runEdit,
			},
			{
				Name:      "rm",
				Usage:     "Delete a batch",
				UsageText: "traindesk batch rm <id>",
				Action:    cmd.runRm,
			},
			{
				Name:      "available",
				Usage:     "List instructors free for a date range",
				UsageText: "traindesk batch available --branch <id> --course <id> --from <date> --to <date>",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "branch", Usage: "branch id", Destination: &cmd.branch},
					&cli.StringFlag{Name: "course", Usage: "course id", Destination: &cmd.course},
				}, dateFlags...),
				Action: cmd.runAvailable,
			},
		},
	})

	return app
}

func (cmd *BatchCmd) runLs(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if cmd.on != "" {
		if err := validate.Date("on", cmd.on); err != nil {
			return err
		}
	}

	list, err := cmd.flags.API.Batches(ctx)
	if err != nil {
		return fmt.Errorf("list batches: %w", err)
	}

	batches := list.Batches
	if cmd.on != "" {
		batches = slices.DeleteFunc(slices.Clone(batches), func(b catalog.Batch) bool {
			return !b.Spans(cmd.on)
		})
	}

	if len(batches) == 0 {
		p.Infof("No batches found")
		return nil
	}

	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tCODE\tNAME\tFROM\tTO\tINSTRUCTOR")
	for _, b := range batches {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", b.ID, b.Code, b.Name, b.FromDate, b.ToDate, b.InstructorID)
	}
	return w.Flush()
}

func (cmd *BatchCmd) runGet(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("usage: traindesk batch get <id>")
	}

	b, err := cmd.flags.API.Batch(ctx, id)
	if err != nil {
		return fmt.Errorf("get batch: %w", err)
	}

	p := printer.Ctx(ctx)
	p.Section(fmt.Sprintf("%s (%s)", b.Name, b.Code))
	p.Printf("ID:         %s", b.ID)
	p.Printf("Dates:      %s to %s", b.FromDate, b.ToDate)
	p.Printf("Branch:     %s", b.BranchID)
	p.Printf("Course:     %s", b.CourseID)
	p.Printf("Instructor: %s", b.InstructorID)
	return nil
}

func (cmd *BatchCmd) runBook(ctx context.Context, c *cli.Command) error {
	in := api.BookBatch{
		Code:         cmd.code,
		Name:         cmd.name,
		FromDate:     cmd.from,
		ToDate:       cmd.to,
		BranchID:     cmd.branch,
		CourseID:     cmd.course,
		InstructorID: cmd.instructor,
	}

	if in.Code == "" || in.FromDate == "" || in.ToDate == "" || in.BranchID == "" || in.CourseID == "" {
		if err := cmd.bookForm(ctx, &in); err != nil {
			return err
		}
	}

	if err := validate.DateRange(in.FromDate, in.ToDate); err != nil {
		return err
	}

	if in.InstructorID == "" {
		if err := cmd.pickInstructor(ctx, &in); err != nil {
			return err
		}
	}

	b, err := cmd.flags.API.Book(ctx, in)
	if err != nil {
		return fmt.Errorf("book batch: %w", err)
	}

	printer.Ctx(ctx).Successf("Batch %s scheduled (%s)", b.Code, b.ID)
	return nil
}

func (cmd *BatchCmd) runEdit(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("usage: traindesk batch edit <id> [flags]")
	}

	current, err := cmd.flags.API.Batch(ctx, id)
	if err != nil {
		return fmt.Errorf("get batch: %w", err)
	}

	in := api.BookBatch{
		Code:         firstNonEmpty(cmd.code, current.Code),
		Name:         firstNonEmpty(cmd.name, current.Name),
		FromDate:     firstNonEmpty(cmd.from, current.FromDate),
		ToDate:       firstNonEmpty(cmd.to, current.ToDate),
		BranchID:     firstNonEmpty(cmd.branch, current.BranchID),
		CourseID:     firstNonEmpty(cmd.course, current.CourseID),
		InstructorID: firstNonEmpty(cmd.instructor, current.InstructorID),
	}

	if err := validate.DateRange(in.FromDate, in.ToDate); err != nil {
		return err
	}

	b, err := cmd.flags.API.UpdateBatch(ctx, id, in)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}

	printer.Ctx(ctx).Successf("Batch %s updated", b.Code)
	return nil
}

func (cmd *BatchCmd) runRm(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("usage: traindesk batch rm <id>")
	}

	if err := cmd.flags.API.DeleteBatch(ctx, id); err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}

	printer.Ctx(ctx).Successf("Batch %s deleted", id)
	return nil
}

func (cmd *BatchCmd) runAvailable(ctx context.Context, c *cli.Command) error {
	q := api.AvailabilityQuery{
		BranchID: cmd.branch,
		CourseID: cmd.course,
		FromDate: cmd.from,
		ToDate:   cmd.to,
	}
	if q.BranchID == "" || q.CourseID == "" {
		return fmt.Errorf("--branch and --course are required")
	}
	if err := validate.DateRange(q.FromDate, q.ToDate); err != nil {
		return err
	}

	free, err := cmd.flags.API.AvailableInstructors(ctx, q)
	if err != nil {
		return fmt.Errorf("available instructors: %w", err)
	}

	p := printer.Ctx(ctx)
	if len(free) == 0 {
		p.Infof("No instructors free between %s and %s", q.FromDate, q.ToDate)
		return nil
	}

	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tEMAIL")
	for _, ins := range free {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", ins.ID, ins.Name, ins.Email)
	}
	return w.Flush()
}

// bookForm collects the batch fields interactively. Branch and course
// selects offer the real records, not raw ids.
func (cmd *BatchCmd) bookForm(ctx context.Context, in *api.BookBatch) error {
	branches, err := cmd.flags.API.Branches(ctx)
	if err != nil {
		return fmt.Errorf("list branches: %w", err)
	}
	courses, err := cmd.flags.API.Courses(ctx)
	if err != nil {
		return fmt.Errorf("list courses: %w", err)
	}

	branchOpts := make([]huh.Option[string], len(branches))
	for i, b := range branches {
		branchOpts[i] = huh.NewOption(fmt.Sprintf("%s (%s)", b.BranchName, b.BranchCode), b.ID)
	}
	courseOpts := make([]huh.Option[string], len(courses))
	for i, course := range courses {
		courseOpts[i] = huh.NewOption(course.Name, course.ID)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Code *").
				Value(&in.Code).
				Validate(requiredField("code")),
			huh.NewInput().
				Title("Name").
				Value(&in.Name),
			huh.NewInput().
				Title("From (YYYY-MM-DD) *").
				Value(&in.FromDate).
				Validate(func(s string) error { return validate.Date("from", s) }),
			huh.NewInput().
				Title("To (YYYY-MM-DD) *").
				Value(&in.ToDate).
				Validate(func(s string) error { return validate.Date("to", s) }),
			huh.NewSelect[string]().
				Title("Branch *").
				Options(branchOpts...).
				Value(&in.BranchID),
			huh.NewSelect[string]().
				Title("Course *").
				Options(courseOpts...).
				Value(&in.CourseID),
		),
	).WithTheme(styles.FormTheme())

	if err := form.Run(); err != nil {
		return fmt.Errorf("batch form: %w", err)
	}
	return nil
}

// pickInstructor asks the server who is free for the chosen dates and
// offers only those.
func (cmd *BatchCmd) pickInstructor(ctx context.Context, in *api.BookBatch) error {
	free, err := cmd.flags.API.AvailableInstructors(ctx, api.AvailabilityQuery{
		BranchID: in.BranchID,
		CourseID: in.CourseID,
		FromDate: in.FromDate,
		ToDate:   in.ToDate,
	})
	if err != nil {
		return fmt.Errorf("available instructors: %w", err)
	}
	if len(free) == 0 {
		return fmt.Errorf("no instructors free between %s and %s", in.FromDate, in.ToDate)
	}

	opts := make([]huh.Option[string], len(free))
	for i, ins := range free {
		opts[i] = huh.NewOption(fmt.Sprintf("%s <%s>", ins.Name, ins.Email), ins.ID)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Instructor *").
				Options(opts...).
				Value(&in.InstructorID),
		),
	).WithTheme(styles.FormTheme())

	if err := form.Run(); err != nil {
		return fmt.Errorf("instructor select: %w", err)
	}
	return nil
}
