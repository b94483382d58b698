package commands

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/traindesk/traindesk/internal/api"
	"github.com/traindesk/traindesk/internal/core/validate"
	"github.com/traindesk/traindesk/internal/printer"
	"github.com/traindesk/traindesk/internal/styles"
)

type CourseCmd struct {
	flags *Flags

	name        string
	description string
	duration    int
}

// NewCourseCmd creates a new course command
func NewCourseCmd(flags *Flags) *CourseCmd {
	return &CourseCmd{flags: flags}
}

// Register adds the course command and its subcommands to the application
func (cmd *CourseCmd) Register(app *cli.Command) *cli.Command {
	fieldFlags := []cli.Flag{
		&cli.StringFlag{Name: "name", Usage: "course name", Destination: &cmd.name},
		&cli.StringFlag{Name: "description", Usage: "course description", Destination: &cmd.description},
		&cli.IntFlag{Name: "duration", Usage: "duration in days", Destination: &cmd.duration},
	}

	app.Commands = append(app.Commands, &cli.Command{
		Name:  "course",
		Usage: "Manage training courses",
		Commands: []*cli.Command{
			{
				Name:      "ls",
				Usage:     "List all courses",
				UsageText: "traindesk course ls",
				Action:    cmd.runLs,
			},
			{
				Name:      "get",
				Usage:     "Show one course",
				UsageText: "traindesk course get <id>",
				Action:    cmd.runGet,
			},
			{
				Name:      "create",
				Usage:     "Create a course",
				UsageText: "traindesk course create [--name ... --description ... --duration ...]",
				Flags:     fieldFlags,
				Action:    cmd.runCreate,
			},
			{
				Name:      "edit",
				Usage:     "Update a course",
				UsageText: "traindesk course edit <id> [flags]",
				Flags:     fieldFlags,
				Action:    cmd.runEdit,
			},
			{
				Name:      "rm",
				Usage:     "Delete a course",
				UsageText: "traindesk course rm <id>",
				Action:    cmd.runRm,
			},
		},
	})

	return app
}

func (cmd *CourseCmd) runLs(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	courses, err := cmd.flags.API.Courses(ctx)
	if err != nil {
		return fmt.Errorf("list courses: %w", err)
	}

	if len(courses) == 0 {
		p.Infof("No courses found")
		return nil
	}

	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tDURATION\tDESCRIPTION")
	for _, course := range courses {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%dd\t%s\n", course.ID, course.Name, course.Duration, course.Description)
	}
	return w.Flush()
}

func (cmd *CourseCmd) runGet(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("usage: traindesk course get <id>")
	}

	course, err := cmd.flags.API.Course(ctx, id)
	if err != nil {
		return fmt.Errorf("get course: %w", err)
	}

	p := printer.Ctx(ctx)
	p.Section(course.Name)
	p.Printf("ID:          %s", course.ID)
	p.Printf("Duration:    %d days", course.Duration)
	p.Printf("Description: %s", course.Description)
	return nil
}

func (cmd *CourseCmd) runCreate(ctx context.Context, c *cli.Command) error {
	in := api.NewCourse{
		Name:        cmd.name,
		Description: cmd.description,
		Duration:    cmd.duration,
	}

	if in.Name == "" {
		if err := cmd.form(&in); err != nil {
			return err
		}
	}

	if err := validate.Required("name", in.Name); err != nil {
		return err
	}

	course, err := cmd.flags.API.CreateCourse(ctx, in)
	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}

	printer.Ctx(ctx).Successf("Course %s created (%s)", course.Name, course.ID)
	return nil
}

func (cmd *CourseCmd) runEdit(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("usage: traindesk course edit <id> [flags]")
	}

	current, err := cmd.flags.API.Course(ctx, id)
	if err != nil {
		return fmt.Errorf("get course: %w", err)
	}

	in := api.NewCourse{
		Name:        firstNonEmpty(cmd.name, current.Name),
		Description: firstNonEmpty(cmd.description, current.Description),
		Duration:    current.Duration,
	}
	if cmd.duration > 0 {
		in.Duration = cmd.duration
	}

	if cmd.name == "" && cmd.description == "" && cmd.duration == 0 {
		if err := cmd.form(&in); err != nil {
			return err
		}
	}

	course, err := cmd.flags.API.UpdateCourse(ctx, id, in)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}

	printer.Ctx(ctx).Successf("Course %s updated", course.Name)
	return nil
}

func (cmd *CourseCmd) runRm(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("usage: traindesk course rm <id>")
	}

	if err := cmd.flags.API.DeleteCourse(ctx, id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}

	printer.Ctx(ctx).Successf("Course %s deleted", id)
	return nil
}

func (cmd *CourseCmd) form(in *api.NewCourse) error {
	duration := ""
	if in.Duration > 0 {
		duration = strconv.Itoa(in.Duration)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name *").
				Value(&in.Name).
				Validate(requiredField("name")),
			huh.NewText().
				Title("Description").
				Value(&in.Description),
			huh.NewInput().
				Title("Duration (days)").
				Value(&duration).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					n, err := strconv.Atoi(s)
					if err != nil || n < 1 {
						return fmt.Errorf("duration must be a positive number of days")
					}
					return nil
				}),
		),
	).WithTheme(styles.FormTheme())

	if err := form.Run(); err != nil {
		return fmt.Errorf("course form: %w", err)
	}

	if duration != "" {
		in.Duration, _ = strconv.Atoi(duration)
	}
	return nil
}
