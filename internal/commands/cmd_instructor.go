package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/traindesk/traindesk/internal/api"
	"github.com/traindesk/traindesk/internal/core/validate"
	"github.com/traindesk/traindesk/internal/printer"
	"github.com/traindesk/traindesk/internal/styles"
)

type InstructorCmd struct {
	flags *Flags

	name  string
	email string
	phone string
}

// NewInstructorCmd creates a new instructor command
func NewInstructorCmd(flags *Flags) *InstructorCmd {
	return &InstructorCmd{flags: flags}
}

// Register adds the instructor command and its subcommands to the application
func (cmd *InstructorCmd) Register(app *cli.Command) *cli.Command {
	fieldFlags := []cli.Flag{
		&cli.StringFlag{Name: "name", Usage: "instructor name", Destination: &cmd.name},
		&cli.StringFlag{Name: "email", Usage: "instructor email", Destination: &cmd.email},
		&cli.StringFlag{Name: "phone", Usage: "instructor phone", Destination: &cmd.phone},
	}

	app.Commands = append(app.Commands, &cli.Command{
		Name:  "instructor",
		Usage: "Manage instructors",
		Commands: []*cli.Command{
			{
				Name:      "ls",
				Usage:     "List all instructors",
				UsageText: "traindesk instructor ls",
				Action:    cmd.runLs,
			},
			{
				Name:      "get",
				Usage:     "Show one instructor",
				UsageText: "traindesk instructor get <id>",
				Action:    cmd.runGet,
			},
			{
				Name:      "create",
				Usage:     "Create an instructor",
				UsageText: "traindesk instructor create [--name ... --email ... --phone ...]",
				Flags:     fieldFlags,
				Action:    cmd.runCreate,
			},
			{
				Name:      "edit",
				Usage:     "Update an instructor",
				UsageText: "traindesk instructor edit <id> [flags]",
				Flags:     fieldFlags,
				Action:    cmd.runEdit,
			},
			{
				Name:      "rm",
				Usage:     "Delete an instructor",
				UsageText: "traindesk instructor rm <id>",
				Action:    cmd.runRm,
			},
		},
	})

	return app
}

func (cmd *InstructorCmd) runLs(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	instructors, err := cmd.flags.API.Instructors(ctx)
	if err != nil {
		return fmt.Errorf("list instructors: %w", err)
	}

	if len(instructors) == 0 {
		p.Infof("No instructors found")
		return nil
	}

	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE")
	for _, ins := range instructors {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", ins.ID, ins.Name, ins.Email, ins.Phone)
	}
	return w.Flush()
}

func (cmd *InstructorCmd) runGet(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("usage: traindesk instructor get <id>")
	}

	ins, err := cmd.flags.API.Instructor(ctx, id)
	if err != nil {
		return fmt.Errorf("get instructor: %w", err)
	}

	p := printer.Ctx(ctx)
	p.Section(ins.Name)
	p.Printf("ID:    %s", ins.ID)
	p.Printf("Email: %s", ins.Email)
	p.Printf("Phone: %s", ins.Phone)
	return nil
}

func (cmd *InstructorCmd) runCreate(ctx context.Context, c *cli.Command) error {
	in := api.NewInstructor{
		Name:  cmd.name,
		Email: cmd.email,
		Phone: cmd.phone,
	}

	if in.Name == "" || in.Email == "" {
		if err := cmd.form(&in); err != nil {
			return err
		}
	}

	if err := validate.Required("name", in.Name); err != nil {
		return err
	}
	if err := validate.Email(in.Email); err != nil {
		return err
	}

	ins, err := cmd.flags.API.CreateInstructor(ctx, in)
	if err != nil {
		return fmt.Errorf("create instructor: %w", err)
	}

	printer.Ctx(ctx).Successf("Instructor %s created (%s)", ins.Name, ins.ID)
	return nil
}

func (cmd *InstructorCmd) runEdit(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("usage: traindesk instructor edit <id> [flags]")
	}

	current, err := cmd.flags.API.Instructor(ctx, id)
	if err != nil {
		return fmt.Errorf("get instructor: %w", err)
	}

	in := api.NewInstructor{
		Name:  firstNonEmpty(cmd.name, current.Name),
		Email: firstNonEmpty(cmd.email, current.Email),
		Phone: firstNonEmpty(cmd.phone, current.Phone),
	}

	if cmd.name == "" && cmd.email == "" && cmd.phone == "" {
		if err := cmd.form(&in); err != nil {
			return err
		}
	}

	if err := validate.Email(in.Email); err != nil {
		return err
	}

	ins, err := cmd.flags.API.UpdateInstructor(ctx, id, in)
	if err != nil {
		return fmt.Errorf("update instructor: %w", err)
	}

	printer.Ctx(ctx).Successf("Instructor %s updated", ins.Name)
	return nil
}

func (cmd *InstructorCmd) runRm(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("usage: traindesk instructor rm <id>")
	}

	if err := cmd.flags.API.DeleteInstructor(ctx, id); err != nil {
		return fmt.Errorf("delete instructor: %w", err)
	}

	printer.Ctx(ctx).Successf("Instructor %s deleted", id)
	return nil
}

func (cmd *InstructorCmd) form(in *api.NewInstructor) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name *").
				Value(&in.Name).
				Validate(requiredField("name")),
			huh.NewInput().
				Title("Email *").
				Value(&in.Email).
				Validate(func(s string) error { return validate.Email(s) }),
			huh.NewInput().
				Title("Phone").
				Value(&in.Phone),
		),
	).WithTheme(styles.FormTheme())

	if err := form.Run(); err != nil {
		return fmt.Errorf("instructor form: %w", err)
	}
	return nil
}
