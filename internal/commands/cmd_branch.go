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

type BranchCmd struct {
	flags *Flags

	name    string
	country string
	code    string
	address string
}

// NewBranchCmd creates a new branch command
func NewBranchCmd(flags *Flags) *BranchCmd {
	return &BranchCmd{flags: flags}
}

// Register adds the branch command and its subcommands to the application
func (cmd *BranchCmd) Register(app *cli.Command) *cli.Command {
	fieldFlags := []cli.Flag{
		&cli.StringFlag{Name: "name", Usage: "branch name", Destination: &cmd.name},
		&cli.StringFlag{Name: "country", Usage: "branch country", Destination: &cmd.country},
		&cli.StringFlag{Name: "code", Usage: "short branch code", Destination: &cmd.code},
		&cli.StringFlag{Name: "address", Usage: "street address", Destination: &cmd.address},
	}

	app.Commands = append(app.Commands, &cli.Command{
		Name:  "branch",
		Usage: "Manage company branches",
		Commands: []*cli.Command{
			{
				Name:      "ls",
				Usage:     "List all branches",
				UsageText: "traindesk branch ls",
				Action:    cmd.runLs,
			},
			{
				Name:      "get",
				Usage:     "Show one branch",
				UsageText: "traindesk branch get <id>",
				Action:    cmd.runGet,
			},
			{
				Name:      "create",
				Usage:     "Create a branch",
				UsageText: "traindesk branch create [--name ... --country ... --code ... --address ...]",
				Description: `Creates a branch. Fields not given as flags are collected
through an interactive form.`,
				Flags:  fieldFlags,
				Action: cmd.runCreate,
			},
			{
				Name:      "edit",
				Usage:     "Update a branch",
				UsageText: "traindesk branch edit <id> [flags]",
				Flags:     fieldFlags,
				Action:    cmd.runEdit,
			},
			{
				Name:      "rm",
				Usage:     "Delete a branch",
				UsageText: "traindesk branch rm <id>",
				Action:    cmd.runRm,
			},
		},
	})

	return app
}

func (cmd *BranchCmd) runLs(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	branches, err := cmd.flags.API.Branches(ctx)
	if err != nil {
		return fmt.Errorf("list branches: %w", err)
	}

	if len(branches) == 0 {
		p.Infof("No branches found")
		return nil
	}

	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tCODE\tCOUNTRY\tCOURSES")
	for _, b := range branches {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", b.ID, b.BranchName, b.BranchCode, b.Country, len(b.CourseIDs))
	}
	return w.Flush()
}

func (cmd *BranchCmd) runGet(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("usage: traindesk branch get <id>")
	}

	b, err := cmd.flags.API.Branch(ctx, id)
	if err != nil {
		return fmt.Errorf("get branch: %w", err)
	}

	p := printer.Ctx(ctx)
	p.Section(b.BranchName)
	p.Printf("ID:      %s", b.ID)
	p.Printf("Code:    %s", b.BranchCode)
	p.Printf("Country: %s", b.Country)
	p.Printf("Address: %s", b.Address)
	p.Printf("Courses: %d", len(b.CourseIDs))
	return nil
}

func (cmd *BranchCmd) runCreate(ctx context.Context, c *cli.Command) error {
	in := api.NewBranch{
		BranchName: cmd.name,
		Country:    cmd.country,
		BranchCode: cmd.code,
		Address:    cmd.address,
	}

	if in.BranchName == "" || in.Country == "" || in.BranchCode == "" {
		if err := cmd.form(&in); err != nil {
			return err
		}
	}

	if err := validate.Required("name", in.BranchName); err != nil {
		return err
	}

	b, err := cmd.flags.API.CreateBranch(ctx, in)
	if err != nil {
		return fmt.Errorf("create branch: %w", err)
	}

	printer.Ctx(ctx).Successf("Branch %s created (%s)", b.BranchName, b.ID)
	return nil
}

func (cmd *BranchCmd) runEdit(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("usage: traindesk branch edit <id> [flags]")
	}

	current, err := cmd.flags.API.Branch(ctx, id)
	if err != nil {
		return fmt.Errorf("get branch: %w", err)
	}

	in := api.NewBranch{
		BranchName: firstNonEmpty(cmd.name, current.BranchName),
		Country:    firstNonEmpty(cmd.country, current.Country),
		BranchCode: firstNonEmpty(cmd.code, current.BranchCode),
		Address:    firstNonEmpty(cmd.address, current.Address),
		CourseIDs:  current.CourseIDs,
	}

	if cmd.name == "" && cmd.country == "" && cmd.code == "" && cmd.address == "" {
		if err := cmd.form(&in); err != nil {
			return err
		}
	}

	b, err := cmd.flags.API.UpdateBranch(ctx, id, in)
	if err != nil {
		return fmt.Errorf("update branch: %w", err)
	}

	printer.Ctx(ctx).Successf("Branch %s updated", b.BranchName)
	return nil
}

func (cmd *BranchCmd) runRm(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("usage: traindesk branch rm <id>")
	}

	if err := cmd.flags.API.DeleteBranch(ctx, id); err != nil {
		return fmt.Errorf("delete branch: %w", err)
	}

	printer.Ctx(ctx).Successf("Branch %s deleted", id)
	return nil
}

func (cmd *BranchCmd) form(in *api.NewBranch) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name *").
				Value(&in.BranchName).
				Validate(requiredField("name")),
			huh.NewInput().
				Title("Country *").
				Value(&in.Country).
				Validate(requiredField("country")),
			huh.NewInput().
				Title("Code *").
				Value(&in.BranchCode).
				Validate(requiredField("code")),
			huh.NewInput().
				Title("Address").
				Value(&in.Address),
		),
	).WithTheme(styles.FormTheme())

	if err := form.Run(); err != nil {
		return fmt.Errorf("branch form: %w", err)
	}
	return nil
}
