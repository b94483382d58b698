package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/traindesk/traindesk/internal/api"
	"github.com/traindesk/traindesk/internal/backoffice"
	"github.com/traindesk/traindesk/internal/core/validate"
	"github.com/traindesk/traindesk/internal/styles"
)

// createForm is a huh form plus the submit that runs when it completes.
type createForm struct {
	form   *huh.Form
	submit func(ctx context.Context, svc *backoffice.Service) error
}

func newCreateForm(view ViewType, svc *backoffice.Service) *createForm {
	switch view {
	case ViewBranches:
		return newBranchForm()
	case ViewCourses:
		return newCourseForm()
	case ViewInstructors:
		return newInstructorForm()
	case ViewBatches:
		return newBatchForm(svc)
	default:
		return nil
	}
}

func newBranchForm() *createForm {
	in := &api.NewBranch{}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name *").Value(&in.BranchName).Validate(required("name")),
			huh.NewInput().Title("Country *").Value(&in.Country).Validate(required("country")),
			huh.NewInput().Title("Code *").Value(&in.BranchCode).Validate(required("code")),
			huh.NewInput().Title("Address").Value(&in.Address),
		),
	).WithTheme(styles.FormTheme())

	return &createForm{
		form: form,
		submit: func(ctx context.Context, svc *backoffice.Service) error {
			return svc.CreateBranch(ctx, *in)
		},
	}
}

func newCourseForm() *createForm {
	in := &api.NewCourse{}
	duration := ""

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name *").Value(&in.Name).Validate(required("name")),
			huh.NewText().Title("Description").Value(&in.Description),
			huh.NewInput().Title("Duration (days)").Value(&duration).Validate(positiveNumber),
		),
	).WithTheme(styles.FormTheme())

	return &createForm{
		form: form,
		submit: func(ctx context.Context, svc *backoffice.Service) error {
			if duration != "" {
				in.Duration, _ = strconv.Atoi(duration)
			}
			return svc.CreateCourse(ctx, *in)
		},
	}
}

func newInstructorForm() *createForm {
	in := &api.NewInstructor{}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name *").Value(&in.Name).Validate(required("name")),
			huh.NewInput().Title("Email *").Value(&in.Email).Validate(func(s string) error { return validate.Email(s) }),
			huh.NewInput().Title("Phone").Value(&in.Phone),
		),
	).WithTheme(styles.FormTheme())

	return &createForm{
		form: form,
		submit: func(ctx context.Context, svc *backoffice.Service) error {
			return svc.CreateInstructor(ctx, *in)
		},
	}
}

func newBatchForm(svc *backoffice.Service) *createForm {
	in := &api.BookBatch{}

	branches := svc.Branches.Items()
	branchOpts := make([]huh.Option[string], len(branches))
	for i, b := range branches {
		branchOpts[i] = huh.NewOption(fmt.Sprintf("%s (%s)", b.BranchName, b.BranchCode), b.ID)
	}

	courses := svc.Courses.Items()
	courseOpts := make([]huh.Option[string], len(courses))
	for i, c := range courses {
		courseOpts[i] = huh.NewOption(c.Name, c.ID)
	}

	instructors := svc.Instructors.Items()
	instructorOpts := make([]huh.Option[string], len(instructors))
	for i, ins := range instructors {
		instructorOpts[i] = huh.NewOption(ins.Name, ins.ID)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Code *").Value(&in.Code).Validate(required("code")),
			huh.NewInput().Title("Name").Value(&in.Name),
			huh.NewInput().Title("From (YYYY-MM-DD) *").Value(&in.FromDate).
				Validate(func(s string) error { return validate.Date("from", s) }),
			huh.NewInput().Title("To (YYYY-MM-DD) *").Value(&in.ToDate).
				Validate(func(s string) error { return validate.Date("to", s) }),
			huh.NewSelect[string]().Title("Branch *").Options(branchOpts...).Value(&in.BranchID),
			huh.NewSelect[string]().Title("Course *").Options(courseOpts...).Value(&in.CourseID),
			huh.NewSelect[string]().Title("Instructor *").Options(instructorOpts...).Value(&in.InstructorID),
		),
	).WithTheme(styles.FormTheme())

	return &createForm{
		form: form,
		submit: func(ctx context.Context, svc *backoffice.Service) error {
			if err := validate.DateRange(in.FromDate, in.ToDate); err != nil {
				return err
			}
			return svc.BookBatch(ctx, *in)
		},
	}
}

func required(name string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func positiveNumber(s string) error {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}
