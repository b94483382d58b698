package backoffice

import (
	"context"
	"fmt"

	"github.com/traindesk/traindesk/internal/api"
	"github.com/traindesk/traindesk/internal/core/catalog"
	"github.com/traindesk/traindesk/internal/optimistic"
)

func branchID(b catalog.Branch) string         { return b.ID }
func courseID(c catalog.Course) string         { return c.ID }
func instructorID(i catalog.Instructor) string { return i.ID }
func batchID(b catalog.Batch) string           { return b.ID }

// guardPending rejects mutations addressing a record that only exists
// optimistically; until its create settles there is no server id to call.
func guardPending(id string) error {
	if optimistic.IsPlaceholder(id) {
		return fmt.Errorf("record %s has not been saved yet", id)
	}
	return nil
}

// CreateBranch appends the branch optimistically and swaps in the server
// record (with its generated id) once the create succeeds.
func (s *Service) CreateBranch(ctx context.Context, in api.NewBranch) error {
	placeholder := optimistic.PlaceholderID()
	guess := catalog.Branch{
		ID:         placeholder,
		BranchName: in.BranchName,
		Country:    in.Country,
		BranchCode: in.BranchCode,
		Address:    in.Address,
		CourseIDs:  in.CourseIDs,
	}

	_, err := optimistic.Apply(ctx, s.Branches,
		optimistic.Append(guess),
		func(ctx context.Context) (catalog.Branch, error) {
			return s.api.CreateBranch(ctx, in)
		},
		optimistic.Options[catalog.Branch, catalog.Branch]{
			SuccessMessage: "Branch added successfully",
			FailureMessage: "Failed to add branch",
			Notifier:       s.notifier,
			Reconcile:      optimistic.ReconcileByID[catalog.Branch](placeholder, branchID),
		},
	)
	if err != nil {
		s.log.Error().Err(err).Str("branch", in.BranchName).Msg("create branch")
	}
	return err
}

// UpdateBranch replaces the branch optimistically; the server record wins
// once the update succeeds.
func (s *Service) UpdateBranch(ctx context.Context, id string, in api.NewBranch) error {
	if err := guardPending(id); err != nil {
		return err
	}

	guess := catalog.Branch{
		ID:         id,
		BranchName: in.BranchName,
		Country:    in.Country,
		BranchCode: in.BranchCode,
		Address:    in.Address,
		CourseIDs:  in.CourseIDs,
	}

	_, err := optimistic.Apply(ctx, s.Branches,
		optimistic.ReplaceByID(id, guess, branchID),
		func(ctx context.Context) (catalog.Branch, error) {
			return s.api.UpdateBranch(ctx, id, in)
		},
		optimistic.Options[catalog.Branch, catalog.Branch]{
			SuccessMessage: "Branch updated successfully",
			FailureMessage: "Failed to update branch",
			Notifier:       s.notifier,
			Reconcile:      optimistic.ReconcileByID[catalog.Branch](id, branchID),
		},
	)
	if err != nil {
		s.log.Error().Err(err).Str("branch_id", id).Msg("update branch")
	}
	return err
}

// DeleteBranch removes the branch optimistically.
func (s *Service) DeleteBranch(ctx context.Context, id string) error {
	if err := guardPending(id); err != nil {
		return err
	}

	_, err := optimistic.Apply(ctx, s.Branches,
		optimistic.RemoveByID(id, branchID),
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.api.DeleteBranch(ctx, id)
		},
		optimistic.Options[catalog.Branch, struct{}]{
			SuccessMessage: "Branch deleted",
			FailureMessage: "Failed to delete branch",
			Notifier:       s.notifier,
		},
	)
	if err != nil {
		s.log.Error().Err(err).Str("branch_id", id).Msg("delete branch")
	}
	return err
}

// CreateCourse appends the course optimistically and reconciles with the
// server record.
func (s *Service) CreateCourse(ctx context.Context, in api.NewCourse) error {
	placeholder := optimistic.PlaceholderID()
	guess := catalog.Course{
		ID:          placeholder,
		Name:        in.Name,
		Description: in.Description,
		Duration:    in.Duration,
	}

	_, err := optimistic.Apply(ctx, s.Courses,
		optimistic.Append(guess),
		func(ctx context.Context) (catalog.Course, error) {
			return s.api.CreateCourse(ctx, in)
		},
		optimistic.Options[catalog.Course, catalog.Course]{
			SuccessMessage: "Course added successfully",
			FailureMessage: "Failed to add course",
			Notifier:       s.notifier,
			Reconcile:      optimistic.ReconcileByID[catalog.Course](placeholder, courseID),
		},
	)
	if err != nil {
		s.log.Error().Err(err).Str("course", in.Name).Msg("create course")
	}
	return err
}

// UpdateCourse replaces the course optimistically.
func (s *Service) UpdateCourse(ctx context.Context, id string, in api.NewCourse) error {
	if err := guardPending(id); err != nil {
		return err
	}

	guess := catalog.Course{ID: id, Name: in.Name, Description: in.Description, Duration: in.Duration}

	_, err := optimistic.Apply(ctx, s.Courses,
		optimistic.ReplaceByID(id, guess, courseID),
		func(ctx context.Context) (catalog.Course, error) {
			return s.api.UpdateCourse(ctx, id, in)
		},
		optimistic.Options[catalog.Course, catalog.Course]{
			SuccessMessage: "Course updated successfully",
			FailureMessage: "Failed to update course",
			Notifier:       s.notifier,
			Reconcile:      optimistic.ReconcileByID[catalog.Course](id, courseID),
		},
	)
	if err != nil {
		s.log.Error().Err(err).Str("course_id", id).Msg("update course")
	}
	return err
}

// DeleteCourse removes the course optimistically.
func (s *Service) DeleteCourse(ctx context.Context, id string) error {
	if err := guardPending(id); err != nil {
		return err
	}

	_, err := optimistic.Apply(ctx, s.Courses,
		optimistic.RemoveByID(id, courseID),
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.api.DeleteCourse(ctx, id)
		},
		optimistic.Options[catalog.Course, struct{}]{
			SuccessMessage: "Course deleted",
			FailureMessage: "Failed to delete course",
			Notifier:       s.notifier,
		},
	)
	if err != nil {
		s.log.Error().Err(err).Str("course_id", id).Msg("delete course")
	}
	return err
}

// CreateInstructor appends the instructor optimistically and reconciles with
// the server record.
func (s *Service) CreateInstructor(ctx context.Context, in api.NewInstructor) error {
	placeholder := optimistic.PlaceholderID()
	guess := catalog.Instructor{ID: placeholder, Name: in.Name, Email: in.Email, Phone: in.Phone}

	_, err := optimistic.Apply(ctx, s.Instructors,
		optimistic.Append(guess),
		func(ctx context.Context) (catalog.Instructor, error) {
			return s.api.CreateInstructor(ctx, in)
		},
		optimistic.Options[catalog.Instructor, catalog.Instructor]{
			SuccessMessage: "Instructor added successfully",
			FailureMessage: "Failed to add instructor",
			Notifier:       s.notifier,
			Reconcile:      optimistic.ReconcileByID[catalog.Instructor](placeholder, instructorID),
		},
	)
	if err != nil {
		s.log.Error().Err(err).Str("instructor", in.Name).Msg("create instructor")
	}
	return err
}

// UpdateInstructor replaces the instructor optimistically.
func (s *Service) UpdateInstructor(ctx context.Context, id string, in api.NewInstructor) error {
	if err := guardPending(id); err != nil {
		return err
	}

	guess := catalog.Instructor{ID: id, Name: in.Name, Email: in.Email, Phone: in.Phone}

	_, err := optimistic.Apply(ctx, s.Instructors,
		optimistic.ReplaceByID(id, guess, instructorID),
		func(ctx context.Context) (catalog.Instructor, error) {
			return s.api.UpdateInstructor(ctx, id, in)
		},
		optimistic.Options[catalog.Instructor, catalog.Instructor]{
			SuccessMessage: "Instructor updated successfully",
			FailureMessage: "Failed to update instructor",
			Notifier:       s.notifier,
			Reconcile:      optimistic.ReconcileByID[catalog.Instructor](id, instructorID),
		},
	)
	if err != nil {
		s.log.Error().Err(err).Str("instructor_id", id).Msg("update instructor")
	}
	return err
}

// DeleteInstructor removes the instructor optimistically.
func (s *Service) DeleteInstructor(ctx context.Context, id string) error {
	if err := guardPending(id); err != nil {
		return err
	}

	_, err := optimistic.Apply(ctx, s.Instructors,
		optimistic.RemoveByID(id, instructorID),
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.api.DeleteInstructor(ctx, id)
		},
		optimistic.Options[catalog.Instructor, struct{}]{
			SuccessMessage: "Instructor deleted",
			FailureMessage: "Failed to delete instructor",
			Notifier:       s.notifier,
		},
	)
	if err != nil {
		s.log.Error().Err(err).Str("instructor_id", id).Msg("delete instructor")
	}
	return err
}

// BookBatch schedules a batch optimistically and reconciles with the server
// record.
func (s *Service) BookBatch(ctx context.Context, in api.BookBatch) error {
	placeholder := optimistic.PlaceholderID()
	guess := catalog.Batch{
		ID:           placeholder,
		Code:         in.Code,
		Name:         in.Name,
		FromDate:     in.FromDate,
		ToDate:       in.ToDate,
		BranchID:     in.BranchID,
		CourseID:     in.CourseID,
		InstructorID: in.InstructorID,
	}

	_, err := optimistic.Apply(ctx, s.Batches,
		optimistic.Append(guess),
		func(ctx context.Context) (catalog.Batch, error) {
			return s.api.Book(ctx, in)
		},
		optimistic.Options[catalog.Batch, catalog.Batch]{
			SuccessMessage: "Batch scheduled successfully",
			FailureMessage: "Failed to schedule batch",
			Notifier:       s.notifier,
			Reconcile:      optimistic.ReconcileByID[catalog.Batch](placeholder, batchID),
		},
	)
	if err != nil {
		s.log.Error().Err(err).Str("batch", in.Code).Msg("book batch")
	}
	return err
}

// UpdateBatch replaces the batch optimistically.
func (s *Service) UpdateBatch(ctx context.Context, id string, in api.BookBatch) error {
	if err := guardPending(id); err != nil {
		return err
	}

	guess := catalog.Batch{
		ID:           id,
		Code:         in.Code,
		Name:         in.Name,
		FromDate:     in.FromDate,
		ToDate:       in.ToDate,
		BranchID:     in.BranchID,
		CourseID:     in.CourseID,
		InstructorID: in.InstructorID,
	}

	_, err := optimistic.Apply(ctx, s.Batches,
		optimistic.ReplaceByID(id, guess, batchID),
		func(ctx context.Context) (catalog.Batch, error) {
			return s.api.UpdateBatch(ctx, id, in)
		},
		optimistic.Options[catalog.Batch, catalog.Batch]{
			SuccessMessage: "Batch updated successfully",
			FailureMessage: "Failed to update batch",
			Notifier:       s.notifier,
			Reconcile:      optimistic.ReconcileByID[catalog.Batch](id, batchID),
		},
	)
	if err != nil {
		s.log.Error().Err(err).Str("batch_id", id).Msg("update batch")
	}
	return err
}

// DeleteBatch removes the batch optimistically.
func (s *Service) DeleteBatch(ctx context.Context, id string) error {
	if err := guardPending(id); err != nil {
		return err
	}

	_, err := optimistic.Apply(ctx, s.Batches,
		optimistic.RemoveByID(id, batchID),
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.api.DeleteBatch(ctx, id)
		},
		optimistic.Options[catalog.Batch, struct{}]{
			SuccessMessage: "Batch deleted",
			FailureMessage: "Failed to delete batch",
			Notifier:       s.notifier,
		},
	)
	if err != nil {
		s.log.Error().Err(err).Str("batch_id", id).Msg("delete batch")
	}
	return err
}

// AvailableInstructors passes the availability query through to the API.
func (s *Service) AvailableInstructors(ctx context.Context, q api.AvailabilityQuery) ([]catalog.Instructor, error) {
	return s.api.AvailableInstructors(ctx, q)
}
