// Package catalog defines the domain records managed by the back office:
// branches, courses, instructors, and scheduled batches.
package catalog

import "time"

// Branch is a company location offering courses.
type Branch struct {
	ID         string    `json:"_id,omitempty"`
	BranchName string    `json:"branchName"`
	Country    string    `json:"country"`
	BranchCode string    `json:"branchCode"`
	Address    string    `json:"address"`
	CourseIDs  []string  `json:"courseIds,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt,omitempty"`
}

// Course is a training program offered at one or more branches.
type Course struct {
	ID          string `json:"_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Duration    int    `json:"duration,omitempty"` // days
}

// Instructor is a person who can be assigned to batches.
// The API names this resource "inspector"; the domain name is instructor.
type Instructor struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Batch is a scheduled run of a course at a branch with an instructor.
type Batch struct {
	ID           string `json:"_id,omitempty"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	FromDate     string `json:"fromDate"` // YYYY-MM-DD
	ToDate       string `json:"toDate"`
	BranchID     string `json:"branchId"`
	CourseID     string `json:"courseId"`
	InstructorID string `json:"inspectorId"`
}

// User is a back-office account.
type User struct {
	ID        string `json:"_id,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// Totals are the aggregate counts shown on the dashboard.
type Totals struct {
	Batches     int `json:"totalBatches"`
	Instructors int `json:"totalInspectors"`
	Courses     int `json:"totalCourses"`
	Branches    int `json:"totalBranches"`
}

// Spans reports whether the batch is running on the given date.
// Dates are compared lexically; both bounds are inclusive.
func (b Batch) Spans(date string) bool {
	return b.FromDate <= date && date <= b.ToDate
}

// FullName returns the user's display name.
func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
