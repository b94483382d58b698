package catalog

import "testing"

func TestBatchSpans(t *testing.T) {
	batch := Batch{FromDate: "2026-03-10", ToDate: "2026-03-14"}

	cases := []struct {
		name string
		date string
		want bool
	}{
		{"before start", "2026-03-09", false},
		{"first day", "2026-03-10", true},
		{"mid run", "2026-03-12", true},
		{"last day", "2026-03-14", true},
		{"after end", "2026-03-15", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := batch.Spans(tc.date); got != tc.want {
				t.Errorf("Spans(%q) = %v, want %v", tc.date, got, tc.want)
			}
		})
	}
}

func TestUserFullName(t *testing.T) {
	cases := []struct {
		name string
		user User
		want string
	}{
		{"both names", User{FirstName: "Grace", LastName: "Hopper"}, "Grace Hopper"},
		{"first only", User{FirstName: "Grace"}, "Grace"},
		{"last only", User{LastName: "Hopper"}, "Hopper"},
		{"neither", User{}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.user.FullName(); got != tc.want {
				t.Errorf("FullName() = %q, want %q", got, tc.want)
			}
		})
	}
}
