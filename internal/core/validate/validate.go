// Package validate provides shared validation functions for form input.
package validate

import (
	"fmt"
	"strings"
	"time"
)

// Required validates a value is non-empty after trimming whitespace.
func Required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", name)
	}
	return nil
}

// Email validates an address has a local part and a domain with a dot.
// Deliverability is the server's problem; this only catches typos.
func Email(value string) error {
	at := strings.Index(value, "@")
	if at < 1 || at == len(value)-1 {
		return fmt.Errorf("invalid email address")
	}
	domain := value[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// Date validates a YYYY-MM-DD value.
func Date(name, value string) error {
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return fmt.Errorf("%s must be a date in YYYY-MM-DD form", name)
	}
	return nil
}

// DateRange validates both bounds and that from is not after to.
func DateRange(from, to string) error {
	if err := Date("from date", from); err != nil {
		return err
	}
	if err := Date("to date", to); err != nil {
		return err
	}
	if to < from {
		return fmt.Errorf("end date cannot be before start date")
	}
	return nil
}
