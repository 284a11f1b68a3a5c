package utils

import (
	"regexp"
	"sort"
	"strings"
)

var emailRegex = regexp.MustCompile(`\S+@\S+\.\S+`)

// ValidationErrors maps a form field to its user-facing message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Err returns v as an error, or nil when there are no failures.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// IsEmail accepts the basic local@domain.tld shape.
func IsEmail(s string) bool {
	return emailRegex.MatchString(s)
}

func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
