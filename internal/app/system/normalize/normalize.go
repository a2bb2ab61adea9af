// Package normalize holds the canonical forms for user-entered identity
// fields. Stores normalize on write so lookups never depend on how a
// value was typed.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// RollNo uppercases and trims a student roll number.
func RollNo(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
