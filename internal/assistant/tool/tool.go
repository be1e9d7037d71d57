// Package tool implements the function calling surface the assistant
// exposes to the model. Every tool takes schema described arguments,
// runs one business operation for the authenticated user, and returns
// a human readable summary the model can quote back.
package tool

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Tool is one callable capability exposed to the model.
//
// The user ID is bound from the authenticated request, never from the
// model's arguments, so a tool can only ever touch the caller's data.
type Tool interface {
	// Name returns the unique snake_case identifier for this tool.
	Name() string

	// Description tells the model when and how to use the tool.
	Description() string

	// Parameters returns a JSON schema describing the expected arguments.
	Parameters() map[string]interface{}

	// Call executes the tool and returns a text summary of the result.
	Call(ctx context.Context, userID uint, args map[string]interface{}) (string, error)
}

// argument extraction helpers: the model sends JSON, so numbers arrive
// as float64 and IDs may arrive as either numbers or strings.

func argString(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func argUint(args map[string]interface{}, key string) (uint, bool) {
	switch v := args[key].(type) {
	case float64:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	case string:
		var id uint
		if _, err := fmt.Sscanf(strings.TrimSpace(v), "%d", &id); err == nil {
			return id, true
		}
	}
	return 0, false
}

func argInt(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case string:
		var n int
		if _, err := fmt.Sscanf(strings.TrimSpace(v), "%d", &n); err == nil {
			return n, true
		}
	}
	return 0, false
}

func argFloat(args map[string]interface{}, key string) (float64, bool) {
	switch v := args[key].(type) {
	case float64:
		return v, true
	case string:
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(v), "%f", &f); err == nil {
			return f, true
		}
	}
	return 0, false
}

// argDate parses a YYYY-MM-DD date argument.
func argDate(args map[string]interface{}, key string) (time.Time, bool) {
	s := argString(args, key)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// formatRupiah renders an amount with thousand separators, e.g. Rp 1.250.000.
func formatRupiah(amount float64) string {
	n := int64(amount)
	s := fmt.Sprintf("%d", n)
	if n < 0 {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := "Rp " + strings.Join(parts, ".")
	if n < 0 {
		out = "-" + out
	}
	return out
}
