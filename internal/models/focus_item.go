package models

import (
	"strings"
	"unicode/utf8"
)

// MaxActive is the number of items that may be Active at the same time.
const MaxActive = 3

type Status string

const (
	StatusBacklog  Status = "Backlog"
	StatusActive   Status = "Active"
	StatusDone     Status = "Done"
	StatusArchived Status = "Archived"
)

var statuses = []Status{
	StatusBacklog,
	StatusActive,
	StatusDone,
	StatusArchived,
}

// Statuses returns the allowed statuses in lifecycle order.
func Statuses() []Status {
	out := make([]Status, len(statuses))
	copy(out, statuses)
	return out
}

// ParseStatus matches s against the allowed statuses ignoring ASCII case
// and returns the canonical value. Surrounding whitespace and non-ASCII
// input never match.
func ParseStatus(s string) (Status, bool) {
	if s == "" || !isASCII(s) {
		return "", false
	}
	for _, status := range statuses {
		if strings.EqualFold(s, string(status)) {
			return status, true
		}
	}
	return "", false
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func (s Status) String() string {
	return string(s)
}

type FocusItem struct {
	ID     int64
	Title  string
	Area   string
	Status Status
}
