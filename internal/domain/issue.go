package domain

import "time"

// Issue is an immutable snapshot of a tracked work item as fetched from the
// external tracker. A later poll of the same number yields a fresh snapshot;
// open -> closed transitions are expected between polls.
type Issue struct {
	Number        int64
	Title         string
	Body          string // may be empty
	State         string // "open" or "closed"
	Labels        []string
	Author        string
	Assignees     []string
	CreatedAt     time.Time
	ClosedAt      time.Time // zero unless State == "closed"
	ReactionCount int
	CommentCount  int
}

func (i Issue) IsClosed() bool {
	return i.State == "closed"
}

// ResolutionDays is the whole-day distance between creation and close.
// Returns 0, false for issues that are not closed.
func (i Issue) ResolutionDays() (int, bool) {
	if !i.IsClosed() || i.ClosedAt.IsZero() {
		return 0, false
	}
	days := int(i.ClosedAt.Sub(i.CreatedAt).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days, true
}

func (i Issue) HasLabel(name string) bool {
	for _, l := range i.Labels {
		if l == name {
			return true
		}
	}
	return false
}
