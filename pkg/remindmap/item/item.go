// Package item defines the user-authored record the engine reads.
//
// Items are owned by the caller. Nothing in remindmap mutates or retains
// them beyond a single call.
package item

import (
	"crypto/rand"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/theokkk4/remindmap/pkg/remindmap/internalerr"
)

// DefaultColor is the accent color an item carries until the user picks one.
const DefaultColor = "#3b82f6"

// Priority is the user-assigned urgency. The zero value means unset.
type Priority string

const (
	PriorityUnset  Priority = ""
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ParsePriority converts user input into a Priority. The empty string maps
// to PriorityUnset.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case PriorityUnset, PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return p, nil
	default:
		return PriorityUnset, fmt.Errorf("%w: unknown priority %q", internalerr.ErrInvalidInput, s)
	}
}

// Item is a single node of the mind map.
type Item struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Color       string     `json:"color,omitempty"`
	Completed   bool       `json:"completed,omitempty"`
}

// Text joins title and description the way every analysis step sees them.
func (it Item) Text() string {
	return it.Title + " " + it.Description
}

// Overdue reports whether the item has a due date before now and is still open.
func (it Item) Overdue(now time.Time) bool {
	return it.DueDate != nil && it.DueDate.Before(now) && !it.Completed
}

// HasCustomColor reports whether the user changed the color away from the default accent.
func (it Item) HasCustomColor() bool {
	return it.Color != "" && it.Color != DefaultColor
}

// Validate checks the fields a stored item must carry.
func (it Item) Validate() error {
	if strings.TrimSpace(it.ID) == "" {
		return fmt.Errorf("%w: item id is required", internalerr.ErrInvalidInput)
	}
	if strings.TrimSpace(it.Title) == "" {
		return fmt.Errorf("%w: item %q has an empty title", internalerr.ErrInvalidInput, it.ID)
	}
	if _, err := ParsePriority(string(it.Priority)); err != nil {
		return err
	}
	return nil
}

// ValidateUnique rejects collections with empty or repeated ids. Edge
// deduplication keys on ids, so duplicates would silently merge nodes.
func ValidateUnique(items []Item) error {
	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		if it.ID == "" {
			return fmt.Errorf("%w: item at index %d has no id", internalerr.ErrInvalidInput, i)
		}
		if _, ok := seen[it.ID]; ok {
			return fmt.Errorf("%w: duplicate item id %q", internalerr.ErrInvalidInput, it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return nil
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewID returns a fresh, lexically sortable item id.
func NewID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Now(), entropy).String()
}
