package store

import (
	"context"
	"time"

	"github.com/theokkk4/remindmap/pkg/remindmap/item"
)

// Store is a source of item snapshots. It persists items only; clusters,
// edges and insights are always recomputed from ListItems.
type Store interface {
	Close() error

	// UpsertItem inserts or replaces an item by id. A replaced item keeps
	// its original position in ListItems.
	UpsertItem(ctx context.Context, it item.Item) error
	// GetItem returns internalerr.ErrNotFound for unknown ids.
	GetItem(ctx context.Context, id string) (item.Item, error)
	// ListItems returns every item in insertion order.
	ListItems(ctx context.Context) ([]item.Item, error)
	// DeleteItem returns internalerr.ErrNotFound for unknown ids.
	DeleteItem(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// DemoItems returns the starter map shown to new users. Due dates are
// relative to now.
func DemoItems(now time.Time) []item.Item {
	day := 24 * time.Hour
	due := func(d time.Duration) *time.Time {
		t := now.Add(d)
		return &t
	}

	return []item.Item{
		{ID: "1", Title: "Complete project proposal", Description: "Draft and submit Q1 proposal",
			Priority: item.PriorityHigh, Color: "#ef4444", DueDate: due(2 * day)},
		{ID: "2", Title: "Team meeting prep", Description: "Prepare slides and agenda",
			Priority: item.PriorityMedium, Color: "#f59e0b", DueDate: due(day)},
		{ID: "3", Title: "Review PR #245",
			Priority: item.PriorityMedium, Color: "#3b82f6"},
		{ID: "4", Title: "Update documentation",
			Priority: item.PriorityLow, Color: "#06b6d4"},
		{ID: "5", Title: "Client call follow-up", Description: "Send summary email",
			Priority: item.PriorityHigh, Color: "#8b5cf6", DueDate: due(3 * day)},
	}
}

// SeedDemo writes the demo items into st if it is empty. It reports
// whether anything was written.
func SeedDemo(ctx context.Context, st Store, now time.Time) (bool, error) {
	n, err := st.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	for _, it := range DemoItems(now) {
		if err := st.UpsertItem(ctx, it); err != nil {
			return false, err
		}
	}
	return true, nil
}
