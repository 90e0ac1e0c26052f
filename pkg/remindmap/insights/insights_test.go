package insights

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theokkk4/remindmap/pkg/remindmap/analytics"
	"github.com/theokkk4/remindmap/pkg/remindmap/item"
)

var now = time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)

func newTestGenerator() *Generator {
	return NewGenerator(nil, nil, DefaultOptions())
}

func findKind(suggestions []Suggestion, kind Kind) (Suggestion, bool) {
	for _, s := range suggestions {
		if s.Kind == kind {
			return s, true
		}
	}
	return Suggestion{}, false
}

func TestAnalyzeNewItemPriority(t *testing.T) {
	tests := []struct {
		name       string
		it         item.Item
		want       bool
		confidence float64
		message    string
	}{
		{
			name:       "asap on medium",
			it:         item.Item{Title: "Send slides ASAP", Priority: item.PriorityMedium},
			want:       true,
			confidence: 0.8,
			message:    "This might be urgent based on your wording",
		},
		{
			name: "already urgent",
			it:   item.Item{Title: "Send slides ASAP", Priority: item.PriorityUrgent},
		},
		{
			name:       "high wording on low",
			it:         item.Item{Title: "Tax filing", Description: "important", Priority: item.PriorityLow},
			want:       true,
			confidence: 0.6,
			message:    "Consider setting this to high priority",
		},
		{
			name: "high wording on medium",
			it:   item.Item{Title: "Tax filing", Description: "important", Priority: item.PriorityMedium},
		},
		{
			name: "urgent wording short-circuits high check",
			it:   item.Item{Title: "Deadline today", Priority: item.PriorityUrgent},
		},
	}

	g := newTestGenerator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := findKind(g.AnalyzeNewItem(tt.it, nil), KindPriority)
			require.Equal(t, tt.want, ok)
			if !tt.want {
				return
			}
			assert.InDelta(t, tt.confidence, got.Confidence, 1e-9)
			assert.Equal(t, tt.message, got.Message)
		})
	}
}

func TestAnalyzeNewItemCluster(t *testing.T) {
	g := newTestGenerator()

	got, ok := findKind(g.AnalyzeNewItem(item.Item{Title: "Team meeting with client"}, nil), KindCluster)
	require.True(t, ok)
	assert.Equal(t, "This looks like a work item (100% confident)", got.Message)
	assert.InDelta(t, 1.0, got.Confidence, 1e-9)

	_, ok = findKind(g.AnalyzeNewItem(item.Item{Title: "Team meeting with client", Color: item.DefaultColor}, nil), KindCluster)
	assert.True(t, ok)

	_, ok = findKind(g.AnalyzeNewItem(item.Item{Title: "Team meeting with client", Color: "#ff0000"}, nil), KindCluster)
	assert.False(t, ok)

	// A single partial hit scores 0.2, below the hint floor.
	_, ok = findKind(g.AnalyzeNewItem(item.Item{Title: "present"}, nil), KindCluster)
	assert.False(t, ok)
}

func TestAnalyzeNewItemConnection(t *testing.T) {
	g := newTestGenerator()
	existing := []item.Item{
		{ID: "a", Title: "Client meeting"},
		{ID: "b", Title: "Buy groceries"},
	}

	got, ok := findKind(g.AnalyzeNewItem(item.Item{ID: "n", Title: "Team meeting"}, existing), KindConnection)
	require.True(t, ok)
	assert.Equal(t, "Found 1 related item in your map", got.Message)
	assert.InDelta(t, 1.0/3.0, got.Confidence, 1e-9)

	existing = append(existing, item.Item{ID: "c", Title: "Team offsite"})
	got, ok = findKind(g.AnalyzeNewItem(item.Item{ID: "n", Title: "Team meeting"}, existing), KindConnection)
	require.True(t, ok)
	assert.Equal(t, "Found 2 related items in your map", got.Message)

	_, ok = findKind(g.AnalyzeNewItem(item.Item{ID: "n", Title: "Water plants"}, existing), KindConnection)
	assert.False(t, ok)
}

func TestAnalyzeNewItemSortedByConfidence(t *testing.T) {
	g := newTestGenerator()
	existing := []item.Item{{ID: "a", Title: "Team meeting notes"}}

	got := g.AnalyzeNewItem(item.Item{ID: "n", Title: "Team meeting today", Priority: item.PriorityMedium}, existing)
	require.Len(t, got, 3)
	assert.Equal(t, []Kind{KindCluster, KindPriority, KindConnection}, []Kind{got[0].Kind, got[1].Kind, got[2].Kind})
	assert.InDelta(t, 0.5, got[2].Confidence, 1e-9)
}

func TestAnalyzeNewItemEmpty(t *testing.T) {
	got := newTestGenerator().AnalyzeNewItem(item.Item{}, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMapInsightsEmpty(t *testing.T) {
	got := newTestGenerator().MapInsights(nil, now)
	assert.Equal(t, []string{"Your mind map is empty. Add your first thought!"}, got)
}

func TestMapInsightsUrgentCount(t *testing.T) {
	items := make([]item.Item, 4)
	for i := range items {
		items[i] = item.Item{ID: fmt.Sprint(i), Title: "Fix outage", Priority: item.PriorityUrgent}
	}

	got := newTestGenerator().MapInsights(items, now)
	assert.Contains(t, got, "⚠️ You have 4 urgent items - consider focusing on these first")

	got = newTestGenerator().MapInsights(items[:3], now)
	assert.Empty(t, got)
}

func TestMapInsightsOrderAndCap(t *testing.T) {
	past := now.Add(-time.Hour)
	var items []item.Item
	for i := 0; i < 4; i++ {
		items = append(items, item.Item{ID: fmt.Sprintf("u%d", i), Title: "Outage", Priority: item.PriorityUrgent})
	}
	for i := 0; i < 6; i++ {
		items = append(items, item.Item{ID: fmt.Sprintf("h%d", i), Title: "Launch", Priority: item.PriorityHigh})
	}
	items = append(items,
		item.Item{ID: "o", Title: "Renew passport", DueDate: &past},
		item.Item{ID: "d", Title: "Done already", Completed: true},
	)

	got := newTestGenerator().MapInsights(items, now)
	assert.Equal(t, []string{
		"⚠️ You have 4 urgent items - consider focusing on these first",
		"📌 6 high-priority items might benefit from breaking down into smaller tasks",
		"🕐 1 item past due date",
	}, got)
}

func TestMapInsightsOverdueAndCompletion(t *testing.T) {
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	items := []item.Item{
		{ID: "1", Title: "Renew passport", DueDate: &past},
		{ID: "2", Title: "Book flights", DueDate: &past},
		{ID: "3", Title: "Pay rent", DueDate: &past, Completed: true},
		{ID: "4", Title: "Plan trip", DueDate: &future},
	}

	got := newTestGenerator().MapInsights(items, now)
	assert.Equal(t, []string{
		"🕐 2 items past due date",
		"✅ 25% completion rate - keep it up!",
	}, got)
}

func TestMapInsightsConceptDiversity(t *testing.T) {
	items := []item.Item{
		{ID: "1", Title: "alpha bravo charlie delta echo foxtrot golf hotel"},
		{ID: "2", Title: "india juliet kilo lima mike november oscar papa"},
		{ID: "3", Title: "quebec romeo sierra tango uniform victor whiskey xray"},
	}

	got := newTestGenerator().MapInsights(items, now)
	assert.Equal(t, []string{"🧠 Your map spans 24 different concepts - you're thinking big!"}, got)

	got = newTestGenerator().MapInsights(items[:2], now)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSuggestLayout(t *testing.T) {
	g := newTestGenerator()

	var clustered []item.Item
	for i := 0; i < 9; i++ {
		clustered = append(clustered, item.Item{ID: fmt.Sprint(i), Title: "Team meeting"})
	}
	assert.Equal(t, LayoutRadial, g.SuggestLayout(clustered))
	assert.Equal(t, LayoutForce, g.SuggestLayout(clustered[:8]))

	titles := []string{"Team meeting", "Pay bill", "Debug code", "Dinner party", "Sketch idea"}
	priorities := []item.Priority{item.PriorityLow, item.PriorityHigh, item.PriorityUrgent}
	var spread []item.Item
	for i := 0; i < 11; i++ {
		spread = append(spread, item.Item{
			ID:       fmt.Sprint(i),
			Title:    titles[i%len(titles)],
			Priority: priorities[i%len(priorities)],
		})
	}
	assert.Equal(t, LayoutHierarchical, g.SuggestLayout(spread))
	assert.Equal(t, LayoutForce, g.SuggestLayout(spread[:10]))
	assert.Equal(t, LayoutForce, g.SuggestLayout(nil))
}

func TestTopClusters(t *testing.T) {
	items := []item.Item{
		{ID: "1", Title: "Debug code"},
		{ID: "2", Title: "Pay bill"},
		{ID: "3", Title: "Team meeting"},
		{ID: "4", Title: "Deploy build"},
		{ID: "5", Title: "zzz"},
	}

	got := newTestGenerator().TopClusters(items, 3)
	assert.Equal(t, []analytics.ClusterCount{
		{Cluster: "tech", Count: 2},
		{Cluster: "work", Count: 1},
		{Cluster: "finance", Count: 1},
	}, got)
}
