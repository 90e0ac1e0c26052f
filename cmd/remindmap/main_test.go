package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func runOpts(t *testing.T, opts options) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, run(context.Background(), opts, &buf, clock))
	return buf.String()
}

func TestValidateOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    options
		wantErr bool
	}{
		{"insights", options{mode: "insights"}, false},
		{"unknown mode", options{mode: "mindmeld"}, true},
		{"analyze without title", options{mode: "analyze"}, true},
		{"analyze with title", options{mode: "analyze", title: "Call mom"}, false},
		{"analyze stored item", options{mode: "analyze", itemID: "2"}, false},
		{"bad priority", options{mode: "analyze", title: "x", priority: "critical"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateOptions(tt.opts)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRunGraphJSON(t *testing.T) {
	out := runOpts(t, options{mode: "graph", seedDemo: true, asJSON: true})

	var got graphReport
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	for _, e := range got.Edges {
		assert.NotEqual(t, e.Source, e.Target)
	}
	require.Len(t, got.PriorityLinks, 1)
	assert.Equal(t, "1", got.PriorityLinks[0].Source)
	assert.Equal(t, "5", got.PriorityLinks[0].Target)
}

func TestRunInsightsText(t *testing.T) {
	out := runOpts(t, options{mode: "insights"})
	assert.Equal(t, "Your mind map is empty. Add your first thought!\n", out)

	out = runOpts(t, options{mode: "insights", seedDemo: true})
	assert.Contains(t, out, "21 different concepts")
}

func TestRunAnalyze(t *testing.T) {
	out := runOpts(t, options{
		mode:     "analyze",
		seedDemo: true,
		title:    "Prepare client presentation tomorrow",
		priority: "medium",
	})
	assert.Contains(t, out, "Suggested color: #3b82f6")
	assert.Contains(t, out, "Detected due date: "+fixedNow.AddDate(0, 0, 1).Format(time.RFC1123))
	assert.Contains(t, out, "[cluster")
}

func TestRunAnalyzeStoredItem(t *testing.T) {
	out := runOpts(t, options{mode: "analyze", seedDemo: true, itemID: "2"})
	assert.Contains(t, out, `Item 2: "Team meeting prep"`)

	var buf bytes.Buffer
	err := run(context.Background(), options{mode: "analyze", seedDemo: true, itemID: "42"}, &buf, clock)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no item "42"`)
}

func TestRunDeleteItems(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "map.db")
	opts := options{mode: "clusters", dbPath: dbPath, seedDemo: true, asJSON: true}
	runOpts(t, opts)

	// Unknown ids are skipped; the rest are removed from the store.
	opts.seedDemo = false
	opts.deleteIDs = "5, missing,"
	out := runOpts(t, opts)

	var got clustersReport
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Clusters, 4)
	for _, c := range got.Clusters {
		assert.NotEqual(t, "5", c.ItemID)
	}

	out = runOpts(t, options{mode: "graph", dbPath: dbPath, asJSON: true})
	var g graphReport
	require.NoError(t, json.Unmarshal([]byte(out), &g))
	assert.Empty(t, g.PriorityLinks)
}

func TestRunClustersWithSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "map.db")
	opts := options{mode: "clusters", dbPath: dbPath, seedDemo: true, asJSON: true, limit: 2}

	runOpts(t, opts)
	// A second seed leaves the populated store alone.
	out := runOpts(t, opts)

	var got clustersReport
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got.Clusters, 5)
	assert.LessOrEqual(t, len(got.Top), 2)
}

func TestRunImportJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.jsonl")
	data := `{"id":"a","title":"Team meeting"}
{"id":"b","title":"Client meeting"}
not json
{"id":"c","title":"Go for a run"}
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	out := runOpts(t, options{mode: "graph", importPath: path, asJSON: true})

	var got graphReport
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Edges, 1)
	assert.Equal(t, "a", got.Edges[0].Source)
	assert.Equal(t, "b", got.Edges[0].Target)
}

func TestRunImportHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outline.html")
	data := `<ul><li>Budget review</li><li>Pay the tax bill</li></ul>`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	out := runOpts(t, options{mode: "layout", importHTML: path})
	assert.Equal(t, "Suggested layout: force\n", out)
}

func TestBuildEngineMissingStoplist(t *testing.T) {
	opts := options{mode: "insights", stoplistPath: filepath.Join(t.TempDir(), "missing.yaml")}
	_, _, _, err := buildEngine(context.Background(), opts, clock)
	assert.Error(t, err)
}

func TestBuildEngineWithConfigFiles(t *testing.T) {
	opts := options{
		mode:         "insights",
		settingsPath: "../../configs/settings.yaml",
		stoplistPath: "../../configs/stoplist.yaml",
		taxonomyPath: "../../configs/taxonomy.yaml",
	}
	engine, st, cleanup, err := buildEngine(context.Background(), opts, clock)
	require.NoError(t, err)
	defer cleanup()

	assert.NotNil(t, st)
	assert.Len(t, engine.Taxonomy(), 8)
}
