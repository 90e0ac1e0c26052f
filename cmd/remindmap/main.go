package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/theokkk4/remindmap/internal/importer"
	"github.com/theokkk4/remindmap/pkg/remindmap"
	"github.com/theokkk4/remindmap/pkg/remindmap/config"
	"github.com/theokkk4/remindmap/pkg/remindmap/internalerr"
	"github.com/theokkk4/remindmap/pkg/remindmap/item"
	"github.com/theokkk4/remindmap/pkg/remindmap/store"
	"github.com/theokkk4/remindmap/pkg/remindmap/store/memstore"
	"github.com/theokkk4/remindmap/pkg/remindmap/store/sqlite"
)

type options struct {
	dbPath       string
	importPath   string
	importHTML   string
	seedDemo     bool
	deleteIDs    string
	itemID       string
	settingsPath string
	stoplistPath string
	taxonomyPath string
	mode         string
	title        string
	description  string
	priority     string
	limit        int
	asJSON       bool
}

var modes = []string{"clusters", "graph", "insights", "layout", "analyze", "themes"}

func main() {
	var opts options
	flag.StringVar(&opts.dbPath, "db", "", "SQLite database path (in-memory when empty)")
	flag.StringVar(&opts.importPath, "import", "", "JSONL file of items to import")
	flag.StringVar(&opts.importHTML, "import-html", "", "HTML outline to import, one item per <li>")
	flag.BoolVar(&opts.seedDemo, "seed-demo", false, "Seed the demo items into an empty store")
	flag.StringVar(&opts.settingsPath, "config", "", "Settings file (optional)")
	flag.StringVar(&opts.stoplistPath, "stoplist", "", "Stoplist file (optional)")
	flag.StringVar(&opts.taxonomyPath, "taxonomy", "", "Taxonomy file (optional)")
	flag.StringVar(&opts.deleteIDs, "delete", "", "Comma-separated item ids to remove before analysis")
	flag.StringVar(&opts.itemID, "item", "", "Analyze a stored item by id instead of -title (analyze mode)")
	flag.StringVar(&opts.mode, "mode", "insights", "One of: "+strings.Join(modes, ", "))
	flag.StringVar(&opts.title, "title", "", "Title of the new item (analyze mode)")
	flag.StringVar(&opts.description, "description", "", "Description of the new item (analyze mode)")
	flag.StringVar(&opts.priority, "priority", "", "Priority of the new item (analyze mode)")
	flag.IntVar(&opts.limit, "limit", 10, "Maximum entries for clusters and themes")
	flag.BoolVar(&opts.asJSON, "json", false, "Print JSON instead of text")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := run(context.Background(), opts, os.Stdout, time.Now); err != nil {
		log.Fatal().Err(err).Msg("remindmap failed")
	}
}

func run(ctx context.Context, opts options, out io.Writer, now func() time.Time) error {
	if err := validateOptions(opts); err != nil {
		return err
	}

	engine, st, cleanup, err := buildEngine(ctx, opts, now)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := importItems(ctx, st, opts, now()); err != nil {
		return err
	}
	if err := deleteItems(ctx, st, opts.deleteIDs); err != nil {
		return err
	}

	var target *item.Item
	if opts.itemID != "" {
		it, err := st.GetItem(ctx, opts.itemID)
		if errors.Is(err, internalerr.ErrNotFound) {
			return fmt.Errorf("no item %q in store", opts.itemID)
		}
		if err != nil {
			return fmt.Errorf("get item: %w", err)
		}
		target = &it
	}

	items, err := st.ListItems(ctx)
	if err != nil {
		return fmt.Errorf("list items: %w", err)
	}
	log.Debug().Int("items", len(items)).Str("mode", opts.mode).Msg("Running analysis")

	result, err := analyze(engine, items, opts, target)
	if err != nil {
		return err
	}
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	printResult(out, opts.mode, result)
	return nil
}

func validateOptions(opts options) error {
	known := false
	for _, m := range modes {
		if opts.mode == m {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown mode %q (want one of %s)", opts.mode, strings.Join(modes, ", "))
	}
	if opts.mode == "analyze" && strings.TrimSpace(opts.title) == "" && opts.itemID == "" {
		return fmt.Errorf("--title or --item required in analyze mode")
	}
	if _, err := item.ParsePriority(opts.priority); err != nil {
		return err
	}
	return nil
}

func buildEngine(ctx context.Context, opts options, now func() time.Time) (*remindmap.Engine, store.Store, func(), error) {
	loader := config.Loader{
		SettingsPath: opts.settingsPath,
		StoplistPath: opts.stoplistPath,
		TaxonomyPath: opts.taxonomyPath,
	}
	components, err := loader.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	engine, err := remindmap.New(remindmap.Options{
		Components: components,
		Now:        now,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	var st store.Store
	if opts.dbPath != "" {
		st, err = sqlite.OpenSQLite(ctx, opts.dbPath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open store: %w", err)
		}
	} else {
		st = memstore.New()
	}

	cleanup := func() {
		if err := st.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close store")
		}
	}
	return engine, st, cleanup, nil
}

func importItems(ctx context.Context, st store.Store, opts options, now time.Time) error {
	var incoming []item.Item

	if opts.importPath != "" {
		items, err := importer.LoadJSONL(opts.importPath)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}
		incoming = append(incoming, items...)
	}

	if opts.importHTML != "" {
		f, err := os.Open(opts.importHTML)
		if err != nil {
			return fmt.Errorf("open outline: %w", err)
		}
		items, err := importer.ParseHTML(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("import outline: %w", err)
		}
		incoming = append(incoming, items...)
	}

	for _, it := range incoming {
		if err := st.UpsertItem(ctx, it); err != nil {
			return fmt.Errorf("store item %s: %w", it.ID, err)
		}
	}
	if len(incoming) > 0 {
		log.Info().Int("count", len(incoming)).Msg("Imported items")
	}

	if opts.seedDemo {
		seeded, err := store.SeedDemo(ctx, st, now)
		if err != nil {
			return fmt.Errorf("seed demo: %w", err)
		}
		if seeded {
			log.Info().Msg("Seeded demo items")
		}
	}
	return nil
}

// deleteItems removes each listed id. Ids already gone are skipped with a warning.
func deleteItems(ctx context.Context, st store.Store, ids string) error {
	for _, id := range strings.Split(ids, ",") {
		if id = strings.TrimSpace(id); id == "" {
			continue
		}
		err := st.DeleteItem(ctx, id)
		if errors.Is(err, internalerr.ErrNotFound) {
			log.Warn().Str("id", id).Msg("Item to delete not found")
			continue
		}
		if err != nil {
			return fmt.Errorf("delete item %s: %w", id, err)
		}
		log.Info().Str("id", id).Msg("Deleted item")
	}
	return nil
}
