// Package importer reads items from JSONL exports and HTML outlines.
package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/theokkk4/remindmap/pkg/remindmap/item"
)

// LoadJSONL loads items from a JSONL file, one item per line. Malformed
// or invalid lines are skipped with a warning. Items without an id get a
// fresh one and HTML in descriptions is reduced to text.
func LoadJSONL(path string) ([]item.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var items []item.Item
	lines := strings.Split(string(data), "\n")

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var it item.Item
		if err := json.Unmarshal([]byte(line), &it); err != nil {
			log.Warn().Err(err).Str("path", path).Int("line", i+1).Msg("Skipping malformed JSON")
			continue
		}

		if it.ID == "" {
			it.ID = item.NewID()
		}
		it.Title = collapseSpace(it.Title)
		it.Description = StripHTML(it.Description)
		priority, err := item.ParsePriority(string(it.Priority))
		if err == nil {
			it.Priority = priority
			err = it.Validate()
		}
		if err != nil {
			log.Warn().Err(err).Str("path", path).Int("line", i+1).Msg("Skipping invalid item")
			continue
		}

		items = append(items, it)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("no valid items found in %s", path)
	}

	return items, nil
}

// ParseHTML turns every <li> of an outline into an item. The title is the
// list entry's own text; nested lists become items of their own.
func ParseHTML(r io.Reader) ([]item.Item, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var items []item.Item
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Li {
			if title := collapseSpace(ownText(n)); title != "" {
				items = append(items, item.Item{ID: item.NewID(), Title: title})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if len(items) == 0 {
		return nil, fmt.Errorf("no list items found")
	}
	return items, nil
}

// ownText collects the text of n without descending into nested lists.
func ownText(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case c.Type == html.TextNode:
				buf.WriteString(c.Data)
				buf.WriteByte(' ')
			case c.Type == html.ElementNode && (c.DataAtom == atom.Ul || c.DataAtom == atom.Ol):
				continue
			default:
				extract(c)
			}
		}
	}
	extract(n)
	return buf.String()
}

// StripHTML reduces an HTML fragment to its text content.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return collapseSpace(s)
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		// Fallback to string if parsing fails
		return collapseSpace(s)
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)

	return collapseSpace(buf.String())
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
