package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// MainCSV scrapes a book-abbreviations reference page into the alias CSV
// format: one row per book, the canonical name in the first table cell and the
// comma-separated abbreviations in the second. Header rows and rows without an
// abbreviation cell are skipped.
func MainCSV(in, out string) error {
	if in == "" {
		return fmt.Errorf("missing -in: path to the saved abbreviations HTML page")
	}

	f, err := os.Open(in) // nolint: gosec
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", in, err)
	}

	rows := tableRows(doc)
	if len(rows) == 0 {
		return fmt.Errorf("no table rows found in %s", in)
	}

	w := os.Stdout
	if out != "" {
		w, err = os.Create(out)
		if err != nil {
			return err
		}
		defer w.Close()
	}

	writer := csv.NewWriter(w)
	var written int
	for _, cells := range rows {
		if len(cells) < 2 {
			continue
		}
		name := strings.TrimSpace(cells[0])
		aliases := strings.TrimSpace(cells[1])
		if name == "" || aliases == "" || isHeaderRow(name) {
			continue
		}
		if err := writer.Write([]string{name, aliases}); err != nil {
			return err
		}
		written++
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Extracted %d book rows\n", written)
	return nil
}

func isHeaderRow(name string) bool {
	switch strings.ToLower(name) {
	case "name", "book", "book name":
		return true
	}
	return false
}

// tableRows flattens every <tr> in the document to its cell texts.
func tableRows(doc *html.Node) [][]string {
	var rows [][]string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var cells []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					cells = append(cells, nodeText(c))
				}
			}
			rows = append(rows, cells)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return rows
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
