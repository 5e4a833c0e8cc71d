package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/julianstephens/scripture-standardizer/pkg/standardizer"
)

type BookInfo struct {
	OSIS    string   `json:"osis"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
	Order   int      `json:"order"`
}

type Output struct {
	Schema int        `json:"schema"`
	Work   string     `json:"work"`
	Books  []BookInfo `json:"books"`
}

// MainJSON exports an alias CSV (the embedded one when -in is omitted) as a
// JSON book index for downstream tooling. Order follows the source row order,
// which is canonical book order.
func MainJSON(in, out string) error {
	var rows []standardizer.AliasRow
	var err error
	if in == "" {
		rows, err = standardizer.DefaultRows()
	} else {
		rows, err = standardizer.LoadRows(in)
	}
	if err != nil {
		return err
	}

	output := Output{
		Schema: 1,
		Work:   "scripture-standardizer aliases",
		Books:  []BookInfo{},
	}
	for _, row := range rows {
		name, spellings, ok := standardizer.ExpandRow(row)
		if !ok {
			fmt.Fprintf(os.Stderr, "Warning: skipping row with no usable name (%q)\n", row.Name)
			continue
		}

		osis, ok := standardizer.OSISForBook(name)
		if !ok {
			fmt.Fprintf(os.Stderr, "Warning: no OSIS id for %s\n", name)
		}

		// Spellings minus the canonical name itself, duplicates removed.
		aliases := make([]string, 0, len(spellings))
		seen := map[string]bool{name: true}
		for _, s := range spellings {
			if !seen[s] {
				aliases = append(aliases, s)
				seen[s] = true
			}
		}

		output.Books = append(output.Books, BookInfo{
			OSIS:    osis,
			Name:    name,
			Aliases: aliases,
			Order:   len(output.Books) + 1,
		})
	}

	jsonData, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return err
	}

	if out == "" {
		fmt.Println(string(jsonData))
		return nil
	}
	if err := os.WriteFile(out, jsonData, 0600); err != nil {
		return err
	}

	fmt.Printf("Successfully created %s\n", out)
	return nil
}
