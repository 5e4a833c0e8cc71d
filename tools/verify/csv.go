package main

import (
	"fmt"
	"strings"

	"github.com/julianstephens/scripture-standardizer/pkg/standardizer"
)

func loadRows(path string) ([]standardizer.AliasRow, error) {
	if path == "" {
		return standardizer.DefaultRows()
	}
	return standardizer.LoadRows(path)
}

// Run validates an alias CSV row by row: every row must expand to a usable
// canonical name, no spelling may claim two different books, and no spelling
// may shadow another book's canonical name. The engine resolves such clashes
// last-write-wins, so a conflicting source silently misattributes references.
func (c *CsvCmd) Run(stop chan bool) error {
	rows, err := loadRows(c.CSV)
	if err != nil {
		return err
	}
	fmt.Printf("Found %d rows\n", len(rows))

	claimedBy := make(map[string]string)
	canonical := make(map[string]string)

	var totalErrors int
	var skipped int
	for i, row := range rows {
		name, spellings, ok := standardizer.ExpandRow(row)
		if !ok {
			fmt.Printf("Row %d skipped: no usable book name (%q)\n", i+1, row.Name)
			skipped++
			continue
		}
		if strings.TrimSpace(row.Aliases) == "" {
			fmt.Printf("Row %d (%s): no aliases listed\n", i+1, name)
			totalErrors++
		}
		canonical[strings.ToLower(name)] = name

		for _, s := range spellings {
			key := strings.ToLower(s)
			if prev, taken := claimedBy[key]; taken && prev != name {
				fmt.Printf("Conflict: spelling %q claimed by both %s and %s\n", s, prev, name)
				totalErrors++
				continue
			}
			claimedBy[key] = name
		}
	}

	// A spelling equal to another book's canonical name wins every lookup for
	// that name, which is always a data error.
	for key, owner := range claimedBy {
		if book, isCanonical := canonical[key]; isCanonical && book != owner {
			fmt.Printf("Shadowing: %s lists %q, the canonical name of %s\n", owner, key, book)
			totalErrors++
		}
	}

	close(stop)

	fmt.Println("========================================")
	fmt.Printf("Total Rows Validated: %d\n", len(rows)-skipped)
	fmt.Printf("Rows Skipped: %d\n", skipped)
	fmt.Printf("Total Errors Found: %d\n", totalErrors)
	fmt.Println("========================================")

	if totalErrors > 0 {
		return fmt.Errorf("validation completed with errors. Please review the output above for details")
	}
	fmt.Println("Validation completed successfully with no errors")

	return nil
}
