package main

import (
	"os"
	"strings"

	"github.com/julianstephens/scripture-standardizer/pkg/standardizer"
	"github.com/julianstephens/scripture-standardizer/pkg/textclean"
)

// processTextFile standardizes a plain-text file line by line. Line endings
// are preserved; the file is only rewritten when at least one line changed.
func processTextFile(eng *standardizer.Standardizer, path string, opts processOptions) (fileResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileResult{}, err
	}

	res := fileResult{Output: path}
	if opts.Output != "" {
		res.Output = opts.Output
	}

	lines := strings.SplitAfter(string(data), "\n")
	for i, line := range lines {
		body, eol := splitEOL(line)
		working := body
		if opts.FixSpacing {
			if cleaned := textclean.Clean(working); cleaned != "" {
				working = cleaned
			}
		}
		newBody, _ := eng.Process(working)
		res.Stats.Processed++
		if newBody != body {
			res.Stats.Changed++
		}
		lines[i] = newBody + eol
	}

	if res.Stats.Changed == 0 || opts.DryRun {
		return res, nil
	}
	if err := os.WriteFile(res.Output, []byte(strings.Join(lines, "")), 0o644); err != nil {
		return fileResult{}, err
	}
	return res, nil
}

func splitEOL(line string) (body, eol string) {
	body = strings.TrimSuffix(line, "\n")
	if body != line {
		eol = "\n"
		if trimmed := strings.TrimSuffix(body, "\r"); trimmed != body {
			body = trimmed
			eol = "\r\n"
		}
	}
	return body, eol
}
