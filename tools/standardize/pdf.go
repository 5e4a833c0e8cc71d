package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/julianstephens/scripture-standardizer/pkg/standardizer"
	"github.com/julianstephens/scripture-standardizer/pkg/textclean"
)

// processPDFFile extracts a PDF's text with pdftotext, standardizes it
// paragraph by paragraph, and writes the result as plain text. PDFs are never
// rewritten in place; the default output is a sibling .txt.
func processPDFFile(eng *standardizer.Standardizer, path string, opts processOptions) (fileResult, error) {
	pdftotext, err := exec.LookPath("pdftotext")
	if err != nil {
		return fileResult{}, fmt.Errorf("pdftotext not found on PATH (install poppler-utils): %w", err)
	}

	var out, stderr bytes.Buffer
	cmd := exec.Command(pdftotext, "-layout", path, "-")
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fileResult{}, fmt.Errorf("pdftotext failed: %v: %s", err, strings.TrimSpace(stderr.String()))
	}

	res := fileResult{Output: strings.TrimSuffix(path, filepath.Ext(path)) + ".txt"}
	if opts.Output != "" {
		res.Output = opts.Output
		// Batch output mirrors the source name; the result is text either way.
		if strings.EqualFold(filepath.Ext(res.Output), ".pdf") {
			res.Output = strings.TrimSuffix(res.Output, filepath.Ext(res.Output)) + ".txt"
		}
	}

	paragraphs := strings.Split(out.String(), "\n\n")
	kept := paragraphs[:0]
	for _, para := range paragraphs {
		// Extraction hard-wraps lines mid-sentence; refold each paragraph
		// before matching so references split across lines are seen whole.
		para = strings.Join(strings.Fields(para), " ")
		if para == "" {
			continue
		}
		if opts.FixSpacing {
			para = textclean.Clean(para)
		}
		newPara, changed := eng.Process(para)
		res.Stats.Processed++
		if changed {
			res.Stats.Changed++
		}
		kept = append(kept, newPara)
	}

	if opts.DryRun {
		return res, nil
	}
	text := strings.Join(kept, "\n\n") + "\n"
	if err := os.WriteFile(res.Output, []byte(text), 0o644); err != nil {
		return fileResult{}, err
	}
	return res, nil
}
