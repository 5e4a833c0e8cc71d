package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/scripture-standardizer/pkg/standardizer"
	"github.com/julianstephens/scripture-standardizer/tools/util"
)

// processOptions carries the per-file knobs down to the format adapters.
type processOptions struct {
	// Output is the destination path; empty means rewrite in place (for PDFs,
	// a sibling .txt).
	Output     string
	DryRun     bool
	FixSpacing bool
}

// fileResult summarizes one adapter run.
type fileResult struct {
	Stats  standardizer.Stats
	Output string
}

var adapters = map[string]func(*standardizer.Standardizer, string, processOptions) (fileResult, error){
	".docx": processDocxFile,
	".html": processHTMLFile,
	".htm":  processHTMLFile,
	".txt":  processTextFile,
	".pdf":  processPDFFile,
}

func (c *FileCmd) Run(stop chan bool) error {
	eng, err := newEngine(c.CSV)
	if err != nil {
		close(stop)
		return err
	}
	if c.Verbose {
		fmt.Printf("ℹ Loaded %d book aliases\n", eng.Table().Len())
	}

	info, err := os.Stat(c.Path)
	if err != nil {
		close(stop)
		return fmt.Errorf("path not found: %s", c.Path)
	}

	var files, skipped []string
	if info.IsDir() {
		files, skipped, err = collectSupported(c.Path)
		if err != nil {
			close(stop)
			return err
		}
		for _, name := range skipped {
			fmt.Printf("⚠ Skipping unsupported file: %s\n", name)
		}
		if len(files) == 0 {
			close(stop)
			fmt.Printf("ℹ No supported files found in %s\n", c.Path)
			return nil
		}
	} else {
		if _, ok := adapters[strings.ToLower(filepath.Ext(c.Path))]; !ok {
			close(stop)
			return fmt.Errorf("unsupported file type: %s", filepath.Ext(c.Path))
		}
		files = []string{c.Path}
	}

	go util.Spinner("Processing", stop)
	type outcome struct {
		path   string
		backup string
		result fileResult
		err    error
	}
	outcomes := make([]outcome, 0, len(files))
	for _, path := range files {
		o := outcome{path: path}
		if !c.NoBackup && !c.DryRun {
			o.backup, o.err = createBackup(path)
		}
		if o.err == nil {
			o.result, o.err = processOne(eng, path, c, info.IsDir())
		}
		outcomes = append(outcomes, o)
	}
	close(stop)

	failed := 0
	for _, o := range outcomes {
		if o.err != nil {
			failed++
			fmt.Printf("✗ %s: %v\n", o.path, o.err)
			continue
		}
		fmt.Printf("✓ %s processed successfully\n", o.path)
		if o.backup != "" && c.Verbose {
			fmt.Printf("  ℹ Backup created: %s\n", o.backup)
		}
		stats := o.result.Stats
		if stats.Changed > 0 {
			fmt.Printf("  ✓ Standardized references in %d of %d fragments\n", stats.Changed, stats.Processed)
			switch {
			case c.DryRun:
				fmt.Println("  ℹ Dry run: no files were written")
			case o.result.Output != o.path:
				fmt.Printf("  ✓ Output saved to %s\n", o.result.Output)
			default:
				fmt.Println("  ✓ Original file updated")
			}
		} else {
			fmt.Println("  ℹ No Bible references found to standardize")
		}
	}
	printUnmatched(eng)

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, len(files))
	}
	return nil
}

// processOne resolves the output path for a single file and dispatches on
// extension. For directory input, --output names a directory to mirror into.
func processOne(eng *standardizer.Standardizer, path string, c *FileCmd, batch bool) (fileResult, error) {
	opts := processOptions{DryRun: c.DryRun, FixSpacing: c.FixSpacing}
	switch {
	case c.Output == "":
	case batch:
		if err := os.MkdirAll(c.Output, 0o755); err != nil {
			return fileResult{}, err
		}
		opts.Output = filepath.Join(c.Output, filepath.Base(path))
	default:
		opts.Output = c.Output
	}

	adapter := adapters[strings.ToLower(filepath.Ext(path))]
	return adapter(eng, path, opts)
}

func collectSupported(dir string) (files, skipped []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := adapters[strings.ToLower(filepath.Ext(entry.Name()))]; ok {
			files = append(files, filepath.Join(dir, entry.Name()))
		} else {
			skipped = append(skipped, entry.Name())
		}
	}
	sort.Strings(files)
	sort.Strings(skipped)
	return files, skipped, nil
}

// createBackup copies the file to a timestamped sibling before it is touched.
func createBackup(path string) (string, error) {
	ext := filepath.Ext(path)
	backupPath := strings.TrimSuffix(path, ext) + "_backup_" + time.Now().Format("20060102_150405") + ext

	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("backup failed: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(backupPath)
	if err != nil {
		return "", fmt.Errorf("backup failed: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("backup failed: %w", err)
	}
	return backupPath, nil
}
