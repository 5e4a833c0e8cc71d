package main

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/julianstephens/scripture-standardizer/pkg/standardizer"
)

const wordDocumentEntry = "word/document.xml"

// processDocxFile standardizes the run text of a Word document. Only text
// inside w:t elements is rewritten; styling, tables, and the rest of the
// package survive untouched. Word splits a paragraph into runs at arbitrary
// points, so runs within one w:p are joined before matching and a changed
// paragraph is written back as a single run of its first w:t.
func processDocxFile(eng *standardizer.Standardizer, path string, opts processOptions) (fileResult, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return fileResult{}, err
	}
	defer zr.Close()

	content, err := readZipEntry(&zr.Reader, wordDocumentEntry)
	if err != nil {
		return fileResult{}, err
	}

	doc, err := xmlquery.Parse(bytes.NewReader(content))
	if err != nil {
		return fileResult{}, fmt.Errorf("malformed document.xml: %w", err)
	}

	res := fileResult{Output: path}
	if opts.Output != "" {
		res.Output = opts.Output
	}

	paragraphs, err := xmlquery.QueryAll(doc, "//w:p")
	if err != nil {
		return fileResult{}, err
	}
	for _, p := range paragraphs {
		texts, err := xmlquery.QueryAll(p, ".//w:t")
		if err != nil {
			return fileResult{}, err
		}
		if len(texts) == 0 {
			continue
		}

		parts := make([]string, len(texts))
		for i, t := range texts {
			parts[i] = t.InnerText()
		}
		joined := strings.Join(parts, "")

		res.Stats.Processed++
		newText, changed := eng.Process(joined)
		if !changed {
			continue
		}
		res.Stats.Changed++

		setNodeText(texts[0], newText)
		for _, t := range texts[1:] {
			setNodeText(t, "")
		}
	}

	if res.Stats.Changed == 0 || opts.DryRun {
		return res, nil
	}
	if err := writeDocx(&zr.Reader, res.Output, []byte(doc.OutputXML(false))); err != nil {
		return fileResult{}, err
	}
	return res, nil
}

func setNodeText(n *xmlquery.Node, text string) {
	if n.FirstChild != nil && n.FirstChild.Type == xmlquery.TextNode {
		n.FirstChild.Data = text
		n.FirstChild.NextSibling = nil
		n.LastChild = n.FirstChild
		return
	}
	child := &xmlquery.Node{Type: xmlquery.TextNode, Data: text, Parent: n}
	n.FirstChild = child
	n.LastChild = child
}

func readZipEntry(zr *zip.Reader, name string) ([]byte, error) {
	for _, entry := range zr.File {
		if entry.Name != name {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("not a Word document: missing %s", name)
}

// writeDocx rebuilds the package with the rewritten document part, copying
// every other entry byte for byte. The archive is assembled in a temp file and
// renamed into place so a failure mid-write cannot truncate the target.
func writeDocx(zr *zip.Reader, outPath string, document []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(outPath), ".standardize-*.docx")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	zw := zip.NewWriter(tmp)
	for _, entry := range zr.File {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     entry.Name,
			Method:   entry.Method,
			Modified: entry.Modified,
		})
		if err != nil {
			return err
		}
		if entry.Name == wordDocumentEntry {
			if _, err := w.Write(document); err != nil {
				return err
			}
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return err
		}
		if _, err := io.Copy(w, rc); err != nil {
			rc.Close()
			return err
		}
		rc.Close()
	}
	if err := zw.Close(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), outPath)
}
