package main

import (
	"bytes"
	"os"

	"golang.org/x/net/html"

	"github.com/julianstephens/scripture-standardizer/pkg/standardizer"
)

// processHTMLFile standardizes every text node of an HTML document in place.
// Markup structure, attributes, and script/style contents are left untouched.
func processHTMLFile(eng *standardizer.Standardizer, path string, opts processOptions) (fileResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileResult{}, err
	}

	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return fileResult{}, err
	}

	res := fileResult{Output: path}
	if opts.Output != "" {
		res.Output = opts.Output
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if p := n.Parent; p != nil && p.Type == html.ElementNode && (p.Data == "script" || p.Data == "style") {
				return
			}
			res.Stats.Processed++
			if newText, changed := eng.Process(n.Data); changed {
				n.Data = newText
				res.Stats.Changed++
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if res.Stats.Changed == 0 || opts.DryRun {
		return res, nil
	}

	out, err := os.Create(res.Output)
	if err != nil {
		return fileResult{}, err
	}
	defer out.Close()
	if err := html.Render(out, doc); err != nil {
		return fileResult{}, err
	}
	return res, nil
}
