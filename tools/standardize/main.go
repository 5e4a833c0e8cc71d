package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/scripture-standardizer/pkg/standardizer"
)

type TextCmd struct {
	Text string `arg:"" help:"Text string to standardize"`
	CSV  string `help:"Path to a custom alias CSV file" env:"STANDARDIZE_BOOKS_CSV"`
}

type FileCmd struct {
	Path       string `arg:"" type:"path"                                    help:"File or directory to process"`
	Output     string `short:"o" help:"Output path (default: rewrite in place)"`
	CSV        string `help:"Path to a custom alias CSV file"                env:"STANDARDIZE_BOOKS_CSV"`
	NoBackup   bool   `help:"Skip creating a backup of the original file"`
	FixSpacing bool   `help:"Repair extraction spacing artifacts in text and PDF input"`
	DryRun     bool   `help:"Report what would change without writing anything"`
	Verbose    bool   `short:"v" help:"Display detailed processing information"`
}

type ParseCmd struct {
	Ref string `arg:"" help:"Reference to parse, in any recognized notation"`
	CSV string `help:"Path to a custom alias CSV file" env:"STANDARDIZE_BOOKS_CSV"`
}

type CLI struct {
	Text  TextCmd  `cmd:"" help:"Standardize references in a text string"`
	File  FileCmd  `cmd:"" help:"Standardize references in DOCX, HTML, text, or PDF files"`
	Parse ParseCmd `cmd:"" help:"Parse one reference into its structured form"`
}

func newEngine(csvPath string) (*standardizer.Standardizer, error) {
	opts := []standardizer.Option{standardizer.WithUnmatchedTracking()}
	if csvPath != "" {
		opts = append(opts, standardizer.WithCSV(csvPath))
	}
	return standardizer.New(opts...)
}

func main() {
	_ = godotenv.Load()

	stop := make(chan bool)
	kongCtx := kong.Parse(
		&CLI{},
		kong.Name("standardize"),
		kong.Description("Bible Reference Standardizer"),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Bind(stop),
	)

	if err := kongCtx.Run(); err != nil {
		if _, ok := <-stop; ok {
			close(stop)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if _, ok := <-stop; ok {
		close(stop)
	}
}

func (c *TextCmd) Run(stop chan bool) error {
	defer close(stop)

	eng, err := newEngine(c.CSV)
	if err != nil {
		return err
	}

	result, changed := eng.Process(c.Text)

	fmt.Println("Original text:")
	fmt.Printf("  %s\n", c.Text)
	fmt.Println()
	fmt.Println("Standardized text:")
	fmt.Printf("  %s\n", result)
	fmt.Println()

	if changed {
		fmt.Println("✓ Changes were made to the text")
	} else {
		fmt.Println("ℹ No changes were needed")
	}
	printUnmatched(eng)

	return nil
}

func (c *ParseCmd) Run(stop chan bool) error {
	defer close(stop)

	eng, err := newEngine(c.CSV)
	if err != nil {
		return err
	}

	ref, ok := eng.ParseReference(c.Ref)
	if !ok {
		return fmt.Errorf("no recognizable reference in %q", c.Ref)
	}

	fmt.Printf("Canonical: %s\n", ref)
	fmt.Printf("Book:      %s\n", ref.Book)
	if osis, ok := standardizer.OSISForBook(ref.Book); ok {
		fmt.Printf("OSIS:      %s\n", osis)
	}
	fmt.Printf("Chapter:   %d\n", ref.Chapter)
	for _, v := range ref.Verses {
		if v.End != 0 {
			fmt.Printf("Verses:    %d-%d\n", v.Start, v.End)
		} else {
			fmt.Printf("Verse:     %d\n", v.Start)
		}
	}
	if end := ref.CrossChapterEnd; end != nil {
		fmt.Printf("Ends at:   %d:%d\n", end.Chapter, end.Verse)
	}

	return nil
}

func printUnmatched(eng *standardizer.Standardizer) {
	unmatched := eng.Unmatched()
	if len(unmatched) == 0 {
		return
	}
	fmt.Printf("⚠ %d unmatched reference(s); add the abbreviation to the alias CSV to standardize them:\n", len(unmatched))
	for _, ref := range unmatched {
		fmt.Printf("  %s\n", ref)
	}
}
