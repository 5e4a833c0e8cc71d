package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

type CsvCmd struct {
	CSV string `type:"existingfile" optional:"" help:"Alias CSV to validate (default: the embedded source)"`
}

type CoverageCmd struct {
	CSV string `type:"existingfile" optional:"" help:"Alias CSV to check (default: the embedded source)"`
}

type CLI struct {
	Csv      CsvCmd      `cmd:"" help:"Validate an alias CSV for malformed rows and conflicting spellings"`
	Coverage CoverageCmd `cmd:"" help:"Check that the alias table covers the full 66-book canon"`
}

func main() {
	stop := make(chan bool)
	kongCtx := kong.Parse(
		&CLI{},
		kong.Name("standardize-verify"),
		kong.Description("Alias Source Verification Tool"),
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
