package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	subcommand := flag.String("cmd", "", "Subcommand to run (e.g. 'csv', 'json')")
	in := flag.String("in", "", "Input file")
	out := flag.String("out", "", "Output file (default: stdout)")
	flag.Parse()

	var err error
	switch *subcommand {
	case "csv":
		err = MainCSV(*in, *out)
	case "json":
		err = MainJSON(*in, *out)
	default:
		println("Please provide a valid subcommand using -cmd flag (e.g. -cmd=csv or -cmd=json)")
		os.Exit(2)
	}

	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
