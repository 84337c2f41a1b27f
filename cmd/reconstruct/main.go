package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"receiptai/internal/reconstruct"
)

// Runs the reconstruction engine over raw OCR text from a file or stdin and
// prints the result as JSON. Handy for tuning patterns against real receipts
// without the server or a database.
func main() {
	dayFirst := flag.Bool("day-first", false, "treat ambiguous slash dates as DD/MM")
	flag.Parse()

	var raw []byte
	var err error
	if flag.NArg() > 0 {
		raw, err = os.ReadFile(flag.Arg(0))
	} else {
		raw, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read input: %v\n", err)
		os.Exit(1)
	}

	var opts []reconstruct.Option
	if *dayFirst {
		opts = append(opts, reconstruct.WithDayFirstDates())
	}

	receipt := reconstruct.New(opts...).Reconstruct(string(raw))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(receipt); err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode result: %v\n", err)
		os.Exit(1)
	}
}
