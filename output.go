package main

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
)

// writeReport delivers the rendered report to its destination. The
// clipboard destination receives plain text; on clipboard failure the
// report falls back to stdout so nothing is lost.
func writeReport(report string, cfg *Config) {
	if cfg.Clipboard {
		if err := clipboard.WriteAll(stripANSI(report)); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing to clipboard: %v\n", err)
			fmt.Print(report)
			return
		}
		fmt.Println("Report copied to clipboard.")
		return
	}
	fmt.Print(report)
}
