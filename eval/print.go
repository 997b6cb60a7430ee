package eval

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// PrintReport writes a human-readable report to w, mirroring the three
// analysis sections: request health, overall performance, and recurring
// error patterns.
func PrintReport(w io.Writer, r *Report) {
	header := color.New(color.FgCyan, color.Bold)
	good := color.New(color.FgGreen)
	bad := color.New(color.FgRed)

	header.Fprintln(w, "--- API & Parsing Health ---")
	fmt.Fprintf(w, "Total problems processed: %d\n", r.TotalProcessed)
	fmt.Fprintf(w, "API errors: %d\n", r.APIErrors)

	header.Fprintln(w, "\n--- Overall Performance (successful requests) ---")
	fmt.Fprintf(w, "Successful requests: %d\n", r.Successful)
	good.Fprintf(w, "Correct answers: %d\n", r.Correct)
	bad.Fprintf(w, "Incorrect answers: %d\n", r.Incorrect)
	fmt.Fprintf(w, "Accuracy: %.2f%%\n", r.Accuracy*100)

	if len(r.Failures) == 0 {
		header.Fprintln(w, "\n--- Recurring Patterns of Error ---")
		good.Fprintln(w, "No errors on successful requests.")
		return
	}

	header.Fprintln(w, "\n--- Recurring Patterns of Error ---")
	fmt.Fprintln(w, "The model struggled most with these question types:")
	for _, f := range r.Failures {
		fmt.Fprintf(w, "  - %s (failed %d time(s))\n", f.Category, f.Count)
	}
}
