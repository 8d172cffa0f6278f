package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/idelchi/dirsize/internal/dirsize"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// PrintJSON outputs the scan result in JSON format.
func PrintJSON(result *dirsize.Result, writer io.Writer) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintPlain outputs the names of the listed directories, one per line.
func PrintPlain(result *dirsize.Result, writer io.Writer) error {
	for _, e := range result.Entries {
		if !e.IsDir {
			continue
		}

		if _, err := fmt.Fprintln(writer, e.Name); err != nil {
			return err
		}
	}

	return nil
}

// PrintTable outputs the scan result as a human-readable table.
//
// The skipped line is only shown when a threshold is set and something fell below it.
//
//nolint:forbidigo // This function prints output to the console.
func PrintTable(result *dirsize.Result, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintf(writer, "%s\n\n", result.Path)

	total := result.Total()

	for _, e := range result.Entries {
		name := e.Name
		if e.IsDir {
			name += "/"
		}

		pct := 0.0
		if total > 0 {
			pct = 100.0 * float64(e.Size) / float64(total)
		}

		fmt.Fprintf(w, "%s\t(%.1f%%)\t%s\n", dirsize.FormatSize(e.Size), pct, name)
	}

	if err := w.Flush(); err != nil {
		return err
	}

	if result.MinSize > 0 && result.SkippedSize > 0 {
		fmt.Fprintf(writer, "\n%d entries smaller than %s not shown, using %s\n",
			result.SkippedCount, dirsize.FormatSize(result.MinSize), dirsize.FormatSize(result.SkippedSize))
	}

	if result.Failed > 0 {
		fmt.Fprintf(writer, "%d entries could not be read\n", result.Failed)
	}

	fmt.Fprintf(writer, "\nTotal: %s\n", dirsize.FormatSize(total))

	return nil
}
