package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/foldersize/internal/dirstat"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// PrintJSON outputs the scan result in JSON format.
func PrintJSON(result *dirstat.Result, writer io.Writer) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintPaths outputs one folder path per line, largest first.
func PrintPaths(result *dirstat.Result, writer io.Writer) error {
	for _, path := range result.Paths() {
		if _, err := fmt.Fprintln(writer, filepath.ToSlash(path)); err != nil {
			return err
		}
	}

	return nil
}

// PrintTable outputs the scan result in human-readable table format.
// The largest folder is printed last, closest to the prompt.
//
//nolint:forbidigo // This function prints output to the console.
func PrintTable(result *dirstat.Result, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintln(w, "\nTop folders:\t\t")

	for i := len(result.Folders) - 1; i >= 0; i-- {
		f := result.Folders[i]
		pct := 0.0
		if result.TotalBytes > 0 {
			pct = 100.0 * float64(f.Size) / float64(result.TotalBytes)
		}
		fmt.Fprintf(w, "  %d) '%s'\t%s (%.1f%%)\n",
			i+1, filepath.ToSlash(f.Path), humanize.IBytes(uint64(f.Size)), pct) //nolint:gosec // sizes are never negative
	}

	// Stats summary
	fmt.Fprintln(w, "\nStats:\t\t")
	fmt.Fprintf(w, "Subfolders:\t%d\n", result.Subdirectories)
	fmt.Fprintf(w, "Total files:\t%d\n", result.Files)
	fmt.Fprintf(w, "Total size:\t%s (%d bytes)\n",
		humanize.IBytes(uint64(result.TotalBytes)), result.TotalBytes) //nolint:gosec // sizes are never negative

	if result.Suppressed > 0 {
		fmt.Fprintf(w, "Suppressed errors:\t%d\n", result.Suppressed)
	}

	fmt.Fprintf(w, "\nElapsed:\t%v\n", result.Elapsed)

	return w.Flush()
}
