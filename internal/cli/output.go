package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/alnah/airename/internal/format"
	"github.com/alnah/airename/internal/renamer"
)

// nameColumn caps the width of the original-name column.
const nameColumn = 40

// writeResults prints one line per file: "old  ->  new" or "old  !!  error".
func writeResults(w io.Writer, s renamer.Summary, applied bool) {
	width := 0
	for _, r := range s.Results {
		width = max(width, min(utf8.RuneCountInString(r.OriginalName), nameColumn))
	}

	for _, r := range s.Results {
		name := format.Middle(r.OriginalName, nameColumn)
		if !r.Success {
			_, _ = fmt.Fprintf(w, "  %-*s  !!  %s [%s]\n", width, name, r.Error, r.Category)
			continue
		}
		target := r.NewName
		if !applied {
			target = renamer.TargetName(r.Path, r.NewName)
		}
		_, _ = fmt.Fprintf(w, "  %-*s  ->  %s\n", width, name, target)
	}
}

// writeSummary prints the totals line.
func writeSummary(w io.Writer, s renamer.Summary, applied bool, elapsed time.Duration) {
	if applied {
		_, _ = fmt.Fprintf(w, "Renamed %d of %s in %s", s.Successful, format.Count(s.Total, "file"), format.Elapsed(elapsed))
	} else {
		_, _ = fmt.Fprintf(w, "Named %d of %s in %s", s.Successful, format.Count(s.Total, "file"), format.Elapsed(elapsed))
	}
	if s.Failed > 0 {
		_, _ = fmt.Fprintf(w, " (%d failed)", s.Failed)
	}
	_, _ = fmt.Fprintln(w)

	if !applied && s.Successful > 0 {
		_, _ = fmt.Fprintln(w, "Nothing renamed yet. Run again with --apply to rename.")
	}
}

// writeJSON prints the summary as indented JSON.
func writeJSON(w io.Writer, s renamer.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}
