package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/evcraddock/nycviz/internal/aggregate"
	"github.com/evcraddock/nycviz/internal/trees"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printCounts prints a titled two-column table of grouped counts.
func printCounts(out io.Writer, title, keyHeader string, counts []aggregate.Count) error {
	fmt.Fprintf(out, "%s\n", title)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(w, "%s\tCOUNT\n", strings.ToUpper(keyHeader)); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	for _, c := range counts {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", c.Key, formatCount(c.Value)); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}
	fmt.Fprintln(out)
	return nil
}

// printMatrix prints a labelled count matrix.
func printMatrix(out io.Writer, title string, rows, cols []string, cells [][]int) error {
	fmt.Fprintf(out, "%s\n", title)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(w, "\t%s\t\n", strings.Join(cols, "\t")); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	for i, r := range rows {
		vals := make([]string, len(cells[i]))
		for j, c := range cells[i] {
			vals[j] = formatCount(float64(c))
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t\n", r, strings.Join(vals, "\t")); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}
	fmt.Fprintln(out)
	return nil
}

// printTreeCounts prints tree count rows as a table.
func printTreeCounts(out io.Writer, counts []trees.Count) error {
	if len(counts) == 0 {
		fmt.Fprintln(out, "No trees found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "SPECIES\tBOROUGH\tHEALTH\tSTEWARD\tTREES"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	var total int64
	for _, c := range counts {
		total += c.Trees
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			truncate(c.Species, 30), orDash(c.Borough), c.Health, orDash(c.Steward), formatInt(c.Trees)); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(out, "\nTotal: %s trees in %d rows\n", formatInt(total), len(counts))
	return nil
}

// printHealth prints a health level -> count map in health order, then
// any other levels.
func printHealth(out io.Writer, name string, counts map[string]int64) error {
	if len(counts) == 0 {
		fmt.Fprintf(out, "No trees found for %q.\n", name)
		return nil
	}

	fmt.Fprintf(out, "%s\n", name)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	seen := make(map[string]bool)
	var total int64
	write := func(level string, n int64) error {
		seen[level] = true
		total += n
		_, err := fmt.Fprintf(w, "  %s\t%s\n", level, formatInt(n))
		return err
	}
	for _, level := range trees.HealthLevels {
		if n, ok := counts[level]; ok {
			if err := write(level, n); err != nil {
				return fmt.Errorf("writing row: %w", err)
			}
		}
	}
	var rest []string
	for level := range counts {
		if !seen[level] {
			rest = append(rest, level)
		}
	}
	sort.Strings(rest)
	for _, level := range rest {
		if err := write(level, counts[level]); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w, "  Total\t%s\n", formatInt(total)); err != nil {
		return fmt.Errorf("writing total: %w", err)
	}
	return w.Flush()
}

// formatCount formats a whole-number count with commas.
func formatCount(v float64) string {
	if v != float64(int64(v)) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return formatInt(int64(v))
}

// formatInt formats an integer with thousands separators.
func formatInt(n int64) string {
	if n < 0 {
		return "-" + formatInt(-n)
	}
	s := strconv.FormatInt(n, 10)

	if len(s) <= 3 {
		return s
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	return strings.Join(parts, ",")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
