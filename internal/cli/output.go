// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplaySequenceReport], [DisplayQuietReport].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatSequenceReport], [FormatSummary].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteReportToFile].

package cli

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/ui"
)

// SeparatorWidth is the exact width of the report's dash separator lines.
const SeparatorWidth = 40

// Separator returns the report separator line, a run of exactly
// SeparatorWidth dash characters.
func Separator() string {
	return strings.Repeat("-", SeparatorWidth)
}

// FormatSequenceReport renders the complete report for a generated
// sequence:
//
//	The first <count> Fibonacci numbers are:
//	----------------------------------------
//	F(0): 0
//	...
//	----------------------------------------
//	The <count>th Fibonacci number is: <last>
//
// The count in the header is the number of elements actually present, so
// the report stays truthful for empty sequences, where the summary line is
// replaced by a note instead of indexing past the end.
//
// Color codes come from the active ui theme and collapse to plain text
// when colors are disabled.
func FormatSequenceReport(seq []*big.Int) string {
	var b strings.Builder

	count := len(seq)
	fmt.Fprintf(&b, "The first %s%d%s Fibonacci numbers are:\n",
		ui.ColorPrimary(), count, ui.ColorReset())
	fmt.Fprintf(&b, "%s%s%s\n", ui.ColorSecondary(), Separator(), ui.ColorReset())

	for i, v := range seq {
		fmt.Fprintf(&b, "F(%d): %s%s%s\n", i, ui.ColorPrimary(), v.String(), ui.ColorReset())
	}

	fmt.Fprintf(&b, "%s%s%s\n", ui.ColorSecondary(), Separator(), ui.ColorReset())
	b.WriteString(FormatSummary(seq))
	b.WriteByte('\n')

	return b.String()
}

// FormatSummary renders the report's final line. For a non-empty sequence
// it names the last (count-th, 1-indexed) element; for an empty sequence
// it states that nothing was generated rather than indexing out of range.
func FormatSummary(seq []*big.Int) string {
	count := len(seq)
	if count == 0 {
		return "No Fibonacci numbers were generated."
	}
	last := seq[count-1]
	return fmt.Sprintf("The %d%s Fibonacci number is: %s%s%s",
		count, ordinalSuffix(count), ui.ColorSuccess(), last.String(), ui.ColorReset())
}

// DisplaySequenceReport writes the full report to out.
func DisplaySequenceReport(out io.Writer, seq []*big.Int) {
	fmt.Fprint(out, FormatSequenceReport(seq))
}

// DisplayQuietReport writes only the final value, one line, suitable for
// scripting. Nothing is written for an empty sequence.
func DisplayQuietReport(out io.Writer, seq []*big.Int) {
	if len(seq) == 0 {
		return
	}
	fmt.Fprintln(out, seq[len(seq)-1].String())
}

// WriteReportToFile writes the plain (uncolored) report to a file,
// prefixed with a small metadata header. Parent directories are created
// as needed.
func WriteReportToFile(path string, seq []*big.Int) error {
	if path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return apperrors.WrapError(err, "failed to create directory %s", dir)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.WrapError(err, "failed to create output file")
	}
	defer file.Close()

	fmt.Fprintf(file, "# Fibonacci Sequence Report\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Count: %d\n", len(seq))
	fmt.Fprintf(file, "\n")

	fmt.Fprint(file, formatPlainReport(seq))
	return nil
}

// formatPlainReport renders the report with the no-color theme regardless
// of the active one. File output never carries escape sequences.
func formatPlainReport(seq []*big.Int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "The first %d Fibonacci numbers are:\n", len(seq))
	b.WriteString(Separator())
	b.WriteByte('\n')
	for i, v := range seq {
		fmt.Fprintf(&b, "F(%d): %s\n", i, v.String())
	}
	b.WriteString(Separator())
	b.WriteByte('\n')
	if len(seq) == 0 {
		b.WriteString("No Fibonacci numbers were generated.\n")
	} else {
		fmt.Fprintf(&b, "The %d%s Fibonacci number is: %s\n",
			len(seq), ordinalSuffix(len(seq)), seq[len(seq)-1].String())
	}

	return b.String()
}

// ordinalSuffix returns the English ordinal suffix for n: 1st, 2nd, 3rd,
// 4th, ... 11th, 12th, 13th, ... 21st, 22nd.
func ordinalSuffix(n int) string {
	if n < 0 {
		n = -n
	}
	switch n % 100 {
	case 11, 12, 13:
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}
