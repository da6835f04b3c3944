// Package differ computes line-level change records between two versions of
// a text, for human review before a caller persists a result.
package differ

import (
	"fmt"
	"io"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Change markers.
const (
	Added    = '+'
	Removed  = '-'
	Replaced = '^'
)

// Change describes one changed line.
// Line is the zero-based index in the old text for Removed and Replaced
// records, and in the new text for Added records.
type Change struct {
	Marker byte
	Line   int
	Old    string
	New    string
}

// Diff returns the changed lines between old and new. Carriage returns are
// ignored. Identical texts yield no records.
func Diff(old, new string) []Change {
	if old == new {
		return nil
	}

	a := splitLines(old)
	b := splitLines(new)

	var changes []Change
	for _, op := range difflib.NewMatcher(a, b).GetOpCodes() {
		switch op.Tag {
		case 'd':
			for i := op.I1; i < op.I2; i++ {
				changes = append(changes, Change{Marker: Removed, Line: i, Old: a[i]})
			}
		case 'i':
			for j := op.J1; j < op.J2; j++ {
				changes = append(changes, Change{Marker: Added, Line: j, New: b[j]})
			}
		case 'r':
			changes = append(changes, replaced(a, b, op)...)
		}
	}
	return changes
}

// replaced pairs old and new lines of a replace block; lines left over on
// either side become plain removals or additions.
func replaced(a, b []string, op difflib.OpCode) []Change {
	var changes []Change
	n := min(op.I2-op.I1, op.J2-op.J1)

	for k := 0; k < n; k++ {
		changes = append(changes, Change{
			Marker: Replaced,
			Line:   op.I1 + k,
			Old:    a[op.I1+k],
			New:    b[op.J1+k],
		})
	}
	for i := op.I1 + n; i < op.I2; i++ {
		changes = append(changes, Change{Marker: Removed, Line: i, Old: a[i]})
	}
	for j := op.J1 + n; j < op.J2; j++ {
		changes = append(changes, Change{Marker: Added, Line: j, New: b[j]})
	}
	return changes
}

func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r", ""), "\n")
}

// String renders the change on one or two lines.
func (c Change) String() string {
	switch c.Marker {
	case Added:
		return fmt.Sprintf("+ %d: %s", c.Line+1, c.New)
	case Removed:
		return fmt.Sprintf("- %d: %s", c.Line+1, c.Old)
	default:
		return fmt.Sprintf("^ %d: %s\n  >>> %s", c.Line+1, c.Old, c.New)
	}
}

// Format writes one rendered change per line under an optional header.
func Format(w io.Writer, header string, changes []Change) error {
	if len(changes) == 0 {
		return nil
	}
	if header != "" {
		if _, err := fmt.Fprintf(w, "--- %s\n", header); err != nil {
			return err
		}
	}
	for _, c := range changes {
		if _, err := fmt.Fprintln(w, c.String()); err != nil {
			return err
		}
	}
	return nil
}

// UnifiedDiff renders a unified diff of the two texts, for tools that
// expect the patch format.
func UnifiedDiff(name, old, new string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(strings.ReplaceAll(old, "\r", "")),
		B:        difflib.SplitLines(strings.ReplaceAll(new, "\r", "")),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  2,
	})
}
