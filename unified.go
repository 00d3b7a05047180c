package diffmatchpatch

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultContextLines is the number of unchanged lines of surrounding
// context displayed by Unified.
const DefaultContextLines = 3

// UnifiedOption configures Unified/DiffUnified.
type UnifiedOption func(*unifiedOptions)

type unifiedOptions struct {
	contextLines int
	label1       string
	label2       string
}

func newUnifiedOptions(opts []UnifiedOption) unifiedOptions {
	o := unifiedOptions{
		contextLines: DefaultContextLines,
		label1:       "text1",
		label2:       "text2",
	}
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

// UnifiedContextLines sets the number of unchanged lines of surrounding
// context printed around each hunk. Defaults to DefaultContextLines.
func UnifiedContextLines(lines int) UnifiedOption {
	if lines <= 0 {
		lines = DefaultContextLines
	}
	return func(o *unifiedOptions) {
		o.contextLines = lines
	}
}

// UnifiedLabels sets the labels shown after the --- and +++ markers.
// Defaults to "text1" and "text2".
func UnifiedLabels(oldLabel, newLabel string) UnifiedOption {
	return func(o *unifiedOptions) {
		o.label1 = oldLabel
		o.label2 = newLabel
	}
}

// Unified diffs text1 and text2 line by line and renders the result in the
// hunk-based format produced by GNU diff -u / git diff.
func (config *Config) Unified(text1, text2 string, opts ...UnifiedOption) string {
	options := newUnifiedOptions(opts)
	chars1, chars2, lines := config.DiffLinesToChars(text1, text2)
	diffs := config.Diff(chars1, chars2, false)
	diffs = config.DiffCharsToLines(diffs, lines)
	return unifiedDoc{label1: options.label1, label2: options.label2, hunks: makeUnifiedHunks(diffs, options.contextLines)}.String()
}

// DiffUnified renders an already-computed diff in the hunk-based format
// produced by GNU diff -u / git diff. diffs need not be line-aligned; it is
// realigned internally.
func (config *Config) DiffUnified(diffs []Diff, opts ...UnifiedOption) string {
	options := newUnifiedOptions(opts)
	return unifiedDoc{label1: options.label1, label2: options.label2, hunks: makeUnifiedHunks(diffs, options.contextLines)}.String()
}

// unifiedHunk is one @@ ... @@ block: a run of diffs anchored at a 0-based
// starting line in each file (printed 1-based), with length1/length2 counting
// the lines each side contributes.
type unifiedHunk struct {
	start1, start2   int
	length1, length2 int
	diffs            []Diff
}

func unifiedHunkIsEqual(diffs []Diff) bool {
	for _, d := range diffs {
		if d.Op != OpEqual {
			return false
		}
	}
	return true
}

// makeUnifiedHunks groups a realigned, line-wise diff into hunks, each
// surrounded by up to contextLines lines of unchanged context; runs of
// unchanged lines longer than 2*contextLines split one hunk into two.
func makeUnifiedHunks(diffs []Diff, contextLines int) []unifiedHunk {
	if unifiedHunkIsEqual(diffs) {
		return nil
	}
	diffs = diffLinewise(diffs)

	maxContext := contextLines * 2
	var hunks []unifiedHunk
	var hunk unifiedHunk
	var lineNo1, lineNo2 int
	var context []Diff

	for _, d := range diffs {
		switch d.Op {
		case OpDelete:
			lineNo1++
		case OpInsert:
			lineNo2++
		case OpEqual:
			lineNo1++
			lineNo2++
		}

		if d.Op == OpEqual {
			context = append(context, d)
			continue
		}

		if len(hunk.diffs) != 0 && len(context) > maxContext {
			cl := min(len(context), contextLines)
			hunk.diffs = append(hunk.diffs, context[:cl]...)
			updateUnifiedHunkLength(&hunk)
			hunks = append(hunks, hunk)
			hunk = unifiedHunk{}
		}

		if len(hunk.diffs) == 0 {
			cl := min(len(context), contextLines)
			l1 := lineNo1 - cl
			l2 := lineNo2 - cl
			// The line number for exactly one of lineNo1/lineNo2 has already
			// advanced past this diff; back that one off so the hunk starts
			// before it.
			switch d.Op {
			case OpDelete:
				l1--
			case OpInsert:
				l2--
			}
			hunk = unifiedHunk{
				start1: l1,
				start2: l2,
				diffs:  append([]Diff{}, context[len(context)-cl:]...),
			}
			context = nil
		}

		hunk.diffs = append(hunk.diffs, context...)
		context = nil
		hunk.diffs = append(hunk.diffs, d)
	}

	if len(hunk.diffs) != 0 {
		cl := min(len(context), contextLines)
		hunk.diffs = append(hunk.diffs, context[:cl]...)
		updateUnifiedHunkLength(&hunk)
		hunks = append(hunks, hunk)
	}

	return hunks
}

func updateUnifiedHunkLength(h *unifiedHunk) {
	h.length1, h.length2 = 0, 0
	for _, d := range h.diffs {
		switch d.Op {
		case OpDelete:
			h.length1++
		case OpInsert:
			h.length2++
		case OpEqual:
			h.length1++
			h.length2++
		}
	}
}

// diffLinewise splits and merges diffs so each individual record represents
// exactly one line, including its trailing newline, realigning edits to
// start and end on line boundaries.
func diffLinewise(diffs []Diff) []Diff {
	var ret []Diff
	var line1, line2 string

	diffs = diffCleanupNewline(diffs)

	add := func(d Diff) {
		switch d.Op {
		case OpDelete:
			line1 += d.Text
		case OpInsert:
			line2 += d.Text
		default:
			line1 += d.Text
			line2 += d.Text
		}

		if strings.HasSuffix(line1, "\n") && line1 == line2 {
			ret = append(ret, Diff{OpEqual, line1})
			line1, line2 = "", ""
		}
		if strings.HasSuffix(line1, "\n") {
			ret = append(ret, Diff{OpDelete, line1})
			line1 = ""
		}
		if strings.HasSuffix(line2, "\n") {
			ret = append(ret, Diff{OpInsert, line2})
			line2 = ""
		}
	}

	for _, d := range diffs {
		for _, segment := range strings.SplitAfter(d.Text, "\n") {
			if segment == "" {
				continue
			}
			add(Diff{d.Op, segment})
		}
	}

	// line1/line2 may be non-empty here only if the input has no trailing
	// newline.
	if line1 != "" && line1 == line2 {
		ret = append(ret, Diff{OpEqual, line1})
		line1, line2 = "", ""
	}
	if line1 != "" {
		ret = append(ret, Diff{OpDelete, line1})
	}
	if line2 != "" {
		ret = append(ret, Diff{OpInsert, line2})
	}

	return reorderDeletionsFirst(ret)
}

// diffCleanupNewline shifts a single edit surrounded by equalities sideways
// so it begins after the nearest preceding newline, keeping later line
// splitting aligned to line boundaries rather than mid-line.
func diffCleanupNewline(diffs []Diff) []Diff {
	var ret []Diff
	for i := 0; i < len(diffs); i++ {
		if i < len(diffs)-2 && diffs[i].Op == OpEqual && diffs[i+1].Op != OpEqual && diffs[i+2].Op == OpEqual {
			common := prefixThroughNewline(diffs[i+1].Text, diffs[i+2].Text)
			if common != "" {
				ret = append(ret,
					Diff{OpEqual, diffs[i].Text + common},
					Diff{diffs[i+1].Op, strings.TrimPrefix(diffs[i+1].Text, common) + common},
					Diff{OpEqual, strings.TrimPrefix(diffs[i+2].Text, common)},
				)
				i += 2
				continue
			}
		}
		ret = append(ret, diffs[i])
	}
	return ret
}

// prefixThroughNewline returns the common prefix of text1 and text2 up to
// and including its last newline, or "" if that prefix contains none.
func prefixThroughNewline(text1, text2 string) string {
	runes1, runes2 := []rune(text1), []rune(text2)
	prefix := string(runes1[:commonPrefixLength(runes1, runes2)])
	idx := strings.LastIndex(prefix, "\n")
	if idx == -1 {
		return ""
	}
	return prefix[:idx+1]
}

// reorderDeletionsFirst reorders a linewise diff so deletions precede
// insertions within each run of edits, without crossing an equality.
func reorderDeletionsFirst(diffs []Diff) []Diff {
	var ret, deletions, insertions []Diff
	for _, d := range diffs {
		switch d.Op {
		case OpDelete:
			deletions = append(deletions, d)
		case OpInsert:
			insertions = append(insertions, d)
		case OpEqual:
			ret = append(ret, deletions...)
			deletions = nil
			ret = append(ret, insertions...)
			insertions = nil
			ret = append(ret, d)
		}
	}
	ret = append(ret, deletions...)
	ret = append(ret, insertions...)
	return ret
}

// unifiedDoc is a fully rendered unified diff: a label pair plus the hunks
// between them.
type unifiedDoc struct {
	label1, label2 string
	hunks          []unifiedHunk
}

func (u unifiedDoc) String() string {
	if len(u.hunks) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "--- %s\n", u.label1)
	fmt.Fprintf(&b, "+++ %s\n", u.label2)
	for _, h := range u.hunks {
		b.WriteString(formatUnifiedHunk(h))
	}
	return b.String()
}

// formatUnifiedHunk renders one hunk as "@@ -start1,length1 +start2,length2 @@"
// followed by its body lines. Unlike Patch.String, line text is printed
// verbatim (no percent-encoding) since this format targets line-oriented
// tools, not PatchFromText.
func formatUnifiedHunk(h unifiedHunk) string {
	var b strings.Builder
	fmt.Fprintf(&b, "@@ -%s +%s @@\n", unifiedCoords(h.start1, h.length1), unifiedCoords(h.start2, h.length2))
	for _, d := range h.diffs {
		var prefix string
		switch d.Op {
		case OpDelete:
			prefix = "-"
		case OpInsert:
			prefix = "+"
		case OpEqual:
			prefix = " "
		}
		b.WriteString(prefix)
		b.WriteString(d.Text)
		if !strings.HasSuffix(d.Text, "\n") {
			b.WriteString("\n\\ No newline at end of file\n")
		}
	}
	return b.String()
}

func unifiedCoords(start, length int) string {
	if length == 1 {
		return strconv.Itoa(start + 1)
	}
	return strconv.Itoa(start+1) + "," + strconv.Itoa(length)
}
