package tracking

import (
	"strconv"
	"strings"
)

// DefaultMaxDiffLines is the line count above which the heuristic diff
// replaces the Myers diff.
const DefaultMaxDiffLines = 10000

// OpType indicates the kind of a diff operation.
type OpType uint8

const (
	// OpEqual indicates an unchanged line.
	OpEqual OpType = iota

	// OpInsert indicates a line added in the new text.
	OpInsert

	// OpDelete indicates a line removed from the old text.
	OpDelete
)

// String returns a human-readable representation of the op type.
func (ot OpType) String() string {
	switch ot {
	case OpEqual:
		return "equal"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Op is a single operation in a line edit script.
type Op struct {
	Type     OpType
	OldIndex int // Line index in the old text (valid for equal/delete)
	NewIndex int // Line index in the new text (valid for equal/insert)
}

// Result contains the complete result of a diff operation.
type Result struct {
	// Ops is the edit script in order.
	Ops []Op

	// OldLineCount is the total line count of the old text.
	OldLineCount int

	// NewLineCount is the total line count of the new text.
	NewLineCount int
}

// HasChanges returns true if any op is not equal.
func (r Result) HasChanges() bool {
	for _, op := range r.Ops {
		if op.Type != OpEqual {
			return true
		}
	}
	return false
}

// InsertedLines returns the number of inserted lines.
func (r Result) InsertedLines() int {
	n := 0
	for _, op := range r.Ops {
		if op.Type == OpInsert {
			n++
		}
	}
	return n
}

// DeletedLines returns the number of deleted lines.
func (r Result) DeletedLines() int {
	n := 0
	for _, op := range r.Ops {
		if op.Type == OpDelete {
			n++
		}
	}
	return n
}

// Options configures diff computation.
type Options struct {
	// MaxLines limits the input size for the Myers diff.
	// Larger inputs fall back to a hash-matching heuristic diff.
	// 0 means DefaultMaxDiffLines.
	MaxLines int
}

// DiffLines computes a minimal line edit script between two line slices.
func DiffLines(oldLines, newLines []string, opts Options) Result {
	maxLines := opts.MaxLines
	if maxLines == 0 {
		maxLines = DefaultMaxDiffLines
	}

	var ops []Op
	if len(oldLines) > maxLines || len(newLines) > maxLines {
		ops = heuristicDiff(oldLines, newLines)
	} else {
		ops = myersDiff(oldLines, newLines)
	}

	return Result{
		Ops:          ops,
		OldLineCount: len(oldLines),
		NewLineCount: len(newLines),
	}
}

// Splice is a contiguous line replacement derived from an edit script.
// It replaces the half-open span [OldStart, OldEnd) of the old text with
// NewLines. Spans are reported in ascending old-line order.
type Splice struct {
	OldStart int
	OldEnd   int
	NewLines []string
}

// IsInsert returns true if the splice inserts without removing.
func (s Splice) IsInsert() bool {
	return s.OldStart == s.OldEnd && len(s.NewLines) > 0
}

// IsDelete returns true if the splice removes without inserting.
func (s Splice) IsDelete() bool {
	return s.OldStart < s.OldEnd && len(s.NewLines) == 0
}

// Delta returns the line count change caused by the splice.
func (s Splice) Delta() int {
	return len(s.NewLines) - (s.OldEnd - s.OldStart)
}

// Splices collapses an edit script into minimal contiguous replacements.
// Runs of adjacent deletes and inserts merge into a single splice; equal
// lines are never part of any splice.
func Splices(r Result, newLines []string) []Splice {
	var splices []Splice
	var cur *Splice

	flush := func() {
		if cur != nil {
			splices = append(splices, *cur)
			cur = nil
		}
	}

	for _, op := range r.Ops {
		switch op.Type {
		case OpEqual:
			flush()

		case OpDelete:
			if cur == nil {
				cur = &Splice{OldStart: op.OldIndex, OldEnd: op.OldIndex}
			}
			cur.OldEnd = op.OldIndex + 1

		case OpInsert:
			if cur == nil {
				// Insertion point in old coordinates: the next old line.
				at := insertOldIndex(r.Ops, op)
				cur = &Splice{OldStart: at, OldEnd: at}
			}
			cur.NewLines = append(cur.NewLines, newLines[op.NewIndex])
		}
	}
	flush()

	return splices
}

// insertOldIndex finds the old-text position of a pure insertion by
// scanning forward for the next op that carries an old index.
func insertOldIndex(ops []Op, target Op) int {
	seen := false
	for _, op := range ops {
		if !seen {
			if op == target {
				seen = true
			}
			continue
		}
		if op.Type != OpInsert {
			return op.OldIndex
		}
	}
	// Insertion at end of old text.
	last := 0
	for _, op := range ops {
		if op.Type != OpInsert && op.OldIndex+1 > last {
			last = op.OldIndex + 1
		}
	}
	return last
}

// myersDiff implements the Myers diff algorithm over line slices.
// Returns the edit script in order.
func myersDiff(oldLines, newLines []string) []Op {
	n := len(oldLines)
	m := len(newLines)

	// Trivial cases
	if n == 0 && m == 0 {
		return nil
	}
	if n == 0 {
		ops := make([]Op, m)
		for i := 0; i < m; i++ {
			ops[i] = Op{Type: OpInsert, NewIndex: i}
		}
		return ops
	}
	if m == 0 {
		ops := make([]Op, n)
		for i := 0; i < n; i++ {
			ops[i] = Op{Type: OpDelete, OldIndex: i}
		}
		return ops
	}

	// V vector indexed by k+offset, k in [-maxD, maxD]
	maxD := n + m
	offset := maxD
	v := make([]int, 2*maxD+1)
	v[offset+1] = 0

	var trace [][]int

outer:
	for d := 0; d <= maxD; d++ {
		// Snapshot V before processing this d; backtracking needs the
		// state from the previous iteration.
		vCopy := make([]int, len(v))
		copy(vCopy, v)
		trace = append(trace, vCopy)

		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}

			y := x - k

			// Extend diagonal over equal lines
			for x < n && y < m && oldLines[x] == newLines[y] {
				x++
				y++
			}

			v[offset+k] = x

			if x >= n && y >= m {
				vFinal := make([]int, len(v))
				copy(vFinal, v)
				trace = append(trace, vFinal)
				break outer
			}
		}
	}

	return backtrack(trace, n, m, offset)
}

// backtrack reconstructs the edit script from the trace.
func backtrack(trace [][]int, n, m, offset int) []Op {
	if len(trace) == 0 {
		return nil
	}

	x := n
	y := m
	var ops []Op

	for d := len(trace) - 2; d >= 0; d-- {
		v := trace[d]
		k := x - y

		var prevK int
		if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}

		prevX := v[offset+prevK]
		prevY := prevX - prevK

		// Walk back diagonals (equal lines)
		for x > prevX && y > prevY {
			x--
			y--
			ops = append(ops, Op{Type: OpEqual, OldIndex: x, NewIndex: y})
		}

		if d > 0 {
			if x > prevX {
				x--
				ops = append(ops, Op{Type: OpDelete, OldIndex: x})
			} else if y > prevY {
				y--
				ops = append(ops, Op{Type: OpInsert, NewIndex: y})
			}
		}
	}

	// Ops were built backwards
	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}

	return ops
}

// heuristicDiff provides a line-matching diff for large inputs.
// Less optimal than Myers but O(n+m) memory.
func heuristicDiff(oldLines, newLines []string) []Op {
	n := len(oldLines)
	m := len(newLines)

	oldLineMap := make(map[string][]int)
	for i, line := range oldLines {
		oldLineMap[line] = append(oldLineMap[line], i)
	}

	matched := make([]bool, n)
	newMatched := make([]bool, m)

	// First pass: claim exact matches in order.
	for j, line := range newLines {
		if indices, ok := oldLineMap[line]; ok {
			for _, i := range indices {
				if !matched[i] {
					matched[i] = true
					newMatched[j] = true
					break
				}
			}
		}
	}

	var ops []Op
	i, j := 0, 0
	for i < n || j < m {
		// Matched flags can pair duplicate lines out of order, so only
		// emit equal when the contents really agree.
		for i < n && j < m && matched[i] && newMatched[j] && oldLines[i] == newLines[j] {
			ops = append(ops, Op{Type: OpEqual, OldIndex: i, NewIndex: j})
			i++
			j++
		}

		for i < n && !matched[i] {
			ops = append(ops, Op{Type: OpDelete, OldIndex: i})
			i++
		}

		for j < m && !newMatched[j] {
			ops = append(ops, Op{Type: OpInsert, NewIndex: j})
			j++
		}

		// Out-of-order duplicate pairing degrades to delete+insert.
		if i < n && j < m && matched[i] && newMatched[j] && oldLines[i] != newLines[j] {
			ops = append(ops, Op{Type: OpDelete, OldIndex: i})
			ops = append(ops, Op{Type: OpInsert, NewIndex: j})
			i++
			j++
		}
	}

	return ops
}

// UnifiedDiff renders the diff in unified format with the given context.
func UnifiedDiff(r Result, oldLines, newLines []string, oldName, newName string, contextLines int) string {
	if !r.HasChanges() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("--- ")
	sb.WriteString(oldName)
	sb.WriteString("\n+++ ")
	sb.WriteString(newName)
	sb.WriteString("\n")

	// Group ops into hunks separated by more than 2*contextLines equal lines.
	type hunk struct {
		ops []Op
	}
	var hunks []hunk
	var cur []Op
	equalRun := 0

	for _, op := range r.Ops {
		if op.Type == OpEqual {
			equalRun++
			cur = append(cur, op)
			continue
		}
		if equalRun > 2*contextLines && len(cur) > equalRun {
			// Split: close the previous hunk after trailing context.
			body := cur[:len(cur)-equalRun]
			trail := contextLines
			if trail > equalRun {
				trail = equalRun
			}
			hunks = append(hunks, hunk{ops: append(body, cur[len(cur)-equalRun:len(cur)-equalRun+trail]...)})
			lead := contextLines
			if lead > equalRun {
				lead = equalRun
			}
			cur = append([]Op{}, cur[len(cur)-lead:]...)
		}
		equalRun = 0
		cur = append(cur, op)
	}
	if len(cur) > equalRun {
		trail := contextLines
		if trail > equalRun {
			trail = equalRun
		}
		hunks = append(hunks, hunk{ops: cur[:len(cur)-equalRun+trail]})
	}

	for _, h := range hunks {
		if len(h.ops) == 0 {
			continue
		}

		// Trim leading context beyond contextLines.
		lead := 0
		for lead < len(h.ops) && h.ops[lead].Type == OpEqual {
			lead++
		}
		if lead > contextLines {
			h.ops = h.ops[lead-contextLines:]
		}

		oldStart, oldCount, newStart, newCount := hunkRange(h.ops)

		sb.WriteString("@@ -")
		sb.WriteString(strconv.Itoa(oldStart + 1))
		sb.WriteString(",")
		sb.WriteString(strconv.Itoa(oldCount))
		sb.WriteString(" +")
		sb.WriteString(strconv.Itoa(newStart + 1))
		sb.WriteString(",")
		sb.WriteString(strconv.Itoa(newCount))
		sb.WriteString(" @@\n")

		for _, op := range h.ops {
			switch op.Type {
			case OpEqual:
				sb.WriteString(" ")
				sb.WriteString(oldLines[op.OldIndex])
			case OpDelete:
				sb.WriteString("-")
				sb.WriteString(oldLines[op.OldIndex])
			case OpInsert:
				sb.WriteString("+")
				sb.WriteString(newLines[op.NewIndex])
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// hunkRange computes the old/new ranges covered by a hunk's ops.
func hunkRange(ops []Op) (oldStart, oldCount, newStart, newCount int) {
	oldStart, newStart = -1, -1
	for _, op := range ops {
		switch op.Type {
		case OpEqual:
			if oldStart < 0 {
				oldStart = op.OldIndex
			}
			if newStart < 0 {
				newStart = op.NewIndex
			}
			oldCount++
			newCount++
		case OpDelete:
			if oldStart < 0 {
				oldStart = op.OldIndex
			}
			oldCount++
		case OpInsert:
			if newStart < 0 {
				newStart = op.NewIndex
			}
			newCount++
		}
	}
	if oldStart < 0 {
		oldStart = 0
	}
	if newStart < 0 {
		newStart = 0
	}
	return oldStart, oldCount, newStart, newCount
}
