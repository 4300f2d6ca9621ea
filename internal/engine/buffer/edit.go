package buffer

// EditResult describes an applied edit.
type EditResult struct {
	StartLine int      // First line of the modified span
	OldLines  []string // Lines that were replaced
	NewLines  []string // Lines that were inserted
	Revision  uint64   // Buffer revision after the edit
}

// Delta returns the change in line count caused by the edit.
func (r EditResult) Delta() int {
	return len(r.NewLines) - len(r.OldLines)
}
