package tui

// expansionSet tracks which project rows are expanded. It is ephemeral:
// a fresh TUI run always starts with everything collapsed.
type expansionSet map[int]struct{}

func newExpansionSet() expansionSet {
	return expansionSet{}
}

// toggle adds the id if absent and removes it if present.
func (e expansionSet) toggle(id int) {
	if _, ok := e[id]; ok {
		delete(e, id)
		return
	}
	e[id] = struct{}{}
}

func (e expansionSet) has(id int) bool {
	_, ok := e[id]
	return ok
}
