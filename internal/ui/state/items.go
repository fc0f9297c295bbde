package state

// Item is one selectable row. ID is the candidate name used for
// matching and actions; Label is the rendered text.
type Item struct {
	ID    string
	Label string
}

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
