package domain

// Packing list operations use case-sensitive exact name matching. Duplicate
// names are permitted at add time; all single-item operations act on the
// first match in insertion order. First-match semantics are intentional and
// mirror how the checklist behaves in the UI.

// AddPackingItem appends an item to the packing list.
func (t *Trip) AddPackingItem(name string, checked bool) {
	t.Packing = append(t.Packing, PackingItem{Name: name, Checked: checked})
}

// RenamePackingItem renames the first item whose name equals oldName and
// resets its checked state. Returns ErrNotFound when no item matches.
func (t *Trip) RenamePackingItem(oldName, newName string, checked bool) error {
	for i := range t.Packing {
		if t.Packing[i].Name == oldName {
			t.Packing[i].Name = newName
			t.Packing[i].Checked = checked
			return nil
		}
	}
	return ErrNotFound
}

// SetPackingItemChecked flips the checked state of the first item whose name
// matches. Returns ErrNotFound when no item matches.
func (t *Trip) SetPackingItemChecked(name string, checked bool) error {
	for i := range t.Packing {
		if t.Packing[i].Name == name {
			t.Packing[i].Checked = checked
			return nil
		}
	}
	return ErrNotFound
}

// DeletePackingItem removes the first item whose name matches.
// Returns ErrNotFound when no item matches.
func (t *Trip) DeletePackingItem(name string) error {
	for i := range t.Packing {
		if t.Packing[i].Name == name {
			t.Packing = append(t.Packing[:i], t.Packing[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
