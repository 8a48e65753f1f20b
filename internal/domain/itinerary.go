package domain

// AddItineraryItem appends a new item tagged with the given day.
// The day is caller-supplied: it may open a new day number or add a second
// item to an existing day. Existing items are never renumbered by an add.
func (t *Trip) AddItineraryItem(day int, title, location, description string) {
	t.Itinerary = append(t.Itinerary, ItineraryItem{
		Day:         day,
		Title:       title,
		Location:    location,
		Description: description,
	})
}

// DeleteItineraryDay removes every item on the given day, then shifts every
// later item down by exactly one day so the day sequence stays dense and
// 1-based. Removal and renumbering happen together on the in-memory
// aggregate; the store's save transaction makes them atomic on disk.
//
// Deleting the only remaining day simply leaves an empty itinerary.
func (t *Trip) DeleteItineraryDay(day int) {
	kept := t.Itinerary[:0]
	for _, item := range t.Itinerary {
		if item.Day == day {
			continue
		}
		if item.Day > day {
			item.Day--
		}
		kept = append(kept, item)
	}
	t.Itinerary = kept
}

// DeleteItineraryItem removes the first item matching all four fields exactly.
// Unlike DeleteItineraryDay it never renumbers: removing one activity from a
// day leaves the day itself in place. Returns ErrNotFound when nothing matches.
func (t *Trip) DeleteItineraryItem(day int, title, location, description string) error {
	for i, item := range t.Itinerary {
		if item.Day == day && item.Title == title && item.Location == location && item.Description == description {
			t.Itinerary = append(t.Itinerary[:i], t.Itinerary[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
