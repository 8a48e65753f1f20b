package domain

import (
	"fmt"
	"time"
)

// Derived status/countdown values for trips without a usable date range.
const StatusDateNotSet = "Date not set"

// StatusOngoing is the derived status for a trip whose range covers today.
const StatusOngoing = "Ongoing"

// RangesOverlap reports whether two inclusive date ranges [s1,e1] and [s2,e2]
// overlap. Touching boundaries count as overlapping: a trip ending on the day
// another starts is a conflict.
func RangesOverlap(s1, e1, s2, e2 time.Time) bool {
	return !(e1.Before(s2) || s1.After(e2))
}

// HasOverlappingDates reports whether the candidate trip's date range overlaps
// any trip in existing. Unscheduled trips never conflict: a candidate with a
// missing bound reports no conflict, and existing trips with a missing bound
// are excluded from the comparison set.
func HasOverlappingDates(candidate Trip, existing []Trip) bool {
	if !candidate.Scheduled() {
		return false
	}
	for _, other := range existing {
		if other.ID == candidate.ID || !other.Scheduled() {
			continue
		}
		if RangesOverlap(*candidate.StartDate, *candidate.EndDate, *other.StartDate, *other.EndDate) {
			return true
		}
	}
	return false
}

// HasOverlappingCurrentTrip reports whether the candidate overlaps a trip
// whose range covers today. The comparison set is restricted to trips with
// start <= today+1 and end >= today; historical and far-future trips are
// ignored. Callers that care about all trips should use HasOverlappingDates.
func HasOverlappingCurrentTrip(candidate Trip, existing []Trip, today time.Time) bool {
	if !candidate.Scheduled() {
		return false
	}
	day := truncateToDay(today)
	var current []Trip
	for _, other := range existing {
		if !other.Scheduled() {
			continue
		}
		if !other.StartDate.After(day.AddDate(0, 0, 1)) && !other.EndDate.Before(day) {
			current = append(current, other)
		}
	}
	return HasOverlappingDates(candidate, current)
}

// CountdownAt returns the list-view countdown label for the trip as of today:
// "D-<n>" where n is the number of days until the start date (floored at 0),
// or "Date not set" when the trip has no start date.
func (t Trip) CountdownAt(today time.Time) string {
	if t.StartDate == nil {
		return StatusDateNotSet
	}
	n := daysBetween(truncateToDay(today), truncateToDay(*t.StartDate))
	if n < 0 {
		n = 0
	}
	return fmt.Sprintf("D-%d", n)
}

// StatusAt returns the detail-view status label for the trip as of today:
//
//	"D-<n>"            start date is in the future
//	"Ongoing"          today falls within [start, end] inclusive
//	"Ended <n> days ago"  end date is in the past
//	"Date not set"     either bound is missing
func (t Trip) StatusAt(today time.Time) string {
	if !t.Scheduled() {
		return StatusDateNotSet
	}
	day := truncateToDay(today)
	start := truncateToDay(*t.StartDate)
	end := truncateToDay(*t.EndDate)

	switch {
	case day.Before(start):
		return fmt.Sprintf("D-%d", daysBetween(day, start))
	case day.After(end):
		return fmt.Sprintf("Ended %d days ago", daysBetween(end, day))
	default:
		return StatusOngoing
	}
}

// daysBetween returns the number of whole days from a to b.
// Both arguments must already be truncated to UTC midnight.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}

// truncateToDay drops the time-of-day component, keeping the UTC calendar date.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
