package domain

import "errors"

// Validation errors surfaced at the point of edit. They always block the
// mutating operation and never corrupt stored state.
var (
	// ErrEmptyName indicates a treatment with a blank name.
	ErrEmptyName = errors.New("treatment name is empty")

	// ErrDuplicateName indicates a treatment name already in use
	// (compared case-insensitively).
	ErrDuplicateName = errors.New("treatment name already exists")

	// ErrInvalidFrequency indicates an unrecognized recurrence tag.
	ErrInvalidFrequency = errors.New("invalid frequency")

	// ErrNoSlots indicates a scheduled treatment without dose times.
	ErrNoSlots = errors.New("treatment has no dosage slots")

	// ErrDuplicateSlot indicates two dosage slots sharing a time-of-day.
	ErrDuplicateSlot = errors.New("duplicate dose time")

	// ErrNoWeekdays indicates a specific-days treatment with an empty
	// weekday set.
	ErrNoWeekdays = errors.New("no weekdays selected")

	// ErrInvalidCycle indicates a cycle plan with a non-positive phase.
	ErrInvalidCycle = errors.New("invalid cycle lengths")
)
