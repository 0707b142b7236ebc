package domain

import "time"

// DoseSnapshot captures the (time, amount) pair of a slot at the moment an
// outcome was recorded, so later edits to the treatment cannot rewrite
// history.
type DoseSnapshot struct {
	Time   DayTime `json:"time"`
	Amount float64 `json:"amount"`
}

// HistoryEntry is one recorded dose outcome. Entries are immutable once
// created; the only store-level mutation is removal. Name, Unit and Color
// are snapshots decoupled from the live treatment.
type HistoryEntry struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Unit       string       `json:"unit"`
	Color      string       `json:"color"`
	Outcome    Outcome      `json:"outcome"`
	Dose       DoseSnapshot `json:"dose"`
	RecordedAt time.Time    `json:"recordedAt"`
}

// DoseInstance is one due slot on the current date, produced by the today
// projection. Instances are ephemeral: never persisted, recomputed from
// scratch on every store change.
type DoseInstance struct {
	Name  string
	Unit  string
	Color string
	Dose  DoseSnapshot
}

// Section returns the part of day the instance belongs to.
func (d DoseInstance) Section() DaySection {
	return d.Dose.Time.Section()
}
