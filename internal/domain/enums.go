package domain

type Frequency string

const (
	FreqDaily        Frequency = "daily"
	FreqSpecificDays Frequency = "specific-days"
	FreqCycle        Frequency = "cycle"
	FreqWhenNeeded   Frequency = "when-needed"
)

// ValidFrequencies is the canonical set of accepted frequency strings.
var ValidFrequencies = map[string]bool{
	"daily": true, "specific-days": true, "cycle": true, "when-needed": true,
}

func (f Frequency) IsValid() bool {
	return ValidFrequencies[string(f)]
}

type Outcome string

const (
	OutcomeTaken   Outcome = "taken"
	OutcomeSkipped Outcome = "skipped"
	OutcomeMissed  Outcome = "missed"
)

func (o Outcome) IsValid() bool {
	switch o {
	case OutcomeTaken, OutcomeSkipped, OutcomeMissed:
		return true
	default:
		return false
	}
}

// DaySection buckets a dose time into the part of day used for grouping
// the due list.
type DaySection string

const (
	SectionMorning   DaySection = "morning"
	SectionAfternoon DaySection = "afternoon"
	SectionEvening   DaySection = "evening"
)

// SectionRank returns a sort priority for a day section (morning first).
func SectionRank(s DaySection) int {
	switch s {
	case SectionMorning:
		return 0
	case SectionAfternoon:
		return 1
	default:
		return 2
	}
}
