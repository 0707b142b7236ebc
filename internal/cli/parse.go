package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/dosetrack/internal/domain"
)

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday,
	"wed": time.Wednesday, "thu": time.Thursday, "fri": time.Friday,
	"sat": time.Saturday,
}

// parseWeekdays parses "mon,wed,fri" into weekdays, order preserved.
func parseWeekdays(s string) ([]time.Weekday, error) {
	var days []time.Weekday
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if len(part) > 3 {
			part = part[:3]
		}
		d, ok := weekdayNames[part]
		if !ok {
			return nil, fmt.Errorf("invalid weekday %q", part)
		}
		days = append(days, d)
	}
	return days, nil
}

// parseSlot parses "08:00" or "08:00=1.5" into a dosage slot. Amount
// defaults to 1 when omitted.
func parseSlot(s string) (domain.DosageSlot, error) {
	timePart, amountPart, hasAmount := strings.Cut(s, "=")
	at, err := domain.ParseDayTime(strings.TrimSpace(timePart))
	if err != nil {
		return domain.DosageSlot{}, err
	}
	amount := 1.0
	if hasAmount {
		amount, err = strconv.ParseFloat(strings.TrimSpace(amountPart), 64)
		if err != nil || amount <= 0 {
			return domain.DosageSlot{}, fmt.Errorf("invalid dose amount %q", amountPart)
		}
	}
	return domain.DosageSlot{Time: at, Amount: amount}, nil
}

// parseCycle parses "21/7" into (active, inactive) day counts.
func parseCycle(s string) (active, inactive int, err error) {
	onPart, offPart, ok := strings.Cut(s, "/")
	if !ok {
		return 0, 0, fmt.Errorf("cycle must look like ON/OFF, e.g. 21/7, got %q", s)
	}
	active, err = strconv.Atoi(strings.TrimSpace(onPart))
	if err != nil || active < 1 {
		return 0, 0, fmt.Errorf("invalid active day count %q", onPart)
	}
	inactive, err = strconv.Atoi(strings.TrimSpace(offPart))
	if err != nil || inactive < 0 {
		return 0, 0, fmt.Errorf("invalid inactive day count %q", offPart)
	}
	return active, inactive, nil
}

// parseDate parses a YYYY-MM-DD date in the local time zone.
func parseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return d, nil
}
