package schedule

import "github.com/gen2brain/beeep"

// BeeepSink delivers notifications through the desktop notification
// daemon via beeep. High-priority events use the alert variant, which
// also plays the system sound where the platform supports it.
type BeeepSink struct{}

func (BeeepSink) Notify(_, title, body string, priority Priority) error {
	if priority == PriorityHigh {
		return beeep.Alert(title, body, "")
	}
	return beeep.Notify(title, body, "")
}
