package desktop

import "github.com/gen2brain/beeep"

// BeeepSender delivers notifications through the operating system's native
// notification facility.
type BeeepSender struct {
	// Icon is an optional path to the notification icon.
	Icon string
}

func (s BeeepSender) Send(title, message string) error {
	return beeep.Notify(title, message, s.Icon)
}
