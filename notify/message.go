package notify

import (
	"fmt"
	"strings"
	"time"

	transitpings "github.com/theoremus-urban-solutions/transit-pings"
	"github.com/theoremus-urban-solutions/transit-pings/decision"
)

// Messenger formats and delivers the engine's output batches. It satisfies
// the orchestrator's Notifier interface.
type Messenger struct {
	sender *Telegram
	calc   *decision.Calculator
}

// NewMessenger pairs a Telegram sender with the calculator used for local
// time formatting.
func NewMessenger(sender *Telegram, calc *decision.Calculator) *Messenger {
	return &Messenger{sender: sender, calc: calc}
}

// SendDepartureAlert composes the alert batch into a single message and
// delivers it.
func (m *Messenger) SendDepartureAlert(alerts []transitpings.Alert, now time.Time) error {
	if len(alerts) == 0 {
		return nil
	}
	return m.sender.SendMessage(DepartureAlertMessage(alerts, m.calc, now))
}

// SendDelayAlert delivers one delay follow-up.
func (m *Messenger) SendDelayAlert(update transitpings.DelayUpdate, now time.Time) error {
	return m.sender.SendMessage(DelayAlertMessage(update, m.calc, now))
}

// DepartureAlertMessage renders the batched "head out" message. Pure, so
// the shape is testable without HTTP.
func DepartureAlertMessage(alerts []transitpings.Alert, calc *decision.Calculator, now time.Time) string {
	var b strings.Builder
	b.WriteString("🚌 *Time to head out!*\n\n")

	for _, a := range alerts {
		route := a.Observation.RouteShortName
		if route == "" {
			route = a.Observation.RouteID
		}
		fmt.Fprintf(&b, "*%s* to %s\n", route, a.Observation.Description)
		fmt.Fprintf(&b, "🚏 Departs: %s (in %d min)\n",
			calc.FormatLocal(a.DepartureTime), calc.MinutesUntil(a.DepartureTime, now))
		fmt.Fprintf(&b, "🚶 Leave by: %s (in %d min)\n\n",
			calc.FormatLocal(a.LeaveTime), calc.MinutesUntil(a.LeaveTime, now))
	}

	return strings.TrimRight(b.String(), "\n")
}

// DelayAlertMessage renders one delay follow-up, including the recomputed
// leave time for the new prediction.
func DelayAlertMessage(u transitpings.DelayUpdate, calc *decision.Calculator, now time.Time) string {
	newLeave := calc.LeaveTime(u.NewTime)

	return fmt.Sprintf(`⚠️ *Bus Update - %s Delayed*

Original: %s
Now: %s (+%d min delay)

🚶 New leave time: %s (in %d min)`,
		u.Route,
		calc.FormatLocal(u.OriginalTime),
		calc.FormatLocal(u.NewTime),
		u.DelayMinutes,
		calc.FormatLocal(newLeave),
		calc.MinutesUntil(newLeave, now))
}
