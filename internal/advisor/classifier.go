// Package advisor turns weather observations into clothing recommendations.
//
// The engine is a pure function of its input: [Generate] classifies the
// temperature, applies the temperature, precipitation and wind rule tables,
// de-duplicates and orders the candidates by priority, enforces the 3–5 item
// bound and renders a one-line summary. It performs no I/O and holds no
// shared state, so it is safe for concurrent use.
package advisor

import "github.com/clothingadvisor/backend/internal/domain"

// Temperature band upper bounds in Fahrenheit. Each bound belongs to the next band.
const (
	FreezingBelowF = 32.0
	CoolBelowF     = 50.0
	ModerateBelowF = 70.0
	WarmBelowF     = 85.0
)

// Classify maps a Fahrenheit temperature to its band.
func Classify(tempF float64) domain.TemperatureCategory {
	switch {
	case tempF < FreezingBelowF:
		return domain.TempWinter
	case tempF < CoolBelowF:
		return domain.TempCool
	case tempF < ModerateBelowF:
		return domain.TempModerate
	case tempF < WarmBelowF:
		return domain.TempWarm
	default:
		return domain.TempHot
	}
}
