package graph

import "fmt"

// RateUnit is the time unit reports express totals in. Node rates are always
// stored per second.
type RateUnit int

const (
	PerSecond RateUnit = iota
	PerMinute
	PerHour
)

// Multiplier converts a per-second quantity into this unit.
func (u RateUnit) Multiplier() float64 {
	switch u {
	case PerMinute:
		return 60
	case PerHour:
		return 3600
	default:
		return 1
	}
}

func (u RateUnit) String() string {
	switch u {
	case PerMinute:
		return "min"
	case PerHour:
		return "hour"
	default:
		return "sec"
	}
}

// ParseRateUnit accepts "sec", "min" or "hour".
func ParseRateUnit(s string) (RateUnit, error) {
	switch s {
	case "sec", "":
		return PerSecond, nil
	case "min":
		return PerMinute, nil
	case "hour":
		return PerHour, nil
	}
	return PerSecond, fmt.Errorf("unknown rate unit %q (want sec, min or hour)", s)
}
