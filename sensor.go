package tracefit

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// Sensor identifies the detector readout family of a trace. It selects
// which shape model, guess heuristic, fitting window, and bounds
// policy apply, and is fixed for the duration of one fit.
type Sensor int

const (
	TES Sensor = iota + 1 // Transition-edge sensor: fast-rise, slow-fall current pulse.
	FET                   // Field-effect transistor readout: decay/recovery voltage pulse.
)

var (
	sensorNames = [...]string{TES: "TES", FET: "FET"}
	sensorByName = map[string]Sensor{
		"TES": TES,
		"FET": FET,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Sensor(0)
	_ json.Marshaler           = Sensor(0)
	_ json.Unmarshaler         = (*Sensor)(nil)
	_ encoding.TextMarshaler   = Sensor(0)
	_ encoding.TextUnmarshaler = (*Sensor)(nil)
)

// ParseSensor converts a sensor type name ("TES" or "FET") to a Sensor.
func ParseSensor(name string) (Sensor, error) {
	s, ok := sensorByName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSensor, name)
	}
	return s, nil
}

// String returns the name of the sensor kind ("TES", "FET").
// For invalid values it returns "Sensor(n)".
func (s Sensor) String() string {
	if s.IsValid() {
		return sensorNames[s]
	}
	return fmt.Sprintf("Sensor(%d)", int(s))
}

// IsValid reports whether s is a known sensor kind.
func (s Sensor) IsValid() bool {
	return s == TES || s == FET
}

// MarshalText implements encoding.TextMarshaler.
func (s Sensor) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSensor, int(s))
	}
	return []byte(sensorNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Sensor) UnmarshalText(text []byte) error {
	v, err := ParseSensor(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalJSON implements json.Marshaler. Sensor serializes as a JSON string.
func (s Sensor) MarshalJSON() ([]byte, error) {
	text, err := s.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (s *Sensor) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSensor, data)
	}
	return s.UnmarshalText([]byte(str))
}

// profile bundles the sensor-specific fitting behavior: shape model,
// guess heuristic, window heuristic, and whether the bounds policy is
// applied to the guess. Resolved once per fit invocation instead of
// re-dispatched per call.
type profile struct {
	model       Model
	guess       func(bins, trace []float64) (Params, error)
	window      func(trace []float64, cfg *Config) (Window, error)
	applyBounds bool
}

// profile returns the behavior bundle for the sensor kind.
// The caller must have checked IsValid.
func (s Sensor) profile() profile {
	switch s {
	case TES:
		return profile{
			model:       tesModel,
			guess:       guessTES,
			window:      windowTES,
			applyBounds: true,
		}
	default:
		// FET fits run unconstrained; the bounds derived from the FET
		// guess are too tight when the recovery rate is guessed as zero.
		return profile{
			model:       fetModel,
			guess:       guessFET,
			window:      windowFET,
			applyBounds: false,
		}
	}
}
