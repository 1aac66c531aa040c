package trace

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/kelseymh/tracefit"
)

// ErrInvalidInput marks a malformed event file or an out-of-range
// event/channel request. Use errors.Is to check.
var ErrInvalidInput = errors.New("trace: invalid input")

// Scalars carries the sensor-specific metadata stored alongside a trace.
type Scalars struct {
	I0      float64 // TES baseline current, microampere
	PhononE float64 // TES total phonon energy, eV
	Charge  float64 // FET total collected charge, electrons
}

// File mirrors the on-disk event file layout.
type File struct {
	Detector string  `json:"detector"`
	Events   []Event `json:"events"`
}

// Event is one simulated detector event: a bin axis shared by all of
// its channels.
type Event struct {
	Bins     []float64 `json:"bins"`
	Channels []Channel `json:"channels"`
}

// Channel is one readout channel's trace and scalar metadata.
type Channel struct {
	Sensor  tracefit.Sensor `json:"sensor"`
	Trace   []float64       `json:"trace"`
	I0      float64         `json:"i0,omitempty"`
	PhononE float64         `json:"phonon_energy,omitempty"`
	Charge  float64         `json:"charge,omitempty"`
}

// ReadTrace loads one channel's trace from an event file. The sensor
// argument must match the channel's recorded sensor kind; a mismatch,
// a missing file, or an out-of-range event or channel index is a
// descriptive error, never a silent default.
func ReadTrace(path string, event, channel int, sensor tracefit.Sensor) (bins, trc []float64, sc Scalars, err error) {
	f, err := ReadFile(path)
	if err != nil {
		return nil, nil, Scalars{}, err
	}

	if event < 0 || event >= len(f.Events) {
		return nil, nil, Scalars{}, fmt.Errorf("%w: event %d out of range [0, %d) in %s",
			ErrInvalidInput, event, len(f.Events), path)
	}
	ev := f.Events[event]

	if channel < 0 || channel >= len(ev.Channels) {
		return nil, nil, Scalars{}, fmt.Errorf("%w: channel %d out of range [0, %d) in event %d",
			ErrInvalidInput, channel, len(ev.Channels), event)
	}
	ch := ev.Channels[channel]

	if ch.Sensor != sensor {
		return nil, nil, Scalars{}, fmt.Errorf("%w: event %d channel %d is %s, not %s",
			ErrInvalidInput, event, channel, ch.Sensor, sensor)
	}
	if len(ch.Trace) != len(ev.Bins) {
		return nil, nil, Scalars{}, fmt.Errorf("%w: event %d channel %d: %d samples for %d bins",
			ErrInvalidInput, event, channel, len(ch.Trace), len(ev.Bins))
	}

	return ev.Bins, ch.Trace, Scalars{I0: ch.I0, PhononE: ch.PhononE, Charge: ch.Charge}, nil
}

// ReadFile parses a whole event file.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidInput, path, err)
	}
	return &f, nil
}
