package tracefit

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseSensor(t *testing.T) {
	tests := []struct {
		name    string
		want    Sensor
		wantErr bool
	}{
		{"TES", TES, false},
		{"FET", FET, false},
		{"tes", 0, true},
		{"", 0, true},
		{"HEMT", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSensor(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSensor) {
					t.Errorf("ParseSensor(%q) err = %v, want ErrInvalidSensor", tt.name, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseSensor(%q) = (%v, %v), want (%v, nil)", tt.name, got, err, tt.want)
			}
		})
	}
}

func TestSensorString(t *testing.T) {
	if got := TES.String(); got != "TES" {
		t.Errorf("TES.String() = %q", got)
	}
	if got := FET.String(); got != "FET" {
		t.Errorf("FET.String() = %q", got)
	}
	if got := Sensor(3).String(); got != "Sensor(3)" {
		t.Errorf("Sensor(3).String() = %q", got)
	}
}

func TestSensorIsValid(t *testing.T) {
	if !TES.IsValid() || !FET.IsValid() {
		t.Error("TES/FET should be valid")
	}
	if Sensor(0).IsValid() || Sensor(3).IsValid() {
		t.Error("out-of-range sensor should be invalid")
	}
}

func TestSensorJSONRoundTrip(t *testing.T) {
	for _, s := range []Sensor{TES, FET} {
		data, err := json.Marshal(s)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", s, err)
		}
		var got Sensor
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("Unmarshal(%s): %v", data, err)
		}
		if got != s {
			t.Errorf("round trip: got %v, want %v", got, s)
		}
	}
}

func TestSensorMarshalInvalid(t *testing.T) {
	if _, err := json.Marshal(Sensor(9)); err == nil {
		t.Error("Marshal of invalid sensor should fail")
	}
}

func TestSensorUnmarshalInvalid(t *testing.T) {
	var s Sensor
	if err := json.Unmarshal([]byte(`"PMT"`), &s); !errors.Is(err, ErrInvalidSensor) {
		t.Errorf("Unmarshal unknown name: err = %v, want ErrInvalidSensor", err)
	}
	if err := json.Unmarshal([]byte(`7`), &s); !errors.Is(err, ErrInvalidSensor) {
		t.Errorf("Unmarshal number: err = %v, want ErrInvalidSensor", err)
	}
}

func TestSensorProfile(t *testing.T) {
	if p := TES.profile(); !p.applyBounds {
		t.Error("TES profile should apply bounds")
	}
	if p := FET.profile(); p.applyBounds {
		t.Error("FET profile should not apply bounds")
	}
}
