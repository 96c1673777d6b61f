package smc

import (
	"testing"
)

func TestChargingStatusInhibitTieBreak(t *testing.T) {
	tests := []struct {
		name string
		c, b byte
		want bool
	}{
		{name: "both 2", c: 0x2, b: 0x2, want: true},
		{name: "both 3", c: 0x3, b: 0x3, want: true},
		{name: "mixed 2 3", c: 0x2, b: 0x3, want: false},
		{name: "mixed 3 2", c: 0x3, b: 0x2, want: false},
		{name: "both 0", c: 0x0, b: 0x0, want: false},
		{name: "only C set", c: 0x2, b: 0x0, want: false},
		{name: "only B set", c: 0x0, b: 0x2, want: false},
		{name: "both 1", c: 0x1, b: 0x1, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := newScriptedConn()
			conn.values[DisableChargingKey] = []byte{0x0}
			conn.values[InhibitChargingCKey] = []byte{tt.c}
			conn.values[InhibitChargingBKey] = []byte{tt.b}
			conn.values[LidClosedKey] = []byte{0x0}

			c := NewWithConnection(conn)

			status, err := c.ChargingStatus()
			if err != nil {
				t.Fatalf("ChargingStatus returned error: %v", err)
			}
			if status.InhibitCharging != tt.want {
				t.Errorf("InhibitCharging = %t for pair (%#x, %#x), want %t", status.InhibitCharging, tt.c, tt.b, tt.want)
			}
		})
	}
}

func TestChargingStatusDecode(t *testing.T) {
	conn := newScriptedConn()
	conn.values[DisableChargingKey] = []byte{0x1}
	conn.values[InhibitChargingCKey] = []byte{0x0}
	conn.values[InhibitChargingBKey] = []byte{0x0}
	conn.values[LidClosedKey] = []byte{0x1}

	c := NewWithConnection(conn)

	status, err := c.ChargingStatus()
	if err != nil {
		t.Fatalf("ChargingStatus returned error: %v", err)
	}

	if !status.ForceDischarging {
		t.Error("ForceDischarging = false, want true")
	}
	if !status.LidClosed {
		t.Error("LidClosed = false, want true")
	}
	if status.InhibitCharging {
		t.Error("InhibitCharging = true, want false")
	}
}

func TestChargingStatusEmptyPayloads(t *testing.T) {
	// Registers that report empty payloads decode to safe defaults.
	conn := newScriptedConn()

	c := NewWithConnection(conn)

	status, err := c.ChargingStatus()
	if err != nil {
		t.Fatalf("ChargingStatus returned error: %v", err)
	}

	if status.ForceDischarging || status.InhibitCharging || status.LidClosed {
		t.Errorf("empty payloads decoded to %+v, want all false", status)
	}
}
