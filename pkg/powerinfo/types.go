package powerinfo

// BatteryState represents the charging state of the battery.
type BatteryState int

const (
	// Discharging indicates the battery is discharging.
	Discharging BatteryState = iota
	// Charging indicates the battery is charging.
	Charging
	// Full indicates the battery is full.
	Full
)

// Battery is a minimal battery info structure containing the fields
// used by the chargectl client and CLI.
// Units:
// - Design: mWh
// - ChargeRate: mW (may be negative when discharging)
// - DesignVoltage: Volts
type Battery struct {
	State         BatteryState `json:"State"`
	Design        int          `json:"Design"`
	ChargeRate    int          `json:"ChargeRate"`
	DesignVoltage float64      `json:"DesignVoltage"`
}
