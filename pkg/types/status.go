package types

// ChargingStatus is a point-in-time decode of the charging registers.
// This struct is shared between the daemon and client packages.
type ChargingStatus struct {
	ForceDischarging bool `json:"force_discharging"`
	InhibitCharging  bool `json:"inhibit_charging"`
	LidClosed        bool `json:"lid_closed"`
}
