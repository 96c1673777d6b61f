package types

// PowerDistribution holds the power readings decoded from the SMC.
// SystemPower is always the sum of the clamped battery and external
// readings.
type PowerDistribution struct {
	BatteryPower  float64 `json:"battery_power"`
	ExternalPower float64 `json:"external_power"`
	SystemPower   float64 `json:"system_power"`
}
