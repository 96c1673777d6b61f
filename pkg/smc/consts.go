package smc

// SMC keys used for charging control and telemetry.
const (
	DisableChargingKey   = "CH0I"
	InhibitChargingBKey  = "CH0B"
	InhibitChargingCKey  = "CH0C"
	SystemChargeLimitKey = "CHWA"
	LidClosedKey         = "MSLD"
	BatteryPowerKey      = "PPBR"
	ExternalPowerKey     = "PDTR"
	MagSafeLedKey        = "ACLC"
)

var allKeys = []string{
	DisableChargingKey,
	InhibitChargingBKey,
	InhibitChargingCKey,
	SystemChargeLimitKey,
	LidClosedKey,
	BatteryPowerKey,
	ExternalPowerKey,
	MagSafeLedKey,
}
