package smc

import (
	"math"

	pkgerrors "github.com/pkg/errors"

	"github.com/chargectl/chargectl/pkg/types"
)

// noiseFloor is the wattage below which readings are treated as sensor
// noise around zero.
const noiseFloor = 0.01

// PowerDistribution reads the battery and external power registers and
// derives total system power. Readings within the noise floor are
// clamped to exactly zero before summing.
func (c *Conn) PowerDistribution() (types.PowerDistribution, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureOpenLocked(); err != nil {
		c.diag.Report("failed to open smc connection", err)
	}

	battery, err := c.readLocked(BatteryPowerKey)
	if err != nil {
		return types.PowerDistribution{}, pkgerrors.Wrap(err, "failed to read battery power")
	}
	external, err := c.readLocked(ExternalPowerKey)
	if err != nil {
		return types.PowerDistribution{}, pkgerrors.Wrap(err, "failed to read external power")
	}

	pBattery := decodeFloat(battery.Bytes)
	pExternal := decodeFloat(external.Bytes)

	if math.Abs(pBattery) < noiseFloor {
		pBattery = 0
	}
	// Not an absolute compare: external power is never meaningfully
	// negative, so anything below the floor clamps.
	if pExternal < noiseFloor {
		pExternal = 0
	}

	return types.PowerDistribution{
		BatteryPower:  pBattery,
		ExternalPower: pExternal,
		SystemPower:   pBattery + pExternal,
	}, nil
}
