package smc

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ChargingMode is a high-level charging intent.
type ChargingMode uint8

const (
	// ModeAuto lets the controller manage charging on its own.
	ModeAuto ChargingMode = iota
	// ModeForceDischarge drains the battery even on external power.
	ModeForceDischarge
	// ModeInhibitCharging pauses charging without disabling the
	// charging circuit.
	ModeInhibitCharging
	// ModeSystemChargeLimit delegates the charge cap to firmware.
	ModeSystemChargeLimit
)

func (m ChargingMode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeForceDischarge:
		return "force-discharge"
	case ModeInhibitCharging:
		return "inhibit"
	case ModeSystemChargeLimit:
		return "system-charge-limit"
	}
	return fmt.Sprintf("unknown(%d)", uint8(m))
}

// ParseChargingMode parses the string form produced by String.
func ParseChargingMode(s string) (ChargingMode, error) {
	switch s {
	case "auto":
		return ModeAuto, nil
	case "force-discharge":
		return ModeForceDischarge, nil
	case "inhibit":
		return ModeInhibitCharging, nil
	case "system-charge-limit":
		return ModeSystemChargeLimit, nil
	}
	return ModeAuto, fmt.Errorf("unknown charging mode %q", s)
}

// writePlan is the set of register bytes a ChargingMode expands to.
// inhibitCharging is written to both CH0B and CH0C.
type writePlan struct {
	disableCharging   byte
	inhibitCharging   byte
	systemChargeLimit byte
}

func planFor(mode ChargingMode) writePlan {
	switch mode {
	case ModeForceDischarge:
		return writePlan{disableCharging: 0x1}
	case ModeInhibitCharging:
		return writePlan{inhibitCharging: 0x2}
	case ModeSystemChargeLimit:
		return writePlan{systemChargeLimit: 0x1}
	}
	return writePlan{}
}

// SetChargingMode expands mode into its register writes and applies
// them in a fixed order. The four registers have no transactional
// guarantee, so on any write failure the whole set is driven back to
// the neutral (auto) values before the original error is returned.
func (c *Conn) SetChargingMode(mode ChargingMode) error {
	logrus.Tracef("SetChargingMode(%s) called", mode)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureOpenLocked(); err != nil {
		// A previous successful open still counts; the writes below
		// surface ErrNotOpen if the link was never open.
		c.diag.Report("failed to open smc connection", err)
	}

	plan := planFor(mode)
	writes := []struct {
		key string
		val byte
	}{
		{DisableChargingKey, plan.disableCharging},
		{InhibitChargingCKey, plan.inhibitCharging},
		{InhibitChargingBKey, plan.inhibitCharging},
		{SystemChargeLimitKey, plan.systemChargeLimit},
	}

	for _, w := range writes {
		if err := c.writeLocked(w.key, []byte{w.val}); err != nil {
			c.diag.Report(fmt.Sprintf("failed to write %s, resetting charging registers", w.key), err)
			c.resetLocked()
			return pkgerrors.Wrapf(err, "failed to set charging mode %s", mode)
		}
	}

	return nil
}

// ResetIfPossible drives all charging registers back to their neutral
// (auto) values. Best-effort: individual write failures are reported
// but never returned.
func (c *Conn) ResetIfPossible() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureOpenLocked(); err != nil {
		c.diag.Report("failed to open smc connection", err)
	}

	c.resetLocked()
}

func (c *Conn) resetLocked() {
	for _, key := range []string{
		DisableChargingKey,
		InhibitChargingCKey,
		InhibitChargingBKey,
		SystemChargeLimitKey,
	} {
		if err := c.writeLocked(key, []byte{0x0}); err != nil {
			c.diag.Report(fmt.Sprintf("failed to reset %s", key), err)
		}
	}
}
