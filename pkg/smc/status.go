package smc

import (
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/chargectl/chargectl/pkg/types"
)

// ChargingStatus reads the charging-related registers and decodes them
// into a snapshot. The snapshot is rebuilt on every call; nothing is
// cached.
//
// inhibitCharging is reported only when CH0C and CH0B agree on one of
// the two known inhibited encodings, (2,2) or (3,3). Mixed pairs such
// as (2,3) decode to false: a transient partial write must not read as
// inhibited.
func (c *Conn) ChargingStatus() (types.ChargingStatus, error) {
	logrus.Tracef("ChargingStatus called")

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureOpenLocked(); err != nil {
		c.diag.Report("failed to open smc connection", err)
	}

	disable, err := c.readLocked(DisableChargingKey)
	if err != nil {
		return types.ChargingStatus{}, pkgerrors.Wrapf(err, "failed to read %s", DisableChargingKey)
	}
	inhibitC, err := c.readLocked(InhibitChargingCKey)
	if err != nil {
		return types.ChargingStatus{}, pkgerrors.Wrapf(err, "failed to read %s", InhibitChargingCKey)
	}
	inhibitB, err := c.readLocked(InhibitChargingBKey)
	if err != nil {
		return types.ChargingStatus{}, pkgerrors.Wrapf(err, "failed to read %s", InhibitChargingBKey)
	}
	lid, err := c.readLocked(LidClosedKey)
	if err != nil {
		return types.ChargingStatus{}, pkgerrors.Wrapf(err, "failed to read %s", LidClosedKey)
	}

	bc := byteAt(inhibitC.Bytes)
	bb := byteAt(inhibitB.Bytes)

	status := types.ChargingStatus{
		ForceDischarging: byteAt(disable.Bytes) == 0x1,
		InhibitCharging:  (bc == 0x2 && bb == 0x2) || (bc == 0x3 && bb == 0x3),
		LidClosed:        byteAt(lid.Bytes) == 0x1,
	}

	logrus.WithFields(logrus.Fields{
		"forceDischarging": status.ForceDischarging,
		"inhibitCharging":  status.InhibitCharging,
		"lidClosed":        status.LidClosed,
	}).Trace("ChargingStatus decoded")

	return status, nil
}
