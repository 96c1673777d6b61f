package smc

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// MagSafeLedState is the state of the MagSafe LED.
type MagSafeLedState uint8

// Representation of MagSafeLedState.
const (
	LEDSystem        MagSafeLedState = 0x00
	LEDOff           MagSafeLedState = 0x01
	LEDGreen         MagSafeLedState = 0x03
	LEDOrange        MagSafeLedState = 0x04
	LEDErrorOnce     MagSafeLedState = 0x05
	LEDErrorPermSlow MagSafeLedState = 0x06
	LEDErrorPermFast MagSafeLedState = 0x07
	LEDErrorPermOff  MagSafeLedState = 0x19
)

func (s MagSafeLedState) String() string {
	switch s {
	case LEDSystem:
		return "system"
	case LEDOff:
		return "off"
	case LEDGreen:
		return "green"
	case LEDOrange:
		return "orange"
	case LEDErrorOnce:
		return "error-once"
	case LEDErrorPermSlow:
		return "error-perm-slow"
	case LEDErrorPermFast:
		return "error-perm-fast"
	case LEDErrorPermOff:
		return "error-perm-off"
	}
	return fmt.Sprintf("unknown(0x%02x)", uint8(s))
}

// ParseMagSafeLedState parses the string form produced by String.
func ParseMagSafeLedState(s string) (MagSafeLedState, error) {
	for _, state := range []MagSafeLedState{
		LEDSystem, LEDOff, LEDGreen, LEDOrange,
		LEDErrorOnce, LEDErrorPermSlow, LEDErrorPermFast, LEDErrorPermOff,
	} {
		if state.String() == s {
			return state, nil
		}
	}
	return LEDSystem, fmt.Errorf("unknown magsafe led state %q", s)
}

// decodeLedState maps a raw ACLC byte to a MagSafeLedState. The
// controller reports 2 for green on some firmwares.
func decodeLedState(raw byte) (MagSafeLedState, error) {
	switch state := MagSafeLedState(raw); state {
	case LEDSystem, LEDOff, LEDGreen, LEDOrange,
		LEDErrorOnce, LEDErrorPermSlow, LEDErrorPermFast, LEDErrorPermOff:
		return state, nil
	case 0x02:
		return LEDGreen, nil
	}
	return 0, pkgerrors.Wrapf(ErrUnrecognizedLedState, "raw byte 0x%02x", raw)
}

// SetMagSafeLedState writes the requested state and reads the register
// back. The returned state is what the controller actually holds, which
// may differ from the request if the controller coerced it; callers
// must treat the return value as ground truth.
func (c *Conn) SetMagSafeLedState(state MagSafeLedState) (MagSafeLedState, error) {
	logrus.Tracef("SetMagSafeLedState(%v) called", state)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureOpenLocked(); err != nil {
		c.diag.Report("failed to open smc connection", err)
	}

	if err := c.writeLocked(MagSafeLedKey, []byte{byte(state)}); err != nil {
		return 0, pkgerrors.Wrapf(err, "failed to write %s", MagSafeLedKey)
	}

	v, err := c.readLocked(MagSafeLedKey)
	if err != nil {
		return 0, pkgerrors.Wrapf(err, "failed to read back %s", MagSafeLedKey)
	}

	applied, err := decodeLedState(byteAt(v.Bytes))
	if err != nil {
		return 0, err
	}

	logrus.Tracef("SetMagSafeLedState applied %v", applied)

	return applied, nil
}

// GetMagSafeLedState reads the current LED state.
func (c *Conn) GetMagSafeLedState() (MagSafeLedState, error) {
	logrus.Tracef("GetMagSafeLedState called")

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureOpenLocked(); err != nil {
		c.diag.Report("failed to open smc connection", err)
	}

	v, err := c.readLocked(MagSafeLedKey)
	if err != nil {
		return 0, pkgerrors.Wrapf(err, "failed to read %s", MagSafeLedKey)
	}

	return decodeLedState(byteAt(v.Bytes))
}

// CheckMagSafeExistence .
func (c *Conn) CheckMagSafeExistence() bool {
	_, err := c.Read(MagSafeLedKey)
	return err == nil
}

// SetMagSafeCharging sets the LED to orange while charging is in
// progress and green otherwise.
func (c *Conn) SetMagSafeCharging(charging bool) error {
	state := LEDGreen
	if charging {
		state = LEDOrange
	}
	_, err := c.SetMagSafeLedState(state)
	return err
}
