package daemon

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chargectl/chargectl/pkg/types"
)

// ledSyncLoop periodically drives the MagSafe LED from the decoded
// charging status: green while charging is paused or the battery is
// draining, orange while charging is permitted. Runs until stop is
// closed and does nothing unless controlMagSafeLED is enabled.
func ledSyncLoop(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-time.After(conf.LoopInterval()):
		}

		if !conf.ControlMagSafeLED() {
			continue
		}

		syncLedOnce()
	}
}

func syncLedOnce() bool {
	status, err := smcConn.ChargingStatus()
	if err != nil {
		logrus.Errorf("ChargingStatus failed: %v", err)
		return false
	}

	printLoopStatus(status)

	charging := !status.ForceDischarging && !status.InhibitCharging
	if err := smcConn.SetMagSafeCharging(charging); err != nil {
		logrus.Errorf("SetMagSafeCharging failed: %v", err)
		return false
	}

	return true
}

var lastStatus types.ChargingStatus
var lastPrintTime time.Time

func printLoopStatus(status types.ChargingStatus) {
	fields := logrus.Fields{
		"forceDischarging": status.ForceDischarging,
		"inhibitCharging":  status.InhibitCharging,
		"lidClosed":        status.LidClosed,
	}

	defer func() { lastPrintTime = time.Now() }()

	// Skip printing if the last print was recent and nothing changed.
	if time.Since(lastPrintTime) < conf.LoopInterval()+time.Second && status == lastStatus {
		logrus.WithFields(fields).Trace("led sync loop status")
		return
	}

	logrus.WithFields(fields).Debug("led sync loop status")

	lastStatus = status
}
