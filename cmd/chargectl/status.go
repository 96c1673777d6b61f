package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/chargectl/chargectl/pkg/client"
	"github.com/chargectl/chargectl/pkg/config"
	"github.com/chargectl/chargectl/pkg/powerinfo"
	"github.com/chargectl/chargectl/pkg/types"
)

type statusData struct {
	charging    *types.ChargingStatus
	power       *types.PowerDistribution
	batteryInfo *powerinfo.Battery
	config      *config.RawFileConfig
}

var apiClient = client.NewClient(unixSocketPath)

// fetchStatusData gathers all data required for the status command from the daemon.
func fetchStatusData() (*statusData, error) {
	charging, err := apiClient.GetChargingStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to get charging status: %w", err)
	}

	power, err := apiClient.GetPowerDistribution()
	if err != nil {
		return nil, fmt.Errorf("failed to get power distribution: %w", err)
	}

	bat, err := apiClient.GetBatteryInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to get battery info: %w", err)
	}

	conf, err := apiClient.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get config: %w", err)
	}

	return &statusData{
		charging:    charging,
		power:       power,
		batteryInfo: bat,
		config:      conf,
	}, nil
}

func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		GroupID: gBasic,
		Short:   "Get the current status of chargectl",
		Long:    `Get charging status, power distribution, battery info, and configuration.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := fetchStatusData()
			if err != nil {
				return err
			}

			conf := config.NewFileFromConfig(data.config, "")

			cmd.Println(bold("Charging status:"))

			if data.charging.ForceDischarging {
				cmd.Println("  Force discharging: " + bool2Text(true))
				cmd.Println("    Your Mac is draining its battery even if it is plugged in.")
			} else if data.charging.InhibitCharging {
				cmd.Println("  Inhibit charging: " + bool2Text(true))
				cmd.Println("    Your Mac will not charge, but will use power from the wall if plugged in.")
			} else {
				cmd.Println("  Charging allowed: " + bool2Text(true))
				cmd.Println("    Your Mac will charge when plugged in.")
			}
			cmd.Println("  Lid closed: " + bool2Text(data.charging.LidClosed))

			cmd.Println()

			cmd.Println(bold("Power:"))
			cmd.Printf("  Battery power:  %s\n", bold("%.2f W", data.power.BatteryPower))
			cmd.Printf("  External power: %s\n", bold("%.2f W", data.power.ExternalPower))
			cmd.Printf("  System power:   %s\n", bold("%.2f W", data.power.SystemPower))

			cmd.Println()

			cmd.Println(bold("Battery status:"))
			switch data.batteryInfo.State {
			case powerinfo.Charging:
				cmd.Printf("  State: charging at %s\n", bold("%d mW", data.batteryInfo.ChargeRate))
			case powerinfo.Discharging:
				cmd.Printf("  State: discharging at %s\n", bold("%d mW", -data.batteryInfo.ChargeRate))
			case powerinfo.Full:
				cmd.Println("  State: full")
			}

			cmd.Println()

			cmd.Println(bold("Configuration:"))
			cmd.Printf("  Default charging mode: %s\n", bold("%s", conf.DefaultChargingMode()))
			cmd.Printf("  Control MagSafe LED: %s\n", bool2Text(conf.ControlMagSafeLED()))
			cmd.Printf("  Allow non-root users to access the daemon: %s\n", bool2Text(conf.AllowNonRootAccess()))

			return nil
		},
	}
}

func bool2Text(b bool) string {
	if b {
		return color.New(color.Bold, color.FgGreen).Sprint("✔")
	}
	return color.New(color.Bold, color.FgRed).Sprint("✘")
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
