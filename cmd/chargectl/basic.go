package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/chargectl/chargectl/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)
		},
	}
}

func NewModeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "mode [auto|force-discharge|inhibit|system-charge-limit]",
		Short:   "Set the charging mode",
		GroupID: gBasic,
		Long: `Set the charging mode.

- auto: let the charge controller manage charging on its own (default).
- force-discharge: drain the battery even when plugged in.
- inhibit: pause charging without cutting power from the wall.
- system-charge-limit: let the firmware cap the charge level.`,
		ValidArgs: []string{"auto", "force-discharge", "inhibit", "system-charge-limit"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(_ *cobra.Command, args []string) error {
			mode := args[0]

			ret, err := apiClient.SetChargingMode(mode)
			if err != nil {
				return fmt.Errorf("failed to set charging mode: %v", err)
			}

			if ret != "" {
				logrus.Infof("daemon responded: %s", ret)
			}

			logrus.Infof("successfully set charging mode to %s", mode)

			return nil
		},
	}
}

func NewPowerCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "power",
		Short:   "Show battery, external, and total system power",
		GroupID: gBasic,
		RunE: func(cmd *cobra.Command, _ []string) error {
			power, err := apiClient.GetPowerDistribution()
			if err != nil {
				return fmt.Errorf("failed to get power distribution: %v", err)
			}

			cmd.Println(bold("Power distribution:"))
			cmd.Printf("  Battery power:  %s\n", bold("%.2f W", power.BatteryPower))
			cmd.Printf("  External power: %s\n", bold("%.2f W", power.ExternalPower))
			cmd.Printf("  System power:   %s\n", bold("%.2f W", power.SystemPower))

			return nil
		},
	}
}

func NewLedCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "led [state]",
		Short:   "Get or set the MagSafe LED state",
		GroupID: gAdvanced,
		Long: `Get or set the MagSafe LED state.

Without arguments, prints the current LED state. With one argument, sets
the LED to one of: system, off, green, orange, error-once,
error-perm-slow, error-perm-fast, error-perm-off.

The controller may coerce the requested state; the state it actually
holds is printed after setting.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				state, err := apiClient.GetMagSafeLed()
				if err != nil {
					return fmt.Errorf("failed to get magsafe led: %v", err)
				}
				cmd.Println(state)
				return nil
			}

			applied, err := apiClient.SetMagSafeLed(args[0])
			if err != nil {
				return fmt.Errorf("failed to set magsafe led: %v", err)
			}

			logrus.Infof("magsafe led is now %s", applied)

			return nil
		},
	}
}

func NewSetControlMagSafeLEDCommand() *cobra.Command {
	return newEnableDisableCommand(
		"magsafe-led",
		"Control MagSafe LED according to charging status",
		`This option can make the MagSafe LED on your MacBook change color according to the charging status:

- Orange: charging is permitted.
- Green: charging is inhibited or the battery is discharging.

Note that you must have a MagSafe LED on your MacBook to use this feature.`,
		func() (string, error) { return apiClient.SetControlMagSafeLED(true) },
		func() (string, error) { return apiClient.SetControlMagSafeLED(false) },
	)
}
