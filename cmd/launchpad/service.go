package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pandeptwidyaop/launchpad/internal/service"
)

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage the host as a systemd user service",
}

var serviceInstallCmd = &cobra.Command{
	Use:   "install",
	Short: `Install and start "launchpad serve" as a user unit`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := service.DefaultConfig(configPath)
		if err != nil {
			return err
		}
		if err := service.Install(cfg); err != nil {
			return err
		}
		path, _ := service.UnitPath()
		fmt.Printf("Installed %s\n", path)
		return nil
	},
}

var serviceUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Stop and remove the user unit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := service.Uninstall(); err != nil {
			return err
		}
		fmt.Println("Service removed")
		return nil
	},
}

var serviceStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the user unit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := service.GetStatus()
		if err != nil {
			return err
		}
		fmt.Printf("Installed: %t\n", status.IsInstalled)
		fmt.Printf("Enabled:   %t\n", status.IsEnabled)
		fmt.Printf("State:     %s (%s)\n", status.ActiveState, status.SubState)
		return nil
	},
}

func init() {
	serviceCmd.AddCommand(serviceInstallCmd)
	serviceCmd.AddCommand(serviceUninstallCmd)
	serviceCmd.AddCommand(serviceStatusCmd)
}
