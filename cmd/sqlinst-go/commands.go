package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sqlinst/sqlinst-go/pkg/sqlinst"
)

func init() {
	stopCmd.Flags().BoolVar(&stopKill, "kill", false, "terminate the instance process instead of a clean shutdown")
	stopCmd.Flags().BoolVar(&stopNoWait, "no-wait", false, "do not wait for the shutdown to complete")
	stopCmd.Flags().DurationVar(&stopTimeout, "timeout", 0, "native-side wait budget, rounded up to whole seconds (0 = fire and forget)")
	shareCmd.Flags().StringVar(&shareOwner, "owner", "", "owner SID (default: current user)")

	rootCmd.AddCommand(
		versionsCmd,
		instancesCmd,
		infoCmd,
		createCmd,
		deleteCmd,
		startCmd,
		stopCmd,
		shareCmd,
		unshareCmd,
		traceCmd,
	)
}

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List installed native API versions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		versions, err := api.Versions()
		if err != nil {
			return err
		}
		for _, v := range versions {
			fmt.Println(v)
		}
		return nil
	},
}

var instancesCmd = &cobra.Command{
	Use:   "instances",
	Short: "List instances visible to the current user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := api.InstanceNames()
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	},
}

var infoCmd = &cobra.Command{
	Use:   "info <instance>",
	Short: "Show the info record of an instance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := api.InstanceInfo(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Name:       %s\n", info.Name)
		fmt.Printf("Exists:     %v\n", info.Exists)
		fmt.Printf("Running:    %v\n", info.Running)
		fmt.Printf("Version:    %s\n", info.Version)
		if !info.LastStart.IsZero() {
			fmt.Printf("LastStart:  %s\n", info.LastStart.Format(time.RFC3339))
		}
		if info.Connection != "" {
			fmt.Printf("Connection: %s\n", info.Connection)
		}
		if info.Shared {
			fmt.Printf("SharedName: %s\n", info.SharedName)
		}
		return nil
	},
}

var createCmd = &cobra.Command{
	Use:   "create <version> <instance>",
	Short: "Create a named instance of a version",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return api.CreateInstance(args[0], args[1])
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <instance>",
	Short: "Delete a named instance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return api.DeleteInstance(args[0])
	},
}

var startCmd = &cobra.Command{
	Use:   "start <instance>",
	Short: "Start an instance and print its connection endpoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := api.StartInstance(args[0])
		if err != nil {
			return err
		}
		fmt.Println(conn)
		return nil
	},
}

var (
	stopKill    bool
	stopNoWait  bool
	stopTimeout time.Duration
)

var stopCmd = &cobra.Command{
	Use:   "stop <instance>",
	Short: "Stop a running instance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return api.StopInstance(args[0], sqlinst.StopOptions{
			KillProcess: stopKill,
			NoWait:      stopNoWait,
			Timeout:     stopTimeout,
		})
	},
}

var shareOwner string

var shareCmd = &cobra.Command{
	Use:   "share <instance> <shared-name>",
	Short: "Share an instance under a public name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return api.ShareInstance(shareOwner, args[0], args[1])
	},
}

var unshareCmd = &cobra.Command{
	Use:   "unshare <instance>",
	Short: "Remove the shared name of an instance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return api.UnshareInstance(args[0])
	},
}

var traceCmd = &cobra.Command{
	Use:       "trace {on|off}",
	Short:     "Toggle native API call tracing for the current user",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] == "on" {
			return api.StartTracing()
		}
		return api.StopTracing()
	},
}
