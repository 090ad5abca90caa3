package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRingCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "ring",
		Short: "Send the \"intercom just rang\" notification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFromConfig(v)
			if err != nil {
				return err
			}
			if err := client.Ring(cmd.Context()); err != nil {
				return fmt.Errorf("ring failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Notification sent")
			return nil
		},
	}
}

func newPingCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Bump the notifier's ping counter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFromConfig(v)
			if err != nil {
				return err
			}
			if err := client.Ping(cmd.Context()); err != nil {
				return fmt.Errorf("ping failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Ping recorded")
			return nil
		},
	}
}
