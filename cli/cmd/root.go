package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"intercom/pkg/clients/intercom"
	"intercom/pkg/middleware"
)

const (
	keyServer   = "server"
	keySecret   = "request_secret"
	keyAuthMode = "auth_mode"

	defaultServer = "http://localhost:8080"
)

// NewRootCmd returns the root command for intercomctl. Flags fall back to
// INTERCOM_SERVER, INTERCOM_REQUEST_SECRET and INTERCOM_AUTH_MODE.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("INTERCOM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:           "intercomctl",
		Short:         "intercomctl — trigger the home intercom notifier",
		Long:          "intercomctl — ring the home intercom notifier or ping it from a doorbell, script or shell.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("server", defaultServer, "notifier base URL (env INTERCOM_SERVER)")
	flags.String("secret", "", "shared request secret (env INTERCOM_REQUEST_SECRET)")
	flags.String("auth-mode", string(middleware.AuthModeBearer), "how the secret is sent: bearer|body (env INTERCOM_AUTH_MODE)")

	_ = v.BindPFlag(keyServer, flags.Lookup("server"))
	_ = v.BindPFlag(keySecret, flags.Lookup("secret"))
	_ = v.BindPFlag(keyAuthMode, flags.Lookup("auth-mode"))

	rootCmd.AddCommand(newRingCmd(v))
	rootCmd.AddCommand(newPingCmd(v))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func clientFromConfig(v *viper.Viper) (*intercom.Client, error) {
	secret := v.GetString(keySecret)
	if secret == "" {
		return nil, fmt.Errorf("a request secret is required (--secret or INTERCOM_REQUEST_SECRET)")
	}

	mode, err := middleware.ParseAuthMode(v.GetString(keyAuthMode))
	if err != nil {
		return nil, err
	}

	server := v.GetString(keyServer)
	if server == "" {
		server = defaultServer
	}

	return intercom.NewClient(server, secret, mode), nil
}
