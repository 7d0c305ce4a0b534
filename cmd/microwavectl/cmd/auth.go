package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
)

const passwordEnv = "MICROWAVE_ADMIN_PASSWORD"

var (
	cfgUsername         string
	cfgPassword         string
	cfgConnectionString string
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Set or replace the administrator credential",
	Long: `Stores the administrator credential used by POST /api/auth/login.
The password may be passed through $` + passwordEnv + ` instead of --password.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		password := cfgPassword
		if password == "" {
			password = os.Getenv(passwordEnv)
		}
		return withApp(func(a *app) error {
			return runConfigure(cmd.Context(), a, cmd.OutOrStdout(), cfgUsername, password, cfgConnectionString)
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the administrator credential is configured",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			return runStatus(cmd.Context(), a, cmd.OutOrStdout())
		})
	},
}

func init() {
	rootCmd.AddCommand(configureCmd, statusCmd)
	configureCmd.Flags().StringVarP(&cfgUsername, "username", "u", "", "administrator username")
	configureCmd.Flags().StringVarP(&cfgPassword, "password", "p", "", "administrator password")
	configureCmd.Flags().StringVar(&cfgConnectionString, "connection-string", "", "connection string stored encrypted")
	_ = configureCmd.MarkFlagRequired("username")
}

func runConfigure(ctx context.Context, a *app, w io.Writer, username, password, connectionString string) error {
	if password == "" {
		return errors.New("password is required (--password or $" + passwordEnv + ")")
	}
	if err := a.auth.Configure(ctx, username, password, connectionString); err != nil {
		return err
	}
	fmt.Fprintf(w, "administrator %q configured\n", username)
	return nil
}

func runStatus(ctx context.Context, a *app, w io.Writer) error {
	st, err := a.auth.Status(ctx)
	if err != nil {
		return err
	}
	if !st.IsConfigured {
		fmt.Fprintln(w, "Configured: no")
		return nil
	}
	fmt.Fprintln(w, "Configured: yes")
	fmt.Fprintf(w, "Username:   %s\n", st.Username)
	if st.CreatedAt != nil {
		fmt.Fprintf(w, "Created:    %s\n", st.CreatedAt.Format(time.RFC3339))
	}
	if st.LastLoginAt != nil {
		fmt.Fprintf(w, "Last login: %s\n", st.LastLoginAt.Format(time.RFC3339))
	} else {
		fmt.Fprintln(w, "Last login: never")
	}
	fmt.Fprintf(w, "Connection string stored: %t\n", st.HasConnectionString)
	return nil
}
