// Package commands implements the stackplan CLI
package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/stackplan/stackplan/internal/api/v1/client"
	"github.com/stackplan/stackplan/internal/api/v1/routes"
)

// flag names
const (
	flagServerAddress = "server-address"
)

// environment variable names
const (
	envServerAddress = "STACKPLAN_SERVER_ADDRESS"
)

var (
	// apiClient is the shared API client instance
	apiClient client.Client
	// serverAddress holds the target API server address. Flag parsing sets this.
	serverAddress string
)

// initClient initializes the API client
func initClient() error {
	opts := client.DefaultOptions()
	opts.BaseURL = serverAddress

	var err error
	apiClient, err = client.NewClient(opts)
	return err
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&serverAddress, flagServerAddress, "s",
		routes.DefaultBaseURL, "Address of the stackplan API server (env: STACKPLAN_SERVER_ADDRESS)")

	RootCmd.AddCommand(GetCategoriesCmd())
	RootCmd.AddCommand(GetProjectsCmd())
	RootCmd.AddCommand(GetTasksCmd())
	RootCmd.AddCommand(GetChatCmd())
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "stackplan",
	Short: "stackplan CLI - a command line interface for the stackplan API",
	Long: `stackplan CLI is a command line tool for managing categories, projects
and tasks through the stackplan API, including the conversational assistant.`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if env := os.Getenv(envServerAddress); env != "" && serverAddress == routes.DefaultBaseURL {
			serverAddress = env
		}
		return initClient()
	},
}
