package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pycircuit",
	Short: "A frontend compiler for synchronous digital circuit designs.",
	Long:  "pycircuit lowers a circuit design built through its Go builder DSL into a textual SSA-form IR.",
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetFlag is sugar over cmd.Flags().GetBool, discarding the (always-nil for
// a declared flag) error.
func GetFlag(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Flags().GetBool(name)
	return v
}

// GetString is sugar over cmd.Flags().GetString.
func GetString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")

	cobra.OnInitialize(func() {
		if v, _ := rootCmd.PersistentFlags().GetBool("verbose"); v {
			log.SetLevel(log.DebugLevel)
		}
	})
}
