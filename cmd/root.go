/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bloodheros",
	Short: "Blood Heros blood donation API",
	Long: `Blood Heros connects blood donors with people who need blood.

	bloodheros server       run the HTTP API
	bloodheros migrate up   prepare the database schema
	bloodheros seed         load districts and upazilas
	bloodheros notify       consume donation events`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
