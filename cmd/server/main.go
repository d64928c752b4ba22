// Package main is the entry point for the grimoire API server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/grimoire-api/cmd/server/client"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "grimoire-api",
	Short: "Grimoire API server",
	Long: `Grimoire API stores D&D 5e characters and derives their hit points,
spell slots and spellbooks from the bundled rules catalog.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
