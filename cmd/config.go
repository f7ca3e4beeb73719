package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codelovable/codelovable/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage codelovable configuration",
	Long:  `Get and set configuration values for codelovable`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]

		workspace, err := os.Getwd()
		if err != nil {
			return err
		}

		cfg, err := config.LoadConfig(workspace)
		if err != nil {
			return err
		}

		value, err := cfg.Get(key)
		if err != nil {
			return err
		}

		fmt.Printf("%s = %v\n", key, value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		workspace, err := os.Getwd()
		if err != nil {
			return err
		}

		cfg, err := config.LoadConfig(workspace)
		if err != nil {
			return err
		}

		if err := cfg.Set(key, value); err != nil {
			return err
		}
		if err := config.SaveLocalConfig(workspace, cfg); err != nil {
			return err
		}

		fmt.Printf("Set %s = %s\n", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}
