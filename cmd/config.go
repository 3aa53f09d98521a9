package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Justype/qsubgraph/internal/config"
	"github.com/Justype/qsubgraph/internal/scheduler"
	"github.com/Justype/qsubgraph/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var showPath bool

// configKeysCompletion returns config keys for shell completion
func configKeysCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return config.Keys, cobra.ShellCompDirectiveNoFileComp
	}
	if len(args) == 1 {
		return configValueCompletion(args[0]), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// configValueCompletion returns suggested values for a config key
func configValueCompletion(key string) []string {
	switch key {
	case "dialect":
		return []string{"pbs", "torque", "sge"}
	case "interpreter":
		return []string{"bash", "sh", "python3"}
	case "shell":
		return []string{"bash", "sh"}
	default:
		return nil
	}
}

// getConfigEnvVars returns the environment variable name of every config key, sorted.
func getConfigEnvVars() []string {
	vars := make([]string, 0, len(config.Keys))
	for _, key := range config.Keys {
		vars = append(vars, config.EnvPrefix+"_"+strings.ToUpper(key))
	}
	sort.Strings(vars)
	return vars
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage qsubgraph configuration",
	Long: `Manage qsubgraph configuration settings.

Configuration priority (highest to lowest):
  1. Command-line flags
  2. Environment variables (QSUBGRAPH_*)
  3. User config file (~/.config/qsubgraph/config.yaml)
  4. System config file (/etc/qsubgraph/config.yaml)
  5. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		if showPath {
			configPath, err := config.GetUserConfigPath()
			if err != nil {
				utils.PrintError("Failed to get config path: %v", err)
				os.Exit(1)
			}
			fmt.Println(configPath)
			return
		}

		fmt.Println(utils.StyleTitle("Config File:"))
		if used := viper.ConfigFileUsed(); used != "" {
			fmt.Printf("  %s %s\n", utils.StylePath(used), utils.StyleSuccess("← in use"))
		} else {
			fmt.Printf("  %s (use 'qsubgraph config init' to create)\n", utils.StyleWarning("No config file found"))
		}
		fmt.Println()

		fmt.Println(utils.StyleTitle("Current Configuration:"))
		for _, key := range config.Keys {
			value := viper.GetString(key)
			if value == "" {
				value = utils.StyleInfo("(unset)")
			}
			fmt.Printf("  %-12s %s\n", key+":", value)
		}
		fmt.Println()

		fmt.Println(utils.StyleTitle("Environment Variable Overrides:"))
		hasEnvOverrides := false
		for _, envVar := range getConfigEnvVars() {
			if val := os.Getenv(envVar); val != "" {
				fmt.Printf("  %s=%s\n", envVar, val)
				hasEnvOverrides = true
			}
		}
		if !hasEnvOverrides {
			fmt.Printf("  %s\n", utils.StyleInfo("none"))
		}
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Example: `  qsubgraph config get dialect
  qsubgraph config get qsub_args`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: configKeysCompletion,
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		if !config.IsKnownKey(key) {
			return fmt.Errorf("unknown config key: %s", key)
		}
		fmt.Println(viper.GetString(key))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Example: `  qsubgraph config set dialect sge
  qsubgraph config set qsub_args "-q long.q -P myproject"
  qsubgraph config set template ~/templates/header.tmpl`,
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: configKeysCompletion,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := validateConfigValue(key, value); err != nil {
			return err
		}

		viper.Set(key, value)
		if err := config.SaveConfig(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		configPath, _ := config.GetUserConfigPath()
		utils.PrintSuccess("Set %s = %s", utils.StyleInfo(key), utils.StyleInfo(value))
		utils.PrintNote("Config saved to: %s", configPath)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a user config file with defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := config.GetUserConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		if utils.FileExists(configPath) {
			utils.PrintWarning("Config file already exists: %s", utils.StylePath(configPath))
			return nil
		}

		if config.Global.Dialect == "" {
			if d, err := scheduler.DetectDialect(os.Environ()); err == nil {
				viper.Set("dialect", strings.ToLower(d.Name()))
				utils.PrintNote("Detected %s dialect", d.Name())
			}
		}

		if err := config.SaveConfigTo(configPath); err != nil {
			return err
		}
		utils.PrintSuccess("Created config file: %s", utils.StylePath(configPath))
		return nil
	},
}

// validateConfigValue rejects values that would fail later at submit time.
func validateConfigValue(key string, value string) error {
	if !config.IsKnownKey(key) {
		return fmt.Errorf("unknown config key: %s (known: %s)", key, strings.Join(config.Keys, ", "))
	}
	if key == "dialect" && value != "" {
		if _, err := scheduler.DialectByName(value); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	configShowCmd.Flags().BoolVarP(&showPath, "path", "p", false, "Only print the user config file path")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
