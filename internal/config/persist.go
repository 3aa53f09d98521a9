package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Justype/qsubgraph/internal/utils"
	"github.com/spf13/viper"
)

// ConfigFilename is the name of the config file
const ConfigFilename = "config"

// ConfigType is the type of config file (yaml, json, toml)
const ConfigType = "yaml"

// EnvPrefix is prepended to every environment override (QSUBGRAPH_QSUB_ARGS, ...)
const EnvPrefix = "QSUBGRAPH"

// Keys lists the known configuration keys in display order.
var Keys = []string{
	"dialect",
	"template",
	"qsub_args",
	"interpreter",
	"shell",
	"submit_bin",
}

// InitViper initializes Viper with proper search paths and defaults
// Priority (highest to lowest):
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (QSUBGRAPH_*)
// 3. User config file (~/.config/qsubgraph/config.yaml)
// 4. System config file (/etc/qsubgraph/config.yaml)
// 5. Defaults
func InitViper() error {
	viper.SetConfigName(ConfigFilename)
	viper.SetConfigType(ConfigType)

	for _, dir := range SearchDirs() {
		viper.AddConfigPath(dir)
	}

	// Environment variables
	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	// Set defaults (lowest priority)
	setDefaults()

	// Read config file (non-fatal if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// SearchDirs returns the config directories in the order viper searches them.
func SearchDirs() []string {
	var dirs []string
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(userConfigDir, "qsubgraph"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".qsubgraph"))
	}
	dirs = append(dirs, "/etc/qsubgraph", ".")
	return dirs
}

// setDefaults sets default values for all config keys
func setDefaults() {
	viper.SetDefault("dialect", "")
	viper.SetDefault("template", "")
	viper.SetDefault("qsub_args", "")
	viper.SetDefault("interpreter", "bash")
	viper.SetDefault("shell", "bash")
	viper.SetDefault("submit_bin", "qsub")
}

// GetUserConfigPath returns the path to the user config file
func GetUserConfigPath() (string, error) {
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".qsubgraph", ConfigFilename+"."+ConfigType), nil
	}

	return filepath.Join(userConfigDir, "qsubgraph", ConfigFilename+"."+ConfigType), nil
}

// SaveConfig saves current Viper config to user config file
func SaveConfig() error {
	configPath, err := GetUserConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return SaveConfigTo(configPath)
}

// SaveConfigTo writes the current Viper config to configPath.
func SaveConfigTo(configPath string) error {
	if err := utils.EnsureDir(filepath.Dir(configPath)); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// IsKnownKey reports whether key is a supported configuration key.
func IsKnownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// LoadFromViper loads config from Viper into Global struct
func LoadFromViper() {
	Global.Dialect = viper.GetString("dialect")
	Global.Template = viper.GetString("template")
	Global.QsubArgs = viper.GetString("qsub_args")

	if interpreter := viper.GetString("interpreter"); interpreter != "" {
		Global.Interpreter = interpreter
	}
	if shell := viper.GetString("shell"); shell != "" {
		Global.Shell = shell
	}
	if submitBin := viper.GetString("submit_bin"); submitBin != "" {
		Global.SubmitBin = submitBin
	}
}
