package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/Justype/qsubgraph/internal/config"
	"github.com/Justype/qsubgraph/internal/scheduler"
	"github.com/Justype/qsubgraph/internal/utils"
	"github.com/spf13/cobra"
)

var (
	debugMode bool
	quietMode bool
)

var rootCmd = &cobra.Command{
	Use:           "qsubgraph",
	Short:         "qsubgraph: Submit a task graph to PBS/Torque or SGE with qsub dependency holds.",
	Version:       config.VERSION,
	SilenceErrors: true,
	SilenceUsage:  true,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Step 1: Load defaults
		config.LoadDefaults()

		// Step 2: Initialize Viper (read config file, env vars)
		if err := config.InitViper(); err != nil {
			utils.PrintDebug("Error reading config file: %v", err)
		}

		// Step 3: Load values from Viper (flags are bound to Viper keys) into Global config
		config.LoadFromViper()

		// Step 4: Apply command-line flags (highest priority)
		if quietMode {
			utils.QuietMode = true
			config.Global.Quiet = true
		}
		if debugMode {
			utils.DebugMode = true
			config.Global.Debug = true
			utils.PrintDebug("Debug mode enabled")
			utils.PrintDebug("qsubgraph Version: %s", utils.StyleInfo(config.VERSION))
			if config.Global.Dialect != "" {
				utils.PrintDebug("Dialect: %s", config.Global.Dialect)
			}
			utils.PrintDebug("Submit Binary: %s", config.Global.SubmitBin)
			utils.PrintDebug("Interpreter: %s", config.Global.Interpreter)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

// printError reports err once. Cobra's own error printing is silenced.
// Invocation errors carry the scheduler output; it is printed as-is so qsub
// messages stay readable.
func printError(err error) {
	var ie *scheduler.InvocationError
	if errors.As(err, &ie) {
		utils.PrintError("Submission failed: %s: %v", ie.Cmd, ie.Err)
		if ie.Output != "" {
			fmt.Fprintln(utils.Stderr, ie.Output)
		}
		utils.PrintHint("Jobs accepted before the failure stay queued; cancel them with your scheduler's qdel.")
		return
	}
	utils.PrintError("%v", err)
}

func init() {
	// Subcommands are attached to rootCmd in their respective init() functions
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode with verbose output")
	rootCmd.PersistentFlags().BoolVar(&quietMode, "quiet", false, "Only print warnings and errors")
}
