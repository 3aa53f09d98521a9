package cmd

import (
	"os"

	"github.com/Justype/qsubgraph/internal/config"
	"github.com/Justype/qsubgraph/internal/graph"
	"github.com/Justype/qsubgraph/internal/scheduler"
	"github.com/Justype/qsubgraph/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var submitDryRun bool

// submitFlagKeys maps submit flags to the config keys they override.
var submitFlagKeys = map[string]string{
	"dialect":     "dialect",
	"template":    "template",
	"qsub-args":   "qsub_args",
	"interpreter": "interpreter",
	"submit-bin":  "submit_bin",
}

var submitCmd = &cobra.Command{
	Use:   "submit <graph.yaml>",
	Short: "Write batch scripts for a task graph and submit them with qsub",
	Long: `Write one batch script per node and a master submit_jobs.sh next to the
node scripts, then run submit_jobs.sh once.

Each node is submitted with a hold on the jobs it depends on, so the scheduler
starts it only after its prerequisites finish successfully. Nodes are submitted
in dependency order; the order in the file does not matter.

Option precedence (highest to lowest):
  1. Node-level template / qsub_args in the graph file
  2. Command-line flags
  3. Graph-level template / qsub_args in the graph file
  4. Environment variables (QSUBGRAPH_*)
  5. Config file
  6. Dialect defaults`,
	Example: `  qsubgraph submit pipeline.yaml
  qsubgraph submit pipeline.yaml --dialect sge --qsub-args "-q long.q"
  qsubgraph submit pipeline.yaml --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runSubmit,
}

func init() {
	flags := submitCmd.Flags()
	flags.String("dialect", "", "Scheduler dialect: pbs, torque or sge (default: detect)")
	flags.String("template", "", "Batch script header, literal or path to a template file")
	flags.String("qsub-args", "", "Extra arguments passed to every qsub call")
	flags.String("interpreter", "", "Command that runs each node script (default: bash)")
	flags.String("submit-bin", "", "Submit client used in submit_jobs.sh (default: qsub)")
	flags.BoolVar(&submitDryRun, "dry-run", false, "Write all scripts without submitting")

	bindFlags(flags, submitFlagKeys)
	rootCmd.AddCommand(submitCmd)
}

// bindFlags lets each flag override its config key through Viper.
func bindFlags(flags *pflag.FlagSet, keys map[string]string) {
	for flagName, key := range keys {
		if f := flags.Lookup(flagName); f != nil {
			if err := viper.BindPFlag(key, f); err != nil {
				utils.PrintDebug("Failed to bind flag --%s: %v", flagName, err)
			}
		}
	}
}

func runSubmit(cmd *cobra.Command, args []string) error {
	def, err := graph.LoadDefinitionFile(args[0])
	if err != nil {
		return err
	}
	plan, err := def.Plan()
	if err != nil {
		return err
	}

	env := os.Environ()
	dialect, err := resolveDialect(config.Global.Dialect, env)
	if err != nil {
		return err
	}

	template := config.Global.Template
	if def.Template != "" && !cmd.Flags().Changed("template") {
		template = def.Template
	}
	qsubArgs := config.Global.QsubArgs
	if def.QsubArgs != "" && !cmd.Flags().Changed("qsub-args") {
		qsubArgs = def.QsubArgs
	}

	engine, err := scheduler.NewEngine(dialect, scheduler.Options{
		Template:    template,
		QsubArgs:    qsubArgs,
		Interpreter: config.Global.Interpreter,
		SubmitBin:   config.Global.SubmitBin,
		Shell:       config.Global.Shell,
		Env:         env,
		DryRun:      submitDryRun,
	})
	if err != nil {
		return err
	}

	utils.PrintMessage("Submitting graph %s: %s nodes, %s dialect",
		utils.StyleName(def.Name), utils.StyleNumber(len(plan.Nodes)), utils.StyleInfo(dialect.Name()))
	return engine.SubmitGraph(plan.Scripts, plan.Deps, plan.Nodes)
}

// resolveDialect uses the configured dialect name, or detects one from env.
func resolveDialect(name string, env []string) (scheduler.Dialect, error) {
	if name != "" {
		return scheduler.DialectByName(name)
	}
	dialect, err := scheduler.DetectDialect(env)
	if err != nil {
		utils.PrintHint("Set the dialect explicitly with --dialect pbs|sge or 'qsubgraph config set dialect <name>'")
		return nil, err
	}
	utils.PrintDebug("Detected %s dialect", dialect.Name())
	return dialect, nil
}
