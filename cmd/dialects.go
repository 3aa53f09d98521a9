package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Justype/qsubgraph/internal/config"
	"github.com/Justype/qsubgraph/internal/scheduler"
	"github.com/Justype/qsubgraph/internal/utils"
	"github.com/spf13/cobra"
)

var dialectsCmd = &cobra.Command{
	Use:     "dialects",
	Aliases: []string{"dialect"},
	Short:   "Display supported scheduler dialects",
	Long: `Display the supported scheduler dialects and the one that would be used.

For each dialect shows the batch script header, the dependency hold flag and
the job ID extraction written into submit_jobs.sh.`,
	Example: `  qsubgraph dialects`,
	Run:     runDialects,
}

func init() {
	rootCmd.AddCommand(dialectsCmd)
}

func runDialects(cmd *cobra.Command, args []string) {
	fmt.Println(utils.StyleTitle("Supported Dialects:"))
	for _, d := range scheduler.Dialects() {
		fmt.Printf("  %s\n", utils.StyleName(d.Name()))
		fmt.Printf("    Header:     %s\n", utils.StyleCommand(strings.ReplaceAll(strings.TrimRight(d.HeaderTemplate(), "\n"), "\n", "\\n")))
		fmt.Printf("    Hold flag:  %s\n", utils.StyleCommand(d.DependencyFlag()+"<job>,<job>"))
		fmt.Printf("    Job ID:     %s\n", utils.StyleCommand(d.JobIDExtractor()))
	}
	fmt.Println()

	if config.Global.Dialect != "" {
		d, err := scheduler.DialectByName(config.Global.Dialect)
		if err != nil {
			fmt.Printf("Configured:   %s (%v)\n", utils.StyleError(config.Global.Dialect), err)
			return
		}
		fmt.Printf("Configured:   %s\n", utils.StyleSuccess(d.Name()))
		return
	}

	d, err := scheduler.DetectDialect(os.Environ())
	if err != nil {
		fmt.Printf("Detected:     %s\n", utils.StyleError("none"))
		fmt.Println()
		fmt.Println("No qsub client found in PATH. Use --dialect or 'qsubgraph config set dialect <name>'.")
		return
	}
	fmt.Printf("Detected:     %s\n", utils.StyleSuccess(d.Name()))
}
