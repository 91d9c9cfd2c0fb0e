// Command siadash is the terminal client for the SIA-R content backend.
//
// Usage:
//
//	siadash                        Run the dashboard TUI
//	siadash trends                 List trends (--json, --csv, --html, -o file)
//	siadash select <n>             Select trend n for the pipeline
//	siadash selection show|clear   Inspect or remove the current selection
//	siadash login                  Sign in and store the access token
//	siadash logout                 Forget the access token
//	siadash theme [light|dark]     Show, set or toggle the theme
//	siadash events                 JSONL event log viewer
//	siadash config show|init       Print or write the configuration
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	baseURL string
	verbose bool
	openRun bool

	rt *app
)

var rootCmd = &cobra.Command{
	Use:   "siadash",
	Short: "Trend dashboard and pipeline client for SIA-R",
	Long: `siadash fetches trends from the SIA-R backend, shows them in a
terminal dashboard and hands a selected trend to the article pipeline.

Running siadash without a subcommand starts the dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations["runtime"] == "none" {
			return nil
		}
		var err error
		rt, err = openApp(cfgFile, baseURL, verbose)
		return err
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.siadash/config.json)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "backend base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.Flags().BoolVar(&openRun, "pipeline", false, "start on the pipeline screen")

	rootCmd.AddCommand(trendsCmd, selectCmd, selectionCmd, loginCmd, logoutCmd, themeCmd, eventsCmd, configCmd)
}

// execute runs the command tree with args. The shared runtime is closed
// afterwards whether or not the command failed; cobra skips post-run
// hooks on error.
func execute(args []string) error {
	defer func() {
		rt.Close()
		rt = nil
	}()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func main() {
	if err := execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		os.Exit(1)
	}
}
