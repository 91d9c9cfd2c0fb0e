package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/abelbrown/siadash/internal/export"
	"github.com/abelbrown/siadash/internal/handoff"
	"github.com/abelbrown/siadash/internal/render"
	"github.com/abelbrown/siadash/internal/state"
	"github.com/abelbrown/siadash/internal/trend"
	"github.com/spf13/cobra"
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "List current trends",
	Long: `Fetch trends from the backend and print them.

Examples:
  siadash trends                       # Cards in the terminal
  siadash trends --keywords ai,chips   # Filter by keywords
  siadash trends --force               # Bypass the backend cache
  siadash trends -o trends.json        # Export, format from extension
  siadash trends --csv                 # CSV to stdout
  siadash trends --html > grid.html    # HTML grid fragment`,
	RunE: runTrends,
}

var selectCmd = &cobra.Command{
	Use:   "select <n>",
	Short: "Select trend n (1-based, as listed by 'trends') for the pipeline",
	Args:  cobra.ExactArgs(1),
	RunE:  runSelect,
}

func init() {
	for _, c := range []*cobra.Command{trendsCmd, selectCmd} {
		c.Flags().String("keywords", "", "comma separated keywords (default: saved keywords)")
		c.Flags().Bool("force", false, "bypass the backend cache")
		c.Flags().Int("limit", 0, "maximum number of trends (default from config)")
	}
	trendsCmd.Flags().Bool("json", false, "output as JSON")
	trendsCmd.Flags().Bool("csv", false, "output as CSV")
	trendsCmd.Flags().Bool("html", false, "output the HTML grid fragment")
	trendsCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
	trendsCmd.Flags().Bool("save-keywords", false, "remember --keywords for later runs")
}

// fetchTrends runs the query described by cmd's flags.
func fetchTrends(cmd *cobra.Command) (trend.Envelope, error) {
	keywords, _ := cmd.Flags().GetString("keywords")
	force, _ := cmd.Flags().GetBool("force")
	limit, _ := cmd.Flags().GetInt("limit")

	if !cmd.Flags().Changed("keywords") {
		saved, err := state.Keywords(rt.store)
		if err != nil {
			return trend.Envelope{}, err
		}
		keywords = saved
	}
	if limit <= 0 {
		limit = rt.cfg.Trends.Limit
	}

	env, ok := rt.client.Trends(cmd.Context(), trend.Query{
		Keywords: keywords,
		Force:    force,
		Limit:    limit,
		Flatten:  true,
	})
	if !ok {
		if !state.Authenticated(rt.store) {
			return env, errors.New("not signed in; run 'siadash login'")
		}
		return env, errors.New("could not fetch trends")
	}
	return env, nil
}

func runTrends(cmd *cobra.Command, args []string) error {
	env, err := fetchTrends(cmd)
	if err != nil {
		return err
	}
	if save, _ := cmd.Flags().GetBool("save-keywords"); save {
		kw, _ := cmd.Flags().GetString("keywords")
		if err := state.SetKeywords(rt.store, kw); err != nil {
			return fmt.Errorf("save keywords: %w", err)
		}
	}

	list := env.Normalize()
	asJSON, _ := cmd.Flags().GetBool("json")
	asCSV, _ := cmd.Flags().GetBool("csv")
	asHTML, _ := cmd.Flags().GetBool("html")
	path, _ := cmd.Flags().GetString("output")

	// -o trends.csv / trends.json without a format flag exports by extension.
	if ext := strings.ToLower(filepath.Ext(path)); !asJSON && !asCSV && !asHTML && (ext == ".csv" || ext == ".json") {
		if err := export.File(path, list); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Exported %d trends to %s\n", len(list), path)
		return nil
	}

	var out io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		bw := bufio.NewWriter(f)
		defer bw.Flush()
		out = bw
	}

	switch {
	case asJSON:
		return export.Write(out, export.JSON, list)
	case asCSV:
		return export.Write(out, export.CSV, list)
	}

	region := render.NewRegion("trends-grid", render.VariantGrid)
	render.Grid(region, list, env.Attribution())
	if asHTML {
		return region.WriteHTML(out)
	}

	palette := render.PaletteFor(state.Theme(rt.store, rt.cfg.UI.Theme))
	fmt.Fprint(out, render.Terminal(region, palette, 100, 0, 0, -1))
	if !region.Empty() {
		fmt.Fprintln(out)
		for i, c := range region.Cards {
			fmt.Fprintf(out, "%3d  %s\n", i+1, strings.TrimSpace(c.Title))
		}
	}
	return nil
}

func runSelect(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return fmt.Errorf("invalid trend number %q", args[0])
	}
	env, err := fetchTrends(cmd)
	if err != nil {
		return err
	}

	region := render.NewRegion("trends-grid", render.VariantGrid)
	render.Grid(region, env.Normalize(), env.Attribution())
	act, ok := region.Action(n - 1)
	if !ok {
		return fmt.Errorf("no trend %d (%d listed)", n, len(region.Cards))
	}

	// Nothing to navigate in a one-shot command: run the scheduled
	// navigation at once so the location records the pipeline target.
	ctrl := handoff.New(rt.store, rt.toasts, rt.location,
		handoff.WithScheduler(func(_ time.Duration, f func()) { f() }),
		handoff.WithLogger(rt.events))
	err = ctrl.Select(act.Trend)
	rt.printToasts()
	if err != nil {
		return err
	}
	fmt.Println("Run 'siadash --pipeline' to open it in the pipeline form.")
	return nil
}
