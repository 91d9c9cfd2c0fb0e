package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/abelbrown/siadash/internal/handoff"
	"github.com/spf13/cobra"
)

var selectionCmd = &cobra.Command{
	Use:   "selection",
	Short: "Inspect or remove the trend selected for the pipeline",
}

var selectionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the selected trend and the form it would fill",
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := handoff.LoadSelection(rt.store)
		if errors.Is(err, handoff.ErrEmptySelection) {
			fmt.Println("No trend selected.")
			return nil
		}
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(t)
		}

		form := handoff.NewPipelineForm(rt.cfg.Pipeline.Categories)
		handoff.Fill(form, t)
		for _, f := range handoff.Fields {
			fmt.Printf("%-11s %s\n", f+":", form.Value(f))
		}
		return nil
	},
}

var selectionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the selected trend",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := rt.handoff.Clear(nil)
		rt.printToasts()
		return err
	},
}

func init() {
	selectionShowCmd.Flags().Bool("json", false, "print the stored record as JSON")
	selectionCmd.AddCommand(selectionShowCmd, selectionClearCmd)
}
