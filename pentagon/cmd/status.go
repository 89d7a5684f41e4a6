package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sarchlab/pentagon/lights"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the lamps of a running service.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		history, _ := cmd.Flags().GetInt("history")

		url := baseURL(cmd) + "/status"
		if history > 0 {
			url += "?history=" + strconv.Itoa(history)
		}

		rsp := map[string]json.RawMessage{}
		if err := getJSON(url, &rsp); err != nil {
			return err
		}

		return printStatus(cmd.OutOrStdout(), rsp)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	addAddrFlag(statusCmd)
	statusCmd.Flags().Int("history", 0, "Also show the last N snapshots")
}

func printStatus(w io.Writer, rsp map[string]json.RawMessage) error {
	for _, d := range lights.Directions() {
		var f lights.Flags
		if err := json.Unmarshal(rsp[d.String()], &f); err != nil {
			return fmt.Errorf("status of %s: %w", d, err)
		}

		fmt.Fprintf(w, "%-6s %s\n", d, lampString(f))
	}

	for _, key := range []string{"STATE", "HARDWARE"} {
		var line string
		if raw, ok := rsp[key]; ok && json.Unmarshal(raw, &line) == nil {
			fmt.Fprintln(w, line)
		}
	}

	var history []string
	if raw, ok := rsp["HISTORY"]; ok && json.Unmarshal(raw, &history) == nil {
		for _, line := range history {
			fmt.Fprintln(w, "  "+line)
		}
	}

	return nil
}

func lampString(f lights.Flags) string {
	lamp := func(on bool, name string) string {
		if on {
			return name
		}

		return "-"
	}

	return lamp(f.Red, "R") + lamp(f.Yellow, "Y") + lamp(f.Green, "G")
}
