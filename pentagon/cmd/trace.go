package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sarchlab/pentagon/datarecording"
)

var traceCmd = &cobra.Command{
	Use:   "trace <file>",
	Short: "Print a recorded trace.",
	Long: "`trace pentagon_<id>.sqlite3` prints the snapshots, phases or " +
		"events recorded by `serve --record`.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, _ := cmd.Flags().GetString("table")
		limit, _ := cmd.Flags().GetInt("limit")

		reader, err := datarecording.NewTraceReader(args[0])
		if err != nil {
			return err
		}
		defer reader.Close()

		return printTrace(cmd.Context(), cmd.OutOrStdout(), reader, table, limit)
	},
}

func init() {
	rootCmd.AddCommand(traceCmd)
	traceCmd.Flags().String("table", datarecording.SnapshotTable,
		"Table to print: snapshots, phases or events")
	traceCmd.Flags().Int("limit", 20, "Number of rows to print, 0 for all")
}

func printTrace(
	ctx context.Context,
	w io.Writer,
	reader datarecording.DataReader,
	table string,
	limit int,
) error {
	orderBy := "Time"
	if table == datarecording.EventTable {
		orderBy = "Seq"
	}

	rows, total, err := reader.Query(ctx, table, datarecording.QueryParams{
		OrderBy: orderBy,
		Limit:   limit,
	})
	if err != nil {
		return err
	}

	for _, row := range rows {
		switch r := row.(type) {
		case *datarecording.SnapshotEntry:
			fmt.Fprintf(w, "%10.3f #%-6d %-8s %s\n", r.Time, r.Seq, r.Source, r.Line)
		case *datarecording.PhaseEntry:
			fmt.Fprintf(w, "%10.3f pass %-4d %-7s %-5s -> %-5s %dms\n",
				r.Time, r.Pass, r.Phase, r.Current, r.Following, r.WaitMs)
		case *datarecording.EventEntry:
			fmt.Fprintf(w, "%10.3f #%-6d %s\n", r.Time, r.Seq, r.Line)
		}
	}

	fmt.Fprintf(w, "%d of %d rows\n", len(rows), total)

	return nil
}
