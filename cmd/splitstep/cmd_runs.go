package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newRunsCmd(c *cli) *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List runs recorded in a database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openExistingStore(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Runs(cmd.Context())
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no runs recorded")
				return nil
			}

			r := lipgloss.NewRenderer(cmd.OutOrStdout())
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("id", "label", "started", "iterations", "converged", "time", "density").
				StyleFunc(func(row, _ int) lipgloss.Style {
					if row == table.HeaderRow {
						return r.NewStyle().Bold(true).Padding(0, 1)
					}
					return r.NewStyle().Padding(0, 1)
				})
			for _, run := range runs {
				iterations := "-"
				if run.Finished {
					iterations = strconv.Itoa(run.Iterations)
				}
				t.Row(
					run.ID,
					run.Label,
					run.StartedAt.Local().Format(time.DateTime),
					iterations,
					strconv.FormatBool(run.Converged),
					fmt.Sprintf("%g", run.Time),
					fmt.Sprintf("%.6g", run.Density),
				)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "runs.sqlite", "SQLite run database")
	return cmd
}
