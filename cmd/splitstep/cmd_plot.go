package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"splitstep/internal/output"
)

func newPlotCmd(c *cli) *cobra.Command {
	var (
		outPath string
		dbPath  string
		runIDs  []string
		title   string
		width   int
		height  int
	)
	cmd := &cobra.Command{
		Use:   "plot [log files...]",
		Short: "Render density against time on log-log axes",
		Example: `  splitstep plot integration_1.8.log integration_1.9.log -o decay.png
  splitstep plot --db runs.sqlite --run <id> --run <id>`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var series []output.Series
			for _, path := range args {
				recs, err := output.ReadTextLogFile(path)
				if err != nil {
					return err
				}
				name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
				series = append(series, output.Series{Name: name, Records: recs})
			}
			if len(runIDs) > 0 {
				if dbPath == "" {
					return fmt.Errorf("--run needs --db")
				}
				store, err := openExistingStore(dbPath)
				if err != nil {
					return err
				}
				defer store.Close()
				for _, id := range runIDs {
					recs, err := store.Records(cmd.Context(), id)
					if err != nil {
						return err
					}
					series = append(series, output.Series{Name: shortID(id), Records: recs})
				}
			}
			if len(series) == 0 {
				return fmt.Errorf("nothing to plot: pass log files or --db with --run")
			}

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create plot: %w", err)
			}
			opts := output.DefaultPlotOptions()
			opts.Title, opts.Width, opts.Height = title, width, height
			if err := output.RenderDecay(f, opts, series...); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d series)\n", outPath, len(series))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "decay.png", "PNG file to write")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite run database")
	cmd.Flags().StringArrayVar(&runIDs, "run", nil, "stored run id to plot (repeatable)")
	cmd.Flags().StringVar(&title, "title", "", "plot title")
	cmd.Flags().IntVar(&width, "width", 1024, "image width")
	cmd.Flags().IntVar(&height, "height", 640, "image height")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
