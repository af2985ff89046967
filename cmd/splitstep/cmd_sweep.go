package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"splitstep/internal/output"
	"splitstep/internal/sims/langevin"
	"splitstep/internal/sweep"
)

func newSweepCmd(c *cli) *cobra.Command {
	var (
		flags    *configFlags
		from, to float64
		steps    int
		parallel int
		outDir   string
		dbPath   string
		progress bool
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run one simulation per growth rate and bracket the transition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := flags.resolve(cmd)
			if err != nil {
				return err
			}

			var store *output.Store
			if dbPath != "" {
				store, err = output.OpenStore(dbPath)
				if err != nil {
					return err
				}
				defer store.Close()
			}

			attach := func(ctx context.Context, cfg langevin.Config) ([]langevin.RecordSink, func(langevin.Result) error, error) {
				textLog, err := output.CreateTextLog(filepath.Join(outDir, output.LogFileName(cfg.Params.A)))
				if err != nil {
					return nil, nil, err
				}
				sinks := []langevin.RecordSink{textLog}
				if progress {
					sinks = append(sinks, output.NewProgress(cmd.OutOrStdout(), fmt.Sprintf("a=%g", cfg.Params.A)))
				}
				var recorder *output.RunRecorder
				if store != nil {
					recorder, err = store.StartRun(ctx, fmt.Sprintf("sweep a=%g", cfg.Params.A), cfg.Parameters())
					if err != nil {
						textLog.Close()
						return nil, nil, err
					}
					sinks = append(sinks, recorder)
				}
				finish := func(res langevin.Result) error {
					if recorder != nil {
						if err := recorder.Finish(context.Background(), res); err != nil {
							textLog.Close()
							return err
						}
					}
					return textLog.Close()
				}
				return sinks, finish, nil
			}

			outcomes, err := sweep.Run(cmd.Context(), sweep.Options{
				Base:     base,
				Values:   sweep.Values(from, to, steps),
				Parallel: parallel,
				Attach:   attach,
				Logger:   c.logger,
			})
			if err != nil {
				return err
			}
			if err := sweep.WriteTable(cmd.OutOrStdout(), outcomes); err != nil {
				return err
			}
			if lo, hi, ok := sweep.Critical(outcomes); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "transition between a=%g (absorbed) and a=%g (active)\n", lo, hi)
			}
			return nil
		},
	}
	flags = newConfigFlags(cmd.Flags())
	cmd.Flags().Float64Var(&from, "a-from", 1.80, "first growth rate")
	cmd.Flags().Float64Var(&to, "a-to", 1.90, "last growth rate")
	cmd.Flags().IntVar(&steps, "a-steps", 5, "number of growth rates")
	cmd.Flags().IntVar(&parallel, "parallel", 2, "simulations run at once")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory for integration_<a>.log files")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite run database to record into")
	cmd.Flags().BoolVar(&progress, "progress", false, "print progress lines of every run")
	return cmd
}
