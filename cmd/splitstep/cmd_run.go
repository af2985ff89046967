package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"splitstep/internal/output"
	"splitstep/internal/sims/langevin"
)

func newRunCmd(c *cli) *cobra.Command {
	var (
		flags  *configFlags
		outDir string
		dbPath string
		label  string
		quiet  bool
		save   string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Integrate one configuration",
		Long: `Integrate one configuration, writing "<time>, <density>" lines to
integration_<a>.log in the output directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			if save != "" {
				if err := cfg.Save(save); err != nil {
					return err
				}
			}

			textLog, err := output.CreateTextLog(filepath.Join(outDir, output.LogFileName(cfg.Params.A)))
			if err != nil {
				return err
			}
			defer textLog.Close()
			sinks := []langevin.RecordSink{textLog}
			if !quiet {
				sinks = append(sinks, output.NewProgress(cmd.OutOrStdout(), ""))
			}

			var recorder *output.RunRecorder
			if dbPath != "" {
				store, err := output.OpenStore(dbPath)
				if err != nil {
					return err
				}
				defer store.Close()
				if label == "" {
					label = fmt.Sprintf("a=%g", cfg.Params.A)
				}
				recorder, err = store.StartRun(cmd.Context(), label, cfg.Parameters())
				if err != nil {
					return err
				}
				sinks = append(sinks, recorder)
				c.logger.Info("recording run", zap.String("run_id", recorder.ID()), zap.String("db", dbPath))
			}

			sim, err := langevin.New(cfg, langevin.WithLogger(c.logger), langevin.WithSinks(sinks...))
			if err != nil {
				return err
			}
			res, runErr := sim.Run(cmd.Context())
			if recorder != nil {
				if err := recorder.Finish(context.Background(), res); err != nil && runErr == nil {
					runErr = err
				}
			}
			if runErr != nil {
				return runErr
			}
			if err := textLog.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: t=%g density=%.6g converged=%t (%s)\n",
				textLog.Path(), res.Time, res.Density, res.Converged, res.Elapsed)
			return nil
		},
	}
	flags = newConfigFlags(cmd.Flags())
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory for integration_<a>.log")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite run database to record into")
	cmd.Flags().StringVar(&label, "label", "", "run label in the database (default a=<a>)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "no progress lines")
	cmd.Flags().StringVar(&save, "save-config", "", "write the resolved configuration as YAML")
	return cmd
}
