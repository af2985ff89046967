package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"splitstep/internal/sims/langevin"
)

func newCoeffsCmd(c *cli) *cobra.Command {
	var flags *configFlags
	cmd := &cobra.Command{
		Use:   "coeffs",
		Short: "Print the derived integration coefficients without running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			co := langevin.DeriveCoefficients(cfg.Params)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "sites             %d\n", cfg.N())
			fmt.Fprintf(out, "iterations        %d\n", cfg.Iterations())
			fmt.Fprintf(out, "beta              %.10g\n", co.Beta)
			fmt.Fprintf(out, "alpha_const       %.10g\n", co.AlphaConst)
			fmt.Fprintf(out, "lambda            %.10g\n", co.Lambda)
			fmt.Fprintf(out, "poisson_arg_const %.10g\n", co.PoissonArgConst)
			return nil
		},
	}
	flags = newConfigFlags(cmd.Flags())
	return cmd
}
