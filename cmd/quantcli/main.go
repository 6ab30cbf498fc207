// quantcli 在命令行直接驱动模拟与希腊字母计算引擎，结果以 JSON 打到标准输出
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	options_app "github.com/wyfcoding/quantanalytics/internal/options/application"
	sim_app "github.com/wyfcoding/quantanalytics/internal/simulation/application"
)

func main() {
	root := &cobra.Command{
		Use:           "quantcli",
		Short:         "Run Monte Carlo simulations and option greeks from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newSimulateCmd(), newGreeksCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newSimulateCmd() *cobra.Command {
	req := &sim_app.SimulationRequest{}
	var workers int

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a GBM Monte Carlo simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := sim_app.NewSimulationService(sim_app.Limits{}, workers, nil)
			resp, err := svc.RunMonteCarlo(context.Background(), req)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}

	cmd.Flags().Float64Var(&req.S0, "s0", 100, "initial price")
	cmd.Flags().Float64Var(&req.Mu, "mu", 0.08, "annualized drift")
	cmd.Flags().Float64Var(&req.Sigma, "sigma", 0.20, "annualized volatility")
	cmd.Flags().IntVar(&req.NumSimulations, "paths", 10000, "number of simulated paths")
	cmd.Flags().IntVar(&req.NumSteps, "steps", 252, "number of time steps")
	cmd.Flags().Float64Var(&req.Dt, "dt", 1.0/252.0, "time increment per step in years")
	cmd.Flags().IntVar(&req.HistogramBins, "bins", 50, "histogram bin count")
	cmd.Flags().Uint64Var(&req.Seed, "seed", 0, "random seed, 0 derives one from the clock")
	cmd.Flags().IntVar(&workers, "workers", 1, "path generation shards")

	return cmd
}

func newGreeksCmd() *cobra.Command {
	req := &options_app.GreeksRequest{}
	var put bool

	cmd := &cobra.Command{
		Use:   "greeks",
		Short: "Compute Black-Scholes greeks for a single contract",
		RunE: func(cmd *cobra.Command, args []string) error {
			call := !put
			req.IsCall = &call
			svc := options_app.NewGreeksService(0, nil)
			return printJSON(svc.CalculateGreeks(context.Background(), req))
		},
	}

	cmd.Flags().Float64Var(&req.Spot, "spot", 100, "spot price")
	cmd.Flags().Float64Var(&req.Strike, "strike", 100, "strike price")
	cmd.Flags().Float64Var(&req.TimeToExpiry, "expiry", 1, "time to expiry in years")
	cmd.Flags().Float64Var(&req.RiskFreeRate, "rate", 0.05, "annualized risk-free rate")
	cmd.Flags().Float64Var(&req.Volatility, "vol", 0.20, "annualized volatility")
	cmd.Flags().BoolVar(&put, "put", false, "price a put instead of a call")

	return cmd
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
