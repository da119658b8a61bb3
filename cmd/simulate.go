package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/dhand/internal/simulate"
)

var errHandMismatch = errors.New("observed hand does not match bias")

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Drive a running server with synthetic taps",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := simulate.DefaultConfig()
		flags := cmd.Flags()
		cfg.BaseURL, _ = flags.GetString("url")
		cfg.Taps, _ = flags.GetInt("taps")
		cfg.ViewportWidth, _ = flags.GetFloat64("viewport")
		cfg.Seed, _ = flags.GetUint64("seed")
		cfg.Workers, _ = flags.GetInt("workers")
		cfg.Timeout, _ = flags.GetDuration("timeout")

		name, _ := flags.GetString("bias")
		bias, err := simulate.ParseBias(name)
		if err != nil {
			return err
		}
		cfg.Bias = bias

		report, err := simulate.Run(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}

		if strict, _ := flags.GetBool("strict"); strict && !report.Matched {
			return fmt.Errorf("%w: expected %s, got %s", errHandMismatch, report.Expected, report.Score.Hand)
		}
		return nil
	},
}

func init() {
	d := simulate.DefaultConfig()
	f := simulateCmd.Flags()
	f.String("url", d.BaseURL, "Base URL of the service")
	f.Int("taps", d.Taps, "Number of taps to generate")
	f.String("bias", string(d.Bias), "Side taps favour: left, right, center, mixed")
	f.Float64("viewport", d.ViewportWidth, "Simulated viewport width in pixels")
	f.Uint64("seed", 0, "Generator seed (0 picks one from the clock)")
	f.Int("workers", d.Workers, "Number of concurrent senders")
	f.Duration("timeout", d.Timeout, "HTTP request timeout")
	f.Bool("strict", false, "Exit non-zero when the observed hand does not match the bias")
}
