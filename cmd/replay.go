package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/dhand/internal/domain/handedness"
	"github.com/okian/dhand/internal/domain/model"
	"github.com/okian/dhand/internal/domain/types"
	"github.com/okian/dhand/pkg/logger"
)

const maxReplayLine = 1 << 20

var errReplayLine = errors.New("invalid tap line")

var replayCmd = &cobra.Command{
	Use:   "replay FILE",
	Short: "Score newline-delimited tap JSON offline",
	Long:  "Reads one tap per line (\"-\" for stdin), records each through a scorer built\nfrom config, and prints the final tally as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(ctx, cmd)
		if err != nil {
			return err
		}

		in := cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open replay file: %w", err)
			}
			defer func() { _ = f.Close() }()
			in = f
		}

		report, err := replay(ctx, in, handedness.New(cfg.ScorerOptions()...))
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

// replayReport is the JSON printed by replay.
type replayReport struct {
	Taps     int            `json:"taps"`
	Admitted int            `json:"admitted"`
	Rejected map[string]int `json:"rejected"`
	Score    types.Score    `json:"score"`
}

// replay records every tap read from r and reports the resulting tally.
func replay(ctx context.Context, r io.Reader, scorer *handedness.Scorer) (replayReport, error) {
	report := replayReport{Rejected: make(map[string]int)}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxReplayLine)

	line := 0
	for sc.Scan() {
		line++
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		var tap model.Tap
		if err := json.Unmarshal(raw, &tap); err != nil {
			return report, fmt.Errorf("%w: line %d: %w", errReplayLine, line, err)
		}

		report.Taps++
		d, _ := scorer.Record(tap.PointerEvent(), tap.Environment())
		if d.Admitted {
			report.Admitted++
		} else {
			report.Rejected[string(d.Stage)]++
		}
	}
	if err := sc.Err(); err != nil {
		return report, fmt.Errorf("read taps: %w", err)
	}

	report.Score = types.ScoreFromTally(scorer.Tally())
	logger.Get().Debug(ctx, "replay finished",
		logger.Int("lines", line),
		logger.Int("taps", report.Taps),
		logger.Int("admitted", report.Admitted),
	)
	return report, nil
}
