package simulate

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/dhand/internal/domain/model"
	"github.com/okian/dhand/pkg/logger"
)

// Run generates cfg.Taps taps, posts them with cfg.Workers senders, and
// reads the resulting score. Taps are scored asynchronously by the server,
// so Run polls /score until every accepted tap has been folded or
// settleTimeout passes.
func Run(ctx context.Context, cfg Config) (Report, error) {
	if err := validate(&cfg); err != nil {
		return Report{}, err
	}
	log := logger.Get().Named("simulate")
	start := time.Now()

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(start.UnixNano()) //nolint:gosec // clock bits as seed
	}
	taps := NewGenerator(cfg.Bias, cfg.ViewportWidth, seed).Batch(cfg.Taps)
	client := NewClient(cfg.BaseURL, cfg.Timeout)

	log.Info(ctx, "submitting taps",
		logger.Int("taps", len(taps)),
		logger.String("bias", string(cfg.Bias)),
		logger.Int("workers", cfg.Workers),
	)

	before, err := client.Score(ctx)
	if err != nil {
		return Report{}, err
	}

	var accepted, duplicate, failed int64
	tapCh := make(chan model.Tap, cfg.Workers*2)
	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tapCh {
				outcome, err := client.PostTap(ctx, &t)
				switch outcome {
				case OutcomeAccepted:
					atomic.AddInt64(&accepted, 1)
				case OutcomeDuplicate:
					atomic.AddInt64(&duplicate, 1)
				default:
					atomic.AddInt64(&failed, 1)
					log.Warn(ctx, "tap submission failed", logger.String("eventID", t.EventID), logger.Error(err))
				}
			}
		}()
	}

	go func() {
		defer close(tapCh)
		for _, t := range taps {
			select {
			case <-ctx.Done():
				return
			case tapCh <- t:
			}
		}
	}()
	wg.Wait()

	report := Report{
		Generated: len(taps),
		Accepted:  int(accepted),
		Duplicate: int(duplicate),
		Failed:    int(failed),
		Expected:  ExpectedHand(cfg.Bias),
	}

	score, err := settle(ctx, client, before, report.Accepted)
	if err != nil {
		return report, err
	}
	report.Score = score
	report.Matched = score.Hand == report.Expected
	report.Duration = time.Since(start)

	log.Info(ctx, "simulation completed",
		logger.Int("accepted", report.Accepted),
		logger.Int("duplicate", report.Duplicate),
		logger.Int("failed", report.Failed),
		logger.Int("tapCount", score.TapCount),
		logger.Float64("score", score.Score),
		logger.String("hand", score.Hand),
		logger.Bool("matched", report.Matched),
	)
	return report, nil
}

const (
	settleTimeout  = 5 * time.Second
	settleInterval = 50 * time.Millisecond
)

// settle waits until the server has processed the accepted taps. Taps the
// classifier rejects never change the count, so it stops once the score
// stops moving as well.
func settle(ctx context.Context, c *Client, before ScoreResponse, accepted int) (ScoreResponse, error) {
	deadline := time.Now().Add(settleTimeout)
	var last ScoreResponse
	stable := 0
	for {
		s, err := c.Score(ctx)
		if err != nil {
			return s, err
		}
		if s.TapCount-before.TapCount >= accepted {
			return s, nil
		}
		if s == last {
			stable++
		} else {
			stable = 0
		}
		last = s
		if stable >= 3 || time.Now().After(deadline) {
			return s, nil
		}
		select {
		case <-ctx.Done():
			return s, ctx.Err()
		case <-time.After(settleInterval):
		}
	}
}

func validate(cfg *Config) error {
	switch {
	case cfg.BaseURL == "":
		return fmt.Errorf("%w: base url is empty", ErrInvalidSimulation)
	case cfg.Taps <= 0:
		return fmt.Errorf("%w: taps must be positive", ErrInvalidSimulation)
	case cfg.ViewportWidth <= 0:
		return fmt.Errorf("%w: viewport width must be positive", ErrInvalidSimulation)
	}
	if _, err := ParseBias(string(cfg.Bias)); err != nil {
		return err
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return nil
}
