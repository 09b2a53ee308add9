// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package helper

import (
	"context"
	"time"

	"github.com/telekom/rawtrace/internal/logger"
)

// maxShift caps the backoff multiplier at 2^maxShift
const maxShift = 16

// RetryConfig configures how often and how fast an effector is retried.
type RetryConfig struct {
	// Count is the number of additional attempts after the first one.
	Count int `yaml:"count" mapstructure:"count"`
	// Delay is the initial backoff delay, doubled for each further attempt.
	Delay time.Duration `yaml:"delay" mapstructure:"delay"`
}

// Attempts returns the total number of calls an effector gets.
func (rc RetryConfig) Attempts() int {
	return 1 + max(rc.Count, 0)
}

// Effector is the function called by [RetryIf]
type Effector func(context.Context) error

// RetryIf calls effector until it succeeds, fails with an error retryable
// rejects or the configured attempts are used up. Attempts are spaced with
// an exponential backoff starting at rc.Delay.
func RetryIf(effector Effector, rc RetryConfig, retryable func(error) bool) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		var err error
		for attempt := 1; attempt <= rc.Attempts(); attempt++ {
			if attempt > 1 {
				if wErr := wait(ctx, backoff(rc.Delay, attempt-1)); wErr != nil {
					return wErr
				}
			}

			err = effector(ctx)
			if err == nil || !retryable(err) {
				return err
			}
			logger.FromContext(ctx).DebugContext(ctx, "Attempt failed", "attempt", attempt, "of", rc.Attempts(), "error", err)
		}
		return err
	}
}

// wait blocks for d or until ctx is done
func wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// backoff returns the delay before retry n, n starting at 1
func backoff(initial time.Duration, n int) time.Duration {
	return initial << min(max(n-1, 0), maxShift)
}
