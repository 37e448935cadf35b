// internal/common/camunda/client.go
package camunda

import (
	"context"
	"fmt"
	"strings"
	"time"

	"marketplace-workers/internal/common/config"
	"marketplace-workers/internal/common/errors"
	"marketplace-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

var DefaultRetryConfig = RetryConfig{
	MaxRetries: 10,
	BaseDelay:  2 * time.Second,
	MaxDelay:   30 * time.Second,
}

// Connect creates a Zeebe client and waits for the gateway topology,
// retrying transient failures with exponential backoff.
func Connect(ctx context.Context, cfg config.CamundaConfig, retry RetryConfig, log logger.Logger) (zbc.Client, error) {
	var client zbc.Client

	err := RetryWithBackoff(ctx, retry, log, "zeebe connect", func(ctx context.Context) error {
		c, err := zbc.NewClient(&zbc.ClientConfig{
			GatewayAddress:         cfg.BrokerAddress,
			UsePlaintextConnection: cfg.Plaintext,
		})
		if err != nil {
			return err
		}

		topoCtx, cancel := context.WithTimeout(ctx, config.GetDuration(cfg.RequestTimeout))
		defer cancel()
		if _, err := c.NewTopologyCommand().Send(topoCtx); err != nil {
			_ = c.Close()
			return err
		}

		client = c
		return nil
	})
	if err != nil {
		return nil, mapZeebeError(err, "zeebe connect")
	}
	return client, nil
}

// RetryWithBackoff runs op until it succeeds, fails with a non-transient
// error, exhausts retry.MaxRetries or ctx is done. The last error is wrapped
// unchanged so callers can classify it.
func RetryWithBackoff(ctx context.Context, retry RetryConfig, log logger.Logger, operation string, op func(context.Context) error) error {
	delay := retry.BaseDelay
	var lastErr error

	for attempt := 1; attempt <= retry.MaxRetries; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if !isRetryableError(lastErr) || attempt == retry.MaxRetries {
			break
		}

		log.Warn(fmt.Sprintf("%s failed, retrying", operation), map[string]interface{}{
			"error":       lastErr.Error(),
			"attempt":     attempt,
			"maxRetries":  retry.MaxRetries,
			"nextRetryIn": delay.String(),
		})

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("%s cancelled after %d attempts: %w", operation, attempt, ctx.Err())
		}

		delay *= 2
		if delay > retry.MaxDelay {
			delay = retry.MaxDelay
		}
	}

	return fmt.Errorf("%s failed: %w", operation, lastErr)
}

func isRetryableError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, phrase := range []string{
		"connection refused",
		"connection reset",
		"timeout",
		"deadline exceeded",
		"unavailable",
		"unreachable",
		"broken pipe",
		"no such host",
		"starting up",
		"eof",
	} {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}

func mapZeebeError(err error, operation string) error {
	msg := err.Error()
	lower := strings.ToLower(msg)
	wrapped := fmt.Errorf("%s: %s", operation, msg)

	switch {
	case strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline exceeded"):
		return errors.NewTimeoutError("zeebe", wrapped)
	case strings.Contains(lower, "not found"):
		return errors.NewResourceNotFoundError("zeebe", wrapped.Error())
	case strings.Contains(lower, "permission denied") || strings.Contains(lower, "unauthorized"):
		return errors.NewAuthenticationError(wrapped.Error())
	default:
		return errors.NewExternalServiceError("zeebe", wrapped)
	}
}

// HealthCheck asks the gateway for its topology.
func HealthCheck(ctx context.Context, client zbc.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := client.NewTopologyCommand().Send(ctx); err != nil {
		return fmt.Errorf("zeebe health check failed: %w", err)
	}
	return nil
}
