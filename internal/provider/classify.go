package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/alnah/airename/internal/apierr"
)

// classify maps a failed call to the apierr taxonomy. budget is the time the
// call was allowed, reported on timeouts.
// Caller cancellation and unrecognized failures are returned unchanged.
func classify(cfg Config, budget time.Duration, err error) error {
	if err == nil {
		return nil
	}
	name := cfg.Kind.DisplayName()

	var provErr *apierr.ProviderError
	if errors.As(err, &provErr) {
		return err
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &apierr.ProviderError{
			Provider:   name,
			StatusCode: apiErr.HTTPStatusCode,
			Message:    apiErr.Message,
		}
	}

	if errors.Is(err, context.Canceled) {
		return err
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return fmt.Errorf("cannot connect to %s at %s - is it running?: %w", name, cfg.Endpoint, apierr.ErrUnreachable)
	}

	if isTimeout(err) {
		return fmt.Errorf("no answer within %s - try reducing image size or increasing timeout: %w",
			formatBudget(budget), apierr.ErrTimeout)
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%s may be overloaded or crashed: %w", name, apierr.ErrConnectionLost)
	}

	return err
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// formatBudget prints whole seconds for budgets of a second or more and
// whole milliseconds below.
func formatBudget(d time.Duration) string {
	if d >= time.Second {
		return d.Round(time.Second).String()
	}
	return d.Round(time.Millisecond).String()
}

// withBudget bounds ctx by timeout and returns the time the call is actually
// allowed, which is shorter when ctx already carries an earlier deadline.
func withBudget(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc, time.Duration) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	budget := timeout
	if deadline, ok := ctx.Deadline(); ok && deadline.Sub(start) < budget {
		budget = deadline.Sub(start)
	}
	return ctx, cancel, budget
}
