package enhance

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"cvenhancer-backend/internal/llm"
	"cvenhancer-backend/internal/shared/telemetry"
)

const completionRetryDelay = 300 * time.Millisecond

// retryingClient wraps an llm.Client with a single bounded retry for
// transient failures. Rate limits and invalid-request errors pass through
// untouched; the caller's resubmission is the recovery path for those.
type retryingClient struct {
	base      llm.Client
	requestID string
}

func newRetryingClient(base llm.Client, requestID string) llm.Client {
	if base == nil {
		return nil
	}
	return retryingClient{base: base, requestID: requestID}
}

func (r retryingClient) Complete(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	out, err := r.base.Complete(ctx, prompt, opts)
	if err == nil || !isTransient(err) {
		return out, err
	}

	telemetry.Warn("completion.retry", map[string]any{
		"attempt":    1,
		"request_id": r.requestID,
		"model":      opts.Model,
		"err":        sanitizeError(err),
	})
	select {
	case <-time.After(completionRetryDelay):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	return r.base.Complete(ctx, prompt, opts)
}

func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") || strings.Contains(msg, "server_error") {
		return true
	}
	if strings.Contains(msg, "timeout") {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "eof") {
		return true
	}

	return false
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}
