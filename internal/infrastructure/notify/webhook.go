package notify

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/survivor-league/internal/platform/logging"
	"github.com/riskibarqy/survivor-league/internal/platform/resilience"
	"github.com/riskibarqy/survivor-league/internal/usecase"
)

var errWebhookTransient = crerr.New("webhook transient failure")

type WebhookConfig struct {
	URL            string
	Secret         string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// WebhookNotifier delivers settlement events to a league-operator endpoint
// (Slack bridge, Discord relay, whatever they hooked up).
type WebhookNotifier struct {
	client         *http.Client
	url            string
	secret         string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

var _ usecase.Notifier = (*WebhookNotifier)(nil)

func NewWebhookNotifier(cfg WebhookConfig, logger *logging.Logger) *WebhookNotifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &WebhookNotifier{
		client:         &http.Client{Timeout: timeout},
		url:            strings.TrimSpace(cfg.URL),
		secret:         strings.TrimSpace(cfg.Secret),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (n *WebhookNotifier) WeekSettled(ctx context.Context, event usecase.WeekSettledEvent) error {
	if n.circuitEnabled {
		if err := n.breaker.Allow(); err != nil {
			n.logger.WarnContext(ctx, "webhook circuit breaker rejected delivery", "state", n.breaker.State())
			return fmt.Errorf("webhook is temporarily unavailable: %w", err)
		}
	}

	endpoint, err := validateHTTPURL(n.url)
	if err != nil {
		return crerr.Wrap(err, "invalid webhook url")
	}

	body, err := sonic.Marshal(event)
	if err != nil {
		return crerr.Wrap(err, "marshal settlement event")
	}
	preview := buildDeliveryPreview(endpoint, string(body), n.secret != "")

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("webhook.url", endpoint),
			attribute.Int("webhook.week", event.Week),
			attribute.String("webhook.request_curl_preview", preview),
		)
	}
	n.logger.InfoContext(ctx, "delivering settlement webhook",
		"league_id", event.LeagueID,
		"week", event.Week,
		"curl_preview", preview,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(body)))
	if err != nil {
		return crerr.Wrap(err, "create webhook request")
	}
	req.Header.Set("Content-Type", "application/json")
	if n.secret != "" {
		req.Header.Set("X-Webhook-Secret", n.secret)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		callErr := fmt.Errorf("%w: deliver settlement webhook url=%s: %v", errWebhookTransient, endpoint, err)
		n.recordCircuitResult(callErr)
		return callErr
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if isRetryableStatus(resp.StatusCode) {
			callErr := fmt.Errorf(
				"%w: deliver settlement webhook status=%d url=%s body=%s",
				errWebhookTransient, resp.StatusCode, endpoint, strings.TrimSpace(string(raw)),
			)
			n.recordCircuitResult(callErr)
			return callErr
		}

		callErr := fmt.Errorf(
			"deliver settlement webhook status=%d url=%s body=%s",
			resp.StatusCode, endpoint, strings.TrimSpace(string(raw)),
		)
		n.recordCircuitResult(callErr)
		return callErr
	}

	n.recordCircuitResult(nil)
	return nil
}

func (n *WebhookNotifier) recordCircuitResult(err error) {
	if !n.circuitEnabled || n.breaker == nil {
		return
	}
	if err == nil {
		n.breaker.RecordSuccess()
		return
	}
	if stderrors.Is(err, errWebhookTransient) {
		n.breaker.RecordFailure()
		return
	}
	n.breaker.RecordSuccess()
}

func validateHTTPURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return candidate, nil
}

func buildDeliveryPreview(endpoint, body string, withSecret bool) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPart := func(part string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}

	appendPart("curl")
	appendPart("-X")
	appendPart("POST")
	appendPart(shellQuote(endpoint))
	appendPart("-H")
	appendPart(shellQuote("Content-Type: application/json"))
	if withSecret {
		appendPart("-H")
		appendPart(shellQuote("X-Webhook-Secret: ***"))
	}
	appendPart("-d")
	appendPart(shellQuote(truncateForLog(body, 4096)))

	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}
