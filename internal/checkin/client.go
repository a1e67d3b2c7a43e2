// Package checkin talks to the remote check-in webhooks.
package checkin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"qrcheckin.klederson.com/internal/config"
	apperrors "qrcheckin.klederson.com/internal/errors"
)

const (
	// HeaderAuth carries the request signature.
	HeaderAuth = "DEAuth"
	// HeaderRequestID correlates kiosk and webhook logs.
	HeaderRequestID = "X-Request-ID"

	maxBody = 1 << 20
)

// Client calls the check-in endpoints. It is safe for concurrent use.
type Client struct {
	http      *http.Client
	endpoints config.Endpoints
	timeout   time.Duration
	tracer    trace.Tracer
	log       *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a client. A non-positive timeout disables the per-call bound.
func New(endpoints config.Endpoints, timeout time.Duration, log *slog.Logger, opts ...Option) *Client {
	if log == nil {
		log = slog.Default()
	}
	c := &Client{
		http:      &http.Client{},
		endpoints: endpoints,
		timeout:   timeout,
		tracer:    otel.Tracer("qrcheckin/checkin"),
		log:       log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type checkInRequest struct {
	ID      string `json:"ID"`
	EventID string `json:"EventID,omitempty"`
}

// CheckIn asks the check-in endpoint to verify id for eventID.
func (c *Client) CheckIn(ctx context.Context, id, eventID, signature string) Result {
	resp := c.post(ctx, "checkin", c.endpoints.CheckIn, checkInRequest{ID: id, EventID: eventID}, signature)
	return classify(resp)
}

// Lookup fetches an attendee by id without a QR token.
func (c *Client) Lookup(ctx context.Context, id, signature string) Result {
	resp := c.post(ctx, "lookup", c.endpoints.Lookup, checkInRequest{ID: id}, signature)
	return classify(resp)
}

// Confirm marks id as checked in. The response body is not inspected.
func (c *Client) Confirm(ctx context.Context, id, eventID, signature string) Result {
	resp := c.post(ctx, "confirm", c.endpoints.Confirm, checkInRequest{ID: id, EventID: eventID}, signature)
	if failed, ok := resp.failure(); ok {
		return failed
	}
	return Result{Outcome: Success, Status: resp.status}
}

// SendNoShowList triggers the no-show notification.
func (c *Client) SendNoShowList(ctx context.Context, signature string) Result {
	return c.admin(ctx, "noshow", c.endpoints.NoShowList, signature)
}

// SendSummary triggers the attendance summary.
func (c *Client) SendSummary(ctx context.Context, signature string) Result {
	return c.admin(ctx, "summary", c.endpoints.Summary, signature)
}

func (c *Client) admin(ctx context.Context, op, url, signature string) Result {
	resp := c.post(ctx, op, url, struct{}{}, signature)
	if failed, ok := resp.failure(); ok {
		return failed
	}
	return Result{Outcome: Success, Status: resp.status, Payload: renderPayload(resp.body)}
}

type response struct {
	status int
	body   []byte
	err    error
}

func (r response) ok() bool {
	return r.err == nil && r.status >= 200 && r.status < 300
}

// failure maps transport errors and non-2xx answers to a Result.
func (r response) failure() (Result, bool) {
	switch {
	case r.err != nil:
		return Result{
			Outcome: NetworkError,
			Err:     apperrors.Wrap(apperrors.CodeNetwork, "request failed", r.err),
		}, true
	case r.status == http.StatusNotFound:
		msg := notFoundMessage(r.body)
		return Result{
			Outcome: NotFound,
			Status:  r.status,
			Message: msg,
			Err:     apperrors.WithStatus(apperrors.CodeNotFound, r.status, msg),
		}, true
	case !r.ok():
		return Result{
			Outcome: APIError,
			Status:  r.status,
			Err:     apperrors.WithStatus(apperrors.CodeAPI, r.status, ""),
		}, true
	}
	return Result{}, false
}

func (c *Client) post(ctx context.Context, op, url string, payload any, signature string) response {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	requestID := uuid.NewString()
	ctx, span := c.tracer.Start(ctx, "checkin."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.url", url),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	resp := c.do(ctx, url, payload, signature, requestID)
	if resp.err != nil {
		span.RecordError(resp.err)
		span.SetStatus(codes.Error, resp.err.Error())
	} else {
		span.SetAttributes(attribute.Int("http.status_code", resp.status))
		if !resp.ok() {
			span.SetStatus(codes.Error, http.StatusText(resp.status))
		}
	}

	c.log.Debug("webhook call",
		"op", op,
		"request_id", requestID,
		"status", resp.status,
		"error", resp.err,
	)
	return resp
}

func (c *Client) do(ctx context.Context, url string, payload any, signature, requestID string) response {
	body, err := json.Marshal(payload)
	if err != nil {
		return response{err: fmt.Errorf("encode request: %w", err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return response{err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderAuth, signature)
	req.Header.Set(HeaderRequestID, requestID)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	res, err := c.http.Do(req)
	if err != nil {
		return response{err: err}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, maxBody))
	if err != nil {
		return response{status: res.StatusCode, err: fmt.Errorf("read response: %w", err)}
	}
	return response{status: res.StatusCode, body: data}
}

// classify applies the check-in decision table to a response.
func classify(r response) Result {
	if failed, ok := r.failure(); ok {
		return failed
	}

	var a Attendee
	if err := json.Unmarshal(r.body, &a); err != nil {
		return Result{
			Outcome: APIError,
			Status:  r.status,
			Err:     apperrors.Wrap(apperrors.CodeAPI, "decode attendee", err),
		}
	}
	a.Raw = json.RawMessage(r.body)

	if a.CheckIn {
		return Result{
			Outcome:  AlreadyCheckedIn,
			Attendee: &a,
			Status:   r.status,
			Err:      apperrors.New(apperrors.CodeAlreadyCheckedIn, a.ID),
		}
	}
	return Result{Outcome: Success, Attendee: &a, Status: r.status}
}

// notFoundMessage extracts {Message} from a 404 body, if present.
func notFoundMessage(body []byte) string {
	var e struct {
		Message string `json:"Message"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	return e.Message
}

// renderPayload returns JSON bodies compacted and anything else trimmed.
func renderPayload(body []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err == nil {
		return buf.String()
	}
	return strings.TrimSpace(string(body))
}
