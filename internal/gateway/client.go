package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/gymcoach/internal/normalization"
	"github.com/yungbote/gymcoach/internal/observability"
	"github.com/yungbote/gymcoach/internal/platform/ctxutil"
	"github.com/yungbote/gymcoach/internal/platform/logger"
)

const (
	DefaultBaseURL  = "http://localhost:8000/api/v1"
	DefaultChatPath = "/chat"

	PathMealPlanner    = "/meal-planner"
	PathWorkoutPlanner = "/workout-planner"
	PathFoodScanner    = "/food-scanner"

	OpMealPlan    = "meal_plan"
	OpWorkoutPlan = "workout_plan"
	OpFoodScan    = "food_scan"
	OpChat        = "chat"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 8 << 20

type Options struct {
	BaseURL  string
	APIKey   string
	ChatPath string

	// Timeout of 0 means no per-request deadline beyond ctx.
	Timeout time.Duration

	Constraints Constraints

	HTTPClient *http.Client
	Logger     *logger.Logger
}

type Client struct {
	baseURL     string
	apiKey      string
	chatPath    string
	timeout     time.Duration
	constraints Constraints

	httpClient *http.Client
	log        *logger.Logger
	tracer     trace.Tracer
}

func New(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("baseURL required")
	}
	chatPath := strings.TrimSpace(opts.ChatPath)
	if chatPath == "" {
		chatPath = DefaultChatPath
	}
	if !strings.HasPrefix(chatPath, "/") {
		chatPath = "/" + chatPath
	}
	timeout := opts.Timeout
	if timeout < 0 {
		timeout = 0
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:     baseURL,
		apiKey:      strings.TrimSpace(opts.APIKey),
		chatPath:    chatPath,
		timeout:     timeout,
		constraints: opts.Constraints.withDefaults(),
		httpClient:  hc,
		log:         log.With("component", "gateway"),
		tracer:      otel.Tracer("github.com/yungbote/gymcoach/internal/gateway"),
	}, nil
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) Constraints() Constraints { return c.constraints }

func (c *Client) setHeaders(ctx context.Context, req *http.Request, contentType string) {
	if strings.TrimSpace(contentType) != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if td := ctxutil.GetTraceData(ctx); td != nil && td.RequestID != "" {
		req.Header.Set("X-Request-Id", td.RequestID)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}

// decodeFunc turns the decoded response object into the caller's result.
type decodeFunc func(obj map[string]any) error

func (c *Client) doJSON(ctx context.Context, op, path string, body any, decode decodeFunc) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
	}
	return c.post(ctx, op, path, "application/json", buf.Bytes(), decode)
}

// post sends one request, decodes the body into an object and hands it to
// decode, all inside one span. There is no retry loop: a failed call is
// retried only when the user asks.
func (c *Client) post(ctx context.Context, op, path, contentType string, payload []byte, decode decodeFunc) (err error) {
	ctx = ctxutil.Default(ctx)
	ctx, span := c.tracer.Start(ctx, "gateway."+op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	start := time.Now()
	status := 0
	defer func() {
		dur := time.Since(start)
		observability.Current().ObserveGateway(op, Kind(err), dur)
		fields := []interface{}{"op", op, "status", status, "duration_ms", dur.Milliseconds()}
		span.SetAttributes(attribute.String("gateway.op", op), attribute.Int("http.response.status_code", status))
		if err != nil {
			kind := Kind(err)
			span.SetAttributes(attribute.String("gateway.kind", kind))
			span.RecordError(err)
			span.SetStatus(codes.Error, kind)
			c.log.Warn("gateway call failed", append(fields, "kind", kind, "error", err.Error())...)
			return
		}
		c.log.Debug("gateway call ok", fields...)
	}()

	ctx2 := ctx
	var cancel context.CancelFunc
	if c.timeout > 0 {
		ctx2, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx2, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	c.setHeaders(ctx2, req, contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &NetworkError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
			Body:       excerpt(raw),
		}
	}
	if readErr != nil {
		return &NetworkError{Op: op, StatusCode: resp.StatusCode, Status: statusText(resp), Err: readErr}
	}

	obj, err := normalization.DecodeObject(raw)
	if err != nil {
		return &SchemaError{Op: op, Reason: err.Error()}
	}
	if decode == nil {
		return nil
	}
	return decode(obj)
}

// statusText strips the code from resp.Status ("500 Internal Server Error").
func statusText(resp *http.Response) string {
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(resp.Status), strconv.Itoa(resp.StatusCode)))
	if s == "" {
		return http.StatusText(resp.StatusCode)
	}
	return s
}

func excerpt(raw []byte) string {
	const max = 512
	s := strings.TrimSpace(string(raw))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// unwrap resolves the response layout and turns a success=false wrapper or a
// structural problem into the matching typed error.
func unwrap(op string, obj map[string]any, payloadKey string) (normalization.Envelope, error) {
	env := normalization.DetectEnvelope(obj, payloadKey)
	if env.Failed() {
		return env, &RejectedError{Op: op, Message: env.Message(defaultRejection)}
	}
	return env, nil
}

func schemaErr(op string, err error) error {
	var fe *normalization.FieldError
	if errors.As(err, &fe) {
		return &SchemaError{Op: op, Path: fe.Path, Reason: fe.Reason}
	}
	return &SchemaError{Op: op, Reason: err.Error()}
}
