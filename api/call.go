package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/raywall/yelp-fusion-toolkit/apierr"
	"github.com/raywall/yelp-fusion-toolkit/pkg/metrics"
)

// Nomes das métricas emitidas por chamada.
const (
	MetricRequest = "yelp.api.request"
	MetricLatency = "yelp.api.latency_ms"
)

// call descreve um GET contra a Fusion.
type call struct {
	op      string
	path    string
	params  url.Values
	headers map[string]string
}

// get executa a chamada e decodifica o corpo em out.
func (c *Client) get(ctx context.Context, cl call, out interface{}) error {
	requestID := uuid.NewString()
	log := c.logger.With().
		Str("operation", cl.op).
		Str("request_id", requestID).
		Logger()

	ctx, span := c.tracer.Start(ctx, "yelp."+cl.op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("yelp.operation", cl.op),
			attribute.String("yelp.request_id", requestID),
		),
	)
	defer span.End()

	start := time.Now()
	status := "error"
	defer func() { c.observe(log, cl.op, status, time.Since(start)) }()

	// 1. Token
	token, err := c.provider.Token(ctx)
	if err != nil {
		return c.fail(span, log, err)
	}
	if token == "" {
		return c.fail(span, log, apierr.Authentication(nil, "no token available to make API call"))
	}

	// 2. Requisição
	endpoint := c.baseURL + cl.path
	req := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Accept", "application/json").
		SetHeader(HeaderRequestID, requestID)
	if c.userAgent != "" {
		req.SetHeader("User-Agent", c.userAgent)
	}
	for k, v := range cl.headers {
		req.SetHeader(k, v)
	}
	if len(cl.params) > 0 {
		req.SetQueryParamsFromValues(cl.params)
	}

	log.Debug().Str("url", endpoint).Str("query", cl.params.Encode()).Msg("calling fusion api")

	resp, err := req.Get(endpoint)
	if err != nil {
		return c.fail(span, log, apierr.OperationFailed(err, "request to %s failed", endpoint))
	}

	status = strconv.Itoa(resp.StatusCode())
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode()))

	// 3. Status
	if err := statusToError(resp, endpoint); err != nil {
		return c.fail(span, log, err)
	}

	// 4. Corpo
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return c.fail(span, log, apierr.OperationFailed(err, "could not decode response from %s", endpoint))
	}

	log.Debug().Str("status", status).Dur("elapsed", time.Since(start)).Msg("fusion api call succeeded")
	return nil
}

// statusToError traduz status HTTP de erro para a taxonomia de apierr.
func statusToError(resp *resty.Response, endpoint string) error {
	if resp.IsSuccess() {
		return nil
	}

	status := &apierr.StatusError{StatusCode: resp.StatusCode(), Body: resp.String()}
	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return apierr.Authentication(status, "request to %s was not authorized", endpoint)
	case http.StatusBadRequest:
		return apierr.Wrap(apierr.KindBadArgument, status, "request to %s was rejected", endpoint)
	default:
		return apierr.OperationFailed(status, "request to %s failed", endpoint)
	}
}

func (c *Client) fail(span trace.Span, log zerolog.Logger, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, apierr.KindOf(err).String())
	log.Warn().Err(err).Str("kind", apierr.KindOf(err).String()).Msg("fusion api call failed")
	return err
}

func (c *Client) observe(log zerolog.Logger, op, status string, elapsed time.Duration) {
	tags := []string{metrics.Tag("operation", op), metrics.Tag("status", status)}
	if err := c.metrics.Count(MetricRequest, 1, tags); err != nil {
		log.Debug().Err(err).Str("metric", MetricRequest).Msg("metric not sent")
	}
	ms := float64(elapsed) / float64(time.Millisecond)
	if err := c.metrics.Histogram(MetricLatency, ms, tags); err != nil {
		log.Debug().Err(err).Str("metric", MetricLatency).Msg("metric not sent")
	}
}
