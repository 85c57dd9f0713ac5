package api

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/raywall/yelp-fusion-toolkit/apierr"
	"github.com/raywall/yelp-fusion-toolkit/oauth"
	"github.com/raywall/yelp-fusion-toolkit/pkg/metrics"
)

const (
	defaultTimeout = 30 * time.Second
	tracerName     = "github.com/raywall/yelp-fusion-toolkit/api"
)

// Client implementa API sobre um cliente resty.
type Client struct {
	http      *resty.Client
	provider  oauth.TokenProvider
	baseURL   string
	authURL   string
	userAgent string
	timeout   time.Duration
	eager     bool
	logger    zerolog.Logger
	metrics   metrics.Provider
	tracer    trace.Tracer
	resolver  CredentialsResolver
}

var _ API = (*Client)(nil)

// Option configura um Client.
type Option func(*Client)

// WithBaseURL troca a URL base (ex.: o emulator local).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithAuthURL troca o endpoint de token usado por NewWithCredentials.
func WithAuthURL(authURL string) Option {
	return func(c *Client) { c.authURL = authURL }
}

// WithHTTPClient usa um cliente resty já configurado. O mesmo cliente é
// compartilhado com o provider de credenciais e nunca é modificado.
func WithHTTPClient(client *resty.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithLogger define o logger do cliente e do provider de credenciais.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithMetrics envia contagem e latência de cada chamada ao provider informado.
func WithMetrics(provider metrics.Provider) Option {
	return func(c *Client) {
		if provider != nil {
			c.metrics = provider
		}
	}
}

// WithTracerProvider troca o provider global do OpenTelemetry.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		if tp != nil {
			c.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithTimeout define o timeout de cada chamada HTTP. Não altera um cliente
// recebido por WithHTTPClient, que mantém o timeout do chamador.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithUserAgent define o header User-Agent enviado em cada chamada.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithEagerAuthentication obtém o token durante a construção, falhando cedo
// quando as credenciais são inválidas.
func WithEagerAuthentication() Option {
	return func(c *Client) { c.eager = true }
}

// New cria um Client que obtém tokens do provider informado.
func New(provider oauth.TokenProvider, opts ...Option) (*Client, error) {
	if provider == nil {
		return nil, apierr.BadArgument("token provider is required")
	}
	c, err := newClient(opts...)
	if err != nil {
		return nil, err
	}
	c.provider = provider
	if err := c.authenticate(context.Background()); err != nil {
		return nil, err
	}
	return c, nil
}

// NewWithToken cria um Client com um token fixo.
func NewWithToken(token string, opts ...Option) (*Client, error) {
	provider, err := oauth.NewBasicProvider(token)
	if err != nil {
		return nil, err
	}
	return New(provider, opts...)
}

// NewWithCredentials cria um Client que troca client id/secret por um token
// no primeiro uso (ou na construção, com WithEagerAuthentication).
func NewWithCredentials(ctx context.Context, clientID, clientSecret string, opts ...Option) (*Client, error) {
	c, err := newClient(opts...)
	if err != nil {
		return nil, err
	}
	if err := c.useCredentials(clientID, clientSecret); err != nil {
		return nil, err
	}
	if err := c.authenticate(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func newClient(opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: DefaultBaseURL,
		logger:  zerolog.Nop(),
		metrics: &metrics.NoopProvider{},
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}

	// 1. Transporte
	if c.http == nil {
		timeout := defaultTimeout
		if c.timeout > 0 {
			timeout = c.timeout
		}
		c.http = resty.New().SetTimeout(timeout)
	}

	// 2. URL base
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	u, err := url.Parse(c.baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, apierr.BadArgument("invalid base url: %q", c.baseURL)
	}

	return c, nil
}

func (c *Client) useCredentials(clientID, clientSecret string) error {
	opts := []oauth.Option{
		oauth.WithHTTPClient(c.http),
		oauth.WithLogger(c.logger),
	}
	if c.authURL != "" {
		opts = append(opts, oauth.WithAuthURL(c.authURL))
	}
	provider, err := oauth.NewRenewingProvider(clientID, clientSecret, opts...)
	if err != nil {
		return err
	}
	c.provider = provider
	return nil
}

func (c *Client) authenticate(ctx context.Context) error {
	if !c.eager {
		return nil
	}
	if _, err := c.provider.Token(ctx); err != nil {
		c.logger.Error().Err(err).Msg("eager authentication failed")
		return err
	}
	c.logger.Debug().Msg("eager authentication succeeded")
	return nil
}

// BaseURL retorna a URL base efetiva.
func (c *Client) BaseURL() string { return c.baseURL }

// Close libera o provider de métricas, quando ele mantém recursos (ex.: statsd).
func (c *Client) Close() error {
	if closer, ok := c.metrics.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (c *Client) String() string {
	return fmt.Sprintf("Client{baseURL=%s, provider=%v}", c.baseURL, c.provider)
}
