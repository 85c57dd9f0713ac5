package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/raywall/yelp-fusion-toolkit/apierr"
)

const defaultTimeout = 60 * time.Second

// tokenResponse mapeia a resposta da RFC 6749. Ponteiros distinguem campo ausente de zero.
type tokenResponse struct {
	AccessToken *string  `json:"access_token"`
	ExpiresIn   *float64 `json:"expires_in"`
	TokenType   string   `json:"token_type"`
}

// RenewingProvider obtém o token via client credentials e o mantém em cache.
type RenewingProvider struct {
	clientID     string
	clientSecret string
	authURL      string
	http         *resty.Client
	logger       zerolog.Logger

	token atomic.Pointer[string]
}

// Option configura um RenewingProvider.
type Option func(*RenewingProvider)

// WithAuthURL troca o endpoint de token (útil para o emulator e testes).
func WithAuthURL(authURL string) Option {
	return func(p *RenewingProvider) { p.authURL = authURL }
}

// WithHTTPClient usa um cliente resty já configurado (timeouts, proxy, transport).
func WithHTTPClient(client *resty.Client) Option {
	return func(p *RenewingProvider) {
		if client != nil {
			p.http = client
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(p *RenewingProvider) { p.logger = logger }
}

// NewRenewingProvider cria o provider de client credentials.
func NewRenewingProvider(clientID, clientSecret string, opts ...Option) (*RenewingProvider, error) {
	if strings.TrimSpace(clientID) == "" || strings.TrimSpace(clientSecret) == "" {
		return nil, apierr.BadArgument("client id and client secret are required")
	}

	p := &RenewingProvider{
		clientID:     clientID,
		clientSecret: clientSecret,
		authURL:      DefaultAuthURL,
		logger:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.http == nil {
		p.http = resty.New().SetTimeout(defaultTimeout)
	}

	u, err := url.Parse(p.authURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, apierr.BadArgument("invalid authorization url: %q", p.authURL)
	}
	return p, nil
}

// Token devolve o token em cache ou faz a troca de credenciais na primeira chamada.
func (p *RenewingProvider) Token(ctx context.Context) (string, error) {
	if cached := p.token.Load(); cached != nil {
		return *cached, nil
	}

	token, ttl, err := p.fetch(ctx)
	if err != nil {
		return "", err
	}

	p.logger.Debug().
		Float64("expires_in_days", ttl.Hours()/24).
		Float64("expires_in_minutes", ttl.Minutes()).
		Msg("oauth token obtained")

	p.token.Store(&token)
	return token, nil
}

func (p *RenewingProvider) fetch(ctx context.Context) (string, time.Duration, error) {
	// 1. Requisição form-encoded (application/x-www-form-urlencoded)
	resp, err := p.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetFormData(map[string]string{
			"grant_type":    "client_credentials",
			"client_id":     p.clientID,
			"client_secret": p.clientSecret,
		}).
		Post(p.authURL)
	if err != nil {
		p.logger.Error().Err(err).Str("auth_url", p.authURL).Msg("oauth request failed")
		return "", 0, apierr.OperationFailed(err, "failed to get access token")
	}

	// 2. Mapeamento de status: 400 no endpoint de token significa credencial inválida
	status := &apierr.StatusError{StatusCode: resp.StatusCode(), Body: resp.String()}
	switch {
	case resp.StatusCode() == http.StatusBadRequest:
		return "", 0, apierr.Authentication(status, "client id or secret are incorrect")
	case !resp.IsSuccess():
		return "", 0, apierr.OperationFailed(status, "failed to get access token")
	}

	// 3. Parse da resposta
	var body tokenResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", 0, apierr.OperationFailed(err, "oauth response is not valid json")
	}
	if body.ExpiresIn == nil {
		return "", 0, apierr.OperationFailed(nil, "oauth response is missing expiration information")
	}
	if body.AccessToken == nil || *body.AccessToken == "" {
		return "", 0, apierr.BadArgument("oauth response is missing the access token")
	}

	ttl := time.Duration(*body.ExpiresIn * float64(time.Second))
	return *body.AccessToken, ttl, nil
}

func (p *RenewingProvider) String() string {
	return "RenewingProvider{authURL=" + p.authURL + ", clientID=" + p.clientID + ", clientSecret=<redacted>}"
}
