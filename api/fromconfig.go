package api

import (
	"context"
	"io"

	"github.com/raywall/yelp-fusion-toolkit/apierr"
	"github.com/raywall/yelp-fusion-toolkit/config"
	"github.com/raywall/yelp-fusion-toolkit/oauth"
	"github.com/raywall/yelp-fusion-toolkit/pkg/logger"
	"github.com/raywall/yelp-fusion-toolkit/pkg/metrics"
	"github.com/raywall/yelp-fusion-toolkit/pkg/secrets"
)

// CredentialsResolver busca credenciais guardadas fora da configuração.
// *secrets.Resolver satisfaz esta interface.
type CredentialsResolver interface {
	Credentials(ctx context.Context, conf config.CredentialsConf) (secrets.Credentials, error)
}

// WithCredentialsResolver substitui o resolver da AWS usado por NewFromConfig.
func WithCredentialsResolver(r CredentialsResolver) Option {
	return func(c *Client) { c.resolver = r }
}

// NewFromConfig monta um Client completo (logger, métricas e credenciais)
// a partir de uma ClientConfig. Opções extras são aplicadas por último.
func NewFromConfig(ctx context.Context, cfg config.ClientConfig, opts ...Option) (*Client, error) {
	// 1. Validação
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, apierr.Wrap(apierr.KindBadArgument, err, "invalid client configuration")
	}

	// 2. Ambiente (logger e métricas)
	log := logger.Configure(cfg.Logging)
	provider, err := metrics.Setup(cfg.Metrics)
	if err != nil {
		return nil, apierr.OperationFailed(err, "could not set up metrics")
	}
	fail := func(err error) (*Client, error) {
		if closer, ok := provider.(io.Closer); ok {
			_ = closer.Close()
		}
		return nil, err
	}

	base := []Option{
		WithLogger(log),
		WithMetrics(provider),
		WithTimeout(cfg.GetTimeout()),
		WithUserAgent(cfg.UserAgent),
	}
	if cfg.BaseURL != "" {
		base = append(base, WithBaseURL(cfg.BaseURL))
	}
	if cfg.AuthURL != "" {
		base = append(base, WithAuthURL(cfg.AuthURL))
	}
	if cfg.EagerAuth {
		base = append(base, WithEagerAuthentication())
	}

	c, err := newClient(append(base, opts...)...)
	if err != nil {
		return fail(err)
	}

	// 3. Credenciais
	creds, err := c.credentialsFrom(ctx, cfg)
	if err != nil {
		return fail(err)
	}
	if creds.HasToken() {
		basic, err := oauth.NewBasicProvider(creds.Token)
		if err != nil {
			return fail(err)
		}
		c.provider = basic
	} else if err := c.useCredentials(creds.ClientID, creds.ClientSecret); err != nil {
		return fail(err)
	}

	if err := c.authenticate(ctx); err != nil {
		return fail(err)
	}

	c.logger.Info().
		Str("base_url", c.baseURL).
		Bool("metrics", cfg.Metrics.Datadog.Enabled).
		Str("credentials", cfg.CredentialsKind()).
		Msg("fusion client configured")
	return c, nil
}

func (c *Client) credentialsFrom(ctx context.Context, cfg config.ClientConfig) (secrets.Credentials, error) {
	if !cfg.HasExternalCredentials() {
		return secrets.Credentials{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Token:        cfg.Token,
		}, nil
	}

	resolver := c.resolver
	if resolver == nil {
		r, err := secrets.New(ctx, cfg.Credentials.Region, secrets.WithLogger(c.logger))
		if err != nil {
			return secrets.Credentials{}, apierr.OperationFailed(err, "could not create secrets resolver")
		}
		resolver = r
	}

	creds, err := resolver.Credentials(ctx, cfg.Credentials)
	if err != nil {
		return secrets.Credentials{}, apierr.Authentication(err, "could not resolve credentials from %s", cfg.Credentials.Source)
	}
	return creds, nil
}
