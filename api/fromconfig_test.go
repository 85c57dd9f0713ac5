package api

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raywall/yelp-fusion-toolkit/apierr"
	"github.com/raywall/yelp-fusion-toolkit/config"
	"github.com/raywall/yelp-fusion-toolkit/models"
	"github.com/raywall/yelp-fusion-toolkit/pkg/metrics"
	"github.com/raywall/yelp-fusion-toolkit/pkg/secrets"
	"github.com/raywall/yelp-fusion-toolkit/search"
	"github.com/raywall/yelp-fusion-toolkit/tools/emulator"
)

// fakeResolver simula o resolver da AWS.
type fakeResolver struct {
	creds secrets.Credentials
	err   error
	got   config.CredentialsConf
}

func (f *fakeResolver) Credentials(_ context.Context, conf config.CredentialsConf) (secrets.Credentials, error) {
	f.got = conf
	return f.creds, f.err
}

func startEmulator(t *testing.T) (*emulator.Emulator, *httptest.Server) {
	t.Helper()
	emu := emulator.New(emulator.DefaultFixtures())
	srv := httptest.NewServer(emu)
	t.Cleanup(srv.Close)
	return emu, srv
}

func emulatorConfig(srv *httptest.Server) config.ClientConfig {
	return config.ClientConfig{
		BaseURL:      srv.URL + emulator.APIPrefix,
		AuthURL:      srv.URL + emulator.TokenPath,
		ClientID:     "emulator-client",
		ClientSecret: "emulator-secret",
	}
}

func TestNewFromConfig_AgainstEmulator(t *testing.T) {
	emu, srv := startEmulator(t)
	rec := &metrics.Recorder{}

	cfg := emulatorConfig(srv)
	cfg.EagerAuth = true
	c, err := NewFromConfig(context.Background(), cfg, WithMetrics(rec))
	require.NoError(t, err)
	defer c.Close()
	assert.EqualValues(t, 1, emu.TokenRequests())

	ctx := context.Background()

	// Busca
	req, err := search.NewBuilder().
		WithSearchTerm("tacos").
		WithLocationText("Austin, TX").
		Build()
	require.NoError(t, err)
	businesses, err := c.SearchForBusinesses(ctx, req)
	require.NoError(t, err)
	require.NotEmpty(t, businesses)
	assert.Equal(t, "veracruz-all-natural-austin", businesses[0].ID)

	// Detalhes a partir do resultado
	details, err := c.GetBusinessDetailsFor(ctx, &businesses[0])
	require.NoError(t, err)
	assert.Equal(t, businesses[0].Name, details.Name)

	// Reviews
	reviews, err := c.GetReviewsForBusiness(ctx, "franklin-barbecue-austin")
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	// Negócio inexistente
	_, err = c.GetBusinessDetails(ctx, "does-not-exist")
	assert.True(t, errors.Is(err, apierr.ErrOperationFailed))
	var statusErr *apierr.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 404, statusErr.StatusCode)

	// O token é reaproveitado entre chamadas
	assert.EqualValues(t, 1, emu.TokenRequests())
	assert.EqualValues(t, 4, emu.APIRequests())
	assert.Len(t, rec.Find(MetricRequest), 4)
}

func TestNewFromConfig_WrongCredentials(t *testing.T) {
	_, srv := startEmulator(t)

	cfg := emulatorConfig(srv)
	cfg.ClientSecret = "wrong"

	// Lazy: o erro aparece na primeira chamada
	c, err := NewFromConfig(context.Background(), cfg)
	require.NoError(t, err)
	_, err = c.GetBusinessDetails(context.Background(), "uchi-austin")
	assert.True(t, errors.Is(err, apierr.ErrAuthentication))

	// Eager: o erro aparece na construção
	cfg.EagerAuth = true
	c, err = NewFromConfig(context.Background(), cfg)
	assert.Nil(t, c)
	assert.True(t, errors.Is(err, apierr.ErrAuthentication))
}

func TestNewFromConfig_StaticToken(t *testing.T) {
	emu, srv := startEmulator(t)

	c, err := NewFromConfig(context.Background(), config.ClientConfig{
		BaseURL: srv.URL + emulator.APIPrefix,
		Token:   "emulator-token",
	})
	require.NoError(t, err)

	reviews, err := c.GetReviewsFor(context.Background(), &models.Business{ID: "uchi-austin"})
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
	assert.EqualValues(t, 0, emu.TokenRequests())
}

func TestNewFromConfig_ExternalCredentials(t *testing.T) {
	emu, srv := startEmulator(t)

	resolver := &fakeResolver{creds: secrets.Credentials{ClientID: "emulator-client", ClientSecret: "emulator-secret"}}
	cfg := config.ClientConfig{
		BaseURL: srv.URL + emulator.APIPrefix,
		AuthURL: srv.URL + emulator.TokenPath,
		Credentials: config.CredentialsConf{
			Source:   config.SourceSecretsManager,
			Region:   "us-east-1",
			SecretID: "yelp/fusion",
		},
		EagerAuth: true,
	}

	c, err := NewFromConfig(context.Background(), cfg, WithCredentialsResolver(resolver))
	require.NoError(t, err)
	assert.NotNil(t, c)
	assert.Equal(t, "yelp/fusion", resolver.got.SecretID)
	assert.EqualValues(t, 1, emu.TokenRequests())

	failing := &fakeResolver{err: errors.New("AccessDeniedException")}
	_, err = NewFromConfig(context.Background(), cfg, WithCredentialsResolver(failing))
	assert.True(t, errors.Is(err, apierr.ErrAuthentication))
}

func TestNewFromConfig_CallerHTTPClient(t *testing.T) {
	_, srv := startEmulator(t)
	shared := resty.New().SetTimeout(2 * time.Minute)

	cfg := emulatorConfig(srv)
	cfg.Timeout = 5 * time.Second
	c, err := NewFromConfig(context.Background(), cfg, WithHTTPClient(shared))
	require.NoError(t, err)

	_, err = c.GetBusinessDetails(context.Background(), "uchi-austin")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, shared.GetClient().Timeout)
}

func TestNewFromConfig_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.ClientConfig
	}{
		{"sem credenciais", config.ClientConfig{}},
		{"id sem secret", config.ClientConfig{ClientID: "id"}},
		{"token e par juntos", config.ClientConfig{Token: "t", ClientID: "id", ClientSecret: "s"}},
		{"base url inválida", config.ClientConfig{Token: "t", BaseURL: "::nope"}},
		{"datadog sem host", config.ClientConfig{
			Token:   "t",
			Metrics: config.MetricsConf{Datadog: config.DatadogConf{Enabled: true}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewFromConfig(context.Background(), tt.cfg)
			assert.Nil(t, c)
			assert.True(t, errors.Is(err, apierr.ErrBadArgument), "got %v", err)
		})
	}
}
