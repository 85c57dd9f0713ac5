package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raywall/yelp-fusion-toolkit/apierr"
	"github.com/raywall/yelp-fusion-toolkit/models"
	"github.com/raywall/yelp-fusion-toolkit/tools/emulator"
)

// writeConfig sobe um emulator e grava uma config apontando para ele.
func writeConfig(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(emulator.New(emulator.DefaultFixtures()))
	t.Cleanup(srv.Close)

	content := fmt.Sprintf(`
base_url: %s%s
auth_url: %s%s
client_id: emulator-client
client_secret: ${env.TEST_CLI_SECRET}
logging:
  enabled: false
`, srv.URL, emulator.APIPrefix, srv.URL, emulator.TokenPath)

	t.Setenv("TEST_CLI_SECRET", "emulator-secret")
	path := filepath.Join(t.TempDir(), "client.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_Search(t *testing.T) {
	cfg := writeConfig(t)
	var out bytes.Buffer

	err := run(context.Background(), []string{"search", "-config", cfg, "-location", "Austin", "-sort", "review_count", "-price", "$$,1"}, &out)
	require.NoError(t, err)

	var businesses []models.Business
	require.NoError(t, json.Unmarshal(out.Bytes(), &businesses))
	require.Len(t, businesses, 2)
	assert.Equal(t, "franklin-barbecue-austin", businesses[0].ID)
	assert.Equal(t, "veracruz-all-natural-austin", businesses[1].ID)
}

func TestRun_DetailsAndReviews(t *testing.T) {
	cfg := writeConfig(t)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"details", "-config", cfg, "-id", "uchi-austin"}, &out))
	var details models.BusinessDetails
	require.NoError(t, json.Unmarshal(out.Bytes(), &details))
	assert.Equal(t, "Uchi", details.Name)

	out.Reset()
	require.NoError(t, run(context.Background(), []string{"reviews", "-config", cfg, "-id", "franklin-barbecue-austin"}, &out))
	var reviews []models.Review
	require.NoError(t, json.Unmarshal(out.Bytes(), &reviews))
	assert.Len(t, reviews, 2)
}

func TestRun_Validate(t *testing.T) {
	cfg := writeConfig(t)
	var out bytes.Buffer

	require.NoError(t, run(context.Background(), []string{"validate", "-config", cfg}, &out))
	assert.Contains(t, out.String(), "client_credentials")
}

func TestRun_FromEnv(t *testing.T) {
	srv := httptest.NewServer(emulator.New(emulator.DefaultFixtures()))
	t.Cleanup(srv.Close)

	t.Setenv("YELP_BASE_URL", srv.URL+emulator.APIPrefix)
	t.Setenv("YELP_TOKEN", "emulator-token")
	t.Setenv("YELP_LOG_ENABLED", "false")

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"details", "-id", "gary-danko-san-francisco"}, &out))
	assert.Contains(t, out.String(), "Gary Danko")
}

func TestRun_Errors(t *testing.T) {
	cfg := writeConfig(t)
	ctx := context.Background()
	var out bytes.Buffer

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"sem comando", nil, 1},
		{"comando desconhecido", []string{"delete"}, 1},
		{"details sem id", []string{"details", "-config", cfg}, 1},
		{"busca sem localização", []string{"search", "-config", cfg, "-term", "tacos"}, 2},
		{"coordenada inválida", []string{"search", "-config", cfg, "-lat", "abc", "-lon", "1"}, 2},
		{"preço inválido", []string{"search", "-config", cfg, "-location", "Austin", "-price", "7"}, 2},
		{"locale desconhecido", []string{"search", "-config", cfg, "-location", "Austin", "-locale", "xx_YY"}, 2},
		{"limit zero", []string{"search", "-config", cfg, "-location", "Austin", "-limit", "0"}, 2},
		{"radius zero", []string{"search", "-config", cfg, "-location", "Austin", "-radius", "0"}, 2},
		{"offset zero", []string{"search", "-config", cfg, "-location", "Austin", "-offset", "0"}, 2},
		{"raio acima do máximo", []string{"search", "-config", cfg, "-location", "Austin", "-radius", "50000"}, 2},
		{"price vazio", []string{"search", "-config", cfg, "-location", "Austin", "-price", ""}, 2},
		{"open-at negativo", []string{"search", "-config", cfg, "-location", "Austin", "-open-at", "-1"}, 2},
		{"negócio inexistente", []string{"details", "-config", cfg, "-id", "nope"}, 1},
		{"config inexistente", []string{"validate", "-config", "/nao/existe.yaml"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(ctx, tt.args, &out)
			require.Error(t, err)
			assert.Equal(t, tt.code, exitCode(err), "err: %v", err)
		})
	}
}

func TestSearchOptions_OnlySetFlags(t *testing.T) {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	opts := searchFlags(fs)
	require.NoError(t, fs.Parse([]string{"-location", "Austin", "-open-at", "0"}))
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	req, err := opts.build()
	require.NoError(t, err)
	hour, ok := req.Open().OpenAt()
	assert.True(t, ok)
	assert.Equal(t, 0, hour)
	assert.False(t, req.HasLimit())
	assert.False(t, req.HasRadius())
	assert.False(t, req.HasOffset())
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 3, exitCode(apierr.Authentication(nil, "denied")))
	assert.Equal(t, 2, exitCode(apierr.AreaTooLarge("too big")))
	assert.Equal(t, 1, exitCode(errors.New("boom")))
}
