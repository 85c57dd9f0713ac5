package oauth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raywall/yelp-fusion-toolkit/apierr"
)

func TestBasicProvider(t *testing.T) {
	p, err := NewBasicProvider("abc123")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		token, err := p.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "abc123", token)
	}
	assert.NotContains(t, p.String(), "abc123")

	_, err = NewBasicProvider("  ")
	assert.True(t, errors.Is(err, apierr.ErrBadArgument))
}

// authServer simula o endpoint de token e conta as requisições recebidas.
func authServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "my-client", r.PostForm.Get("client_id"))
		assert.Equal(t, "my-secret", r.PostForm.Get("client_secret"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func newProvider(t *testing.T, authURL string) *RenewingProvider {
	t.Helper()
	p, err := NewRenewingProvider("my-client", "my-secret", WithAuthURL(authURL))
	require.NoError(t, err)
	return p
}

func TestRenewingProvider_FetchesOnceAndCaches(t *testing.T) {
	server, calls := authServer(t, http.StatusOK, `{"access_token":"tok1","expires_in":3600,"token_type":"Bearer"}`)
	p := newProvider(t, server.URL)

	token, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok1", token)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))

	token, err = p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok1", token)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls), "segunda chamada não deve ir à rede")
}

func TestRenewingProvider_ConcurrentFirstUse(t *testing.T) {
	server, calls := authServer(t, http.StatusOK, `{"access_token":"tok1","expires_in":3600}`)
	p := newProvider(t, server.URL)

	var wg sync.WaitGroup
	tokens := make([]string, 8)
	for i := range tokens {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token, err := p.Token(context.Background())
			assert.NoError(t, err)
			tokens[i] = token
		}(i)
	}
	wg.Wait()

	for _, token := range tokens {
		assert.Equal(t, "tok1", token)
	}
	// Buscas duplicadas são aceitas, mas nunca mais de uma por goroutine
	assert.GreaterOrEqual(t, atomic.LoadInt32(calls), int32(1))
	assert.LessOrEqual(t, atomic.LoadInt32(calls), int32(len(tokens)))
}

func TestRenewingProvider_BadRequestIsAuthentication(t *testing.T) {
	server, _ := authServer(t, http.StatusBadRequest, `{"error":"invalid_client"}`)
	p := newProvider(t, server.URL)

	_, err := p.Token(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apierr.ErrAuthentication))

	var status *apierr.StatusError
	require.True(t, errors.As(err, &status))
	assert.Equal(t, http.StatusBadRequest, status.StatusCode)
	assert.Contains(t, status.Body, "invalid_client")
}

func TestRenewingProvider_FailureModes(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		kind   *apierr.Error
	}{
		{"Erro do servidor", http.StatusInternalServerError, `oops`, apierr.ErrOperationFailed},
		{"Não autorizado", http.StatusUnauthorized, `{}`, apierr.ErrOperationFailed},
		{"JSON inválido", http.StatusOK, `not-json`, apierr.ErrOperationFailed},
		{"Corpo nulo", http.StatusOK, `null`, apierr.ErrOperationFailed},
		{"Sem expiração", http.StatusOK, `{"access_token":"tok1"}`, apierr.ErrOperationFailed},
		{"Sem token", http.StatusOK, `{"expires_in":3600}`, apierr.ErrBadArgument},
		{"Token vazio", http.StatusOK, `{"access_token":"","expires_in":3600}`, apierr.ErrBadArgument},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server, _ := authServer(t, tc.status, tc.body)
			p := newProvider(t, server.URL)

			_, err := p.Token(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.kind), err.Error())
		})
	}
}

func TestRenewingProvider_FailureIsNotCached(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"tok2","expires_in":60}`))
	}))
	defer server.Close()

	p := newProvider(t, server.URL)

	_, err := p.Token(context.Background())
	require.Error(t, err)

	token, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok2", token)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestRenewingProvider_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	p := newProvider(t, url)
	_, err := p.Token(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apierr.ErrOperationFailed))
}

func TestNewRenewingProvider_Validation(t *testing.T) {
	_, err := NewRenewingProvider("", "secret")
	assert.True(t, errors.Is(err, apierr.ErrBadArgument))

	_, err = NewRenewingProvider("id", "")
	assert.True(t, errors.Is(err, apierr.ErrBadArgument))

	_, err = NewRenewingProvider("id", "secret", WithAuthURL("not a url"))
	assert.True(t, errors.Is(err, apierr.ErrBadArgument))

	p, err := NewRenewingProvider("id", "secret")
	require.NoError(t, err)
	assert.Equal(t, DefaultAuthURL, p.authURL)
	assert.NotContains(t, p.String(), "=secret")
	assert.Contains(t, p.String(), "<redacted>")
}
