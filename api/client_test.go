package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/raywall/yelp-fusion-toolkit/apierr"
	"github.com/raywall/yelp-fusion-toolkit/models"
	"github.com/raywall/yelp-fusion-toolkit/pkg/metrics"
	"github.com/raywall/yelp-fusion-toolkit/search"
)

// fakeProvider devolve um token fixo (ou erro) e conta as chamadas.
type fakeProvider struct {
	token string
	err   error
	calls atomic.Int32
}

func (p *fakeProvider) Token(context.Context) (string, error) {
	p.calls.Add(1)
	return p.token, p.err
}

// fusionServer responde com status e corpo fixos, expondo a última requisição recebida.
func fusionServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Pointer[http.Request], *atomic.Int32) {
	t.Helper()
	var last atomic.Pointer[http.Request]
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		last.Store(r.Clone(context.Background()))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &last, &calls
}

func newTestClient(t *testing.T, baseURL string, opts ...Option) *Client {
	t.Helper()
	c, err := New(&fakeProvider{token: "tok1"}, append([]Option{WithBaseURL(baseURL)}, opts...)...)
	require.NoError(t, err)
	return c
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil)
	assert.True(t, errors.Is(err, apierr.ErrBadArgument))

	_, err = New(&fakeProvider{token: "x"}, WithBaseURL("not a url"))
	assert.True(t, errors.Is(err, apierr.ErrBadArgument))

	c, err := New(&fakeProvider{token: "x"}, WithBaseURL("http://localhost:8089/v3/"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8089/v3", c.BaseURL())

	c, err = New(&fakeProvider{token: "x"})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.NoError(t, c.Close())

	_, err = NewWithToken("")
	assert.True(t, errors.Is(err, apierr.ErrBadArgument))

	_, err = NewWithCredentials(context.Background(), "", "secret")
	assert.True(t, errors.Is(err, apierr.ErrBadArgument))
}

func TestNew_EagerAuthentication(t *testing.T) {
	p := &fakeProvider{token: "tok1"}
	_, err := New(p, WithEagerAuthentication())
	require.NoError(t, err)
	assert.EqualValues(t, 1, p.calls.Load())

	lazy := &fakeProvider{token: "tok1"}
	_, err = New(lazy)
	require.NoError(t, err)
	assert.EqualValues(t, 0, lazy.calls.Load())

	failing := &fakeProvider{err: apierr.Authentication(nil, "rejected")}
	_, err = New(failing, WithEagerAuthentication())
	assert.True(t, errors.Is(err, apierr.ErrAuthentication))
}

func TestGetBusinessDetails(t *testing.T) {
	server, last, _ := fusionServer(t, http.StatusOK, `{
		"id": "gary-danko-san-francisco",
		"name": "Gary Danko",
		"price": "$$$$",
		"rating": 4.5,
		"hours": [{"hours_type": "REGULAR", "is_open_now": true, "open": []}]
	}`)
	c := newTestClient(t, server.URL+"/v3", WithUserAgent("yelp-test/1.0"))

	details, err := c.GetBusinessDetails(context.Background(), "gary-danko-san-francisco")
	require.NoError(t, err)
	assert.Equal(t, "Gary Danko", details.Name)
	assert.True(t, details.IsOpenNow())

	req := last.Load()
	require.NotNil(t, req)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/v3/businesses/gary-danko-san-francisco", req.URL.Path)
	assert.Equal(t, "Bearer tok1", req.Header.Get("Authorization"))
	assert.Equal(t, "yelp-test/1.0", req.Header.Get("User-Agent"))
	assert.Len(t, req.Header.Get(HeaderRequestID), 36)
}

func TestGetBusinessDetails_InvalidArguments(t *testing.T) {
	server, _, calls := fusionServer(t, http.StatusOK, `{}`)
	provider := &fakeProvider{token: "tok1"}
	c, err := New(provider, WithBaseURL(server.URL))
	require.NoError(t, err)
	ctx := context.Background()

	for _, id := range []string{"", "   ", "a/b", "a?b", "a#b", "a b", "a%2Fb"} {
		_, err := c.GetBusinessDetails(ctx, id)
		assert.True(t, errors.Is(err, apierr.ErrBadArgument), "id %q", id)
	}

	_, err = c.GetBusinessDetailsFor(ctx, nil)
	assert.True(t, errors.Is(err, apierr.ErrBadArgument))
	_, err = c.GetBusinessDetailsFor(ctx, &models.Business{Name: "sem id"})
	assert.True(t, errors.Is(err, apierr.ErrBadArgument))
	_, err = c.GetReviewsFor(ctx, nil)
	assert.True(t, errors.Is(err, apierr.ErrBadArgument))
	_, err = c.GetReviewsForBusiness(ctx, "")
	assert.True(t, errors.Is(err, apierr.ErrBadArgument))
	_, err = c.SearchForBusinesses(ctx, nil)
	assert.True(t, errors.Is(err, apierr.ErrBadArgument))

	// Nenhuma chamada de rede nem de token
	assert.EqualValues(t, 0, calls.Load())
	assert.EqualValues(t, 0, provider.calls.Load())
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"401 vira Authentication", http.StatusUnauthorized, `{"error":{"code":"TOKEN_INVALID"}}`, apierr.ErrAuthentication},
		{"400 vira BadArgument", http.StatusBadRequest, `{"error":{"code":"VALIDATION_ERROR"}}`, apierr.ErrBadArgument},
		{"404 vira OperationFailed", http.StatusNotFound, `{"error":{"code":"BUSINESS_NOT_FOUND"}}`, apierr.ErrOperationFailed},
		{"500 vira OperationFailed", http.StatusInternalServerError, `oops`, apierr.ErrOperationFailed},
		{"JSON inválido vira OperationFailed", http.StatusOK, `{not json`, apierr.ErrOperationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _, _ := fusionServer(t, tt.status, tt.body)
			c := newTestClient(t, server.URL)

			_, err := c.GetBusinessDetails(context.Background(), "some-id")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)

			if tt.status != http.StatusOK {
				var statusErr *apierr.StatusError
				require.True(t, errors.As(err, &statusErr))
				assert.Equal(t, tt.status, statusErr.StatusCode)
				assert.Equal(t, tt.body, statusErr.Body)
			}
		})
	}
}

func TestTokenFailures(t *testing.T) {
	server, _, calls := fusionServer(t, http.StatusOK, `{}`)

	failing, err := New(&fakeProvider{err: apierr.Authentication(nil, "client id or secret are incorrect")}, WithBaseURL(server.URL))
	require.NoError(t, err)
	_, err = failing.GetBusinessDetails(context.Background(), "id")
	assert.True(t, errors.Is(err, apierr.ErrAuthentication))

	empty, err := New(&fakeProvider{token: ""}, WithBaseURL(server.URL))
	require.NoError(t, err)
	_, err = empty.GetReviewsForBusiness(context.Background(), "id")
	assert.True(t, errors.Is(err, apierr.ErrAuthentication))

	assert.EqualValues(t, 0, calls.Load())
}

func TestNetworkFailure(t *testing.T) {
	server, _, _ := fusionServer(t, http.StatusOK, `{}`)
	url := server.URL
	server.Close()

	c := newTestClient(t, url)
	_, err := c.GetBusinessDetails(context.Background(), "id")
	assert.True(t, errors.Is(err, apierr.ErrOperationFailed))
}

func TestTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL, WithTimeout(20*time.Millisecond))
	_, err := c.GetBusinessDetails(context.Background(), "slow")
	assert.True(t, errors.Is(err, apierr.ErrOperationFailed))
}

func TestWithHTTPClient_KeepsCallerTimeout(t *testing.T) {
	shared := resty.New().SetTimeout(2 * time.Minute)

	c, err := New(&fakeProvider{token: "tok1"}, WithHTTPClient(shared), WithTimeout(time.Second))
	require.NoError(t, err)
	assert.Same(t, shared, c.http)
	assert.Equal(t, 2*time.Minute, shared.GetClient().Timeout)

	own, err := New(&fakeProvider{token: "tok1"}, WithTimeout(time.Second))
	require.NoError(t, err)
	assert.Equal(t, time.Second, own.http.GetClient().Timeout)

	def, err := New(&fakeProvider{token: "tok1"})
	require.NoError(t, err)
	assert.Equal(t, defaultTimeout, def.http.GetClient().Timeout)
}

func TestSearchForBusinesses(t *testing.T) {
	server, last, _ := fusionServer(t, http.StatusOK, `{
		"total": 120,
		"businesses": [
			{"id": "a", "name": "A", "distance": 120.5},
			{"id": "b", "name": "B"}
		],
		"region": {"center": {"latitude": 30.26, "longitude": -97.74}}
	}`)
	c := newTestClient(t, server.URL)

	req, err := search.NewBuilder().
		WithSearchTerm("tacos").
		WithCoordinate(30.2672, -97.7431).
		WithRadiusInMeters(5000).
		WithPrices(models.PriceModerate, models.PriceInexpensive, models.PriceModerate).
		WithLocale(search.LocaleBrazil).
		WithLimit(10).
		WithSortBy(search.SortRating).
		LookingForOpenNow().
		Build()
	require.NoError(t, err)

	businesses, err := c.SearchForBusinesses(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, businesses, 2)
	assert.True(t, businesses[0].HasDistance())
	assert.False(t, businesses[1].HasDistance())

	sent := last.Load()
	require.NotNil(t, sent)
	assert.Equal(t, "/businesses/search", sent.URL.Path)
	q := sent.URL.Query()
	assert.Equal(t, "tacos", q.Get("term"))
	assert.Equal(t, "30.2672", q.Get("latitude"))
	assert.Equal(t, "-97.7431", q.Get("longitude"))
	assert.Equal(t, "5000", q.Get("radius"))
	assert.Equal(t, "2, 1", q.Get("price"))
	assert.Equal(t, "10", q.Get("limit"))
	assert.Equal(t, "rating", q.Get("sort_by"))
	assert.Equal(t, "true", q.Get("open_now"))
	assert.False(t, q.Has("locale"))
	assert.False(t, q.Has("location"))
	assert.Equal(t, "pt_BR", sent.Header.Get("locale"))

	envelope, err := c.Search(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 120, envelope.Total)
	require.NotNil(t, envelope.Region)
	assert.Equal(t, 30.26, envelope.Region.Center.Latitude)
}

func TestSearchForBusinesses_EmptyEnvelope(t *testing.T) {
	server, _, _ := fusionServer(t, http.StatusOK, `{"total": 0}`)
	c := newTestClient(t, server.URL)

	req, err := search.NewBuilder().WithLocationText("Nowhere").Build()
	require.NoError(t, err)

	businesses, err := c.SearchForBusinesses(context.Background(), req)
	require.NoError(t, err)
	assert.NotNil(t, businesses)
	assert.Empty(t, businesses)
}

func TestGetReviews(t *testing.T) {
	server, last, _ := fusionServer(t, http.StatusOK, `{
		"total": 1,
		"reviews": [{"id": "r1", "rating": 5, "user": {"name": "Ella A."}, "text": "Great", "time_created": "2016-08-29 00:41:13"}],
		"possible_languages": ["en"]
	}`)
	c := newTestClient(t, server.URL)

	reviews, err := c.GetReviewsFor(context.Background(), &models.Business{ID: "uchi-austin"})
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Ella A.", reviews[0].User.Name)
	assert.Equal(t, 2016, reviews[0].TimeCreated.Year())
	assert.Equal(t, "/businesses/uchi-austin/reviews", last.Load().URL.Path)
}

func TestMetrics(t *testing.T) {
	server, _, _ := fusionServer(t, http.StatusUnauthorized, `{}`)
	rec := &metrics.Recorder{}
	c := newTestClient(t, server.URL, WithMetrics(rec))

	_, _ = c.GetBusinessDetails(context.Background(), "id")
	_, _ = c.GetBusinessDetails(context.Background(), "")

	// Argumento inválido não chega a contar como chamada
	counts := rec.Find(MetricRequest)
	require.Len(t, counts, 1)
	assert.Equal(t, metrics.TypeCount, counts[0].Type)
	assert.Equal(t, []string{"operation:" + OpBusinessDetails, "status:401"}, counts[0].Tags)

	latency := rec.Find(MetricLatency)
	require.Len(t, latency, 1)
	assert.Equal(t, metrics.TypeHistogram, latency[0].Type)
	assert.GreaterOrEqual(t, latency[0].Value, 0.0)
}

func TestTracerProvider(t *testing.T) {
	server, _, calls := fusionServer(t, http.StatusOK, `{"id": "x"}`)
	c := newTestClient(t, server.URL, WithTracerProvider(noop.NewTracerProvider()), WithTracerProvider(nil))

	_, err := c.GetBusinessDetails(context.Background(), "x")
	require.NoError(t, err)
	assert.EqualValues(t, 1, calls.Load())
}

func TestNoOp(t *testing.T) {
	var api API = NewNoOp()
	ctx := context.Background()

	details, err := api.GetBusinessDetails(ctx, "")
	assert.NoError(t, err)
	assert.Nil(t, details)

	details, err = api.GetBusinessDetailsFor(ctx, nil)
	assert.NoError(t, err)
	assert.Nil(t, details)

	businesses, err := api.SearchForBusinesses(ctx, nil)
	assert.NoError(t, err)
	assert.NotNil(t, businesses)
	assert.Empty(t, businesses)

	reviews, err := api.GetReviewsForBusiness(ctx, "id")
	assert.NoError(t, err)
	assert.Empty(t, reviews)

	reviews, err = api.GetReviewsFor(ctx, &models.Business{})
	assert.NoError(t, err)
	assert.Empty(t, reviews)
}
