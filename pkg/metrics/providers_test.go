package metrics

import (
	"sync"
	"testing"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raywall/yelp-fusion-toolkit/config"
)

// fakeStatsd sobrescreve apenas os métodos usados pelo DatadogProvider.
type fakeStatsd struct {
	statsd.ClientInterface
	calls  []string
	counts []int64
	closed bool
}

func (f *fakeStatsd) Count(name string, value int64, tags []string, rate float64) error {
	f.calls = append(f.calls, "count:"+name)
	f.counts = append(f.counts, value)
	return nil
}

func (f *fakeStatsd) Gauge(name string, value float64, tags []string, rate float64) error {
	f.calls = append(f.calls, "gauge:"+name)
	return nil
}

func (f *fakeStatsd) Histogram(name string, value float64, tags []string, rate float64) error {
	f.calls = append(f.calls, "histogram:"+name)
	return nil
}

func (f *fakeStatsd) Close() error {
	f.closed = true
	return nil
}

func TestSetup(t *testing.T) {
	t.Run("Disabled returns Noop", func(t *testing.T) {
		provider, err := Setup(config.MetricsConf{Datadog: config.DatadogConf{Enabled: false}})
		require.NoError(t, err)
		assert.IsType(t, &NoopProvider{}, provider)
		assert.NoError(t, provider.Count("x", 1, nil))
	})

	t.Run("Enabled returns Datadog", func(t *testing.T) {
		provider, err := Setup(config.MetricsConf{
			Datadog: config.DatadogConf{
				Enabled:   true,
				Addr:      "localhost:8125",
				Namespace: "yelp.",
				Tags:      []string{"env:test"},
			},
		})
		require.NoError(t, err)

		dd, ok := provider.(*DatadogProvider)
		require.True(t, ok, "Esperado DatadogProvider, recebido %T", provider)
		assert.NoError(t, dd.Close())
	})
}

func TestDatadogProvider(t *testing.T) {
	fake := &fakeStatsd{}
	provider := NewDatadogProvider(fake)

	tags := []string{Tag("operation", "search")}
	require.NoError(t, provider.Count("yelp.api.request", 2.9, tags))
	require.NoError(t, provider.Gauge("yelp.api.inflight", 1, tags))
	require.NoError(t, provider.Histogram("yelp.api.latency_ms", 12.5, tags))
	require.NoError(t, provider.Close())

	assert.Equal(t, []string{
		"count:yelp.api.request",
		"gauge:yelp.api.inflight",
		"histogram:yelp.api.latency_ms",
	}, fake.calls)
	assert.Equal(t, []int64{2}, fake.counts)
	assert.True(t, fake.closed)
}

func TestRecorder(t *testing.T) {
	rec := &Recorder{}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = rec.Count("yelp.api.request", 1, []string{"status:200"})
		}()
	}
	wg.Wait()
	_ = rec.Histogram("yelp.api.latency_ms", 3, nil)

	assert.Len(t, rec.Find("yelp.api.request"), 10)
	latency := rec.Find("yelp.api.latency_ms")
	require.Len(t, latency, 1)
	assert.Equal(t, TypeHistogram, latency[0].Type)
	assert.Len(t, rec.Samples(), 11)
	assert.Equal(t, "status:200", Tag("status", "200"))
}
