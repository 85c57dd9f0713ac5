package metrics

import (
	"fmt"
	"sync"

	"github.com/DataDog/datadog-go/v5/statsd"

	"github.com/raywall/yelp-fusion-toolkit/config"
)

// NoopProvider é um placeholder para quando métricas estão desabilitadas.
type NoopProvider struct{}

func (n *NoopProvider) Count(name string, value float64, tags []string) error     { return nil }
func (n *NoopProvider) Gauge(name string, value float64, tags []string) error     { return nil }
func (n *NoopProvider) Histogram(name string, value float64, tags []string) error { return nil }

// DatadogProvider adapta a lib oficial do Datadog para nossa interface.
type DatadogProvider struct {
	client statsd.ClientInterface
}

// NewDatadogProvider envolve um cliente statsd já criado.
func NewDatadogProvider(client statsd.ClientInterface) *DatadogProvider {
	return &DatadogProvider{client: client}
}

func (d *DatadogProvider) Count(name string, value float64, tags []string) error {
	return d.client.Count(name, int64(value), tags, 1)
}

func (d *DatadogProvider) Gauge(name string, value float64, tags []string) error {
	return d.client.Gauge(name, value, tags, 1)
}

func (d *DatadogProvider) Histogram(name string, value float64, tags []string) error {
	return d.client.Histogram(name, value, tags, 1)
}

// Close descarrega o buffer do statsd.
func (d *DatadogProvider) Close() error {
	return d.client.Close()
}

// Setup inicializa o provedor correto baseado na configuração.
func Setup(cfg config.MetricsConf) (Provider, error) {
	if !cfg.Datadog.Enabled {
		return &NoopProvider{}, nil
	}

	// Configurações do cliente StatsD
	opts := []statsd.Option{
		statsd.WithNamespace(cfg.Datadog.Namespace),
	}
	if len(cfg.Datadog.Tags) > 0 {
		opts = append(opts, statsd.WithTags(cfg.Datadog.Tags))
	}

	client, err := statsd.New(cfg.Datadog.Addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no datadog statsd: %w", err)
	}

	return NewDatadogProvider(client), nil
}

// Sample é uma métrica capturada pelo Recorder.
type Sample struct {
	Type  MetricType
	Name  string
	Value float64
	Tags  []string
}

// Recorder guarda as métricas em memória. Útil em testes.
type Recorder struct {
	mu      sync.Mutex
	samples []Sample
}

func (r *Recorder) record(t MetricType, name string, value float64, tags []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples = append(r.samples, Sample{Type: t, Name: name, Value: value, Tags: append([]string(nil), tags...)})
	return nil
}

func (r *Recorder) Count(name string, value float64, tags []string) error {
	return r.record(TypeCount, name, value, tags)
}

func (r *Recorder) Gauge(name string, value float64, tags []string) error {
	return r.record(TypeGauge, name, value, tags)
}

func (r *Recorder) Histogram(name string, value float64, tags []string) error {
	return r.record(TypeHistogram, name, value, tags)
}

// Samples retorna uma cópia das métricas registradas.
func (r *Recorder) Samples() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Sample(nil), r.samples...)
}

// Find retorna as métricas com o nome informado.
func (r *Recorder) Find(name string) []Sample {
	var found []Sample
	for _, s := range r.Samples() {
		if s.Name == name {
			found = append(found, s)
		}
	}
	return found
}

var (
	_ Provider = (*NoopProvider)(nil)
	_ Provider = (*DatadogProvider)(nil)
	_ Provider = (*Recorder)(nil)
)
