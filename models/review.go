package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// TimestampLayout é o formato usado pela API para time_created.
const TimestampLayout = "2006-01-02 15:04:05"

// Timestamp aceita o layout da API e RFC3339, e serializa sempre no layout da API.
type Timestamp struct {
	time.Time
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(TimestampLayout))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	return t.parse(raw)
}

// UnmarshalYAML permite usar Timestamp nas fixtures do emulator.
func (t *Timestamp) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!null" || value.Value == "" {
		t.Time = time.Time{}
		return nil
	}
	return t.parse(value.Value)
}

func (t Timestamp) MarshalYAML() (interface{}, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.Format(TimestampLayout), nil
}

func (t *Timestamp) parse(raw string) error {
	for _, layout := range []string{TimestampLayout, time.RFC3339} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("timestamp: unsupported format %q", raw)
}

// ReviewUser é o autor de uma avaliação.
type ReviewUser struct {
	ID         string `json:"id,omitempty" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	ImageURL   string `json:"image_url,omitempty" yaml:"image_url"`
	ProfileURL string `json:"profile_url,omitempty" yaml:"profile_url"`
}

// Review é um trecho de avaliação de um negócio.
type Review struct {
	ID          string     `json:"id,omitempty" yaml:"id"`
	Rating      int        `json:"rating" yaml:"rating"`
	User        ReviewUser `json:"user" yaml:"user"`
	Text        string     `json:"text" yaml:"text"`
	TimeCreated Timestamp  `json:"time_created" yaml:"time_created"`
	URL         string     `json:"url,omitempty" yaml:"url"`
}
