package emulator

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/raywall/yelp-fusion-toolkit/models"
)

//go:embed fixtures/default.yaml
var defaultFixtures []byte

// Client é um par de credenciais aceito pelo endpoint de token.
type Client struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
}

// Fixtures é o dataset servido pelo emulator.
type Fixtures struct {
	Clients    []Client                   `yaml:"clients"`
	Token      string                     `yaml:"token"`
	ExpiresIn  int                        `yaml:"expires_in"`
	Businesses []models.BusinessDetails   `yaml:"businesses"`
	Reviews    map[string][]models.Review `yaml:"reviews"`
	// Faults força um status HTTP para um id de negócio (ex.: 500, 503).
	Faults map[string]int `yaml:"faults"`
}

// DefaultFixtures devolve o dataset embutido.
func DefaultFixtures() Fixtures {
	fx, err := ParseFixtures(defaultFixtures)
	if err != nil {
		panic(fmt.Sprintf("emulator: fixtures embutidas inválidas: %v", err))
	}
	return fx
}

// LoadFixtures lê um arquivo YAML de fixtures.
func LoadFixtures(path string) (Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixtures{}, fmt.Errorf("erro ao ler arquivo: %w", err)
	}
	return ParseFixtures(data)
}

// ParseFixtures decodifica fixtures e aplica os valores padrão.
func ParseFixtures(data []byte) (Fixtures, error) {
	var fx Fixtures
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return Fixtures{}, fmt.Errorf("erro ao parsear yaml: %w", err)
	}
	if fx.Token == "" {
		fx.Token = "emulator-token"
	}
	if fx.ExpiresIn == 0 {
		fx.ExpiresIn = 15551999
	}
	for i, b := range fx.Businesses {
		if b.ID == "" {
			return Fixtures{}, fmt.Errorf("negócio na posição %d sem id", i)
		}
	}
	for id, status := range fx.Faults {
		if status < 100 || status > 999 {
			return Fixtures{}, fmt.Errorf("fault '%s' com status HTTP inválido: %d", id, status)
		}
	}
	return fx, nil
}

// find localiza um negócio pelo id ou alias.
func (fx Fixtures) find(id string) (models.BusinessDetails, bool) {
	for _, b := range fx.Businesses {
		if b.ID == id || (b.Alias != "" && b.Alias == id) {
			return b, true
		}
	}
	return models.BusinessDetails{}, false
}

func (fx Fixtures) accepts(clientID, clientSecret string) bool {
	for _, c := range fx.Clients {
		if c.ClientID == clientID && c.ClientSecret == clientSecret {
			return true
		}
	}
	return false
}

// summary converte os detalhes no registro resumido da busca.
func summary(d models.BusinessDetails) models.Business {
	return models.Business{
		ID:          d.ID,
		Alias:       d.Alias,
		Name:        d.Name,
		URL:         d.URL,
		ImageURL:    d.ImageURL,
		Rating:      d.Rating,
		ReviewCount: d.ReviewCount,
		Price:       d.Price,
		Phone:       d.Phone,
		IsClosed:    d.IsClosed,
		Categories:  d.Categories,
		Coordinates: d.Coordinates,
		Location:    d.Location,
	}
}
