package oauth

import (
	"context"
	"strings"

	"github.com/raywall/yelp-fusion-toolkit/apierr"
)

// DefaultAuthURL é o endpoint de token da plataforma.
const DefaultAuthURL = "https://api.yelp.com/oauth2/token"

// TokenProvider fornece o bearer token para as chamadas da API.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// BasicProvider devolve sempre o mesmo token, sem acesso à rede.
type BasicProvider struct {
	token string
}

// NewBasicProvider cria um provider a partir de um token já obtido.
func NewBasicProvider(token string) (*BasicProvider, error) {
	if strings.TrimSpace(token) == "" {
		return nil, apierr.BadArgument("token is required")
	}
	return &BasicProvider{token: token}, nil
}

func (p *BasicProvider) Token(context.Context) (string, error) {
	return p.token, nil
}

func (p *BasicProvider) String() string {
	return "BasicProvider{token=<redacted>}"
}

var (
	_ TokenProvider = (*BasicProvider)(nil)
	_ TokenProvider = (*RenewingProvider)(nil)
)
