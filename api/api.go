package api

import (
	"context"

	"github.com/raywall/yelp-fusion-toolkit/models"
	"github.com/raywall/yelp-fusion-toolkit/search"
)

// DefaultBaseURL é a raiz da API Fusion v3.
const DefaultBaseURL = "https://api.yelp.com/v3"

const (
	pathBusinesses = "/businesses"
	pathSearch     = "/businesses/search"
	pathReviews    = "/reviews"
)

// HeaderRequestID carrega o id de correlação de cada chamada.
const HeaderRequestID = "X-Request-ID"

// headerLocale é o nome do header usado para o locale da busca.
const headerLocale = "locale"

// Operações, usadas em logs, spans e tags de métricas.
const (
	OpBusinessDetails = "business_details"
	OpSearch          = "search"
	OpReviews         = "reviews"
)

// API define as operações suportadas contra a Fusion.
type API interface {
	// GetBusinessDetails busca os detalhes de um negócio pelo id.
	GetBusinessDetails(ctx context.Context, businessID string) (*models.BusinessDetails, error)

	// GetBusinessDetailsFor busca os detalhes usando o id do registro.
	GetBusinessDetailsFor(ctx context.Context, business *models.Business) (*models.BusinessDetails, error)

	// SearchForBusinesses executa uma busca e devolve os negócios encontrados.
	SearchForBusinesses(ctx context.Context, request *search.Request) ([]models.Business, error)

	// GetReviewsForBusiness devolve as avaliações de um negócio.
	GetReviewsForBusiness(ctx context.Context, businessID string) ([]models.Review, error)

	// GetReviewsFor devolve as avaliações usando o id do registro.
	GetReviewsFor(ctx context.Context, business *models.Business) ([]models.Review, error)
}
