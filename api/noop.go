package api

import (
	"context"

	"github.com/raywall/yelp-fusion-toolkit/models"
	"github.com/raywall/yelp-fusion-toolkit/search"
)

// NoOp é uma API que nunca acessa a rede: detalhes nulos, listas vazias e
// nenhum erro. Serve como dublê em testes simples.
type NoOp struct{}

var _ API = NoOp{}

// NewNoOp devolve uma nova instância sem estado.
func NewNoOp() API { return NoOp{} }

func (NoOp) GetBusinessDetails(context.Context, string) (*models.BusinessDetails, error) {
	return nil, nil
}

func (NoOp) GetBusinessDetailsFor(context.Context, *models.Business) (*models.BusinessDetails, error) {
	return nil, nil
}

func (NoOp) SearchForBusinesses(context.Context, *search.Request) ([]models.Business, error) {
	return []models.Business{}, nil
}

func (NoOp) GetReviewsForBusiness(context.Context, string) ([]models.Review, error) {
	return []models.Review{}, nil
}

func (NoOp) GetReviewsFor(context.Context, *models.Business) ([]models.Review, error) {
	return []models.Review{}, nil
}
