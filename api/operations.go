package api

import (
	"context"
	"net/url"
	"strings"
	"unicode"

	"github.com/raywall/yelp-fusion-toolkit/apierr"
	"github.com/raywall/yelp-fusion-toolkit/models"
	"github.com/raywall/yelp-fusion-toolkit/search"
)

func (c *Client) GetBusinessDetails(ctx context.Context, businessID string) (*models.BusinessDetails, error) {
	path, err := businessPath(businessID, "")
	if err != nil {
		return nil, err
	}

	var details models.BusinessDetails
	if err := c.get(ctx, call{op: OpBusinessDetails, path: path}, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

func (c *Client) GetBusinessDetailsFor(ctx context.Context, business *models.Business) (*models.BusinessDetails, error) {
	id, err := businessIDOf(business)
	if err != nil {
		return nil, err
	}
	return c.GetBusinessDetails(ctx, id)
}

func (c *Client) SearchForBusinesses(ctx context.Context, request *search.Request) ([]models.Business, error) {
	envelope, err := c.Search(ctx, request)
	if err != nil {
		return nil, err
	}
	return envelope.Businesses, nil
}

// Search é SearchForBusinesses preservando total e região do envelope.
func (c *Client) Search(ctx context.Context, request *search.Request) (*models.SearchEnvelope, error) {
	if request == nil {
		return nil, apierr.BadArgument("search request cannot be nil")
	}

	cl := call{op: OpSearch, path: pathSearch, params: request.Params()}
	if request.HasLocale() {
		cl.headers = map[string]string{headerLocale: request.Locale()}
	}

	var envelope models.SearchEnvelope
	if err := c.get(ctx, cl, &envelope); err != nil {
		return nil, err
	}
	if envelope.Businesses == nil {
		envelope.Businesses = []models.Business{}
	}

	c.logger.Debug().
		Int("found", len(envelope.Businesses)).
		Int("total", envelope.Total).
		Stringer("request", request).
		Msg("search completed")
	return &envelope, nil
}

func (c *Client) GetReviewsForBusiness(ctx context.Context, businessID string) ([]models.Review, error) {
	path, err := businessPath(businessID, pathReviews)
	if err != nil {
		return nil, err
	}

	var envelope models.ReviewsEnvelope
	if err := c.get(ctx, call{op: OpReviews, path: path}, &envelope); err != nil {
		return nil, err
	}
	if envelope.Reviews == nil {
		return []models.Review{}, nil
	}
	return envelope.Reviews, nil
}

func (c *Client) GetReviewsFor(ctx context.Context, business *models.Business) ([]models.Review, error) {
	id, err := businessIDOf(business)
	if err != nil {
		return nil, err
	}
	return c.GetReviewsForBusiness(ctx, id)
}

func businessIDOf(business *models.Business) (string, error) {
	if business == nil {
		return "", apierr.BadArgument("business cannot be nil")
	}
	if strings.TrimSpace(business.ID) == "" {
		return "", apierr.BadArgument("business is missing its id")
	}
	return business.ID, nil
}

// businessPath monta /businesses/{id}{suffix}. Ids que alterariam a estrutura
// da URL são rejeitados em vez de escapados.
func businessPath(businessID, suffix string) (string, error) {
	if strings.TrimSpace(businessID) == "" {
		return "", apierr.BadArgument("business id cannot be empty")
	}

	path := pathBusinesses + "/" + businessID + suffix
	invalid := strings.ContainsAny(businessID, "/?#%") || strings.IndexFunc(businessID, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}) >= 0
	if _, err := url.ParseRequestURI(path); err != nil || invalid {
		return "", apierr.BadArgument("business id %q leads to an invalid url", businessID)
	}
	return path, nil
}
