package emulator

import (
	"fmt"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/raywall/yelp-fusion-toolkit/models"
	"github.com/raywall/yelp-fusion-toolkit/search"
)

const (
	defaultLimit = 20
	earthRadiusM = 6371000.0
)

type queryError struct {
	code        string
	description string
}

func validationError(format string, args ...interface{}) *queryError {
	return &queryError{code: "VALIDATION_ERROR", description: fmt.Sprintf(format, args...)}
}

// parseQuery remonta um search.Request a partir da query string, aplicando as
// mesmas regras de validação do cliente.
func parseQuery(r *http.Request) (*search.Request, *queryError) {
	q := r.URL.Query()
	b := search.NewBuilder()

	if v := q.Get(search.ParamTerm); v != "" {
		b.WithSearchTerm(v)
	}
	if v := q.Get(search.ParamLocation); v != "" {
		b.WithLocationText(v)
	}

	lat, lon := q.Get(search.ParamLatitude), q.Get(search.ParamLongitude)
	if lat != "" || lon != "" {
		latitude, errLat := strconv.ParseFloat(lat, 64)
		longitude, errLon := strconv.ParseFloat(lon, 64)
		if errLat != nil || errLon != nil {
			return nil, validationError("'%s' must be provided together and be numeric", "latitude/longitude")
		}
		b.WithCoordinate(latitude, longitude)
	}

	ints := []struct {
		name  string
		apply func(int) *search.Builder
	}{
		{search.ParamRadius, b.WithRadiusInMeters},
		{search.ParamLimit, b.WithLimit},
		{search.ParamOffset, b.WithOffset},
		{search.ParamOpenAt, b.WithBusinessesOpenAt},
	}
	for _, p := range ints {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, validationError("'%s' must be an integer", p.name)
		}
		p.apply(n)
	}

	if v := q.Get(search.ParamCategories); v != "" {
		var categories []models.Category
		for _, alias := range splitList(v) {
			categories = append(categories, models.Category{Alias: alias})
		}
		b.WithCategories(categories...)
	}
	if v := q.Get(search.ParamPrice); v != "" {
		var prices []models.Price
		for _, code := range splitList(v) {
			n, err := strconv.Atoi(code)
			if err != nil {
				return nil, validationError("'%s' must be a list of integers", search.ParamPrice)
			}
			prices = append(prices, models.Price(n))
		}
		b.WithPrices(prices...)
	}
	if v := q.Get(search.ParamAttributes); v != "" {
		var attributes []search.Attribute
		for _, a := range splitList(v) {
			attributes = append(attributes, search.Attribute(a))
		}
		b.WithAttributes(attributes...)
	}
	if v := q.Get(search.ParamSortBy); v != "" {
		b.WithSortBy(search.SortType(v))
	}
	if q.Get(search.ParamOpenNow) == "true" {
		b.LookingForOpenNow()
	}
	if v := r.Header.Get(search.ParamLocale); v != "" {
		locale, ok := search.LookupLocale(v)
		if !ok {
			return nil, validationError("'%s' is not a supported locale", v)
		}
		b.WithLocale(locale)
	}

	req, err := b.Build()
	if err != nil {
		return nil, &queryError{code: "VALIDATION_ERROR", description: err.Error()}
	}
	return req, nil
}

// search filtra, ordena e pagina as fixtures.
func (e *Emulator) search(req *search.Request) models.SearchEnvelope {
	var matches []models.Business
	for _, d := range e.fixtures.Businesses {
		if !matchesRequest(d, req) {
			continue
		}
		b := summary(d)
		if req.HasLatitude() && req.HasLongitude() && d.Coordinates != nil {
			dist := haversine(req.Latitude(), req.Longitude(), d.Coordinates.Latitude, d.Coordinates.Longitude)
			if req.HasRadius() && dist > float64(req.Radius()) {
				continue
			}
			b.Distance = &dist
		}
		matches = append(matches, b)
	}

	sortBusinesses(matches, req.SortBy())

	envelope := models.SearchEnvelope{Total: len(matches), Businesses: paginate(matches, req)}
	if req.HasLatitude() && req.HasLongitude() {
		envelope.Region = &models.Region{Center: models.Coordinate{Latitude: req.Latitude(), Longitude: req.Longitude()}}
	} else if len(matches) > 0 && matches[0].Coordinates != nil {
		envelope.Region = &models.Region{Center: *matches[0].Coordinates}
	}
	return envelope
}

func matchesRequest(d models.BusinessDetails, req *search.Request) bool {
	if req.HasSearchTerm() && !matchesTerm(d, req.SearchTerm()) {
		return false
	}
	if req.HasLocation() && !matchesLocation(d, req.Location()) {
		return false
	}
	if req.HasCategories() && !matchesAnyCategory(d, splitList(req.Categories())) {
		return false
	}
	if req.HasPrices() && !matchesPrice(d, splitList(req.Prices())) {
		return false
	}
	if req.HasOpenNow() && !d.IsOpenNow() {
		return false
	}
	return !d.IsClosed
}

func matchesTerm(d models.BusinessDetails, term string) bool {
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(d.Name), term) {
		return true
	}
	for _, c := range d.Categories {
		if strings.Contains(strings.ToLower(c.Alias), term) || strings.Contains(strings.ToLower(c.Title), term) {
			return true
		}
	}
	return false
}

// matchesLocation aceita quando a cidade aparece no texto pesquisado ou vice-versa.
func matchesLocation(d models.BusinessDetails, location string) bool {
	if d.Location == nil {
		return false
	}
	location = strings.ToLower(location)
	city := strings.ToLower(d.Location.City)
	if city != "" && strings.Contains(location, city) {
		return true
	}
	display := strings.ToLower(strings.Join(d.Location.DisplayAddress, " "))
	return display != "" && strings.Contains(display, location)
}

func matchesAnyCategory(d models.BusinessDetails, aliases []string) bool {
	for _, alias := range aliases {
		for _, c := range d.Categories {
			if c.Alias == alias {
				return true
			}
		}
	}
	return false
}

func matchesPrice(d models.BusinessDetails, codes []string) bool {
	level, ok := d.PriceLevel()
	if !ok {
		return false
	}
	for _, code := range codes {
		if code == strconv.Itoa(int(level)) {
			return true
		}
	}
	return false
}

func sortBusinesses(list []models.Business, sortBy search.SortType) {
	switch sortBy {
	case search.SortRating:
		sort.SliceStable(list, func(i, j int) bool { return list[i].Rating > list[j].Rating })
	case search.SortReviewCount:
		sort.SliceStable(list, func(i, j int) bool { return list[i].ReviewCount > list[j].ReviewCount })
	case search.SortDistance:
		sort.SliceStable(list, func(i, j int) bool {
			return distanceOf(list[i]) < distanceOf(list[j])
		})
	}
}

func distanceOf(b models.Business) float64 {
	if b.Distance == nil {
		return math.MaxFloat64
	}
	return *b.Distance
}

func paginate(list []models.Business, req *search.Request) []models.Business {
	limit := defaultLimit
	if req.HasLimit() {
		limit = req.Limit()
	}
	offset := 0
	if req.HasOffset() {
		offset = req.Offset()
	}
	if offset >= len(list) {
		return []models.Business{}
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}

// haversine devolve a distância em metros entre dois pontos.
func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusM * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
