package search

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Nomes dos parâmetros de query de /businesses/search.
const (
	ParamTerm       = "term"
	ParamLocation   = "location"
	ParamLatitude   = "latitude"
	ParamLongitude  = "longitude"
	ParamRadius     = "radius"
	ParamCategories = "categories"
	ParamLocale     = "locale"
	ParamLimit      = "limit"
	ParamOffset     = "offset"
	ParamSortBy     = "sort_by"
	ParamPrice      = "price"
	ParamOpenNow    = "open_now"
	ParamOpenAt     = "open_at"
	ParamAttributes = "attributes"
)

// Request é uma busca validada e imutável. Use NewBuilder ou From para criar.
type Request struct {
	term       string
	location   string
	latitude   *float64
	longitude  *float64
	radius     int
	categories string
	locale     string
	limit      int
	offset     int
	sortBy     SortType
	prices     string
	open       OpenFilter
	attributes string
}

func (r *Request) HasSearchTerm() bool { return r.term != "" }
func (r *Request) HasLocation() bool { return r.location != "" }
func (r *Request) HasLatitude() bool { return r.latitude != nil }
func (r *Request) HasLongitude() bool { return r.longitude != nil }
func (r *Request) HasRadius() bool { return r.radius > 0 }
func (r *Request) HasCategories() bool { return r.categories != "" }
func (r *Request) HasLocale() bool { return r.locale != "" }
func (r *Request) HasLimit() bool { return r.limit > 0 }
func (r *Request) HasOffset() bool { return r.offset > 0 }
func (r *Request) HasSortBy() bool { return r.sortBy != "" }
func (r *Request) HasPrices() bool { return r.prices != "" }
func (r *Request) HasOpenNow() bool { return r.open.IsOpenNow() }
func (r *Request) HasAttributes() bool { return r.attributes != "" }

func (r *Request) HasOpenAt() bool {
	_, ok := r.open.OpenAt()
	return ok
}

func (r *Request) SearchTerm() string { return r.term }
func (r *Request) Location() string { return r.location }
func (r *Request) Radius() int { return r.radius }
func (r *Request) Categories() string { return r.categories }
func (r *Request) Locale() string { return r.locale }
func (r *Request) Limit() int { return r.limit }
func (r *Request) Offset() int { return r.offset }
func (r *Request) SortBy() SortType { return r.sortBy }
func (r *Request) Prices() string { return r.prices }
func (r *Request) Open() OpenFilter { return r.open }
func (r *Request) Attributes() string { return r.attributes }

// Latitude devolve 0 quando ausente; consulte HasLatitude.
func (r *Request) Latitude() float64 {
	if r.latitude == nil {
		return 0
	}
	return *r.latitude
}

// Longitude devolve 0 quando ausente; consulte HasLongitude.
func (r *Request) Longitude() float64 {
	if r.longitude == nil {
		return 0
	}
	return *r.longitude
}

// Params codifica os campos presentes como parâmetros de query.
// O locale não faz parte do resultado: ele trafega como header.
func (r *Request) Params() url.Values {
	q := url.Values{}
	if r.HasAttributes() {
		q.Set(ParamAttributes, r.attributes)
	}
	if r.HasCategories() {
		q.Set(ParamCategories, r.categories)
	}
	if r.HasOpenNow() {
		q.Set(ParamOpenNow, "true")
	}
	if r.HasLatitude() {
		q.Set(ParamLatitude, formatFloat(*r.latitude))
	}
	if r.HasLimit() {
		q.Set(ParamLimit, strconv.Itoa(r.limit))
	}
	if r.HasLocation() {
		q.Set(ParamLocation, r.location)
	}
	if r.HasLongitude() {
		q.Set(ParamLongitude, formatFloat(*r.longitude))
	}
	if r.HasOffset() {
		q.Set(ParamOffset, strconv.Itoa(r.offset))
	}
	if hour, ok := r.open.OpenAt(); ok {
		q.Set(ParamOpenAt, strconv.Itoa(hour))
	}
	if r.HasPrices() {
		q.Set(ParamPrice, r.prices)
	}
	if r.HasRadius() {
		q.Set(ParamRadius, strconv.Itoa(r.radius))
	}
	if r.HasSearchTerm() {
		q.Set(ParamTerm, r.term)
	}
	if r.HasSortBy() {
		q.Set(ParamSortBy, string(r.sortBy))
	}
	return q
}

// String gera uma representação compacta para logs.
func (r *Request) String() string {
	var parts []string
	for _, kv := range []struct {
		key string
		ok  bool
		val string
	}{
		{ParamTerm, r.HasSearchTerm(), r.term},
		{ParamLocation, r.HasLocation(), r.location},
		{ParamLatitude, r.HasLatitude(), formatFloat(r.Latitude())},
		{ParamLongitude, r.HasLongitude(), formatFloat(r.Longitude())},
		{ParamRadius, r.HasRadius(), strconv.Itoa(r.radius)},
		{ParamCategories, r.HasCategories(), r.categories},
		{ParamLocale, r.HasLocale(), r.locale},
		{ParamLimit, r.HasLimit(), strconv.Itoa(r.limit)},
		{ParamOffset, r.HasOffset(), strconv.Itoa(r.offset)},
		{ParamSortBy, r.HasSortBy(), string(r.sortBy)},
		{ParamPrice, r.HasPrices(), r.prices},
		{"open", r.open.IsSet(), r.open.String()},
		{ParamAttributes, r.HasAttributes(), r.attributes},
	} {
		if kv.ok {
			parts = append(parts, fmt.Sprintf("%s=%s", kv.key, kv.val))
		}
	}
	return "SearchRequest{" + strings.Join(parts, ", ") + "}"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
