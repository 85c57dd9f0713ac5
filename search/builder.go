package search

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/raywall/yelp-fusion-toolkit/apierr"
	"github.com/raywall/yelp-fusion-toolkit/models"
)

var validate = validator.New()

// Builder acumula os campos de um Request. Os métodos podem ser encadeados e
// nunca falham imediatamente: erros são guardados e devolvidos por Build.
//
// Um Builder não deve ser compartilhado entre goroutines.
type Builder struct {
	req     Request
	openNow bool
	openAt  *int
	errs    []error
}

// NewBuilder cria um Builder vazio.
func NewBuilder() *Builder {
	return &Builder{}
}

// From cria um Builder pré-preenchido com os campos de um Request existente.
func From(r *Request) *Builder {
	b := NewBuilder()
	if r == nil {
		b.fail(apierr.BadArgument("request cannot be nil"))
		return b
	}
	b.req = *r
	b.req.open = OpenFilter{}
	if r.open.IsOpenNow() {
		b.openNow = true
	}
	if hour, ok := r.open.OpenAt(); ok {
		b.openAt = &hour
	}
	return b
}

func (b *Builder) fail(err error) *Builder {
	b.errs = append(b.errs, err)
	return b
}

// WithSearchTerm define o termo de busca (ex.: "food", "Starbucks").
func (b *Builder) WithSearchTerm(term string) *Builder {
	term = strings.TrimSpace(term)
	if term == "" {
		return b.fail(apierr.BadArgument("search term cannot be empty"))
	}
	b.req.term = term
	return b
}

// WithLocation usa um endereço como localização em texto livre. Os componentes
// não vazios são unidos por espaço: linha 1, 2 e 3, cidade, estado, país e CEP.
func (b *Builder) WithLocation(address models.Address) *Builder {
	var parts []string
	for _, p := range []string{
		address.Address1, address.Address2, address.Address3,
		address.City, address.State, address.Country, address.ZipCode,
	} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return b.fail(apierr.BadArgument("location cannot be empty"))
	}
	b.req.location = strings.Join(parts, " ")
	return b
}

// WithLocationText define a localização diretamente ("New York City", "350 5th Ave, New York").
func (b *Builder) WithLocationText(location string) *Builder {
	location = strings.TrimSpace(location)
	if location == "" {
		return b.fail(apierr.BadArgument("location cannot be empty"))
	}
	b.req.location = location
	return b
}

// WithCoordinate centraliza a busca num ponto. Latitude e longitude são validadas juntas.
func (b *Builder) WithCoordinate(latitude, longitude float64) *Builder {
	if validate.Var(latitude, "latitude") != nil {
		return b.fail(apierr.BadArgument("invalid latitude: %v", latitude))
	}
	if validate.Var(longitude, "longitude") != nil {
		return b.fail(apierr.BadArgument("invalid longitude: %v", longitude))
	}
	b.req.latitude = &latitude
	b.req.longitude = &longitude
	return b
}

// WithRadiusInMeters limita a área de busca. Acima de MaxRadiusInMeters o erro
// é do tipo AreaTooLarge.
func (b *Builder) WithRadiusInMeters(radius int) *Builder {
	if validate.Var(radius, "gt=0") != nil {
		return b.fail(apierr.BadArgument("radius must be > 0, got %d", radius))
	}
	if validate.Var(radius, "lte="+strconv.Itoa(MaxRadiusInMeters)) != nil {
		return b.fail(apierr.AreaTooLarge("search radius cannot exceed %d meters, got %d", MaxRadiusInMeters, radius))
	}
	b.req.radius = radius
	return b
}

// WithCategories filtra por categorias. Os aliases são deduplicados e unidos por ",".
func (b *Builder) WithCategories(categories ...models.Category) *Builder {
	if len(categories) == 0 {
		return b.fail(apierr.BadArgument("categories cannot be empty"))
	}
	aliases := make([]string, 0, len(categories))
	for _, c := range categories {
		if strings.TrimSpace(c.Alias) == "" {
			return b.fail(apierr.BadArgument("category %q is missing its alias", c.Title))
		}
		aliases = append(aliases, strings.TrimSpace(c.Alias))
	}
	b.req.categories = strings.Join(distinct(aliases), ",")
	return b
}

// WithLocale define o idioma dos resultados. O locale trafega como header.
func (b *Builder) WithLocale(locale Locale) *Builder {
	if err := locale.validate(); err != nil {
		return b.fail(err)
	}
	b.req.locale = locale.Code
	return b
}

// WithLimit define a quantidade de resultados (1..MaxLimit).
func (b *Builder) WithLimit(limit int) *Builder {
	if validate.Var(limit, "gt=0") != nil {
		return b.fail(apierr.BadArgument("limit must be > 0, got %d", limit))
	}
	if validate.Var(limit, "lte="+strconv.Itoa(MaxLimit)) != nil {
		return b.fail(apierr.BadArgument("limit cannot exceed %d, got %d", MaxLimit, limit))
	}
	b.req.limit = limit
	return b
}

// WithOffset desloca a lista de resultados (1..MaxOffset).
func (b *Builder) WithOffset(offset int) *Builder {
	if validate.Var(offset, "gt=0") != nil {
		return b.fail(apierr.BadArgument("offset must be > 0, got %d", offset))
	}
	if validate.Var(offset, "lte="+strconv.Itoa(MaxOffset)) != nil {
		return b.fail(apierr.BadArgument("offset cannot exceed %d, got %d", MaxOffset, offset))
	}
	b.req.offset = offset
	return b
}

// WithSortBy define a ordenação dos resultados.
func (b *Builder) WithSortBy(sortType SortType) *Builder {
	if !sortType.Valid() {
		return b.fail(apierr.BadArgument("unknown sort type %q", sortType))
	}
	b.req.sortBy = sortType
	return b
}

// WithPrices filtra por níveis de preço. Os códigos são deduplicados e unidos por ", ".
func (b *Builder) WithPrices(prices ...models.Price) *Builder {
	if len(prices) == 0 {
		return b.fail(apierr.BadArgument("prices cannot be empty"))
	}
	codes := make([]string, 0, len(prices))
	for _, p := range prices {
		if !p.Valid() {
			return b.fail(apierr.BadArgument("invalid price level %d", int(p)))
		}
		codes = append(codes, strconv.Itoa(int(p)))
	}
	b.req.prices = strings.Join(distinct(codes), ", ")
	return b
}

// WithAttributes filtra por atributos (ex.: hot_and_new, deals), unidos por ",".
func (b *Builder) WithAttributes(attributes ...Attribute) *Builder {
	if len(attributes) == 0 {
		return b.fail(apierr.BadArgument("attributes cannot be empty"))
	}
	tags := make([]string, 0, len(attributes))
	for _, a := range attributes {
		if !a.Valid() {
			return b.fail(apierr.BadArgument("unknown attribute %q", a))
		}
		tags = append(tags, string(a))
	}
	b.req.attributes = strings.Join(distinct(tags), ",")
	return b
}

// LookingForOpenNow restringe a negócios abertos agora. Não combina com WithBusinessesOpenAt.
func (b *Builder) LookingForOpenNow() *Builder {
	b.openNow = true
	return b
}

// WithBusinessesOpenAt restringe a negócios abertos na hora informada (0..24).
func (b *Builder) WithBusinessesOpenAt(hour int) *Builder {
	if validate.Var(hour, "gte=0,lte="+strconv.Itoa(MaxOpenAtHour)) != nil {
		return b.fail(apierr.BadArgument("open_at hour must be between 0 and %d, got %d", MaxOpenAtHour, hour))
	}
	b.openAt = &hour
	return b
}

// Build valida e congela o Request.
//
// Falha com apierr.ErrBadArgument quando algum setter recebeu valor inválido,
// quando nenhuma localização foi definida, ou quando open_now e open_at foram
// definidos juntos.
func (b *Builder) Build() (*Request, error) {
	errs := append([]error(nil), b.errs...)

	hasCoordinate := b.req.latitude != nil && b.req.longitude != nil
	if b.req.location == "" && !hasCoordinate {
		errs = append(errs, apierr.BadArgument("either a location or a coordinate must be set"))
	}
	if b.openNow && b.openAt != nil {
		errs = append(errs, apierr.BadArgument("you can use 'open_now' or 'open_at', but not both"))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	req := b.req
	switch {
	case b.openNow:
		req.open = OpenNowFilter()
	case b.openAt != nil:
		req.open = OpenAtFilter(*b.openAt)
	}
	return &req, nil
}

func distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
