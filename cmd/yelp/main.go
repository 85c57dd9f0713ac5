package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/raywall/yelp-fusion-toolkit/api"
	"github.com/raywall/yelp-fusion-toolkit/apierr"
	"github.com/raywall/yelp-fusion-toolkit/config"
	"github.com/raywall/yelp-fusion-toolkit/models"
	"github.com/raywall/yelp-fusion-toolkit/pkg/secrets"
	"github.com/raywall/yelp-fusion-toolkit/search"
)

const usage = "Comandos esperados: search | details | reviews | validate"

// Injetáveis para testes
var (
	newLoader = func() *config.Loader {
		return config.NewLoader(config.WithResolver(lazySecrets()))
	}
	newClient = func(ctx context.Context, cfg config.ClientConfig) (api.API, error) {
		return api.NewFromConfig(ctx, cfg)
	}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// run contém a lógica principal testável
func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) < 1 {
		return errors.New(usage)
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	source := fs.String("config", "", "Arquivo YAML, s3://bucket/key ou dynamodb://tabela/chave (vazio: variáveis YELP_*)")

	switch args[0] {
	case "search":
		opts := searchFlags(fs)
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
		req, err := opts.build()
		if err != nil {
			return err
		}
		return withClient(ctx, *source, func(c api.API) error {
			businesses, err := c.SearchForBusinesses(ctx, req)
			if err != nil {
				return err
			}
			return printJSON(out, businesses)
		})

	case "details", "reviews":
		id := fs.String("id", "", "Id do negócio")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == "" {
			return errors.New("flag -id é obrigatória")
		}
		return withClient(ctx, *source, func(c api.API) error {
			if args[0] == "details" {
				details, err := c.GetBusinessDetails(ctx, *id)
				if err != nil {
					return err
				}
				return printJSON(out, details)
			}
			reviews, err := c.GetReviewsForBusiness(ctx, *id)
			if err != nil {
				return err
			}
			return printJSON(out, reviews)
		})

	case "validate":
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		cfg, err := loadConfig(ctx, *source)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Configuração válida (credenciais: %s)\n", cfg.CredentialsKind())
		return nil

	default:
		return fmt.Errorf("comando desconhecido %q. %s", args[0], usage)
	}
}

func withClient(ctx context.Context, source string, fn func(api.API) error) error {
	cfg, err := loadConfig(ctx, source)
	if err != nil {
		return err
	}
	client, err := newClient(ctx, *cfg)
	if err != nil {
		return err
	}
	if closer, ok := client.(io.Closer); ok {
		defer closer.Close()
	}
	return fn(client)
}

func loadConfig(ctx context.Context, source string) (*config.ClientConfig, error) {
	loader := newLoader()
	if source == "" {
		return loader.FromEnv(ctx)
	}
	return loader.Load(ctx, source)
}

// lazySecrets só cria os clientes da AWS quando a config referencia ${ssm.*} ou ${secret.*}.
func lazySecrets() config.Resolver {
	var (
		once     sync.Once
		resolver *secrets.Resolver
		initErr  error
	)
	return config.ResolverFunc(func(ctx context.Context, kind, key string) (string, error) {
		once.Do(func() {
			resolver, initErr = secrets.New(ctx, os.Getenv("AWS_REGION"))
		})
		if initErr != nil {
			return "", initErr
		}
		return resolver.Resolve(ctx, kind, key)
	})
}

type searchOptions struct {
	term       *string
	location   *string
	latitude   *string
	longitude  *string
	radius     *int
	limit      *int
	offset     *int
	sortBy     *string
	categories *string
	prices     *string
	attributes *string
	locale     *string
	openNow    *bool
	openAt     *int
	// set guarda as flags informadas na linha de comando, mesmo com valor zero.
	set map[string]bool
}

func searchFlags(fs *flag.FlagSet) *searchOptions {
	return &searchOptions{
		term:       fs.String("term", "", "Termo de busca"),
		location:   fs.String("location", "", "Endereço ou cidade"),
		latitude:   fs.String("lat", "", "Latitude"),
		longitude:  fs.String("lon", "", "Longitude"),
		radius:     fs.Int("radius", 0, "Raio em metros"),
		limit:      fs.Int("limit", 0, "Quantidade de resultados"),
		offset:     fs.Int("offset", 0, "Deslocamento dos resultados"),
		sortBy:     fs.String("sort", "", "best_match, rating, review_count ou distance"),
		categories: fs.String("categories", "", "Aliases de categorias separados por vírgula"),
		prices:     fs.String("price", "", "Níveis de preço (1-4 ou $-$$$$) separados por vírgula"),
		attributes: fs.String("attributes", "", "Atributos separados por vírgula"),
		locale:     fs.String("locale", "", "Locale (ex.: en_US)"),
		openNow:    fs.Bool("open-now", false, "Apenas abertos agora"),
		openAt:     fs.Int("open-at", 0, "Apenas abertos na hora informada (0-24)"),
		set:        map[string]bool{},
	}
}

// build repassa ao Builder toda flag informada, inclusive "-limit 0". A
// validação fica com o Builder.
func (o *searchOptions) build() (*search.Request, error) {
	b := search.NewBuilder()
	if o.set["term"] {
		b.WithSearchTerm(*o.term)
	}
	if o.set["location"] {
		b.WithLocationText(*o.location)
	}
	if o.set["lat"] || o.set["lon"] {
		lat, errLat := strconv.ParseFloat(*o.latitude, 64)
		lon, errLon := strconv.ParseFloat(*o.longitude, 64)
		if err := errors.Join(errLat, errLon); err != nil {
			return nil, apierr.Wrap(apierr.KindBadArgument, err, "-lat e -lon devem ser números")
		}
		b.WithCoordinate(lat, lon)
	}
	if o.set["radius"] {
		b.WithRadiusInMeters(*o.radius)
	}
	if o.set["limit"] {
		b.WithLimit(*o.limit)
	}
	if o.set["offset"] {
		b.WithOffset(*o.offset)
	}
	if o.set["sort"] {
		b.WithSortBy(search.SortType(*o.sortBy))
	}
	if o.set["categories"] {
		list := splitFlag(*o.categories)
		categories := make([]models.Category, 0, len(list))
		for _, alias := range list {
			categories = append(categories, models.Category{Alias: alias})
		}
		b.WithCategories(categories...)
	}
	if o.set["price"] {
		list := splitFlag(*o.prices)
		prices := make([]models.Price, 0, len(list))
		for _, code := range list {
			p, err := parsePrice(code)
			if err != nil {
				return nil, apierr.Wrap(apierr.KindBadArgument, err, "invalid -price")
			}
			prices = append(prices, p)
		}
		b.WithPrices(prices...)
	}
	if o.set["attributes"] {
		list := splitFlag(*o.attributes)
		attributes := make([]search.Attribute, 0, len(list))
		for _, a := range list {
			attributes = append(attributes, search.Attribute(a))
		}
		b.WithAttributes(attributes...)
	}
	if o.set["locale"] {
		locale, ok := search.LookupLocale(*o.locale)
		if !ok {
			return nil, apierr.BadArgument("locale %q não suportado", *o.locale)
		}
		b.WithLocale(locale)
	}
	if *o.openNow {
		b.LookingForOpenNow()
	}
	if o.set["open-at"] {
		b.WithBusinessesOpenAt(*o.openAt)
	}
	return b.Build()
}

// parsePrice aceita tanto o código ("2") quanto o símbolo ("$$").
func parsePrice(code string) (models.Price, error) {
	if n, err := strconv.Atoi(code); err == nil {
		return models.PriceFromNumber(n)
	}
	return models.ParsePrice(code)
}

func splitFlag(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func printJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitCode diferencia erros de uso (2) de falhas de autenticação (3) e do resto (1).
func exitCode(err error) int {
	switch {
	case errors.Is(err, apierr.ErrBadArgument):
		return 2
	case errors.Is(err, apierr.ErrAuthentication):
		return 3
	default:
		return 1
	}
}
