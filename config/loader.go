package config

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"gopkg.in/yaml.v3"

	"github.com/raywall/yelp-fusion-toolkit/envloader"
)

// Interfaces para abstrair o SDK da AWS (Permite Mocking)
type S3Downloader interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type DynamoGetter interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// Loader carrega a configuração de um arquivo local, do S3 ou do DynamoDB.
//
// Fontes aceitas:
//
//	config.yaml | file://config.yaml
//	s3://bucket/caminho/config.yaml
//	dynamodb://tabela/chave?col=config&pk=id
type Loader struct {
	s3        S3Downloader
	dynamo    DynamoGetter
	resolver  Resolver
	validator *ConfigValidator
}

type LoaderOption func(*Loader)

// WithS3Client substitui o cliente S3 criado a partir da configuração padrão da AWS.
func WithS3Client(c S3Downloader) LoaderOption {
	return func(l *Loader) { l.s3 = c }
}

// WithDynamoClient substitui o cliente DynamoDB criado a partir da configuração padrão da AWS.
func WithDynamoClient(c DynamoGetter) LoaderOption {
	return func(l *Loader) { l.dynamo = c }
}

// WithResolver habilita referências ${ssm.…} e ${secret.…}.
func WithResolver(r Resolver) LoaderOption {
	return func(l *Loader) { l.resolver = r }
}

// WithoutValidation desliga a validação final; útil para mesclar fontes antes de validar.
func WithoutValidation() LoaderOption {
	return func(l *Loader) { l.validator = nil }
}

func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{validator: NewValidator()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFile lê, interpola e valida um arquivo YAML local.
func LoadFile(path string) (*ClientConfig, error) {
	return NewLoader().Load(context.Background(), path)
}

// FromEnv monta a configuração a partir das variáveis YELP_*.
func FromEnv() (*ClientConfig, error) {
	return NewLoader().FromEnv(context.Background())
}

// Load busca a configuração na fonte indicada e a valida.
func (l *Loader) Load(ctx context.Context, source string) (*ClientConfig, error) {
	var rawData []byte
	var err error

	switch {
	case strings.HasPrefix(source, "s3://"):
		client := l.s3
		if client == nil {
			cfg, cfgErr := awsconfig.LoadDefaultConfig(ctx)
			if cfgErr != nil {
				return nil, fmt.Errorf("falha ao carregar configuração AWS: %w", cfgErr)
			}
			client = s3.NewFromConfig(cfg)
		}
		rawData, err = l.loadFromS3(ctx, client, source)

	case strings.HasPrefix(source, "dynamodb://"):
		client := l.dynamo
		if client == nil {
			cfg, cfgErr := awsconfig.LoadDefaultConfig(ctx)
			if cfgErr != nil {
				return nil, fmt.Errorf("falha ao carregar configuração AWS: %w", cfgErr)
			}
			client = dynamodb.NewFromConfig(cfg)
		}
		rawData, err = l.loadFromDynamoDB(ctx, client, source)

	default:
		rawData, err = os.ReadFile(strings.TrimPrefix(source, "file://"))
	}

	if err != nil {
		return nil, fmt.Errorf("falha leitura config (%s): %w", source, err)
	}

	return l.Parse(ctx, rawData)
}

// Parse decodifica um documento YAML já carregado.
func (l *Loader) Parse(ctx context.Context, data []byte) (*ClientConfig, error) {
	var cfg ClientConfig

	// 1. Unmarshal (YAML -> Struct)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("YAML malformado: %w", err)
	}

	return l.finish(ctx, &cfg)
}

// FromEnv lê as variáveis com prefixo YELP_ (ex.: YELP_CLIENT_ID, YELP_LOG_LEVEL,
// YELP_CREDENTIALS_SECRET_ID, YELP_METRICS_DD_AGENT_HOST).
func (l *Loader) FromEnv(ctx context.Context) (*ClientConfig, error) {
	var cfg ClientConfig
	if err := envloader.LoadWithPrefix(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("falha ao ler variáveis de ambiente: %w", err)
	}
	return l.finish(ctx, &cfg)
}

func (l *Loader) finish(ctx context.Context, cfg *ClientConfig) (*ClientConfig, error) {
	// 2. Injeção (env/ssm/secret)
	if err := Interpolate(ctx, cfg, l.resolver); err != nil {
		return nil, fmt.Errorf("falha na injeção de variáveis: %w", err)
	}

	cfg.SetDefaults()

	// 3. Validação
	if l.validator != nil {
		if err := l.validator.Validate(cfg); err != nil {
			return nil, fmt.Errorf("validação da configuração falhou: %w", err)
		}
	}

	return cfg, nil
}

func (l *Loader) loadFromS3(ctx context.Context, client S3Downloader, uri string) ([]byte, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("URL S3 inválida: %w", err)
	}
	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("URL S3 inválida: bucket e chave são obrigatórios")
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

func (l *Loader) loadFromDynamoDB(ctx context.Context, client DynamoGetter, uri string) ([]byte, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("URL DynamoDB inválida: %w", err)
	}

	tableName := u.Host
	pkValue := strings.TrimPrefix(u.Path, "/")

	// Query Params opcionais: dynamodb://tabela/chave?col=dado&pk=UserId
	colName := u.Query().Get("col")
	if colName == "" {
		colName = "config"
	}

	pkName := u.Query().Get("pk")
	if pkName == "" {
		pkName = "id"
	}

	out, err := client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &tableName,
		Key: map[string]types.AttributeValue{
			pkName: &types.AttributeValueMemberS{Value: pkValue},
		},
	})
	if err != nil {
		return nil, err
	}

	if out.Item == nil {
		return nil, fmt.Errorf("item '%s' não encontrado na tabela '%s'", pkValue, tableName)
	}

	var itemMap map[string]interface{}
	if err := attributevalue.UnmarshalMap(out.Item, &itemMap); err != nil {
		return nil, err
	}

	content, ok := itemMap[colName].(string)
	if !ok || content == "" {
		return nil, fmt.Errorf("coluna '%s' inválida ou vazia no DynamoDB", colName)
	}

	return []byte(content), nil
}
