package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog"

	"github.com/raywall/yelp-fusion-toolkit/config"
)

// Interfaces para abstrair o SDK da AWS (Permite Mocking)
type SSMClient interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

type SecretsClient interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Credentials é o resultado da resolução: um token fixo ou o par client_id/client_secret.
type Credentials struct {
	ClientID     string
	ClientSecret string
	Token        string
}

// HasToken indica se a fonte entregou um token pronto.
func (c Credentials) HasToken() bool { return c.Token != "" }

// String nunca expõe os valores.
func (c Credentials) String() string {
	if c.HasToken() {
		return "Credentials{token=<redacted>}"
	}
	return fmt.Sprintf("Credentials{clientID=%s, clientSecret=<redacted>}", c.ClientID)
}

// Resolver lê valores do SSM Parameter Store e do Secrets Manager.
// Implementa config.Resolver para as referências ${ssm.…} e ${secret.…}.
type Resolver struct {
	ssm     SSMClient
	secrets SecretsClient
	logger  zerolog.Logger
}

var _ config.Resolver = (*Resolver)(nil)

type Option func(*Resolver)

func WithLogger(l zerolog.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// New cria um Resolver com os clientes reais da AWS para a região informada.
func New(ctx context.Context, region string, opts ...Option) (*Resolver, error) {
	cfg, err := GetAWSConfig(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar configuração AWS: %w", err)
	}
	return NewWithClients(ssm.NewFromConfig(cfg), secretsmanager.NewFromConfig(cfg), opts...), nil
}

// NewWithClients cria um Resolver sobre clientes já construídos (ou mocks).
func NewWithClients(ssmClient SSMClient, secretsClient SecretsClient, opts ...Option) *Resolver {
	r := &Resolver{
		ssm:     ssmClient,
		secrets: secretsClient,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Parameter lê um parâmetro do SSM com descriptografia.
func (r *Resolver) Parameter(ctx context.Context, path string) (string, error) {
	if r.ssm == nil {
		return "", errors.New("cliente SSM não configurado")
	}
	decrypt := true
	out, err := r.ssm.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           &path,
		WithDecryption: &decrypt,
	})
	if err != nil {
		return "", fmt.Errorf("erro no SSM GetParameter(%s): %w", path, err)
	}
	if out == nil || out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("parâmetro SSM '%s' sem valor", path)
	}
	return *out.Parameter.Value, nil
}

// Secret lê o valor textual de um segredo.
func (r *Resolver) Secret(ctx context.Context, secretID string) (string, error) {
	if r.secrets == nil {
		return "", errors.New("cliente SecretsManager não configurado")
	}
	out, err := r.secrets.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: &secretID,
	})
	if err != nil {
		return "", fmt.Errorf("erro no SecretsManager(%s): %w", secretID, err)
	}
	if out == nil || out.SecretString == nil {
		return "", fmt.Errorf("segredo '%s' não possui SecretString", secretID)
	}
	return *out.SecretString, nil
}

// Resolve atende referências de configuração. Para "secret", a chave pode
// selecionar um campo do JSON com '#': ${secret.prod/yelp#client_secret}.
func (r *Resolver) Resolve(ctx context.Context, kind, key string) (string, error) {
	switch kind {
	case "ssm":
		return r.Parameter(ctx, key)
	case "secret":
		id, field, hasField := strings.Cut(key, "#")
		val, err := r.Secret(ctx, id)
		if err != nil || !hasField {
			return val, err
		}
		data, ok := decodeJSON(val)
		if !ok {
			return "", fmt.Errorf("segredo '%s' não é um objeto JSON", id)
		}
		fieldVal, ok := data[field]
		if !ok {
			return "", fmt.Errorf("campo '%s' ausente no segredo '%s'", field, id)
		}
		return fieldVal, nil
	}
	return "", fmt.Errorf("tipo de referência não suportado: '%s'", kind)
}

// Credentials resolve as credenciais descritas em conf.
func (r *Resolver) Credentials(ctx context.Context, conf config.CredentialsConf) (Credentials, error) {
	var (
		creds Credentials
		err   error
	)

	switch conf.Source {
	case config.SourceSecretsManager:
		creds, err = r.fromSecretsManager(ctx, conf.SecretID)
	case config.SourceSSM:
		creds, err = r.fromSSM(ctx, conf)
	default:
		return Credentials{}, fmt.Errorf("fonte de credenciais desconhecida: '%s'", conf.Source)
	}
	if err != nil {
		return Credentials{}, err
	}

	r.logger.Debug().
		Str("source", conf.Source).
		Bool("token", creds.HasToken()).
		Msg("credenciais resolvidas")
	return creds, nil
}

func (r *Resolver) fromSecretsManager(ctx context.Context, secretID string) (Credentials, error) {
	val, err := r.Secret(ctx, secretID)
	if err != nil {
		return Credentials{}, err
	}

	// Tenta decodificar JSON; texto puro é tratado como token
	data, ok := decodeJSON(val)
	if !ok {
		if strings.TrimSpace(val) == "" {
			return Credentials{}, fmt.Errorf("segredo '%s' vazio", secretID)
		}
		return Credentials{Token: strings.TrimSpace(val)}, nil
	}

	creds := Credentials{
		ClientID:     data["client_id"],
		ClientSecret: data["client_secret"],
		Token:        firstNonEmpty(data["access_token"], data["token"]),
	}
	if creds.HasToken() {
		return Credentials{Token: creds.Token}, nil
	}
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return Credentials{}, fmt.Errorf("segredo '%s' deve conter client_id e client_secret ou access_token", secretID)
	}
	return creds, nil
}

func (r *Resolver) fromSSM(ctx context.Context, conf config.CredentialsConf) (Credentials, error) {
	if conf.TokenParam != "" {
		token, err := r.Parameter(ctx, conf.TokenParam)
		if err != nil {
			return Credentials{}, err
		}
		return Credentials{Token: token}, nil
	}

	id, err := r.Parameter(ctx, conf.ClientIDParam)
	if err != nil {
		return Credentials{}, err
	}
	secret, err := r.Parameter(ctx, conf.ClientSecretParam)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{ClientID: id, ClientSecret: secret}, nil
}

// decodeJSON converte um objeto JSON em mapa de strings; valores aninhados são ignorados.
func decodeJSON(val string) (map[string]string, bool) {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(val), &raw); err != nil {
		return nil, false
	}
	data := make(map[string]string, len(raw))
	for k, v := range raw {
		switch tv := v.(type) {
		case string:
			data[k] = tv
		case float64, bool:
			data[k] = fmt.Sprintf("%v", tv)
		}
	}
	return data, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
