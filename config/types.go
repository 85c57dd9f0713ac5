package config

import "time"

const (
	// DefaultTimeout é aplicado quando nenhum timeout é informado.
	DefaultTimeout = 30 * time.Second

	// EnvPrefix é o prefixo das variáveis de ambiente lidas por FromEnv.
	EnvPrefix = "YELP_"
)

// Fontes externas de credenciais suportadas em CredentialsConf.Source.
const (
	SourceSecretsManager = "secretsmanager"
	SourceSSM            = "ssm"
)

// ClientConfig representa a estrutura raiz da configuração do cliente.
type ClientConfig struct {
	BaseURL      string          `yaml:"base_url" env:"BASE_URL" validate:"omitempty,url"`
	AuthURL      string          `yaml:"auth_url" env:"AUTH_URL" validate:"omitempty,url"`
	ClientID     string          `yaml:"client_id" env:"CLIENT_ID"`
	ClientSecret string          `yaml:"client_secret" env:"CLIENT_SECRET"`
	Token        string          `yaml:"token" env:"TOKEN"`
	Timeout      time.Duration   `yaml:"timeout" env:"TIMEOUT" validate:"gte=0"`
	UserAgent    string          `yaml:"user_agent" env:"USER_AGENT"`
	EagerAuth    bool            `yaml:"eager_auth" env:"EAGER_AUTH"`
	Credentials  CredentialsConf `yaml:"credentials" envPrefix:"CREDENTIALS_"`
	Logging      LoggingConf     `yaml:"logging" envPrefix:"LOG_"`
	Metrics      MetricsConf     `yaml:"metrics" envPrefix:"METRICS_"`
}

// CredentialsConf aponta para credenciais guardadas fora da configuração.
//
// Com Source "secretsmanager", SecretID deve conter um JSON com client_id e
// client_secret (ou access_token); um segredo em texto puro é tratado como token.
// Com Source "ssm", os parâmetros são lidos com descriptografia.
type CredentialsConf struct {
	Source            string `yaml:"source" env:"SOURCE" validate:"omitempty,oneof=secretsmanager ssm"`
	Region            string `yaml:"region" env:"REGION"`
	SecretID          string `yaml:"secret_id" env:"SECRET_ID" validate:"required_if=Source secretsmanager"`
	ClientIDParam     string `yaml:"client_id_param" env:"CLIENT_ID_PARAM"`
	ClientSecretParam string `yaml:"client_secret_param" env:"CLIENT_SECRET_PARAM"`
	TokenParam        string `yaml:"token_param" env:"TOKEN_PARAM"`
}

type LoggingConf struct {
	Enabled bool   `yaml:"enabled" env:"ENABLED"`
	Level   string `yaml:"level" env:"LEVEL" validate:"oneof=debug info warn error"`
	Format  string `yaml:"format" env:"FORMAT" validate:"oneof=json console"`
}

type MetricsConf struct {
	Datadog DatadogConf `yaml:"datadog" envPrefix:"DD_"`
}

type DatadogConf struct {
	Enabled   bool     `yaml:"enabled" env:"ENABLED"`
	Addr      string   `yaml:"addr" env:"AGENT_HOST" validate:"required_if=Enabled true"`
	Namespace string   `yaml:"namespace" env:"NAMESPACE"`
	Tags      []string `yaml:"tags" env:"TAGS"`
}

// HasStaticCredentials indica se client_id e client_secret foram informados.
func (c ClientConfig) HasStaticCredentials() bool {
	return c.ClientID != "" || c.ClientSecret != ""
}

// HasExternalCredentials indica se as credenciais vêm do Secrets Manager ou SSM.
func (c ClientConfig) HasExternalCredentials() bool {
	return c.Credentials.Source != ""
}

// CredentialsKind descreve a origem das credenciais para logs: "secretsmanager",
// "ssm", "token" ou "client_credentials". Nunca inclui valores.
func (c ClientConfig) CredentialsKind() string {
	switch {
	case c.HasExternalCredentials():
		return c.Credentials.Source
	case c.Token != "":
		return "token"
	default:
		return "client_credentials"
	}
}

// GetTimeout retorna o timeout efetivo do cliente HTTP.
func (c ClientConfig) GetTimeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

// SetDefaults preenche os campos opcionais não informados.
func (c *ClientConfig) SetDefaults() {
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
}
