package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ConfigValidator struct {
	validate *validator.Validate
}

// NewValidator cria uma nova instância do validador
func NewValidator() *ConfigValidator {
	return &ConfigValidator{
		validate: validator.New(),
	}
}

// Validate valida a configuração com um validador padrão.
func (c *ClientConfig) Validate() error {
	return NewValidator().Validate(c)
}

// Validate realiza validações estruturais (tags) e semânticas (lógica)
func (cv *ConfigValidator) Validate(cfg *ClientConfig) error {
	if cfg == nil {
		return errors.New("configuração nula")
	}

	// 1. Validação Estrutural (Tags do struct: required, oneof, etc)
	if err := cv.validate.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var errMsgs []string
			for _, e := range validationErrors {
				errMsgs = append(errMsgs, fmt.Sprintf("Campo '%s' falhou na regra '%s'", e.Namespace(), e.Tag()))
			}
			return fmt.Errorf("erros de validação estrutural:\n- %s", strings.Join(errMsgs, "\n- "))
		}
		return fmt.Errorf("erro de validação estrutural: %w", err)
	}

	// 2. Validação Semântica (Regras de negócio da configuração)
	if err := cv.validateSemantics(cfg); err != nil {
		return fmt.Errorf("erro de validação semântica: %w", err)
	}

	return nil
}

func (cv *ConfigValidator) validateSemantics(cfg *ClientConfig) error {
	// 1. Exatamente uma fonte de credenciais
	sources := 0
	if cfg.Token != "" {
		sources++
	}
	if cfg.HasStaticCredentials() {
		sources++
	}
	if cfg.HasExternalCredentials() {
		sources++
	}
	switch {
	case sources == 0:
		return errors.New("nenhuma credencial informada: use 'token', 'client_id'/'client_secret' ou 'credentials.source'")
	case sources > 1:
		return errors.New("credenciais ambíguas: informe apenas uma entre 'token', 'client_id'/'client_secret' e 'credentials.source'")
	}

	// 2. Par client_id/client_secret completo
	if cfg.HasStaticCredentials() && (cfg.ClientID == "" || cfg.ClientSecret == "") {
		return errors.New("'client_id' e 'client_secret' devem ser informados juntos")
	}

	// 3. Parâmetros do SSM
	if cfg.Credentials.Source == SourceSSM {
		c := cfg.Credentials
		hasPair := c.ClientIDParam != "" && c.ClientSecretParam != ""
		if c.TokenParam == "" && !hasPair {
			return errors.New("fonte 'ssm' exige 'token_param' ou 'client_id_param' e 'client_secret_param'")
		}
		if c.TokenParam != "" && (c.ClientIDParam != "" || c.ClientSecretParam != "") {
			return errors.New("fonte 'ssm' aceita 'token_param' ou o par de credenciais, não ambos")
		}
	}

	return nil
}
