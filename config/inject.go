package config

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"
)

// Regex para capturar padrões ${tipo.chave}
// Ex: ${env.YELP_SECRET}, ${ssm./yelp/client_id}, ${secret.prod/yelp}
var pattern = regexp.MustCompile(`\$\{(env|ssm|secret)\.([^}]+)\}`)

// Resolver busca valores de referências que não são variáveis de ambiente.
// kind é "ssm" ou "secret".
type Resolver interface {
	Resolve(ctx context.Context, kind, key string) (string, error)
}

// ResolverFunc adapta uma função ao Resolver.
type ResolverFunc func(ctx context.Context, kind, key string) (string, error)

func (f ResolverFunc) Resolve(ctx context.Context, kind, key string) (string, error) {
	return f(ctx, kind, key)
}

// Interpolate substitui as referências ${tipo.chave} em todos os campos string
// (inclusive slices de string) do struct apontado por target.
func Interpolate(ctx context.Context, target interface{}, resolver Resolver) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("target deve ser um ponteiro para struct não nulo")
	}
	return interpolateValue(ctx, v.Elem(), resolver)
}

func interpolateValue(ctx context.Context, v reflect.Value, resolver Resolver) error {
	switch v.Kind() {
	case reflect.Struct:
		for k := 0; k < v.NumField(); k++ {
			if err := interpolateValue(ctx, v.Field(k), resolver); err != nil {
				return fmt.Errorf("%s: %w", v.Type().Field(k).Name, err)
			}
		}

	case reflect.String:
		if !v.CanSet() {
			return nil
		}
		newValue, err := interpolateString(ctx, v.String(), resolver)
		if err != nil {
			return err
		}
		v.SetString(newValue)

	case reflect.Ptr:
		if !v.IsNil() {
			return interpolateValue(ctx, v.Elem(), resolver)
		}

	case reflect.Slice:
		for j := 0; j < v.Len(); j++ {
			if err := interpolateValue(ctx, v.Index(j), resolver); err != nil {
				return err
			}
		}
	}
	return nil
}

func interpolateString(ctx context.Context, input string, resolver Resolver) (string, error) {
	if !strings.Contains(input, "${") {
		return input, nil
	}

	var firstErr error
	result := pattern.ReplaceAllStringFunc(input, func(match string) string {
		if firstErr != nil {
			return match
		}
		parts := pattern.FindStringSubmatch(match)
		kind, key := parts[1], parts[2]

		if kind == "env" {
			return os.Getenv(key)
		}
		if resolver == nil {
			firstErr = fmt.Errorf("referência '%s' exige um resolver configurado", match)
			return match
		}
		val, err := resolver.Resolve(ctx, kind, key)
		if err != nil {
			firstErr = fmt.Errorf("falha ao resolver '%s': %w", match, err)
			return match
		}
		return val
	})

	return result, firstErr
}
