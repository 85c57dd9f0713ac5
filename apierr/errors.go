// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package apierr

import (
	"errors"
	"fmt"
)

// Kind classifica a falha de uma operação do cliente Fusion.
type Kind int

const (
	KindUnknown Kind = iota
	// KindBadArgument indica que a entrada do chamador viola um contrato.
	KindBadArgument
	// KindAuthentication indica credenciais ou token rejeitados.
	KindAuthentication
	// KindAreaTooLarge é uma especialização de KindBadArgument para raios acima do máximo.
	KindAreaTooLarge
	// KindOperationFailed cobre falhas de rede, status inesperados e corpos malformados.
	KindOperationFailed
)

func (k Kind) String() string {
	switch k {
	case KindBadArgument:
		return "bad_argument"
	case KindAuthentication:
		return "authentication"
	case KindAreaTooLarge:
		return "area_too_large"
	case KindOperationFailed:
		return "operation_failed"
	default:
		return "unknown"
	}
}

// Sentinelas para uso com errors.Is.
//
//	if errors.Is(err, apierr.ErrAuthentication) { ... }
var (
	ErrBadArgument     = &Error{Kind: KindBadArgument}
	ErrAuthentication  = &Error{Kind: KindAuthentication}
	ErrAreaTooLarge    = &Error{Kind: KindAreaTooLarge}
	ErrOperationFailed = &Error{Kind: KindOperationFailed}
)

// Error é o erro de domínio devolvido por todos os pacotes do toolkit.
type Error struct {
	// Kind é a categoria do erro.
	Kind Kind
	// Message descreve a falha em termos do chamador.
	Message string
	// Err é a causa original (erro de transporte, de decode, etc), quando existir.
	Err error
}

// Error retorna "yelp <kind>: <message>: <causa>".
func (e *Error) Error() string {
	msg := "yelp " + e.Kind.String()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap expõe a causa original para errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is compara pela categoria. Um erro AreaTooLarge também satisfaz ErrBadArgument.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Kind == t.Kind {
		return true
	}
	return e.Kind == KindAreaTooLarge && t.Kind == KindBadArgument
}

// New cria um erro da categoria informada sem causa.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap cria um erro da categoria informada encadeando a causa.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: cause}
}

func BadArgument(format string, args ...any) *Error {
	return New(KindBadArgument, format, args...)
}

func AreaTooLarge(format string, args ...any) *Error {
	return New(KindAreaTooLarge, format, args...)
}

func Authentication(cause error, format string, args ...any) *Error {
	return Wrap(KindAuthentication, cause, format, args...)
}

func OperationFailed(cause error, format string, args ...any) *Error {
	return Wrap(KindOperationFailed, cause, format, args...)
}

// KindOf devolve a categoria do primeiro *Error encontrado na cadeia de err.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// StatusError guarda a resposta HTTP que originou um erro de domínio.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http status %d", e.StatusCode)
	}
	return fmt.Sprintf("http status %d: %s", e.StatusCode, e.Body)
}
