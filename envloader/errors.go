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
package envloader

import (
	"fmt"
	"reflect"
)

// InvalidConfigError é retornado quando Load recebe algo que não é um ponteiro
// não nulo para struct.
type InvalidConfigError struct {
	// Value é o tipo recebido; nil quando o argumento era uma interface nula.
	Value reflect.Type
}

// Error retorna uma mensagem indicando o tipo de argumento inválido.
//
// Exemplo de Retorno: "envloader: config must be a pointer to struct, got string"
func (e *InvalidConfigError) Error() string {
	switch {
	case e.Value == nil:
		return "envloader: config must be a pointer to struct, got nil"
	case e.Value.Kind() != reflect.Ptr:
		return fmt.Sprintf("envloader: config must be a pointer to struct, got %s", e.Value.Kind())
	default:
		return fmt.Sprintf("envloader: config must be a pointer to struct, got pointer to %s", e.Value.Elem().Kind())
	}
}

// FieldError é retornado quando o valor de uma variável não pode ser convertido
// para o tipo do campo.
type FieldError struct {
	FieldName string
	EnvVar    string
	Value     string
	// Err é o erro original (ex: *strconv.NumError, *UnsupportedTypeError).
	Err error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("envloader: error setting field %s from env %s=%s: %v",
		e.FieldName, e.EnvVar, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// MissingVariableError é retornado quando um campo envRequired não tem valor
// nem na variável nem em envDefault.
type MissingVariableError struct {
	FieldName string
	EnvVar    string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("envloader: required env %s for field %s is not set", e.EnvVar, e.FieldName)
}

// UnsupportedTypeError é retornado quando o tipo do campo não tem conversão.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("envloader: unsupported type %s", e.Type)
}
