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
//
// Package envloader carrega variáveis de ambiente para campos de uma struct,
// usado pelo pacote config para montar o ClientConfig a partir de YELP_*.
//
// Tags suportadas:
//   - env:"NAME"          nome da variável (combinado com o prefixo, se houver)
//   - envDefault:"value"  valor usado quando a variável está vazia
//   - envRequired:"true"  falha com *MissingVariableError se não houver valor
//   - envPrefix:"SUB_"    em um campo struct, acrescenta um prefixo aos filhos
//
// Tipos: string, int*, uint*, bool, float*, time.Duration e []string (separado por vírgula).
//
// Exemplo:
//
//	type Credentials struct {
//		ClientID string `env:"CLIENT_ID" envRequired:"true"`
//		Timeout  time.Duration `env:"TIMEOUT" envDefault:"30s"`
//	}
//
//	var c Credentials
//	if err := envloader.LoadWithPrefix("YELP_", &c); err != nil {
//		log.Fatal(err)
//	}
package envloader
