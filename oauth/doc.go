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
// Package oauth fornece os provedores de bearer token usados pelo cliente Fusion.
//
// Visão Geral:
// Há duas implementações de TokenProvider:
//   - BasicProvider: devolve sempre um token obtido previamente.
//   - RenewingProvider: troca client id/secret por um token (OAuth2 client
//     credentials) na primeira chamada e reutiliza o resultado dali em diante.
//
// O RenewingProvider não renova o token quando o expires_in informado pelo
// servidor expira: os tokens da plataforma têm validade longa e o cache
// vive o mesmo tempo que o provider. Duas goroutines que chamem Token ao mesmo
// tempo antes do primeiro sucesso podem fazer duas requisições; ambas recebem o
// mesmo token e a última escrita vence.
//
// Exemplo:
//
//	provider, err := oauth.NewRenewingProvider(clientID, clientSecret)
//	if err != nil {
//		log.Fatal(err)
//	}
//	token, err := provider.Token(ctx)
package oauth
