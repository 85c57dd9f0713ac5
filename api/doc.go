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
// Package api é a fachada tipada da API Yelp Fusion v3.
//
// Visão Geral:
// Cada operação obtém um bearer token do oauth.TokenProvider, monta um GET contra
// a URL base, traduz o status HTTP para a taxonomia de apierr e decodifica o JSON
// de resposta nos modelos do pacote models. Não há estado entre chamadas além do
// token em cache no provider.
//
// Mapeamento de erros:
//   - id vazio, registro nulo ou id que gera URL inválida: apierr.ErrBadArgument, sem rede;
//   - HTTP 401: apierr.ErrAuthentication;
//   - HTTP 400: apierr.ErrBadArgument;
//   - qualquer outra falha (rede, status inesperado, JSON inválido): apierr.ErrOperationFailed.
//
// A causa original (incluindo *apierr.StatusError com o corpo da resposta) fica
// acessível via errors.As.
//
// Exemplo:
//
//	client, err := api.NewWithCredentials(ctx, clientID, clientSecret,
//		api.WithLogger(log),
//		api.WithEagerAuthentication(),
//	)
//	if err != nil {
//		return err
//	}
//
//	req, err := search.NewBuilder().
//		WithSearchTerm("coffee").
//		WithLocationText("Austin, TX").
//		Build()
//	if err != nil {
//		return err
//	}
//
//	businesses, err := client.SearchForBusinesses(ctx, req)
//
// Observabilidade:
// Cada chamada recebe um request id (uuid) enviado no header X-Request-ID e
// registrado no logger, um span OpenTelemetry "yelp.<operação>" e as métricas
// yelp.api.request (count) e yelp.api.latency_ms (histogram), ambas com as tags
// operation e status.
//
// Para testes, NewNoOp devolve uma implementação que nunca acessa a rede.
package api
