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
// Package emulator fornece um servidor HTTP que simula a API Yelp Fusion v3,
// projetado para desenvolvimento local e testes de integração sem depender do
// serviço real nem de credenciais verdadeiras.
//
// Visão Geral:
// O emulator atende o endpoint de token (POST /oauth2/token) e as rotas de
// negócios sob /v3, respondendo a partir de um dataset de fixtures em YAML.
// Diferente de mocks estáticos, a busca aplica os mesmos filtros e regras de
// validação do cliente: termo, localização, coordenadas com raio, categorias,
// preços, "open_now", ordenação e paginação.
//
// Rotas:
//   - POST /oauth2/token: client credentials; credenciais erradas retornam 400.
//   - GET /v3/businesses/search: 400 VALIDATION_ERROR para parâmetros inválidos.
//   - GET /v3/businesses/{id}: 404 BUSINESS_NOT_FOUND quando o id não existe.
//   - GET /v3/businesses/{id}/reviews
//
// Toda rota /v3 exige "Authorization: Bearer <token>"; sem ele a resposta é 401.
//
// Estrutura das Fixtures (YAML):
//
//	clients:
//	  - client_id: emulator-client
//	    client_secret: emulator-secret
//	token: emulator-token
//	expires_in: 15551999
//	businesses:
//	  - id: franklin-barbecue-austin
//	    name: Franklin Barbecue
//	    price: $$
//	    categories: [{alias: bbq, title: Barbeque}]
//	reviews:
//	  franklin-barbecue-austin:
//	    - rating: 5
//	      text: Worth every minute of the line.
//	faults:
//	  broken-business: 503
//
// Sem arquivo, DefaultFixtures fornece um dataset embutido.
//
// Exemplo de Uso em Testes:
//
//	emu := emulator.New(emulator.DefaultFixtures())
//	srv := httptest.NewServer(emu)
//	defer srv.Close()
//
//	client, _ := api.NewWithCredentials(ctx, "emulator-client", "emulator-secret",
//		api.WithBaseURL(srv.URL+emulator.APIPrefix),
//		api.WithAuthURL(srv.URL+emulator.TokenPath),
//	)
package emulator
