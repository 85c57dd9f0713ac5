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
// Package search modela a requisição de busca de negócios da API Fusion.
//
// Visão Geral:
// Um Request é um valor imutável montado por um Builder. Os setters do Builder
// apenas acumulam valores (e eventuais erros de faixa); toda a validação é
// reportada de uma vez por Build(), que também verifica as regras cruzadas:
//   - exatamente uma forma de localização (texto livre OU latitude+longitude);
//   - "open_now" e "open_at" são mutuamente exclusivos.
//
// Exemplo:
//
//	req, err := search.NewBuilder().
//		WithSearchTerm("tacos").
//		WithCoordinate(30.2672, -97.7431).
//		WithRadiusInMeters(5000).
//		WithPrices(models.PriceInexpensive, models.PriceModerate).
//		WithLimit(20).
//		LookingForOpenNow().
//		Build()
//	if err != nil {
//		// errors.Is(err, apierr.ErrBadArgument)
//	}
//
// Codificação:
// Listas de filtros são deduplicadas preservando a ordem. Categorias e atributos
// são unidos por ",", preços por ", ". O locale é enviado como header pelo pacote api.
package search
