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
// Package config define a configuração do cliente Fusion.
//
// Visão Geral:
// ClientConfig reúne endereço da API, credenciais, timeout, logging e métricas.
// A configuração pode vir de um arquivo YAML local, de um objeto no S3, de um item
// no DynamoDB ou de variáveis de ambiente com prefixo YELP_.
//
// Interpolação:
// Valores string aceitam referências no formato ${tipo.chave}, resolvidas após o
// parse e antes da validação:
//
//	client_secret: "${env.YELP_SECRET}"
//	client_secret: "${ssm./yelp/prod/client_secret}"
//	token: "${secret.prod/yelp/token}"
//
// Referências "env" são resolvidas localmente; "ssm" e "secret" exigem um Resolver
// (veja o pacote pkg/secrets).
//
// Validação:
// Além das tags do validator, exatamente uma fonte de credenciais deve ser informada:
// token fixo, par client_id/client_secret ou uma fonte externa em credentials.source.
package config
