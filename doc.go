// Package yelp_fusion_toolkit reúne um cliente Go para a Yelp Fusion API (v3)
// e as ferramentas necessárias para usá-lo em serviços backend.
//
// Visão Geral:
// O módulo é organizado em camadas pequenas e testáveis:
// 1. Busca (search): Builder imutável que valida e codifica os filtros de busca.
// 2. Autenticação (oauth): Token fixo ou troca de client id/secret com cache.
// 3. Fachada (api): Detalhes, busca e reviews com erros tipados (apierr).
// 4. Configuração (config, envloader): YAML, S3, DynamoDB ou variáveis YELP_*.
//
// Sub-Pacotes Principais:
//
// 1. apierr:
//   - Categorias BadArgument, Authentication, AreaTooLarge e OperationFailed.
//   - Sentinelas para errors.Is e StatusError para errors.As.
//
// 2. search:
//   - Limites da API (limit 50, offset 1000, raio 40000m).
//   - Catálogo de locales e atributos.
//
// 3. api:
//   - Client sobre resty com tracing OpenTelemetry e métricas (pkg/metrics).
//   - NewFromConfig monta logger, métricas e credenciais a partir da config.
//
// 4. pkg/secrets:
//   - Credenciais no AWS Secrets Manager ou no SSM Parameter Store.
//
// 5. tools/emulator:
//   - Servidor local que imita token, busca, detalhes e reviews.
//
// Exemplo de Início Rápido:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//		"log"
//
//		"github.com/raywall/yelp-fusion-toolkit/api"
//		"github.com/raywall/yelp-fusion-toolkit/config"
//		"github.com/raywall/yelp-fusion-toolkit/search"
//	)
//
//	func main() {
//		ctx := context.Background()
//
//		// 1. Configuração a partir de YELP_CLIENT_ID, YELP_CLIENT_SECRET, ...
//		cfg, err := config.FromEnv()
//		if err != nil {
//			log.Fatalf("Erro ao carregar config: %v", err)
//		}
//
//		// 2. Cliente
//		client, err := api.NewFromConfig(ctx, *cfg)
//		if err != nil {
//			log.Fatalf("Erro ao criar cliente: %v", err)
//		}
//		defer client.Close()
//
//		// 3. Busca
//		req, err := search.NewBuilder().
//			WithSearchTerm("tacos").
//			WithLocationText("Austin, TX").
//			WithLimit(5).
//			Build()
//		if err != nil {
//			log.Fatalf("Busca inválida: %v", err)
//		}
//		businesses, err := client.SearchForBusinesses(ctx, req)
//		if err != nil {
//			log.Fatalf("Erro na busca: %v", err)
//		}
//		for _, b := range businesses {
//			fmt.Println(b.Name, b.Rating)
//		}
//	}
package yelp_fusion_toolkit
