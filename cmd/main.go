// Package main is the entry point for the plan-service application.
//
// @title           Plan Readiness & Cost Allocation API
// @version         1.0.0
// @description     API for evaluating farm input plan readiness and allocating invoice cost onto plan buckets.
//
//	For every planned input the service reports whether enough is on hand, on order,
//	or unobtainable under current commitments, with a full contribution trace; and it
//	allocates actual invoice cost across crop/pass buckets in proportion to planned
//	quantities to compute budget variance.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/agroplan/plan-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for authentication. Required if authentication is enabled.
//
// @tag.name        Readiness
// @tag.description Plan readiness evaluation
//
// @tag.name        Variance
// @tag.description Cost allocation and budget variance reports
//
// @tag.name        Price Book
// @tag.description Budgeted unit price management
//
// @tag.name        Auth
// @tag.description Authentication and authorization endpoints
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	_ "github.com/agroplan/plan-service/docs" // swagger docs

	"github.com/rs/zerolog/log"

	"github.com/agroplan/plan-service/config"
	"github.com/agroplan/plan-service/internal/app"
)

func main() {
	cfg := config.Load()

	router := app.InitializeApp(cfg)
	server := app.NewServer(router, cfg.Server.Port)

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
