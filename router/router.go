// Copyright 2023-2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lestrrat-go/jwx/jwk"

	"github.com/greenledger/esg-api/handler"
	"github.com/greenledger/esg-api/middleware"
)

// SetupRoutes registers the API routes
func SetupRoutes(app *fiber.App, jwks *jwk.AutoRefresh, jwksURL string) {
	api := app.Group("/v1", middleware.NewLogger())
	api.Get("/", handler.Ping)

	auth := middleware.TokenAuth(jwks, jwksURL)

	// Companies
	company := api.Group("/companies", auth)
	company.Get("/", handler.ListCompanies)
	company.Get("/:id", handler.GetCompany)
	company.Get("/:id/history", handler.GetCompanyHistory)
	company.Get("/:id/trend", handler.GetCompanyTrend)

	// Sectors
	sector := api.Group("/sectors", auth)
	sector.Get("/", handler.ListSectors)
	sector.Get("/:sector", handler.GetSectorStatistics)

	// Dataset statistics
	api.Get("/summary", auth, handler.GetSummary)
	rankings := api.Group("/rankings", auth)
	rankings.Get("/top", handler.GetTopPerformers)
	rankings.Get("/bottom", handler.GetBottomPerformers)

	// Scoring
	score := api.Group("/score", auth)
	score.Post("/", handler.ScoreAdHoc)
	score.Get("/:id", handler.GetScoreCard)

	// Benchmarking
	bench := api.Group("/benchmark", auth)
	bench.Post("/custom", handler.BenchmarkCustom)
	bench.Get("/:id", handler.BenchmarkSector)

	// Simulation
	sim := api.Group("/simulate", auth)
	sim.Post("/", handler.RunSimulation)
	sim.Post("/quick", handler.QuickSimulation)
	sim.Get("/recommend/:id", handler.RecommendTargets)

	// Reports
	api.Post("/report/portfolio", auth, handler.GetPortfolioReport)
	api.Get("/report/:id", auth, handler.GetReport)
}
