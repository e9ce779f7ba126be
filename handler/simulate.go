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

package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/greenledger/esg-api/benchmark"
	"github.com/greenledger/esg-api/data"
	"github.com/greenledger/esg-api/esg"
	"github.com/greenledger/esg-api/simulate"
)

// SimulationResponse is the full projection plus impact metrics when a
// peer group was available
type SimulationResponse struct {
	CompanyID  string                  `json:"companyId"`
	Trajectory simulate.Trajectory     `json:"trajectory"`
	Impact     *simulate.ImpactSummary `json:"impact,omitempty"`
}

// RunSimulation projects a company's scores over the improvement
// horizon described in the request body
func RunSimulation(c *fiber.Ctx) error {
	m, err := data.GetManager()
	if err != nil {
		return fiber.ErrServiceUnavailable
	}

	scenario := &simulate.Scenario{}
	if err := c.BodyParser(scenario); err != nil {
		return fiber.ErrBadRequest
	}

	r, err := m.Latest(scenario.CompanyID)
	if err != nil {
		return fiber.ErrNotFound
	}

	weights := esg.DefaultWeights()
	traj, err := simulate.Run(esg.PillarScoresFor(r), scenario, weights)
	if err != nil {
		if errors.Is(err, simulate.ErrInvalidImprovement) {
			return fiber.ErrUnprocessableEntity
		}
		log.Error().Stack().Err(err).Str("CompanyID", scenario.CompanyID).Msg("simulation failed")
		return fiber.ErrInternalServerError
	}

	resp := &SimulationResponse{
		CompanyID:  scenario.CompanyID,
		Trajectory: traj,
	}

	// impact metrics need a peer group; a thin sector just omits them
	if peers, err := m.SectorPeers(r.Sector, r.ID); err == nil {
		if composites, err := data.DimensionValues(peers, data.DimComposite, weights); err == nil {
			if impact, err := simulate.Impact(traj, composites); err == nil {
				resp.Impact = impact
			} else if !errors.Is(err, benchmark.ErrInsufficientPeers) {
				log.Warn().Err(err).Str("CompanyID", scenario.CompanyID).Msg("could not compute simulation impact")
			}
		}
	}

	return c.JSON(resp)
}

// QuickSimulation applies each improvement fraction once without the
// multi-period projection
func QuickSimulation(c *fiber.Ctx) error {
	m, err := data.GetManager()
	if err != nil {
		return fiber.ErrServiceUnavailable
	}

	scenario := &simulate.Scenario{}
	if err := c.BodyParser(scenario); err != nil {
		return fiber.ErrBadRequest
	}

	r, err := m.Latest(scenario.CompanyID)
	if err != nil {
		return fiber.ErrNotFound
	}

	result, err := simulate.Quick(esg.PillarScoresFor(r), scenario.Improvements, esg.DefaultWeights())
	if err != nil {
		return fiber.ErrUnprocessableEntity
	}
	return c.JSON(result)
}

// RecommendTargets computes the per-pillar increases needed to reach a
// target composite score
func RecommendTargets(c *fiber.Ctx) error {
	m, err := data.GetManager()
	if err != nil {
		return fiber.ErrServiceUnavailable
	}

	r, err := m.Latest(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	target, err := strconv.ParseFloat(c.Query("target", "80"), 64)
	if err != nil {
		return fiber.ErrBadRequest
	}

	rec, err := simulate.Recommend(esg.PillarScoresFor(r), esg.DefaultWeights(), target)
	if err != nil {
		if errors.Is(err, simulate.ErrInvalidTarget) {
			return fiber.ErrUnprocessableEntity
		}
		log.Error().Stack().Err(err).Str("CompanyID", r.ID).Msg("recommendation failed")
		return fiber.ErrInternalServerError
	}
	return c.JSON(rec)
}
