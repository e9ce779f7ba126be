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
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/greenledger/esg-api/benchmark"
	"github.com/greenledger/esg-api/data"
	"github.com/greenledger/esg-api/esg"
)

// BenchmarkResponse bundles the per-dimension comparisons with derived
// insights
type BenchmarkResponse struct {
	CompanyID string              `json:"companyId"`
	Sector    string              `json:"sector"`
	NumPeers  int                 `json:"numPeers"`
	Results   []*benchmark.Result `json:"results"`
	Insights  *benchmark.Insights `json:"insights"`
}

func requestedDimensions(c *fiber.Ctx) ([]string, error) {
	raw := c.Query("dimensions")
	if raw == "" {
		return data.DefaultDimensions, nil
	}

	dimensions := strings.Split(raw, ",")
	for _, dim := range dimensions {
		if !data.ValidDimension(dim) {
			log.Warn().Str("Dimension", dim).Msg("benchmark requested with unknown dimension")
			return nil, fiber.ErrNotAcceptable
		}
	}
	return dimensions, nil
}

func compareAgainstPeers(target *esg.CompanyRecord, peers []*esg.CompanyRecord, dimensions []string) ([]*benchmark.Result, error) {
	weights := esg.DefaultWeights()

	targets := make(map[string]float64, len(dimensions))
	peerVals := make(map[string][]float64, len(dimensions))
	for _, dim := range dimensions {
		tv, err := data.DimensionValue(target, dim, weights)
		if err != nil {
			return nil, err
		}
		vals, err := data.DimensionValues(peers, dim, weights)
		if err != nil {
			return nil, err
		}
		targets[dim] = tv
		peerVals[dim] = vals
	}

	return benchmark.CompareAll(dimensions, targets, peerVals)
}

// BenchmarkSector compares a company against its sector peers
func BenchmarkSector(c *fiber.Ctx) error {
	m, err := data.GetManager()
	if err != nil {
		return fiber.ErrServiceUnavailable
	}

	target, err := m.Latest(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	dimensions, err := requestedDimensions(c)
	if err != nil {
		return err
	}

	peers, err := m.SectorPeers(target.Sector, target.ID)
	if err != nil {
		return fiber.ErrNotFound
	}

	results, err := compareAgainstPeers(target, peers, dimensions)
	if err != nil {
		if errors.Is(err, benchmark.ErrInsufficientPeers) {
			return fiber.ErrUnprocessableEntity
		}
		log.Error().Stack().Err(err).Str("CompanyID", target.ID).Msg("sector benchmark failed")
		return fiber.ErrInternalServerError
	}

	return c.JSON(&BenchmarkResponse{
		CompanyID: target.ID,
		Sector:    target.Sector,
		NumPeers:  len(peers),
		Results:   results,
		Insights:  benchmark.BuildInsights(results),
	})
}

// customBenchmarkRequest names an explicit peer set
type customBenchmarkRequest struct {
	CompanyID  string   `json:"companyId"`
	Peers      []string `json:"peers"`
	Dimensions []string `json:"dimensions"`
}

// BenchmarkCustom compares a company against a caller-assembled peer
// set of 2 to 5 companies
func BenchmarkCustom(c *fiber.Ctx) error {
	m, err := data.GetManager()
	if err != nil {
		return fiber.ErrServiceUnavailable
	}

	var req customBenchmarkRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}

	if err := benchmark.ValidateCustomPeerSet(len(req.Peers)); err != nil {
		return fiber.ErrUnprocessableEntity
	}

	target, err := m.Latest(req.CompanyID)
	if err != nil {
		return fiber.ErrNotFound
	}

	dimensions := req.Dimensions
	if len(dimensions) == 0 {
		dimensions = data.DefaultDimensions
	}
	for _, dim := range dimensions {
		if !data.ValidDimension(dim) {
			return fiber.ErrNotAcceptable
		}
	}

	peers, err := m.PeersByID(req.Peers)
	if err != nil {
		return fiber.ErrNotFound
	}

	results, err := compareAgainstPeers(target, peers, dimensions)
	if err != nil {
		log.Error().Stack().Err(err).Str("CompanyID", target.ID).Msg("custom benchmark failed")
		return fiber.ErrInternalServerError
	}

	return c.JSON(&BenchmarkResponse{
		CompanyID: target.ID,
		Sector:    target.Sector,
		NumPeers:  len(peers),
		Results:   results,
		Insights:  benchmark.BuildInsights(results),
	})
}
