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

// Package report assembles the full analysis payload for a single
// company: profile, scorecard, history, peer benchmark, risks, and
// improvement areas. Reports are plain data; rendering to markdown or
// JSON lives in render.go.
package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/greenledger/esg-api/benchmark"
	"github.com/greenledger/esg-api/data"
	"github.com/greenledger/esg-api/esg"
)

// Profile is the descriptive, non-derived portion of a company record
type Profile struct {
	CompanyID string  `json:"companyId"`
	Name      string  `json:"name"`
	Sector    string  `json:"sector"`
	Country   string  `json:"country"`
	Year      int     `json:"year"`
	MarketCap float64 `json:"marketCap"`
}

// CompanyReport is the complete analysis bundle for one company
type CompanyReport struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generatedAt"`
	Fingerprint string    `json:"datasetFingerprint"`

	Profile   Profile             `json:"profile"`
	ScoreCard *esg.ScoreCard      `json:"scoreCard"`
	Trend     []data.TrendPoint   `json:"trend"`
	Benchmark []*benchmark.Result `json:"benchmark"`
	Insights  *benchmark.Insights `json:"insights"`
	Risks     []Risk              `json:"risks"`
	Improve   []ImprovementArea   `json:"improvementAreas"`
	Sector    *data.SectorStats   `json:"sectorStats"`
}

// Build assembles a report for the company's latest year. Peer
// statistics use the exclusive convention: the company itself is not a
// member of its own peer group.
func Build(m *data.Manager, companyID string, weights esg.Weights) (*CompanyReport, error) {
	latest, err := m.Latest(companyID)
	if err != nil {
		return nil, err
	}

	card := esg.ScoreCardFor(latest, weights)
	trend, err := m.Trend(companyID, weights)
	if err != nil {
		return nil, err
	}

	peers, err := m.SectorPeers(latest.Sector, companyID)
	if err != nil {
		return nil, err
	}

	targets := make(map[string]float64, len(data.DefaultDimensions))
	peerVals := make(map[string][]float64, len(data.DefaultDimensions))
	for _, dim := range data.DefaultDimensions {
		target, err := data.DimensionValue(latest, dim, weights)
		if err != nil {
			return nil, err
		}
		vals, err := data.DimensionValues(peers, dim, weights)
		if err != nil {
			return nil, err
		}
		targets[dim] = target
		peerVals[dim] = vals
	}

	var results []*benchmark.Result
	var insights *benchmark.Insights
	results, err = benchmark.CompareAll(data.DefaultDimensions, targets, peerVals)
	switch err {
	case nil:
		insights = benchmark.BuildInsights(results)
	case benchmark.ErrInsufficientPeers:
		// a one-company sector still gets a report, just without the
		// peer comparison sections
		log.Warn().Str("CompanyID", companyID).Str("Sector", latest.Sector).Msg("too few peers for benchmark section")
		results = nil
		insights = nil
	default:
		return nil, err
	}

	sectorStats, err := m.SectorStatistics(latest.Sector, weights)
	if err != nil {
		return nil, err
	}

	sectorAvg := esg.PillarScores{
		Environmental: sectorStats.AvgE,
		Social:        sectorStats.AvgS,
		Governance:    sectorStats.AvgG,
	}

	return &CompanyReport{
		ID:          uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Fingerprint: m.Fingerprint(),
		Profile: Profile{
			CompanyID: latest.ID,
			Name:      latest.Name,
			Sector:    latest.Sector,
			Country:   latest.Country,
			Year:      latest.Year,
			MarketCap: latest.MarketCap,
		},
		ScoreCard: card,
		Trend:     trend,
		Benchmark: results,
		Insights:  insights,
		Risks:     IdentifyRisks(latest, card.Pillars),
		Improve:   ImprovementAreas(card.Pillars, sectorAvg),
		Sector:    sectorStats,
	}, nil
}
