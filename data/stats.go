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

package data

import (
	"sort"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"

	"github.com/greenledger/esg-api/esg"
)

// SummaryStats describes the dataset as a whole, computed over the
// latest record of each company
type SummaryStats struct {
	TotalCompanies int     `json:"totalCompanies"`
	TotalSectors   int     `json:"totalSectors"`
	TotalCountries int     `json:"totalCountries"`
	AvgComposite   float64 `json:"avgComposite"`
	AvgE           float64 `json:"avgEnvironmental"`
	AvgS           float64 `json:"avgSocial"`
	AvgG           float64 `json:"avgGovernance"`
	TopPerformer   string  `json:"topPerformer"`
	TopScore       float64 `json:"topScore"`
	FirstYear      int     `json:"firstYear"`
	LastYear       int     `json:"lastYear"`
}

// Summary computes dataset summary statistics
func (m *Manager) Summary(weights esg.Weights) *SummaryStats {
	latest := m.LatestRecords()

	var eVals, sVals, gVals, composites []float64
	topScore := -1.0
	topPerformer := ""
	for _, r := range latest {
		pillars := esg.PillarScoresFor(r)
		composite := esg.Composite(pillars, weights)
		eVals = append(eVals, pillars.Environmental)
		sVals = append(sVals, pillars.Social)
		gVals = append(gVals, pillars.Governance)
		composites = append(composites, composite)
		if composite > topScore {
			topScore = composite
			topPerformer = r.ID
		}
	}

	years := m.Years()

	return &SummaryStats{
		TotalCompanies: len(latest),
		TotalSectors:   len(m.sectors),
		TotalCountries: len(m.Countries()),
		AvgComposite:   stat.Mean(composites, nil),
		AvgE:           stat.Mean(eVals, nil),
		AvgS:           stat.Mean(sVals, nil),
		AvgG:           stat.Mean(gVals, nil),
		TopPerformer:   topPerformer,
		TopScore:       topScore,
		FirstYear:      years[0],
		LastYear:       years[len(years)-1],
	}
}

// RankedCompany pairs a company with its value on a ranking dimension
type RankedCompany struct {
	CompanyID string  `json:"companyId"`
	Name      string  `json:"name"`
	Sector    string  `json:"sector"`
	Value     float64 `json:"value"`
}

func (m *Manager) rankedByDimension(dimension string, weights esg.Weights) ([]RankedCompany, error) {
	latest := m.LatestRecords()

	ranked := make([]RankedCompany, 0, len(latest))
	for _, r := range latest {
		v, err := DimensionValue(r, dimension, weights)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, RankedCompany{
			CompanyID: r.ID,
			Name:      r.Name,
			Sector:    r.Sector,
			Value:     v,
		})
	}

	sort.Slice(ranked, func(i, j int) bool { return ranked[i].Value > ranked[j].Value })
	return ranked, nil
}

// TopPerformers returns the n highest companies on a dimension
func (m *Manager) TopPerformers(n int, dimension string, weights esg.Weights) ([]RankedCompany, error) {
	ranked, err := m.rankedByDimension(dimension, weights)
	if err != nil {
		return nil, err
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n], nil
}

// BottomPerformers returns the n lowest companies on a dimension
func (m *Manager) BottomPerformers(n int, dimension string, weights esg.Weights) ([]RankedCompany, error) {
	ranked, err := m.rankedByDimension(dimension, weights)
	if err != nil {
		return nil, err
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	bottom := ranked[len(ranked)-n:]

	// lowest first
	out := make([]RankedCompany, 0, n)
	for ii := len(bottom) - 1; ii >= 0; ii-- {
		out = append(out, bottom[ii])
	}
	return out, nil
}

// SectorStats holds per-sector pillar averages for the latest year
type SectorStats struct {
	Sector       string  `json:"sector"`
	NumCompanies int     `json:"numCompanies"`
	AvgComposite float64 `json:"avgComposite"`
	AvgE         float64 `json:"avgEnvironmental"`
	AvgS         float64 `json:"avgSocial"`
	AvgG         float64 `json:"avgGovernance"`
}

// SectorStatistics computes (or returns cached) sector averages
func (m *Manager) SectorStatistics(sector string, weights esg.Weights) (*SectorStats, error) {
	if cached, ok := m.sectorStats.Get(sector); ok {
		return cached.(*SectorStats), nil
	}

	peers, err := m.SectorPeers(sector, "")
	if err != nil {
		return nil, err
	}

	var eVals, sVals, gVals, composites []float64
	for _, r := range peers {
		pillars := esg.PillarScoresFor(r)
		eVals = append(eVals, pillars.Environmental)
		sVals = append(sVals, pillars.Social)
		gVals = append(gVals, pillars.Governance)
		composites = append(composites, esg.Composite(pillars, weights))
	}

	stats := &SectorStats{
		Sector:       sector,
		NumCompanies: len(peers),
		AvgComposite: stat.Mean(composites, nil),
		AvgE:         stat.Mean(eVals, nil),
		AvgS:         stat.Mean(sVals, nil),
		AvgG:         stat.Mean(gVals, nil),
	}

	m.sectorStats.Add(sector, stats)
	return stats, nil
}

// RefreshSectorStatistics recomputes every sector's cached averages.
// Run periodically so weight overrides applied at runtime show up.
func (m *Manager) RefreshSectorStatistics(weights esg.Weights) {
	m.sectorStats.Purge()
	for _, sector := range m.Sectors() {
		if _, err := m.SectorStatistics(sector, weights); err != nil {
			log.Error().Err(err).Str("Sector", sector).Msg("could not refresh sector statistics")
		}
	}
	log.Debug().Int("NumSectors", len(m.Sectors())).Msg("refreshed sector statistics")
}
