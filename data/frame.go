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
	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/greenledger/esg-api/esg"
)

// Column names in trend frames
const (
	YearIdx      = "YEAR"
	CompositeCol = "COMPOSITE"
	EnvCol       = "ENVIRONMENTAL"
	SocialCol    = "SOCIAL"
	GovCol       = "GOVERNANCE"
)

// TrendFrame builds a year-indexed frame of a company's pillar and
// composite scores, one row per year, suitable for a chart renderer
func (m *Manager) TrendFrame(companyID string, weights esg.Weights) (*dataframe.DataFrame, error) {
	history, err := m.History(companyID)
	if err != nil {
		return nil, err
	}

	n := len(history)
	years := dataframe.NewSeriesInt64(YearIdx, &dataframe.SeriesInit{Capacity: n})
	composite := dataframe.NewSeriesFloat64(CompositeCol, &dataframe.SeriesInit{Capacity: n})
	env := dataframe.NewSeriesFloat64(EnvCol, &dataframe.SeriesInit{Capacity: n})
	soc := dataframe.NewSeriesFloat64(SocialCol, &dataframe.SeriesInit{Capacity: n})
	gov := dataframe.NewSeriesFloat64(GovCol, &dataframe.SeriesInit{Capacity: n})

	for _, r := range history {
		pillars := esg.PillarScoresFor(r)
		years.Append(int64(r.Year))
		composite.Append(esg.Composite(pillars, weights))
		env.Append(pillars.Environmental)
		soc.Append(pillars.Social)
		gov.Append(pillars.Governance)
	}

	return dataframe.NewDataFrame(years, composite, env, soc, gov), nil
}

// TrendPoint is one year of a company's score history
type TrendPoint struct {
	Year      int              `json:"year"`
	Pillars   esg.PillarScores `json:"pillars"`
	Composite float64          `json:"composite"`

	// Change vs the prior year; zero for the first observation
	CompositeChange float64 `json:"compositeChange"`
}

// Trend computes the year-over-year score series for a company
func (m *Manager) Trend(companyID string, weights esg.Weights) ([]TrendPoint, error) {
	history, err := m.History(companyID)
	if err != nil {
		return nil, err
	}

	points := make([]TrendPoint, 0, len(history))
	prev := 0.0
	for ii, r := range history {
		pillars := esg.PillarScoresFor(r)
		composite := esg.Composite(pillars, weights)
		change := 0.0
		if ii > 0 {
			change = composite - prev
		}
		points = append(points, TrendPoint{
			Year:            r.Year,
			Pillars:         pillars,
			Composite:       composite,
			CompositeChange: change,
		})
		prev = composite
	}
	return points, nil
}
