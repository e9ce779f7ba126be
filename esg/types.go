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

package esg

// Pillar identifies one of the three ESG scoring pillars
type Pillar string

const (
	PillarEnvironmental Pillar = "environmental"
	PillarSocial        Pillar = "social"
	PillarGovernance    Pillar = "governance"
)

// Pillars lists the pillars in canonical order
var Pillars = []Pillar{PillarEnvironmental, PillarSocial, PillarGovernance}

// CompanyRecord is a single company-year observation. Records are
// immutable once loaded; all scores are derived on demand.
type CompanyRecord struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Sector    string  `json:"sector"`
	Country   string  `json:"country"`
	Year      int     `json:"year"`
	MarketCap float64 `json:"marketCap"` // billions USD

	// Environmental metrics
	CarbonEmissions    float64 `json:"carbonEmissions"`    // MT CO2e
	EnergyIntensity    float64 `json:"energyIntensity"`    // MWh per $M revenue
	WaterUsage         float64 `json:"waterUsage"`         // ML per year
	WasteRecyclingRate float64 `json:"wasteRecyclingRate"` // percent

	// Social metrics
	EmployeeTurnover    float64 `json:"employeeTurnover"` // percent
	DiversityScore      float64 `json:"diversityScore"`   // 0-100
	SafetyIncidents     float64 `json:"safetyIncidents"`  // reported count
	CommunityInvestment float64 `json:"communityInvestment"`

	// Governance metrics
	BoardIndependence float64 `json:"boardIndependence"` // percent
	ExecutivePayRatio float64 `json:"executivePayRatio"` // CEO:median pay
	ControversyScore  float64 `json:"controversyScore"`  // 0-100, higher is cleaner
}

// PillarScores holds the three pillar scores for a company-year, each
// in the range [0, 100]
type PillarScores struct {
	Environmental float64 `json:"environmental"`
	Social        float64 `json:"social"`
	Governance    float64 `json:"governance"`
}

// Get returns the named pillar score
func (p PillarScores) Get(pillar Pillar) float64 {
	switch pillar {
	case PillarEnvironmental:
		return p.Environmental
	case PillarSocial:
		return p.Social
	case PillarGovernance:
		return p.Governance
	}
	return 0
}

// Set replaces the named pillar score
func (p *PillarScores) Set(pillar Pillar, value float64) {
	switch pillar {
	case PillarEnvironmental:
		p.Environmental = value
	case PillarSocial:
		p.Social = value
	case PillarGovernance:
		p.Governance = value
	}
}

// ScoreCard is the full derived scoring output for a company-year
type ScoreCard struct {
	CompanyID string       `json:"companyId"`
	Year      int          `json:"year"`
	Pillars   PillarScores `json:"pillars"`
	Composite float64      `json:"composite"`
	Rating    RatingBand   `json:"rating"`
}
