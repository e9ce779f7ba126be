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

package report

import (
	"fmt"

	"github.com/greenledger/esg-api/esg"
)

// Risk severity levels
const (
	SeverityHigh   = "High"
	SeverityMedium = "Medium"
)

// Risk categories
const (
	CategoryEnvironmental = "Environmental"
	CategorySocial        = "Social"
	CategoryGovernance    = "Governance"
	CategoryReputation    = "Reputation"
)

// Risk is a single flagged exposure in a company's latest metrics
type Risk struct {
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

// IdentifyRisks applies fixed threshold rules to a company's latest
// record and derived pillar scores. The rules are deterministic so the
// same record always produces the same risk list.
func IdentifyRisks(r *esg.CompanyRecord, pillars esg.PillarScores) []Risk {
	risks := []Risk{}

	if pillars.Environmental < 50 {
		severity := SeverityMedium
		if pillars.Environmental < 40 {
			severity = SeverityHigh
		}
		risks = append(risks, Risk{
			Category:    CategoryEnvironmental,
			Severity:    severity,
			Description: fmt.Sprintf("Environmental score (%.1f) below industry threshold", pillars.Environmental),
		})
	}

	if r.CarbonEmissions > 50 {
		severity := SeverityMedium
		if r.CarbonEmissions > 100 {
			severity = SeverityHigh
		}
		risks = append(risks, Risk{
			Category:    CategoryEnvironmental,
			Severity:    severity,
			Description: fmt.Sprintf("High carbon emissions (%.1f MT)", r.CarbonEmissions),
		})
	}

	if pillars.Social < 50 {
		severity := SeverityMedium
		if pillars.Social < 40 {
			severity = SeverityHigh
		}
		risks = append(risks, Risk{
			Category:    CategorySocial,
			Severity:    severity,
			Description: fmt.Sprintf("Social score (%.1f) indicates workforce or community concerns", pillars.Social),
		})
	}

	if r.SafetyIncidents > 20 {
		severity := SeverityMedium
		if r.SafetyIncidents > 40 {
			severity = SeverityHigh
		}
		risks = append(risks, Risk{
			Category:    CategorySocial,
			Severity:    severity,
			Description: fmt.Sprintf("Elevated safety incidents (%.0f reported)", r.SafetyIncidents),
		})
	}

	if pillars.Governance < 60 {
		severity := SeverityMedium
		if pillars.Governance < 50 {
			severity = SeverityHigh
		}
		risks = append(risks, Risk{
			Category:    CategoryGovernance,
			Severity:    severity,
			Description: fmt.Sprintf("Governance score (%.1f) suggests oversight concerns", pillars.Governance),
		})
	}

	if r.BoardIndependence < 60 {
		risks = append(risks, Risk{
			Category:    CategoryGovernance,
			Severity:    SeverityMedium,
			Description: fmt.Sprintf("Low board independence (%.1f%%)", r.BoardIndependence),
		})
	}

	if r.ControversyScore < 60 {
		severity := SeverityMedium
		if r.ControversyScore < 50 {
			severity = SeverityHigh
		}
		risks = append(risks, Risk{
			Category:    CategoryReputation,
			Severity:    severity,
			Description: fmt.Sprintf("Controversy score (%.1f) indicates reputational exposure", r.ControversyScore),
		})
	}

	return risks
}

// ImprovementArea is a pillar where the company trails its sector
type ImprovementArea struct {
	Area           string  `json:"area"`
	Gap            float64 `json:"gap"`
	Recommendation string  `json:"recommendation"`
}

var pillarRecommendations = map[esg.Pillar]string{
	esg.PillarEnvironmental: "Focus on reducing carbon emissions and improving energy efficiency",
	esg.PillarSocial:        "Enhance workforce diversity, safety programs, and community engagement",
	esg.PillarGovernance:    "Strengthen board independence and improve executive compensation alignment",
}

// ImprovementAreas lists the pillars where the company scores below
// its sector average, largest gap first is not guaranteed; pillars
// appear in canonical order
func ImprovementAreas(pillars esg.PillarScores, sectorAvg esg.PillarScores) []ImprovementArea {
	areas := []ImprovementArea{}
	for _, pillar := range esg.Pillars {
		company := pillars.Get(pillar)
		sector := sectorAvg.Get(pillar)
		if company < sector {
			areas = append(areas, ImprovementArea{
				Area:           titleCase(string(pillar)),
				Gap:            sector - company,
				Recommendation: pillarRecommendations[pillar],
			})
		}
	}
	return areas
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
