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

// Reference ranges used to normalize raw metrics onto a 0-100 scale.
// Values outside a range saturate at 0 or 100. The ranges are fixed by
// convention; changing them rescales every derived score.
const (
	maxCarbonEmissions     = 150.0 // MT CO2e
	maxEnergyIntensity     = 500.0 // MWh / $M revenue
	maxWaterUsage          = 1000.0
	maxEmployeeTurnover    = 40.0 // percent
	maxSafetyIncidents     = 50.0
	maxCommunityInvestment = 10.0 // percent of pre-tax profit
	maxExecutivePayRatio   = 400.0
)

// Clamp limits v to the range [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// scaleAsc normalizes a higher-is-better metric onto [0, 100]
func scaleAsc(v, max float64) float64 {
	return Clamp(v/max*100, 0, 100)
}

// scaleDesc normalizes a lower-is-better metric onto [0, 100]
func scaleDesc(v, max float64) float64 {
	return Clamp((1-v/max)*100, 0, 100)
}

// PillarScoresFor derives the three pillar scores for a company-year
// from its raw metrics. Each pillar is a weighted combination of its
// normalized metrics with weights from the embedded weights.toml.
func PillarScoresFor(r *CompanyRecord) PillarScores {
	cfg := weightsConfig()

	env := weightedScore(cfg.Environmental, map[string]float64{
		"carbon_emissions":     scaleDesc(r.CarbonEmissions, maxCarbonEmissions),
		"energy_intensity":     scaleDesc(r.EnergyIntensity, maxEnergyIntensity),
		"water_usage":          scaleDesc(r.WaterUsage, maxWaterUsage),
		"waste_recycling_rate": Clamp(r.WasteRecyclingRate, 0, 100),
	})

	soc := weightedScore(cfg.Social, map[string]float64{
		"employee_turnover":    scaleDesc(r.EmployeeTurnover, maxEmployeeTurnover),
		"diversity_score":      Clamp(r.DiversityScore, 0, 100),
		"safety_incidents":     scaleDesc(r.SafetyIncidents, maxSafetyIncidents),
		"community_investment": scaleAsc(r.CommunityInvestment, maxCommunityInvestment),
	})

	gov := weightedScore(cfg.Governance, map[string]float64{
		"board_independence":  Clamp(r.BoardIndependence, 0, 100),
		"executive_pay_ratio": scaleDesc(r.ExecutivePayRatio, maxExecutivePayRatio),
		"controversy_score":   Clamp(r.ControversyScore, 0, 100),
	})

	return PillarScores{
		Environmental: env,
		Social:        soc,
		Governance:    gov,
	}
}

func weightedScore(weights map[string]float64, normalized map[string]float64) float64 {
	var total, weightSum float64
	for metric, w := range weights {
		v, ok := normalized[metric]
		if !ok {
			continue
		}
		total += v * w
		weightSum += w
	}
	if weightSum == 0 {
		return 0
	}
	return Clamp(total/weightSum, 0, 100)
}

// Composite computes the weighted mean of the pillar scores, clamped
// to [0, 100]. Out-of-range pillar inputs are clamped rather than
// rejected.
func Composite(p PillarScores, w Weights) float64 {
	sum := w.Sum()
	if sum <= 0 {
		w = EqualWeights
		sum = w.Sum()
	}

	total := Clamp(p.Environmental, 0, 100)*w.Environmental +
		Clamp(p.Social, 0, 100)*w.Social +
		Clamp(p.Governance, 0, 100)*w.Governance

	return Clamp(total/sum, 0, 100)
}

// ScoreCardFor computes the full derived scoring output for a record
func ScoreCardFor(r *CompanyRecord, w Weights) *ScoreCard {
	pillars := PillarScoresFor(r)
	composite := Composite(pillars, w)

	return &ScoreCard{
		CompanyID: r.ID,
		Year:      r.Year,
		Pillars:   pillars,
		Composite: composite,
		Rating:    RatingFor(composite),
	}
}
