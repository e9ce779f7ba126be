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
	"github.com/greenledger/esg-api/esg"
)

// Benchmarkable dimension names. The derived dimensions are computed
// per record from the scoring weights; the raw dimensions read the
// record directly.
const (
	DimComposite     = "composite"
	DimEnvironmental = "environmental"
	DimSocial        = "social"
	DimGovernance    = "governance"

	DimCarbonEmissions     = "carbon_emissions"
	DimEnergyIntensity     = "energy_intensity"
	DimWaterUsage          = "water_usage"
	DimWasteRecyclingRate  = "waste_recycling_rate"
	DimEmployeeTurnover    = "employee_turnover"
	DimDiversityScore      = "diversity_score"
	DimSafetyIncidents     = "safety_incidents"
	DimCommunityInvestment = "community_investment"
	DimBoardIndependence   = "board_independence"
	DimExecutivePayRatio   = "executive_pay_ratio"
	DimControversyScore    = "controversy_score"
)

// DefaultDimensions are the dimensions benchmarked when a request
// doesn't name any
var DefaultDimensions = []string{DimComposite, DimEnvironmental, DimSocial, DimGovernance}

var rawDimensions = map[string]func(*esg.CompanyRecord) float64{
	DimCarbonEmissions:     func(r *esg.CompanyRecord) float64 { return r.CarbonEmissions },
	DimEnergyIntensity:     func(r *esg.CompanyRecord) float64 { return r.EnergyIntensity },
	DimWaterUsage:          func(r *esg.CompanyRecord) float64 { return r.WaterUsage },
	DimWasteRecyclingRate:  func(r *esg.CompanyRecord) float64 { return r.WasteRecyclingRate },
	DimEmployeeTurnover:    func(r *esg.CompanyRecord) float64 { return r.EmployeeTurnover },
	DimDiversityScore:      func(r *esg.CompanyRecord) float64 { return r.DiversityScore },
	DimSafetyIncidents:     func(r *esg.CompanyRecord) float64 { return r.SafetyIncidents },
	DimCommunityInvestment: func(r *esg.CompanyRecord) float64 { return r.CommunityInvestment },
	DimBoardIndependence:   func(r *esg.CompanyRecord) float64 { return r.BoardIndependence },
	DimExecutivePayRatio:   func(r *esg.CompanyRecord) float64 { return r.ExecutivePayRatio },
	DimControversyScore:    func(r *esg.CompanyRecord) float64 { return r.ControversyScore },
}

// ValidDimension reports whether name is a benchmarkable dimension
func ValidDimension(name string) bool {
	switch name {
	case DimComposite, DimEnvironmental, DimSocial, DimGovernance:
		return true
	}
	_, ok := rawDimensions[name]
	return ok
}

// DimensionValue extracts the named dimension from a record
func DimensionValue(r *esg.CompanyRecord, dimension string, weights esg.Weights) (float64, error) {
	switch dimension {
	case DimComposite:
		return esg.Composite(esg.PillarScoresFor(r), weights), nil
	case DimEnvironmental:
		return esg.PillarScoresFor(r).Environmental, nil
	case DimSocial:
		return esg.PillarScoresFor(r).Social, nil
	case DimGovernance:
		return esg.PillarScoresFor(r).Governance, nil
	}

	if fn, ok := rawDimensions[dimension]; ok {
		return fn(r), nil
	}
	return 0, ErrUnknownMetric
}

// DimensionValues extracts the named dimension from each record
func DimensionValues(records []*esg.CompanyRecord, dimension string, weights esg.Weights) ([]float64, error) {
	vals := make([]float64, 0, len(records))
	for _, r := range records {
		v, err := DimensionValue(r, dimension, weights)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}
