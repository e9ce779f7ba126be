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

package simulate

import (
	"math"

	"github.com/greenledger/esg-api/esg"
)

// QuickResult is a one-shot improvement simulation without the
// multi-period trajectory: each pillar grows by its own fraction
// applied once, capped at the ceiling.
type QuickResult struct {
	Current   esg.PillarScores `json:"current"`
	Projected esg.PillarScores `json:"projected"`
	Delta     esg.PillarScores `json:"delta"`

	CurrentComposite   float64 `json:"currentComposite"`
	ProjectedComposite float64 `json:"projectedComposite"`
	CompositeDelta     float64 `json:"compositeDelta"`
}

// Quick applies each improvement fraction once and reports the
// immediate score change
func Quick(current esg.PillarScores, improvements Fractions, weights esg.Weights) (*QuickResult, error) {
	if err := improvements.Validate(); err != nil {
		return nil, err
	}

	var projected, delta esg.PillarScores
	for _, pillar := range esg.Pillars {
		cur := esg.Clamp(current.Get(pillar), 0, 100)
		proj := math.Min(Ceiling, cur+cur*improvements.Get(pillar))
		projected.Set(pillar, proj)
		delta.Set(pillar, proj-cur)
	}

	curComposite := esg.Composite(current, weights)
	projComposite := esg.Composite(projected, weights)

	return &QuickResult{
		Current:            current,
		Projected:          projected,
		Delta:              delta,
		CurrentComposite:   curComposite,
		ProjectedComposite: projComposite,
		CompositeDelta:     projComposite - curComposite,
	}, nil
}

// PillarTarget describes the score increase one pillar needs to
// contribute toward a composite target
type PillarTarget struct {
	Pillar         esg.Pillar `json:"pillar"`
	Current        float64    `json:"current"`
	Target         float64    `json:"target"`
	IncreaseNeeded float64    `json:"increaseNeeded"`
}

// Recommendation distributes a composite score gap across pillars
type Recommendation struct {
	CurrentComposite float64        `json:"currentComposite"`
	TargetComposite  float64        `json:"targetComposite"`
	Gap              float64        `json:"gap"`
	AlreadyMet       bool           `json:"alreadyMet"`
	Targets          []PillarTarget `json:"targets"`
}

// Recommend computes the per-pillar score increases needed to lift the
// composite to targetScore. The gap is split evenly across pillars,
// then scaled by each pillar's composite weight.
func Recommend(current esg.PillarScores, weights esg.Weights, targetScore float64) (*Recommendation, error) {
	if targetScore < 0 || targetScore > 100 {
		return nil, ErrInvalidTarget
	}

	composite := esg.Composite(current, weights)
	rec := &Recommendation{
		CurrentComposite: composite,
		TargetComposite:  targetScore,
		Targets:          []PillarTarget{},
	}

	if composite >= targetScore {
		rec.AlreadyMet = true
		return rec, nil
	}

	rec.Gap = targetScore - composite
	pointsPerPillar := rec.Gap / float64(len(esg.Pillars))
	weightSum := weights.Sum()
	if weightSum <= 0 {
		weights = esg.EqualWeights
		weightSum = weights.Sum()
	}

	for _, pillar := range esg.Pillars {
		w := weights.Get(pillar)
		if w <= 0 {
			continue // a zero-weight pillar cannot move the composite
		}

		cur := current.Get(pillar)
		// a pillar contributes w/sum of its score to the composite, so
		// the raw score must rise by the inverse
		increase := pointsPerPillar / (w / weightSum)
		rec.Targets = append(rec.Targets, PillarTarget{
			Pillar:         pillar,
			Current:        cur,
			Target:         math.Min(Ceiling, cur+increase),
			IncreaseNeeded: increase,
		})
	}

	return rec, nil
}
