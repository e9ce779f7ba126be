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

// Package simulate projects multi-period ESG score trajectories under
// per-pillar improvement scenarios.
//
// Each period's gain on a pillar is
//
//	gain = (Ceiling - score) * fraction * DecayFactor^period
//
// so gains shrink every period and scores approach but never reach the
// ceiling. DecayFactor is a design constant, not a law of nature; 0.8
// keeps fifth-period gains visible at realistic improvement fractions.
package simulate

import (
	"math"

	"github.com/greenledger/esg-api/esg"
)

const (
	// Horizon is the fixed number of projected periods
	Horizon = 5

	// DecayFactor controls how quickly period-over-period gains shrink
	DecayFactor = 0.8

	// Ceiling is the asymptotic upper bound for any projected score
	Ceiling = 100.0

	// MaxImprovement caps per-pillar improvement fractions to keep
	// projections realistic
	MaxImprovement = 0.5
)

// Fractions holds the per-pillar improvement fraction for a scenario,
// each in [0, MaxImprovement]
type Fractions struct {
	Environmental float64 `json:"environmental"`
	Social        float64 `json:"social"`
	Governance    float64 `json:"governance"`
}

// Get returns the named pillar's improvement fraction
func (f Fractions) Get(pillar esg.Pillar) float64 {
	switch pillar {
	case esg.PillarEnvironmental:
		return f.Environmental
	case esg.PillarSocial:
		return f.Social
	case esg.PillarGovernance:
		return f.Governance
	}
	return 0
}

// Validate rejects out-of-range improvement fractions. Out-of-range
// values fail rather than silently clamp so callers see exactly what
// was simulated.
func (f Fractions) Validate() error {
	for _, v := range []float64{f.Environmental, f.Social, f.Governance} {
		if v < 0 || v > MaxImprovement {
			return ErrInvalidImprovement
		}
	}
	return nil
}

// Scenario describes a simulation request
type Scenario struct {
	CompanyID    string    `json:"companyId"`
	Improvements Fractions `json:"improvements"`
}

// TrajectoryPoint is one projected period
type TrajectoryPoint struct {
	Period    int              `json:"period"`
	Pillars   esg.PillarScores `json:"pillars"`
	Composite float64          `json:"composite"`
	Rating    esg.RatingBand   `json:"rating"`
}

// Trajectory is the ordered projection, point 0 holding the current
// scores
type Trajectory []TrajectoryPoint

// Final returns the last projected point
func (t Trajectory) Final() TrajectoryPoint {
	return t[len(t)-1]
}

// Initial returns the starting point
func (t Trajectory) Initial() TrajectoryPoint {
	return t[0]
}

// Project computes the score trajectory over the fixed horizon. The
// result always has Horizon+1 points, point 0 being the current state.
// Improvement fractions must already be validated.
func Project(current esg.PillarScores, improvements Fractions, weights esg.Weights) Trajectory {
	traj := make(Trajectory, 0, Horizon+1)

	pillars := current
	pillars.Environmental = esg.Clamp(pillars.Environmental, 0, 100)
	pillars.Social = esg.Clamp(pillars.Social, 0, 100)
	pillars.Governance = esg.Clamp(pillars.Governance, 0, 100)

	composite := esg.Composite(pillars, weights)
	traj = append(traj, TrajectoryPoint{
		Period:    0,
		Pillars:   pillars,
		Composite: composite,
		Rating:    esg.RatingFor(composite),
	})

	for period := 1; period <= Horizon; period++ {
		decay := math.Pow(DecayFactor, float64(period))
		for _, pillar := range esg.Pillars {
			score := pillars.Get(pillar)
			gain := (Ceiling - score) * improvements.Get(pillar) * decay
			pillars.Set(pillar, math.Min(Ceiling, score+gain))
		}

		composite = esg.Composite(pillars, weights)
		traj = append(traj, TrajectoryPoint{
			Period:    period,
			Pillars:   pillars,
			Composite: composite,
			Rating:    esg.RatingFor(composite),
		})
	}

	return traj
}

// Run validates the scenario's fractions and projects the trajectory
func Run(current esg.PillarScores, scenario *Scenario, weights esg.Weights) (Trajectory, error) {
	if err := scenario.Improvements.Validate(); err != nil {
		return nil, err
	}
	return Project(current, scenario.Improvements, weights), nil
}
