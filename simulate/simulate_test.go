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

package simulate_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/greenledger/esg-api/benchmark"
	"github.com/greenledger/esg-api/esg"
	"github.com/greenledger/esg-api/simulate"
)

var _ = Describe("When projecting a trajectory", func() {
	current := esg.PillarScores{Environmental: 50, Social: 60, Governance: 70}

	Context("with uniform improvement fractions", func() {
		improvements := simulate.Fractions{Environmental: 0.2, Social: 0.2, Governance: 0.2}

		var traj simulate.Trajectory

		BeforeEach(func() {
			traj = simulate.Project(current, improvements, esg.EqualWeights)
		})

		It("produces one point per period plus the starting state", func() {
			Expect(traj).To(HaveLen(simulate.Horizon + 1))
			Expect(traj.Initial().Period).To(Equal(0))
			Expect(traj.Final().Period).To(Equal(simulate.Horizon))
		})

		It("keeps the starting point equal to the current scores", func() {
			Expect(traj.Initial().Pillars).To(Equal(current))
			Expect(traj.Initial().Composite).Should(BeNumerically("~", 60, 1e-9))
		})

		It("applies the decayed headroom gain in period 1", func() {
			// (100 - 50) * 0.2 * 0.8 = 8
			Expect(traj[1].Pillars.Environmental).Should(BeNumerically("~", 58, 1e-9))
		})

		It("shrinks the per-period gain every period", func() {
			for period := 2; period <= simulate.Horizon; period++ {
				prevGain := traj[period-1].Pillars.Environmental - traj[period-2].Pillars.Environmental
				gain := traj[period].Pillars.Environmental - traj[period-1].Pillars.Environmental
				Expect(gain).Should(BeNumerically("<", prevGain))
			}
		})

		It("never reaches the ceiling", func() {
			final := traj.Final()
			Expect(final.Pillars.Environmental).Should(BeNumerically("<", simulate.Ceiling))
			Expect(final.Pillars.Social).Should(BeNumerically("<", simulate.Ceiling))
			Expect(final.Pillars.Governance).Should(BeNumerically("<", simulate.Ceiling))
			Expect(final.Composite).Should(BeNumerically("<", simulate.Ceiling))
		})

		It("produces a non-decreasing composite series", func() {
			for ii := 1; ii < len(traj); ii++ {
				Expect(traj[ii].Composite).Should(BeNumerically(">=", traj[ii-1].Composite))
			}
		})
	})

	Context("with zero improvement fractions", func() {
		It("stays flat across the horizon", func() {
			traj := simulate.Project(current, simulate.Fractions{}, esg.EqualWeights)
			for _, point := range traj {
				Expect(point.Pillars).To(Equal(current))
				Expect(point.Composite).Should(BeNumerically("~", 60, 1e-9))
			}
		})
	})
})

var _ = Describe("When running a scenario", func() {
	current := esg.PillarScores{Environmental: 50, Social: 60, Governance: 70}

	It("rejects fractions above the maximum", func() {
		scenario := &simulate.Scenario{Improvements: simulate.Fractions{Environmental: 0.8}}
		_, err := simulate.Run(current, scenario, esg.EqualWeights)
		Expect(err).To(MatchError(simulate.ErrInvalidImprovement))
	})

	It("rejects negative fractions", func() {
		scenario := &simulate.Scenario{Improvements: simulate.Fractions{Social: -0.1}}
		_, err := simulate.Run(current, scenario, esg.EqualWeights)
		Expect(err).To(MatchError(simulate.ErrInvalidImprovement))
	})

	It("accepts a fraction exactly at the maximum", func() {
		scenario := &simulate.Scenario{Improvements: simulate.Fractions{Environmental: simulate.MaxImprovement}}
		traj, err := simulate.Run(current, scenario, esg.EqualWeights)
		Expect(err).To(BeNil())
		Expect(traj).To(HaveLen(simulate.Horizon + 1))
	})
})

var _ = Describe("When summarizing scenario impact", func() {
	current := esg.PillarScores{Environmental: 55, Social: 55, Governance: 55}
	improvements := simulate.Fractions{Environmental: 0.3, Social: 0.1, Governance: 0.1}
	peers := []float64{40, 50, 60, 70, 80}

	It("reports the rating change and best pillar", func() {
		traj := simulate.Project(current, improvements, esg.EqualWeights)
		impact, err := simulate.Impact(traj, peers)
		Expect(err).To(BeNil())

		Expect(impact.ScoreDelta).Should(BeNumerically(">", 0))
		Expect(impact.RatingBefore).To(Equal(esg.RatingLaggard))
		Expect(impact.BestPillar).To(Equal(esg.PillarEnvironmental))
		Expect(impact.BestPillarGain).Should(BeNumerically(">", 0))
		Expect(impact.PercentileAfter).Should(BeNumerically(">=", impact.PercentileBefore))
		Expect(impact.PercentileDelta).Should(BeNumerically("~", impact.PercentileAfter-impact.PercentileBefore, 1e-9))
	})

	It("needs at least two peer composites", func() {
		traj := simulate.Project(current, improvements, esg.EqualWeights)
		_, err := simulate.Impact(traj, []float64{50})
		Expect(err).To(MatchError(benchmark.ErrInsufficientPeers))
	})
})
