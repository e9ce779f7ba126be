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

package benchmark_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/greenledger/esg-api/benchmark"
)

var _ = Describe("When computing percentiles", func() {
	Context("with peers [40 50 60 70 80]", func() {
		peers := []float64{40, 50, 60, 70, 80}

		It("locates a mid-pack target at the 60th percentile", func() {
			Expect(benchmark.Percentile(60, peers)).Should(BeNumerically("~", 60, 1e-9))
		})

		It("is 0 below every peer", func() {
			Expect(benchmark.Percentile(10, peers)).Should(BeNumerically("~", 0, 1e-9))
		})

		It("is 100 at or above every peer", func() {
			Expect(benchmark.Percentile(80, peers)).Should(BeNumerically("~", 100, 1e-9))
			Expect(benchmark.Percentile(95, peers)).Should(BeNumerically("~", 100, 1e-9))
		})

		It("counts ties as at-or-below", func() {
			Expect(benchmark.Percentile(40, peers)).Should(BeNumerically("~", 20, 1e-9))
		})
	})
})

var _ = Describe("When computing z-scores", func() {
	It("is 0 at the peer mean", func() {
		Expect(benchmark.ZScore(60, []float64{40, 50, 60, 70, 80})).Should(BeNumerically("~", 0, 1e-9))
	})

	It("is 0 for a zero-variance peer group rather than dividing by zero", func() {
		Expect(benchmark.ZScore(75, []float64{50, 50, 50, 50})).Should(BeNumerically("~", 0, 1e-9))
	})

	It("is positive above the mean and negative below", func() {
		peers := []float64{40, 50, 60, 70, 80}
		Expect(benchmark.ZScore(80, peers)).Should(BeNumerically(">", 0))
		Expect(benchmark.ZScore(40, peers)).Should(BeNumerically("<", 0))
	})
})

var _ = Describe("When assigning quartiles", func() {
	DescribeTable("maps percentiles onto quartiles",
		func(percentile float64, quartile int) {
			Expect(benchmark.QuartileFor(percentile)).To(Equal(quartile))
		},
		Entry("bottom of the range", 0.0, 1),
		Entry("first quartile boundary", 25.0, 1),
		Entry("second quartile", 40.0, 2),
		Entry("second quartile boundary", 50.0, 2),
		Entry("third quartile", 70.0, 3),
		Entry("top quartile", 90.0, 4),
		Entry("top of the range", 100.0, 4),
	)
})

var _ = Describe("When validating custom peer sets", func() {
	It("rejects sets below the minimum", func() {
		Expect(benchmark.ValidateCustomPeerSet(1)).To(MatchError(benchmark.ErrPeerSetSize))
	})

	It("rejects sets above the maximum", func() {
		Expect(benchmark.ValidateCustomPeerSet(6)).To(MatchError(benchmark.ErrPeerSetSize))
	})

	It("accepts sets at the boundaries", func() {
		Expect(benchmark.ValidateCustomPeerSet(2)).To(Succeed())
		Expect(benchmark.ValidateCustomPeerSet(5)).To(Succeed())
	})
})

var _ = Describe("When comparing against a peer group", func() {
	Context("with peers [40 50 60 70 80] and a target of 60", func() {
		var res *benchmark.Result

		BeforeEach(func() {
			var err error
			res, err = benchmark.Compare("composite", 60, []float64{40, 50, 60, 70, 80})
			Expect(err).To(BeNil())
		})

		It("computes the peer mean and median", func() {
			Expect(res.PeerMean).Should(BeNumerically("~", 60, 1e-9))
			Expect(res.PeerMedian).Should(BeNumerically("~", 60, 1e-9))
		})

		It("locates the target", func() {
			Expect(res.Percentile).Should(BeNumerically("~", 60, 1e-9))
			Expect(res.ZScore).Should(BeNumerically("~", 0, 1e-9))
			Expect(res.Quartile).To(Equal(3))
			Expect(res.VsMean).Should(BeNumerically("~", 0, 1e-9))
		})
	})

	It("does not mutate the caller's peer slice", func() {
		peers := []float64{80, 40, 60}
		_, err := benchmark.Compare("composite", 50, peers)
		Expect(err).To(BeNil())
		Expect(peers).To(Equal([]float64{80, 40, 60}))
	})

	It("needs at least two peers", func() {
		_, err := benchmark.Compare("composite", 50, []float64{60})
		Expect(err).To(MatchError(benchmark.ErrInsufficientPeers))
	})
})

var _ = Describe("When comparing multiple dimensions", func() {
	It("produces one result per dimension in request order", func() {
		dimensions := []string{"composite", "environmental"}
		targets := map[string]float64{"composite": 60, "environmental": 45}
		peers := map[string][]float64{
			"composite":     {40, 50, 60, 70, 80},
			"environmental": {50, 55, 60},
		}

		results, err := benchmark.CompareAll(dimensions, targets, peers)
		Expect(err).To(BeNil())
		Expect(results).To(HaveLen(2))
		Expect(results[0].Dimension).To(Equal("composite"))
		Expect(results[1].Dimension).To(Equal("environmental"))
		Expect(results[1].Percentile).Should(BeNumerically("~", 0, 1e-9))
	})

	It("fails when a dimension has no target value", func() {
		_, err := benchmark.CompareAll([]string{"social"}, map[string]float64{}, map[string][]float64{"social": {1, 2}})
		Expect(err).To(MatchError(benchmark.ErrUnknownDimension))
	})
})
