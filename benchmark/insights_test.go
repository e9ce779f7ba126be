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

var _ = Describe("When deriving insights", func() {
	It("flags z-scores above +1 as strengths", func() {
		insights := benchmark.BuildInsights([]*benchmark.Result{
			{Dimension: "environmental", ZScore: 1.5, Percentile: 92},
		})
		Expect(insights.Strengths).To(HaveLen(1))
		Expect(insights.Strengths[0]).To(ContainSubstring("environmental"))
		Expect(insights.Weaknesses).To(BeEmpty())
	})

	It("flags z-scores below -1 as weaknesses with a gap recommendation", func() {
		insights := benchmark.BuildInsights([]*benchmark.Result{
			{Dimension: "social", ZScore: -1.8, Percentile: 8, VsMean: -12.5},
		})
		Expect(insights.Weaknesses).To(HaveLen(1))
		Expect(insights.Recommendations).To(HaveLen(1))
		Expect(insights.Recommendations[0]).To(ContainSubstring("12.5"))
	})

	It("flags percentiles between 25 and 50 as opportunities", func() {
		insights := benchmark.BuildInsights([]*benchmark.Result{
			{Dimension: "governance", ZScore: -0.4, Percentile: 38},
		})
		Expect(insights.Opportunities).To(HaveLen(1))
		Expect(insights.Strengths).To(BeEmpty())
		Expect(insights.Weaknesses).To(BeEmpty())
	})

	It("leaves mid-pack dimensions unremarked", func() {
		insights := benchmark.BuildInsights([]*benchmark.Result{
			{Dimension: "composite", ZScore: 0.2, Percentile: 55},
		})
		Expect(insights.Strengths).To(BeEmpty())
		Expect(insights.Weaknesses).To(BeEmpty())
		Expect(insights.Opportunities).To(BeEmpty())
		Expect(insights.Recommendations).To(BeEmpty())
	})

	It("exact boundary z-scores are not flagged", func() {
		insights := benchmark.BuildInsights([]*benchmark.Result{
			{Dimension: "composite", ZScore: 1.0, Percentile: 80},
			{Dimension: "social", ZScore: -1.0, Percentile: 20},
		})
		Expect(insights.Strengths).To(BeEmpty())
		Expect(insights.Weaknesses).To(BeEmpty())
	})
})
