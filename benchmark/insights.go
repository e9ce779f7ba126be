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

package benchmark

import (
	"fmt"
	"math"
)

// z-score cutoffs for flagging a dimension as a strength or weakness
const (
	strengthZ = 1.0
	weaknessZ = -1.0
)

// Insights summarizes a benchmark comparison as a deterministic set of
// competitive observations
type Insights struct {
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Opportunities   []string `json:"opportunities"`
	Recommendations []string `json:"recommendations"`
}

// BuildInsights applies the insight rules to a set of benchmark
// results: z-score above +1 flags a strength, below -1 a weakness, and
// a percentile between 25 and 50 an opportunity. Weaknesses also yield
// a gap-to-mean recommendation.
func BuildInsights(results []*Result) *Insights {
	insights := &Insights{
		Strengths:       []string{},
		Weaknesses:      []string{},
		Opportunities:   []string{},
		Recommendations: []string{},
	}

	for _, res := range results {
		switch {
		case res.ZScore > strengthZ:
			insights.Strengths = append(insights.Strengths,
				fmt.Sprintf("%s: outperforms peers (%.0fth percentile, z=%.2f)",
					res.Dimension, res.Percentile, res.ZScore))
		case res.ZScore < weaknessZ:
			insights.Weaknesses = append(insights.Weaknesses,
				fmt.Sprintf("%s: trails peers (%.0fth percentile, z=%.2f)",
					res.Dimension, res.Percentile, res.ZScore))
			gap := math.Abs(res.VsMean)
			insights.Recommendations = append(insights.Recommendations,
				fmt.Sprintf("Improve %s by %.1f points to reach the peer average",
					res.Dimension, gap))
		case res.Percentile > 25 && res.Percentile < 50:
			insights.Opportunities = append(insights.Opportunities,
				fmt.Sprintf("%s: room to improve toward the peer median",
					res.Dimension))
		}
	}

	return insights
}
