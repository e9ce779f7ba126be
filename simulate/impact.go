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
	"sort"

	"github.com/greenledger/esg-api/benchmark"
	"github.com/greenledger/esg-api/common"
	"github.com/greenledger/esg-api/esg"
)

// ImpactSummary quantifies what a simulated scenario achieves
type ImpactSummary struct {
	ScoreDelta       float64        `json:"scoreDelta"`
	RatingBefore     esg.RatingBand `json:"ratingBefore"`
	RatingAfter      esg.RatingBand `json:"ratingAfter"`
	RatingChanged    bool           `json:"ratingChanged"`
	PercentileBefore float64        `json:"percentileBefore"`
	PercentileAfter  float64        `json:"percentileAfter"`
	PercentileDelta  float64        `json:"percentileDelta"`
	BestPillar       esg.Pillar     `json:"bestPillar"`
	BestPillarGain   float64        `json:"bestPillarGain"`
}

// Impact derives the impact metrics for a trajectory. Percentiles are
// recomputed against the same static peer set of composite scores that
// the company was benchmarked against; the peer set needs at least two
// members.
func Impact(traj Trajectory, peerComposites []float64) (*ImpactSummary, error) {
	if len(peerComposites) < benchmark.MinPeers {
		return nil, benchmark.ErrInsufficientPeers
	}

	initial := traj.Initial()
	final := traj.Final()

	gains := common.PairList{
		{Key: string(esg.PillarEnvironmental), Value: final.Pillars.Environmental - initial.Pillars.Environmental},
		{Key: string(esg.PillarSocial), Value: final.Pillars.Social - initial.Pillars.Social},
		{Key: string(esg.PillarGovernance), Value: final.Pillars.Governance - initial.Pillars.Governance},
	}
	sort.Sort(sort.Reverse(gains))

	pctBefore := benchmark.Percentile(initial.Composite, peerComposites)
	pctAfter := benchmark.Percentile(final.Composite, peerComposites)

	return &ImpactSummary{
		ScoreDelta:       final.Composite - initial.Composite,
		RatingBefore:     initial.Rating,
		RatingAfter:      final.Rating,
		RatingChanged:    initial.Rating != final.Rating,
		PercentileBefore: pctBefore,
		PercentileAfter:  pctAfter,
		PercentileDelta:  pctAfter - pctBefore,
		BestPillar:       esg.Pillar(gains[0].Key),
		BestPillarGain:   gains[0].Value,
	}, nil
}
