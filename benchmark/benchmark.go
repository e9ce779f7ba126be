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

// Package benchmark locates a target value within a peer distribution
// using standard descriptive statistics: percentile rank, z-score,
// quartile, and peer mean/median.
//
// Percentile convention: count(peers <= target) / len(peers) * 100.
// The peer slice is used exactly as supplied; the caller decides
// whether the target's own observation belongs to it. The same
// convention applies to every dimension.
package benchmark

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

const (
	// MinPeers is the smallest peer set any comparison accepts
	MinPeers = 2

	// MaxCustomPeers caps user-assembled peer sets
	MaxCustomPeers = 5
)

// Result locates a single dimension of a target company within its
// peer distribution
type Result struct {
	Dimension  string  `json:"dimension"`
	Target     float64 `json:"target"`
	PeerMean   float64 `json:"peerMean"`
	PeerMedian float64 `json:"peerMedian"`
	PeerStdDev float64 `json:"peerStdDev"`
	Percentile float64 `json:"percentile"`
	ZScore     float64 `json:"zScore"`
	Quartile   int     `json:"quartile"`
	VsMean     float64 `json:"vsMean"`
}

// Percentile returns the percentile rank of target within peers,
// in [0, 100]
func Percentile(target float64, peers []float64) float64 {
	if len(peers) == 0 {
		return 0
	}

	count := 0
	for _, v := range peers {
		if v <= target {
			count++
		}
	}
	return float64(count) / float64(len(peers)) * 100
}

// ZScore returns the number of peer standard deviations separating
// target from the peer mean. A zero-variance peer set yields 0 by
// convention rather than failing.
func ZScore(target float64, peers []float64) float64 {
	if len(peers) == 0 {
		return 0
	}

	mean, std := stat.MeanStdDev(peers, nil)
	if std == 0 {
		return 0
	}
	return (target - mean) / std
}

// QuartileFor buckets a percentile into {1, 2, 3, 4} at the 25/50/75
// boundaries
func QuartileFor(percentile float64) int {
	switch {
	case percentile <= 25:
		return 1
	case percentile <= 50:
		return 2
	case percentile <= 75:
		return 3
	default:
		return 4
	}
}

// ValidateCustomPeerSet checks a user-assembled peer set size
func ValidateCustomPeerSet(n int) error {
	if n < MinPeers || n > MaxCustomPeers {
		return ErrPeerSetSize
	}
	return nil
}

// Compare locates target within peers for a single dimension
func Compare(dimension string, target float64, peers []float64) (*Result, error) {
	if len(peers) < MinPeers {
		return nil, ErrInsufficientPeers
	}

	sorted := make([]float64, len(peers))
	copy(sorted, peers)
	sort.Float64s(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	median := stat.Quantile(0.5, stat.Empirical, sorted, nil)
	percentile := Percentile(target, sorted)

	zScore := 0.0
	if std > 0 {
		zScore = (target - mean) / std
	}

	return &Result{
		Dimension:  dimension,
		Target:     target,
		PeerMean:   mean,
		PeerMedian: median,
		PeerStdDev: std,
		Percentile: percentile,
		ZScore:     zScore,
		Quartile:   QuartileFor(percentile),
		VsMean:     target - mean,
	}, nil
}

// CompareAll produces one Result per requested dimension. The targets
// and peers maps must carry a value series for every dimension name.
func CompareAll(dimensions []string, targets map[string]float64, peers map[string][]float64) ([]*Result, error) {
	results := make([]*Result, 0, len(dimensions))

	for _, dim := range dimensions {
		target, ok := targets[dim]
		if !ok {
			return nil, ErrUnknownDimension
		}
		peerVals, ok := peers[dim]
		if !ok {
			return nil, ErrUnknownDimension
		}

		res, err := Compare(dim, target, peerVals)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}

	return results, nil
}
