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

// RatingBand is the discrete letter-grade category for a composite
// score
type RatingBand string

const (
	RatingLeader     RatingBand = "AAA/AA"
	RatingAverage    RatingBand = "A/BBB"
	RatingLaggard    RatingBand = "BB/B"
	RatingPoor       RatingBand = "CCC"
	RatingCritical   RatingBand = "CC/C"
	ratingBandCount             = 5
)

type ratingThreshold struct {
	floor float64
	band  RatingBand
}

// ratingTable maps composite score floors to rating bands. Ordered
// highest floor first; lookup takes the first floor <= score.
var ratingTable = [ratingBandCount]ratingThreshold{
	{80, RatingLeader},
	{60, RatingAverage},
	{40, RatingLaggard},
	{20, RatingPoor},
	{0, RatingCritical},
}

// RatingFor converts a composite score to its rating band. The band is
// a pure, non-decreasing step function of the score.
func RatingFor(score float64) RatingBand {
	score = Clamp(score, 0, 100)
	for _, t := range ratingTable {
		if score >= t.floor {
			return t.band
		}
	}
	return RatingCritical
}

// Ordinal returns the band's position on the rating ladder, 0 for
// CC/C up to 4 for AAA/AA. Used to detect upgrades and downgrades.
func (b RatingBand) Ordinal() int {
	for ii, t := range ratingTable {
		if t.band == b {
			return ratingBandCount - 1 - ii
		}
	}
	return -1
}
