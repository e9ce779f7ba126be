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

import (
	_ "embed"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

//go:embed weights.toml
var weightsToml []byte

// Weights describes the contribution of each pillar to the composite
// score. Zero or negative weights are rejected at load time.
type Weights struct {
	Environmental float64 `toml:"environmental" json:"environmental"`
	Social        float64 `toml:"social" json:"social"`
	Governance    float64 `toml:"governance" json:"governance"`
}

// Sum returns the total weight across all pillars
func (w Weights) Sum() float64 {
	return w.Environmental + w.Social + w.Governance
}

// Get returns the weight assigned to the named pillar
func (w Weights) Get(pillar Pillar) float64 {
	switch pillar {
	case PillarEnvironmental:
		return w.Environmental
	case PillarSocial:
		return w.Social
	case PillarGovernance:
		return w.Governance
	}
	return 0
}

type weightsFile struct {
	Composite     Weights            `toml:"composite"`
	Environmental map[string]float64 `toml:"environmental"`
	Social        map[string]float64 `toml:"social"`
	Governance    map[string]float64 `toml:"governance"`
}

var loadedWeights *weightsFile

func weightsConfig() *weightsFile {
	if loadedWeights != nil {
		return loadedWeights
	}

	w := &weightsFile{}
	if err := toml.Unmarshal(weightsToml, w); err != nil {
		log.Panic().Err(err).Msg("could not parse embedded weights.toml")
	}
	loadedWeights = w
	return loadedWeights
}

// EqualWeights is the default composite weighting
var EqualWeights = Weights{Environmental: 1, Social: 1, Governance: 1}

// DefaultWeights returns the composite pillar weights. The embedded
// weights.toml provides the baseline; the scoring.weights.* viper keys
// override it when set.
func DefaultWeights() Weights {
	w := weightsConfig().Composite

	if viper.IsSet("scoring.weights.environmental") {
		w.Environmental = viper.GetFloat64("scoring.weights.environmental")
	}
	if viper.IsSet("scoring.weights.social") {
		w.Social = viper.GetFloat64("scoring.weights.social")
	}
	if viper.IsSet("scoring.weights.governance") {
		w.Governance = viper.GetFloat64("scoring.weights.governance")
	}

	if w.Sum() <= 0 {
		log.Warn().Float64("Sum", w.Sum()).Msg("configured pillar weights sum to zero; falling back to equal weights")
		return EqualWeights
	}

	return w
}
