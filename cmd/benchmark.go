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

package cmd

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/greenledger/esg-api/benchmark"
	"github.com/greenledger/esg-api/data"
	"github.com/greenledger/esg-api/esg"
)

var benchmarkCmdPeers []string
var benchmarkCmdDimensions []string

func init() {
	benchmarkCmd.Flags().StringSliceVar(&benchmarkCmdPeers, "peers", nil, "Compare against an explicit peer set instead of the company's sector (2-5 company IDs)")
	benchmarkCmd.Flags().StringSliceVar(&benchmarkCmdDimensions, "dimensions", nil, "Dimensions to benchmark (default: composite and the three pillars)")
	rootCmd.AddCommand(benchmarkCmd)
}

var benchmarkCmd = &cobra.Command{
	Use:   "benchmark [companyID]",
	Args:  cobra.ExactArgs(1),
	Short: "Benchmark a company against its peers",
	Run: func(cmd *cobra.Command, args []string) {
		m := loadManager(context.Background())
		weights := esg.DefaultWeights()

		target, err := m.Latest(args[0])
		if err != nil {
			log.Fatal().Err(err).Str("CompanyID", args[0]).Msg("unknown company")
		}

		var peers []*esg.CompanyRecord
		if len(benchmarkCmdPeers) > 0 {
			if err := benchmark.ValidateCustomPeerSet(len(benchmarkCmdPeers)); err != nil {
				log.Fatal().Err(err).Int("NumPeers", len(benchmarkCmdPeers)).Msg("invalid custom peer set")
			}
			peers, err = m.PeersByID(benchmarkCmdPeers)
			if err != nil {
				log.Fatal().Err(err).Msg("could not resolve custom peer set")
			}
		} else {
			peers, err = m.SectorPeers(target.Sector, target.ID)
			if err != nil {
				log.Fatal().Err(err).Str("Sector", target.Sector).Msg("could not resolve sector peers")
			}
		}

		dimensions := benchmarkCmdDimensions
		if len(dimensions) == 0 {
			dimensions = data.DefaultDimensions
		}

		targets := make(map[string]float64, len(dimensions))
		peerVals := make(map[string][]float64, len(dimensions))
		for _, dim := range dimensions {
			tv, err := data.DimensionValue(target, dim, weights)
			if err != nil {
				log.Fatal().Err(err).Str("Dimension", dim).Msg("unknown dimension")
			}
			vals, err := data.DimensionValues(peers, dim, weights)
			if err != nil {
				log.Fatal().Err(err).Str("Dimension", dim).Msg("unknown dimension")
			}
			targets[dim] = tv
			peerVals[dim] = vals
		}

		results, err := benchmark.CompareAll(dimensions, targets, peerVals)
		if err != nil {
			log.Fatal().Err(err).Msg("benchmark failed")
		}

		printJSON(map[string]interface{}{
			"companyId": target.ID,
			"numPeers":  len(peers),
			"results":   results,
			"insights":  benchmark.BuildInsights(results),
		})
	},
}
