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

	"github.com/greenledger/esg-api/data"
	"github.com/greenledger/esg-api/esg"
	"github.com/greenledger/esg-api/simulate"
)

var simulateCmdFractions simulate.Fractions
var simulateCmdTarget float64

func init() {
	simulateCmd.Flags().Float64Var(&simulateCmdFractions.Environmental, "environmental", 0, "Environmental improvement fraction (0 - 0.5)")
	simulateCmd.Flags().Float64Var(&simulateCmdFractions.Social, "social", 0, "Social improvement fraction (0 - 0.5)")
	simulateCmd.Flags().Float64Var(&simulateCmdFractions.Governance, "governance", 0, "Governance improvement fraction (0 - 0.5)")
	simulateCmd.Flags().Float64Var(&simulateCmdTarget, "target", 0, "Instead of simulating, recommend per-pillar increases needed to reach this composite score")
	rootCmd.AddCommand(simulateCmd)
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [companyID]",
	Args:  cobra.ExactArgs(1),
	Short: "Project a company's scores under an improvement scenario",
	Run: func(cmd *cobra.Command, args []string) {
		m := loadManager(context.Background())
		weights := esg.DefaultWeights()

		r, err := m.Latest(args[0])
		if err != nil {
			log.Fatal().Err(err).Str("CompanyID", args[0]).Msg("unknown company")
		}
		current := esg.PillarScoresFor(r)

		if cmd.Flags().Changed("target") {
			rec, err := simulate.Recommend(current, weights, simulateCmdTarget)
			if err != nil {
				log.Fatal().Err(err).Float64("Target", simulateCmdTarget).Msg("recommendation failed")
			}
			printJSON(rec)
			return
		}

		scenario := &simulate.Scenario{
			CompanyID:    args[0],
			Improvements: simulateCmdFractions,
		}
		traj, err := simulate.Run(current, scenario, weights)
		if err != nil {
			log.Fatal().Err(err).Msg("simulation failed")
		}

		out := map[string]interface{}{"trajectory": traj}
		if peers, err := m.SectorPeers(r.Sector, r.ID); err == nil {
			if composites, err := data.DimensionValues(peers, data.DimComposite, weights); err == nil {
				if impact, err := simulate.Impact(traj, composites); err == nil {
					out["impact"] = impact
				}
			}
		}
		printJSON(out)
	},
}
