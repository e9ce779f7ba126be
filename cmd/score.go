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
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/greenledger/esg-api/common"
	"github.com/greenledger/esg-api/data"
	"github.com/greenledger/esg-api/esg"
)

func init() {
	rootCmd.AddCommand(scoreCmd)
}

// loadManager initializes the dataset for one-shot CLI commands
func loadManager(ctx context.Context) *data.Manager {
	common.SetupLogging()

	records, err := data.LoadRecords(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load dataset")
	}
	if err := data.InitializeManager(records); err != nil {
		log.Fatal().Err(err).Msg("could not index dataset")
	}
	m, err := data.GetManager()
	if err != nil {
		log.Fatal().Err(err).Msg("data manager not initialized")
	}
	return m
}

func printJSON(v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("could not serialize output")
	}
	fmt.Fprintln(os.Stdout, string(out))
}

var scoreCmd = &cobra.Command{
	Use:   "score [companyID]",
	Args:  cobra.ExactArgs(1),
	Short: "Compute the scorecard for a company's latest year",
	Run: func(cmd *cobra.Command, args []string) {
		m := loadManager(context.Background())

		r, err := m.Latest(args[0])
		if err != nil {
			log.Fatal().Err(err).Str("CompanyID", args[0]).Msg("unknown company")
		}

		printJSON(esg.ScoreCardFor(r, esg.DefaultWeights()))
	},
}
