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
	"os"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/greenledger/esg-api/common"
	"github.com/greenledger/esg-api/data"
)

var generateCmdOpts = data.DefaultSyntheticOptions()
var generateCmdOutput string

func init() {
	generateCmd.Flags().IntVar(&generateCmdOpts.NumCompanies, "companies", generateCmdOpts.NumCompanies, "Number of companies to generate")
	generateCmd.Flags().IntVar(&generateCmdOpts.NumYears, "years", generateCmdOpts.NumYears, "Number of years of history per company")
	generateCmd.Flags().IntVar(&generateCmdOpts.FirstYear, "first-year", generateCmdOpts.FirstYear, "First reporting year")
	generateCmd.Flags().Int64Var(&generateCmdOpts.Seed, "seed", generateCmdOpts.Seed, "Random seed; the same seed always yields the same dataset")
	generateCmd.Flags().StringVarP(&generateCmdOutput, "output", "o", "esg-dataset.json", "Output file")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic ESG dataset",
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()

		records := data.GenerateSynthetic(generateCmdOpts)
		out, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			log.Fatal().Err(err).Msg("could not serialize dataset")
		}

		if err := os.WriteFile(generateCmdOutput, out, 0644); err != nil {
			log.Fatal().Err(err).Str("Output", generateCmdOutput).Msg("could not write dataset")
		}
		log.Info().Str("Output", generateCmdOutput).Int("NumRecords", len(records)).Msg("wrote synthetic dataset")
	},
}
