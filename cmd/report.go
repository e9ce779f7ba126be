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

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/greenledger/esg-api/esg"
	"github.com/greenledger/esg-api/report"
)

var reportCmdFormat string
var reportCmdOutput string

func init() {
	reportCmd.Flags().StringVar(&reportCmdFormat, "format", "markdown", "Output format: markdown or json")
	reportCmd.Flags().StringVarP(&reportCmdOutput, "output", "o", "", "Write report to file instead of stdout")
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report [companyID]",
	Args:  cobra.ExactArgs(1),
	Short: "Generate a full analysis report for a company",
	Run: func(cmd *cobra.Command, args []string) {
		m := loadManager(context.Background())

		rpt, err := report.Build(m, args[0], esg.DefaultWeights())
		if err != nil {
			log.Fatal().Err(err).Str("CompanyID", args[0]).Msg("report assembly failed")
		}

		var body []byte
		switch reportCmdFormat {
		case "markdown":
			md, err := rpt.RenderMarkdown()
			if err != nil {
				log.Fatal().Err(err).Msg("markdown render failed")
			}
			body = []byte(md)
		case "json":
			body, err = rpt.RenderJSON()
			if err != nil {
				log.Fatal().Err(err).Msg("json render failed")
			}
		default:
			log.Fatal().Str("Format", reportCmdFormat).Msg("unknown report format")
		}

		if reportCmdOutput != "" {
			if err := os.WriteFile(reportCmdOutput, body, 0644); err != nil {
				log.Fatal().Err(err).Str("Output", reportCmdOutput).Msg("could not write report")
			}
			return
		}
		fmt.Fprintln(os.Stdout, string(body))
	},
}
