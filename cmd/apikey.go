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
	"encoding/base64"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/greenledger/esg-api/common"
)

func init() {
	rootCmd.AddCommand(apikeyCmd)
}

var apikeyCmd = &cobra.Command{
	Use:   "apikey [subject]",
	Args:  cobra.ExactArgs(1),
	Short: "Create an encrypted API key for the given subject",
	Long:  `Create an API key that can be passed in the apikey query param or X-Esg-Api header in place of a JWT. Requires the same secret_key the server runs with.`,
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()

		payload, err := json.Marshal(map[string]string{"sub": args[0]})
		if err != nil {
			log.Fatal().Err(err).Msg("could not serialize token")
		}

		encrypted, err := common.Encrypt(payload)
		if err != nil {
			log.Fatal().Err(err).Msg("could not encrypt token")
		}

		fmt.Fprintln(os.Stdout, base64.URLEncoding.EncodeToString(encrypted))
	},
}
