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

package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/greenledger/esg-api/data"
	"github.com/greenledger/esg-api/esg"
)

// GetScoreCard computes the scorecard for a company's latest year
func GetScoreCard(c *fiber.Ctx) error {
	m, err := data.GetManager()
	if err != nil {
		return fiber.ErrServiceUnavailable
	}

	r, err := m.Latest(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	return c.JSON(esg.ScoreCardFor(r, esg.DefaultWeights()))
}

// scoreRequest carries raw metrics for ad-hoc scoring of a company
// that isn't in the dataset
type scoreRequest struct {
	Record esg.CompanyRecord `json:"record"`
}

// ScoreAdHoc scores a caller-supplied record without persisting it
func ScoreAdHoc(c *fiber.Ctx) error {
	var req scoreRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}

	return c.JSON(esg.ScoreCardFor(&req.Record, esg.DefaultWeights()))
}
