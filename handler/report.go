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
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/greenledger/esg-api/common"
	"github.com/greenledger/esg-api/data"
	"github.com/greenledger/esg-api/esg"
	"github.com/greenledger/esg-api/report"
)

// GetReport assembles (or fetches from cache) the full analysis
// payload for a company. Set format=markdown for a rendered document;
// the default is JSON. Cache keys include the dataset fingerprint so a
// reload invalidates every cached report.
func GetReport(c *fiber.Ctx) error {
	m, err := data.GetManager()
	if err != nil {
		return fiber.ErrServiceUnavailable
	}

	companyID := c.Params("id")
	format := c.Query("format", "json")

	contentType := fiber.MIMEApplicationJSON
	if format == "markdown" {
		contentType = "text/markdown"
	} else if format != "json" {
		return fiber.ErrNotAcceptable
	}

	cacheKey := fmt.Sprintf("report:%s:%s:%s", m.Fingerprint(), companyID, format)
	if cached, err := common.CacheGet(cacheKey); err == nil {
		c.Set(fiber.HeaderContentType, contentType)
		return c.Send(cached)
	}

	rpt, err := report.Build(m, companyID, esg.DefaultWeights())
	if err != nil {
		if err == data.ErrNotFound {
			return fiber.ErrNotFound
		}
		log.Error().Stack().Err(err).Str("CompanyID", companyID).Msg("report assembly failed")
		return fiber.ErrInternalServerError
	}

	var body []byte
	if format == "markdown" {
		md, err := rpt.RenderMarkdown()
		if err != nil {
			log.Error().Stack().Err(err).Str("CompanyID", companyID).Msg("markdown render failed")
			return fiber.ErrInternalServerError
		}
		body = []byte(md)
	} else {
		body, err = rpt.RenderJSON()
		if err != nil {
			log.Error().Stack().Err(err).Str("CompanyID", companyID).Msg("json render failed")
			return fiber.ErrInternalServerError
		}
	}

	if err := common.CacheSet(cacheKey, body); err != nil {
		log.Warn().Err(err).Str("CompanyID", companyID).Msg("caching failed for report")
	}

	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(body)
}

type portfolioRequest struct {
	Companies []string `json:"companies"`
	Title     string   `json:"title"`
}

// GetPortfolioReport assembles a multi-company comparison payload. An
// empty company list covers the whole dataset. Set format=markdown for
// a rendered document; the default is JSON.
func GetPortfolioReport(c *fiber.Ctx) error {
	m, err := data.GetManager()
	if err != nil {
		return fiber.ErrServiceUnavailable
	}

	var req portfolioRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}

	format := c.Query("format", "json")
	contentType := fiber.MIMEApplicationJSON
	if format == "markdown" {
		contentType = "text/markdown"
	} else if format != "json" {
		return fiber.ErrNotAcceptable
	}

	rpt, err := report.BuildPortfolio(m, req.Companies, req.Title, esg.DefaultWeights())
	if err != nil {
		if err == data.ErrNotFound {
			return fiber.ErrNotFound
		}
		log.Error().Stack().Err(err).Msg("portfolio report assembly failed")
		return fiber.ErrInternalServerError
	}

	var body []byte
	if format == "markdown" {
		md, err := rpt.RenderMarkdown()
		if err != nil {
			log.Error().Stack().Err(err).Msg("markdown render failed")
			return fiber.ErrInternalServerError
		}
		body = []byte(md)
	} else {
		body, err = rpt.RenderJSON()
		if err != nil {
			log.Error().Stack().Err(err).Msg("json render failed")
			return fiber.ErrInternalServerError
		}
	}

	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(body)
}
