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
	"bytes"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rocketlaunchr/dataframe-go/exports"
	"github.com/rs/zerolog/log"

	"github.com/greenledger/esg-api/data"
	"github.com/greenledger/esg-api/esg"
)

// ListCompanies returns the latest record of every company, optionally
// narrowed by sector or country query params
func ListCompanies(c *fiber.Ctx) error {
	m, err := data.GetManager()
	if err != nil {
		return fiber.ErrServiceUnavailable
	}

	spec := data.FilterSpec{}
	if sector := c.Query("sector"); sector != "" {
		spec.Sectors = []string{sector}
	}
	if country := c.Query("country"); country != "" {
		spec.Countries = []string{country}
	}

	if len(spec.Sectors) == 0 && len(spec.Countries) == 0 {
		return c.JSON(m.LatestRecords())
	}

	records := m.Filter(spec)
	latest := make(map[string]*esg.CompanyRecord, len(records))
	for _, r := range records {
		if prev, ok := latest[r.ID]; !ok || r.Year > prev.Year {
			latest[r.ID] = r
		}
	}
	out := make([]*esg.CompanyRecord, 0, len(latest))
	for _, r := range latest {
		out = append(out, r)
	}
	return c.JSON(out)
}

// GetCompany returns a company's latest record
func GetCompany(c *fiber.Ctx) error {
	m, err := data.GetManager()
	if err != nil {
		return fiber.ErrServiceUnavailable
	}

	r, err := m.Latest(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}
	return c.JSON(r)
}

// GetCompanyHistory returns all of a company's records ordered by year
func GetCompanyHistory(c *fiber.Ctx) error {
	m, err := data.GetManager()
	if err != nil {
		return fiber.ErrServiceUnavailable
	}

	history, err := m.History(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}
	return c.JSON(history)
}

// GetCompanyTrend returns the year-over-year score series. Set
// format=csv for a tabular export suitable for chart renderers; the
// default is JSON.
func GetCompanyTrend(c *fiber.Ctx) error {
	m, err := data.GetManager()
	if err != nil {
		return fiber.ErrServiceUnavailable
	}

	switch c.Query("format", "json") {
	case "json":
		trend, err := m.Trend(c.Params("id"), esg.DefaultWeights())
		if err != nil {
			return fiber.ErrNotFound
		}
		return c.JSON(trend)
	case "csv":
		df, err := m.TrendFrame(c.Params("id"), esg.DefaultWeights())
		if err != nil {
			return fiber.ErrNotFound
		}
		buf := &bytes.Buffer{}
		if err := exports.ExportToCSV(c.Context(), buf, df); err != nil {
			log.Error().Stack().Err(err).Str("CompanyID", c.Params("id")).Msg("csv export failed")
			return fiber.ErrInternalServerError
		}
		c.Set(fiber.HeaderContentType, "text/csv")
		return c.Send(buf.Bytes())
	default:
		return fiber.ErrNotAcceptable
	}
}

// ListSectors returns all sector names
func ListSectors(c *fiber.Ctx) error {
	m, err := data.GetManager()
	if err != nil {
		return fiber.ErrServiceUnavailable
	}
	return c.JSON(m.Sectors())
}

// GetSectorStatistics returns a sector's average pillar scores
func GetSectorStatistics(c *fiber.Ctx) error {
	m, err := data.GetManager()
	if err != nil {
		return fiber.ErrServiceUnavailable
	}

	stats, err := m.SectorStatistics(c.Params("sector"), esg.DefaultWeights())
	if err != nil {
		if errors.Is(err, data.ErrUnknownSector) {
			return fiber.ErrNotFound
		}
		log.Error().Stack().Err(err).Str("Sector", c.Params("sector")).Msg("could not compute sector statistics")
		return fiber.ErrInternalServerError
	}
	return c.JSON(stats)
}

// GetSummary returns dataset-wide summary statistics
func GetSummary(c *fiber.Ctx) error {
	m, err := data.GetManager()
	if err != nil {
		return fiber.ErrServiceUnavailable
	}
	return c.JSON(m.Summary(esg.DefaultWeights()))
}

func rankingParams(c *fiber.Ctx) (int, string, error) {
	n, err := strconv.Atoi(c.Query("n", "5"))
	if err != nil || n < 1 {
		return 0, "", fiber.ErrBadRequest
	}
	dimension := c.Query("dimension", data.DimComposite)
	if !data.ValidDimension(dimension) {
		return 0, "", fiber.ErrNotAcceptable
	}
	return n, dimension, nil
}

// GetTopPerformers ranks the n best companies on a dimension
func GetTopPerformers(c *fiber.Ctx) error {
	m, err := data.GetManager()
	if err != nil {
		return fiber.ErrServiceUnavailable
	}

	n, dimension, err := rankingParams(c)
	if err != nil {
		return err
	}

	ranked, err := m.TopPerformers(n, dimension, esg.DefaultWeights())
	if err != nil {
		return fiber.ErrNotAcceptable
	}
	return c.JSON(ranked)
}

// GetBottomPerformers ranks the n worst companies on a dimension
func GetBottomPerformers(c *fiber.Ctx) error {
	m, err := data.GetManager()
	if err != nil {
		return fiber.ErrServiceUnavailable
	}

	n, dimension, err := rankingParams(c)
	if err != nil {
		return err
	}

	ranked, err := m.BottomPerformers(n, dimension, esg.DefaultWeights())
	if err != nil {
		return fiber.ErrNotAcceptable
	}
	return c.JSON(ranked)
}
