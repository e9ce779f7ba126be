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

package data

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/greenledger/esg-api/data/database"
	"github.com/greenledger/esg-api/esg"
)

// LoadFromDatabase reads every company-year row from the metrics
// table. The dataset is small enough to hold in memory; the manager
// indexes it once at startup.
func LoadFromDatabase(ctx context.Context) ([]*esg.CompanyRecord, error) {
	pool := database.Pool()
	if pool == nil {
		return nil, ErrNotInitialized
	}

	sql := `SELECT company_id, name, sector, country, year, market_cap,
		carbon_emissions, energy_intensity, water_usage, waste_recycling_rate,
		employee_turnover, diversity_score, safety_incidents, community_investment,
		board_independence, executive_pay_ratio, controversy_score
	FROM esg_company_metrics ORDER BY company_id, year`

	rows, err := pool.Query(ctx, sql)
	if err != nil {
		log.Error().Stack().Err(err).Str("Query", sql).Msg("could not load company metrics")
		return nil, err
	}
	defer rows.Close()

	records := make([]*esg.CompanyRecord, 0, 256)
	for rows.Next() {
		r := &esg.CompanyRecord{}
		err := rows.Scan(&r.ID, &r.Name, &r.Sector, &r.Country, &r.Year, &r.MarketCap,
			&r.CarbonEmissions, &r.EnergyIntensity, &r.WaterUsage, &r.WasteRecyclingRate,
			&r.EmployeeTurnover, &r.DiversityScore, &r.SafetyIncidents, &r.CommunityInvestment,
			&r.BoardIndependence, &r.ExecutivePayRatio, &r.ControversyScore)
		if err != nil {
			log.Warn().Stack().Err(err).Msg("company metrics scan failed")
			continue
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		log.Error().Stack().Err(err).Msg("company metrics query read failed")
		return nil, err
	}

	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	log.Info().Int("NumRecords", len(records)).Msg("loaded company metrics from database")
	return records, nil
}

// LoadRecords loads the dataset from the configured source. When
// database.url is unset a deterministic synthetic dataset is used so
// the service works out of the box.
func LoadRecords(ctx context.Context) ([]*esg.CompanyRecord, error) {
	if viper.GetString("database.url") != "" {
		if err := database.Connect(ctx); err != nil {
			return nil, err
		}
		return LoadFromDatabase(ctx)
	}

	log.Info().Msg("database.url not set; using synthetic dataset")
	opts := DefaultSyntheticOptions()
	if n := viper.GetInt("data.synthetic.num_companies"); n > 0 {
		opts.NumCompanies = n
	}
	if s := viper.GetInt64("data.synthetic.seed"); s != 0 {
		opts.Seed = s
	}
	return GenerateSynthetic(opts), nil
}
