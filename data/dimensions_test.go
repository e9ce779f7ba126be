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

package data_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/greenledger/esg-api/data"
	"github.com/greenledger/esg-api/esg"
)

var _ = Describe("When extracting dimension values", func() {
	record := fixtureRecord("alpha", "Technology", "USA", 2023, 30)

	It("recognizes derived and raw dimensions", func() {
		Expect(data.ValidDimension(data.DimComposite)).To(BeTrue())
		Expect(data.ValidDimension(data.DimEnvironmental)).To(BeTrue())
		Expect(data.ValidDimension(data.DimCarbonEmissions)).To(BeTrue())
		Expect(data.ValidDimension("sharpe_ratio")).To(BeFalse())
	})

	It("reads raw metrics straight off the record", func() {
		v, err := data.DimensionValue(record, data.DimCarbonEmissions, esg.EqualWeights)
		Expect(err).To(BeNil())
		Expect(v).Should(BeNumerically("~", 30, 1e-9))
	})

	It("derives pillar dimensions through the scoring rules", func() {
		v, err := data.DimensionValue(record, data.DimComposite, esg.EqualWeights)
		Expect(err).To(BeNil())
		Expect(esg.Composite(esg.PillarScoresFor(record), esg.EqualWeights)).Should(BeNumerically("~", v, 1e-9))
	})

	It("fails for unknown dimensions", func() {
		_, err := data.DimensionValue(record, "momentum", esg.EqualWeights)
		Expect(err).To(MatchError(data.ErrUnknownMetric))
	})

	It("extracts a value series across records", func() {
		records := []*esg.CompanyRecord{
			fixtureRecord("a", "Technology", "USA", 2023, 10),
			fixtureRecord("b", "Technology", "USA", 2023, 20),
			fixtureRecord("c", "Technology", "USA", 2023, 30),
		}
		vals, err := data.DimensionValues(records, data.DimCarbonEmissions, esg.EqualWeights)
		Expect(err).To(BeNil())
		Expect(vals).To(Equal([]float64{10, 20, 30}))
	})
})

var _ = Describe("When computing dataset statistics", func() {
	var m *data.Manager

	BeforeEach(func() {
		var err error
		m, err = data.NewManager(fixtureDataset())
		Expect(err).To(BeNil())
	})

	It("summarizes the latest record of every company", func() {
		summary := m.Summary(esg.EqualWeights)
		Expect(summary.TotalCompanies).To(Equal(5))
		Expect(summary.TotalSectors).To(Equal(2))
		Expect(summary.TotalCountries).To(Equal(4))
		Expect(summary.FirstYear).To(Equal(2021))
		Expect(summary.LastYear).To(Equal(2023))
		Expect(summary.TopPerformer).To(Equal("alpha")) // lowest carbon emissions
	})

	It("ranks top and bottom performers consistently", func() {
		top, err := m.TopPerformers(2, data.DimComposite, esg.EqualWeights)
		Expect(err).To(BeNil())
		Expect(top).To(HaveLen(2))
		Expect(top[0].CompanyID).To(Equal("alpha"))

		bottom, err := m.BottomPerformers(2, data.DimComposite, esg.EqualWeights)
		Expect(err).To(BeNil())
		Expect(bottom).To(HaveLen(2))
		Expect(bottom[0].Value).Should(BeNumerically("<=", bottom[1].Value))
		Expect(bottom[0].CompanyID).To(Equal("delta")) // highest carbon emissions
	})

	It("clamps n to the dataset size", func() {
		top, err := m.TopPerformers(50, data.DimComposite, esg.EqualWeights)
		Expect(err).To(BeNil())
		Expect(top).To(HaveLen(5))
	})

	It("caches sector statistics until refreshed", func() {
		stats, err := m.SectorStatistics("Technology", esg.EqualWeights)
		Expect(err).To(BeNil())
		Expect(stats.NumCompanies).To(Equal(3))

		cached, err := m.SectorStatistics("Technology", esg.EqualWeights)
		Expect(err).To(BeNil())
		Expect(cached).To(BeIdenticalTo(stats))

		m.RefreshSectorStatistics(esg.EqualWeights)
		refreshed, err := m.SectorStatistics("Technology", esg.EqualWeights)
		Expect(err).To(BeNil())
		Expect(refreshed).ShouldNot(BeIdenticalTo(stats))
		Expect(refreshed.AvgComposite).Should(BeNumerically("~", stats.AvgComposite, 1e-9))
	})

	It("fails sector statistics for unknown sectors", func() {
		_, err := m.SectorStatistics("Aerospace", esg.EqualWeights)
		Expect(err).To(MatchError(data.ErrUnknownSector))
	})
})

var _ = Describe("When exporting trends", func() {
	var m *data.Manager

	BeforeEach(func() {
		var err error
		m, err = data.NewManager(fixtureDataset())
		Expect(err).To(BeNil())
	})

	It("produces one point per year with year-over-year changes", func() {
		trend, err := m.Trend("alpha", esg.EqualWeights)
		Expect(err).To(BeNil())
		Expect(trend).To(HaveLen(3))

		Expect(trend[0].Year).To(Equal(2021))
		Expect(trend[0].CompositeChange).Should(BeNumerically("~", 0, 1e-9))

		// alpha's carbon emissions fall every year so its composite rises
		Expect(trend[1].CompositeChange).Should(BeNumerically(">", 0))
		Expect(trend[2].CompositeChange).Should(BeNumerically(">", 0))
	})

	It("builds a frame with one row per year", func() {
		df, err := m.TrendFrame("alpha", esg.EqualWeights)
		Expect(err).To(BeNil())

		Expect(df.NRows()).To(Equal(3))
		Expect(df.Series).To(HaveLen(5))
	})

	It("fails for unknown companies", func() {
		_, err := m.Trend("zeta", esg.EqualWeights)
		Expect(err).To(MatchError(data.ErrNotFound))
	})
})
