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

func fixtureRecord(id, sector, country string, year int, carbon float64) *esg.CompanyRecord {
	return &esg.CompanyRecord{
		ID:      id,
		Name:    "The " + id + " Company",
		Sector:  sector,
		Country: country,
		Year:    year,

		CarbonEmissions:    carbon,
		EnergyIntensity:    250,
		WaterUsage:         500,
		WasteRecyclingRate: 50,

		EmployeeTurnover:    20,
		DiversityScore:      50,
		SafetyIncidents:     25,
		CommunityInvestment: 5,

		BoardIndependence: 50,
		ExecutivePayRatio: 200,
		ControversyScore:  50,
	}
}

func fixtureDataset() []*esg.CompanyRecord {
	return []*esg.CompanyRecord{
		// alpha's records arrive out of year order on purpose
		fixtureRecord("alpha", "Technology", "USA", 2023, 30),
		fixtureRecord("alpha", "Technology", "USA", 2021, 60),
		fixtureRecord("alpha", "Technology", "USA", 2022, 45),

		fixtureRecord("beta", "Technology", "Germany", 2022, 80),
		fixtureRecord("beta", "Technology", "Germany", 2023, 75),

		fixtureRecord("gamma", "Technology", "Japan", 2023, 50),

		fixtureRecord("delta", "Energy", "USA", 2023, 120),
		fixtureRecord("epsilon", "Energy", "UK", 2023, 100),
	}
}

var _ = Describe("When indexing a dataset", func() {
	var m *data.Manager

	BeforeEach(func() {
		var err error
		m, err = data.NewManager(fixtureDataset())
		Expect(err).To(BeNil())
	})

	It("rejects an empty dataset", func() {
		_, err := data.NewManager(nil)
		Expect(err).To(MatchError(data.ErrEmptyDataset))
	})

	It("lists companies, sectors, countries, and years in sorted order", func() {
		Expect(m.Companies()).To(Equal([]string{"alpha", "beta", "delta", "epsilon", "gamma"}))
		Expect(m.Sectors()).To(Equal([]string{"Energy", "Technology"}))
		Expect(m.Countries()).To(Equal([]string{"Germany", "Japan", "UK", "USA"}))
		Expect(m.Years()).To(Equal([]int{2021, 2022, 2023}))
	})

	It("computes a stable fingerprint", func() {
		m2, err := data.NewManager(fixtureDataset())
		Expect(err).To(BeNil())
		Expect(m.Fingerprint()).To(Equal(m2.Fingerprint()))
		Expect(m.Fingerprint()).ShouldNot(BeEmpty())
	})

	Context("looking up companies", func() {
		It("returns the most recent record", func() {
			r, err := m.Latest("alpha")
			Expect(err).To(BeNil())
			Expect(r.Year).To(Equal(2023))
			Expect(r.CarbonEmissions).Should(BeNumerically("~", 30, 1e-9))
		})

		It("orders history by year even when loaded out of order", func() {
			history, err := m.History("alpha")
			Expect(err).To(BeNil())
			Expect(history).To(HaveLen(3))
			Expect(history[0].Year).To(Equal(2021))
			Expect(history[1].Year).To(Equal(2022))
			Expect(history[2].Year).To(Equal(2023))
		})

		It("fails for unknown companies", func() {
			_, err := m.Latest("zeta")
			Expect(err).To(MatchError(data.ErrNotFound))

			_, err = m.History("zeta")
			Expect(err).To(MatchError(data.ErrNotFound))
		})
	})

	Context("resolving peer groups", func() {
		It("returns sector peers excluding the named company", func() {
			peers, err := m.SectorPeers("Technology", "alpha")
			Expect(err).To(BeNil())
			Expect(peers).To(HaveLen(2))
			for _, peer := range peers {
				Expect(peer.ID).ShouldNot(Equal("alpha"))
			}
		})

		It("includes every company when excludeID is blank", func() {
			peers, err := m.SectorPeers("Technology", "")
			Expect(err).To(BeNil())
			Expect(peers).To(HaveLen(3))
		})

		It("fails for unknown sectors", func() {
			_, err := m.SectorPeers("Aerospace", "")
			Expect(err).To(MatchError(data.ErrUnknownSector))
		})

		It("resolves explicit peer lists and rejects unknown members", func() {
			peers, err := m.PeersByID([]string{"beta", "gamma"})
			Expect(err).To(BeNil())
			Expect(peers).To(HaveLen(2))

			_, err = m.PeersByID([]string{"beta", "zeta"})
			Expect(err).To(MatchError(data.ErrNotFound))
		})
	})

	Context("filtering", func() {
		It("matches every populated criterion", func() {
			records := m.Filter(data.FilterSpec{
				Sectors: []string{"Technology"},
				Years:   []int{2023},
			})
			Expect(records).To(HaveLen(3))
			for _, r := range records {
				Expect(r.Sector).To(Equal("Technology"))
				Expect(r.Year).To(Equal(2023))
			}
		})

		It("returns everything for an empty spec", func() {
			Expect(m.Filter(data.FilterSpec{})).To(HaveLen(8))
		})
	})

	It("returns one latest record per company", func() {
		latest := m.LatestRecords()
		Expect(latest).To(HaveLen(5))
		seen := make(map[string]bool)
		for _, r := range latest {
			Expect(seen[r.ID]).To(BeFalse())
			seen[r.ID] = true
		}
	})
})

var _ = Describe("When generating a synthetic dataset", func() {
	It("is deterministic for a fixed seed", func() {
		opts := data.SyntheticOptions{NumCompanies: 5, FirstYear: 2020, NumYears: 3, Seed: 7}
		a := data.GenerateSynthetic(opts)
		b := data.GenerateSynthetic(opts)

		Expect(a).To(HaveLen(15))
		for ii := range a {
			Expect(a[ii].ID).To(Equal(b[ii].ID))
			Expect(a[ii].CarbonEmissions).To(Equal(b[ii].CarbonEmissions))
		}
	})

	It("produces records within the reference ranges", func() {
		records := data.GenerateSynthetic(data.DefaultSyntheticOptions())
		for _, r := range records {
			Expect(r.CarbonEmissions).Should(BeNumerically(">=", 0))
			Expect(r.CarbonEmissions).Should(BeNumerically("<=", 150))
			Expect(r.DiversityScore).Should(BeNumerically("<=", 100))
			Expect(r.WasteRecyclingRate).Should(BeNumerically("<=", 100))
		}
	})
})
