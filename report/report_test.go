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

package report_test

import (
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/greenledger/esg-api/data"
	"github.com/greenledger/esg-api/esg"
	"github.com/greenledger/esg-api/report"
)

func reportFixtureRecord(id, sector string, year int, carbon float64) *esg.CompanyRecord {
	return &esg.CompanyRecord{
		ID:      id,
		Name:    "The " + id + " Company",
		Sector:  sector,
		Country: "USA",
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

func reportFixtureManager() *data.Manager {
	m, err := data.NewManager([]*esg.CompanyRecord{
		reportFixtureRecord("alpha", "Technology", 2022, 45),
		reportFixtureRecord("alpha", "Technology", 2023, 30),
		reportFixtureRecord("beta", "Technology", 2023, 75),
		reportFixtureRecord("gamma", "Technology", 2023, 50),

		// a two-company sector yields only one peer, below the minimum
		reportFixtureRecord("delta", "Energy", 2023, 120),
		reportFixtureRecord("epsilon", "Energy", 2023, 100),
	})
	Expect(err).To(BeNil())
	return m
}

var _ = Describe("When assembling a company report", func() {
	var m *data.Manager

	BeforeEach(func() {
		m = reportFixtureManager()
	})

	It("fails for unknown companies", func() {
		_, err := report.Build(m, "zeta", esg.EqualWeights)
		Expect(err).To(MatchError(data.ErrNotFound))
	})

	Context("for a company with enough sector peers", func() {
		var rpt *report.CompanyReport

		BeforeEach(func() {
			var err error
			rpt, err = report.Build(m, "alpha", esg.EqualWeights)
			Expect(err).To(BeNil())
		})

		It("assigns a report ID and the dataset fingerprint", func() {
			_, err := uuid.Parse(rpt.ID)
			Expect(err).To(BeNil())
			Expect(rpt.Fingerprint).To(Equal(m.Fingerprint()))
		})

		It("fills the profile from the latest record", func() {
			Expect(rpt.Profile.CompanyID).To(Equal("alpha"))
			Expect(rpt.Profile.Name).To(Equal("The alpha Company"))
			Expect(rpt.Profile.Sector).To(Equal("Technology"))
			Expect(rpt.Profile.Year).To(Equal(2023))
		})

		It("includes the scorecard and multi-year trend", func() {
			Expect(rpt.ScoreCard).ShouldNot(BeNil())
			Expect(rpt.ScoreCard.Year).To(Equal(2023))
			Expect(rpt.Trend).To(HaveLen(2))
		})

		It("benchmarks the default dimensions against sector peers", func() {
			Expect(rpt.Benchmark).To(HaveLen(len(data.DefaultDimensions)))
			Expect(rpt.Insights).ShouldNot(BeNil())
			Expect(rpt.Sector.NumCompanies).To(Equal(3))
		})

		It("flags threshold risks from the latest metrics", func() {
			categories := make(map[string]bool)
			for _, risk := range rpt.Risks {
				categories[risk.Category] = true
				Expect(risk.Severity).To(Equal(report.SeverityMedium))
			}
			// governance pillar 50, board independence 50, controversy
			// 50, and 25 safety incidents all trip medium thresholds
			Expect(categories[report.CategoryGovernance]).To(BeTrue())
			Expect(categories[report.CategoryReputation]).To(BeTrue())
			Expect(categories[report.CategorySocial]).To(BeTrue())
		})
	})

	Context("for a company without enough sector peers", func() {
		It("omits the benchmark sections but still builds", func() {
			rpt, err := report.Build(m, "delta", esg.EqualWeights)
			Expect(err).To(BeNil())
			Expect(rpt.Benchmark).To(BeNil())
			Expect(rpt.Insights).To(BeNil())
			Expect(rpt.ScoreCard).ShouldNot(BeNil())
		})
	})
})

var _ = Describe("When rendering a report", func() {
	var rpt *report.CompanyReport

	BeforeEach(func() {
		var err error
		rpt, err = report.Build(reportFixtureManager(), "alpha", esg.EqualWeights)
		Expect(err).To(BeNil())
	})

	It("renders a markdown document with the major sections", func() {
		md, err := rpt.RenderMarkdown()
		Expect(err).To(BeNil())
		Expect(md).To(ContainSubstring("# ESG Report: The alpha Company"))
		Expect(md).To(ContainSubstring("## Scores"))
		Expect(md).To(ContainSubstring("## Peer Benchmark (Technology)"))
		Expect(md).To(ContainSubstring("## Risk Assessment"))
		Expect(md).To(ContainSubstring("## Score History"))
	})

	It("round-trips through JSON", func() {
		body, err := rpt.RenderJSON()
		Expect(err).To(BeNil())

		var decoded report.CompanyReport
		Expect(json.Unmarshal(body, &decoded)).To(Succeed())
		Expect(decoded.ID).To(Equal(rpt.ID))
		Expect(decoded.Profile).To(Equal(rpt.Profile))
		Expect(decoded.Risks).To(HaveLen(len(rpt.Risks)))
	})
})

var _ = Describe("When assembling a portfolio report", func() {
	var m *data.Manager

	BeforeEach(func() {
		m = reportFixtureManager()
	})

	It("covers the whole dataset by default, best composite first", func() {
		rpt, err := report.BuildPortfolio(m, nil, "", esg.EqualWeights)
		Expect(err).To(BeNil())

		Expect(rpt.Title).To(Equal(report.DefaultPortfolioTitle))
		Expect(rpt.NumCompanies).To(Equal(5))
		Expect(rpt.Entries).To(HaveLen(5))
		Expect(rpt.Fingerprint).To(Equal(m.Fingerprint()))

		// lower carbon emissions mean a higher composite
		Expect(rpt.Entries[0].CompanyID).To(Equal("alpha"))
		Expect(rpt.Entries[4].CompanyID).To(Equal("delta"))
		for ii := 1; ii < len(rpt.Entries); ii++ {
			Expect(rpt.Entries[ii].ScoreCard.Composite).Should(
				BeNumerically("<=", rpt.Entries[ii-1].ScoreCard.Composite))
		}
	})

	It("averages the composite over the selected companies", func() {
		rpt, err := report.BuildPortfolio(m, nil, "", esg.EqualWeights)
		Expect(err).To(BeNil())

		sum := 0.0
		for _, entry := range rpt.Entries {
			sum += entry.ScoreCard.Composite
		}
		Expect(rpt.AvgComposite).Should(BeNumerically("~", sum/5, 1e-9))
	})

	It("restricts to the requested companies", func() {
		rpt, err := report.BuildPortfolio(m, []string{"beta", "gamma"}, "Tech Watchlist", esg.EqualWeights)
		Expect(err).To(BeNil())

		Expect(rpt.Title).To(Equal("Tech Watchlist"))
		Expect(rpt.Entries).To(HaveLen(2))
		Expect(rpt.Entries[0].CompanyID).To(Equal("gamma"))
		Expect(rpt.Entries[1].CompanyID).To(Equal("beta"))
	})

	It("fails for unknown companies", func() {
		_, err := report.BuildPortfolio(m, []string{"beta", "zeta"}, "", esg.EqualWeights)
		Expect(err).To(MatchError(data.ErrNotFound))
	})

	It("renders a markdown comparison table", func() {
		rpt, err := report.BuildPortfolio(m, nil, "", esg.EqualWeights)
		Expect(err).To(BeNil())

		md, err := rpt.RenderMarkdown()
		Expect(err).To(BeNil())
		Expect(md).To(ContainSubstring("# ESG Portfolio Report"))
		Expect(md).To(ContainSubstring("| Company | Sector | Composite | E | S | G | Rating |"))
		Expect(md).To(ContainSubstring("The alpha Company"))
		Expect(md).To(ContainSubstring("The delta Company"))
	})

	It("round-trips through JSON", func() {
		rpt, err := report.BuildPortfolio(m, nil, "", esg.EqualWeights)
		Expect(err).To(BeNil())

		body, err := rpt.RenderJSON()
		Expect(err).To(BeNil())

		var decoded report.PortfolioReport
		Expect(json.Unmarshal(body, &decoded)).To(Succeed())
		Expect(decoded.ID).To(Equal(rpt.ID))
		Expect(decoded.Entries).To(HaveLen(5))
	})
})

var _ = Describe("When identifying risks directly", func() {
	It("escalates severity below the high thresholds", func() {
		r := reportFixtureRecord("omega", "Energy", 2023, 120)
		pillars := esg.PillarScores{Environmental: 35, Social: 38, Governance: 45}

		risks := report.IdentifyRisks(r, pillars)

		bySeverity := make(map[string]int)
		for _, risk := range risks {
			bySeverity[risk.Severity]++
		}
		// env score 35, social 38, governance 45, and 120 MT carbon are
		// all past the high thresholds
		Expect(bySeverity[report.SeverityHigh]).Should(BeNumerically(">=", 4))
	})

	It("reports nothing for a clean record", func() {
		r := &esg.CompanyRecord{
			CarbonEmissions:   20,
			SafetyIncidents:   5,
			BoardIndependence: 85,
			ControversyScore:  90,
		}
		pillars := esg.PillarScores{Environmental: 75, Social: 80, Governance: 82}
		Expect(report.IdentifyRisks(r, pillars)).To(BeEmpty())
	})
})

var _ = Describe("When computing improvement areas", func() {
	It("lists pillars trailing the sector average with the gap", func() {
		pillars := esg.PillarScores{Environmental: 40, Social: 70, Governance: 55}
		sectorAvg := esg.PillarScores{Environmental: 55, Social: 60, Governance: 60}

		areas := report.ImprovementAreas(pillars, sectorAvg)
		Expect(areas).To(HaveLen(2))
		Expect(areas[0].Area).To(Equal("Environmental"))
		Expect(areas[0].Gap).Should(BeNumerically("~", 15, 1e-9))
		Expect(areas[1].Area).To(Equal("Governance"))
		Expect(areas[1].Gap).Should(BeNumerically("~", 5, 1e-9))
	})

	It("is empty when every pillar meets the sector average", func() {
		pillars := esg.PillarScores{Environmental: 60, Social: 60, Governance: 60}
		Expect(report.ImprovementAreas(pillars, pillars)).To(BeEmpty())
	})
})
