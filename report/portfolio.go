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

package report

import (
	"sort"
	"strings"
	"text/template"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/greenledger/esg-api/data"
	"github.com/greenledger/esg-api/esg"
)

// DefaultPortfolioTitle is used when the caller supplies none
const DefaultPortfolioTitle = "ESG Portfolio Report"

// PortfolioEntry is one company row in a portfolio comparison
type PortfolioEntry struct {
	CompanyID string         `json:"companyId"`
	Name      string         `json:"name"`
	Sector    string         `json:"sector"`
	ScoreCard *esg.ScoreCard `json:"scoreCard"`
}

// PortfolioReport compares a set of companies side by side, ordered by
// composite score
type PortfolioReport struct {
	ID           string    `json:"id"`
	GeneratedAt  time.Time `json:"generatedAt"`
	Fingerprint  string    `json:"datasetFingerprint"`
	Title        string    `json:"title"`
	NumCompanies int       `json:"numCompanies"`
	AvgComposite float64   `json:"avgComposite"`

	Entries []PortfolioEntry `json:"entries"`
}

// BuildPortfolio assembles a comparison report over the latest records
// of the named companies. An empty ID list covers the whole dataset.
// Entries are ordered best composite first.
func BuildPortfolio(m *data.Manager, companyIDs []string, title string, weights esg.Weights) (*PortfolioReport, error) {
	var records []*esg.CompanyRecord
	var err error
	if len(companyIDs) == 0 {
		records = m.LatestRecords()
	} else {
		records, err = m.PeersByID(companyIDs)
		if err != nil {
			return nil, err
		}
	}

	if title == "" {
		title = DefaultPortfolioTitle
	}

	entries := make([]PortfolioEntry, 0, len(records))
	composites := make([]float64, 0, len(records))
	for _, r := range records {
		card := esg.ScoreCardFor(r, weights)
		composites = append(composites, card.Composite)
		entries = append(entries, PortfolioEntry{
			CompanyID: r.ID,
			Name:      r.Name,
			Sector:    r.Sector,
			ScoreCard: card,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ScoreCard.Composite > entries[j].ScoreCard.Composite
	})

	return &PortfolioReport{
		ID:           uuid.New().String(),
		GeneratedAt:  time.Now().UTC(),
		Fingerprint:  m.Fingerprint(),
		Title:        title,
		NumCompanies: len(entries),
		AvgComposite: stat.Mean(composites, nil),
		Entries:      entries,
	}, nil
}

var portfolioTmpl = template.Must(template.New("portfolio").Parse(`# {{ .Title }}

Generated {{ .GeneratedAt.Format "2006-01-02 15:04 MST" }} | Report {{ .ID }}

{{ .NumCompanies }} companies | Average composite {{ printf "%.1f" .AvgComposite }}

## Portfolio Summary

| Company | Sector | Composite | E | S | G | Rating |
| --- | --- | --- | --- | --- | --- | --- |
{{ range .Entries }}| {{ .Name }} | {{ .Sector }} | {{ printf "%.1f" .ScoreCard.Composite }} | {{ printf "%.1f" .ScoreCard.Pillars.Environmental }} | {{ printf "%.1f" .ScoreCard.Pillars.Social }} | {{ printf "%.1f" .ScoreCard.Pillars.Governance }} | {{ .ScoreCard.Rating }} |
{{ end }}`))

// RenderMarkdown formats the portfolio report as a markdown document
func (r *PortfolioReport) RenderMarkdown() (string, error) {
	sb := &strings.Builder{}
	if err := portfolioTmpl.Execute(sb, r); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderJSON serializes the portfolio report
func (r *PortfolioReport) RenderJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
