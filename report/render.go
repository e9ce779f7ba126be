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
	"strings"
	"text/template"

	json "github.com/goccy/go-json"
)

var markdownTmpl = template.Must(template.New("report").Parse(`# ESG Report: {{ .Profile.Name }}

Generated {{ .GeneratedAt.Format "2006-01-02 15:04 MST" }} | Report {{ .ID }}

## Profile

| Field | Value |
| --- | --- |
| Sector | {{ .Profile.Sector }} |
| Country | {{ .Profile.Country }} |
| Reporting Year | {{ .Profile.Year }} |
| Market Cap | ${{ printf "%.1f" .Profile.MarketCap }}B |

## Scores

| Dimension | Score |
| --- | --- |
| Composite | {{ printf "%.1f" .ScoreCard.Composite }} ({{ .ScoreCard.Rating }}) |
| Environmental | {{ printf "%.1f" .ScoreCard.Pillars.Environmental }} |
| Social | {{ printf "%.1f" .ScoreCard.Pillars.Social }} |
| Governance | {{ printf "%.1f" .ScoreCard.Pillars.Governance }} |
{{ if .Benchmark }}
## Peer Benchmark ({{ .Profile.Sector }})

| Dimension | Company | Peer Mean | Percentile | Quartile |
| --- | --- | --- | --- | --- |
{{ range .Benchmark }}| {{ .Dimension }} | {{ printf "%.1f" .Target }} | {{ printf "%.1f" .PeerMean }} | {{ printf "%.0f" .Percentile }} | Q{{ .Quartile }} |
{{ end }}{{ end }}{{ if .Insights }}{{ if .Insights.Strengths }}
### Strengths
{{ range .Insights.Strengths }}
- {{ . }}{{ end }}
{{ end }}{{ if .Insights.Weaknesses }}
### Weaknesses
{{ range .Insights.Weaknesses }}
- {{ . }}{{ end }}
{{ end }}{{ if .Insights.Recommendations }}
### Recommendations
{{ range .Insights.Recommendations }}
- {{ . }}{{ end }}
{{ end }}{{ end }}{{ if .Risks }}
## Risk Assessment

| Category | Severity | Description |
| --- | --- | --- |
{{ range .Risks }}| {{ .Category }} | {{ .Severity }} | {{ .Description }} |
{{ end }}{{ end }}{{ if .Improve }}
## Improvement Areas
{{ range .Improve }}
- **{{ .Area }}** (gap {{ printf "%.1f" .Gap }}): {{ .Recommendation }}{{ end }}
{{ end }}{{ if .Trend }}
## Score History

| Year | Composite | Change |
| --- | --- | --- |
{{ range .Trend }}| {{ .Year }} | {{ printf "%.1f" .Composite }} | {{ printf "%+.1f" .CompositeChange }} |
{{ end }}{{ end }}`))

// RenderMarkdown formats the report as a markdown document
func (r *CompanyReport) RenderMarkdown() (string, error) {
	sb := &strings.Builder{}
	if err := markdownTmpl.Execute(sb, r); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderJSON serializes the report
func (r *CompanyReport) RenderJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
