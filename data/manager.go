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
	"fmt"
	"sort"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog/log"
	"github.com/zeebo/blake3"

	"github.com/greenledger/esg-api/esg"
)

const sectorStatsCacheSize = 128

// Manager is an immutable view over the loaded company-year dataset.
// All lookup structures are built once at construction; after that the
// manager is safe for concurrent use without locking. Only the sector
// statistics LRU is mutable and it handles its own synchronization.
type Manager struct {
	records     []*esg.CompanyRecord
	byCompany   map[string][]*esg.CompanyRecord // sorted by year ascending
	latest      map[string]*esg.CompanyRecord
	sectors     map[string][]string // sector -> company IDs
	fingerprint string

	sectorStats *lru.Cache
}

var (
	managerOnce     sync.Once
	managerInstance *Manager
	managerErr      error
)

// NewManager indexes a dataset. Records with the same company ID are
// grouped and ordered by year.
func NewManager(records []*esg.CompanyRecord) (*Manager, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	cache, err := lru.New(sectorStatsCacheSize)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		records:     records,
		byCompany:   make(map[string][]*esg.CompanyRecord),
		latest:      make(map[string]*esg.CompanyRecord),
		sectors:     make(map[string][]string),
		sectorStats: cache,
	}

	hasher := blake3.New()
	for _, r := range records {
		m.byCompany[r.ID] = append(m.byCompany[r.ID], r)
		fmt.Fprintf(hasher, "%s|%d|%.4f|%.4f|%.4f", r.ID, r.Year, r.CarbonEmissions, r.DiversityScore, r.BoardIndependence)
	}
	m.fingerprint = fmt.Sprintf("%x", hasher.Sum(nil))

	for id, history := range m.byCompany {
		sort.Slice(history, func(i, j int) bool { return history[i].Year < history[j].Year })
		last := history[len(history)-1]
		m.latest[id] = last
		m.sectors[last.Sector] = append(m.sectors[last.Sector], id)
	}

	for _, ids := range m.sectors {
		sort.Strings(ids)
	}

	log.Info().
		Int("NumRecords", len(records)).
		Int("NumCompanies", len(m.byCompany)).
		Int("NumSectors", len(m.sectors)).
		Str("Fingerprint", m.fingerprint[:16]).
		Msg("indexed dataset")

	return m, nil
}

// InitializeManager sets the process-wide dataset manager
func InitializeManager(records []*esg.CompanyRecord) error {
	managerOnce.Do(func() {
		managerInstance, managerErr = NewManager(records)
	})
	return managerErr
}

// GetManager returns the process-wide dataset manager
func GetManager() (*Manager, error) {
	if managerInstance == nil {
		return nil, ErrNotInitialized
	}
	return managerInstance, nil
}

// Fingerprint is a blake3 digest over the dataset contents, usable as
// an ETag for cached responses
func (m *Manager) Fingerprint() string {
	return m.fingerprint
}

// Companies returns all company IDs in sorted order
func (m *Manager) Companies() []string {
	ids := make([]string, 0, len(m.byCompany))
	for id := range m.byCompany {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Sectors returns all sector names in sorted order
func (m *Manager) Sectors() []string {
	sectors := make([]string, 0, len(m.sectors))
	for s := range m.sectors {
		sectors = append(sectors, s)
	}
	sort.Strings(sectors)
	return sectors
}

// Countries returns the distinct countries in the dataset
func (m *Manager) Countries() []string {
	seen := make(map[string]bool)
	for _, r := range m.latest {
		seen[r.Country] = true
	}
	countries := make([]string, 0, len(seen))
	for c := range seen {
		countries = append(countries, c)
	}
	sort.Strings(countries)
	return countries
}

// Years returns the distinct years covered by the dataset, ascending
func (m *Manager) Years() []int {
	seen := make(map[int]bool)
	for _, r := range m.records {
		seen[r.Year] = true
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Latest returns the most recent record for a company
func (m *Manager) Latest(companyID string) (*esg.CompanyRecord, error) {
	r, ok := m.latest[companyID]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}

// History returns all records for a company ordered by year
func (m *Manager) History(companyID string) ([]*esg.CompanyRecord, error) {
	history, ok := m.byCompany[companyID]
	if !ok {
		return nil, ErrNotFound
	}
	return history, nil
}

// SectorPeers returns the latest record of every company in the
// sector. When excludeID is non-empty that company is omitted, for
// callers using the exclusive peer convention.
func (m *Manager) SectorPeers(sector string, excludeID string) ([]*esg.CompanyRecord, error) {
	ids, ok := m.sectors[sector]
	if !ok {
		return nil, ErrUnknownSector
	}

	peers := make([]*esg.CompanyRecord, 0, len(ids))
	for _, id := range ids {
		if id == excludeID {
			continue
		}
		peers = append(peers, m.latest[id])
	}
	return peers, nil
}

// PeersByID resolves an explicit list of company IDs to their latest
// records. Unknown IDs fail with ErrNotFound.
func (m *Manager) PeersByID(ids []string) ([]*esg.CompanyRecord, error) {
	peers := make([]*esg.CompanyRecord, 0, len(ids))
	for _, id := range ids {
		r, ok := m.latest[id]
		if !ok {
			log.Warn().Str("CompanyID", id).Msg("unknown company in custom peer set")
			return nil, ErrNotFound
		}
		peers = append(peers, r)
	}
	return peers, nil
}

// FilterSpec narrows the dataset; empty slices match everything
type FilterSpec struct {
	Companies []string
	Sectors   []string
	Countries []string
	Years     []int
}

// Filter returns the records matching every populated criterion
func (m *Manager) Filter(spec FilterSpec) []*esg.CompanyRecord {
	companies := toSet(spec.Companies)
	sectors := toSet(spec.Sectors)
	countries := toSet(spec.Countries)
	years := make(map[int]bool, len(spec.Years))
	for _, y := range spec.Years {
		years[y] = true
	}

	matched := make([]*esg.CompanyRecord, 0, len(m.records))
	for _, r := range m.records {
		if len(companies) > 0 && !companies[r.ID] {
			continue
		}
		if len(sectors) > 0 && !sectors[r.Sector] {
			continue
		}
		if len(countries) > 0 && !countries[r.Country] {
			continue
		}
		if len(years) > 0 && !years[r.Year] {
			continue
		}
		matched = append(matched, r)
	}
	return matched
}

func toSet(vals []string) map[string]bool {
	set := make(map[string]bool, len(vals))
	for _, v := range vals {
		set[v] = true
	}
	return set
}

// LatestRecords returns the most recent record for every company
func (m *Manager) LatestRecords() []*esg.CompanyRecord {
	records := make([]*esg.CompanyRecord, 0, len(m.latest))
	for _, id := range m.Companies() {
		records = append(records, m.latest[id])
	}
	return records
}
