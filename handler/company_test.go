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

package handler_test

import (
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/gofiber/fiber/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/greenledger/esg-api/handler"
)

var _ = Describe("When requesting a company trend", func() {
	var app *fiber.App

	BeforeEach(func() {
		app = fiber.New()
		app.Get("/v1/companies/:id/trend", handler.GetCompanyTrend)
	})

	It("returns the score series as JSON by default", func() {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/companies/alpha/trend", nil))
		Expect(err).To(BeNil())
		Expect(resp.StatusCode).To(Equal(fiber.StatusOK))
		Expect(resp.Header.Get(fiber.HeaderContentType)).To(ContainSubstring(fiber.MIMEApplicationJSON))

		body, err := io.ReadAll(resp.Body)
		Expect(err).To(BeNil())
		Expect(string(body)).To(ContainSubstring(`"compositeChange"`))
	})

	It("exports a tabular frame when format=csv", func() {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/companies/alpha/trend?format=csv", nil))
		Expect(err).To(BeNil())
		Expect(resp.StatusCode).To(Equal(fiber.StatusOK))
		Expect(resp.Header.Get(fiber.HeaderContentType)).To(Equal("text/csv"))

		body, err := io.ReadAll(resp.Body)
		Expect(err).To(BeNil())
		csv := string(body)
		Expect(csv).To(ContainSubstring("YEAR"))
		Expect(csv).To(ContainSubstring("COMPOSITE"))
		Expect(csv).To(ContainSubstring("ENVIRONMENTAL"))
		Expect(csv).To(ContainSubstring("2021"))
		Expect(csv).To(ContainSubstring("2023"))
	})

	It("fails csv export for unknown companies", func() {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/companies/zeta/trend?format=csv", nil))
		Expect(err).To(BeNil())
		Expect(resp.StatusCode).To(Equal(fiber.StatusNotFound))
	})

	It("rejects unknown formats", func() {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/companies/alpha/trend?format=parquet", nil))
		Expect(err).To(BeNil())
		Expect(resp.StatusCode).To(Equal(fiber.StatusNotAcceptable))
	})
})
