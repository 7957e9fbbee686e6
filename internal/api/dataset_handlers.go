package api

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"pbihub/adapters/excel"
	"pbihub/domain/hr"
	"pbihub/domain/sales"
	"pbihub/internal/analysis"
	"pbihub/internal/errors"

	"github.com/gin-gonic/gin"
)

// GenerateRequest is the body of POST /api/datasets/generate. Omitted fields
// take the default sample parameters; fields sent empty are rejected.
type GenerateRequest struct {
	Seed     *int64            `json:"seed,omitempty"`
	Months   []string          `json:"months,omitempty"`
	People   []string          `json:"people,omitempty"`
	Regions  []string          `json:"regions,omitempty"`
	Prices   []float64         `json:"prices,omitempty"`
	Units    *sales.UnitsRange `json:"units,omitempty"`
	Activate bool              `json:"activate"`
}

// Params merges the request over the default parameters.
func (r GenerateRequest) Params() sales.Params {
	p := sales.DefaultParams()
	if r.Months != nil {
		p.Months = r.Months
	}
	if r.People != nil {
		p.People = r.People
	}
	if r.Regions != nil {
		p.Regions = r.Regions
	}
	if r.Prices != nil {
		p.Prices = r.Prices
	}
	if r.Units != nil {
		p.Units = *r.Units
	}
	return p
}

// handleGenerate builds a dataset from the request and, when asked, makes it
// the active one.
func (h *Handler) handleGenerate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	seed := h.deps.Seed()
	if req.Seed != nil {
		seed = *req.Seed
	}

	records, err := sales.Generate(seed, req.Params())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"seed": seed, "rows": len(records), "records": records}
	if req.Activate {
		info := h.deps.Data.Replace(records, "generated", seed)
		log.Printf("[DatasetAPI] activated generated dataset seed=%d (%d rows, v%d)", seed, info.Rows, info.Version)
		resp["dataset"] = info
	}
	c.JSON(http.StatusOK, resp)
}

// handleUpload replaces the active dataset with an uploaded xlsx, csv or json file.
func (h *Handler) handleUpload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	header, err := c.FormFile("file")
	if err != nil {
		respondError(c, errors.InvalidInput("multipart field \"file\" is required"))
		return
	}
	f, err := header.Open()
	if err != nil {
		respondError(c, errors.Wrap(err, "failed to open upload"))
		return
	}
	defer f.Close()

	name := filepath.Base(header.Filename)
	records, err := excel.NewDataReader(name).Read(f)
	if err != nil {
		respondError(c, err)
		return
	}
	info := h.deps.Data.Replace(records, name, 0)
	log.Printf("[DatasetAPI] replaced dataset from %s (%d rows, v%d)", name, info.Rows, info.Version)
	c.JSON(http.StatusOK, gin.H{"dataset": info})
}

func criteriaFrom(c *gin.Context) analysis.Criteria {
	criteria := analysis.Criteria{
		Month:  c.Query("month"),
		Person: c.Query("person"),
	}
	if regions, ok := c.GetQueryArray("region"); ok {
		criteria.Regions = regions
	}
	return criteria
}

// handleSales returns the active dataset, optionally filtered, as json, csv or xlsx.
func (h *Handler) handleSales(c *gin.Context) {
	records := analysis.Filter(h.deps.Data.Records(), criteriaFrom(c))

	switch format := c.DefaultQuery("format", "json"); format {
	case "json":
		_, info := h.deps.Data.Snapshot()
		c.JSON(http.StatusOK, gin.H{"dataset": info, "records": records})
	case "csv":
		var buf bytes.Buffer
		if err := excel.WriteCSV(&buf, records); err != nil {
			respondError(c, err)
			return
		}
		attachment(c, "sales.csv", excel.CSVContentType, buf.Bytes())
	case "xlsx":
		var buf bytes.Buffer
		if err := excel.WriteXLSX(&buf, excel.Workbook{Sales: records}); err != nil {
			respondError(c, err)
			return
		}
		attachment(c, "sales.xlsx", excel.XLSXContentType, buf.Bytes())
	default:
		respondError(c, errors.InvalidInputf("unknown format %q, want json, csv or xlsx", format))
	}
}

func attachment(c *gin.Context, name, contentType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, contentType, data)
}

func (h *Handler) handleSummary(c *gin.Context) {
	summary, err := analysis.Summarize(analysis.Filter(h.deps.Data.Records(), criteriaFrom(c)))
	if err != nil {
		respondError(c, errors.Wrap(err, "failed to summarize dataset"))
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) handlePivot(c *gin.Context) {
	by := c.DefaultQuery("by", "region")
	dim, err := analysis.ParseDimension(by)
	if err != nil {
		respondError(c, err)
		return
	}
	records := analysis.Filter(h.deps.Data.Records(), criteriaFrom(c))
	c.JSON(http.StatusOK, gin.H{"by": by, "cells": analysis.Pivot(records, dim)})
}

// handleLookup sums revenue for one month and person.
func (h *Handler) handleLookup(c *gin.Context) {
	month, person := c.Query("month"), c.Query("person")
	if month == "" || person == "" {
		respondError(c, errors.InvalidInput("month and person are required"))
		return
	}
	revenue, found := analysis.Lookup(h.deps.Data.Records(), month, person)
	c.JSON(http.StatusOK, gin.H{"month": month, "person": person, "revenue": revenue, "found": found})
}

func (h *Handler) handleSequence(c *gin.Context) {
	n, err := strconv.Atoi(c.DefaultQuery("n", "10"))
	if err != nil {
		respondError(c, errors.InvalidInputf("n %q is not an integer", c.Query("n")))
		return
	}
	rows, err := analysis.Sequence(n)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

// handleEmployees generates the HR sample table.
func (h *Handler) handleEmployees(c *gin.Context) {
	n, err := strconv.Atoi(c.DefaultQuery("n", strconv.Itoa(hr.DefaultCount)))
	if err != nil {
		respondError(c, errors.InvalidInputf("n %q is not an integer", c.Query("n")))
		return
	}
	rng, seed, err := h.rng(c)
	if err != nil {
		respondError(c, err)
		return
	}
	employees, err := hr.Generate(rng, n)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seed": seed, "employees": employees})
}

func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
