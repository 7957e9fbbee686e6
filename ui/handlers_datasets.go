package ui

import (
	"html/template"
	"log"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"

	"pbihub/adapters/excel"
	"pbihub/domain/sales"
	"pbihub/domain/session"
	"pbihub/internal/analysis"
	"pbihub/internal/dataset"
	"pbihub/internal/errors"
)

const maxUploadBytes = 10 << 20

type lookupResult struct {
	Month   string
	Person  string
	Revenue float64
	Found   bool
}

type datasetsPage struct {
	Dataset    dataset.Info
	Criteria   analysis.Criteria
	Months     []string
	People     []string
	Regions    []string
	Rows       []sales.Record
	Summary    analysis.Summary
	PivotBy    string
	Pivot      []analysis.PivotCell
	Lookup     *lookupResult
	Sequence   []analysis.SequenceRow
	SeqN       int
	Dimensions []string
	Query      template.URL
}

// handleDatasets is the Datasets tab: a filterable view of the active dataset
// with the pivot, lookup and dynamic-array demos beside it.
func (a *App) handleDatasets(w http.ResponseWriter, r *http.Request) {
	s := a.visit(r, current(r), session.TabDatasets)
	records, info := a.deps.Data.Snapshot()
	q := r.URL.Query()

	criteria := analysis.Criteria{Month: q.Get("month"), Person: q.Get("person")}
	if regions, ok := q["region"]; ok {
		criteria.Regions = regions
	}
	rows := analysis.Filter(records, criteria)

	summary, err := analysis.Summarize(rows)
	if err != nil {
		a.renderError(w, s, err)
		return
	}

	pivotBy := q.Get("by")
	if pivotBy == "" {
		pivotBy = "region"
	}
	dim, err := analysis.ParseDimension(pivotBy)
	if err != nil {
		a.renderError(w, s, err)
		return
	}

	seqN := 5
	if raw := q.Get("n"); raw != "" {
		if seqN, err = strconv.Atoi(raw); err != nil {
			a.renderError(w, s, errors.InvalidInputf("n %q is not an integer", raw))
			return
		}
	}
	sequence, err := analysis.Sequence(seqN)
	if err != nil {
		a.renderError(w, s, err)
		return
	}

	page := datasetsPage{
		Dataset:    info,
		Criteria:   criteria,
		Months:     analysis.UniqueMonths(records),
		People:     analysis.UniquePeople(records),
		Regions:    analysis.UniqueRegions(records),
		Rows:       rows,
		Summary:    summary,
		PivotBy:    pivotBy,
		Pivot:      analysis.Pivot(rows, dim),
		Sequence:   sequence,
		SeqN:       seqN,
		Dimensions: []string{"month", "person", "region"},
		Query:      filterQuery(criteria),
	}
	if month, person := q.Get("lookup_month"), q.Get("lookup_person"); month != "" && person != "" {
		revenue, found := analysis.Lookup(records, month, person)
		page.Lookup = &lookupResult{Month: month, Person: person, Revenue: revenue, Found: found}
	}
	a.renderTemplate(w, http.StatusOK, "datasets.html", a.newPage(s, "Datasets", page))
}

// filterQuery encodes criteria for the download links.
func filterQuery(c analysis.Criteria) template.URL {
	v := url.Values{}
	if c.Month != "" {
		v.Set("month", c.Month)
	}
	if c.Person != "" {
		v.Set("person", c.Person)
	}
	for _, r := range c.Regions {
		v.Add("region", r)
	}
	return template.URL(v.Encode())
}

// handleDatasetUpload replaces the active dataset with an uploaded file.
func (a *App) handleDatasetUpload(w http.ResponseWriter, r *http.Request) {
	s := current(r)
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		a.renderError(w, s, errors.InvalidInput("choose an .xlsx, .csv or .json file to upload"))
		return
	}
	defer file.Close()

	name := filepath.Base(header.Filename)
	records, err := excel.NewDataReader(name).Read(file)
	if err != nil {
		a.renderError(w, s, err)
		return
	}
	info := a.deps.Data.Replace(records, name, 0)
	log.Printf("[UI] %s replaced the dataset with %s (%d rows)", s.Username, name, info.Rows)
	http.Redirect(w, r, "/datasets", http.StatusSeeOther)
}

// handleDatasetRegenerate swaps back to a generated dataset for the posted seed.
func (a *App) handleDatasetRegenerate(w http.ResponseWriter, r *http.Request) {
	s := current(r)
	if err := r.ParseForm(); err != nil {
		a.renderError(w, s, errors.WithCode(errors.CodeInvalidInput, err))
		return
	}
	seed, err := strconv.ParseInt(r.PostForm.Get("seed"), 10, 64)
	if err != nil {
		a.renderError(w, s, errors.InvalidInputf("seed %q is not an integer", r.PostForm.Get("seed")))
		return
	}
	records, err := sales.Generate(seed, sales.DefaultParams())
	if err != nil {
		a.renderError(w, s, err)
		return
	}
	a.deps.Data.Replace(records, "generated", seed)
	http.Redirect(w, r, "/datasets", http.StatusSeeOther)
}
