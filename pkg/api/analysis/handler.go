// Package analysis exposes the analyzer over HTTP: one endpoint returns the
// computed figures as JSON and two return downloadable reports.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	coreAnalysis "financial_health/pkg/core/analysis"
	"financial_health/pkg/core/ingest"
	"financial_health/pkg/core/llm"
	"financial_health/pkg/core/report"
	"financial_health/pkg/core/store"
	"financial_health/pkg/core/valuation"
	"financial_health/pkg/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Multipart field names.
const (
	FieldCompanyA    = "company_a"
	FieldCompanyB    = "company_b"
	FieldPE          = "pe"
	FieldSharesLakhs = "shares_lakhs"
	FieldGrowthPct   = "growth_pct"
	FieldDiscountPct = "discount_pct"
	FieldTerminalPct = "terminal_pct"
	FieldMarketPrice = "market_price"
)

// ReportIDHeader carries the id of a generated artifact.
const ReportIDHeader = "X-Report-ID"

const narrativeTimeout = 30 * time.Second

// Options configures a Handler.
type Options struct {
	Bounds      valuation.Bounds
	Defaults    valuation.Params
	MaxUploadMB int64
	Narrator    llm.Provider      // optional
	Archive     *store.ReportRepo // optional
	Log         zerolog.Logger
}

// Handler serves the analysis endpoints.
type Handler struct {
	engine    *coreAnalysis.Engine
	bounds    valuation.Bounds
	defaults  valuation.Params
	maxUpload int64
	narrator  llm.Provider
	archive   *store.ReportRepo
	log       zerolog.Logger
}

// NewHandler creates a new analysis handler.
func NewHandler(opts Options) *Handler {
	maxMB := opts.MaxUploadMB
	if maxMB <= 0 {
		maxMB = 10
	}
	return &Handler{
		engine:    coreAnalysis.NewEngine(),
		bounds:    opts.Bounds,
		defaults:  opts.Defaults,
		maxUpload: maxMB << 20,
		narrator:  opts.Narrator,
		archive:   opts.Archive,
		log:       opts.Log.With().Str("handler", "analysis").Logger(),
	}
}

// Routes registers the endpoints under r.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/analysis", h.HandleAnalysis)
	r.Route("/report", func(r chi.Router) {
		r.Post("/spreadsheet", h.HandleSpreadsheet)
		r.Post("/document", h.HandleDocument)
	})
	r.Get("/params", h.HandleParams)
}

// HandleAnalysis returns ratios, trends, both scores, the valuation and the
// optional peer comparison.
// POST /api/analysis
func (h *Handler) HandleAnalysis(w http.ResponseWriter, r *http.Request) {
	res, ok := h.run(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleSpreadsheet returns the xlsx report.
// POST /api/report/spreadsheet
func (h *Handler) HandleSpreadsheet(w http.ResponseWriter, r *http.Request) {
	res, ok := h.run(w, r)
	if !ok {
		return
	}

	content, err := report.Spreadsheet(res)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build spreadsheet")
		writeError(w, err)
		return
	}

	id := h.store(r.Context(), uuid.New(), res.Company, "xlsx", content)
	writeDownload(w, id, report.SpreadsheetContentType, report.SpreadsheetFilename, content)
}

// HandleDocument returns the document report.
// POST /api/report/document?format=pdf|html|md
func (h *Handler) HandleDocument(w http.ResponseWriter, r *http.Request) {
	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", models.ErrInvalidInput, err))
		return
	}

	res, ok := h.run(w, r)
	if !ok {
		return
	}

	doc := report.BuildDocument(res, h.narrate(r.Context(), res))
	content, err := doc.Render(format)
	if err != nil {
		h.log.Error().Err(err).Str("format", string(format)).Msg("Failed to render document")
		writeError(w, err)
		return
	}

	id := h.store(r.Context(), doc.ID, res.Company, string(format), content)
	writeDownload(w, id, format.ContentType(), format.Filename(), content)
}

// HandleParams returns the parameter bounds and defaults for form controls.
// GET /api/params
func (h *Handler) HandleParams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"bounds":   h.bounds,
		"defaults": h.defaults,
	})
}

// run parses the upload and runs the engine; on failure the error response
// has already been written.
func (h *Handler) run(w http.ResponseWriter, r *http.Request) (*coreAnalysis.Result, bool) {
	req, err := h.parseRequest(w, r)
	if err != nil {
		h.log.Warn().Err(err).Msg("Rejected analysis request")
		writeError(w, err)
		return nil, false
	}

	res, err := h.engine.Run(req)
	if err != nil {
		h.log.Warn().Err(err).Str("company", req.Primary.Name).Msg("Analysis failed")
		writeError(w, err)
		return nil, false
	}

	h.log.Info().
		Str("company", res.Company).
		Bool("peer", res.HasPeer()).
		Int("display_score", res.Display.Score).
		Int("report_score", res.Report.Score).
		Str("blend_signal", string(res.Valuation.Blend.Signal)).
		Msg("Analysis complete")
	return res, true
}

func (h *Handler) parseRequest(w http.ResponseWriter, r *http.Request) (coreAnalysis.Request, error) {
	var req coreAnalysis.Request

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		return req, fmt.Errorf("%w: expected multipart form upload: %v", models.ErrInvalidInput, err)
	}

	primary, err := readUpload(r, FieldCompanyA)
	if err != nil {
		return req, err
	}
	if primary == nil {
		return req, fmt.Errorf("%w: file %q is required", models.ErrMissingField, FieldCompanyA)
	}
	req.Primary = primary

	if req.Peer, err = readUpload(r, FieldCompanyB); err != nil {
		return req, err
	}

	params, err := h.formParams(r)
	if err != nil {
		return req, err
	}
	if req.Inputs, err = params.Inputs(h.bounds); err != nil {
		return req, err
	}
	return req, nil
}

// readUpload returns nil without error when the field is absent.
func readUpload(r *http.Request, field string) (*models.CompanySeries, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrInvalidInput, field, err)
	}
	defer file.Close()

	return ingest.Read(uploadName(header), file)
}

func uploadName(h *multipart.FileHeader) string {
	if h.Filename == "" {
		return "upload.xlsx"
	}
	return h.Filename
}

func (h *Handler) formParams(r *http.Request) (valuation.Params, error) {
	p := h.defaults

	ints := []struct {
		field string
		dst   *int
	}{
		{FieldPE, &p.MarketPE},
		{FieldSharesLakhs, &p.SharesLakhs},
	}
	for _, f := range ints {
		if v := strings.TrimSpace(r.FormValue(f.field)); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return p, fmt.Errorf("%w: %s must be a whole number, got %q", models.ErrInvalidInput, f.field, v)
			}
			*f.dst = n
		}
	}

	floats := []struct {
		field string
		dst   *float64
	}{
		{FieldGrowthPct, &p.GrowthPct},
		{FieldDiscountPct, &p.DiscountPct},
		{FieldTerminalPct, &p.TerminalPct},
	}
	for _, f := range floats {
		if v := strings.TrimSpace(r.FormValue(f.field)); v != "" {
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return p, fmt.Errorf("%w: %s must be a number, got %q", models.ErrInvalidInput, f.field, v)
			}
			*f.dst = x
		}
	}

	if v := strings.TrimSpace(r.FormValue(FieldMarketPrice)); v != "" {
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return p, fmt.Errorf("%w: %s must be a number, got %q", models.ErrInvalidInput, FieldMarketPrice, v)
		}
		p.MarketPrice = &x
	}
	return p, nil
}

// narrate returns an empty narrative when disabled or failing.
func (h *Handler) narrate(ctx context.Context, res *coreAnalysis.Result) string {
	if h.narrator == nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, narrativeTimeout)
	defer cancel()

	text, err := report.Narrate(ctx, h.narrator, res)
	if err != nil {
		h.log.Warn().Err(err).Str("company", res.Company).Msg("Narrative skipped")
		return ""
	}
	return text
}

// store archives content when a database is configured. The export is
// returned either way.
func (h *Handler) store(ctx context.Context, id uuid.UUID, company, kind string, content []byte) uuid.UUID {
	if !h.archive.Enabled() {
		return id
	}
	rep := &store.ArchivedReport{ID: id, Company: company, Kind: kind, Content: content}
	if err := h.archive.Save(ctx, rep); err != nil {
		h.log.Warn().Err(err).Str("kind", kind).Msg("Failed to archive report")
		return id
	}
	h.log.Debug().Str("id", rep.ID.String()).Str("kind", kind).Msg("Report archived")
	return rep.ID
}
