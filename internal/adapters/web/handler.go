package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/text/language"

	"catalogstats/internal/domain/entities"
	"catalogstats/internal/logging"
	"catalogstats/internal/metrics"
	"catalogstats/internal/ports/input"
	"catalogstats/internal/ports/output"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Pinger reports whether the catalog store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// LocaleResolver picks the bundled language for a requested locale.
type LocaleResolver interface {
	Resolve(locale string) language.Tag
}

// Handler serves the report page, its JSON twin and the health probe.
type Handler struct {
	reports input.ReportUseCase
	store   Pinger
	locales LocaleResolver
	tr      output.T
	funcs   *FuncRegistry
	page    *template.Template
}

func NewHandler(
	reports input.ReportUseCase,
	store Pinger,
	locales LocaleResolver,
	tr output.T,
	funcs *FuncRegistry,
) (*Handler, error) {
	// Functions are rebound per request; these only satisfy the parser.
	page, err := template.New("index.html.tmpl").
		Funcs(funcs.For("")).
		ParseFS(templateFS, "templates/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Handler{
		reports: reports,
		store:   store,
		locales: locales,
		tr:      tr,
		funcs:   funcs,
		page:    page,
	}, nil
}

type pageData struct {
	Locale string
	Report *entities.Report
	Error  string
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// locale resolves ?lang=, then Accept-Language, then the default language.
func (h *Handler) locale(r *http.Request) string {
	requested := r.URL.Query().Get("lang")
	if requested == "" {
		requested = r.Header.Get("Accept-Language")
	}
	return h.locales.Resolve(requested).String()
}

func (h *Handler) build(ctx context.Context, locale string) (*entities.Report, error) {
	start := time.Now()
	report, err := h.reports.BuildReport(ctx, locale)
	metrics.ReportBuildDuration.WithLabelValues(locale).Observe(time.Since(start).Seconds())
	return report, err
}

// Index renders the HTML report.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	locale := h.locale(r)

	data := pageData{Locale: locale}
	status := http.StatusOK

	report, err := h.build(ctx, locale)
	if err != nil {
		var code string
		status, code, data.Error = DomainErrorMessage(h.tr, locale, err)
		logging.Ctx(ctx).Error().Err(err).Str("code", code).Msg("report build failed")
	} else {
		data.Report = report
	}

	page, err := h.page.Clone()
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("clone template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	page.Funcs(h.funcs.For(locale))

	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Language", locale)
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Report serves the report as JSON.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	locale := h.locale(r)

	report, err := h.build(ctx, locale)
	if err != nil {
		status, code, msg := DomainErrorMessage(h.tr, locale, err)
		logging.Ctx(ctx).Error().Err(err).Str("code", code).Msg("report build failed")
		if code == "" {
			code = "internal"
		}
		writeJSON(ctx, w, status, errorResponse{Error: code, Message: msg})
		return
	}
	w.Header().Set("Content-Language", locale)
	writeJSON(ctx, w, http.StatusOK, report)
}

// Health pings the store.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := h.store.Ping(ctx); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("health check failed")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("unavailable"))
		return
	}
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("encode json")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
