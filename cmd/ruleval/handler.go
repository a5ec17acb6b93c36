package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/ruleval/pkg/i18n"
	"github.com/dmitrymomot/ruleval/pkg/logger"
	"github.com/dmitrymomot/ruleval/pkg/ruleset"
	"github.com/dmitrymomot/ruleval/pkg/source"
	"github.com/dmitrymomot/ruleval/pkg/validator"
)

const defaultRequestTimeout = 30 * time.Second

// api serves validation of posted forms and JSON documents.
type api struct {
	sets       map[string]*ruleset.Set
	translator *i18n.Translator
	options    func(set *ruleset.Set, lang string) []validator.Option
	log        *slog.Logger
	maxBody    int64
	timeout    time.Duration
}

func (a *api) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", a.health)
	r.Get("/rules", a.listSets)
	r.Get("/rules/{set}", a.showSet)
	r.Post("/validate/{set}", a.validate)
	return r
}

func (a *api) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ALIVE"))
}

func (a *api) listSets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"sets": sortedNames(a.sets)})
}

type setView struct {
	Name      string             `json:"name"`
	Language  string             `json:"language,omitempty"`
	Fields    []string           `json:"fields"`
	Rules     map[string]string  `json:"rules"`
	Languages []string           `json:"languages"`
	Messages  validator.Messages `json:"messages,omitempty"`
}

func (a *api) showSet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "set")
	set, ok := a.sets[name]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown rule set")
		return
	}
	writeJSON(w, http.StatusOK, setView{
		Name:      name,
		Language:  set.Language,
		Fields:    set.ValidatorRules().Fields(),
		Rules:     set.Rules,
		Languages: a.translator.SupportedLanguages(),
		Messages:  set.Messages,
	})
}

func (a *api) validate(w http.ResponseWriter, r *http.Request) {
	set, ok := a.sets[chi.URLParam(r, "set")]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown rule set")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, a.maxBody)
	src, err := a.source(r)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, source.ErrUnsupportedMediaType) {
			status = http.StatusUnsupportedMediaType
		}
		writeError(w, status, err.Error())
		return
	}

	lang := r.URL.Query().Get("lang")
	if lang == "" && r.Header.Get("Accept-Language") != "" {
		lang = a.translator.Negotiate(r.Header.Get("Accept-Language"))
	}

	ctx, cancel := context.WithTimeout(r.Context(), a.timeout)
	defer cancel()

	rep, err := evaluate(ctx, set, src, a.options(set, lang))
	if err != nil {
		a.log.WarnContext(ctx, "validation aborted",
			logger.RunID(rep.RunID),
			logger.Error(err),
		)
		writeError(w, http.StatusServiceUnavailable, "validation did not finish")
		return
	}

	status := http.StatusOK
	if !rep.Valid {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, rep)
}

// source decodes JSON bodies with FromJSON and everything else as a form.
func (a *api) source(r *http.Request) (validator.Source, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		return source.FromJSON(data)
	}
	return source.FromRequest(r, source.WithMaxMemory(a.maxBody))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// requestIDExtractor tags log records with the id set by middleware.RequestID.
func requestIDExtractor(ctx context.Context) (slog.Attr, bool) {
	if id := middleware.GetReqID(ctx); id != "" {
		return slog.String("request_id", id), true
	}
	return slog.Attr{}, false
}
