// # internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"refscope/internal/errors"
	"refscope/internal/index"
)

// Server exposes the reference index over HTTP for editor and CI tooling.
type Server struct {
	addr     string
	index    *index.Index
	contract *openapi3.T
	server   *http.Server
	started  time.Time
}

type symbolUsagesResponse struct {
	Symbol string       `json:"symbol"`
	Total  int          `json:"total"`
	Groups []usageGroup `json:"groups"`
}

type usageGroup struct {
	Label      string         `json:"label"`
	References []referenceDTO `json:"references"`
}

type referenceDTO struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Context string `json:"context,omitempty"`
}

type fileDTO struct {
	Path       string `json:"path"`
	Language   string `json:"language"`
	References int    `json:"references"`
}

type usageCountsResponse struct {
	Files      int            `json:"files"`
	Symbols    int            `json:"symbols"`
	References int            `json:"references"`
	ByUsage    map[string]int `json:"by_usage"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewServer(addr string, ix *index.Index, contract *openapi3.T) *Server {
	return &Server{
		addr:     addr,
		index:    ix,
		contract: contract,
	}
}

// Handler builds the route table; split out so tests can drive it directly.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/symbols", s.handleSymbols)
	mux.HandleFunc("GET /api/v1/symbols/{name}/usages", s.handleSymbolUsages)
	mux.HandleFunc("GET /api/v1/usages", s.handleUsageCounts)
	mux.HandleFunc("GET /api/v1/files", s.handleFiles)
	mux.HandleFunc("GET /api/v1/openapi.json", s.handleContract)

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", s.handleHealth)

	return mux
}

func (s *Server) Start() error {
	s.started = time.Now()
	s.server = &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	slog.Info("query server starting", "addr", s.addr)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("query server failed", "error", err)
		}
	}()

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleSymbols(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"symbols": s.index.Symbols(),
	})
}

func (s *Server) handleSymbolUsages(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	groups := s.index.GroupByUsage(name)
	if len(groups) == 0 {
		err := errors.AddContext(
			errors.New(errors.CodeNotFound, "symbol has no indexed references"),
			errors.CtxSymbol, name)
		writeError(w, http.StatusNotFound, err)
		return
	}

	resp := symbolUsagesResponse{Symbol: name}
	for _, g := range groups {
		dto := usageGroup{Label: g.Label}
		for _, ref := range g.References {
			dto.References = append(dto.References, referenceDTO{
				File:    ref.Location.File,
				Line:    ref.Location.Line,
				Column:  ref.Location.Column,
				Context: ref.Context,
			})
		}
		resp.Total += len(g.References)
		resp.Groups = append(resp.Groups, dto)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUsageCounts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, usageCountsResponse{
		Files:      s.index.FileCount(),
		Symbols:    s.index.SymbolCount(),
		References: s.index.ReferenceCount(),
		ByUsage:    s.index.UsageCounts(),
	})
}

func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	paths := s.index.FilePaths()
	files := make([]fileDTO, 0, len(paths))
	for _, path := range paths {
		file, ok := s.index.GetFile(path)
		if !ok {
			continue
		}
		files = append(files, fileDTO{
			Path:       file.Path,
			Language:   file.Language,
			References: len(file.References),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": files})
}

func (s *Server) handleContract(w http.ResponseWriter, r *http.Request) {
	if s.contract == nil {
		writeError(w, http.StatusNotFound,
			errors.New(errors.CodeNotFound, "no openapi contract configured"))
		return
	}
	data, err := s.contract.MarshalJSON()
	if err != nil {
		writeError(w, http.StatusInternalServerError,
			errors.Wrap(err, errors.CodeInternal, "marshal openapi contract"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"status":  "up",
		"files":   s.index.FileCount(),
		"symbols": s.index.SymbolCount(),
	}
	if !s.started.IsZero() {
		body["uptime"] = time.Since(s.started).Round(time.Second).String()
	}
	writeJSON(w, http.StatusOK, body)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := errorResponse{Code: string(errors.CodeInternal), Message: err.Error()}
	var domainErr *errors.DomainError
	if stderrors.As(err, &domainErr) {
		resp.Code = string(domainErr.Code)
		resp.Message = domainErr.Message
	}
	writeJSON(w, status, resp)
}
