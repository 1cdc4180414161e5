// Package server is the web front-end: upload form, results dashboard and
// PDF download.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"aesthetica/internal/models"
	"aesthetica/internal/session"
	"aesthetica/shared/config"
	"aesthetica/shared/media"
	"aesthetica/shared/monitoring"
	"aesthetica/shared/report"
)

//go:embed templates/*.html
var templateFS embed.FS

// multipart framing and the context field need headroom beyond the video
// ceiling itself.
const maxRequestBytes = media.MaxUploadBytes + 10*1024*1024

type Server struct {
	cfg        *config.Config
	controller *session.Controller
	exporter   *report.Exporter
	rasterizer report.Rasterizer
	monitor    *monitoring.Monitor
	tmpl       *template.Template
	mux        *http.ServeMux
	baseURL    string
	exporting  atomic.Bool
}

func New(cfg *config.Config, ctrl *session.Controller, exporter *report.Exporter, rasterizer report.Rasterizer, monitor *monitoring.Monitor) (*Server, error) {
	funcs := template.FuncMap{
		"addOne": func(i int) int { return i + 1 },
	}
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		cfg:        cfg,
		controller: ctrl,
		exporter:   exporter,
		rasterizer: rasterizer,
		monitor:    monitor,
		tmpl:       tmpl,
		mux:        http.NewServeMux(),
		baseURL:    selfURL(cfg.Server.Address),
	}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /analyze", s.handleAnalyze)
	s.mux.HandleFunc("GET /api/status", s.handleStatus)
	s.mux.HandleFunc("GET /report", s.handleReport)
	s.mux.HandleFunc("POST /reset", s.handleReset)
	s.mux.HandleFunc("GET /export", s.handleExport)
	s.mux.Handle("GET /healthz", monitoring.HealthHandler(monitor))

	return s, nil
}

// Handler exposes the routing table so the CLI export path can mount the
// server on an ephemeral listener.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// SetBaseURL overrides the self-capture URL, needed when the server runs
// on an ephemeral port.
func (s *Server) SetBaseURL(u string) {
	s.baseURL = strings.TrimSuffix(u, "/")
}

func (s *Server) ListenAndServe() error {
	log.Printf("Aesthetica AI listening on %s", s.cfg.Server.Address)
	return http.ListenAndServe(s.cfg.Server.Address, s.mux)
}

// selfURL derives the URL the rasterizer uses to reach this process.
func selfURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://127.0.0.1" + addr
	}
	return "http://" + addr
}

type indexData struct {
	Snapshot      session.Snapshot
	HasCredential bool
	Err           string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	snap := s.controller.Snapshot()
	if snap.Phase == session.PhaseResults {
		http.Redirect(w, r, "/report", http.StatusSeeOther)
		return
	}
	s.renderIndex(w, snap, snap.Err)
}

func (s *Server) renderIndex(w http.ResponseWriter, snap session.Snapshot, errMsg string) {
	data := indexData{
		Snapshot:      snap,
		HasCredential: s.cfg.HasCredential(),
		Err:           errMsg,
	}
	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		log.Printf("Render index failed: %v", err)
	}
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !s.controller.CanSubmit() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		s.renderIndex(w, s.controller.Snapshot(),
			"O arquivo é muito grande ou o envio está corrompido. O limite é 150MB.")
		return
	}

	file, header, err := r.FormFile("video")
	if err != nil {
		s.renderIndex(w, s.controller.Snapshot(), "Nenhum arquivo de vídeo foi enviado.")
		return
	}
	defer file.Close()

	declaredType := header.Header.Get("Content-Type")

	// Size and type are checked against the upload headers before the
	// body is read into memory; rejected files never reach the network.
	if err := media.Validate(header.Filename, header.Size, declaredType); err != nil {
		s.renderIndex(w, s.controller.Snapshot(), err.Error())
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("Reading upload %s failed: %v", header.Filename, err)
		s.renderIndex(w, s.controller.Snapshot(), "Falha ao ler o arquivo enviado. Tente novamente.")
		return
	}

	asset, err := media.NewAsset(header.Filename, declaredType, data)
	if err != nil {
		s.renderIndex(w, s.controller.Snapshot(), err.Error())
		return
	}

	// The analysis outlives this request; detach it from the request
	// context so navigating away does not abort it.
	if err := s.controller.Submit(context.WithoutCancel(r.Context()), asset, r.FormValue("context")); err != nil {
		s.renderIndex(w, s.controller.Snapshot(), err.Error())
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.controller.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"phase":      snap.Phase.String(),
		"error":      snap.Err,
		"can_submit": s.controller.CanSubmit(),
		"has_result": snap.Result != nil,
		"run_id":     snap.RunID,
	})
}

type reportData struct {
	Result      *models.AnalysisResult
	GeneratedAt string
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	snap := s.controller.Snapshot()
	if snap.Phase != session.PhaseResults || snap.Result == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	data := reportData{
		Result:      snap.Result,
		GeneratedAt: report.FormatTimestampPTBR(time.Now()),
	}
	if err := s.tmpl.ExecuteTemplate(w, "report.html", data); err != nil {
		log.Printf("Render report failed: %v", err)
	}
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.controller.Reset()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if !s.exporting.CompareAndSwap(false, true) {
		http.Error(w, "Exportação já em andamento.", http.StatusConflict)
		return
	}
	defer s.exporting.Store(false)

	snap := s.controller.Snapshot()
	if snap.Phase != session.PhaseResults || snap.Result == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	capture, err := s.rasterizer.Capture(r.Context(), s.baseURL+"/report")
	if err != nil {
		log.Printf("Report capture failed: %v", err)
		http.Error(w, "Erro ao gerar PDF. Tente novamente.", http.StatusInternalServerError)
		return
	}

	pdfBytes, name, err := s.exporter.Export(capture, snap.Result)
	if err != nil {
		log.Printf("PDF assembly failed: %v", err)
		http.Error(w, "Erro ao gerar PDF. Tente novamente.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Write(pdfBytes)
}
