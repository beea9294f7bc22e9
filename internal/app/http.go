package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"pulseboard/api/internal/util"
)

type HTTPServer struct {
	service    *Service
	corsOrigin string
}

func NewHTTPServer(service *Service, corsOrigin string) *HTTPServer {
	return &HTTPServer{service: service, corsOrigin: corsOrigin}
}

func (s *HTTPServer) Handler() http.Handler {
	return s.withMiddleware(http.HandlerFunc(s.handle))
}

func (s *HTTPServer) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		writeJSON(w, http.StatusNoContent, map[string]any{})
		return
	}

	if (r.Method == http.MethodGet || r.Method == http.MethodHead) && r.URL.Path == "/api/health" {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/upload" {
		s.handleUpload(w, r)
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/repo/stats" {
		owner, repo := repoParams(r)
		stats, err := s.service.RepoStats(r.Context(), owner, repo)
		if err != nil {
			status, code, message := mapError(err)
			writeError(w, status, code, message)
			return
		}
		writeJSON(w, http.StatusOK, stats)
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/repo/logs" {
		owner, repo := repoParams(r)
		logs, err := s.service.RepoLogs(r.Context(), owner, repo)
		if err != nil {
			status, code, message := mapError(err)
			writeError(w, status, code, message)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"logs": logs})
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/repo/summary" {
		owner, repo := repoParams(r)
		summary, err := s.service.RepoSummary(r.Context(), owner, repo)
		if err != nil {
			status, code, message := mapError(err)
			writeError(w, status, code, message)
			return
		}
		writeJSON(w, http.StatusOK, summary)
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/repos" {
		repos, err := s.service.UserRepos(r.Context())
		if err != nil {
			status, code, message := mapError(err)
			writeError(w, status, code, message)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"repos": repos})
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/issues" {
		s.handleCreateIssue(w, r)
		return
	}

	if parts := splitPath(r.URL.Path); len(parts) >= 3 && parts[0] == "api" && parts[1] == "issues" {
		number, err := strconv.Atoi(parts[2])
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", "issue number must be numeric")
			return
		}
		if r.Method == http.MethodPut && len(parts) == 3 {
			s.handleUpdateIssue(w, r, number)
			return
		}
		if r.Method == http.MethodPost && len(parts) == 4 && parts[3] == "close" {
			s.handleCloseIssue(w, r, number)
			return
		}
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/analyze" {
		s.handleAnalyze(w, r)
		return
	}

	writeError(w, http.StatusNotFound, "NOT_FOUND", "Not found")
}

func (s *HTTPServer) handleUpload(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "failed to read upload body")
		return
	}
	result, err := s.service.ProcessUpload(body)
	if err != nil {
		status, code, message := mapError(err)
		writeError(w, status, code, message)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *HTTPServer) handleCreateIssue(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Owner string `json:"owner"`
		Repo  string `json:"repo"`
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	issue, err := s.service.CreateIssue(r.Context(), body.Owner, body.Repo, body.Title, body.Body)
	if err != nil {
		status, code, message := mapError(err)
		writeError(w, status, code, message)
		return
	}
	writeJSON(w, http.StatusCreated, issue)
}

func (s *HTTPServer) handleUpdateIssue(w http.ResponseWriter, r *http.Request, number int) {
	var body struct {
		Owner string `json:"owner"`
		Repo  string `json:"repo"`
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	issue, err := s.service.UpdateIssue(r.Context(), body.Owner, body.Repo, number, body.Title, body.Body)
	if err != nil {
		status, code, message := mapError(err)
		writeError(w, status, code, message)
		return
	}
	writeJSON(w, http.StatusOK, issue)
}

func (s *HTTPServer) handleCloseIssue(w http.ResponseWriter, r *http.Request, number int) {
	var body struct {
		Owner string `json:"owner"`
		Repo  string `json:"repo"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	issue, err := s.service.CloseIssue(r.Context(), body.Owner, body.Repo, number)
	if err != nil {
		status, code, message := mapError(err)
		writeError(w, status, code, message)
		return
	}
	writeJSON(w, http.StatusOK, issue)
}

func (s *HTTPServer) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Owner string `json:"owner"`
		Repo  string `json:"repo"`
		Days  int    `json:"days"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	report, err := s.service.Analyze(r.Context(), body.Owner, body.Repo, body.Days)
	if err != nil {
		status, code, message := mapError(err)
		writeError(w, status, code, message)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *HTTPServer) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = util.NewID("req")
		}
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		started := time.Now()
		writer := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		setCORSHeaders(writer.Header(), s.corsOrigin)
		writer.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(writer, r)

		log.Info("http: request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", writer.status,
			"duration_ms", time.Since(started).Milliseconds(),
		)
	})
}

type requestIDKey struct{}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func setCORSHeaders(header http.Header, corsOrigin string) {
	header.Set("Access-Control-Allow-Origin", corsOrigin)
	header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
	header.Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
	header.Set("Cache-Control", "no-store")
	header.Set("Content-Type", "application/json")
}

func repoParams(r *http.Request) (owner, repo string) {
	return strings.TrimSpace(r.URL.Query().Get("owner")), strings.TrimSpace(r.URL.Query().Get("repo"))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"code":  code,
		"error": message,
	})
}

func decodeBody(r *http.Request, target any) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, http.ErrBodyReadAfterClose) {
			return nil
		}
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
