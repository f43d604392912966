// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"colabkit/pkg/colabkit"
)

// DownloadRequest is the request body for a synchronous download.
// The destination is resolved under the server's configured base
// directory; requests escaping it are rejected.
type DownloadRequest struct {
	URL         string `json:"url"`
	Destination string `json:"destination,omitempty"`
}

// DownloadResponse reports where the file landed.
type DownloadResponse struct {
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
	Size      string `json:"size"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// --- Handlers ---

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.config.Version,
		"uptime":  time.Since(s.started).Round(time.Second).String(),
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// handleEnv returns the environment report.
func (s *Server) handleEnv(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}
	writeJSON(w, http.StatusOK, colabkit.SetupEnvironment(colabkit.SetupOptions{EnablePlotInline: true}))
}

// handleGPU returns the GPU report. Unavailability is data, not an
// error status.
func (s *Server) handleGPU(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}
	writeJSON(w, http.StatusOK, colabkit.GPUInfo(r.Context()))
}

// handleMemory returns the memory report.
func (s *Server) handleMemory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}
	writeJSON(w, http.StatusOK, colabkit.MemoryInfo())
}

// handleDownload performs a synchronous download confined to the base
// directory and returns the final path.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}

	var req DownloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "Missing required field: url", "")
		return
	}

	dst, err := s.resolveOutputPath(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid destination", err.Error())
		return
	}

	path, err := colabkit.Download(r.Context(), req.URL, colabkit.DownloadOptions{
		Destination: dst,
	})
	if err != nil {
		status, msg := classifyDownloadError(err)
		writeError(w, status, msg, err.Error())
		return
	}

	var size int64
	if fi, err := os.Stat(path); err == nil {
		size = fi.Size()
	}
	writeJSON(w, http.StatusOK, DownloadResponse{
		Path:      path,
		SizeBytes: size,
		Size:      sizeString(size),
	})
}

// resolveOutputPath joins the requested destination (or the filename
// derived from the URL) to the base directory and rejects anything
// that escapes it.
func (s *Server) resolveOutputPath(req DownloadRequest) (string, error) {
	base, err := filepath.Abs(s.config.BaseDir)
	if err != nil {
		return "", err
	}

	dest := req.Destination
	if dest == "" {
		name, err := colabkit.FilenameFromURL(req.URL)
		if err != nil {
			return "", err
		}
		dest = name
	}
	if filepath.IsAbs(dest) {
		return "", errors.New("destination must be relative to the base directory")
	}

	full := filepath.Join(base, dest)
	rel, err := filepath.Rel(base, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.New("destination escapes the base directory")
	}
	return full, nil
}

// classifyDownloadError maps the library's error taxonomy onto HTTP
// statuses.
func classifyDownloadError(err error) (int, string) {
	var verr *colabkit.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, "Invalid URL"
	}
	var serr *colabkit.StatusError
	if errors.As(err, &serr) {
		return http.StatusBadGateway, "Remote server returned " + serr.Status
	}
	var terr *colabkit.TransportError
	if errors.As(err, &terr) {
		return http.StatusBadGateway, "Network error"
	}
	var werr *colabkit.WriteError
	if errors.As(err, &werr) {
		return http.StatusInternalServerError, "Write failed"
	}
	return http.StatusInternalServerError, "Download failed"
}

func sizeString(n int64) string {
	s, err := colabkit.FormatByteSize(float64(n))
	if err != nil {
		return ""
	}
	return s
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, details string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Details: details})
}
