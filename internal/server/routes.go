package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/draftsmith/draftsmith/internal/docio"
	"github.com/draftsmith/draftsmith/internal/formatting"
	"github.com/draftsmith/draftsmith/internal/pipeline"
)

// maxUploadBytes bounds the in-memory portion of multipart parsing.
const maxUploadBytes = 32 << 20

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// registerRoutes sets up all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/v1/draft", s.handleDraft)
	mux.HandleFunc("POST /api/v1/formatting/inspect", s.handleInspect)
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Provider: s.generatorName(),
	})
}

// handleDraft runs the full drafting flow: two sample documents plus a
// case summary in, a flowing text draft or a formatted .docx out.
func (s *Server) handleDraft(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid multipart form: %v", err))
		return
	}

	sample1, err := formFileText(r, "sample1")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sample2, err := formFileText(r, "sample2")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	caseSummary := strings.TrimSpace(r.FormValue("case_summary"))
	if caseSummary == "" {
		writeError(w, http.StatusBadRequest, "case_summary is required")
		return
	}

	output := r.FormValue("output")
	if output == "" {
		output = "text"
	}
	if output != "text" && output != "docx" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown output format %q (want text or docx)", output))
		return
	}

	req := &pipeline.Request{
		Sample1:     sample1,
		Sample2:     sample2,
		CaseSummary: caseSummary,
		DocxOutput:  output == "docx",
	}

	ref, err := formFileDocx(r, "reference")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Reference = ref

	result, err := s.currentPipeline().Run(r.Context(), req)
	if err != nil {
		s.logger.Error("drafting request failed", "error", err)
		writeError(w, http.StatusBadGateway, fmt.Sprintf("drafting failed: %v", err))
		return
	}

	if output == "docx" {
		w.Header().Set("Content-Type", docxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "draft-"+result.RequestID+".docx"))
		w.Header().Set("X-Request-Id", result.RequestID)
		w.WriteHeader(http.StatusOK)
		w.Write(result.Docx)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleInspect reports the formatting of each block in an uploaded .docx,
// in the shape a word processor's formatting panel would show.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid multipart form: %v", err))
		return
	}

	doc, err := formFileDocx(r, "reference")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if doc == nil {
		writeError(w, http.StatusBadRequest, "reference file is required")
		return
	}

	writeJSON(w, http.StatusOK, formatting.Inspect(doc))
}

// formFileText reads a required upload and decodes it to plain text.
// Legacy .doc uploads and undecodable bytes are reported as client errors.
func formFileText(r *http.Request, field string) (string, error) {
	name, data, err := formFile(r, field)
	if err != nil {
		return "", err
	}
	if data == nil {
		return "", fmt.Errorf("%s file is required", field)
	}

	text, err := docio.FileToText(name, data)
	if err != nil {
		if errors.Is(err, docio.ErrLegacyFormat) {
			return "", fmt.Errorf("%s: legacy .doc format is not supported, save as .docx or .txt", field)
		}
		return "", fmt.Errorf("%s: %v", field, err)
	}
	return text, nil
}

// formFileDocx reads an optional .docx upload. Returns (nil, nil) when the
// field is absent.
func formFileDocx(r *http.Request, field string) (*docio.Document, error) {
	name, data, err := formFile(r, field)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	if ext := strings.ToLower(filepath.Ext(name)); ext != ".docx" {
		return nil, fmt.Errorf("%s must be a .docx file, got %q", field, name)
	}
	doc, err := docio.ReadDocx(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", field, err)
	}
	return doc, nil
}

// formFile returns the filename and content of a multipart file field.
// An absent field yields empty values with no error.
func formFile(r *http.Request, field string) (string, []byte, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil, nil
		}
		return "", nil, fmt.Errorf("%s: %v", field, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, fmt.Errorf("%s: failed to read upload: %v", field, err)
	}
	return header.Filename, data, nil
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ErrorResponse is the error payload for all non-2xx responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
