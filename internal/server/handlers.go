package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/types"
)

// SkillsResponse represents the response for /skills
type SkillsResponse struct {
	Count   int                 `json:"count"`
	Skills  []string            `json:"skills"`
	Aliases map[string][]string `json:"aliases"`
}

// stageFunc reports analysis progress; nil for non-streaming requests.
type stageFunc func(stage string)

// handleAnalyze analyzes a resume against a job description given as text or as a URL.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeAnalyzeRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.analyze(r.Context(), req, nil)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleAnalyzeUpload analyzes an uploaded resume file (multipart field "file") against the
// "jd" text or the "jd_url" posting.
func (s *Server) handleAnalyzeUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.writeError(w, r, err)
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, &ErrValidation{Field: "file", Message: "resume file is required"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("failed to read upload: %w", err))
		return
	}

	resume, err := ingestion.ExtractText(r.Context(), header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	req := &types.AnalyzeRequest{
		Resume: resume,
		JD:     r.FormValue("jd"),
		JDURL:  r.FormValue("jd_url"),
	}
	result, err := s.analyze(r.Context(), req, nil)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleAnalyzeStream runs an analysis and streams its progress via SSE.
func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeAnalyzeRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// validation failures are reported as plain JSON before the stream starts
	if err := req.Validate(); err != nil {
		s.writeError(w, r, newValidationError(err))
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := s.analyze(r.Context(), req, func(stage string) {
		if err := sse.WriteStage(stage); err != nil {
			logger.Ctx(r.Context()).Debug().Err(err).Msg("failed to write stage event")
		}
	})
	if err != nil {
		status := HTTPStatus(err)
		logger.Ctx(r.Context()).Warn().Err(err).Int("status", status).Msg("streamed analysis failed")
		sse.WriteError(status, clientMessage(status, err))
		return
	}

	if err := sse.WriteEvent("result", result); err != nil {
		logger.Ctx(r.Context()).Debug().Err(err).Msg("failed to write result event")
		return
	}
	sse.WriteEvent("complete", map[string]string{"status": "ok"}) //nolint:errcheck
}

// handleSkills lists the skill dictionary and its alias table.
func (s *Server) handleSkills(w http.ResponseWriter, _ *http.Request) {
	dict := s.analyzer.Dictionary()
	s.jsonResponse(w, http.StatusOK, SkillsResponse{
		Count:   dict.Len(),
		Skills:  dict.Skills(),
		Aliases: dict.AliasTable(),
	})
}

// decodeAnalyzeRequest reads a size-bounded JSON AnalyzeRequest.
func (s *Server) decodeAnalyzeRequest(w http.ResponseWriter, r *http.Request) (*types.AnalyzeRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req types.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, err
		}
		return nil, &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return &req, nil
}

// analyze validates req, fetches the job description when only a URL was given, and runs the
// analyzer.
func (s *Server) analyze(ctx context.Context, req *types.AnalyzeRequest, stage stageFunc) (*types.AnalysisResult, error) {
	if stage == nil {
		stage = func(string) {}
	}

	if err := req.Validate(); err != nil {
		return nil, newValidationError(err)
	}

	jd := req.JD
	if jd == "" && req.JDURL != "" {
		stage("fetching_job_description")
		text, meta, err := ingestion.IngestFromURL(ctx, req.JDURL, ingestion.URLOptions{
			Fetch:    s.fetchOpts,
			Renderer: s.renderer,
		})
		if err != nil {
			return nil, err
		}
		logger.Ctx(ctx).Debug().
			Str("platform", meta.Platform).
			Bool("rendered", meta.Rendered).
			Int("characters", meta.Characters).
			Msg("job description fetched")
		jd = text
	}

	stage("analyzing")
	return s.analyzer.Analyze(req.Resume, jd), nil
}

// writeError maps err to a status code, logs it and writes the error body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)

	event := logger.Ctx(r.Context()).Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Ctx(r.Context()).Error()
	}
	event.Err(err).Int("status", status).Msg("request failed")

	s.errorResponse(w, status, clientMessage(status, err))
}

// clientMessage hides internal error details from 500 responses.
func clientMessage(status int, err error) string {
	switch status {
	case http.StatusInternalServerError:
		return "internal server error"
	case http.StatusRequestEntityTooLarge:
		return "request body too large"
	default:
		return err.Error()
	}
}
