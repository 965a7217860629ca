package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dgallion1/specgest/internal/parser"
	"github.com/dgallion1/specgest/internal/pipeline"
	"github.com/dgallion1/specgest/internal/record"
)

type upload struct {
	filename string
	data     []byte
	opts     pipeline.Options
}

// readUpload reads the multipart "file" field and the option overrides. On
// failure it has already written the error response.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (*upload, bool) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return nil, false
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return nil, false
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return nil, false
	}

	opts, err := s.formOptions(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return &upload{filename: filename, data: data, opts: opts}, true
}

// formOptions overlays the request's option fields onto the server defaults.
func (s *Server) formOptions(r *http.Request) (pipeline.Options, error) {
	d := s.defaults
	pick := func(field, fallback string) string {
		if v := r.FormValue(field); v != "" {
			return v
		}
		return fallback
	}
	flag := func(field string, fallback bool) bool {
		if b, err := strconv.ParseBool(r.FormValue(field)); err == nil {
			return b
		}
		return fallback
	}

	headers := string(d.HeaderStrictness)
	if v := r.FormValue("strict_headers"); v != "" {
		headers = "lenient"
		if flag("strict_headers", false) {
			headers = "strict"
		}
	}
	opts, err := pipeline.ParseOptions(
		pick("anchors", string(d.AnchorStrictness)),
		pick("naming", string(d.HierarchyNaming)),
		pick("shape", string(d.RecordShape)),
		headers,
		flag("key_phrases", d.KeyPhrases),
	)
	if err != nil {
		return opts, err
	}
	opts.PDFFallback = d.PDFFallback
	return opts, nil
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	up, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	log := s.log.With("document", up.filename)
	start := time.Now()
	res, err := pipeline.NewEngine(up.opts, log).Parse(r.Context(), bytes.NewReader(up.data), up.filename)
	s.orchestrator.Stats().Observe(start, err)
	if err != nil {
		log.Error("parse failed", "error", err)
		code := http.StatusUnprocessableEntity
		if errors.Is(err, r.Context().Err()) {
			code = http.StatusServiceUnavailable
		}
		jsonError(w, err.Error(), code)
		return
	}
	writeRecords(w, res.Document)
}

func (s *Server) handleSubmitJob(w http.ResponseWriter, r *http.Request) {
	up, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	job := pipeline.NewJob(up.filename, up.data, up.opts)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   snap.ID,
		"status":   snap.Status,
		"poll_url": fmt.Sprintf("/api/jobs/%s", snap.ID),
	})
}

func writeRecords(w http.ResponseWriter, doc *record.Document) {
	w.Header().Set("Content-Type", "application/json")
	_ = record.Write(w, doc)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
