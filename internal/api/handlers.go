package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/chartgeom/pkg/buildinfo"
	"github.com/matzehuels/chartgeom/pkg/chartspec"
	"github.com/matzehuels/chartgeom/pkg/errors"
	"github.com/matzehuels/chartgeom/pkg/gate"
	"github.com/matzehuels/chartgeom/pkg/pipeline"
)

// updateResponse is returned by the routes that change a chart.
type updateResponse struct {
	Snapshot
	Decision gate.Decision `json:"decision"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Charts int            `json:"charts"`
	Build  buildinfo.Info `json:"build"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Charts: s.charts.Len(),
		Build:  buildinfo.Get(),
	})
}

func (s *Server) handleDerive(w http.ResponseWriter, r *http.Request) {
	spec, err := readSpec(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if spec.DataFile != "" {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "data_file is not supported over HTTP; send rows inline in data"))
		return
	}
	opts := pipeline.Options{Refresh: r.URL.Query().Get("refresh") == "true"}
	result, err := s.runner.Derive(r.Context(), spec, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	spec, err := readSpec(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	snap, err := s.charts.Create(spec)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Location", "/charts/"+snap.ID)
	writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	snap, err := s.charts.Snapshot(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleInteraction(w http.ResponseWriter, r *http.Request) {
	var st chartspec.Step
	if err := decodeBody(w, r, &st); err != nil {
		s.writeError(w, err)
		return
	}
	u, snap, err := s.charts.Interact(chi.URLParam(r, "id"), st)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updateResponse{Snapshot: snap, Decision: u.Decision()})
}

func (s *Server) handleReplace(w http.ResponseWriter, r *http.Request) {
	spec, err := readSpec(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	u, snap, err := s.charts.Replace(chi.URLParam(r, "id"), spec)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updateResponse{Snapshot: snap, Decision: u.Decision()})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.charts.Delete(chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// readSpec decodes a JSON chart spec from the request body.
func readSpec(w http.ResponseWriter, r *http.Request) (*chartspec.Spec, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty request body")
	}
	return chartspec.Parse(data, chartspec.FormatJSON)
}

// decodeBody decodes a JSON body into v, rejecting unknown fields.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body")
	}
	return nil
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: msg}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
