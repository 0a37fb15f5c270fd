package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/tagcloud/pkg/buildinfo"
	"github.com/matzehuels/tagcloud/pkg/cloud"
	tcerrors "github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/store"
)

// contentTypes maps output formats to MIME types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJPEG: "image/jpeg",
	pipeline.FormatGIF:  "image/gif",
	pipeline.FormatBMP:  "image/bmp",
	pipeline.FormatTIFF: "image/tiff",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

// CreateRequest is the body of POST /v1/clouds.
type CreateRequest struct {
	pipeline.Options
	Format string `json:"format,omitempty"`
}

// CreateResponse is returned by POST /v1/clouds for JSON output.
type CreateResponse struct {
	ID     string        `json:"id"`
	Layout cloud.Layout  `json:"layout"`
	Stats  responseStats `json:"stats"`
}

type responseStats struct {
	Words     int   `json:"words"`
	Tags      int   `json:"tags"`
	Attempts  int   `json:"attempts"`
	Rescales  int   `json:"rescales"`
	LayoutMS  int64 `json:"layout_ms"`
	LayoutHit bool  `json:"layout_cached"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, tcerrors.Wrap(tcerrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	format := req.Format
	if format == "" {
		format = pipeline.FormatJSON
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, err)
		return
	}
	opts := req.Options
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	rec := &store.Record{InputHash: res.InputHash, Layout: res.Layout}
	if err := s.store.Save(r.Context(), rec); err != nil {
		s.writeError(w, tcerrors.Wrap(tcerrors.ErrCodeInternal, err, "cannot store cloud"))
		return
	}
	w.Header().Set("Location", "/v1/clouds/"+rec.ID)
	w.Header().Set("X-Cloud-ID", rec.ID)

	if format != pipeline.FormatJSON {
		writeArtifact(w, http.StatusCreated, format, res.Artifacts[format])
		return
	}
	writeJSON(w, http.StatusCreated, CreateResponse{
		ID:     rec.ID,
		Layout: res.Layout,
		Stats: responseStats{
			Words:     res.Stats.WordCount,
			Tags:      len(res.Layout.Tags),
			Attempts:  res.Stats.Packing.Attempts,
			Rescales:  res.Stats.Packing.Rescales,
			LayoutMS:  res.Stats.LayoutTime.Milliseconds(),
			LayoutHit: res.CacheInfo.LayoutHit,
		},
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, format := splitRef(chi.URLParam(r, "ref"))
	if !store.ValidID(id) {
		s.writeError(w, tcerrors.New(tcerrors.ErrCodeNotFound, "cloud %q not found", id))
		return
	}
	if format != "" {
		if err := pipeline.ValidateFormat(format); err != nil {
			s.writeError(w, err)
			return
		}
	}

	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if format == "" {
		writeJSON(w, http.StatusOK, rec)
		return
	}

	opts, err := renderOptions(rec.Layout, format, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	artifacts, err := s.runner.Render(r.Context(), rec.Layout, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeArtifact(w, http.StatusOK, format, artifacts[format])
}

// renderOptions rebuilds the render settings a stored layout was made with,
// applying the optional scale and outlines query parameters.
func renderOptions(l cloud.Layout, format string, r *http.Request) (pipeline.Options, error) {
	opts := pipeline.Options{
		Width:      l.Width,
		Height:     l.Height,
		AutoCanvas: l.Width == 0 || l.Height == 0,
		Background: l.Background.Hex(),
		Formats:    []string{format},
	}
	q := r.URL.Query()
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 {
			return opts, tcerrors.New(tcerrors.ErrCodeInvalidInput, "invalid scale %q", v)
		}
		opts.Scale = scale
	}
	if v := q.Get("outlines"); v != "" {
		outlines, err := strconv.ParseBool(v)
		if err != nil {
			return opts, tcerrors.New(tcerrors.ErrCodeInvalidInput, "invalid outlines %q", v)
		}
		opts.Outlines = outlines
	}
	return opts, nil
}

// splitRef splits "id.format" into its parts. Record IDs never contain dots.
func splitRef(ref string) (id, format string) {
	if i := strings.LastIndexByte(ref, '.'); i >= 0 {
		return ref[:i], ref[i+1:]
	}
	return ref, ""
}

// statusFor maps an error to an HTTP status code.
func statusFor(err error) int {
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}
	switch tcerrors.GetCode(err) {
	case tcerrors.ErrCodeNotFound, tcerrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case tcerrors.ErrCodeNoWords, tcerrors.ErrCodePlacementExhausted, tcerrors.ErrCodeBoundsExceeded:
		return http.StatusUnprocessableEntity
	case tcerrors.ErrCodeUnsupported:
		return http.StatusBadRequest
	}
	if tcerrors.IsInputError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	code := string(tcerrors.GetCode(err))
	msg := tcerrors.UserMessage(err)
	switch {
	case errors.Is(err, store.ErrNotFound):
		code, msg = string(tcerrors.ErrCodeNotFound), "cloud not found"
	case status == http.StatusInternalServerError:
		s.logger.Error("request failed", "error", err)
		code, msg = string(tcerrors.ErrCodeInternal), "internal error"
	case code == "":
		code = string(tcerrors.ErrCodeInvalidInput)
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: msg}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeArtifact(w http.ResponseWriter, status int, format string, data []byte) {
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
