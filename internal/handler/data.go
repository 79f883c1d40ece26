package handler

import (
	"io"
	"net/http"
)

// ExportDocument handles GET /export: the full document pretty-printed, with
// a dated download filename.
func (s *Server) ExportDocument(w http.ResponseWriter, _ *http.Request) {
	filename, data, err := s.data.Export()
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(data)
}

// ImportDocument handles POST /import. The payload replaces the whole
// document after running through the migration chain; a malformed payload
// leaves the stored document untouched.
func (s *Server) ImportDocument(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeRequestError(w, "could not read request body")
		return
	}
	doc, err := s.data.Import(data)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// ResetDocument handles POST /reset: discard everything. The next read
// synthesizes a fresh default document.
func (s *Server) ResetDocument(w http.ResponseWriter, _ *http.Request) {
	if err := s.data.Reset(); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
