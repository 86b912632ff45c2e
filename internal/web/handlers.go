package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ruipcf/consolida/internal/core"
)

// multipartMemory is the in-memory buffer limit for multipart parsing;
// larger parts spill to temporary files.
const multipartMemory = 32 << 20

// batchResponse summarizes a finished batch for API clients.
type batchResponse struct {
	BatchID   string           `json:"batch_id"`
	Mode      string           `json:"mode"`
	FilesOK   int              `json:"files_ok"`
	Rows      int              `json:"rows"`
	Columns   []string         `json:"columns"`
	Errors    []core.FileError `json:"errors,omitempty"`
	CSVPath   string           `json:"csv_path"`
	XLSXPath  string           `json:"xlsx_path"`
	CreatedAt time.Time        `json:"created_at"`
}

// handleIndex serves the embedded upload page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

// handleColumns returns the configured required-column list so clients can
// show the operator what every uploaded file must contain.
func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string][]string{"columns": s.service.RequiredColumns()})
}

// handleConsolidate processes a named-column consolidation batch: every
// uploaded file must contain the configured columns; the extracted columns
// are concatenated with a provenance column.
func (s *Server) handleConsolidate(w http.ResponseWriter, r *http.Request) {
	inputs, err := s.readUploads(w, r, nil)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	batch, err := s.service.ConsolidateColumns(r.Context(), inputs)
	if err != nil {
		s.respondBatchError(w, r, batch, err)
		return
	}
	writeJSON(w, newBatchResponse(batch))
}

// handleRanges processes a range consolidation batch: the same cell range is
// extracted from every uploaded file and tagged with its condition label.
func (s *Server) handleRanges(w http.ResponseWriter, r *http.Request) {
	inputs, err := s.readUploads(w, r, func(i int, name string) string {
		conditions := r.MultipartForm.Value["conditions"]
		if i < len(conditions) && strings.TrimSpace(conditions[i]) != "" {
			return strings.TrimSpace(conditions[i])
		}
		// Default condition label: file name without its suffix
		return strings.TrimSuffix(name, filepath.Ext(name))
	})
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	spec, err := parseRangeSpec(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	batch, err := s.service.ConsolidateRanges(r.Context(), inputs, spec)
	if err != nil {
		s.respondBatchError(w, r, batch, err)
		return
	}
	writeJSON(w, newBatchResponse(batch))
}

// handleBatchInfo returns the summary of a finished batch.
func (s *Server) handleBatchInfo(w http.ResponseWriter, r *http.Request) {
	batch, err := s.service.GetBatch(chi.URLParam(r, "batchID"))
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}
	writeJSON(w, newBatchResponse(batch))
}

// handleBatchCSV serves the consolidated delimited-text artifact.
func (s *Server) handleBatchCSV(w http.ResponseWriter, r *http.Request) {
	batch, err := s.service.GetBatch(chi.URLParam(r, "batchID"))
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="consolidado.csv"`)
	w.Write(batch.CSV)
}

// handleBatchWorkbook serves the consolidated spreadsheet artifact.
func (s *Server) handleBatchWorkbook(w http.ResponseWriter, r *http.Request) {
	batch, err := s.service.GetBatch(chi.URLParam(r, "batchID"))
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="consolidado.xlsx"`)
	w.Write(batch.Workbook)
}

// readUploads collects the multipart "files" parts in upload order. The
// optional condition callback labels each file for range mode.
func (s *Server) readUploads(w http.ResponseWriter, r *http.Request, condition func(i int, name string) string) ([]core.FileInput, error) {
	maxBody := s.cfg.Upload.MaxFileSize * int64(s.cfg.Upload.MaxFiles)
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return nil, fmt.Errorf("file exceeds request size limit or invalid form: %w", err)
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		return nil, errors.New("no file provided")
	}
	if len(files) > s.cfg.Upload.MaxFiles {
		return nil, fmt.Errorf("too many files: %d exceeds the limit of %d", len(files), s.cfg.Upload.MaxFiles)
	}

	inputs := make([]core.FileInput, 0, len(files))
	for i, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(io.LimitReader(f, s.cfg.Upload.MaxFileSize+1))
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
		}

		in := core.FileInput{Name: fh.Filename, Data: data}
		if condition != nil {
			in.Condition = condition(i, fh.Filename)
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// respondBatchError distinguishes the all-files-failed outcome, which still
// carries the per-file error list, from plain request errors.
func (s *Server) respondBatchError(w http.ResponseWriter, r *http.Request, batch *core.Batch, err error) {
	if errors.Is(err, core.ErrNothingConsolidated) && batch != nil && batch.Result != nil {
		userMsg := core.MapError(err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(struct {
			ErrorResponse
			FileErrors []core.FileError `json:"file_errors"`
		}{
			ErrorResponse: ErrorResponse{
				Error:   userMsg.Message,
				Message: userMsg.Message,
				Action:  userMsg.Action,
				Code:    userMsg.Code,
			},
			FileErrors: batch.Result.Errors,
		})
		return
	}
	s.respondError(w, r, err, http.StatusBadRequest)
}

// parseRangeSpec reads the range parameters from the request form.
func parseRangeSpec(r *http.Request) (core.RangeSpec, error) {
	startRow, err := strconv.Atoi(strings.TrimSpace(r.FormValue("start_row")))
	if err != nil {
		return core.RangeSpec{}, &core.InvalidRangeError{Reason: "start_row is not a number"}
	}
	endRow, err := strconv.Atoi(strings.TrimSpace(r.FormValue("end_row")))
	if err != nil {
		return core.RangeSpec{}, &core.InvalidRangeError{Reason: "end_row is not a number"}
	}

	header := false
	switch strings.ToLower(strings.TrimSpace(r.FormValue("header"))) {
	case "1", "true", "on", "yes":
		header = true
	}

	return core.RangeSpec{
		StartCol:  strings.TrimSpace(r.FormValue("start_col")),
		EndCol:    strings.TrimSpace(r.FormValue("end_col")),
		StartRow:  startRow,
		EndRow:    endRow,
		HeaderRow: header,
	}, nil
}

// newBatchResponse builds the API summary for a batch.
func newBatchResponse(b *core.Batch) batchResponse {
	return batchResponse{
		BatchID:   b.ID,
		Mode:      string(b.Mode),
		FilesOK:   b.Result.FilesOK,
		Rows:      b.Result.Wide.RowCount(),
		Columns:   b.Result.Wide.Columns,
		Errors:    b.Result.Errors,
		CSVPath:   "/api/batch/" + b.ID + "/csv",
		XLSXPath:  "/api/batch/" + b.ID + "/xlsx",
		CreatedAt: b.CreatedAt,
	}
}
