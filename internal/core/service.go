package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ruipcf/consolida/internal/config"
	"github.com/ruipcf/consolida/internal/logging"
)

// BatchMode identifies which extraction pipeline produced a batch.
type BatchMode string

const (
	ModeColumns BatchMode = "columns"
	ModeRanges  BatchMode = "ranges"
)

// Batch holds a finished consolidation with its exported artifacts, kept in
// memory until the result TTL expires.
type Batch struct {
	ID        string
	Mode      BatchMode
	Result    *ConsolidatedResult
	CSV       []byte
	Workbook  []byte
	CreatedAt time.Time
}

// Service provides the core business logic for extraction batches.
type Service struct {
	cfg *config.Config

	mu      sync.RWMutex
	batches map[string]*Batch
}

// NewService creates a new Service instance.
func NewService(cfg *config.Config) *Service {
	return &Service{
		cfg:     cfg,
		batches: make(map[string]*Batch),
	}
}

// RequiredColumns returns the configured named-column extraction list.
func (s *Service) RequiredColumns() []string {
	return append([]string(nil), s.cfg.Extract.Columns...)
}

// ConsolidateColumns runs the named-column pipeline over a batch of files:
// each file is read, the required columns extracted and renamed, and the
// blocks concatenated with a provenance column. Per-file failures are
// collected; the batch fails only when no file succeeds.
func (s *Service) ConsolidateColumns(ctx context.Context, inputs []FileInput) (*Batch, error) {
	required := s.cfg.Extract.Columns
	blocks, errs := s.runPipeline(ctx, inputs, func(in FileInput, t *Table) (*Table, error) {
		return ExtractColumns(t, required)
	})

	cons := NewConsolidator()
	for i := range inputs {
		if errs[i] != nil {
			cons.AddError(inputs[i].Name, "", errs[i])
		} else {
			cons.Add(ExtractedBlock{File: inputs[i].Name, Table: blocks[i]})
		}
	}

	result, err := cons.FinalizeColumns()
	if err != nil {
		return &Batch{Mode: ModeColumns, Result: result}, err
	}
	return s.store(ctx, ModeColumns, result)
}

// ConsolidateRanges runs the coordinate-range pipeline: the same range is
// cut out of every file, tagged with the operator-supplied condition label,
// and folded into wide, long and summary outputs.
func (s *Service) ConsolidateRanges(ctx context.Context, inputs []FileInput, spec RangeSpec) (*Batch, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	blocks, errs := s.runPipeline(ctx, inputs, func(in FileInput, t *Table) (*Table, error) {
		return ExtractRange(t, spec)
	})

	cons := NewConsolidator()
	for i := range inputs {
		if errs[i] != nil {
			cons.AddError(inputs[i].Name, inputs[i].Condition, errs[i])
		} else {
			cons.Add(ExtractedBlock{File: inputs[i].Name, Condition: inputs[i].Condition, Table: blocks[i]})
		}
	}

	result, err := cons.FinalizeRanges()
	if err != nil {
		return &Batch{Mode: ModeRanges, Result: result}, err
	}
	return s.store(ctx, ModeRanges, result)
}

// runPipeline reads and extracts every input with bounded parallelism.
// Results and errors are stored by input position, so downstream
// consolidation preserves upload order regardless of completion order.
// A per-file failure never cancels its siblings.
func (s *Service) runPipeline(ctx context.Context, inputs []FileInput, extract func(FileInput, *Table) (*Table, error)) ([]*Table, []error) {
	blocks := make([]*Table, len(inputs))
	errs := make([]error, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Upload.MaxConcurrent)

	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			blocks[i], errs[i] = s.processFile(in, extract)
			return nil
		})
	}
	// Workers only report per-slot errors, so Wait cannot fail.
	g.Wait()

	return blocks, errs
}

// processFile runs a single file through read and extract.
func (s *Service) processFile(in FileInput, extract func(FileInput, *Table) (*Table, error)) (*Table, error) {
	if int64(len(in.Data)) > s.cfg.Upload.MaxFileSize {
		return nil, fmt.Errorf("file exceeds %dMB limit", s.cfg.Upload.MaxFileSize/(1024*1024))
	}

	t, err := ReadTable(in.Name, in.Data)
	if err != nil {
		return nil, err
	}
	return extract(in, t)
}

// store exports a finished result to both output formats and registers the
// batch for download until the TTL expires.
func (s *Service) store(ctx context.Context, mode BatchMode, result *ConsolidatedResult) (*Batch, error) {
	batch := &Batch{
		ID:        uuid.NewString(),
		Mode:      mode,
		Result:    result,
		CSV:       ExportCSV(result.Wide),
		CreatedAt: time.Now(),
	}

	var sheets []NamedSheet
	if mode == ModeColumns {
		sheets = []NamedSheet{{Name: "consolidado", Table: result.Wide}}
	} else {
		sheets = []NamedSheet{
			{Name: "wide", Table: result.Wide},
			{Name: "long", Table: result.Long},
			{Name: "resumo", Table: result.Summary},
		}
	}

	wb, err := ExportWorkbook(sheets)
	if err != nil {
		return nil, fmt.Errorf("export workbook: %w", err)
	}
	batch.Workbook = wb

	s.mu.Lock()
	s.batches[batch.ID] = batch
	s.mu.Unlock()
	s.cleanup(batch.ID, s.cfg.Extract.ResultTTL)

	logging.FromContext(ctx).Info("batch consolidated",
		"batch_id", batch.ID,
		"mode", mode,
		"files_ok", result.FilesOK,
		"files_failed", len(result.Errors),
		"rows", result.Wide.RowCount(),
	)

	return batch, nil
}

// GetBatch returns a stored batch by ID, or ErrBatchNotFound once it has
// expired.
func (s *Service) GetBatch(id string) (*Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.batches[id]
	if !ok {
		return nil, ErrBatchNotFound
	}
	return b, nil
}

// cleanup removes a batch from memory after the given delay.
func (s *Service) cleanup(id string, after time.Duration) {
	time.AfterFunc(after, func() {
		s.mu.Lock()
		delete(s.batches, id)
		s.mu.Unlock()
	})
}
