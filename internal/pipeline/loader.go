package pipeline

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/theirongolddev/fundboard/internal/model"
	"github.com/theirongolddev/fundboard/internal/source"
)

// LoadResult holds the output of loading one funding file. A failed load
// still carries a usable (empty) Dataset; Err says why it is empty.
type LoadResult struct {
	Dataset    model.Dataset
	Path       string
	Rows       int
	BadDates   int
	BadAmounts int
	LoadTime   time.Duration
	Err        error
}

// Load reads the funding CSV at path. It never returns nil and never panics
// on bad input: any fatal condition yields an empty Dataset and a non-nil Err.
func Load(path string) *LoadResult {
	start := time.Now()
	res := &LoadResult{Path: path}

	defer func() {
		if r := recover(); r != nil {
			res.Dataset = model.Dataset{}
			res.Rows, res.BadDates, res.BadAmounts = 0, 0, 0
			res.Err = fmt.Errorf("loading %s: %v", path, r)
		}
		res.LoadTime = time.Since(start)
		logLoad(res)
	}()

	pr := source.ParseFile(path)
	if pr.Err != nil {
		res.Err = fmt.Errorf("loading %s: %w", path, pr.Err)
		return res
	}

	res.Dataset = model.NewDataset(pr.Records)
	res.Rows = len(pr.Records)
	res.BadDates = pr.BadDates
	res.BadAmounts = pr.BadAmounts
	return res
}

func logLoad(res *LoadResult) {
	if res.Err != nil {
		slog.Info("dataset load failed", "path", res.Path, "err", res.Err)
		return
	}
	slog.Debug("dataset loaded",
		"path", res.Path,
		"rows", res.Rows,
		"bad_dates", res.BadDates,
		"bad_amounts", res.BadAmounts,
		"elapsed", res.LoadTime,
	)
}

// Failed reports whether the load hit a fatal error.
func (r *LoadResult) Failed() bool { return r.Err != nil }

// Empty reports whether there is nothing to show, for whatever reason.
func (r *LoadResult) Empty() bool { return r.Dataset.IsEmpty() }

// Warning is the display message for a failed load, or "" on success.
func (r *LoadResult) Warning() string {
	if r.Err == nil {
		return ""
	}
	return fmt.Sprintf("Error loading CSV: %v", r.Err)
}

// Success is the display message for a successful load.
func (r *LoadResult) Success() string {
	return fmt.Sprintf("Loaded %d startups!", r.Rows)
}
