package batch

import (
	"sync"

	"github.com/google/uuid"

	"Beltline/internal/calc/conveyor"
	errs "Beltline/internal/errors"
	"Beltline/internal/material"
)

// MaxItems bounds a single batch.
const MaxItems = 500

type Item struct {
	Material string `json:"material"`
	conveyor.Spec
}

type ItemResult struct {
	Index  int                    `json:"index"`
	Result *conveyor.DesignResult `json:"result,omitempty"`
	Status *conveyor.Status       `json:"status,omitempty"`
	Error  string                 `json:"error,omitempty"`
}

type Result struct {
	JobID   uuid.UUID    `json:"job_id"`
	OK      int          `json:"ok"`
	Failed  int          `json:"failed"`
	Results []ItemResult `json:"results"`
}

// Evaluate runs every item in parallel. Results keep the input order; an
// item that fails is reported in place and does not stop the others.
func Evaluate(cat *material.Catalog, items []Item) (Result, error) {
	if len(items) == 0 {
		return Result{}, errs.Wrap(errs.ErrInvalidInput, "no items")
	}
	if len(items) > MaxItems {
		return Result{}, errs.Wrapf(errs.ErrInvalidInput, "%d items, at most %d per batch", len(items), MaxItems)
	}

	out := Result{JobID: uuid.New(), Results: make([]ItemResult, len(items))}
	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out.Results[i] = evaluate(cat, i, item)
		}()
	}
	wg.Wait()

	for _, r := range out.Results {
		if r.Error != "" {
			out.Failed++
		} else {
			out.OK++
		}
	}
	return out, nil
}

func evaluate(cat *material.Catalog, i int, item Item) ItemResult {
	mat, err := cat.Lookup(item.Material)
	if err != nil {
		return ItemResult{Index: i, Error: err.Error()}
	}
	res, err := conveyor.Evaluate(mat, item.Spec)
	if err != nil {
		return ItemResult{Index: i, Error: err.Error()}
	}
	st := conveyor.Assess(res)
	return ItemResult{Index: i, Result: &res, Status: &st}
}
