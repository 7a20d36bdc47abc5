package publisher

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonesrussell/content-publisher/internal/logger"
	"github.com/jonesrussell/content-publisher/internal/metrics"
	"github.com/jonesrussell/content-publisher/internal/models"
)

// BatchPublish publishes every content item through the full Publish flow
// with the batch's shared platform list and options, bounded by the
// request's concurrency permit count.
//
// Results preserve submission order. Stop-on-error is evaluated
// deterministically by index order: a failure at index j truncates the
// results after j and prevents items that have not yet started from being
// dispatched, even though items already in flight run to completion.
func (s *Service) BatchPublish(ctx context.Context, req *models.BatchPublishRequest) *models.BatchPublishResponse {
	start := time.Now()
	total := len(req.ContentItems)

	if total > s.cfg.Limits.MaxBatchSize {
		metrics.RecordBatch(false, total, time.Since(start))
		return &models.BatchPublishResponse{
			Success:         false,
			TotalItems:      total,
			SuccessfulItems: 0,
			FailedItems:     total,
			Errors:          []string{fmt.Sprintf("Batch size exceeds maximum of %d items", s.cfg.Limits.MaxBatchSize)},
		}
	}

	s.logger.Info("Batch publish started",
		logger.Int("total_items", total),
		logger.Strings("platforms", req.Platforms),
		logger.Int("concurrency", req.Concurrency),
		logger.Bool("stop_on_error", req.StopOnError),
	)

	results := make([]models.PublishResponse, total)

	// firstFailure holds the lowest failed index seen so far; stop-on-error
	// compares against it before starting new items.
	var firstFailure atomic.Int64
	firstFailure.Store(math.MaxInt64)

	sem := make(chan struct{}, req.Concurrency)
	var wg sync.WaitGroup

	dispatched := 0
	for i, content := range req.ContentItems {
		if req.StopOnError && firstFailure.Load() < int64(i) {
			break
		}

		// Acquiring in the submission loop keeps dispatch order equal to
		// index order and bounds in-flight items to the permit count.
		sem <- struct{}{}

		if req.StopOnError && firstFailure.Load() < int64(i) {
			<-sem
			break
		}

		dispatched++
		wg.Add(1)
		go func(i int, content *models.Content) {
			defer wg.Done()
			defer func() { <-sem }()

			resp := s.publishItem(ctx, i, content, req)
			results[i] = resp
			if !resp.Success {
				storeMinIndex(&firstFailure, int64(i))
			}
		}(i, content)
	}

	wg.Wait()

	resp := s.collectBatchResults(req, results, dispatched, total)
	now := time.Now().UTC()
	resp.CompletedAt = &now

	metrics.RecordBatch(resp.Success, total, time.Since(start))
	s.logger.Info("Batch publish completed",
		logger.Int("total_items", resp.TotalItems),
		logger.Int("successful_items", resp.SuccessfulItems),
		logger.Int("failed_items", resp.FailedItems),
		logger.Bool("success", resp.Success),
	)
	return resp
}

// publishItem runs one item through the full publish flow, converting a
// fault into a failed response at that index instead of aborting the
// batch.
func (s *Service) publishItem(ctx context.Context, index int, content *models.Content, req *models.BatchPublishRequest) (resp models.PublishResponse) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Batch item panicked",
				logger.Int("index", index),
				logger.Any("panic", r),
			)
			resp = models.PublishResponse{
				Success: false,
				Message: fmt.Sprintf("Error processing item %d: %v", index+1, r),
				Errors:  []string{fmt.Sprint(r)},
			}
		}
	}()

	result := s.Publish(ctx, &models.PublishRequest{
		Content:   content,
		Platforms: req.Platforms,
		Options:   req.Options,
	})
	return *result
}

// collectBatchResults scans completed results in original index order,
// applies the stop-on-error truncation, and computes the aggregate counts.
func (s *Service) collectBatchResults(req *models.BatchPublishRequest, results []models.PublishResponse, dispatched, total int) *models.BatchPublishResponse {
	kept := results[:dispatched]
	var errs []string

	if req.StopOnError {
		for i := range kept {
			if !kept[i].Success {
				kept = kept[:i+1]
				errs = append(errs, fmt.Sprintf("Stopped at item %d due to publishing failure", i+1))
				break
			}
		}
	}

	successful, failed := 0, 0
	for i := range kept {
		if kept[i].Success {
			successful++
		} else {
			failed++
		}
	}

	return &models.BatchPublishResponse{
		Success:         failed == 0,
		TotalItems:      total,
		SuccessfulItems: successful,
		FailedItems:     failed,
		Results:         kept,
		Errors:          errs,
	}
}

// storeMinIndex lowers the stored index to val if val is smaller.
func storeMinIndex(v *atomic.Int64, val int64) {
	for {
		current := v.Load()
		if current <= val {
			return
		}
		if v.CompareAndSwap(current, val) {
			return
		}
	}
}
