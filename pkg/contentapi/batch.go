package contentapi

import (
	"context"
	"sync"
	"time"

	"github.com/fivetwenty-io/contentapi/internal/constants"
)

// BatchOperation is a single item lookup in a batch.
type BatchOperation struct {
	// ID labels the operation in its result.
	ID string
	// Target is an item id, or an absolute item URL when Absolute is set.
	Target   string
	Absolute bool
	// Callback, if set, is invoked with the result as soon as it is ready.
	// Callbacks may run concurrently.
	Callback func(result *BatchResult)
}

// BatchResult represents the result of a batch operation.
type BatchResult struct {
	ID       string
	Success  bool
	Response *ItemResponse
	Error    error
	Duration time.Duration
}

// BatchExecutor looks up many items concurrently through one client.
type BatchExecutor struct {
	client      *Client
	concurrency int
	timeout     time.Duration
	configure   func(*ItemQuery)
}

// NewBatchExecutor creates a new batch executor. A non-positive concurrency
// uses the default.
func NewBatchExecutor(client *Client, concurrency int) *BatchExecutor {
	if concurrency <= 0 {
		concurrency = constants.DefaultBatchConcurrency
	}

	return &BatchExecutor{
		client:      client,
		concurrency: concurrency,
		timeout:     constants.DefaultHTTPTimeout,
	}
}

// SetTimeout sets the timeout applied to each lookup.
func (b *BatchExecutor) SetTimeout(timeout time.Duration) {
	b.timeout = timeout
}

// SetQueryOptions registers fn to configure every item query before it is
// issued, e.g. to request fields or tags.
func (b *BatchExecutor) SetQueryOptions(fn func(*ItemQuery)) {
	b.configure = fn
}

// Execute runs the operations and returns their results in input order.
// Individual failures are reported per result; the returned error is only
// set when ctx ends before every operation ran.
func (b *BatchExecutor) Execute(ctx context.Context, operations []BatchOperation) ([]BatchResult, error) {
	results := make([]BatchResult, len(operations))

	var waitGroup sync.WaitGroup

	semaphore := make(chan struct{}, b.concurrency)

	for index, operation := range operations {
		waitGroup.Add(1)

		go func() {
			defer waitGroup.Done()

			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				results[index] = BatchResult{ID: operation.ID, Error: ctx.Err()}

				return
			}

			defer func() { <-semaphore }()

			opCtx, cancel := context.WithTimeout(ctx, b.timeout)
			defer cancel()

			start := time.Now()
			result := b.executeOperation(opCtx, operation)
			result.Duration = time.Since(start)
			results[index] = *result

			if operation.Callback != nil {
				operation.Callback(result)
			}
		}()
	}

	waitGroup.Wait()

	return results, ctx.Err()
}

func (b *BatchExecutor) executeOperation(ctx context.Context, operation BatchOperation) *BatchResult {
	query := b.client.Item()
	if operation.Absolute {
		query.WithTargetURL(operation.Target)
	} else {
		query.WithItemID(operation.Target)
	}

	if b.configure != nil {
		b.configure(query)
	}

	response, err := query.Query(ctx)

	return &BatchResult{
		ID:       operation.ID,
		Success:  err == nil,
		Response: response,
		Error:    err,
	}
}

// BatchBuilder helps build batch operations.
type BatchBuilder struct {
	operations []BatchOperation
}

// NewBatchBuilder creates a new batch builder.
func NewBatchBuilder() *BatchBuilder {
	return &BatchBuilder{
		operations: make([]BatchOperation, 0),
	}
}

// AddItemID adds a lookup by item id.
func (b *BatchBuilder) AddItemID(id, itemID string) *BatchBuilder {
	return b.AddOperation(BatchOperation{ID: id, Target: itemID})
}

// AddItemURL adds a lookup by absolute item URL.
func (b *BatchBuilder) AddItemURL(id, itemURL string) *BatchBuilder {
	return b.AddOperation(BatchOperation{ID: id, Target: itemURL, Absolute: true})
}

// AddOperation adds a custom operation.
func (b *BatchBuilder) AddOperation(operation BatchOperation) *BatchBuilder {
	b.operations = append(b.operations, operation)

	return b
}

// Build returns the built operations.
func (b *BatchBuilder) Build() []BatchOperation {
	return b.operations
}
