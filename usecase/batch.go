package usecase

// BatchError records a single failed item of a batch operation.
type BatchError struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// BatchResult summarizes a batch operation. Items are processed
// independently, so a batch can succeed partially.
type BatchResult struct {
	SuccessCount int          `json:"success_count"`
	FailureCount int          `json:"failure_count"`
	Errors       []BatchError `json:"errors,omitempty"`
}

func (r *BatchResult) RecordSuccess() {
	r.SuccessCount++
}

func (r *BatchResult) RecordFailure(id string, err error) {
	r.FailureCount++
	r.Errors = append(r.Errors, BatchError{ID: id, Message: err.Error()})
}

// AllFailed reports whether every item in the batch failed. Only then is the
// batch reported as an overall failure; anything else is (partial) success.
func (r *BatchResult) AllFailed() bool {
	return r.FailureCount > 0 && r.SuccessCount == 0
}

// Total returns the number of processed items.
func (r *BatchResult) Total() int {
	return r.SuccessCount + r.FailureCount
}
