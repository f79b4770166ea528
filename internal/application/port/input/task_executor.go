package input

import "context"

type ExecuteResult struct {
	FinalAnswer string
	Iterations  int
}

// TaskExecutor runs one natural-language task through the LLM tool loop.
type TaskExecutor interface {
	Execute(ctx context.Context, task string) (*ExecuteResult, error)
}
