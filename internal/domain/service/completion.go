package service

import "context"

// CompletionService turns a prompt into generated text.
type CompletionService interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
