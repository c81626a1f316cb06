package main

import "fmt"

// WrapOperationError wraps an error with a consistent "failed to
// {operation}: %w" format.
func WrapOperationError(operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}
