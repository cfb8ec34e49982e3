package logger

import (
	"context"

	"github.com/google/uuid"
)

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// WithOperation adds an operation name to the context.
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, ContextKeyOperation, operation)
}

// WithFile adds the file being processed to the context.
func WithFile(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, ContextKeyFile, path)
}

// GenerateRequestID generates a new request ID.
func GenerateRequestID() string {
	return uuid.NewString()
}
