package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"
)

type requestIDKey struct{}

// WithRequestID attaches a request id that ServiceLogger adds to every entry.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// ServiceLogger provides structured logging for service layer operations
type ServiceLogger struct {
	logger *slog.Logger
}

func NewServiceLogger(logger *slog.Logger, service string) *ServiceLogger {
	return &ServiceLogger{
		logger: logger.With("service", service),
	}
}

func (l *ServiceLogger) LogOperation(ctx context.Context, operation, actorID, resourceID, resourceType string, duration time.Duration, err error) {
	level := slog.LevelInfo
	status := "success"

	if err != nil {
		level = slog.LevelError
		status = "error"

		switch {
		case IsValidation(err) || IsBusinessRule(err):
			level = slog.LevelWarn
			status = "validation_error"
		case IsConflict(err):
			level = slog.LevelWarn
			status = "conflict"
		case IsNotFound(err):
			status = "not_found"
		}
	}

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("actor_id", actorID),
		slog.String("resource_id", resourceID),
		slog.String("resource_type", resourceType),
		slog.String("status", status),
		slog.Duration("duration", duration),
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))

		var validationErrs ValidationErrors
		var businessErr *BusinessRuleError
		if errors.As(err, &validationErrs) {
			attrs = append(attrs, slog.Int("validation_errors_count", len(validationErrs)))
		} else if errors.As(err, &businessErr) {
			attrs = append(attrs, slog.String("business_rule", businessErr.Rule))
		}

		if level == slog.LevelError {
			if pc, file, line, ok := runtime.Caller(2); ok {
				if fn := runtime.FuncForPC(pc); fn != nil {
					attrs = append(attrs,
						slog.String("caller_func", fn.Name()),
						slog.String("caller_file", file),
						slog.Int("caller_line", line),
					)
				}
			}
		}
	}

	if requestID, ok := ctx.Value(requestIDKey{}).(string); ok && requestID != "" {
		attrs = append(attrs, slog.String("request_id", requestID))
	}

	l.logger.LogAttrs(ctx, level, fmt.Sprintf("%s operation %s", operation, status), attrs...)
}

// ContextualLogger times one operation and logs its outcome.
type ContextualLogger struct {
	logger    *ServiceLogger
	ctx       context.Context
	operation string
	actorID   string
	startTime time.Time
}

func (l *ServiceLogger) WithOperation(ctx context.Context, operation, actorID string) *ContextualLogger {
	return &ContextualLogger{
		logger:    l,
		ctx:       ctx,
		operation: operation,
		actorID:   actorID,
		startTime: time.Now(),
	}
}

func (cl *ContextualLogger) LogResult(resourceID, resourceType string, err error) {
	cl.logger.LogOperation(cl.ctx, cl.operation, cl.actorID, resourceID, resourceType, time.Since(cl.startTime), err)
}
