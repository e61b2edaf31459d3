package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"propertybook/internal/core"
	"propertybook/pkg/domain"
)

// Feedback renders err as the message shown to the user.
func Feedback(err error) string {
	var (
		dup     domain.DuplicateEntityError
		missing domain.EntityNotFoundError
		ref     domain.ReferenceNotFoundError
		invalid domain.InvalidArgumentError
		blocked domain.RuleViolationError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &dup):
		return fmt.Sprintf("This %s already exists in the list", dup.Entity)
	case errors.As(err, &missing):
		return fmt.Sprintf("The %s is no longer in the list", missing.Entity)
	case errors.As(err, &ref):
		return fmt.Sprintf("The %s ID %s does not exist", ref.Target, ref.ID)
	case errors.As(err, &invalid):
		if invalid.Field == "index" {
			return "The index provided is invalid"
		}
		return "Invalid command: " + invalid.Error()
	case errors.As(err, &blocked):
		return "Rejected: " + blocked.Error()
	}
	return "Unexpected error: " + err.Error()
}

// Executor runs commands against one model and logs their outcome.
type Executor struct {
	model  *core.Model
	logger *slog.Logger
}

// NewExecutor binds an executor to m. A nil logger discards output.
func NewExecutor(m *core.Model, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Executor{model: m, logger: logger}
}

// Run decodes and executes a JSON request. Failures are returned together
// with a Result carrying their user-facing feedback.
func (e *Executor) Run(ctx context.Context, data []byte) (Result, error) {
	cmd, err := DecodeRequest(data)
	if err != nil {
		e.logger.Info("command rejected", "error", err)
		return Result{Feedback: Feedback(err)}, err
	}
	return e.Execute(ctx, cmd)
}

// Execute runs a built command.
func (e *Executor) Execute(ctx context.Context, cmd Command) (Result, error) {
	res, err := cmd.Execute(ctx, e.model)
	if err != nil {
		e.logger.Info("command failed", "command", fmt.Sprintf("%T", cmd), "error", err)
		return Result{Feedback: Feedback(err)}, err
	}
	e.logger.Debug("command executed", "command", fmt.Sprintf("%T", cmd), "warnings", len(res.Warnings))
	return res, nil
}
