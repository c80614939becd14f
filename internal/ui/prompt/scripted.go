package prompt

import (
	"context"

	"github.com/raphi011/fw/internal/engine"
)

// Scripted answers every question without a terminal. Confirmations take
// their default unless AssumeYes is set; selections and text take their
// defaults.
type Scripted struct {
	AssumeYes bool
}

var _ engine.Prompter = Scripted{}

func (s Scripted) Confirm(ctx context.Context, req engine.ConfirmRequest) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return s.AssumeYes || req.Default, nil
}

func (s Scripted) Select(ctx context.Context, req engine.SelectRequest) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}
	if req.Default < 0 || req.Default >= len(req.Options) {
		return -1, engine.ErrCancelled
	}
	return req.Default, nil
}

// Input returns req.Default, which may be empty. Callers decide whether
// an empty answer is acceptable.
func (s Scripted) Input(ctx context.Context, req engine.InputRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return req.Default, nil
}
