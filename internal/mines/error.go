package mines

import (
	"errors"
	"fmt"
)

var ErrInvalidParams = errors.New("invalid game params")

type ParamsError struct {
	Params GameParams
	reason string
}

// [*ParamsError] implements [error]
func (e *ParamsError) Error() string {
	return fmt.Sprintf("%s %s: %s", ErrInvalidParams, e.Params.Seed(), e.reason)
}

func (e *ParamsError) Unwrap() error {
	return ErrInvalidParams
}
