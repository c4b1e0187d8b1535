package brew

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput indicates invalid brewing record input.
	ErrInvalidInput = errors.New("invalid brew input")
	// ErrUnknownBean indicates the record references a bean that doesn't exist.
	ErrUnknownBean = fmt.Errorf("%w: bean does not exist", ErrInvalidInput)
)
