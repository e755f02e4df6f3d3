package services

import (
	"errors"
	"fmt"
)

var (
	// ErrGenerationFailed covers every failure to produce a plan once the
	// constraints were accepted. Callers that do not care about the cause
	// only need errors.Is(err, ErrGenerationFailed).
	ErrGenerationFailed = errors.New("study plan generation failed")

	ErrUpstream          = fmt.Errorf("%w: upstream call failed", ErrGenerationFailed)
	ErrMalformedResponse = fmt.Errorf("%w: malformed model response", ErrGenerationFailed)
)
