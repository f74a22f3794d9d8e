package bars

import (
	"errors"
	"fmt"
)

var (
	ErrConflictingModes = errors.New("group by and stack by can not be used together")
	ErrAmbiguousAxis    = errors.New("group by and stack by need exactly one of x or y")
	ErrNoData           = errors.New("no data submitted")
	ErrNoScales         = errors.New("scales not computed")
	ErrNotBanded        = errors.New("scale is not banded")
	ErrNoMark           = errors.New("mark not found")
)

type ConfigError struct {
	Option string
	Reason string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("option %s: %s", e.Option, e.Reason)
}
