package rhi

import (
	"errors"
	"fmt"
)

// ErrDuplicateSwapchain is returned by NewSwapchain when a swapchain already
// exists for the given window.
var ErrDuplicateSwapchain = errors.New("rhi: a swapchain already exists for this window")

// errorf is a thin fmt.Errorf wrapper used by per-call operations (copies,
// binds, draws) that report validation failures as Go errors rather than
// through the logger, since these are returned directly to the caller on
// the same call that detected them.
func errorf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
