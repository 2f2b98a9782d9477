package plot

import "errors"

var (
	// ErrNonFiniteSample reports a NaN or infinite value passed to Push.
	ErrNonFiniteSample = errors.New("plot: non-finite sample")
	// ErrInvalidSurfaceSize reports a surface smaller than MinWidth x MinHeight.
	ErrInvalidSurfaceSize = errors.New("plot: invalid surface size")
	// ErrPixelFormat reports a framebuffer that is not XRGB8888.
	ErrPixelFormat = errors.New("plot: unsupported pixel format")
)
