//go:build cgo

package hal

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"
)

type hostClipboard struct {
	once sync.Once
	err  error
}

func newHostClipboard() Clipboard {
	return &hostClipboard{}
}

func (c *hostClipboard) WriteImage(png []byte) error {
	c.once.Do(func() {
		if err := clipboard.Init(); err != nil {
			c.err = fmt.Errorf("clipboard: %w", err)
		}
	})
	if c.err != nil {
		return c.err
	}
	if len(png) == 0 {
		return fmt.Errorf("clipboard: empty image")
	}
	clipboard.Write(clipboard.FmtImage, png)
	return nil
}
