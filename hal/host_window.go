//go:build cgo

package hal

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"wavescope/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// RunWindow starts a desktop window that displays the framebuffer and forwards keyboard input.
// It blocks until the window closes or the app step returns ErrStop.
func RunWindow(newApp func(HAL) func() error, cfg WindowConfig) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	h := newHostHAL()
	step := newApp(h)

	g := &hostGame{h: h, step: step, hud: cfg.HUD}
	ebiten.SetWindowTitle("wavescope (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*cfg.Scale, h.fb.height*cfg.Scale)
	ebiten.SetTPS(60)
	err := ebiten.RunGame(g)
	if errors.Is(err, ErrStop) {
		return nil
	}
	return err
}

type hostGame struct {
	h       *hostHAL
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error
	hud     bool
	frames  uint64
}

func (g *hostGame) Update() error {
	pollKeyboard(g.h.kbd)
	g.h.t.step(1)
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.width || g.img.Bounds().Dy() != fb.height {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	g.frames = fb.snapshot(g.scratch)
	toRGBA(g.img.Pix, g.scratch, fb.format)

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)

	if g.hud {
		line := fmt.Sprintf("TPS %.1f  FPS %.1f  frames %d", ebiten.ActualTPS(), ebiten.ActualFPS(), g.frames)
		w := text.BoundString(basicfont.Face7x13, line).Dx()
		text.Draw(screen, line, basicfont.Face7x13, fb.width-w-8, 20, color.RGBA{R: 0x4a, G: 0xdf, B: 0x6a, A: 0xff})
	}
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
