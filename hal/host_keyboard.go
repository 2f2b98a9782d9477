//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pollKeyboard translates this frame's ebiten key state into events.
func pollKeyboard(k *hostKeyboard) {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	if ctrl {
		if inpututil.IsKeyJustPressed(ebiten.KeyC) {
			k.emit(KeyEvent{Press: true, Rune: 0x03})
		}
		return
	}

	for _, r := range ebiten.AppendInputChars(nil) {
		if r == ' ' {
			continue
		}
		k.emit(KeyEvent{Press: true, Rune: r})
	}

	keys := []struct {
		key  ebiten.Key
		code KeyCode
	}{
		{ebiten.KeySpace, KeySpace},
		{ebiten.KeyTab, KeyTab},
		{ebiten.KeyEnter, KeyEnter},
		{ebiten.KeyEscape, KeyEscape},
	}
	for _, kk := range keys {
		if inpututil.IsKeyJustPressed(kk.key) {
			k.emit(KeyEvent{Code: kk.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(kk.key) {
			k.emit(KeyEvent{Code: kk.code, Press: false})
		}
	}
}
