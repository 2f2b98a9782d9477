package font8x16

import (
	"fmt"
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Glyph geometry. Glyphs are stored as 8 rows of 8 column bits and drawn at
// Scale, so every printable rune covers a Width x Height cell.
const (
	Rows    = 8
	Columns = 8
	Scale   = 2
	Width   = Columns * Scale
	Height  = Rows * Scale

	// Advance is the horizontal pen step per glyph.
	Advance = 16
	// LineHeight is the vertical pen step per newline.
	LineHeight = 20

	First = 32
	Last  = First + glyphCount - 1
)

const glyphCount = 96

// packed holds one digit-offset character per glyph row: row value = c - '0',
// bit n set means column n is lit.
const packed = "" +
	"0000000044444040::000000::O:O::04N5>D?403C842IH02552E9F084200000" +
	"84222480248884204E>4>E40044O440000000442000O00000000066000@84210" +
	">AIECA>0465444O0>A@@<3O0>A@<@A>0<:999O80O1?@@A>0>1?AAA>0OA@88440" +
	">AA>AA>0>AAAN@>000400400004004428421248000O0O000248@8420>AA84040" +
	">A@FEE>0>AAAOAA0?BB>BB?0>A111A>0?BBBBB?0O11O11O0O11O1110>A11IAN0" +
	"AAAOAAA0>44444>0L8888960A95359A0111111O0AKKEEEA0ACCEIIA0>AAAAA>0" +
	"?AAA?110>AAAE9F0?AAA?9A0>A1>@A>0O4444440AAAAAA>0AA:::440AAEEE::0" +
	"AA:4:AA0AA:44440O@8421O0>22222>0001248@0>88888>04:A00000000000O0" +
	"2480000000>@NA^011=CAA?000>A1A>0@@FIAAN000>AO1>0<22O222000^AAN@>" +
	"11=CAAA04064444080<8888622B:6:B0644444<000?EEEE000?AAAA000>AAA>0" +
	"00>AA?1100>AAN@@00=C111000N1>@?022O222<0009999F000AA::4000AEE::0" +
	"00A:4:A000AA::4300O842O0H44244H04444444034484430002E800000000000"

// Glyph is one decoded 8x8 bitmap. Bit c of row r is column c.
type Glyph [Rows]uint8

// Bit reports whether the stored pixel at (row, col) is lit.
func (g Glyph) Bit(row, col int) bool {
	if row < 0 || row >= Rows || col < 0 || col >= Columns {
		return false
	}
	return g[row]&(1<<uint(col)) != 0
}

// Lit reports whether the scaled pixel at (x, y) inside the Width x Height cell is lit.
func (g Glyph) Lit(x, y int) bool {
	if x < 0 || y < 0 {
		return false
	}
	return g.Bit(y/Scale, x/Scale)
}

var table = mustDecode(packed)

func mustDecode(s string) [glyphCount]Glyph {
	t, err := decode(s)
	if err != nil {
		panic(err)
	}
	return t
}

func decode(s string) ([glyphCount]Glyph, error) {
	var t [glyphCount]Glyph
	if len(s) != glyphCount*Rows {
		return t, fmt.Errorf("font8x16: packed table is %d bytes, want %d", len(s), glyphCount*Rows)
	}
	for i := 0; i < len(s); i++ {
		v := int(s[i]) - '0'
		if v < 0 || v >= 1<<Columns {
			return t, fmt.Errorf("font8x16: invalid row byte %q at %d", s[i], i)
		}
		t[i/Rows][i%Rows] = uint8(v)
	}
	return t, nil
}

// Lookup returns the glyph for r, or false if r has no glyph.
func Lookup(r rune) (Glyph, bool) {
	if r < First || r > Last {
		return Glyph{}, false
	}
	return table[r-First], true
}

// Font is the 8x16 scope overlay font (8x8 bitmaps drawn at 2x).
//
// It implements tinyfont.Fonter. The glyph origin is the top-left corner of
// the cell, not a baseline. Glyphs are returned by value, so the font is safe
// for concurrent use.
var Font tinyfont.Fonter = font{}

type font struct{}

func (font) GetYAdvance() uint8 { return LineHeight }

func (font) GetGlyph(r rune) tinyfont.Glypher {
	g, ok := Lookup(r)
	return glyph{r: r, bits: g, ok: ok}
}

type glyph struct {
	r    rune
	bits Glyph
	ok   bool
}

func (g glyph) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	if !g.ok {
		return
	}
	for sy := 0; sy < Height; sy++ {
		row := g.bits[sy/Scale]
		if row == 0 {
			continue
		}
		for sx := 0; sx < Width; sx++ {
			if row&(1<<uint(sx/Scale)) == 0 {
				continue
			}
			display.SetPixel(x+int16(sx), y+int16(sy), c)
		}
	}
}

func (g glyph) Info() tinyfont.GlyphInfo {
	if !g.ok {
		return tinyfont.GlyphInfo{Rune: g.r}
	}
	return tinyfont.GlyphInfo{
		Rune:     g.r,
		Width:    Width,
		Height:   Height,
		XAdvance: Advance,
	}
}
