//go:build tinygo

package player

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ws2812"
)

// NewWS2812Render returns a RenderFunc driving one WS2812 pixel per
// player on a single data pin, in player index order. Rendering writes
// the whole strip on every call since WS2812 has no per-pixel update.
func NewWS2812Render(pin machine.Pin, playerCount int) RenderFunc {
	strip := ws2812.New(pin)
	pixels := make([]color.RGBA, playerCount)

	return func(player uint8, r, g, b uint8, on bool) {
		if int(player) >= len(pixels) {
			return
		}
		if on {
			pixels[player] = color.RGBA{R: r, G: g, B: b, A: 255}
		} else {
			pixels[player] = color.RGBA{}
		}
		strip.WriteColors(pixels)
	}
}
