package usbmode

import "padcore/ioiface"

// Hat values for the 8-direction + center convention used by HID-style
// modes. XInput keeps the d-pad as four raw bits instead and
// does not use this encoder.
const (
	HatUp = iota
	HatUpRight
	HatRight
	HatDownRight
	HatDown
	HatDownLeft
	HatLeft
	HatUpLeft
	HatCenter
)

// EncodeDPadHat converts the four abstract d-pad bits into a hat byte.
// Total on all 16 subsets of {U,D,L,R}; opposite-pair presses (e.g. U+D)
// collapse to HatCenter.
func EncodeDPadHat(buttons uint32) uint8 {
	up := buttons&ioiface.BtnDPadUp != 0
	down := buttons&ioiface.BtnDPadDown != 0
	left := buttons&ioiface.BtnDPadLeft != 0
	right := buttons&ioiface.BtnDPadRight != 0

	if up && down {
		up, down = false, false
	}
	if left && right {
		left, right = false, false
	}

	switch {
	case up && right:
		return HatUpRight
	case up && left:
		return HatUpLeft
	case down && right:
		return HatDownRight
	case down && left:
		return HatDownLeft
	case up:
		return HatUp
	case down:
		return HatDown
	case left:
		return HatLeft
	case right:
		return HatRight
	default:
		return HatCenter
	}
}
