//go:build rp2350

package main

import "machine"

// boardUniqueID12 derives the 12-hex-character board-unique-id serial
// string from the RP2350's factory-programmed flash unique ID,
// truncated to 6 bytes / 12 hex digits.
func boardUniqueID12() string {
	id, err := machine.UniqueID()
	if err != nil {
		return "000000000000"
	}
	const hex = "0123456789abcdef"
	buf := make([]byte, 12)
	for i := 0; i < 6 && i < len(id); i++ {
		buf[i*2] = hex[id[i]>>4]
		buf[i*2+1] = hex[id[i]&0xf]
	}
	return string(buf)
}
