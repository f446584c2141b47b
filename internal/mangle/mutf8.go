package mangle

// unit decoding for UTF-8 and modified UTF-8 (CESU-style surrogate halves,
// C0 80 for NUL). Malformed bytes decode as a single unit carrying the byte
// value so that mangling never fails.

const (
	surrHighMin = 0xD800
	surrHighMax = 0xDBFF
	surrLowMin  = 0xDC00
	surrLowMax  = 0xDFFF
	surrSelf    = 0x10000
)

// codeUnits is one decoded code point expressed as UTF-16 units.
// hi is zero for BMP code points; lo then holds the single unit.
type codeUnits struct {
	hi uint16
	lo uint16
}

func (c codeUnits) pair() bool { return c.hi != 0 }

func isCont(b byte) bool { return b&0xC0 == 0x80 }

// decode3 reads a 3-byte sequence at s[i:] and reports its 16-bit value.
func decode3(s string, i int) (uint16, bool) {
	if i+2 >= len(s) || s[i]&0xF0 != 0xE0 || !isCont(s[i+1]) || !isCont(s[i+2]) {
		return 0, false
	}
	return uint16(s[i]&0x0F)<<12 | uint16(s[i+1]&0x3F)<<6 | uint16(s[i+2]&0x3F), true
}

// nextUnits decodes the code point starting at s[i] and returns it with
// the number of bytes consumed.
func nextUnits(s string, i int) (codeUnits, int) {
	b := s[i]
	switch {
	case b < 0x80:
		return codeUnits{lo: uint16(b)}, 1

	case b&0xE0 == 0xC0:
		if i+1 < len(s) && isCont(s[i+1]) {
			return codeUnits{lo: uint16(b&0x1F)<<6 | uint16(s[i+1]&0x3F)}, 2
		}

	case b&0xF0 == 0xE0:
		u, ok := decode3(s, i)
		if !ok {
			break
		}
		// Modified UTF-8 spells supplementary characters as two
		// separately encoded surrogate halves.
		if u >= surrHighMin && u <= surrHighMax {
			if lo, ok := decode3(s, i+3); ok && lo >= surrLowMin && lo <= surrLowMax {
				return codeUnits{hi: u, lo: lo}, 6
			}
		}
		return codeUnits{lo: u}, 3

	case b&0xF8 == 0xF0:
		if i+3 < len(s) && isCont(s[i+1]) && isCont(s[i+2]) && isCont(s[i+3]) {
			cp := rune(b&0x07)<<18 | rune(s[i+1]&0x3F)<<12 | rune(s[i+2]&0x3F)<<6 | rune(s[i+3]&0x3F)
			if cp >= surrSelf && cp <= 0x10FFFF {
				cp -= surrSelf
				return codeUnits{
					hi: uint16(surrHighMin + (cp>>10)&0x3FF),
					lo: uint16(surrLowMin + cp&0x3FF),
				}, 4
			}
		}
	}

	return codeUnits{lo: uint16(b)}, 1
}
