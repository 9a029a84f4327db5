package charset

// basicChars is the CEA-608 standard character set: ASCII with a handful
// of positions replaced by accented Latin characters and special glyphs.
var basicChars = map[uint8]rune{
	0x20: ' ', 0x21: '!', 0x22: '"', 0x23: '#', 0x24: '$', 0x25: '%',
	0x26: '&', 0x27: '\'', 0x28: '(', 0x29: ')', 0x2A: 'á', 0x2B: '+',
	0x2C: ',', 0x2D: '-', 0x2E: '.', 0x2F: '/', 0x3A: ':', 0x3B: ';',
	0x3C: '<', 0x3D: '=', 0x3E: '>', 0x3F: '?', 0x40: '@', 0x5B: '[',
	0x5C: 'é', 0x5D: ']', 0x5E: 'í', 0x5F: 'ó', 0x60: 'ú', 0x7B: 'ç',
	0x7C: '÷', 0x7D: 'Ñ', 0x7E: 'ñ', 0x7F: ErrorGlyph,
}

func init() {
	for b := uint8(0x30); b < 0x3A; b++ {
		basicChars[b] = rune('0' + (b - 0x30))
	}
	for b := uint8(0x41); b < 0x5B; b++ {
		basicChars[b] = rune('A' + (b - 0x41))
	}
	for b := uint8(0x61); b < 0x7B; b++ {
		basicChars[b] = rune('a' + (b - 0x61))
	}
}

// specialChars are the two-byte "special characters" set, selected by
// byte1 0x11 (CC1) / 0x19 (CC2) with byte2 in 0x30-0x3F.
var specialChars = map[uint8]rune{
	0x30: '®', 0x31: '°', 0x32: '½', 0x33: '¿', 0x34: '™', 0x35: '¢',
	0x36: '£', 0x37: '♪', 0x38: 'à', 0x39: ' ', 0x3A: 'è', 0x3B: 'â',
	0x3C: 'ê', 0x3D: 'î', 0x3E: 'ô', 0x3F: 'û',
}

// extendedSpanishFrench is selected by byte1 0x12 (CC1) / 0x1A (CC2).
var extendedSpanishFrench = map[uint8]rune{
	0x20: 'Á', 0x21: 'É', 0x22: 'Ó', 0x23: 'Ú', 0x24: 'Ü', 0x25: 'ü',
	0x26: '\'', 0x27: '¡', 0x28: '*', 0x29: '\'', 0x2A: '-', 0x2B: '©',
	0x2C: 'S', 0x2D: '·', 0x2E: '"', 0x2F: '"', 0x30: 'À', 0x31: 'Â',
	0x32: 'Ç', 0x33: 'È', 0x34: 'Ê', 0x35: 'Ë', 0x36: 'ë', 0x37: 'Î',
	0x38: 'Ï', 0x39: 'ï', 0x3A: 'Ô', 0x3B: 'Ù', 0x3C: 'ù', 0x3D: 'Û',
	0x3E: '«', 0x3F: '»',
}

// extendedPortugueseGermanDanish is selected by byte1 0x13 (CC1) / 0x1B (CC2).
var extendedPortugueseGermanDanish = map[uint8]rune{
	0x20: 'Ã', 0x21: 'ã', 0x22: 'Í', 0x23: 'Ì', 0x24: 'ì', 0x25: 'Ò',
	0x26: 'ò', 0x27: 'Õ', 0x28: 'õ', 0x29: '{', 0x2A: '}', 0x2B: '\\',
	0x2C: '^', 0x2D: '_', 0x2E: '¦', 0x2F: '~', 0x30: 'Ä', 0x31: 'ä',
	0x32: 'Ö', 0x33: 'ö', 0x34: 'ß', 0x35: '¥', 0x36: '¤', 0x37: '│',
	0x38: 'Å', 0x39: 'å', 0x3A: 'Ø', 0x3B: 'ø', 0x3C: '┌', 0x3D: '┐',
	0x3E: '└', 0x3F: '┘',
}

// Text reports the printable interpretation of a byte pair that is not a
// control code. ok is false if the pair doesn't map to a standard,
// special, or extended character.
func Text(b1, b2 uint8) (string, bool) {
	switch b1 {
	case 0x11, 0x19:
		if b2 >= 0x30 && b2 <= 0x3F {
			return string(specialChars[b2]), true
		}
	case 0x12, 0x1A:
		if b2 >= 0x20 && b2 <= 0x3F {
			return string(extendedSpanishFrench[b2]), true
		}
	case 0x13, 0x1B:
		if b2 >= 0x20 && b2 <= 0x3F {
			return string(extendedPortugueseGermanDanish[b2]), true
		}
	}
	c1, ok1 := basicChars[b1]
	if !ok1 {
		return "", false
	}
	if b2 == 0 {
		return string(c1), true
	}
	c2, ok2 := basicChars[b2]
	if !ok2 {
		return string(c1), true
	}
	return string(c1) + string(c2), true
}
