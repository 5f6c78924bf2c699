package gcr

// nibbleToGCR is the 4-bit to 5-bit GCR encode table. Index is the source
// nibble (0..15); value is the 5-bit group right-justified in the byte.
var nibbleToGCR = [16]byte{
	0x0a, 0x0b, 0x12, 0x13,
	0x0e, 0x0f, 0x16, 0x17,
	0x09, 0x19, 0x1a, 0x1b,
	0x0d, 0x1d, 0x1e, 0x15,
}

// gcrDecodeHigh/gcrDecodeLow map a 5-bit group (index 0..31) to the
// decoded nibble placed in the high or low half of a byte. Invalid groups
// map to 0xff, so an output byte with either group invalid decodes as
// 0xff; the Sector Parser treats a resulting 0xff byte as ordinary data
// to be checksum-validated, not a hard failure.
var gcrDecodeHigh = [32]byte{
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0x80, 0x00, 0x10, 0xff, 0xc0, 0x40, 0x50,
	0xff, 0xff, 0x20, 0x30, 0xff, 0xf0, 0x60, 0x70,
	0xff, 0x90, 0xa0, 0xb0, 0xff, 0xd0, 0xe0, 0xff,
}

var gcrDecodeLow = [32]byte{
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0x08, 0x00, 0x01, 0xff, 0x0c, 0x04, 0x05,
	0xff, 0xff, 0x02, 0x03, 0xff, 0x0f, 0x06, 0x07,
	0xff, 0x09, 0x0a, 0x0b, 0xff, 0x0d, 0x0e, 0xff,
}

// Encode4to5 bit-packs four source bytes into a 5-byte GCR group,
// big-endian within each output byte. dst must have length >= 5, src
// length >= 4.
func Encode4to5(src []byte, dst []byte) {
	_ = src[3]
	_ = dst[4]

	dst[0] = nibbleToGCR[src[0]>>4] << 3
	dst[0] |= nibbleToGCR[src[0]&0x0f] >> 2

	dst[1] = nibbleToGCR[src[0]&0x0f] << 6
	dst[1] |= nibbleToGCR[src[1]>>4] << 1
	dst[1] |= nibbleToGCR[src[1]&0x0f] >> 4

	dst[2] = nibbleToGCR[src[1]&0x0f] << 4
	dst[2] |= nibbleToGCR[src[2]>>4] >> 1

	dst[3] = nibbleToGCR[src[2]>>4] << 7
	dst[3] |= nibbleToGCR[src[2]&0x0f] << 2
	dst[3] |= nibbleToGCR[src[3]>>4] >> 3

	dst[4] = nibbleToGCR[src[3]>>4] << 5
	dst[4] |= nibbleToGCR[src[3]&0x0f]
}

// Decode5to4 is the inverse of Encode4to5: it never fails, producing 0xff
// for any output byte with a 5-bit group that is not one of the 16 valid
// GCR codes. dst must have length >= 4, src length >= 5.
func Decode5to4(src []byte, dst []byte) {
	_ = src[4]
	_ = dst[3]

	hi := gcrDecodeHigh[src[0]>>3]
	lo := gcrDecodeLow[((uint16(src[0])<<2)|(uint16(src[1])>>6))&0x1f]
	dst[0] = hi | lo

	hi = gcrDecodeHigh[(src[1]>>1)&0x1f]
	lo = gcrDecodeLow[((uint16(src[1])<<4)|(uint16(src[2])>>4))&0x1f]
	dst[1] = hi | lo

	hi = gcrDecodeHigh[((uint16(src[2])<<1)|(uint16(src[3])>>7))&0x1f]
	lo = gcrDecodeLow[(src[3]>>2)&0x1f]
	dst[2] = hi | lo

	hi = gcrDecodeHigh[((uint16(src[3])<<3)|(uint16(src[4])>>5))&0x1f]
	lo = gcrDecodeLow[src[4]&0x1f]
	dst[3] = hi | lo
}
