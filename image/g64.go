package image

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	g64Signature   = "GCR-1541"
	g64Version     = 0x00
	g64MaxSlots    = 84
	g64SlotPayload = 7928
	g64SlotSize    = 2 + g64SlotPayload // length prefix + padded GCR
)

// g64HeaderSize is the fixed size of the signature/version/slot-count/
// slot-size/offset-table/speed-table preamble, before any track slot.
const g64HeaderSize = 12 + g64MaxSlots*4 + g64MaxSlots*4

// G64 is an in-memory representation of a G64 file: one GCR payload and
// speed zone per half-track slot (1-indexed conceptually, but stored
// 0-indexed here — slot i holds half-track i+1). A nil Tracks[i] means
// the half-track is absent.
type G64 struct {
	Tracks [g64MaxSlots][]byte
	Zones  [g64MaxSlots]int
}

// WriteG64 serializes g per spec: fixed header, offset table, speed
// table, then one length-prefixed, 0xFF-padded slot per present
// half-track.
func WriteG64(w io.Writer, g G64) error {
	var header [g64HeaderSize]byte
	copy(header[0:8], g64Signature)
	header[8] = g64Version
	header[9] = g64MaxSlots
	binary.LittleEndian.PutUint16(header[10:12], g64SlotPayload)

	offsets := make([]uint32, g64MaxSlots)
	pos := uint32(g64HeaderSize)
	for i := 0; i < g64MaxSlots; i++ {
		if g.Tracks[i] == nil {
			offsets[i] = 0
			continue
		}
		offsets[i] = pos
		pos += g64SlotSize
	}

	for i := 0; i < g64MaxSlots; i++ {
		binary.LittleEndian.PutUint32(header[12+i*4:16+i*4], offsets[i])
	}
	zoneBase := 12 + g64MaxSlots*4
	for i := 0; i < g64MaxSlots; i++ {
		binary.LittleEndian.PutUint32(header[zoneBase+i*4:zoneBase+4+i*4], uint32(g.Zones[i]))
	}

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("image: write g64 header: %w", err)
	}

	for i := 0; i < g64MaxSlots; i++ {
		if g.Tracks[i] == nil {
			continue
		}
		if len(g.Tracks[i]) > g64SlotPayload {
			return fmt.Errorf("image: g64 half-track %d payload too long (%d > %d)", i+1, len(g.Tracks[i]), g64SlotPayload)
		}
		var slot [g64SlotSize]byte
		binary.LittleEndian.PutUint16(slot[0:2], uint16(len(g.Tracks[i])))
		for j := range slot[2:] {
			slot[2+j] = 0xff
		}
		copy(slot[2:], g.Tracks[i])
		if _, err := w.Write(slot[:]); err != nil {
			return fmt.Errorf("image: write g64 slot %d: %w", i+1, err)
		}
	}
	return nil
}

// ReadG64 parses a full G64 file already read into buf.
func ReadG64(buf []byte) (G64, error) {
	if len(buf) < g64HeaderSize {
		return G64{}, fmt.Errorf("image: g64 too short for header (%d bytes)", len(buf))
	}
	if string(buf[0:8]) != g64Signature {
		return G64{}, fmt.Errorf("image: bad g64 signature %q", buf[0:8])
	}

	var g G64
	zoneBase := 12 + g64MaxSlots*4
	for i := 0; i < g64MaxSlots; i++ {
		offset := binary.LittleEndian.Uint32(buf[12+i*4 : 16+i*4])
		g.Zones[i] = int(binary.LittleEndian.Uint32(buf[zoneBase+i*4 : zoneBase+4+i*4]))
		if offset == 0 {
			continue
		}
		if int(offset)+2 > len(buf) {
			return G64{}, fmt.Errorf("image: g64 slot %d offset out of range", i+1)
		}
		used := int(binary.LittleEndian.Uint16(buf[offset : offset+2]))
		start := int(offset) + 2
		if used > g64SlotPayload || start+used > len(buf) {
			return G64{}, fmt.Errorf("image: g64 slot %d length out of range (%d)", i+1, used)
		}
		payload := make([]byte, used)
		copy(payload, buf[start:start+used])
		g.Tracks[i] = payload
	}
	return g, nil
}
