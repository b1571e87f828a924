// This file is part of BeastBoard.
//
// BeastBoard is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// BeastBoard is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with BeastBoard.  If not, see <https://www.gnu.org/licenses/>.

// Package video models the video-facing registers and memories of the
// board: the video register byte, the scroll registers, tile RAM, palette
// RAM and the sprite page. No pixel generation happens here. The package's
// job is to maintain the state a renderer would need and to hand the sprite
// page and palette to a FrameSink once per frame, with the same double
// buffering as the sprite chip on the real board.
package video

import (
	"github.com/jetsetilly/beastboard/session"
)

// FrameSink receives the buffered sprite page and the palette at the top of
// every vertical blanking period.
type FrameSink interface {
	NewFrame(frame int, sprites []byte, palette []byte) error
}

// sizes of the video memories on the slave CPU bus.
const (
	TileRAMSize    = 0x1000
	PaletteRAMSize = 0x0400
	SpritePageSize = 0x1000
)

// Video is the collection of video registers and memories.
//
// The video register byte packs several fields:
//
//	xx------ msb scrollx
//	--x----- msb scrolly
//	---x---- screen flip
//	----xxxx bank
//
// the bank bits are decoded by the bank switch handler, not here.
type Video struct {
	videoreg uint8
	scrollx  uint8
	scrolly  uint8

	tiles   []byte
	palette []byte

	// the sprite chip double buffers its page: the CPUs write to the live
	// page while the renderer sees the page as it stood at the previous
	// vertical blank
	sprites  []byte
	buffered []byte

	sink FrameSink
}

// NewVideo is the preferred method of initialisation for the Video type.
func NewVideo(sink FrameSink) *Video {
	return &Video{
		tiles:    make([]byte, TileRAMSize),
		palette:  make([]byte, PaletteRAMSize),
		sprites:  make([]byte, SpritePageSize),
		buffered: make([]byte, SpritePageSize),
		sink:     sink,
	}
}

// Reset the video registers. Memory contents are left alone, as on the real
// board.
func (v *Video) Reset() {
	v.videoreg = 0
	v.scrollx = 0
	v.scrolly = 0
}

// SetVideoReg stores the video register byte.
func (v *Video) SetVideoReg(data uint8) {
	v.videoreg = data
}

// VideoReg returns the raw video register byte.
func (v *Video) VideoReg() uint8 {
	return v.videoreg
}

// SetScrollX stores the low byte of the horizontal scroll value.
func (v *Video) SetScrollX(data uint8) {
	v.scrollx = data
}

// SetScrollY stores the low byte of the vertical scroll value.
func (v *Video) SetScrollY(data uint8) {
	v.scrolly = data
}

// ScrollX returns the full horizontal scroll value, including the two most
// significant bits held in the video register.
func (v *Video) ScrollX() int {
	return int(v.scrollx) + int(v.videoreg&0xc0)<<2
}

// ScrollY returns the full vertical scroll value.
func (v *Video) ScrollY() int {
	return int(v.scrolly) + int(v.videoreg&0x20)<<3
}

// Flip returns true if the screen flip bit is set.
func (v *Video) Flip() bool {
	return v.videoreg&0x10 == 0x10
}

// TileRead is the read half of the tile RAM bus handler.
func (v *Video) TileRead(offset uint16) uint8 {
	return v.tiles[offset]
}

// TileWrite is the write half of the tile RAM bus handler.
func (v *Video) TileWrite(offset uint16, data uint8) {
	v.tiles[offset] = data
}

// PaletteRead is the read half of the palette RAM bus handler.
func (v *Video) PaletteRead(offset uint16) uint8 {
	return v.palette[offset]
}

// PaletteWrite is the write half of the palette RAM bus handler.
func (v *Video) PaletteWrite(offset uint16, data uint8) {
	v.palette[offset] = data
}

// Entry returns one palette entry decoded to 8-bit RGB. Entries are stored
// as big-endian words in the format xxxxGGGGRRRRBBBB, each component
// expanded from four bits.
func (v *Video) Entry(entry int) (r, g, b uint8) {
	w := uint16(v.palette[entry*2])<<8 | uint16(v.palette[entry*2+1])
	g = uint8((w >> 8) & 0x0f)
	r = uint8((w >> 4) & 0x0f)
	b = uint8(w & 0x0f)
	return r * 0x11, g * 0x11, b * 0x11
}

// SpriteRead is the read half of the sprite page bus handler. Reads see the
// live page.
func (v *Video) SpriteRead(offset uint16) uint8 {
	return v.sprites[offset]
}

// SpriteWrite is the write half of the sprite page bus handler.
func (v *Video) SpriteWrite(offset uint16, data uint8) {
	v.sprites[offset] = data
}

// VBlank latches the live sprite page into the buffered page and hands the
// buffered page and the palette to the sink. Called by the board once per
// frame at the top of the vertical blanking period.
func (v *Video) VBlank(frame int) error {
	copy(v.buffered, v.sprites)
	if v.sink == nil {
		return nil
	}
	return v.sink.NewFrame(frame, v.buffered, v.palette)
}

// State implements the session.Stateful interface.
func (v *Video) State(s *session.State) {
	s.Put("video.videoreg", int(v.videoreg))
	s.Put("video.scrollx", int(v.scrollx))
	s.Put("video.scrolly", int(v.scrolly))
}

// SetState implements the session.Stateful interface.
func (v *Video) SetState(s *session.State) error {
	videoreg, err := s.Get("video.videoreg")
	if err != nil {
		return err
	}
	scrollx, err := s.Get("video.scrollx")
	if err != nil {
		return err
	}
	scrolly, err := s.Get("video.scrolly")
	if err != nil {
		return err
	}
	v.videoreg = uint8(videoreg)
	v.scrollx = uint8(scrollx)
	v.scrolly = uint8(scrolly)
	return nil
}
