package client

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestPacketRoundTrips(t *testing.T) {
	pkts := []Packet{
		WelcomeMsg{ID: 7},
		PlayerStateMsg{ID: 3, X: 100.5, Y: -20, OnGround: true},
		PlayerJoinedMsg{ID: 8, X: 1, Y: 2, OnGround: false},
		PlayerLeftMsg{ID: 12},
		PlayerInputMsg{Up: true, Jump: true},
	}
	for _, p := range pkts {
		b := EncodePacket(p)
		got, err := DecodePacket(b)
		if err != nil {
			t.Fatalf("decode %T: %v", p, err)
		}
		if got != p {
			t.Fatalf("round trip %T: got %+v, want %+v", p, got, p)
		}
	}
}

func TestMapDataRoundTrip(t *testing.T) {
	tiles := []int32{
		1, 0, 0,
		0, 1, 0,
	}
	b := EncodePacket(MapDataMsg{Width: 3, Height: 2, Tiles: tiles})
	got, err := DecodePacket(b)
	if err != nil {
		t.Fatalf("decode map: %v", err)
	}
	m, ok := got.(MapDataMsg)
	if !ok {
		t.Fatalf("decoded %T, want MapDataMsg", got)
	}
	if m.Width != 3 || m.Height != 2 {
		t.Fatalf("dims = %dx%d, want 3x2", m.Width, m.Height)
	}
	for i := range tiles {
		if m.Tiles[i] != tiles[i] {
			t.Fatalf("tile %d = %d, want %d", i, m.Tiles[i], tiles[i])
		}
	}
	world, err := BuildWorldMap(m.Width, m.Height, m.Tiles)
	if err != nil {
		t.Fatalf("build world: %v", err)
	}
	if len(world.Walls) != 2 {
		t.Fatalf("wall count = %d, want 2", len(world.Walls))
	}
}

func TestInputWireLayout(t *testing.T) {
	b := EncodePacket(PlayerInputMsg{Up: true, Down: false, Left: true, Right: false, Jump: true})
	want := []byte{2, 1, 0, 1, 0, 1}
	if !bytes.Equal(b, want) {
		t.Fatalf("input bytes = %v, want %v", b, want)
	}
}

func TestPlayerStateWireLayout(t *testing.T) {
	b := EncodePacket(PlayerStateMsg{ID: 7, X: 1.0, Y: 2.0, OnGround: true})
	if len(b) != 14 {
		t.Fatalf("player state length = %d, want 14", len(b))
	}
	if b[0] != byte(MsgPlayerState) {
		t.Fatalf("discriminant = %d, want %d", b[0], MsgPlayerState)
	}
	if binary.BigEndian.Uint32(b[1:5]) != 7 {
		t.Fatalf("id bytes = %v", b[1:5])
	}
	if b[13] != 1 {
		t.Fatalf("onGround byte = %d, want 1", b[13])
	}
}

func TestTruncatedPayloadFails(t *testing.T) {
	full := EncodePacket(PlayerStateMsg{ID: 3, X: 1, Y: 2, OnGround: true})
	for n := 1; n < len(full); n++ {
		if _, err := DecodePacket(full[:n]); err == nil {
			t.Fatalf("message truncated to %d bytes still decoded", n)
		}
	}
}

func TestEmptyMessageFails(t *testing.T) {
	if _, err := DecodePacket(nil); err == nil {
		t.Fatalf("empty message decoded")
	}
}

func TestUnknownDiscriminant(t *testing.T) {
	_, err := DecodePacket([]byte{0xee, 1, 2, 3})
	var ute *UnknownTypeError
	if !errors.As(err, &ute) {
		t.Fatalf("error = %v, want UnknownTypeError", err)
	}
	if ute.Discriminant != 0xee {
		t.Fatalf("discriminant = 0x%02x, want 0xee", ute.Discriminant)
	}
}

func TestMapDataRejectsOversizedDims(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(byte(MsgMapData))
	_ = binary.Write(&buf, binary.BigEndian, uint32(1<<20))
	_ = binary.Write(&buf, binary.BigEndian, uint32(1<<20))
	if _, err := DecodePacket(buf.Bytes()); err == nil {
		t.Fatalf("absurd map dimensions accepted")
	}
}

func TestMapDataRejectsShortTiles(t *testing.T) {
	full := EncodePacket(MapDataMsg{Width: 2, Height: 2, Tiles: []int32{1, 0, 0, 1}})
	if _, err := DecodePacket(full[:len(full)-3]); err == nil {
		t.Fatalf("short tile payload accepted")
	}
	withTrailing := append(append([]byte{}, full...), 0xff)
	if _, err := DecodePacket(withTrailing); err == nil {
		t.Fatalf("trailing bytes after the grid accepted")
	}
}
