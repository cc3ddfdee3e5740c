package client

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// MsgType 报文判别字节，与服务端约定的联机协议
type MsgType byte

const (
	MsgWelcome      MsgType = 0
	MsgPlayerState  MsgType = 1
	MsgPlayerInput  MsgType = 2
	MsgPlayerJoined MsgType = 3
	MsgPlayerLeft   MsgType = 4
	MsgMapData      MsgType = 5
)

// 地图尺寸上限，先验尺寸再分配，防御畸形报文
const (
	MaxMapDim   = 4096
	MaxMapTiles = 1 << 18
)

// Packet 解码后的报文。每条 WebSocket 二进制消息恰好承载一个报文，
// 消息边界就是报文边界，未知类型只损失一条消息，不会错位后续字节流。
type Packet interface {
	Type() MsgType
}

// WelcomeMsg 服务端分配的本地玩家 ID
type WelcomeMsg struct {
	ID uint32
}

// PlayerStateMsg 某玩家的权威位置与着地状态
type PlayerStateMsg struct {
	ID       uint32
	X, Y     float32
	OnGround bool
}

// PlayerInputMsg 客户端每帧发送的按键快照
type PlayerInputMsg struct {
	Up, Down, Left, Right, Jump bool
}

// PlayerJoinedMsg 新玩家入场，负载与 PlayerStateMsg 相同
type PlayerJoinedMsg struct {
	ID       uint32
	X, Y     float32
	OnGround bool
}

// PlayerLeftMsg 玩家离场
type PlayerLeftMsg struct {
	ID uint32
}

// MapDataMsg 整张地图：行优先的 tile 网格
type MapDataMsg struct {
	Width, Height uint32
	Tiles         []int32
}

func (WelcomeMsg) Type() MsgType      { return MsgWelcome }
func (PlayerStateMsg) Type() MsgType  { return MsgPlayerState }
func (PlayerInputMsg) Type() MsgType  { return MsgPlayerInput }
func (PlayerJoinedMsg) Type() MsgType { return MsgPlayerJoined }
func (PlayerLeftMsg) Type() MsgType   { return MsgPlayerLeft }
func (MapDataMsg) Type() MsgType      { return MsgMapData }

// UnknownTypeError 未识别的判别字节；调用方据此与字段解码失败区分计数
type UnknownTypeError struct {
	Discriminant byte
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown packet type 0x%02x", e.Discriminant)
}

// EncodePacket 编码为单条二进制消息：判别字节 + 大端负载。
// 客户端只会发送 PlayerInputMsg，其余编码用于测试与排查。
func EncodePacket(p Packet) []byte {
	buf := &bytes.Buffer{}
	buf.WriteByte(byte(p.Type()))
	switch m := p.(type) {
	case WelcomeMsg:
		_ = binary.Write(buf, binary.BigEndian, m)
	case PlayerStateMsg:
		_ = binary.Write(buf, binary.BigEndian, m)
	case PlayerInputMsg:
		_ = binary.Write(buf, binary.BigEndian, m)
	case PlayerJoinedMsg:
		_ = binary.Write(buf, binary.BigEndian, m)
	case PlayerLeftMsg:
		_ = binary.Write(buf, binary.BigEndian, m)
	case MapDataMsg:
		_ = binary.Write(buf, binary.BigEndian, m.Width)
		_ = binary.Write(buf, binary.BigEndian, m.Height)
		_ = binary.Write(buf, binary.BigEndian, m.Tiles)
	}
	return buf.Bytes()
}

// DecodePacket 解码一条完整消息。任何字段读取失败只作废本条消息，
// 错误里带上出错的阶段名。
func DecodePacket(data []byte) (Packet, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty message")
	}
	r := bytes.NewReader(data[1:])
	switch MsgType(data[0]) {
	case MsgWelcome:
		var m WelcomeMsg
		if err := binary.Read(r, binary.BigEndian, &m); err != nil {
			return nil, fmt.Errorf("welcome id: %w", err)
		}
		return m, nil
	case MsgPlayerState:
		var m PlayerStateMsg
		if err := binary.Read(r, binary.BigEndian, &m); err != nil {
			return nil, fmt.Errorf("player state: %w", err)
		}
		return m, nil
	case MsgPlayerInput:
		var m PlayerInputMsg
		if err := binary.Read(r, binary.BigEndian, &m); err != nil {
			return nil, fmt.Errorf("player input: %w", err)
		}
		return m, nil
	case MsgPlayerJoined:
		var m PlayerJoinedMsg
		if err := binary.Read(r, binary.BigEndian, &m); err != nil {
			return nil, fmt.Errorf("player joined: %w", err)
		}
		return m, nil
	case MsgPlayerLeft:
		var m PlayerLeftMsg
		if err := binary.Read(r, binary.BigEndian, &m); err != nil {
			return nil, fmt.Errorf("player left id: %w", err)
		}
		return m, nil
	case MsgMapData:
		return decodeMapData(r)
	default:
		return nil, &UnknownTypeError{Discriminant: data[0]}
	}
}

func decodeMapData(r *bytes.Reader) (Packet, error) {
	var m MapDataMsg
	if err := binary.Read(r, binary.BigEndian, &m.Width); err != nil {
		return nil, fmt.Errorf("map width: %w", err)
	}
	if err := binary.Read(r, binary.BigEndian, &m.Height); err != nil {
		return nil, fmt.Errorf("map height: %w", err)
	}
	if m.Width > MaxMapDim || m.Height > MaxMapDim {
		return nil, fmt.Errorf("map dimensions %dx%d out of range", m.Width, m.Height)
	}
	n := int(m.Width) * int(m.Height)
	if n > MaxMapTiles {
		return nil, fmt.Errorf("map tile count %d exceeds cap %d", n, MaxMapTiles)
	}
	if r.Len() != n*4 {
		return nil, fmt.Errorf("map tiles: have %d bytes, want %d", r.Len(), n*4)
	}
	m.Tiles = make([]int32, n)
	if err := binary.Read(r, binary.BigEndian, m.Tiles); err != nil {
		return nil, fmt.Errorf("map tiles: %w", err)
	}
	return m, nil
}
