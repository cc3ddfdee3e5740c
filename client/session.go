package client

import "errors"

// Session 把入站报文应用到本地玩家、远端注册表与地图。
// 单条报文解码失败只丢弃该条，连接保持。
type Session struct {
	Local    *LocalPlayer
	Registry *Registry
	World    *WorldMap // nil 表示尚未收到地图
	Metrics  *Metrics
}

func NewSession(local *LocalPlayer, reg *Registry, m *Metrics) *Session {
	return &Session{Local: local, Registry: reg, Metrics: m}
}

// MapLoaded 是否已有可用地图
func (s *Session) MapLoaded() bool {
	return s.World != nil
}

// HandleMessage 处理一条完整的入站消息。
// 本地玩家与远端玩家共用 PlayerState 报文，按 ID 分流。
func (s *Session) HandleMessage(data []byte) {
	pkt, err := DecodePacket(data)
	if err != nil {
		var ute *UnknownTypeError
		if errors.As(err, &ute) {
			s.Metrics.IncUnknownPacket()
			Log.Warnf("skip packet: %v", err)
			return
		}
		s.Metrics.IncMalformedPacket()
		Log.Warnf("drop packet: %v", err)
		return
	}
	switch m := pkt.(type) {
	case WelcomeMsg:
		s.Local.ID = m.ID
		s.Registry.SetLocalID(m.ID)
		Log.Infof("welcome: assigned player id %d", m.ID)
	case PlayerStateMsg:
		if m.ID == s.Local.ID {
			s.Local.SetAuthoritative(m.X, m.Y, m.OnGround)
		} else {
			s.Registry.ApplyStateUpdate(m.ID, m.X, m.Y, m.OnGround)
		}
	case PlayerJoinedMsg:
		if m.ID != s.Local.ID {
			Log.Infof("player %d joined", m.ID)
			s.Registry.ApplyJoin(m.ID, m.X, m.Y, m.OnGround)
		}
	case PlayerLeftMsg:
		if m.ID != s.Local.ID {
			Log.Infof("player %d left", m.ID)
			s.Registry.ApplyLeave(m.ID)
		}
	case MapDataMsg:
		world, err := BuildWorldMap(m.Width, m.Height, m.Tiles)
		if err != nil {
			s.Metrics.IncMalformedPacket()
			Log.Warnf("drop map: %v", err)
			return
		}
		s.World = world
		Log.Infof("map loaded: %dx%d tiles, %d walls", world.Width, world.Height, len(world.Walls))
	case PlayerInputMsg:
		// 输入报文只该由客户端发出，收到说明对端行为异常
		s.Metrics.IncUnknownPacket()
		Log.Warnf("unexpected input packet from server")
	}
}
