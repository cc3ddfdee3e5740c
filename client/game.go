package client

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// TicksPerSecond 帧循环频率（60 TPS，由 ebiten 驱动）
const TicksPerSecond = 60

// Game 帧循环：按固定次序串起输入、收发、动画与渲染。
// 本地玩家、注册表、地图都只在 Update/Draw 所在协程被访问。
type Game struct {
	settings Settings
	assets   *Assets
	conn     *Conn
	session  *Session
	local    *LocalPlayer
	registry *Registry
	metrics  *Metrics
	cam      Camera
	input    InputState

	lastTick      time.Time
	everConnected bool
	showDebug     bool
}

// NewGame 组装各组件
func NewGame(s Settings, a *Assets) *Game {
	local := NewLocalPlayer()
	reg := NewRegistry()
	metrics := &Metrics{}
	return &Game{
		settings:  s,
		assets:    a,
		local:     local,
		registry:  reg,
		metrics:   metrics,
		conn:      NewConn(s.ServerURL, metrics),
		session:   NewSession(local, reg, metrics),
		cam:       NewCamera(float64(s.WindowW), float64(s.WindowH)),
		showDebug: s.Debug,
	}
}

// Update 每 Tick 的固定次序：
// 计时 → 退出检查 → 补连 → 采样输入 → 发送 → 收包 → 断线检查 →
// 状态切换 → 推进动画 → 相机跟随
func (g *Game) Update() error {
	g.metrics.IncTick()
	now := time.Now()
	var dt float64
	if !g.lastTick.IsZero() {
		dt = now.Sub(g.lastTick).Seconds()
	}
	g.lastTick = now
	g.local.TickCooldown(dt)

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		Log.Info("quit requested")
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.showDebug = !g.showDebug
	}

	// 首次连接前持续补连；会话断开后不再重连，走下方的退出分支
	if !g.everConnected {
		g.conn.EnsureConnected()
	}

	g.input = SampleInput()
	g.local.FacingRight = g.input.UpdateFacing(g.local.FacingRight)

	if g.conn.State() == StateConnected {
		g.everConnected = true
		g.conn.Send(g.input.Encode())
	}

	for {
		msg, ok := g.conn.TryRecv()
		if !ok {
			break
		}
		g.session.HandleMessage(msg)
	}

	if g.everConnected && g.conn.State() == StateDisconnected {
		Log.Info("connection lost, shutting down session")
		g.registry.Reset()
		return ebiten.Termination
	}

	g.local.ApplyTargetState(DeriveState(g.local.OnGround, g.input.Moving()))
	g.local.Anim.Advance(dt)
	g.registry.Advance(dt)

	g.cam.Follow(float64(g.local.X), float64(g.local.Y), g.session.World)
	return nil
}

// Draw 渲染次序：清屏 → 地图 → 远端玩家 → 本地玩家 → 调试面板
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	drawWorld(screen, g.session.World, &g.cam)
	for _, id := range g.registry.SortedIDs() {
		e, ok := g.registry.Get(id)
		if !ok {
			continue
		}
		drawSprite(screen, g.assets.Sheet, FrameRect(e.Anim.State, e.Anim.Frame),
			float64(e.X), float64(e.Y), e.FacingRight, &g.cam)
	}
	drawSprite(screen, g.assets.Sheet, FrameRect(g.local.Anim.State, g.local.Anim.Frame),
		float64(g.local.X), float64(g.local.Y), g.local.FacingRight, &g.cam)
	if g.showDebug {
		drawDebugOverlay(screen, g)
	}
}

// Layout 逻辑分辨率固定为窗口大小
func (g *Game) Layout(int, int) (int, int) {
	return g.settings.WindowW, g.settings.WindowH
}

// Shutdown 释放网络资源
func (g *Game) Shutdown() {
	g.conn.Close()
}
