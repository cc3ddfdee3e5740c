package client

// NoPlayerID 服务端尚未分配 ID 时的哨兵值
const NoPlayerID = ^uint32(0)

// StateChangeCooldown 本地状态切换的最短间隔（秒），抑制着地/输入抖动引起的闪帧
const StateChangeCooldown = 0.1

// LocalPlayer 本地玩家：位置与着地状态以服务端下发为准，动画在客户端推导
type LocalPlayer struct {
	ID          uint32
	X, Y        float32
	FacingRight bool
	OnGround    bool
	Cooldown    float64
	Anim        Animator
}

// NewLocalPlayer 入场默认：屏幕中央，面向右，落地站立
func NewLocalPlayer() *LocalPlayer {
	return &LocalPlayer{
		ID:          NoPlayerID,
		X:           400,
		Y:           300,
		FacingRight: true,
		OnGround:    true,
		Anim:        Animator{State: StateStand},
	}
}

// TickCooldown 每帧递减切换冷却
func (p *LocalPlayer) TickCooldown(dt float64) {
	if p.Cooldown > 0 {
		p.Cooldown -= dt
	}
}

// ApplyTargetState 冷却结束后才允许切换；切换成功则重新上冷却。
// 目标与当前相同视为无事发生，不上冷却。
func (p *LocalPlayer) ApplyTargetState(target AnimState) bool {
	if p.Cooldown > 0 {
		return false
	}
	if !p.Anim.SetState(target) {
		return false
	}
	p.Cooldown = StateChangeCooldown
	return true
}

// SetAuthoritative 接受服务端下发的位置与着地状态；朝向只由本地输入决定
func (p *LocalPlayer) SetAuthoritative(x, y float32, onGround bool) {
	p.X, p.Y = x, y
	p.OnGround = onGround
}
