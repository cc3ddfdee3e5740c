package client

import "image"

// 精灵表的固定规格：按行排列的等大帧，行宽 8 帧
const (
	FrameWidth   = 64
	FrameHeight  = 64
	FramesPerRow = 8
)

// AnimState 动画状态
type AnimState uint8

const (
	StateStand AnimState = iota
	StateWalk
	StateJump
	StateStance
)

func (s AnimState) String() string {
	switch s {
	case StateStand:
		return "stand"
	case StateWalk:
		return "walk"
	case StateJump:
		return "jump"
	case StateStance:
		return "stance"
	default:
		return "unknown"
	}
}

// Clip 一段动画：在精灵表上的起始帧、帧数与每帧时长（秒）
type Clip struct {
	Start        int
	Frames       int
	TimePerFrame float64
}

// clips 各状态在素材上的帧区间，与美术资源绑定，不做运行期配置
var clips = map[AnimState]Clip{
	StateStand:  {Start: 64, Frames: 1, TimePerFrame: 0.18},
	StateWalk:   {Start: 32, Frames: 8, TimePerFrame: 0.10},
	StateJump:   {Start: 42, Frames: 6, TimePerFrame: 0.10},
	StateStance: {Start: 0, Frames: 4, TimePerFrame: 0.18},
}

// ClipFor 查询状态对应的剪辑
func ClipFor(s AnimState) (Clip, bool) {
	c, ok := clips[s]
	return c, ok
}

// FrameRect 由（状态，帧号）推导素材上的源矩形；几何只推导，不存储。
// 状态无剪辑时返回零矩形。
func FrameRect(s AnimState, frame int) image.Rectangle {
	c, ok := ClipFor(s)
	if !ok {
		return image.Rectangle{}
	}
	overall := c.Start + frame
	col := overall % FramesPerRow
	row := overall / FramesPerRow
	return image.Rect(col*FrameWidth, row*FrameHeight, (col+1)*FrameWidth, (row+1)*FrameHeight)
}

// Animator 单个实体的动画推进器：状态 + 当前帧 + 帧计时器。
// 朝向不归它管：朝向独立推导，切换状态不会重置朝向。
type Animator struct {
	State AnimState
	Frame int
	Timer float64
}

// SetState 切换状态；真正发生切换时帧号与计时器一并清零
func (a *Animator) SetState(s AnimState) bool {
	if a.State == s {
		return false
	}
	a.State = s
	a.Frame = 0
	a.Timer = 0
	return true
}

// Advance 将 dt 累加进计时器并推进帧号，一次可跨多帧（追赶卡顿后的积压）。
// 返回当前源矩形，以及帧号是否有变化。当前状态没有剪辑时不推进也不报错，
// 按素材配置缺口处理。
func (a *Animator) Advance(dt float64) (image.Rectangle, bool) {
	c, ok := ClipFor(a.State)
	if !ok {
		return image.Rectangle{}, false
	}
	a.Timer += dt
	changed := false
	for a.Timer >= c.TimePerFrame {
		a.Timer -= c.TimePerFrame
		a.Frame = (a.Frame + 1) % c.Frames
		changed = true
	}
	return FrameRect(a.State, a.Frame), changed
}

// DeriveState 由运动信号推导目标状态：空中优先，其次移动，否则站立。
// Stance 不参与推导，只能由外部信号显式切换（预留给后续的动作玩法）。
func DeriveState(onGround, moving bool) AnimState {
	switch {
	case !onGround:
		return StateJump
	case moving:
		return StateWalk
	default:
		return StateStand
	}
}
