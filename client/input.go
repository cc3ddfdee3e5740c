package client

import "github.com/hajimehoshi/ebiten/v2"

// InputState 一帧的原始按键快照，逐帧全量发送，不做增量压缩
type InputState struct {
	Up, Down, Left, Right, Jump bool
}

// SampleInput 读取当前按键；窗口失焦时视为全部松开
func SampleInput() InputState {
	if !ebiten.IsFocused() {
		return InputState{}
	}
	return InputState{
		Up:    ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:  ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Jump:  ebiten.IsKeyPressed(ebiten.KeySpace),
	}
}

// Moving 是否有横向移动输入
func (in InputState) Moving() bool {
	return in.Left || in.Right
}

// UpdateFacing 依输入更新朝向：左右同按时右优先，无输入保持原朝向
func (in InputState) UpdateFacing(facingRight bool) bool {
	if in.Left {
		facingRight = false
	}
	if in.Right {
		facingRight = true
	}
	return facingRight
}

// Encode 编码为一条输入报文
func (in InputState) Encode() []byte {
	return EncodePacket(PlayerInputMsg{
		Up:    in.Up,
		Down:  in.Down,
		Left:  in.Left,
		Right: in.Right,
		Jump:  in.Jump,
	})
}
