package client

// RemoteEntity 远端玩家的完整记录：位置、朝向、着地与动画集中在一条记录里，
// 避免按 ID 分散在多张表中出现漏删或错位。每个远端实体各自保存 onGround，
// 不与本地玩家共用。
type RemoteEntity struct {
	X, Y        float32
	FacingRight bool
	OnGround    bool
	Anim        Animator
}

// newRemoteEntity 入场默认：面向右，落地站立或空中跳跃
func newRemoteEntity(x, y float32, onGround bool) *RemoteEntity {
	st := StateStand
	if !onGround {
		st = StateJump
	}
	return &RemoteEntity{
		X:           x,
		Y:           y,
		FacingRight: true,
		OnGround:    onGround,
		Anim:        Animator{State: st},
	}
}
