package client

import "sort"

// MoveEpsilon 远端玩家横向位移的移动判定阈值（像素）
const MoveEpsilon = 0.1

// Registry 远端玩家注册表：以 playerId 为键独占每条 RemoteEntity 记录。
// 只在 Tick 协程访问，不需要锁。
type Registry struct {
	entities map[uint32]*RemoteEntity
	localID  uint32
}

func NewRegistry() *Registry {
	return &Registry{
		entities: make(map[uint32]*RemoteEntity),
		localID:  NoPlayerID,
	}
}

// SetLocalID 记录本地玩家 ID；登记与更新都会跳过该 ID。
// 若此前因 Welcome 迟到而把自己误建成了远端实体，这里顺手清掉。
func (r *Registry) SetLocalID(id uint32) {
	r.localID = id
	delete(r.entities, id)
}

// ApplyJoin 新玩家入场；已存在或是本地玩家时不做任何事
func (r *Registry) ApplyJoin(id uint32, x, y float32, onGround bool) {
	if id == r.localID {
		return
	}
	if _, ok := r.entities[id]; ok {
		return
	}
	r.entities[id] = newRemoteEntity(x, y, onGround)
}

// ApplyStateUpdate 远端状态更新；未知 ID 隐式建档，容忍丢失的入场通知。
// 朝向由 x 位移的符号推导（不动保持原样），位移超过阈值视为移动，
// 与着地状态一起推导动画目标。远端切换没有冷却：目标不同立即重置帧与计时。
func (r *Registry) ApplyStateUpdate(id uint32, x, y float32, onGround bool) {
	if id == r.localID {
		return
	}
	e, ok := r.entities[id]
	if !ok {
		e = &RemoteEntity{X: x, Y: y, FacingRight: true, Anim: Animator{State: StateStand}}
		r.entities[id] = e
	}
	dx := float64(x) - float64(e.X)
	if dx > 0 {
		e.FacingRight = true
	} else if dx < 0 {
		e.FacingRight = false
	}
	moving := dx > MoveEpsilon || dx < -MoveEpsilon
	e.X, e.Y = x, y
	e.OnGround = onGround
	e.Anim.SetState(DeriveState(onGround, moving))
}

// ApplyLeave 离场：整条记录一次删除；不存在则忽略
func (r *Registry) ApplyLeave(id uint32) {
	delete(r.entities, id)
}

// Advance 推进所有远端动画计时
func (r *Registry) Advance(dt float64) {
	for _, e := range r.entities {
		e.Anim.Advance(dt)
	}
}

// Get 查询单条记录
func (r *Registry) Get(id uint32) (*RemoteEntity, bool) {
	e, ok := r.entities[id]
	return e, ok
}

// SortedIDs 升序 ID 列表，渲染按它遍历以保证稳定的叠放次序
func (r *Registry) SortedIDs() []uint32 {
	ids := make([]uint32, 0, len(r.entities))
	for id := range r.entities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len 当前远端玩家数
func (r *Registry) Len() int {
	return len(r.entities)
}

// Reset 清空全部远端记录（断线时远端实体随连接一起销毁）
func (r *Registry) Reset() {
	r.entities = make(map[uint32]*RemoteEntity)
}
