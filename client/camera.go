package client

// Camera 以中心点表示的取景框
type Camera struct {
	X, Y float64 // 视野中心（世界坐标）
	W, H float64
}

func NewCamera(w, h float64) Camera {
	return Camera{X: w / 2, Y: h / 2, W: w, H: h}
}

// Follow 跟随目标。有地图时把中心夹取在地图范围内；
// 地图比视野还小时钉在半宽/半高处。未收到地图前直接对准目标。
func (c *Camera) Follow(px, py float64, world *WorldMap) {
	if world == nil {
		c.X, c.Y = px, py
		return
	}
	mw, mh := world.PixelSize()
	c.X = clamp(px, c.W/2, mw-c.W/2)
	c.Y = clamp(py, c.H/2, mh-c.H/2)
}

// Apply 世界坐标 → 屏幕坐标
func (c *Camera) Apply(wx, wy float64) (float64, float64) {
	return wx - c.X + c.W/2, wy - c.Y + c.H/2
}

// clamp 区间夹取；lo > hi 时 lo 胜出（小地图钉扎行为依赖这一点）
func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
