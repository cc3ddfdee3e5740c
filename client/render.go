package client

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// wallColor 墙体填充色
var wallColor = color.White

// drawWorld 绘制墙体方块
func drawWorld(screen *ebiten.Image, world *WorldMap, cam *Camera) {
	if world == nil {
		return
	}
	for _, w := range world.Walls {
		sx, sy := cam.Apply(float64(w.Min.X), float64(w.Min.Y))
		vector.DrawFilledRect(screen, float32(sx), float32(sy), float32(w.Dx()), float32(w.Dy()), wallColor, false)
	}
}

// drawSprite 以帧中心为原点绘制实体，面朝左时围绕中心水平镜像
func drawSprite(screen, sheet *ebiten.Image, rect image.Rectangle, x, y float64, facingRight bool, cam *Camera) {
	if rect.Empty() {
		return
	}
	sub := sheet.SubImage(rect).(*ebiten.Image)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(rect.Dx())/2, -float64(rect.Dy())/2)
	if !facingRight {
		op.GeoM.Scale(-1, 1)
	}
	sx, sy := cam.Apply(x, y)
	op.GeoM.Translate(sx, sy)
	screen.DrawImage(sub, op)
}
