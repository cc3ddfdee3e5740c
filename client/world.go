package client

import (
	"fmt"
	"image"
)

// TileSize 单格边长（像素）
const TileSize = 40

// 有碰撞体积的墙 tile 值
const tileWall = 1

// WorldMap 地图：行优先 tile 网格加预生成的墙体矩形。
// 每次 MapData 整包替换，从不原地改动。
type WorldMap struct {
	Width, Height int
	Tiles         []int32
	Walls         []image.Rectangle
}

// BuildWorldMap 由解码后的网格构建地图；整图构建成功才会对外发布，
// 失败时调用方保留旧图。
func BuildWorldMap(width, height uint32, tiles []int32) (*WorldMap, error) {
	w, h := int(width), int(height)
	if len(tiles) != w*h {
		return nil, fmt.Errorf("tile count %d does not match %dx%d", len(tiles), w, h)
	}
	m := &WorldMap{Width: w, Height: h, Tiles: tiles}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if tiles[y*w+x] == tileWall {
				m.Walls = append(m.Walls, image.Rect(x*TileSize, y*TileSize, (x+1)*TileSize, (y+1)*TileSize))
			}
		}
	}
	return m, nil
}

// TileAt 越界返回 0（空地）
func (m *WorldMap) TileAt(x, y int) int32 {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return 0
	}
	return m.Tiles[y*m.Width+x]
}

// PixelSize 地图的像素尺寸，相机夹取边界用
func (m *WorldMap) PixelSize() (float64, float64) {
	return float64(m.Width) * TileSize, float64(m.Height) * TileSize
}
