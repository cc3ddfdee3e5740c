package client

import (
	"fmt"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	_ "image/png" // 精灵表为 PNG
)

// SpriteSheetFile 玩家精灵表文件名（相对素材目录）
const SpriteSheetFile = "platformer_sprites_pixelized.png"

// Assets 启动时一次性加载的素材
type Assets struct {
	Sheet *ebiten.Image
}

// LoadAssets 加载素材。失败属于致命启动错误，由调用方终止进程。
func LoadAssets(dir string) (*Assets, error) {
	path := filepath.Join(dir, SpriteSheetFile)
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load sprite sheet %s: %w", path, err)
	}
	return &Assets{Sheet: img}, nil
}
