package client

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// debugKeys 调试面板按固定顺序展示的指标，避免 map 遍历次序抖动
var debugKeys = []string{
	"ticks", "pkts_in", "pkts_out", "bytes_in", "bytes_out",
	"malformed", "unknown", "send_drop", "recv_drop", "dials",
}

// drawDebugOverlay 渲染调试面板：连接状态、地图信息、帧率与运行指标
func drawDebugOverlay(screen *ebiten.Image, g *Game) {
	ebitenutil.DebugPrintAt(screen, buildDebugText(g), 8, 8)
}

func buildDebugText(g *Game) string {
	var b strings.Builder
	fmt.Fprintf(&b, "conn: %s  id: %s\n", g.conn.State(), formatPlayerID(g.local.ID))
	fmt.Fprintf(&b, "tps: %.1f  fps: %.1f  remotes: %d\n", ebiten.ActualTPS(), ebiten.ActualFPS(), g.registry.Len())
	if g.session.MapLoaded() {
		w := g.session.World
		tx, ty := int(g.local.X)/TileSize, int(g.local.Y)/TileSize
		fmt.Fprintf(&b, "map: %dx%d  tile: (%d,%d)=%d\n", w.Width, w.Height, tx, ty, w.TileAt(tx, ty))
	} else {
		b.WriteString("map: none\n")
	}
	snap := g.metrics.Snapshot()
	for _, k := range debugKeys {
		fmt.Fprintf(&b, "%s: %d\n", k, snap[k])
	}
	return b.String()
}

func formatPlayerID(id uint32) string {
	if id == NoPlayerID {
		return "-"
	}
	return fmt.Sprintf("%d", id)
}
