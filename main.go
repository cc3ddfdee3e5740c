package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"

	"miniplat/client"
)

// MiniPlat 客户端入口：读配置、装素材、连服务器并进入渲染循环
func main() {
	var (
		settingsPath string
		addr         string
		debug        bool
	)
	flag.StringVar(&settingsPath, "settings", "settings.json", "optional settings file (JSON)")
	flag.StringVar(&addr, "addr", "", "server websocket url, e.g. ws://127.0.0.1:53000/ws (overrides settings)")
	flag.BoolVar(&debug, "debug", false, "start with the debug overlay visible")
	flag.Parse()

	s, err := client.LoadSettings(settingsPath)
	if err != nil {
		panic(err)
	}
	if addr != "" {
		s.ServerURL = addr
	}
	if debug {
		s.Debug = true
	}

	// 使用第三方 zap 日志库写入 miniplat.log（带滚动）
	if err := client.InitLogger(s.LogFile); err != nil {
		panic(err)
	}
	defer client.SyncLogger()

	assets, err := client.LoadAssets(s.AssetDir)
	if err != nil {
		client.Log.Fatalf("startup: %v", err)
	}

	game := client.NewGame(s, assets)
	defer game.Shutdown()

	ebiten.SetWindowSize(s.WindowW, s.WindowH)
	ebiten.SetWindowTitle("MiniPlat")
	ebiten.SetTPS(client.TicksPerSecond)
	client.Log.Infof("MiniPlat client starting; server %s", s.ServerURL)
	if err := ebiten.RunGame(game); err != nil {
		client.Log.Fatalf("run: %v", err)
	}
	client.Log.Info("window closed, bye")
}
