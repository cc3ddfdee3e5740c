package client

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// Settings 客户端可调参数。联机协议与动画剪辑表不在可配置范围内。
type Settings struct {
	ServerURL string `mapstructure:"server_url"`
	AssetDir  string `mapstructure:"asset_dir"`
	WindowW   int    `mapstructure:"window_w"`
	WindowH   int    `mapstructure:"window_h"`
	LogFile   string `mapstructure:"log_file"`
	Debug     bool   `mapstructure:"debug"`
}

// DefaultSettings 与服务端约定的默认参数
func DefaultSettings() Settings {
	return Settings{
		ServerURL: "ws://127.0.0.1:53000/ws",
		AssetDir:  "assets",
		WindowW:   800,
		WindowH:   600,
		LogFile:   "miniplat.log",
		Debug:     false,
	}
}

// LoadSettings 读取可选的 JSON 配置并覆盖默认值；文件不存在不算错误。
// 先解析成宽松的 map，再经 mapstructure 弱类型解码，容忍手写配置里
// 数字与字符串的混用。
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("read settings %s: %w", path, err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return s, fmt.Errorf("parse settings %s: %w", path, err)
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &s,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return s, fmt.Errorf("settings decoder: %w", err)
	}
	if err := dec.Decode(m); err != nil {
		return s, fmt.Errorf("decode settings %s: %w", path, err)
	}
	return s, nil
}
