package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 应用配置
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Chart  ChartConfig  `toml:"chart"`
	Trial  TrialConfig  `toml:"trial"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据配置。OutsideFile 是"周边区域"对照文件名
// （位于 OutputDir 内），显式配置而非写死的同目录文件。
type DataConfig struct {
	OutputDir   string `toml:"output_dir"`
	OutsideFile string `toml:"outside_file"`
	ExportDir   string `toml:"export_dir"`
}

// ChartConfig 年份滑杆的钳制边界与默认区间
type ChartConfig struct {
	YearMin     int `toml:"year_min"`
	YearMax     int `toml:"year_max"`
	DefaultFrom int `toml:"default_from"`
	DefaultTo   int `toml:"default_to"`
}

// TrialConfig 试验元信息，状态页展示用
type TrialConfig struct {
	Country   string `toml:"country"`
	Community string `toml:"community"`
	Arm       string `toml:"arm"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20271,
			DevMode: false,
		},
		Data: DataConfig{
			OutputDir: "output",
			ExportDir: "exports",
		},
		Chart: ChartConfig{
			YearMin:     1970,
			YearMax:     2030,
			DefaultFrom: 1990,
			DefaultTo:   2030,
		},
		Trial: TrialConfig{
			Country:   "Zambia",
			Community: "5",
			Arm:       "A",
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo 从 config.toml 加载配置并返回元信息
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// 配置文件不存在，使用默认配置
			return config, info, nil
		}
		return nil, info, err
	}

	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, err
	}

	// 环境变量覆盖（用于 E2E / 本地运行）
	if v := os.Getenv("POPART_OUTPUT_DIR"); v != "" {
		config.Data.OutputDir = v
	}
	if v := os.Getenv("POPART_OUTSIDE_FILE"); v != "" {
		config.Data.OutsideFile = v
	}

	return config, info, nil
}

// LoadConfig 从 config.toml 加载配置
// 配置文件位于可执行文件同目录下
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}

// SaveConfig 保存配置到 config.toml
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// ResolveOutputDir 输出目录：绝对路径原样使用，
// 相对路径视为相对可执行文件目录
func ResolveOutputDir(config *AppConfig) string {
	if filepath.IsAbs(config.Data.OutputDir) {
		return config.Data.OutputDir
	}
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, config.Data.OutputDir)
}

// EnsureExportDir 确保导出目录存在
func EnsureExportDir(config *AppConfig) (string, error) {
	dir := config.Data.ExportDir
	if !filepath.IsAbs(dir) {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		dir = filepath.Join(exeDir, dir)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
