package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Default 返回默认配置
func Default() Config {
	return Config{
		Control: Control{
			SingleStreetRoute: SingleStreetFinish,
		},
		Output: Output{
			DB:  "scorer",
			Col: "scores",
		},
	}
}

// Parse 解析YAML配置，未出现的字段保持默认值
// 说明：使用UnmarshalStrict，拼写错误的字段会直接报错
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return Config{}, fmt.Errorf("config parse err: %w", err)
	}
	return c, nil
}

// Load 从文件加载配置，path为空时返回默认配置
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	file, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config file load err: %w", err)
	}
	return Parse(file)
}

// RuntimeConfig 运行时配置
// 功能：存储校验后的配置信息
type RuntimeConfig struct {
	All Config  // 全部配置
	C   Control // 全局控制配置
}

// NewRuntimeConfig 根据配置初始化运行时配置
// 功能：创建运行时配置对象，进行配置验证并补全默认值
// 参数：config-原始配置对象
// 返回：初始化的运行时配置指针，配置非法时返回错误
func NewRuntimeConfig(config Config) (*RuntimeConfig, error) {
	rc := &RuntimeConfig{}

	switch config.Control.SingleStreetRoute {
	case "":
		config.Control.SingleStreetRoute = SingleStreetFinish
	case SingleStreetFinish, SingleStreetStall:
	default:
		return nil, fmt.Errorf(
			"control.single_street_route must be one of [%s %s], got %q",
			SingleStreetFinish, SingleStreetStall, config.Control.SingleStreetRoute,
		)
	}
	if config.Control.Horizon < 0 {
		return nil, fmt.Errorf("control.horizon must be non-negative, got %d", config.Control.Horizon)
	}

	rc.All = config
	rc.C = config.Control
	return rc, nil
}
