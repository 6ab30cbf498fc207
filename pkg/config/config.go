// Package config 提供 TOML 配置加载、环境变量覆盖与 schema 校验
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config 服务配置
type Config struct {
	// 服务名称
	ServiceName string `mapstructure:"service_name"`
	// 服务版本
	Version string `mapstructure:"version"`
	// 环境：dev, staging, prod
	Environment string `mapstructure:"environment"`
	// HTTP 服务配置
	HTTP HTTPConfig `mapstructure:"http"`
	// 日志配置
	Logger LoggerConfig `mapstructure:"logger"`
	// 指标配置
	Metrics MetricsConfig `mapstructure:"metrics"`
	// 限流配置
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	// 计算引擎配置
	Engine EngineConfig `mapstructure:"engine"`
}

// HTTPConfig HTTP 服务配置
type HTTPConfig struct {
	// 监听地址
	Host string `mapstructure:"host"`
	// 监听端口
	Port int `mapstructure:"port"`
	// 读超时（秒）
	ReadTimeout int `mapstructure:"read_timeout"`
	// 写超时（秒）
	WriteTimeout int `mapstructure:"write_timeout"`
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
	WithCaller bool   `mapstructure:"with_caller"`
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	// 是否启用独立的 Prometheus 端口
	Enabled bool `mapstructure:"enabled"`
	// Prometheus 监听端口
	Port int `mapstructure:"port"`
	// 指标路径
	Path string `mapstructure:"path"`
}

// RateLimitConfig 限流配置，模拟调用昂贵，按客户端限速
type RateLimitConfig struct {
	// 是否启用
	Enabled bool `mapstructure:"enabled"`
	// 每周期允许的请求数
	Rate int `mapstructure:"rate"`
	// 周期（秒）
	PeriodSeconds int `mapstructure:"period_seconds"`
	// 突发额度
	Burst int `mapstructure:"burst"`
}

// EngineConfig 计算引擎配置，请求级参数边界在应用层依此校验
type EngineConfig struct {
	// 单次请求最大模拟路径数
	MaxSimulations int `mapstructure:"max_simulations"`
	// 单次请求最大时间步数
	MaxSteps int `mapstructure:"max_steps"`
	// 直方图分箱数下限/上限
	MinHistogramBins int `mapstructure:"min_histogram_bins"`
	MaxHistogramBins int `mapstructure:"max_histogram_bins"`
	// 路径数 x 步数 的乘积上限，防止单个请求长期占满 CPU
	MaxPathBudget int `mapstructure:"max_path_budget"`
	// 波动率曲面单次批量点数上限
	MaxSurfacePoints int `mapstructure:"max_surface_points"`
	// 路径生成并行分片数，<=1 为单随机流
	Workers int `mapstructure:"workers"`
}

// Load 从 TOML 文件加载配置，文件缺失时退回默认值，支持 APP_ 前缀环境变量覆盖
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	_ = v.ReadInConfig()

	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate 验证配置的有效性
func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}
	if c.Environment == "" {
		c.Environment = "dev"
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTP.Port)
	}
	if c.Engine.MaxSimulations < 1 {
		return fmt.Errorf("engine.max_simulations must be >= 1, got %d", c.Engine.MaxSimulations)
	}
	if c.Engine.MaxSteps < 1 {
		return fmt.Errorf("engine.max_steps must be >= 1, got %d", c.Engine.MaxSteps)
	}
	if c.Engine.MinHistogramBins < 1 || c.Engine.MaxHistogramBins < c.Engine.MinHistogramBins {
		return fmt.Errorf("invalid histogram bin bounds [%d, %d]",
			c.Engine.MinHistogramBins, c.Engine.MaxHistogramBins)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service_name", "analytics")
	v.SetDefault("version", "0.1.0")
	v.SetDefault("environment", "dev")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.read_timeout", 30)
	v.SetDefault("http.write_timeout", 30)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.file_path", "logs/app.log")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 10)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.with_caller", true)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.rate", 30)
	v.SetDefault("ratelimit.period_seconds", 60)
	v.SetDefault("ratelimit.burst", 10)

	// 边界与上游请求约束一致：路径 1e5、步数 10 年交易日、分箱 10..200
	v.SetDefault("engine.max_simulations", 100000)
	v.SetDefault("engine.max_steps", 2520)
	v.SetDefault("engine.min_histogram_bins", 10)
	v.SetDefault("engine.max_histogram_bins", 200)
	v.SetDefault("engine.max_path_budget", 50000000)
	v.SetDefault("engine.max_surface_points", 5000)
	v.SetDefault("engine.workers", 1)
}
