// Package config 提供配置加载和管理功能
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	coreerrors "github.com/easyops/telepager-go/pkg/core/errors"
	"github.com/easyops/telepager-go/pkg/otel"
)

// EnvPrefix 环境变量前缀
const EnvPrefix = "TELEPAGER_"

// Config 全局配置结构
type Config struct {
	// Pager 分页器配置
	Pager PagerConfig `koanf:"pager"`
	// Observability 可观测性配置
	Observability otel.Config `koanf:"observability"`
}

// PagerConfig 分页器配置
//
// 对应一个分页会话的静态参数。
type PagerConfig struct {
	// Name 分页器名称（用于日志与指标标注）
	Name string `koanf:"name"`
	// FetchStep 单次增量抓取的记录数上限
	// 默认: 50
	FetchStep int `koanf:"fetch_step"`
	// PageSize 默认每页记录数（FixedSizer 使用）
	// 默认: 10
	PageSize int `koanf:"page_size"`
	// Language 标志展示名称的默认语言代码
	// 默认: "en"
	Language string `koanf:"language"`
	// EmptyPageText 空态页占位文本
	EmptyPageText string `koanf:"empty_page_text"`
}

// Validate 验证分页器配置
func (c *PagerConfig) Validate() error {
	if c.Name == "" {
		return ErrNameRequired
	}
	if c.FetchStep < 1 {
		return ErrInvalidFetchStep
	}
	if c.PageSize < 1 {
		return ErrInvalidPageSize
	}
	return nil
}

// Validate 验证完整配置
//
// 验证失败的错误都归类到 coreerrors.ErrInvalidConfig 下，
// 便于调用层用 errors.Is 统一判断。
func (c *Config) Validate() error {
	if err := c.Pager.Validate(); err != nil {
		return fmt.Errorf("%w: %w", coreerrors.ErrInvalidConfig, err)
	}
	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("%w: %w", coreerrors.ErrInvalidConfig, err)
	}
	return nil
}

// Loader 配置加载器
type Loader struct {
	k *koanf.Koanf
}

// NewLoader 创建配置加载器
func NewLoader() *Loader {
	return &Loader{
		k: koanf.New("."),
	}
}

// LoadEnv 从环境变量加载配置
func (l *Loader) LoadEnv(prefix string) error {
	return l.k.Load(env.Provider(prefix, ".", func(s string) string {
		// 转换环境变量名，双下划线为层级分隔:
		// TELEPAGER_PAGER__FETCH_STEP -> pager.fetch_step
		s = strings.TrimPrefix(s, prefix)
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "__", ".")
	}), nil)
}

// Unmarshal 解析配置到结构体
func (l *Loader) Unmarshal(cfg *Config) error {
	return l.k.Unmarshal("", cfg)
}

// Get 获取配置值
func (l *Loader) Get(key string) interface{} {
	return l.k.Get(key)
}

// GetString 获取字符串配置值
func (l *Loader) GetString(key string) string {
	return l.k.String(key)
}

// GetInt 获取整数配置值
func (l *Loader) GetInt(key string) int {
	return l.k.Int(key)
}

// GetBool 获取布尔配置值
func (l *Loader) GetBool(key string) bool {
	return l.k.Bool(key)
}

// GetDuration 获取时间间隔配置值
func (l *Loader) GetDuration(key string) time.Duration {
	return l.k.Duration(key)
}

// Load 从环境变量加载完整配置
func Load() (*Config, error) {
	loader := NewLoader()

	if err := loader.LoadEnv(EnvPrefix); err != nil {
		return nil, coreerrors.WrapError(err, "load env")
	}

	cfg := &Config{}
	if err := loader.Unmarshal(cfg); err != nil {
		return nil, coreerrors.WrapError(err, "unmarshal config")
	}

	applyDefaults(cfg)

	return cfg, nil
}

// applyDefaults 应用默认配置值
func applyDefaults(cfg *Config) {
	if cfg.Pager.Name == "" {
		cfg.Pager.Name = "telepager"
	}
	if cfg.Pager.FetchStep == 0 {
		cfg.Pager.FetchStep = 50
	}
	if cfg.Pager.PageSize == 0 {
		cfg.Pager.PageSize = 10
	}
	if cfg.Pager.Language == "" {
		cfg.Pager.Language = "en"
	}

	cfg.Observability = cfg.Observability.WithDefaults()
}
