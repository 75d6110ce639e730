package config

import "errors"

// 配置验证相关错误
var (
	// ErrNameRequired 分页器名称必填
	ErrNameRequired = errors.New("pager name is required")
	// ErrInvalidFetchStep 抓取步长无效
	ErrInvalidFetchStep = errors.New("fetch step must be positive")
	// ErrInvalidPageSize 页大小无效
	ErrInvalidPageSize = errors.New("page size must be positive")
)
