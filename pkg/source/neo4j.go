package source

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/easyops/telepager-go/pkg/core/record"
)

// Neo4jConfig Neo4j 连接配置
type Neo4jConfig struct {
	URI      string
	Username string
	Password string
}

// MapFunc 把一条 Neo4j 查询结果转换为一条记录
type MapFunc[T any] func(rec *neo4j.Record) (record.Record[T], error)

// Neo4jSource 流式读取 Neo4j 查询结果的源
//
// 驱动的结果游标按需从服务端拉取，正好对应拉取式惰性序列。
// 结果耗尽后关闭会话并在之后一直返回 ErrExhausted。
type Neo4jSource[T any] struct {
	session neo4j.SessionWithContext
	result  neo4j.ResultWithContext
	mapRow  MapFunc[T]
	done    bool
	g       guard
}

// NewNeo4jDriver 创建 Neo4j 驱动并验证连接
func NewNeo4jDriver(ctx context.Context, config Neo4jConfig) (neo4j.DriverWithContext, error) {
	if config.URI == "" {
		config.URI = "bolt://localhost:7687"
	}

	auth := neo4j.NoAuth()
	if config.Username != "" && config.Password != "" {
		auth = neo4j.BasicAuth(config.Username, config.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(config.URI, auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("failed to verify connectivity: %w", err)
	}

	return driver, nil
}

// NewNeo4j 执行查询并创建流式源
//
// mapRow 负责把结果行映射为记录，例如从返回的节点属性取出
// 文本与质量位掩码。
func NewNeo4j[T any](ctx context.Context, driver neo4j.DriverWithContext, query string, params map[string]any, mapRow MapFunc[T]) (*Neo4jSource[T], error) {
	session := driver.NewSession(ctx, neo4j.SessionConfig{})

	result, err := session.Run(ctx, query, params)
	if err != nil {
		_ = session.Close(ctx)
		return nil, fmt.Errorf("failed to run query: %w", err)
	}

	return &Neo4jSource[T]{session: session, result: result, mapRow: mapRow}, nil
}

// Next 返回下一条结果对应的记录
func (s *Neo4jSource[T]) Next(ctx context.Context) (record.Record[T], error) {
	var zero record.Record[T]
	if !s.g.enter() {
		return zero, ErrBusy
	}
	defer s.g.leave()

	if s.done {
		return zero, ErrExhausted
	}

	if !s.result.Next(ctx) {
		s.done = true
		if err := s.result.Err(); err != nil {
			_ = s.session.Close(ctx)
			return zero, err
		}
		_ = s.session.Close(ctx)
		return zero, ErrExhausted
	}

	return s.mapRow(s.result.Record())
}

// Close 关闭会话
func (s *Neo4jSource[T]) Close(ctx context.Context) error {
	s.done = true
	return s.session.Close(ctx)
}

// compile-time interface check
var _ Source[int] = (*Neo4jSource[int])(nil)
