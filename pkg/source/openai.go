package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/easyops/telepager-go/pkg/core/record"
)

// OpenAIStreamSource 把流式对话补全切分为逐行记录的源
//
// 从 OpenAI 兼容接口的流式响应中按行切出记录，meta 为行号。
// 适合把模型的长回复直接喂给分页流水线。流结束（EOF）视为耗尽。
type OpenAIStreamSource struct {
	stream  *openai.ChatCompletionStream
	quality int

	buf     strings.Builder
	pending []string
	lineNo  int
	done    bool
	g       guard
}

// NewOpenAIStream 发起流式补全并创建源
//
// quality 作为每条记录的质量位掩码，由调用方的质量类型定义。
func NewOpenAIStream(ctx context.Context, client *openai.Client, req openai.ChatCompletionRequest, quality int) (*OpenAIStreamSource, error) {
	req.Stream = true

	stream, err := client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion stream: %w", err)
	}

	return &OpenAIStreamSource{stream: stream, quality: quality}, nil
}

// Next 返回下一行对应的记录
func (s *OpenAIStreamSource) Next(ctx context.Context) (record.Record[int], error) {
	var zero record.Record[int]
	if !s.g.enter() {
		return zero, ErrBusy
	}
	defer s.g.leave()

	for {
		if len(s.pending) > 0 {
			line := s.pending[0]
			s.pending = s.pending[1:]
			s.lineNo++
			return record.New(line, s.quality, s.lineNo), nil
		}
		if s.done {
			return zero, ErrExhausted
		}

		resp, err := s.stream.Recv()
		if err != nil {
			s.done = true
			_ = s.stream.Close()
			if errors.Is(err, io.EOF) {
				// 流结束，残留的最后一行也要产出
				if rest := s.buf.String(); rest != "" {
					s.buf.Reset()
					s.pending = append(s.pending, rest)
					continue
				}
				return zero, ErrExhausted
			}
			return zero, err
		}

		if len(resp.Choices) == 0 {
			continue
		}
		s.buf.WriteString(resp.Choices[0].Delta.Content)

		// 切出已完整的行，残段留在缓冲里
		text := s.buf.String()
		if i := strings.LastIndexByte(text, '\n'); i >= 0 {
			s.buf.Reset()
			s.buf.WriteString(text[i+1:])
			for _, line := range strings.Split(text[:i], "\n") {
				if line != "" {
					s.pending = append(s.pending, line)
				}
			}
		}
	}
}

// Close 关闭底层流
func (s *OpenAIStreamSource) Close() error {
	s.done = true
	return s.stream.Close()
}

// compile-time interface check
var _ Source[int] = (*OpenAIStreamSource)(nil)
