package usage

import (
	"context"
	"log"
)

// LogSink 把提示信号写入日志的 Sink 实现
// 展示层可以替换为推送到前端的实现
type LogSink struct{}

// NewLogSink 创建日志 Sink
func NewLogSink() *LogSink {
	return &LogSink{}
}

// Notify 记录提示信号
func (s *LogSink) Notify(ctx context.Context, advisory Advisory) {
	log.Printf("quota advisory: %s", advisory)
}
