package chart

import (
	"context"
	"sync"
	"time"

	"github.com/charlesren/action_word_monitor/aggregator"
	"github.com/charlesren/action_word_monitor/consumer"
	"github.com/charlesren/ylog"
)

// Source 消息来源，FetchOne 无消息时立即返回 (nil, nil)，不得长阻塞
type Source interface {
	FetchOne(ctx context.Context) (*consumer.Message, error)
}

// SnapshotHandler 快照处理器接口
type SnapshotHandler interface {
	HandleSnapshot(snap Snapshot) error
}

// Producer 快照生产器
// 外部调度器按固定间隔调用 Tick，调用之间不重叠，无需并发保护计数
type Producer struct {
	source    Source
	agg       *aggregator.Aggregator
	handlers  []SnapshotHandler
	batchSize int

	// 统计信息
	stats struct {
		sync.RWMutex
		ticks       int64
		messages    int64
		emptyTicks  int64
		fetchErrors int64
		lastTick    time.Time
	}
}

// NewProducer 创建快照生产器
// batchSize 为单个 tick 最多消费的消息数，默认 1，避免单次 tick 拖长
func NewProducer(source Source, agg *aggregator.Aggregator, batchSize int) *Producer {
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Producer{
		source:    source,
		agg:       agg,
		handlers:  make([]SnapshotHandler, 0),
		batchSize: batchSize,
	}
}

// AddHandler 添加快照处理器
func (p *Producer) AddHandler(handler SnapshotHandler) {
	p.handlers = append(p.handlers, handler)
	ylog.Infof("chart", "added handler: %T (total handlers: %d)", handler, len(p.handlers))
}

// Tick 执行一次更新周期：拉取 ≤batchSize 条消息 → 更新计数 → 派生快照 → 分发
// 拉取/解码错误仅记录，本次 tick 视作无消息，节拍不受影响
func (p *Producer) Tick(ctx context.Context) Snapshot {
	consumed := 0
	for i := 0; i < p.batchSize; i++ {
		msg, err := p.source.FetchOne(ctx)
		if err != nil {
			ylog.Errorf("chart", "fetch failed, skipping rest of tick: %v", err)
			p.stats.Lock()
			p.stats.fetchErrors++
			p.stats.Unlock()
			break
		}
		if msg == nil {
			break
		}
		consumed++
		p.agg.Update(msg.Text)
	}

	snap := BuildSnapshot(p.agg.Counts())
	p.dispatch(snap)

	p.stats.Lock()
	p.stats.ticks++
	p.stats.messages += int64(consumed)
	if consumed == 0 {
		p.stats.emptyTicks++
	}
	p.stats.lastTick = time.Now()
	p.stats.Unlock()

	return snap
}

// dispatch 将快照分发给全部处理器，单个处理器失败不影响其余
func (p *Producer) dispatch(snap Snapshot) {
	if len(p.handlers) == 0 {
		ylog.Warnf("chart", "no handlers registered, dropping snapshot (%d slices)", len(snap.Labels))
		return
	}
	for _, handler := range p.handlers {
		if err := handler.HandleSnapshot(snap); err != nil {
			ylog.Errorf("chart", "handler %T failed to process snapshot: %v", handler, err)
		}
	}
}

// ProducerStats 生产器统计信息
type ProducerStats struct {
	Ticks       int64     `json:"ticks"`
	Messages    int64     `json:"messages"`
	EmptyTicks  int64     `json:"empty_ticks"`
	FetchErrors int64     `json:"fetch_errors"`
	LastTick    time.Time `json:"last_tick"`
}

// Stats 获取统计信息
func (p *Producer) Stats() ProducerStats {
	p.stats.RLock()
	defer p.stats.RUnlock()
	return ProducerStats{
		Ticks:       p.stats.ticks,
		Messages:    p.stats.messages,
		EmptyTicks:  p.stats.emptyTicks,
		FetchErrors: p.stats.fetchErrors,
		LastTick:    p.stats.lastTick,
	}
}

// LogHandler 日志处理器，把每个切片写入观测日志
type LogHandler struct{}

func (h *LogHandler) HandleSnapshot(snap Snapshot) error {
	if snap.Placeholder() {
		ylog.Debugf("chart", "snapshot: waiting for data")
		return nil
	}
	total := snap.Total()
	for i, label := range snap.Labels {
		ylog.Infof("chart", "slice '%s': %d (%.1f%%)",
			label, snap.Sizes[i], float64(snap.Sizes[i])*100/float64(total))
	}
	return nil
}
