package manager

import (
	"context"
	"time"

	"github.com/charlesren/action_word_monitor/chart"
	"github.com/charlesren/ylog"
	"golang.org/x/sync/errgroup"
)

// Ticker 周期更新入口，由 Manager 按固定壁钟间隔驱动
type Ticker interface {
	Tick(ctx context.Context) chart.Snapshot
}

// Manager 运行管理器
// 单协程驱动 tick，一次 Tick 完整结束后才等待下一个节拍，tick 之间从不重叠
type Manager struct {
	producer Ticker
	interval time.Duration
	cancel   context.CancelFunc
	g        *errgroup.Group
}

// NewManager 创建运行管理器
func NewManager(producer Ticker, interval time.Duration) *Manager {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Manager{
		producer: producer,
		interval: interval,
	}
}

// Start 启动 tick 循环
func (m *Manager) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.g, ctx = errgroup.WithContext(ctx)

	m.g.Go(func() error { return m.run(ctx) })
	ylog.Infof("manager", "tick loop started (interval: %v)", m.interval)
}

func (m *Manager) run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.producer.Tick(ctx)
		case <-ctx.Done():
			return nil
		}
	}
}

// Stop 停止 tick 循环并等待当前 tick 结束
func (m *Manager) Stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	m.g.Wait()
	ylog.Infof("manager", "tick loop stopped")
}
