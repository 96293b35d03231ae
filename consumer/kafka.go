package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charlesren/ylog"
	"github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"
)

// Message 解码后的消息，只保留文本字段，消费一次即丢弃
type Message struct {
	Text string
}

// envelope 原始 JSON 载荷，message 字段缺失按空文本处理
type envelope struct {
	Message string `json:"message"`
}

// Config Kafka 消费配置
type Config struct {
	Server    string // broker 地址，如 localhost:9092
	Topic     string
	GroupID   string
	QueueSize int // 预取队列长度，0 取默认值
}

const defaultQueueSize = 64

// fetchResult 预取结果：消息或单次错误，二者取一
type fetchResult struct {
	msg *Message
	err error
}

// KafkaSource Kafka 流数据源
// 连接启动时建立一次，Close 幂等，进程退出前必须关闭
type KafkaSource struct {
	reader    *kafka.Reader
	pending   chan fetchResult
	cancel    context.CancelFunc
	g         *errgroup.Group
	closeOnce sync.Once
	closeErr  error
	closed    bool
	mu        sync.Mutex
}

// NewKafkaSource 创建Kafka数据源
// 先行拨号探测 broker，失败返回 ErrCodeStartupConnection，
// 由调用方决定退出还是降级，不在此处做库存在性分支
func NewKafkaSource(ctx context.Context, cfg Config) (*KafkaSource, error) {
	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	conn, err := kafka.DialContext(dialCtx, "tcp", cfg.Server)
	if err != nil {
		return nil, NewStreamErrorWithCause(ErrCodeStartupConnection,
			fmt.Sprintf("kafka broker unreachable at %s", cfg.Server), err)
	}
	conn.Close()

	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     []string{cfg.Server},
		Topic:       cfg.Topic,
		GroupID:     cfg.GroupID,
		StartOffset: kafka.FirstOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
	})

	pumpCtx, pumpCancel := context.WithCancel(context.Background())
	g, pumpCtx := errgroup.WithContext(pumpCtx)

	s := &KafkaSource{
		reader:  reader,
		pending: make(chan fetchResult, queueSize),
		cancel:  pumpCancel,
		g:       g,
	}
	g.Go(func() error { return s.pump(pumpCtx) })

	ylog.Infof("consumer", "kafka consumer connected to %s, listening on topic '%s' (group: %s)",
		cfg.Server, cfg.Topic, cfg.GroupID)
	return s, nil
}

// pump 后台预取循环，解码后写入 pending 队列
// 队列满时阻塞在写入上，对 broker 形成自然背压，不丢消息
func (s *KafkaSource) pump(ctx context.Context) error {
	for {
		m, err := s.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.ErrClosedPipe) || errors.Is(err, io.EOF) {
				return nil
			}
			if !s.deliver(ctx, fetchResult{err: NewStreamErrorWithCause(ErrCodeFetchFailed,
				"failed to read message from kafka", err)}) {
				return nil
			}
			continue
		}

		var env envelope
		if jerr := json.Unmarshal(m.Value, &env); jerr != nil {
			if !s.deliver(ctx, fetchResult{err: NewStreamErrorWithCause(ErrCodeDecodeFailed,
				fmt.Sprintf("malformed payload at offset %d", m.Offset), jerr)}) {
				return nil
			}
			continue
		}

		if !s.deliver(ctx, fetchResult{msg: &Message{Text: env.Message}}) {
			return nil
		}
	}
}

func (s *KafkaSource) deliver(ctx context.Context, r fetchResult) bool {
	select {
	case s.pending <- r:
		return true
	case <-ctx.Done():
		return false
	}
}

// FetchOne 取至多一条已预取的消息，队列为空立即返回 (nil, nil)
// 返回的错误均为单次拉取/解码错误，调用方记录后继续即可
func (s *KafkaSource) FetchOne(ctx context.Context) (*Message, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, ErrSourceClosed
	}

	select {
	case r := <-s.pending:
		return r.msg, r.err
	case <-ctx.Done():
		// 进程级关停，不算单次拉取错误，按无消息处理
		return nil, nil
	default:
		return nil, nil
	}
}

// Close 关闭数据源，幂等，只真正关闭一次
func (s *KafkaSource) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()

		s.cancel()
		s.closeErr = s.reader.Close()
		if werr := s.g.Wait(); werr != nil && s.closeErr == nil {
			s.closeErr = werr
		}
		ylog.Infof("consumer", "kafka consumer closed")
	})
	return s.closeErr
}
