package aggregator

import (
	"strings"
	"sync"

	"github.com/charlesren/ylog"
)

// Vocabulary 动作词表，启动时固定，顺序稳定
type Vocabulary []string

// WordCount 单个词的当前计数
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Aggregator 词频聚合器
// counts 只增不减，进程退出即销毁，不做持久化
type Aggregator struct {
	vocab  Vocabulary
	counts map[string]int
	mu     sync.Mutex
}

// New 创建词频聚合器，词表为空时不会有任何计数产生
func New(vocab Vocabulary) *Aggregator {
	v := make(Vocabulary, len(vocab))
	copy(v, vocab)

	counts := make(map[string]int, len(v))
	for _, word := range v {
		counts[word] = 0
	}

	return &Aggregator{
		vocab:  v,
		counts: counts,
	}
}

// Vocabulary 返回词表（拷贝，调用方不可变更内部状态）
func (a *Aggregator) Vocabulary() Vocabulary {
	v := make(Vocabulary, len(a.vocab))
	copy(v, a.vocab)
	return v
}

// Update 对一条消息文本做子串匹配，命中的词各加 1
// 大小写敏感，不做分词和归一化；空文本零命中，不报错
func (a *Aggregator) Update(text string) []WordCount {
	if text == "" {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	var incremented []WordCount
	for _, word := range a.vocab {
		if strings.Contains(text, word) {
			a.counts[word]++
			incremented = append(incremented, WordCount{Word: word, Count: a.counts[word]})
			ylog.Infof("aggregator", "updated count for '%s': %d", word, a.counts[word])
		}
	}
	return incremented
}

// Counts 返回当前计数快照（按词表顺序）
func (a *Aggregator) Counts() []WordCount {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]WordCount, 0, len(a.vocab))
	for _, word := range a.vocab {
		out = append(out, WordCount{Word: word, Count: a.counts[word]})
	}
	return out
}

// Count 返回单个词的当前计数，词表外的词恒为 0
func (a *Aggregator) Count(word string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.counts[word]
}

// AllZero 是否尚未观察到任何命中
func (a *Aggregator) AllZero() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, word := range a.vocab {
		if a.counts[word] != 0 {
			return false
		}
	}
	return true
}

// Total 所有词的计数总和
func (a *Aggregator) Total() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	total := 0
	for _, word := range a.vocab {
		total += a.counts[word]
	}
	return total
}
