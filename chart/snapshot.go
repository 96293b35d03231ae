package chart

import "github.com/charlesren/action_word_monitor/aggregator"

// DefaultActions 默认动作词表
var DefaultActions = aggregator.Vocabulary{"found", "saw", "tried", "shared", "loved"}

// Palette 亮色调色板，长度独立于词表，循环复用
var Palette = []string{"#FF5733", "#33FF57", "#3357FF", "#F3FF33", "#FF33A8"}

const (
	// PlaceholderLabel 尚无数据时的占位切片标签
	PlaceholderLabel = "Waiting for data..."

	// placeholderColor 占位切片的中性色，不占用调色板
	placeholderColor = "#808080"
)

// Snapshot 渲染就绪的图表快照，三个平行序列，构建后不可变
// 每个 tick 重新计算整体替换，从不原地修改
type Snapshot struct {
	Labels []string
	Sizes  []int
	Colors []string
}

// Placeholder 是否为占位快照
func (s Snapshot) Placeholder() bool {
	return len(s.Labels) == 1 && s.Labels[0] == PlaceholderLabel
}

// Total 所有切片大小之和，占位快照恒为 1
func (s Snapshot) Total() int {
	total := 0
	for _, size := range s.Sizes {
		total += size
	}
	return total
}

// BuildSnapshot 由当前计数派生快照，纯函数，不触碰聚合器状态
// 全零计数返回单切片占位快照，避免比例图出现 0/0
func BuildSnapshot(counts []aggregator.WordCount) Snapshot {
	allZero := true
	for _, wc := range counts {
		if wc.Count != 0 {
			allZero = false
			break
		}
	}

	if allZero {
		return Snapshot{
			Labels: []string{PlaceholderLabel},
			Sizes:  []int{1},
			Colors: []string{placeholderColor},
		}
	}

	snap := Snapshot{
		Labels: make([]string, 0, len(counts)),
		Sizes:  make([]int, 0, len(counts)),
		Colors: make([]string, 0, len(counts)),
	}
	for i, wc := range counts {
		snap.Labels = append(snap.Labels, wc.Word)
		snap.Sizes = append(snap.Sizes, wc.Count)
		snap.Colors = append(snap.Colors, Palette[i%len(Palette)])
	}
	return snap
}
