package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charlesren/action_word_monitor/chart"
	"github.com/charmbracelet/lipgloss"
)

// TerminalRenderer 终端渲染器，实现 chart.SnapshotHandler
// 用一条按比例着色的水平条加图例近似饼图，样式只在本包内
type TerminalRenderer struct {
	title string
	width int
	out   io.Writer

	titleStyle lipgloss.Style
}

const defaultBarWidth = 60

// NewTerminalRenderer 创建终端渲染器，输出到标准输出
func NewTerminalRenderer(title string) *TerminalRenderer {
	return &TerminalRenderer{
		title:      title,
		width:      defaultBarWidth,
		out:        os.Stdout,
		titleStyle: lipgloss.NewStyle().Bold(true),
	}
}

// WithOutput 重定向输出（测试用）
func (r *TerminalRenderer) WithOutput(out io.Writer) *TerminalRenderer {
	r.out = out
	return r
}

// HandleSnapshot 重绘图表：标题、比例条、各切片图例
func (r *TerminalRenderer) HandleSnapshot(snap chart.Snapshot) error {
	var b strings.Builder

	b.WriteString(r.titleStyle.Render(r.title))
	b.WriteString("\n")
	b.WriteString(r.renderBar(snap))
	b.WriteString("\n")

	total := snap.Total()
	for i, label := range snap.Labels {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(snap.Colors[i]))
		pct := float64(snap.Sizes[i]) * 100 / float64(total)
		b.WriteString(fmt.Sprintf("  %s %-24s %4d  %5.1f%%\n",
			style.Render("■"), label, snap.Sizes[i], pct))
	}

	_, err := fmt.Fprintln(r.out, b.String())
	return err
}

// renderBar 按切片占比分配条宽，保证每个非零切片至少占一格
func (r *TerminalRenderer) renderBar(snap chart.Snapshot) string {
	total := snap.Total()
	if total == 0 {
		return ""
	}

	var b strings.Builder
	used := 0
	for i, size := range snap.Sizes {
		cells := size * r.width / total
		if cells == 0 && size > 0 {
			cells = 1
		}
		if i == len(snap.Sizes)-1 {
			cells = r.width - used
			if cells < 0 {
				cells = 0
			}
		}
		used += cells
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(snap.Colors[i]))
		b.WriteString(style.Render(strings.Repeat("█", cells)))
	}
	return b.String()
}
