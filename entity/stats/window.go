package stats

import "gonum.org/v1/gonum/stat"

// Window 等待时长的滚动窗口
// 功能：固定容量的FIFO缓冲，保存最近的等待时长样本，溢出时淘汰最旧者
type Window struct {
	buf  []float64
	head int // 最旧样本的位置
	size int
}

// NewWindow 创建滚动窗口
// 参数：capacity-窗口容量
// 返回：初始化完成的窗口实例
func NewWindow(capacity int) *Window {
	return &Window{buf: make([]float64, capacity)}
}

// Push 写入一个样本
// 功能：窗口未满时追加，已满时覆盖最旧样本
// 参数：v-等待时长（秒）
func (w *Window) Push(v float64) {
	if w.size < len(w.buf) {
		w.buf[(w.head+w.size)%len(w.buf)] = v
		w.size++
	} else {
		w.buf[w.head] = v
		w.head = (w.head + 1) % len(w.buf)
	}
}

// Len 获取当前样本数
func (w *Window) Len() int {
	return w.size
}

// Cap 获取窗口容量
func (w *Window) Cap() int {
	return len(w.buf)
}

// Samples 获取全部样本
// 返回：从最旧到最新排列的样本副本
func (w *Window) Samples() []float64 {
	out := make([]float64, w.size)
	for i := 0; i < w.size; i++ {
		out[i] = w.buf[(w.head+i)%len(w.buf)]
	}
	return out
}

// Mean 获取样本均值
// 返回：窗口内等待时长的算术平均，空窗口为0
func (w *Window) Mean() float64 {
	if w.size == 0 {
		return 0
	}
	return stat.Mean(w.Samples(), nil)
}
