// Package prob implements the sliding-window adaptive binary model
// shared by the encoder and decoder halves of the arithmetic coder. A
// single Model type is used on both sides: given the same sequence of
// Update calls, both sides compute bit-identical (P0, P1) pairs.
package prob

// MaxWindow is the largest window size the model supports, in bits of
// recent history.
const MaxWindow = 2048

// Model tracks Laplace-smoothed counts of recent 0s and 1s over a
// sliding window of the last Window bits coded.
type Model struct {
	count  [2]uint32
	window uint32
	history [2 * MaxWindow]uint8
	head, tail uint32
}

// New creates a Model with the given window size, 1..MaxWindow.
func New(window uint32) *Model {
	if window < 1 || window > MaxWindow {
		panic("prob: window out of range")
	}
	return &Model{window: window}
}

// Reset reinitializes the model to its empty state, keeping the
// configured window size.
func (m *Model) Reset() {
	m.count = [2]uint32{}
	m.head, m.tail = 0, 0
}

// P returns the current (p0, p1) pair, each Laplace-smoothed by 1 so
// neither is ever zero.
func (m *Model) P() (p0, p1 uint32) {
	return m.count[0] + 1, m.count[1] + 1
}

// Update absorbs bit into the window, evicting the oldest bit once
// the window is full. It must be called with the same bit on both the
// encode and decode sides, after the (p0, p1) pair for that bit has
// already been consumed.
func (m *Model) Update(bit uint32) {
	bit &= 1
	m.count[bit]++

	m.history[m.head%uint32(len(m.history))] = uint8(bit)
	m.head++

	if m.head-m.tail > m.window {
		evicted := m.history[m.tail%uint32(len(m.history))]
		m.count[evicted]--
		m.tail++
	}
}
