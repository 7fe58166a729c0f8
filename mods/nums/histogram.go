package nums

import (
	"fmt"
	"sync"
)

type Bin struct {
	Low   float64
	High  float64
	count int
}

// The count of the bin.
// This is the number of values that fall into [Low, High).
func (b Bin) Count() int {
	return b.count
}

// Histogram counts values into equally sized bins over [Min, Max].
// Values outside the range are counted in the first or the last bin.
type Histogram struct {
	sync.Mutex
	Min        float64
	Max        float64
	NumBins    int
	bins       []Bin
	totalCount int
}

func (h *Histogram) String() string {
	return fmt.Sprintf(`{"total": %d, "bins": %d}`, h.Total(), len(h.Bins()))
}

func (h *Histogram) Reset() {
	h.Lock()
	defer h.Unlock()
	h.bins = nil
	h.totalCount = 0
}

func (h *Histogram) init() {
	if h.bins != nil {
		return
	}
	n := h.NumBins
	if n <= 0 {
		n = 10
	}
	if h.Max <= h.Min {
		h.Min, h.Max = 0, 1
	}
	width := (h.Max - h.Min) / float64(n)
	h.bins = make([]Bin, n)
	for i := range h.bins {
		h.bins[i].Low = h.Min + float64(i)*width
		h.bins[i].High = h.Min + float64(i+1)*width
	}
	h.bins[n-1].High = h.Max
}

func (h *Histogram) Add(value float64) {
	h.Lock()
	defer h.Unlock()
	h.init()

	h.totalCount += 1
	idx := int((value - h.Min) / (h.Max - h.Min) * float64(len(h.bins)))
	if idx < 0 {
		idx = 0
	} else if idx >= len(h.bins) {
		idx = len(h.bins) - 1
	}
	h.bins[idx].count++
}

func (h *Histogram) Total() int {
	h.Lock()
	defer h.Unlock()
	return h.totalCount
}

func (h *Histogram) Bins() []Bin {
	h.Lock()
	h.init()
	ret := make([]Bin, len(h.bins))
	copy(ret, h.bins)
	h.Unlock()
	return ret
}
