package grow

// CycleStats summarizes the tree after one cycle. Cycle 0 is reported once
// the initial growth has finished.
type CycleStats struct {
	Cycle    int `json:"cycle"`
	LiveBuds int `json:"live_buds"`
	Chains   int `json:"chains"`
	Segments int `json:"segments"`
	Leaves   int `json:"leaves"`
	Born     int `json:"born"`
	Died     int `json:"died"`
}

type CycleObserver interface {
	OnCycle(stats CycleStats)
}

// ObserverFunc adapts a function to CycleObserver.
type ObserverFunc func(stats CycleStats)

func (f ObserverFunc) OnCycle(stats CycleStats) { f(stats) }

// Recorder keeps every reported CycleStats.
type Recorder struct {
	History []CycleStats
}

func NewRecorder() *Recorder {
	return &Recorder{History: make([]CycleStats, 0)}
}

func (r *Recorder) OnCycle(stats CycleStats) { r.History = append(r.History, stats) }

// Series extracts one field per recorded cycle, ready for plotting.
func (r *Recorder) Series(field func(CycleStats) int) []float64 {
	out := make([]float64, len(r.History))
	for i, s := range r.History {
		out[i] = float64(field(s))
	}
	return out
}

// TotalBorn sums the branching events over every recorded cycle.
func (r *Recorder) TotalBorn() int {
	total := 0
	for _, s := range r.History {
		total += s.Born
	}
	return total
}
