package parser

// Lane layout: the first path lands at laneFloor+laneStep and each new
// path stacks laneStep below the previous one.
const (
	laneFloor = 10
	laneStep  = 30
)

// LaneTable assigns each distinct path a stable vertical rendering
// lane in first-seen order. Heights are strictly increasing and never
// reused. The table is scoped to one parse invocation; nothing
// persists across runs.
type LaneTable struct {
	heights map[string]int
	order   []string
	max     int
}

// NewLaneTable returns an empty lane table.
func NewLaneTable() *LaneTable {
	return &LaneTable{heights: make(map[string]int), max: laneFloor}
}

// HeightFor returns the lane height for path, assigning the next free
// lane on first reference.
func (t *LaneTable) HeightFor(path string) int {
	if h, ok := t.heights[path]; ok {
		return h
	}
	t.max += laneStep
	t.heights[path] = t.max
	t.order = append(t.order, path)
	return t.max
}

// Paths returns the assigned paths in first-seen order.
func (t *LaneTable) Paths() []string {
	return t.order
}

// Max returns the highest assigned lane, or the floor when no path has
// been assigned yet.
func (t *LaneTable) Max() int {
	return t.max
}
