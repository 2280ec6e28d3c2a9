package genetics

import "sync"

// nodePair is the key used to memoize node-split innovations: the connection that was split.
type nodePair struct {
	from, to int
}

// InnovationRegistry assigns and memoizes globally-unique innovation numbers to structural
// additions within a single run. One registry is shared by every genome in that run.
//
// Connection innovations and node-split innovations share the same counter and map space - a
// genome never needs to distinguish "kind" of innovation number, only compare them for equality,
// so a single monotone sequence keeps the bookkeeping simple.
type InnovationRegistry struct {
	mu       sync.Mutex
	next     int64
	byConn   map[nodePair]int64
	byNode   map[nodePair]int64
}

// NewInnovationRegistry returns an empty registry with its counter starting at 0.
func NewInnovationRegistry() *InnovationRegistry {
	return &InnovationRegistry{
		byConn: make(map[nodePair]int64),
		byNode: make(map[nodePair]int64),
	}
}

// ConnectionInnovation returns the innovation number for a connection between the two node
// identities, assigning a fresh one on first use. Repeated calls with the same pair always
// return the same number, for any genome in the run.
func (r *InnovationRegistry) ConnectionInnovation(from, to int) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := nodePair{from, to}
	if num, ok := r.byConn[key]; ok {
		return num
	}
	num := r.next
	r.next++
	r.byConn[key] = num
	return num
}

// NodeInnovation returns the innovation number identifying the hidden node introduced by
// splitting the connection (from, to), assigning a fresh one on first use. Distinct from
// ConnectionInnovation's id-space only in the map it is recorded under; both draw from the same
// counter.
func (r *InnovationRegistry) NodeInnovation(from, to int) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := nodePair{from, to}
	if num, ok := r.byNode[key]; ok {
		return num
	}
	num := r.next
	r.next++
	r.byNode[key] = num
	return num
}

// Size returns the number of innovation numbers issued so far, for diagnostics.
func (r *InnovationRegistry) Size() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.next
}
