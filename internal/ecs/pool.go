package ecs

// Pool is a dense, per-component-kind store. It owns three parallel
// structures: a dense value vector, a dense entity vector (the "reverse"
// map from dense index to entity), and a sparse map from entity index to
// dense index. Removal swaps the victim with the last element and pops,
// keeping iteration contiguous and add/remove/lookup O(1) amortized.
//
// Pools are not internally synchronized: the scheduler's dependency graph
// is the thing that keeps a pool's writer single-threaded within a stage
// (see the concurrency & resource model), so Pool stays as lock-free as the
// sparse-set pattern it is grounded on.
type Pool[T any] struct {
	sparse        []int32 // by entity index -> dense index, -1 if absent
	denseEntities []Entity
	denseValues   []T
}

func newPool[T any]() *Pool[T] {
	return &Pool[T]{}
}

func (p *Pool[T]) ensureSparse(idx int) {
	if idx < len(p.sparse) {
		return
	}
	grown := make([]int32, idx+1-len(p.sparse))
	for i := range grown {
		grown[i] = -1
	}
	p.sparse = append(p.sparse, grown...)
}

// has reports whether e currently occupies a slot in this pool.
func (p *Pool[T]) has(e Entity) bool {
	idx := int(e.Index())
	if idx >= len(p.sparse) {
		return false
	}
	di := p.sparse[idx]
	return di >= 0 && p.denseEntities[di] == e
}

// set inserts a new component for e, or overwrites the existing one.
func (p *Pool[T]) set(e Entity, v T) {
	idx := int(e.Index())
	p.ensureSparse(idx)
	if di := p.sparse[idx]; di >= 0 && p.denseEntities[di] == e {
		p.denseValues[di] = v
		return
	}
	p.sparse[idx] = int32(len(p.denseEntities))
	p.denseEntities = append(p.denseEntities, e)
	p.denseValues = append(p.denseValues, v)
}

// get returns a pointer into the dense value vector for e. The pointer is
// valid only until the pool's next structural mutation (set/remove), since
// swap-and-pop and append may relocate the backing array.
func (p *Pool[T]) get(e Entity) (*T, bool) {
	idx := int(e.Index())
	if idx >= len(p.sparse) {
		return nil, false
	}
	di := p.sparse[idx]
	if di < 0 || p.denseEntities[di] != e {
		return nil, false
	}
	return &p.denseValues[di], true
}

// remove deletes e's component, swapping the last dense element into its
// slot and updating the sparse map for the relocated entity.
func (p *Pool[T]) remove(e Entity) {
	idx := int(e.Index())
	if idx >= len(p.sparse) {
		return
	}
	di := p.sparse[idx]
	if di < 0 || p.denseEntities[di] != e {
		return
	}

	last := int32(len(p.denseEntities) - 1)
	lastEntity := p.denseEntities[last]

	p.denseEntities[di] = lastEntity
	p.denseValues[di] = p.denseValues[last]
	p.sparse[lastEntity.Index()] = di

	p.denseEntities = p.denseEntities[:last]
	p.denseValues = p.denseValues[:last]
	p.sparse[idx] = -1
}

func (p *Pool[T]) len() int {
	return len(p.denseEntities)
}

// entities returns the dense entity vector backing this pool. Callers must
// not retain it across a structural mutation.
func (p *Pool[T]) entities() []Entity {
	return p.denseEntities
}
