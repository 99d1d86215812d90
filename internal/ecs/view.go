package ecs

// View1 visits every live entity bearing a component of type A, calling fn
// with a mutable pointer to it. Iteration order is the pool's dense order
// and is stable within a single View call but unspecified across calls.
func View1[A any](r *Registry, fn func(e Entity, a *A)) {
	pa := poolFor[A](r)
	for _, e := range driverEntities(pa.entities()) {
		a, ok := pa.get(e)
		if !ok {
			continue
		}
		fn(e, a)
	}
}

// View2 visits every live entity bearing components A and B.
func View2[A, B any](r *Registry, fn func(e Entity, a *A, b *B)) {
	pa := poolFor[A](r)
	pb := poolFor[B](r)
	driver := driverEntities(pa.entities(), pb.entities())
	for _, e := range driver {
		a, ok := pa.get(e)
		if !ok {
			continue
		}
		b, ok := pb.get(e)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}

// View3 visits every live entity bearing components A, B, and C.
func View3[A, B, C any](r *Registry, fn func(e Entity, a *A, b *B, c *C)) {
	pa := poolFor[A](r)
	pb := poolFor[B](r)
	pc := poolFor[C](r)
	driver := driverEntities(pa.entities(), pb.entities(), pc.entities())
	for _, e := range driver {
		a, ok := pa.get(e)
		if !ok {
			continue
		}
		b, ok := pb.get(e)
		if !ok {
			continue
		}
		c, ok := pc.get(e)
		if !ok {
			continue
		}
		fn(e, a, b, c)
	}
}

// View4 visits every live entity bearing components A, B, C, and D.
func View4[A, B, C, D any](r *Registry, fn func(e Entity, a *A, b *B, c *C, d *D)) {
	pa := poolFor[A](r)
	pb := poolFor[B](r)
	pc := poolFor[C](r)
	pd := poolFor[D](r)
	driver := driverEntities(pa.entities(), pb.entities(), pc.entities(), pd.entities())
	for _, e := range driver {
		a, ok := pa.get(e)
		if !ok {
			continue
		}
		b, ok := pb.get(e)
		if !ok {
			continue
		}
		c, ok := pc.get(e)
		if !ok {
			continue
		}
		d, ok := pd.get(e)
		if !ok {
			continue
		}
		fn(e, a, b, c, d)
	}
}

// View5 visits every live entity bearing components A, B, C, D, and E.
func View5[A, B, C, D, E any](r *Registry, fn func(e Entity, a *A, b *B, c *C, d *D, ee *E)) {
	pa := poolFor[A](r)
	pb := poolFor[B](r)
	pc := poolFor[C](r)
	pd := poolFor[D](r)
	pe := poolFor[E](r)
	driver := driverEntities(pa.entities(), pb.entities(), pc.entities(), pd.entities(), pe.entities())
	for _, e := range driver {
		a, ok := pa.get(e)
		if !ok {
			continue
		}
		b, ok := pb.get(e)
		if !ok {
			continue
		}
		c, ok := pc.get(e)
		if !ok {
			continue
		}
		d, ok := pd.get(e)
		if !ok {
			continue
		}
		ee, ok := pe.get(e)
		if !ok {
			continue
		}
		fn(e, a, b, c, d, ee)
	}
}

// View6 visits every live entity bearing components A, B, C, D, E, and F.
// No system in this module uses a six-component view; Control iterates with
// View4 and fetches its autopilot state and control surface with Get.
func View6[A, B, C, D, E, F any](r *Registry, fn func(e Entity, a *A, b *B, c *C, d *D, ee *E, f *F)) {
	pa := poolFor[A](r)
	pb := poolFor[B](r)
	pc := poolFor[C](r)
	pd := poolFor[D](r)
	pe := poolFor[E](r)
	pf := poolFor[F](r)
	driver := driverEntities(pa.entities(), pb.entities(), pc.entities(), pd.entities(), pe.entities(), pf.entities())
	for _, e := range driver {
		a, ok := pa.get(e)
		if !ok {
			continue
		}
		b, ok := pb.get(e)
		if !ok {
			continue
		}
		c, ok := pc.get(e)
		if !ok {
			continue
		}
		d, ok := pd.get(e)
		if !ok {
			continue
		}
		ee, ok := pe.get(e)
		if !ok {
			continue
		}
		f, ok := pf.get(e)
		if !ok {
			continue
		}
		fn(e, a, b, c, d, ee, f)
	}
}

// driverEntities picks the shortest of the given dense entity vectors to
// drive iteration (fewer membership checks against the others) and returns
// a defensive copy, since a view's callback may itself add or remove
// components and must not observe a pool's slice mutate out from under it
// mid-iteration.
func driverEntities(vecs ...[]Entity) []Entity {
	shortest := vecs[0]
	for _, v := range vecs[1:] {
		if len(v) < len(shortest) {
			shortest = v
		}
	}
	out := make([]Entity, len(shortest))
	copy(out, shortest)
	return out
}
