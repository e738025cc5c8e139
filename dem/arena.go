package dem

import "stim/simd"

// arena wraps simd.Arena with an intern helper: append a short-lived
// slice's contents onto the tail and immediately commit, handing back
// a stable slice the caller can keep without worrying about later
// interns aliasing into it.
type arena[T any] struct {
	a *simd.Arena[T]
}

func newArena[T any](initialCap int) *arena[T] {
	return &arena[T]{a: simd.NewArena[T](initialCap)}
}

func (ar *arena[T]) intern(vs []T) []T {
	if len(vs) == 0 {
		return nil
	}
	ar.a.AppendAll(vs)
	return ar.a.Commit()
}
