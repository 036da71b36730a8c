package design

// hookList is an ordered set of subscriptions that tolerates reentrant changes.
type hookList[T any] struct {
	nextID int
	subs   []hookEntry[T]
}

type hookEntry[T any] struct {
	id    int
	hooks T
}

// add registers hooks and returns a function that removes them.
func (l *hookList[T]) add(hooks T) func() {
	l.nextID++
	id := l.nextID
	l.subs = append(l.subs, hookEntry[T]{id: id, hooks: hooks})
	return func() {
		for i, s := range l.subs {
			if s.id == id {
				l.subs = append(l.subs[:i:i], l.subs[i+1:]...)
				return
			}
		}
	}
}

// snapshot returns the current subscribers in registration order.
func (l *hookList[T]) snapshot() []T {
	out := make([]T, len(l.subs))
	for i, s := range l.subs {
		out[i] = s.hooks
	}
	return out
}

func (l *hookList[T]) reset() {
	l.subs = nil
}
