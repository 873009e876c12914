// Package reactive holds named mutable values that notify observers when
// they change.
package reactive

import "sync"

// Signal is the read side of a Cell.
type Signal[T any] interface {
	Get() T
	// Subscribe calls fn with the current value and then with every
	// published change until the returned function is called.
	Subscribe(fn func(T)) (unsubscribe func())
}

type observer[T any] struct {
	id int
	fn func(T)
}

// Cell is a value with change notification. Observers run synchronously on
// the goroutine that called Set, in subscription order.
type Cell[T any] struct {
	mutex     sync.Mutex
	value     T
	equal     func(a, b T) bool
	observers []observer[T]
	nextID    int
}

// NewCell returns a cell that publishes every Set, even of an identical value.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{value: initial}
}

// NewDistinctCell returns a cell that ignores a Set whose value equals the
// current one according to equal.
func NewDistinctCell[T any](initial T, equal func(a, b T) bool) *Cell[T] {
	return &Cell[T]{value: initial, equal: equal}
}

// Distinct is an equality for comparable values.
func Distinct[T comparable](a, b T) bool {
	return a == b
}

func (c *Cell[T]) Get() T {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.value
}

// Set stores v and notifies observers. It reports whether a notification
// was published.
func (c *Cell[T]) Set(v T) bool {
	return c.SetIf(v, nil)
}

// SetIf is Set guarded by cond, which is evaluated under the cell's lock
// right before v is stored. A nil cond always holds. cond must not touch
// the cell.
func (c *Cell[T]) SetIf(v T, cond func() bool) bool {
	c.mutex.Lock()
	if cond != nil && !cond() {
		c.mutex.Unlock()
		return false
	}
	if c.equal != nil && c.equal(c.value, v) {
		c.mutex.Unlock()
		return false
	}
	c.value = v
	observers := make([]observer[T], len(c.observers))
	copy(observers, c.observers)
	c.mutex.Unlock()

	for _, o := range observers {
		o.fn(v)
	}
	return true
}

func (c *Cell[T]) Subscribe(fn func(T)) func() {
	c.mutex.Lock()
	id := c.nextID
	c.nextID++
	c.observers = append(c.observers, observer[T]{id: id, fn: fn})
	current := c.value
	c.mutex.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mutex.Lock()
			defer c.mutex.Unlock()
			for i, o := range c.observers {
				if o.id == id {
					c.observers = append(c.observers[:i], c.observers[i+1:]...)
					return
				}
			}
		})
	}
}

// Map derives a distinct cell whose value is fn applied to src. The derived
// cell follows src until stop is called.
func Map[S any, T comparable](src Signal[S], fn func(S) T) (derived *Cell[T], stop func()) {
	derived = NewDistinctCell(fn(src.Get()), Distinct[T])
	stop = src.Subscribe(func(v S) {
		derived.Set(fn(v))
	})
	return derived, stop
}
