package reactive

// Scope is what bound expressions are read from and written to.
type Scope interface {
	Context() *ReactiveContext
	Get(key string) any
	Set(key string, value any) error
}

type UpdateFunc func(value any) error

// Watcher re-runs its callback whenever the one key it read at
// construction changes. It never re-tracks.
type Watcher struct {
	scope Scope
	key   string
	fn    UpdateFunc
}

// NewWatcher registers the watcher with the dependency set of key by
// reading it once while the watcher is the context's target.
func NewWatcher(scope Scope, key string, fn UpdateFunc) *Watcher {
	w := &Watcher{
		scope: scope,
		key:   key,
		fn:    fn,
	}

	rc := scope.Context()
	rc.target = w
	defer func() {
		rc.target = nil
	}()
	scope.Get(key)

	return w
}

func (w *Watcher) Key() string {
	return w.key
}

// Update reads the current value and hands it to the callback.
func (w *Watcher) Update() error {
	return w.fn(w.scope.Get(w.key))
}
