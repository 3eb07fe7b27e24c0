package reactive_test

import (
	"errors"
	"testing"

	"github.com/delaneyj/bindparty/reactive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher(t *testing.T) {
	/*
	   msg   other
	    |
	    w
	*/
	t.Run("registers with exactly the key it reads", func(t *testing.T) {
		rc := &reactive.ReactiveContext{}
		data := reactive.Observe(rc, map[string]any{"msg": "hi", "other": 1})

		// reads made elsewhere are not tracked
		data.Get("other")
		w := reactive.NewWatcher(data, "msg", func(value any) error { return nil })
		data.Get("other")

		require.Equal(t, 1, data.Dep("msg").Len())
		assert.Same(t, w, data.Dep("msg").Subscribers()[0])
		assert.Equal(t, 0, data.Dep("other").Len())
		assert.Nil(t, rc.Target())
	})

	t.Run("update re-reads without memoization", func(t *testing.T) {
		rc := &reactive.ReactiveContext{}
		data := reactive.Observe(rc, map[string]any{"msg": "hi"})

		var seen []any
		w := reactive.NewWatcher(data, "msg", func(value any) error {
			seen = append(seen, value)
			return nil
		})
		assert.Empty(t, seen)

		require.NoError(t, w.Update())
		require.NoError(t, w.Update())
		assert.Equal(t, []any{"hi", "hi"}, seen)
	})

	t.Run("clears the target when the read panics", func(t *testing.T) {
		rc := &reactive.ReactiveContext{}
		scope := &panicky{rc: rc}

		assert.Panics(t, func() {
			reactive.NewWatcher(scope, "x", func(any) error { return nil })
		})
		assert.Nil(t, rc.Target())
	})

	t.Run("update errors come back from Set", func(t *testing.T) {
		rc := &reactive.ReactiveContext{}
		data := reactive.Observe(rc, map[string]any{"msg": "hi"})
		boom := errors.New("boom")
		reactive.NewWatcher(data, "msg", func(value any) error { return boom })

		assert.ErrorIs(t, data.Set("msg", "bye"), boom)
		// the write itself happened
		assert.Equal(t, "bye", data.Get("msg"))
	})
}

type panicky struct {
	rc *reactive.ReactiveContext
}

func (p *panicky) Context() *reactive.ReactiveContext { return p.rc }
func (p *panicky) Get(key string) any                 { panic("read " + key) }
func (p *panicky) Set(key string, value any) error    { return nil }
