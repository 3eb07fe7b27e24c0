package reactive_test

import (
	"errors"
	"testing"

	"github.com/delaneyj/bindparty/reactive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	name  string
	calls *[]string
	err   error
}

func (r *recorder) Update() error {
	*r.calls = append(*r.calls, r.name)
	return r.err
}

func TestDep(t *testing.T) {
	t.Run("notifies in registration order", func(t *testing.T) {
		var calls []string
		dep := reactive.NewDep("msg")
		dep.AddDep(&recorder{name: "a", calls: &calls})
		dep.AddDep(&recorder{name: "b", calls: &calls})
		dep.AddDep(&recorder{name: "c", calls: &calls})

		require.NoError(t, dep.Notify())
		assert.Equal(t, []string{"a", "b", "c"}, calls)
	})

	t.Run("keeps duplicates", func(t *testing.T) {
		var calls []string
		dep := reactive.NewDep("msg")
		sub := &recorder{name: "a", calls: &calls}
		dep.AddDep(sub)
		dep.AddDep(sub)

		assert.Equal(t, 2, dep.Len())
		require.NoError(t, dep.Notify())
		assert.Equal(t, []string{"a", "a"}, calls)
	})

	t.Run("stops at the first failing update", func(t *testing.T) {
		var calls []string
		boom := errors.New("boom")
		dep := reactive.NewDep("user.name")
		dep.AddDep(&recorder{name: "a", calls: &calls})
		dep.AddDep(&recorder{name: "b", calls: &calls, err: boom})
		dep.AddDep(&recorder{name: "c", calls: &calls})

		err := dep.Notify()
		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "user.name")
		assert.Equal(t, []string{"a", "b"}, calls)
	})

	t.Run("ids follow the key path", func(t *testing.T) {
		assert.Equal(t, reactive.NewDep("a.b").ID(), reactive.NewDep("a.b").ID())
		assert.NotEqual(t, reactive.NewDep("a.b").ID(), reactive.NewDep("a.c").ID())
		assert.Equal(t, "a.b", reactive.NewDep("a.b").Key())
	})
}
