package window

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestReleaserReverseOrder(t *testing.T) {
	var order []string
	var r releaser
	for _, name := range []string{"sdl", "window", "renderer", "audio"} {
		r.add(func() error {
			order = append(order, name)
			return nil
		})
	}

	assert.NoError(t, r.run())
	assert.Len(t, order, 4)
	assert.Equal(t, [4]string{"audio", "renderer", "window", "sdl"}, [4]string(order))
}

// A failure halfway through setup releases exactly what was acquired up to that point.
func TestReleaserPartialSetup(t *testing.T) {
	var released []string
	var r releaser
	r.add(func() error {
		released = append(released, "sdl")
		return nil
	})
	r.add(func() error {
		released = append(released, "window")
		return nil
	})

	assert.NoError(t, r.run())
	assert.Len(t, released, 2)
	assert.Equal(t, [2]string{"window", "sdl"}, [2]string(released))
}

func TestReleaserContinuesAfterError(t *testing.T) {
	destroyErr := errors.New("renderer lost")
	quitCalled := false

	var r releaser
	r.add(func() error {
		quitCalled = true
		return nil
	})
	r.add(func() error {
		return destroyErr
	})

	err := r.run()
	assert.True(t, errors.Is(err, destroyErr))
	assert.True(t, quitCalled)
}

func TestReleaserRunsOnce(t *testing.T) {
	calls := 0
	var r releaser
	r.add(func() error {
		calls++
		return nil
	})

	assert.NoError(t, r.run())
	assert.NoError(t, r.run())
	assert.Equal(t, 1, calls)
}
