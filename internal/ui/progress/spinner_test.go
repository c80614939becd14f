package progress

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func TestSpinnerModel_Render(t *testing.T) {
	t.Parallel()

	c := &clock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	m := newSpinnerModel("Fetching upstream...", c.now)
	assert.Contains(t, m.render(), "Fetching upstream...")
	assert.NotContains(t, m.render(), "(", "no elapsed time for short steps")

	c.t = c.t.Add(4 * time.Second)
	assert.True(t, strings.HasSuffix(ansi.Strip(m.render()), "Fetching upstream... (4s)"))
}

func TestSpinnerModel_SetMessageRestartsTimer(t *testing.T) {
	t.Parallel()

	c := &clock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	var model any = newSpinnerModel("Fetching...", c.now)
	c.t = c.t.Add(10 * time.Second)

	updated, cmd := model.(spinnerModel).Update(setMessage("Merging..."))
	m := updated.(spinnerModel)
	assert.Nil(t, cmd)
	assert.Equal(t, "Merging...", m.message)
	assert.NotContains(t, m.render(), "(10s)")
}

func TestSpinnerModel_EmptyMessageRendersNothing(t *testing.T) {
	t.Parallel()

	m := newSpinnerModel("", time.Now)
	assert.Empty(t, m.render())
}

func TestSpinner_StoppedSpinner(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	s := NewSpinner(&out, "first")
	s.UpdateMessage("second")
	assert.Equal(t, "second", s.message)
	assert.False(t, s.Running())

	s.Stop()
	assert.Empty(t, out.String(), "stopping a stopped spinner writes nothing")
}
