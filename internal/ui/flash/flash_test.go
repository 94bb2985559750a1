package flash

import (
	"errors"
	"fmt"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/emxsys/wmt-explorer/internal/ui/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel() *Model {
	m := New()
	m.successStyle = lipgloss.NewStyle()
	m.errorStyle = lipgloss.NewStyle()
	m.SetSize(40, 10)
	return m
}

func TestAdd_IgnoresEmptyMessages(t *testing.T) {
	m := newTestModel()

	id := m.add("   ", nil)

	assert.Zero(t, id)
	assert.Empty(t, m.notices)
}

func TestUpdate_AddsSuccessMessageAndSchedulesExpiry(t *testing.T) {
	m := newTestModel()

	cmd := m.Update(common.CommandCompletedMsg{Output: "  Landsat enabled  "})

	assert.NotNil(t, cmd)
	if assert.Len(t, m.notices, 1) {
		assert.Equal(t, "Landsat enabled", m.notices[0].text)
		assert.Nil(t, m.notices[0].err)
	}
}

func TestUpdate_AddsErrorMessageWithoutExpiry(t *testing.T) {
	m := newTestModel()

	cmd := m.Update(common.CommandCompletedMsg{Err: errors.New("boom")})

	assert.Nil(t, cmd)
	if assert.Len(t, m.notices, 1) {
		assert.EqualError(t, m.notices[0].err, "boom")
	}
}

func TestUpdate_ExpiresMessages(t *testing.T) {
	m := newTestModel()

	first := m.add("first", nil)
	m.add("second", nil)

	m.Update(expireMsg{id: first})

	if assert.Len(t, m.notices, 1) {
		assert.Equal(t, "second", m.notices[0].text)
	}
}

func TestAdd_RepeatBumpsCounter(t *testing.T) {
	m := newTestModel()

	first := m.add("Refreshed 1 temporal layer(s)", nil)
	second := m.add("Refreshed 1 temporal layer(s)", nil)

	require.Len(t, m.notices, 1)
	assert.Equal(t, "Refreshed 1 temporal layer(s) (×2)", m.View()[0].Content)

	m.Update(expireMsg{id: first})
	assert.True(t, m.Any(), "the stale timer belongs to the first showing")
	m.Update(expireMsg{id: second})
	assert.False(t, m.Any())
}

func TestAdd_KeepsOnlyNewestNotices(t *testing.T) {
	m := newTestModel()

	for i := range maxNotices + 2 {
		m.add(fmt.Sprintf("notice %d", i), nil)
	}

	require.Len(t, m.notices, maxNotices)
	assert.Equal(t, "notice 2", m.notices[0].text)
}

func TestAddMessage_NoTimeout(t *testing.T) {
	m := newTestModel()

	cmd := m.Update(AddMessage{Text: "sticky", NoTimeout: true})

	assert.Nil(t, cmd)
	assert.True(t, m.Any())
}

func TestDismissOldest(t *testing.T) {
	m := newTestModel()
	m.add("first", nil)
	m.add("second", errors.New("second"))

	m.Update(DismissOldest{})
	if assert.Len(t, m.notices, 1) {
		assert.EqualError(t, m.notices[0].err, "second")
	}
	m.Update(DismissOldest{})
	m.Update(DismissOldest{})

	assert.False(t, m.Any())
}

func TestView_StacksFromBottomRight(t *testing.T) {
	m := newTestModel()
	m.add("first", nil)
	m.add("second message", nil)

	views := m.View()

	if assert.Len(t, views, 2) {
		assert.Equal(t, "first", views[0].Content)
		assert.Equal(t, 8, views[0].Rect.Min.Y)
		assert.Equal(t, 35, views[0].Rect.Min.X)
		assert.Equal(t, "second message", views[1].Content)
		assert.Equal(t, 9, views[1].Rect.Min.Y)
		assert.Equal(t, 26, views[1].Rect.Min.X)
	}
}
