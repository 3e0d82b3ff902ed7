package notify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messages(ns []Notification) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.Message
	}
	return out
}

func TestAdd_DefaultsAndHistory(t *testing.T) {
	l := NewLog(0, 0)
	n := l.Add(1.5, "Corridor placed", Info, 0)

	assert.Equal(t, DefaultDuration, n.Duration)
	assert.Equal(t, 1.5, n.Timestamp)
	assert.Equal(t, []Notification{n}, l.Active())
	assert.Equal(t, []Notification{n}, l.History())
}

func TestAdd_ActiveCapDropsOldest(t *testing.T) {
	l := NewLog(100, 3)
	for i := 0; i < 5; i++ {
		l.Add(float64(i), fmt.Sprintf("n%d", i), Info, 60)
	}
	assert.Equal(t, []string{"n2", "n3", "n4"}, messages(l.Active()))
	assert.Len(t, l.History(), 5)
}

func TestAdd_HistoryCapDropsOldest(t *testing.T) {
	l := NewLog(DefaultMaxLog, DefaultMaxActive)
	for i := 0; i < DefaultMaxLog+7; i++ {
		l.Add(0, fmt.Sprintf("n%d", i), Warning, 1)
	}
	history := l.History()
	require.Len(t, history, DefaultMaxLog)
	assert.Equal(t, "n7", history[0].Message)
	assert.Equal(t, fmt.Sprintf("n%d", DefaultMaxLog+6), history[len(history)-1].Message)
}

func TestExpire(t *testing.T) {
	l := NewLog(0, 0)
	l.Add(0, "short", Info, 2)
	l.Add(0, "long", Critical, 10)
	l.Add(1, "late", Success, 2)

	assert.Equal(t, 0, l.Expire(1.9))
	assert.Equal(t, 1, l.Expire(2.0), "age equal to duration expires")
	assert.Equal(t, []string{"long", "late"}, messages(l.Active()))
	assert.Equal(t, 1, l.Expire(3.0))
	assert.Equal(t, []string{"long"}, messages(l.Active()))
	assert.Len(t, l.History(), 3, "expiry leaves history alone")
}

func TestClear(t *testing.T) {
	l := NewLog(0, 0)
	l.Add(0, "a", Info, 0)
	l.Clear()
	assert.Empty(t, l.Active())
	assert.Len(t, l.History(), 1)
}

func TestPriorityString(t *testing.T) {
	assert.Equal(t, "Critical", Critical.String())
	assert.Equal(t, "Unknown", Priority(42).String())
}

func TestSince_SurvivesHistoryCap(t *testing.T) {
	l := NewLog(3, 0)
	for i := 0; i < 2; i++ {
		l.Add(0, fmt.Sprintf("m%d", i), Info, 0)
	}
	seen := l.Total()
	assert.Empty(t, l.Since(seen))

	for i := 2; i < 7; i++ {
		l.Add(0, fmt.Sprintf("m%d", i), Info, 0)
	}
	assert.Equal(t, 7, l.Total())
	assert.Equal(t, []string{"m4", "m5", "m6"}, messages(l.Since(seen)), "only what the history still holds")

	l.Add(0, "m7", Info, 0)
	assert.Equal(t, []string{"m7"}, messages(l.Since(7)))
}
