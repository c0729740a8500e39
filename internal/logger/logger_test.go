package logger

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogWritesMemoryAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "stadium.txt")
	l := New(path)
	l.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.Local) }

	l.Log("wave started")
	l.Logf("wave finished after %d columns", 38)

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "[2024-05-01 12:30:00] wave started", lines[0])
	assert.Equal(t, "[2024-05-01 12:30:00] wave finished after 38 columns", lines[1])

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(lines, "\n")+"\n", string(data))
}

func TestMemoryOnly(t *testing.T) {
	l := New("")
	l.Log("hello")
	assert.Equal(t, 1, l.Len())
	assert.Empty(t, l.Path())
}

func TestLinesIsACopy(t *testing.T) {
	l := New("")
	l.Log("a")
	lines := l.Lines()
	lines[0] = "changed"
	assert.NotEqual(t, "changed", l.Lines()[0])
}

func TestConcurrentLog(t *testing.T) {
	l := New("")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				l.Logf("texture %d", j)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 400, l.Len())
}
