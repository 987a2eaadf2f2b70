package telemetry

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Borislavv/go-ttl-cache/config"
	"github.com/Borislavv/go-ttl-cache/internal/cache"
	"github.com/Borislavv/go-ttl-cache/internal/sweeper"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type fakeStater struct{ stats cache.Stats }

func (f fakeStater) Stats() cache.Stats { return f.stats }
func (f fakeStater) Len() int           { return 3 }

// TestDeltaSnapshot_ComputesPerIntervalValues subtracts previous counters.
func TestDeltaSnapshot_ComputesPerIntervalValues(t *testing.T) {
	prev := fromStats(cache.Stats{Hits: 10, Misses: 2, Sweeps: 1}, 5, 1, 0)
	cur := fromStats(cache.Stats{Hits: 15, Misses: 2, Sweeps: 3, SweptExpired: 4}, 9, 2, 4)

	d := deltaSnapshot(prev, cur)
	require.Equal(t, uint64(5), d.hits)
	require.Equal(t, uint64(0), d.misses)
	require.Equal(t, uint64(2), d.sweeps)
	require.Equal(t, uint64(4), d.sweptExpired)
	require.Equal(t, uint64(4), d.sweeperTicks)
	require.Equal(t, uint64(1), d.sweeperSweeps)
	require.Equal(t, uint64(4), d.sweeperSwept)
}

// TestDelta_CounterReset treats cur as the delta when counters went backwards.
func TestDelta_CounterReset(t *testing.T) {
	require.Equal(t, uint64(3), delta(10, 3))
	require.Equal(t, uint64(7), delta(3, 10))
}

// TestFromStats_ClampsNegative never produces huge uint64 values.
func TestFromStats_ClampsNegative(t *testing.T) {
	s := fromStats(cache.Stats{Hits: -1}, -1, -1, -1)
	require.Equal(t, uint64(0), s.hits)
	require.Equal(t, uint64(0), s.sweeperTicks)
}

// TestLogs_Disabled does not report without config.
func TestLogs_Disabled(t *testing.T) {
	l := New(context.Background(), nil, zerolog.Nop(), fakeStater{}, sweeper.NoOpSweeper{})
	defer l.Close()
	require.Equal(t, time.Duration(0), l.Interval())
}

// TestLogs_Reports writes periodic storage and gc lines.
func TestLogs_Reports(t *testing.T) {
	out := &syncBuffer{}
	logger := zerolog.New(out)

	l := New(context.Background(), &config.TelemetryCfg{Interval: 10 * time.Millisecond}, logger,
		fakeStater{stats: cache.Stats{Hits: 1}}, sweeper.NoOpSweeper{})
	defer l.Close()

	require.Equal(t, 10*time.Millisecond, l.Interval())
	require.Eventually(t, func() bool {
		s := out.String()
		return strings.Contains(s, `"message":"storage"`) && strings.Contains(s, `"message":"garbage_collector"`)
	}, time.Second, 5*time.Millisecond)
	require.Contains(t, out.String(), `"entries":3`)
	require.NotContains(t, out.String(), `"message":"sweeper"`, "idle sweeper is not reported")
}
