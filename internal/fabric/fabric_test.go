package fabric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/workshopnet/internal/tile"
)

func port(owner int, name byte) Port { return Port{Owner: owner, Name: int(name)} }

func TestConnectValidation(t *testing.T) {
	f := New(0)
	require.NoError(t, f.Connect(port(1, 'a'), port(2, '1')))

	err := f.Connect(port(1, 'a'), port(2, '1'))
	assert.ErrorContains(t, err, "duplicate pipe")

	// same output may fan out to a different input
	require.NoError(t, f.Connect(port(1, 'a'), port(3, '1')))

	f.CloseOutputs(1)
	err = f.Connect(port(1, 'a'), port(4, '1'))
	assert.ErrorContains(t, err, "closed output")
}

func TestFanOutDuplicates(t *testing.T) {
	f := New(0)
	require.NoError(t, f.Connect(port(1, 'a'), port(2, '1')))
	require.NoError(t, f.Connect(port(1, 'a'), port(3, '1')))

	require.NoError(t, f.Push(port(1, 'a'), tile.Number(42)))

	for _, dst := range []Port{port(2, '1'), port(3, '1')} {
		v, st := f.Pull(dst)
		require.Equal(t, Ready, st)
		assert.Equal(t, tile.Number(42), v)
	}
}

func TestFanInMergesByArrival(t *testing.T) {
	f := New(0)
	require.NoError(t, f.Connect(port(1, 'a'), port(3, '1')))
	require.NoError(t, f.Connect(port(2, 'b'), port(3, '1')))

	require.NoError(t, f.Push(port(2, 'b'), tile.Number(1)))
	require.NoError(t, f.Push(port(1, 'a'), tile.Number(2)))
	require.NoError(t, f.Push(port(2, 'b'), tile.Number(3)))

	var got []int64
	for {
		v, st := f.Pull(port(3, '1'))
		if st != Ready {
			break
		}
		got = append(got, v.N)
	}
	assert.Equal(t, []int64{1, 2, 3}, got)
}

func TestPullStates(t *testing.T) {
	f := New(0)

	// never connected: closed immediately
	_, st := f.Pull(port(9, '1'))
	assert.Equal(t, Closed, st)

	require.NoError(t, f.Connect(port(1, 'a'), port(2, '1')))
	_, st = f.Pull(port(2, '1'))
	assert.Equal(t, Starved, st)

	require.NoError(t, f.Push(port(1, 'a'), tile.Number(7)))
	assert.Equal(t, Ready, f.Peek(port(2, '1')))
}

func TestClosureDrainsPendingValues(t *testing.T) {
	f := New(0)
	require.NoError(t, f.Connect(port(1, 'a'), port(2, '1')))
	require.NoError(t, f.Push(port(1, 'a'), tile.Number(7)))
	require.NoError(t, f.Push(port(1, 'a'), tile.Number(8)))

	f.CloseOutputs(1)
	assert.True(t, f.OutputClosed(port(1, 'a')))
	assert.False(t, f.InputClosed(port(2, '1')), "pending values keep the input open")

	v, st := f.Pull(port(2, '1'))
	require.Equal(t, Ready, st)
	assert.Equal(t, int64(7), v.N)
	v, st = f.Pull(port(2, '1'))
	require.Equal(t, Ready, st)
	assert.Equal(t, int64(8), v.N)

	_, st = f.Pull(port(2, '1'))
	assert.Equal(t, Closed, st)
	assert.True(t, f.InputClosed(port(2, '1')))
}

func TestClosureTransitiveOverFanIn(t *testing.T) {
	// two producers fanning into one input; the port stays open until the
	// last producer sleeps and the queue drains
	f := New(0)
	require.NoError(t, f.Connect(port(1, 'a'), port(3, '1')))
	require.NoError(t, f.Connect(port(2, 'a'), port(3, '1')))

	f.CloseOutputs(1)
	assert.False(t, f.InputClosed(port(3, '1')))

	require.NoError(t, f.Push(port(2, 'a'), tile.Number(5)))
	f.CloseOutputs(2)
	assert.False(t, f.InputClosed(port(3, '1')), "queued value still pending")

	v, st := f.Pull(port(3, '1'))
	require.Equal(t, Ready, st)
	assert.Equal(t, int64(5), v.N)
	assert.True(t, f.InputClosed(port(3, '1')))
}

func TestPushOnClosedOutputFails(t *testing.T) {
	f := New(0)
	require.NoError(t, f.Connect(port(1, 'a'), port(2, '1')))
	f.CloseOutputs(1)
	assert.Error(t, f.Push(port(1, 'a'), tile.Number(1)))
}

func TestBoundedBackpressure(t *testing.T) {
	f := New(2)
	require.NoError(t, f.Connect(port(1, 'a'), port(2, '1')))

	assert.True(t, f.CanPush(port(1, 'a')))
	require.NoError(t, f.Push(port(1, 'a'), tile.Number(1)))
	require.NoError(t, f.Push(port(1, 'a'), tile.Number(2)))
	assert.False(t, f.CanPush(port(1, 'a')), "edge at capacity")

	_, st := f.Pull(port(2, '1'))
	require.Equal(t, Ready, st)
	assert.True(t, f.CanPush(port(1, 'a')))
}

func TestPushWithoutEdgesDiscards(t *testing.T) {
	f := New(0)
	assert.False(t, f.connected(port(1, 'x')))
	require.NoError(t, f.Push(port(1, 'x'), tile.Number(1)))
}
