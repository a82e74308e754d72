package backplane

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlugboard_PlugQueuesAttach(t *testing.T) {
	p := newPlugboard()
	other := Line{pb: newPlugboard()}

	require.NoError(t, p.plug(other, ErrLinkDown))

	ops := p.lineOps.drainAll()
	require.Len(t, ops, 1)
	assert.Equal(t, lineOpAttach, ops[0].kind)
	assert.Equal(t, other.DeviceID(), ops[0].line.DeviceID())
}

func TestPlugboard_UnplugQueuesDetach(t *testing.T) {
	p := newPlugboard()
	did := deviceIDOf(newPlugboard())

	require.NoError(t, p.unplug(did, ErrDeviceDown))

	ops := p.lineOps.drainAll()
	require.Len(t, ops, 1)
	assert.Equal(t, lineOpDetach, ops[0].kind)
	assert.Equal(t, did, ops[0].target)
}

func TestPlugboard_PlugAfterCloseReturnsGivenError(t *testing.T) {
	p := newPlugboard()
	p.close()

	err := p.plug(Line{pb: newPlugboard()}, ErrLinkDown)
	assert.Same(t, ErrLinkDown, err)
}

func TestPlugboard_SendAndClose(t *testing.T) {
	p := newPlugboard()
	msg := DisconnectedMessage(1, nil)

	_, err := p.send(msg)
	require.NoError(t, err)

	got, ok, closed := p.messages.tryPop()
	require.True(t, ok)
	require.False(t, closed)
	assert.Equal(t, msg, got)

	p.close()
	_, err = p.send(msg)
	assert.Error(t, err)
}
