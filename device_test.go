package backplane

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDevice_SoloSucceed(t *testing.T) {
	// a lone Device, no links, Manage returns the computed value.
	ctx := context.Background()
	d := NewDevice()

	v, err := Manage(ctx, d, func(context.Context) Attempt[int, string] {
		return Ok[int, string](7)
	})

	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.True(t, d.done)
}

func TestDevice_MonitorObservesOrderlyCompletion(t *testing.T) {
	// a monitor receives Disconnected(worker, nil) when worker succeeds.
	for _, variant := range []string{"StaticLink", "DynamicLinkLine"} {
		t.Run(variant, func(t *testing.T) {
			ctx := context.Background()
			worker := NewDevice()
			monitor := NewDevice()

			if variant == "StaticLink" {
				monitor.Link(worker, Monitor)
			} else {
				require.NoError(t, monitor.LinkLine(worker.Line(), Monitor))
			}

			v, err := Manage(ctx, worker, func(context.Context) Attempt[string, string] {
				return Ok[string, string]("done")
			})
			require.NoError(t, err)
			assert.Equal(t, "done", v)

			msg, ok, _ := monitor.tryMessage()
			require.True(t, ok)
			sender, fault, isDisc := msg.IsDisconnected()
			require.True(t, isDisc)
			assert.Equal(t, worker.DeviceID(), sender)
			assert.Nil(t, fault)
		})
	}
}

func TestDevice_MonitorObservesFault(t *testing.T) {
	// a monitor receives Disconnected(worker, FaultError) when worker's
	// computation returns an error, and PartManage turns it into a
	// Crash.Cascade for the monitor itself.
	for _, variant := range []string{"StaticLink", "DynamicLinkLine"} {
		t.Run(variant, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			worker := NewDevice()
			supervisor := NewDevice()

			if variant == "StaticLink" {
				supervisor.Link(worker, Monitor)
			} else {
				require.NoError(t, supervisor.LinkLine(worker.Line(), Monitor))
			}

			type supervisorResult struct {
				err error
			}
			resultCh := make(chan supervisorResult, 1)
			go func() {
				_, _, err := PartManage(ctx, supervisor, func(ctx context.Context) Attempt[string, string] {
					<-ctx.Done()
					return Err[string, string]("supervisor cancelled")
				})
				resultCh <- supervisorResult{err: err}
			}()

			_, _, werr := PartManage(ctx, worker, func(context.Context) Attempt[int, string] {
				return Err[int, string]("boom")
			})
			var workerCrash Crash[string]
			require.True(t, errors.As(werr, &workerCrash))
			_, isErr := workerCrash.IsError()
			assert.True(t, isErr)

			select {
			case res := <-resultCh:
				var crash Crash[string]
				require.True(t, errors.As(res.err, &crash))
				origin, fault, isCascade := crash.IsCascade()
				require.True(t, isCascade)
				assert.Equal(t, worker.DeviceID(), origin)
				assert.True(t, fault.IsError())
			case <-time.After(2 * time.Second):
				t.Fatal("supervisor never observed the cascade")
			}
		})
	}
}

func TestDevice_MonitorObservesPanic(t *testing.T) {
	// a panicking computation faults its Device, and a monitor observes
	// the same Disconnected(_, FaultError) shape as an ordinary error.
	ctx := context.Background()
	worker := NewDevice()
	monitor := NewDevice()
	monitor.Link(worker, Monitor)

	_, _, err := PartManage(ctx, worker, func(context.Context) Attempt[int, string] {
		panic("kaboom")
	})

	var crash Crash[string]
	require.True(t, errors.As(err, &crash))
	recovered, isPanic := crash.IsPanic()
	require.True(t, isPanic)
	assert.Equal(t, "kaboom", recovered)

	msg, ok, _ := monitor.tryMessage()
	require.True(t, ok)
	_, fault, isDisc := msg.IsDisconnected()
	require.True(t, isDisc)
	require.NotNil(t, fault)
	assert.True(t, fault.IsError())
}

func TestDevice_Shutdown(t *testing.T) {
	// an explicit shutdown request is folded into Crash.IsPowerOff, and
	// the Device still disconnects orderly (nil fault) before returning.
	ctx := context.Background()
	worker := NewDevice()
	monitor := NewDevice()
	monitor.Link(worker, Monitor)

	requester := DeviceID(0x99)
	_, err := worker.pb.send(NewShutdown(requester))
	require.NoError(t, err)

	_, _, perr := PartManage(ctx, worker, func(context.Context) Attempt[int, string] {
		<-ctx.Done()
		return Ok[int, string](0)
	})

	var crash Crash[string]
	require.True(t, errors.As(perr, &crash))
	origin, isPowerOff := crash.IsPowerOff()
	require.True(t, isPowerOff)
	assert.Equal(t, requester, origin)

	msg, ok, _ := monitor.tryMessage()
	require.True(t, ok)
	_, fault, isDisc := msg.IsDisconnected()
	require.True(t, isDisc)
	assert.Nil(t, fault)
}

func TestDevice_OrderlyPeerExitDoesNotEndSupervision(t *testing.T) {
	// Disconnected(_, nil) detaches the sender and supervision continues,
	// rather than ending the loop.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	peer := NewDevice()
	supervisor := NewDevice()
	supervisor.Link(peer, Monitor)

	resultCh := make(chan error, 1)
	go func() {
		_, _, err := PartManage(ctx, supervisor, func(ctx context.Context) Attempt[int, string] {
			<-ctx.Done()
			return Ok[int, string](0)
		})
		resultCh <- err
	}()

	_, err := Manage(ctx, peer, func(context.Context) Attempt[int, string] {
		return Ok[int, string](1)
	})
	require.NoError(t, err)

	select {
	case err := <-resultCh:
		t.Fatalf("supervisor should still be waiting, got %v", err)
	case <-time.After(100 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-resultCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor never unblocked after cancel")
	}
}

func TestDevice_DropWithoutDisconnectBroadcastsFaultDrop(t *testing.T) {
	// finalize() approximates what the GC would eventually do to a
	// Device that was never explicitly disconnected.
	worker := NewDevice()
	monitor := NewDevice()
	monitor.Link(worker, Monitor)

	worker.finalize()

	msg, ok, _ := monitor.tryMessage()
	require.True(t, ok)
	_, fault, isDisc := msg.IsDisconnected()
	require.True(t, isDisc)
	require.NotNil(t, fault)
	assert.True(t, fault.IsDrop())
}

func TestDevice_SelfLinkPanics(t *testing.T) {
	d := NewDevice()
	assert.Panics(t, func() { d.Link(d, Monitor) })
	assert.Panics(t, func() { d.Unlink(d, Monitor) })
	assert.Panics(t, func() { _ = d.LinkLine(d.Line(), Monitor) })
	assert.Panics(t, func() { d.UnlinkLine(d.Line(), Monitor) })
}
