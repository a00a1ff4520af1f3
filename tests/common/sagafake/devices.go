//go:build unit || e2e

// Package sagafake holds in-memory collaborators for exercising the booking
// workflow without a database, processor or broker.
package sagafake

import (
	"context"
	"sync"

	"grillbox/internal/domain/device"
	"grillbox/internal/pkg/errs"

	"github.com/google/uuid"
)

type Devices struct {
	mu      sync.Mutex
	devices map[uuid.UUID]*device.Device
	reads   map[uuid.UUID]int
	// unlockAfter flips locked to false once a device has been read n times.
	unlockAfter map[uuid.UUID]int

	// GetErrs and SetBlockedErrs are consumed one per call before the real work.
	GetErrs         []error
	SetBlockedErrs  []error
	SetBlockedCalls int
}

func NewDevices(devices ...*device.Device) *Devices {
	f := &Devices{
		devices:     make(map[uuid.UUID]*device.Device),
		reads:       make(map[uuid.UUID]int),
		unlockAfter: make(map[uuid.UUID]int),
	}
	for _, d := range devices {
		f.devices[d.ID()] = d
	}
	return f
}

func (f *Devices) Get(_ context.Context, id uuid.UUID) (*device.Device, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := pop(&f.GetErrs); err != nil {
		return nil, err
	}
	d, ok := f.devices[id]
	if !ok {
		return nil, errs.Mark(errs.Newf("device %s", id), errs.ErrNotFound)
	}
	f.reads[id]++
	if n, ok := f.unlockAfter[id]; ok && f.reads[id] >= n {
		d = withFlags(d, device.Flags{Blocked: d.IsBlocked(), Locked: false, Closed: d.IsClosed()}, d.ReservedBy())
		f.devices[id] = d
	}
	return d, nil
}

func (f *Devices) ConditionalSetBlocked(_ context.Context, id uuid.UUID, expected, newValue bool, holder uuid.UUID) (*device.Device, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.SetBlockedCalls++
	if err := pop(&f.SetBlockedErrs); err != nil {
		return nil, err
	}
	d, ok := f.devices[id]
	if !ok {
		return nil, errs.Mark(errs.Newf("device %s", id), errs.ErrNotFound)
	}
	if d.IsBlocked() != expected {
		return nil, errs.Mark(errs.Newf("device %s blocked=%t", id, d.IsBlocked()), errs.ErrConflict)
	}
	if expected && d.ReservedBy() != holder {
		return nil, errs.Mark(errs.Newf("device %s reserved by %s", id, d.ReservedBy()), errs.ErrConflict)
	}
	reservedBy := uuid.Nil
	if newValue {
		reservedBy = holder
	}
	d = withFlags(d, device.Flags{Blocked: newValue, Locked: d.IsLocked(), Closed: d.IsClosed()}, reservedBy)
	f.devices[id] = d
	return d, nil
}

// Snapshot returns the stored device without counting as a read.
func (f *Devices) Snapshot(id uuid.UUID) *device.Device {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.devices[id]
}

func (f *Devices) Reads(id uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads[id]
}

// UnlockAfterReads makes the device report unlocked from its n-th read on.
func (f *Devices) UnlockAfterReads(id uuid.UUID, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unlockAfter[id] = n
}

// Reserve blocks the device on behalf of holder.
func (f *Devices) Reserve(id, holder uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := f.devices[id]
	f.devices[id] = withFlags(d, device.Flags{Blocked: true, Locked: d.IsLocked(), Closed: d.IsClosed()}, holder)
}

func withFlags(d *device.Device, flags device.Flags, reservedBy uuid.UUID) *device.Device {
	return device.ReconstructDevice(
		d.ID(),
		d.ExternalID(),
		d.Number(),
		flags,
		reservedBy,
		d.Telemetry(),
		d.PublishTime(),
		d.Location(),
		d.Address(),
	)
}

func pop(queue *[]error) error {
	if len(*queue) == 0 {
		return nil
	}
	err := (*queue)[0]
	*queue = (*queue)[1:]
	return err
}
