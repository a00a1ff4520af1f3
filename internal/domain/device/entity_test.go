//go:build unit

package device_test

import (
	"testing"
	"time"

	"grillbox/internal/domain/device"
	"grillbox/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func float64Ptr(f float64) *float64 { return &f }

func TestCanReserve(t *testing.T) {
	assert.NoError(t, builder.NewDeviceBuilder().BuildDomain().CanReserve())
	assert.ErrorIs(t, builder.NewDeviceBuilder().AsBlocked().BuildDomain().CanReserve(), device.ErrAlreadyBlocked)
}

func TestIsReservedBy(t *testing.T) {
	holder := uuid.New()

	assert.True(t, builder.NewDeviceBuilder().ReservedFor(holder).BuildDomain().IsReservedBy(holder))
	assert.False(t, builder.NewDeviceBuilder().ReservedFor(uuid.New()).BuildDomain().IsReservedBy(holder), "another attempt holds it")
	assert.False(t, builder.NewDeviceBuilder().BuildDomain().IsReservedBy(uuid.Nil), "an unreserved device has no holder")
	assert.False(t, builder.NewDeviceBuilder().AsBlocked().BuildDomain().IsReservedBy(uuid.Nil))
}

func TestCommandAddress(t *testing.T) {
	addr, err := builder.NewDeviceBuilder().WithExternalID("gb-0042").BuildDomain().CommandAddress()
	require.NoError(t, err)
	assert.Equal(t, "gb-0042", addr)

	_, err = builder.NewDeviceBuilder().WithoutExternalID().BuildDomain().CommandAddress()
	assert.ErrorIs(t, err, device.ErrMissingAddress)
}

func TestApplyStateReport(t *testing.T) {
	published := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("merges reported fields and keeps the rest", func(t *testing.T) {
		d := builder.NewDeviceBuilder().AsBlocked().WithPublishTime(published).BuildDomain()
		before := d.Telemetry()

		err := d.ApplyStateReport(device.StateReport{
			Locked:      boolPtr(false),
			Telemetry:   device.Telemetry{Plate2Temp: float64Ptr(180.5)},
			PublishedAt: published.Add(time.Minute),
		})
		require.NoError(t, err)

		assert.False(t, d.IsLocked())
		assert.True(t, d.IsClosed(), "closed was not reported")
		assert.True(t, d.IsBlocked(), "blocked is never changed by a report")
		assert.Equal(t, before.WifiSignal, d.Telemetry().WifiSignal)
		assert.Equal(t, before.Plate1Temp, d.Telemetry().Plate1Temp)
		require.NotNil(t, d.Telemetry().Plate2Temp)
		assert.InDelta(t, 180.5, *d.Telemetry().Plate2Temp, 0.001)
		assert.Equal(t, published.Add(time.Minute), d.PublishTime())
	})

	t.Run("stale report is rejected", func(t *testing.T) {
		d := builder.NewDeviceBuilder().WithPublishTime(published).BuildDomain()

		err := d.ApplyStateReport(device.StateReport{
			Locked:      boolPtr(false),
			PublishedAt: published.Add(-time.Second),
		})
		require.ErrorIs(t, err, device.ErrStaleStateReport)
		assert.True(t, d.IsLocked())
		assert.Equal(t, published, d.PublishTime())
	})

	t.Run("first report on a device that never published", func(t *testing.T) {
		d := builder.NewDeviceBuilder().WithPublishTime(time.Time{}).BuildDomain()

		err := d.ApplyStateReport(device.StateReport{
			Closed:      boolPtr(false),
			PublishedAt: published,
		})
		require.NoError(t, err)
		assert.False(t, d.IsClosed())
	})
}
