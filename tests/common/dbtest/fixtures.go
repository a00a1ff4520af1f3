//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// CreateTestUser inserts a user with a payment customer; an existing email is reused.
func CreateTestUser(t *testing.T, db DBLike, email string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, `INSERT INTO users (id, customer_ref, first_name, last_name, email)
		VALUES ($1, $2, 'Erika', 'Mustermann', $3) ON CONFLICT (email) DO NOTHING`,
		userID, "cus_"+strings.ReplaceAll(userID.String(), "-", "")[:14], email)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		require.NoError(t, db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID))
	}

	return userID
}

// CreateTestDevice inserts a locked, unblocked device.
func CreateTestDevice(t *testing.T, db DBLike, externalID string) uuid.UUID {
	t.Helper()

	deviceID := uuid.New()
	_, err := db.Exec(context.Background(), `INSERT INTO devices (id, external_id, number, city, street, house_number)
		VALUES ($1, $2, $3, 'Berlin', 'Tempelhofer Damm', '1')`,
		deviceID, externalID, strings.TrimPrefix(externalID, "gb-"))
	require.NoError(t, err)

	return deviceID
}

// ReserveDevice blocks the device on behalf of holder.
func ReserveDevice(t *testing.T, db DBLike, deviceID, holder uuid.UUID) {
	t.Helper()
	_, err := db.Exec(context.Background(), "UPDATE devices SET blocked = TRUE, reserved_by = $2 WHERE id = $1", deviceID, holder)
	require.NoError(t, err)
}

// SetDeviceLockedByExternalID plays the device reporting its lock state.
func SetDeviceLockedByExternalID(ctx context.Context, db DBLike, externalID string, locked bool) error {
	_, err := db.Exec(ctx, "UPDATE devices SET locked = $2, publish_time = NOW() WHERE external_id = $1", externalID, locked)
	return err
}

type BookingRow struct {
	ID          uuid.UUID
	PaymentRef  string
	DeviceID    uuid.UUID
	UserID      uuid.UUID
	Status      string
	RequestedAt time.Time
}

// CreateTestBooking inserts a FORTY_FIVE booking.
func CreateTestBooking(t *testing.T, db DBLike, b BookingRow) uuid.UUID {
	t.Helper()

	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.PaymentRef == "" {
		b.PaymentRef = "pi_" + b.ID.String()
	}
	if b.Status == "" {
		b.Status = "pending"
	}
	if b.RequestedAt.IsZero() {
		b.RequestedAt = time.Now().UTC()
	}

	_, err := db.Exec(context.Background(), `INSERT INTO bookings
		(id, payment_ref, device_id, user_id, status, requested_at, timeslot, timeslot_minutes, amount_cents, currency, payment_method_ref)
		VALUES ($1, $2, $3, $4, $5, $6, 'FORTY_FIVE', 45, 800, 'eur', 'pm_****4242')`,
		b.ID, b.PaymentRef, b.DeviceID, b.UserID, b.Status, b.RequestedAt)
	require.NoError(t, err)

	return b.ID
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
