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

func CreateTestUser(t *testing.T, db DBLike, email string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO users (id, email, is_active) VALUES ($1, $2, true) ON CONFLICT (email) DO NOTHING",
		userID, email)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

func CreateTestCabinet(t *testing.T, db DBLike) int64 {
	t.Helper()

	return CreateTestCabinetWithStatus(t, db, "AVAILABLE", nil, nil)
}

// holderID and reason may be nil; the status CHECK constraints decide
// which combinations are legal, same as production writes.
func CreateTestCabinetWithStatus(t *testing.T, db DBLike, status string, holderID *uuid.UUID, reason *string) int64 {
	t.Helper()

	ctx := context.Background()
	var cabinetID int64
	err := db.QueryRow(ctx,
		"INSERT INTO cabinets (status, holder_id, payable, reason) VALUES ($1, $2, true, $3) RETURNING id",
		status, holderID, reason).Scan(&cabinetID)
	require.NoError(t, err)

	return cabinetID
}

func CreateTestRentalHistory(t *testing.T, db DBLike, userID uuid.UUID, cabinetID int64, expiresAt time.Time) uuid.UUID {
	t.Helper()

	rentalID := uuid.New()
	ctx := context.Background()
	_, err := db.Exec(ctx,
		"INSERT INTO rental_histories (id, user_id, cabinet_id, expires_at) VALUES ($1, $2, $3, $4)",
		rentalID, userID, cabinetID, expiresAt)
	require.NoError(t, err)

	return rentalID
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables so each subtest starts from an empty schema
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
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
