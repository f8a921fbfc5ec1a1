// Package db provides the Postgres-backed source for the hourly-rate
// reference table. The engine itself only ever sees the in-memory
// rates.Table built from these rows; loading happens once at startup
// (or editor mount) and refreshing is the caller's concern.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"

	"proposal-cost/core/types"
)

// RateStore reads the hourly-rate table from Postgres
type RateStore struct {
	db *sql.DB
}

// Open connects to the rate database
func Open(databaseURL string) (*RateStore, error) {
	conn, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open rate database: %w", err)
	}
	conn.SetMaxOpenConns(4)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("rate database unreachable: %w", err)
	}
	return &RateStore{db: conn}, nil
}

// LoadRates loads every row of the hourly-rate table
func (s *RateStore) LoadRates(ctx context.Context) ([]types.HourlyRate, error) {
	return s.query(ctx,
		`SELECT discipline_id, role_id, role_designation, hourly_rate
		   FROM hourly_rates
		  ORDER BY discipline_id, role_id, role_designation`)
}

// LoadRatesForDiscipline loads the rows for one discipline
func (s *RateStore) LoadRatesForDiscipline(ctx context.Context, disciplineID string) ([]types.HourlyRate, error) {
	return s.query(ctx,
		`SELECT discipline_id, role_id, role_designation, hourly_rate
		   FROM hourly_rates
		  WHERE discipline_id = $1
		  ORDER BY role_id, role_designation`, disciplineID)
}

// Close closes the database connection
func (s *RateStore) Close() error {
	return s.db.Close()
}

func (s *RateStore) query(ctx context.Context, stmt string, args ...interface{}) ([]types.HourlyRate, error) {
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("rate query failed: %w", err)
	}
	defer rows.Close()

	var out []types.HourlyRate
	for rows.Next() {
		var (
			disciplineID string
			roleID       string
			designation  sql.NullString
			rateText     string
		)
		if err := rows.Scan(&disciplineID, &roleID, &designation, &rateText); err != nil {
			return nil, fmt.Errorf("rate row scan failed: %w", err)
		}
		rate, err := decimal.NewFromString(rateText)
		if err != nil {
			return nil, fmt.Errorf("malformed rate %q: %w", rateText, err)
		}
		out = append(out, types.HourlyRate{
			Key: types.RateKey{
				DisciplineID: disciplineID,
				RoleID:       roleID,
				Designation:  designation.String,
			},
			Rate: rate,
		})
	}
	return out, rows.Err()
}
