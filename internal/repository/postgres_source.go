package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-analytics-api/internal/dataset"
)

// PostgresSource loads the raw table from a database table. The table is
// read wholesale; column resolution and typing happen in the builder, same
// as for file sources.
type PostgresSource struct {
	db     *sqlx.DB
	table  string
	logger *zap.Logger
}

// NewPostgresSource constructs a database-backed source.
func NewPostgresSource(db *sqlx.DB, table string, logger *zap.Logger) *PostgresSource {
	return &PostgresSource{db: db, table: table, logger: logger}
}

// Load selects every row of the configured table.
func (s *PostgresSource) Load(ctx context.Context) (dataset.RawTable, error) {
	query := fmt.Sprintf("SELECT * FROM %s", pq.QuoteIdentifier(s.table))

	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return dataset.RawTable{}, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return dataset.RawTable{}, fmt.Errorf("read columns of %s: %w", s.table, err)
	}

	table := dataset.RawTable{Columns: columns}
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return dataset.RawTable{}, fmt.Errorf("scan row of %s: %w", s.table, err)
		}
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = cellString(v)
		}
		table.Rows = append(table.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return dataset.RawTable{}, fmt.Errorf("iterate %s: %w", s.table, err)
	}

	s.logger.Debug("postgres source loaded",
		zap.String("table", s.table),
		zap.Int("rows", len(table.Rows)),
	)
	return table, nil
}

func cellString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
