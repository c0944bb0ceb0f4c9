package catalog

import (
	"context"
	"database/sql"
	"fmt"
)

// postgresSource loads card definitions from the `cards` table.
type postgresSource struct {
	db *sql.DB
}

// NewPostgresSource returns a Source reading definitions from PostgreSQL.
func NewPostgresSource(db *sql.DB) Source {
	return &postgresSource{db: db}
}

func (s *postgresSource) Load(ctx context.Context) ([]Card, error) {
	query := `SELECT id, name, text, type, cost, power, health FROM cards ORDER BY id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying card catalog: %w", err)
	}
	defer rows.Close()

	var cards []Card
	for rows.Next() {
		var c Card
		if err := rows.Scan(&c.ID, &c.Name, &c.Text, &c.Type, &c.Cost, &c.Power, &c.Health); err != nil {
			return nil, fmt.Errorf("scanning card row: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating card rows: %w", err)
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("card catalog is empty")
	}
	return cards, nil
}
