// Package repository persists finalized lead snapshots.
package repository

import (
	"context"
	"fmt"

	"legal_intake_backend/internal/conversation/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres writes lead snapshots and their answers in one transaction.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (r *Postgres) Save(ctx context.Context, lead *domain.Lead) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin lead tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO leads (id, session_id, platform, phone, qualification_score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, lead.ID, lead.SessionID, string(lead.Platform), lead.Phone, lead.Score, lead.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}

	for _, answer := range lead.Answers {
		_, err = tx.Exec(ctx, `
			INSERT INTO lead_answers (lead_id, field_id, answer)
			VALUES ($1, $2, $3)
		`, lead.ID, answer.FieldID, answer.Answer)
		if err != nil {
			return fmt.Errorf("insert lead answer %d: %w", answer.FieldID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit lead tx: %w", err)
	}
	return nil
}
