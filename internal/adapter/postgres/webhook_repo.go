package postgres

import (
	"context"

	"vivaleve/internal/domain"
)

// AddWebhookLog stores a processed webhook.
func (d *DB) AddWebhookLog(ctx context.Context, l domain.WebhookLog) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO webhook_logs(id, email, evento, produto, applied_plan, created_at) VALUES($1, $2, $3, $4, $5, $6);",
		l.ID, l.Email, l.Evento, l.Produto, string(l.AppliedPlan), l.CreatedAt.UTC(),
	)
	return err
}

// ListRecentWebhookLogs returns up to limit logs, newest first.
func (d *DB) ListRecentWebhookLogs(ctx context.Context, limit int) ([]domain.WebhookLog, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, email, evento, produto, applied_plan, created_at FROM webhook_logs ORDER BY created_at DESC, seq DESC LIMIT $1;", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.WebhookLog, 0, limit)
	for rows.Next() {
		var l domain.WebhookLog
		var plan string
		if err := rows.Scan(&l.ID, &l.Email, &l.Evento, &l.Produto, &plan, &l.CreatedAt); err != nil {
			return nil, err
		}
		l.AppliedPlan = domain.Plan(plan)
		out = append(out, l)
	}
	return out, rows.Err()
}
