package repositories

import (
	"context"
	"encoding/json"

	"physio-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AnalyticsEventRepository handles analytics event database operations
type AnalyticsEventRepository struct {
	pool *pgxpool.Pool
}

// NewAnalyticsEventRepository creates a new analytics event repository
func NewAnalyticsEventRepository(pool *pgxpool.Pool) *AnalyticsEventRepository {
	return &AnalyticsEventRepository{pool: pool}
}

// Create stores a reported event and fills in its id and timestamp.
func (r *AnalyticsEventRepository) Create(ctx context.Context, event *models.AnalyticsEvent) error {
	params := event.Params
	if len(params) == 0 {
		params = json.RawMessage(`{}`)
	}

	query := `
		INSERT INTO analytics_events (event_name, page_path, params, client_ip)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.pool.QueryRow(ctx, query,
		event.EventName,
		event.PagePath,
		params,
		event.ClientIP,
	).Scan(&event.ID, &event.CreatedAt)
}

// MarkForwarded records that the event reached the external collector.
func (r *AnalyticsEventRepository) MarkForwarded(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE analytics_events SET forwarded = TRUE WHERE id = $1", id)
	return err
}

// CountSince returns how many events were recorded since the given time.
func (r *AnalyticsEventRepository) CountSince(ctx context.Context, since string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM analytics_events WHERE created_at >= NOW() - $1::interval",
		since).Scan(&count)
	return count, err
}
