package repositories

import (
	"context"

	"physio-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ContactRequestRepository handles contact form database operations
type ContactRequestRepository struct {
	pool *pgxpool.Pool
}

// NewContactRequestRepository creates a new contact request repository
func NewContactRequestRepository(pool *pgxpool.Pool) *ContactRequestRepository {
	return &ContactRequestRepository{pool: pool}
}

// Create stores a contact request and fills in its id and timestamp.
func (r *ContactRequestRepository) Create(ctx context.Context, req *models.ContactRequest) error {
	query := `
		INSERT INTO contact_requests (name, email, phone, message, client_ip)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	return r.pool.QueryRow(ctx, query,
		req.Name,
		req.Email,
		req.Phone,
		req.Message,
		req.ClientIP,
	).Scan(&req.ID, &req.CreatedAt)
}

// ListRecent returns the most recent contact requests, newest first.
func (r *ContactRequestRepository) ListRecent(ctx context.Context, limit int) ([]models.ContactRequest, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, phone, message, client_ip, created_at
		FROM contact_requests
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.ContactRequest
	for rows.Next() {
		var req models.ContactRequest
		if err := rows.Scan(&req.ID, &req.Name, &req.Email, &req.Phone, &req.Message, &req.ClientIP, &req.CreatedAt); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
