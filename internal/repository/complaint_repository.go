package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// ComplaintRepository encapsulates complaint persistence.
type ComplaintRepository interface {
	// Create inserts the complaint and fills in ID and CreatedAt.
	Create(ctx context.Context, complaint *domain.Complaint) error
	GetByID(ctx context.Context, id int64) (*domain.ComplaintWithOwner, error)
	// ListWithOwner returns every complaint, newest first.
	ListWithOwner(ctx context.Context) ([]domain.ComplaintWithOwner, error)
	Delete(ctx context.Context, id int64) error
}

const complaintWithOwnerColumns = `
        c.id, c.category, c.description, c.location, c.room_number, c.status,
        c.attachment_url, c.created_at, c.user_id, u.name`

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository instantiates repository.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        INSERT INTO complaints (category, description, location, room_number, status, attachment_url, user_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		complaint.Category,
		complaint.Description,
		complaint.Location,
		complaint.RoomNumber,
		complaint.Status,
		complaint.AttachmentURL,
		complaint.UserID,
	).Scan(&complaint.ID, &complaint.CreatedAt)
	return translatePgError(err)
}

func (r *complaintRepository) GetByID(ctx context.Context, id int64) (*domain.ComplaintWithOwner, error) {
	query := `SELECT` + complaintWithOwnerColumns + `
        FROM complaints c LEFT JOIN users u ON u.id = c.user_id
        WHERE c.id=$1`
	item, err := scanComplaintWithOwner(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translatePgError(err)
	}
	return item, nil
}

func (r *complaintRepository) ListWithOwner(ctx context.Context) ([]domain.ComplaintWithOwner, error) {
	query := `SELECT` + complaintWithOwnerColumns + `
        FROM complaints c LEFT JOIN users u ON u.id = c.user_id
        ORDER BY c.created_at DESC, c.id DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.ComplaintWithOwner{}
	for rows.Next() {
		item, err := scanComplaintWithOwner(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	return result, rows.Err()
}

func (r *complaintRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM complaints WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanComplaintWithOwner(row pgx.Row) (*domain.ComplaintWithOwner, error) {
	var item domain.ComplaintWithOwner
	if err := row.Scan(
		&item.ID,
		&item.Category,
		&item.Description,
		&item.Location,
		&item.RoomNumber,
		&item.Status,
		&item.AttachmentURL,
		&item.CreatedAt,
		&item.UserID,
		&item.OwnerName,
	); err != nil {
		return nil, err
	}
	return &item, nil
}
