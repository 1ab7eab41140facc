package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/spec-kit/complaint-service/internal/domain"
)

type sqliteUserRepository struct {
	db *sql.DB
}

// NewSQLiteUserRepository returns a SQLite-backed UserRepository.
func NewSQLiteUserRepository(db *sql.DB) UserRepository {
	return &sqliteUserRepository{db: db}
}

func (r *sqliteUserRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (name, email, username, password, role)
        VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		user.Name,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.Role,
	)
	if err != nil {
		return translateSQLiteError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

func (r *sqliteUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT id, name, email, username, password, role FROM users WHERE id = ?`, id)
}

func (r *sqliteUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT id, name, email, username, password, role FROM users WHERE username = ?`, username)
}

func (r *sqliteUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT id, name, email, username, password, role FROM users WHERE email = ?`, email)
}

func (r *sqliteUserRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *sqliteUserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, email, username, password, role FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.User{}
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Username, &user.PasswordHash, &user.Role); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}

type sqliteComplaintRepository struct {
	db *sql.DB
}

// NewSQLiteComplaintRepository returns a SQLite-backed ComplaintRepository.
func NewSQLiteComplaintRepository(db *sql.DB) ComplaintRepository {
	return &sqliteComplaintRepository{db: db}
}

func (r *sqliteComplaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        INSERT INTO complaints (category, description, location, room_number, status, attachment_url, user_id)
        VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		complaint.Category,
		complaint.Description,
		complaint.Location,
		complaint.RoomNumber,
		string(complaint.Status),
		complaint.AttachmentURL,
		complaint.UserID,
	)
	if err != nil {
		return translateSQLiteError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	// created_at is assigned by the column default; read it back.
	if err := r.db.QueryRowContext(ctx, `SELECT created_at FROM complaints WHERE id = ?`, id).Scan(&complaint.CreatedAt); err != nil {
		return err
	}
	complaint.ID = id
	return nil
}

func (r *sqliteComplaintRepository) GetByID(ctx context.Context, id int64) (*domain.ComplaintWithOwner, error) {
	query := `SELECT` + complaintWithOwnerColumns + `
        FROM complaints c LEFT JOIN users u ON u.id = c.user_id
        WHERE c.id = ?`
	item, err := scanSQLiteComplaint(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *sqliteComplaintRepository) ListWithOwner(ctx context.Context) ([]domain.ComplaintWithOwner, error) {
	query := `SELECT` + complaintWithOwnerColumns + `
        FROM complaints c LEFT JOIN users u ON u.id = c.user_id
        ORDER BY c.created_at DESC, c.id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.ComplaintWithOwner{}
	for rows.Next() {
		item, err := scanSQLiteComplaint(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	return result, rows.Err()
}

func (r *sqliteComplaintRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM complaints WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteComplaint(row rowScanner) (*domain.ComplaintWithOwner, error) {
	var (
		item   domain.ComplaintWithOwner
		status string
	)
	if err := row.Scan(
		&item.ID,
		&item.Category,
		&item.Description,
		&item.Location,
		&item.RoomNumber,
		&status,
		&item.AttachmentURL,
		&item.CreatedAt,
		&item.UserID,
		&item.OwnerName,
	); err != nil {
		return nil, err
	}
	item.Status = domain.ComplaintStatus(status)
	return &item, nil
}
