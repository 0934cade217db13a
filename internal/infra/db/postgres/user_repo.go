package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"engagesphere/internal/domain"
	"engagesphere/internal/domain/model"
	"engagesphere/internal/domain/ports/repository"
)

var _ repository.UserRepository = (*userRepo)(nil)

type userRepo struct{ pool *pgxpool.Pool }

func NewUserRepo(pool *pgxpool.Pool) *userRepo {
	return &userRepo{pool: pool}
}

const userColumns = `id, email, name, password_hash, phone, address, country_id, country, calling_id, calling_code, bio, gender, otp_verified, role, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Phone, &u.Address,
		&u.CountryID, &u.Country, &u.CallingID, &u.CallingCode, &u.Bio, &u.Gender,
		&u.OTPVerified, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return u, nil
}

func (r *userRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	const q = `
INSERT INTO users (` + userColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
ON CONFLICT (id) DO UPDATE SET
  email=$2, name=$3, password_hash=$4, phone=$5, address=$6, country_id=$7,
  country=$8, calling_id=$9, calling_code=$10, bio=$11, gender=$12,
  otp_verified=$13, role=$14, is_active=$15, updated_at=$17;`

	_, err := execSQL(ctx, r.pool, tx, q,
		u.ID, u.Email, u.Name, u.PasswordHash, u.Phone, u.Address, u.CountryID,
		u.Country, u.CallingID, u.CallingCode, u.Bio, u.Gender, u.OTPVerified,
		u.Role, u.IsActive, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// unique violation: email or phone
			return domain.ErrAlreadyExists
		}
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT `+userColumns+` FROM users WHERE id=$1;`, id)
	if err != nil {
		return nil, err
	}
	return scanUser(row)
}

func (r *userRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.User, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT `+userColumns+` FROM users WHERE email=$1;`, model.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	return scanUser(row)
}

func (r *userRepo) FindByPhone(ctx context.Context, tx repository.Tx, phone string) (*model.User, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT `+userColumns+` FROM users WHERE phone=$1;`, phone)
	if err != nil {
		return nil, err
	}
	return scanUser(row)
}

func (r *userRepo) List(ctx context.Context, tx repository.Tx, f repository.UserListFilter) ([]*model.User, error) {
	sortCol := "created_at"
	switch f.SortBy {
	case "name", "email", "created_at":
		sortCol = f.SortBy
	}
	dir := "ASC"
	if f.SortDesc {
		dir = "DESC"
	}
	if f.Limit <= 0 {
		f.Limit = 10
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	q := fmt.Sprintf(`SELECT `+userColumns+`
FROM users
WHERE ($1 = '' OR name ILIKE '%%'||$1||'%%' OR email ILIKE '%%'||$1||'%%')
ORDER BY %s %s
OFFSET $2 LIMIT $3;`, sortCol, dir)

	rows, err := queryRows(ctx, r.pool, tx, q, f.Search, f.Offset, f.Limit)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return nil, err
		}
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *userRepo) Count(ctx context.Context, tx repository.Tx, search string) (int, error) {
	const q = `SELECT COUNT(*) FROM users WHERE ($1 = '' OR name ILIKE '%'||$1||'%' OR email ILIKE '%'||$1||'%');`
	row, err := pickRow(ctx, r.pool, tx, q, search)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, domain.ErrReadDatabaseRow
	}
	return n, nil
}
