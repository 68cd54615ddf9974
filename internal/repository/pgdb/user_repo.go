package pgdb

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"

	"github.com/bidhaus/auction-backend/internal/domain"
	"github.com/bidhaus/auction-backend/internal/repository/pgdb/converter"
	"github.com/bidhaus/auction-backend/pkg/e"
	"github.com/bidhaus/auction-backend/pkg/tr"
)

const userColumns = `
	id, first_name, last_name, email, password, age, national_id, address,
	phone, score, banned_until, created_at
`

// UserRepo реализует репозиторий пользователей поверх PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
	conv converter.UserConverter
}

func NewUserRepo(pool *pgxpool.Pool, conv converter.UserConverter) *UserRepo {
	return &UserRepo{
		pool: pool,
		conv: conv,
	}
}

func (u *UserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	model := u.conv.ToModel(user)
	query := `
		INSERT INTO users (
			first_name, last_name, email, password, age, national_id,
			address, phone, score
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + userColumns + `;
	`

	created, err := scanUser(pickQuerier(ctx, u.pool).QueryRow(ctx, query,
		model.FirstName, model.LastName, model.Email, model.Password,
		model.Age, model.NationalID, model.Address, model.Phone, model.Score,
	))
	if err != nil {
		if postgresDuplicate(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrInvalidUser)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return u.conv.ToEntity(created), nil
}

func (u *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1;`

	model, err := scanUser(pickQuerier(ctx, u.pool).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrUserNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return u.conv.ToEntity(model), nil
}

func (u *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1;`

	model, err := scanUser(pickQuerier(ctx, u.pool).QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrUserNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return u.conv.ToEntity(model), nil
}

// UpdateReputation записывает пересчитанную репутацию. Нулевой bannedUntil
// не трогает действующий срок бана.
func (u *UserRepo) UpdateReputation(ctx context.Context, id int64, score float64, bannedUntil *time.Time) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE users
		SET score = $2, banned_until = COALESCE($3, banned_until)
		WHERE id = $1;
	`

	tag, err := tx.Exec(ctx, query, id, score, bannedUntil)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if tag.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrUserNotFound)
	}

	return nil
}

func scanUser(row pgx.Row) (*converter.UserModel, error) {
	var model converter.UserModel
	err := row.Scan(
		&model.ID, &model.FirstName, &model.LastName, &model.Email,
		&model.Password, &model.Age, &model.NationalID, &model.Address,
		&model.Phone, &model.Score, &model.BannedUntil, &model.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &model, nil
}
