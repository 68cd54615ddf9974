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
	"github.com/bidhaus/auction-backend/internal/usecase"
	"github.com/bidhaus/auction-backend/pkg/e"
	"github.com/bidhaus/auction-backend/pkg/tr"
)

const productColumns = `
	id, owner_id, category_id, name, description, specification, currency,
	start_price, current_price, leading_bidder_id, start_time, end_time,
	is_active, score, scored_at, photo_keys, created_at, updated_at
`

// ProductRepo реализует репозиторий лотов поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := p.conv.ToModel(product)
	query := `
		INSERT INTO products (
			owner_id, category_id, name, description, specification, currency,
			start_price, start_time, end_time, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + productColumns + `;
	`

	row := tx.QueryRow(ctx, query,
		model.OwnerID, model.CategoryID, model.Name, model.Description,
		model.Specification, model.Currency, model.StartPrice,
		model.StartTime, model.EndTime, model.Active,
	)

	created, err := scanProduct(row)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(created), nil
}

func (p *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1;`

	model, err := scanProduct(pickQuerier(ctx, p.pool).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

// GetForUpdate читает лот с блокировкой строки. Работает только внутри
// транзакции, сериализует конкурирующие мутации одного лота.
func (p *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE;`

	model, err := scanProduct(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

func (p *ProductRepo) SetPhotoKeys(ctx context.Context, id int64, keys []string) error {
	return p.exec(ctx,
		`UPDATE products SET photo_keys = $2, updated_at = NOW() WHERE id = $1;`,
		id, keys,
	)
}

func (p *ProductRepo) SetInactive(ctx context.Context, id int64) error {
	return p.exec(ctx,
		`UPDATE products SET is_active = FALSE, updated_at = NOW() WHERE id = $1;`,
		id,
	)
}

func (p *ProductRepo) SetBid(ctx context.Context, id, price, bidderID int64) error {
	return p.exec(ctx,
		`UPDATE products SET current_price = $2, leading_bidder_id = $3, updated_at = NOW() WHERE id = $1;`,
		id, price, bidderID,
	)
}

func (p *ProductRepo) SetScore(ctx context.Context, id int64, score float64, scoredAt time.Time) error {
	return p.exec(ctx,
		`UPDATE products SET score = $2, scored_at = $3, updated_at = NOW() WHERE id = $1;`,
		id, score, scoredAt,
	)
}

func (p *ProductRepo) CountActiveByOwner(ctx context.Context, ownerID int64) (int, error) {
	query := `SELECT COUNT(*) FROM products WHERE owner_id = $1 AND is_active;`

	var count int
	if err := pickQuerier(ctx, p.pool).QueryRow(ctx, query, ownerID).Scan(&count); err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return count, nil
}

func (p *ProductRepo) CountActiveByOwnerInCategory(ctx context.Context, ownerID, categoryID int64) (int, error) {
	query := `SELECT COUNT(*) FROM products WHERE owner_id = $1 AND category_id = $2 AND is_active;`

	var count int
	if err := pickQuerier(ctx, p.pool).QueryRow(ctx, query, ownerID, categoryID).Scan(&count); err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return count, nil
}

func (p *ProductRepo) ListActiveNotOwned(ctx context.Context, userID int64) ([]usecase.ProductSummary, error) {
	query := `
		SELECT id, name, description, COALESCE(current_price, start_price), currency
		FROM products
		WHERE is_active AND owner_id <> $1
		ORDER BY id;
	`

	return p.querySummaries(ctx, query, userID)
}

func (p *ProductRepo) ListActiveLedBy(ctx context.Context, userID int64) ([]usecase.ProductSummary, error) {
	query := `
		SELECT id, name, description, COALESCE(current_price, start_price), currency
		FROM products
		WHERE is_active AND leading_bidder_id = $1
		ORDER BY id;
	`

	return p.querySummaries(ctx, query, userID)
}

func (p *ProductRepo) ListWonBy(ctx context.Context, userID int64) ([]*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE NOT is_active AND leading_bidder_id = $1
		ORDER BY id;
	`

	rows, err := pickQuerier(ctx, p.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		model, err := scanProduct(rows)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		products = append(products, p.conv.ToEntity(model))
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return products, nil
}

func (p *ProductRepo) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE products
		SET is_active = FALSE, updated_at = NOW()
		WHERE is_active AND end_time < $1;
	`

	tag, err := pickQuerier(ctx, p.pool).Exec(ctx, query, now)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return tag.RowsAffected(), nil
}

func (p *ProductRepo) ListScores(ctx context.Context) ([]float64, error) {
	query := `
		SELECT score FROM products
		WHERE score IS NOT NULL
		ORDER BY scored_at, id;
	`

	return p.queryScores(ctx, query)
}

func (p *ProductRepo) ListScoresBySeller(ctx context.Context, sellerID int64) ([]float64, error) {
	query := `
		SELECT score FROM products
		WHERE score IS NOT NULL AND owner_id = $1
		ORDER BY scored_at, id;
	`

	return p.queryScores(ctx, query, sellerID)
}

func (p *ProductRepo) exec(ctx context.Context, query string, args ...any) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if tag.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
	}

	return nil
}

func (p *ProductRepo) querySummaries(ctx context.Context, query string, args ...any) ([]usecase.ProductSummary, error) {
	rows, err := pickQuerier(ctx, p.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	summaries := make([]usecase.ProductSummary, 0)
	for rows.Next() {
		var s usecase.ProductSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.Currency); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return summaries, nil
}

func (p *ProductRepo) queryScores(ctx context.Context, query string, args ...any) ([]float64, error) {
	rows, err := pickQuerier(ctx, p.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	scores := make([]float64, 0)
	for rows.Next() {
		var score float64
		if err := rows.Scan(&score); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		scores = append(scores, score)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return scores, nil
}

func scanProduct(row pgx.Row) (*converter.ProductModel, error) {
	var model converter.ProductModel
	err := row.Scan(
		&model.ID, &model.OwnerID, &model.CategoryID, &model.Name,
		&model.Description, &model.Specification, &model.Currency,
		&model.StartPrice, &model.CurrentPrice, &model.LeadingBidderID,
		&model.StartTime, &model.EndTime, &model.Active, &model.Score,
		&model.ScoredAt, &model.PhotoKeys, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &model, nil
}
