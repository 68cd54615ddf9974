package pgdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"

	"github.com/bidhaus/auction-backend/internal/domain"
	"github.com/bidhaus/auction-backend/internal/repository/pgdb/converter"
	"github.com/bidhaus/auction-backend/pkg/e"
	"github.com/bidhaus/auction-backend/pkg/tr"
)

// CategoryRepo реализует репозиторий графа категорий поверх PostgreSQL.
// Рёбра графа лежат в таблице смежности category_links.
type CategoryRepo struct {
	pool *pgxpool.Pool
	conv converter.CategoryConverter
}

func NewCategoryRepo(pool *pgxpool.Pool, conv converter.CategoryConverter) *CategoryRepo {
	return &CategoryRepo{pool: pool, conv: conv}
}

func (c *CategoryRepo) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	query := `
		INSERT INTO categories(name) VALUES ($1)
		RETURNING id, name, created_at;
	`

	var model converter.CategoryModel
	if err := pickQuerier(ctx, c.pool).QueryRow(ctx, query, category.Name).
		Scan(&model.ID, &model.Name, &model.CreatedAt); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

func (c *CategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	query := `
		SELECT
			cat.id, cat.name, cat.created_at,
			ARRAY(SELECT parent_id FROM category_links WHERE son_id = cat.id ORDER BY parent_id),
			ARRAY(SELECT son_id FROM category_links WHERE parent_id = cat.id ORDER BY son_id)
		FROM categories cat
		WHERE cat.id = $1;
	`

	var model converter.CategoryModel
	err := pickQuerier(ctx, c.pool).QueryRow(ctx, query, id).
		Scan(&model.ID, &model.Name, &model.CreatedAt, &model.Parents, &model.Children)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrCategoryNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

func (c *CategoryRepo) GetParentIDs(ctx context.Context, id int64) ([]int64, error) {
	query := `
		SELECT ARRAY(SELECT parent_id FROM category_links WHERE son_id = cat.id)
		FROM categories cat
		WHERE cat.id = $1;
	`

	var parents []int64
	err := pickQuerier(ctx, c.pool).QueryRow(ctx, query, id).Scan(&parents)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrCategoryNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return parents, nil
}

// AddLink вставляет ребро son -> parent. Проверка ацикличности выполняется
// ядром до вставки, внутри той же транзакции.
func (c *CategoryRepo) AddLink(ctx context.Context, son, parent int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO category_links (son_id, parent_id) VALUES ($1, $2)
		ON CONFLICT (son_id, parent_id) DO NOTHING;
	`

	if _, err := tx.Exec(ctx, query, son, parent); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
