package usecase

import (
	"context"
	"errors"

	"github.com/jimlawless/whereami"

	"github.com/bidhaus/auction-backend/internal/domain"
	"github.com/bidhaus/auction-backend/pkg/e"
	"github.com/bidhaus/auction-backend/pkg/logger"
)

// CategoryUsecase управляет графом категорий. Граф ацикличен, категория
// может иметь несколько родителей, связь с предком не допускается.
type CategoryUsecase struct {
	categoryRepo CategoryRepository
	transactor   Transactor
	validator    FieldValidator
	logger       logger.Logger
}

func NewCategoryUsecase(
	categoryRepo CategoryRepository,
	transactor Transactor,
	validator FieldValidator,
	logger logger.Logger,
) *CategoryUsecase {
	return &CategoryUsecase{
		categoryRepo: categoryRepo,
		transactor:   transactor,
		validator:    validator,
		logger:       logger,
	}
}

// AddCategory создаёт новую категорию без родителей.
func (uc *CategoryUsecase) AddCategory(ctx context.Context, name string) (int64, error) {
	if err := uc.validator.ValidateCategoryName(name); err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	created, err := uc.categoryRepo.Create(ctx, domain.NewCategory(name))
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	uc.logger.Infof("category %d (%s) created", created.ID, name)

	return created.ID, nil
}

// GetByID возвращает категорию по идентификатору.
func (uc *CategoryUsecase) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return category, nil
}

// LinkParent добавляет категории ещё одного родителя. Связь отклоняется,
// если она замкнула бы цикл или дублирует уже достижимого предка.
func (uc *CategoryUsecase) LinkParent(ctx context.Context, sonID, parentID int64) error {
	if sonID <= 0 || parentID <= 0 || sonID == parentID {
		return e.Wrap(whereami.WhereAmI(), e.ErrInvalidCategoryLink)
	}

	err := uc.transactor.WithinTx(ctx, func(ctx context.Context) error {
		son, err := uc.categoryRepo.GetByID(ctx, sonID)
		if err != nil {
			return err
		}

		if _, err = uc.categoryRepo.GetByID(ctx, parentID); err != nil {
			return err
		}

		// parent уже предок son либо son предок parent
		reachable, err := uc.ancestors(ctx, son)
		if err != nil {
			return err
		}
		if reachable[parentID] {
			return e.ErrInvalidCategoryLink
		}

		parentAncestors, err := uc.ancestorsByID(ctx, parentID)
		if err != nil {
			return err
		}
		if parentAncestors[sonID] {
			return e.ErrInvalidCategoryLink
		}

		return uc.categoryRepo.AddLink(ctx, sonID, parentID)
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	uc.logger.Infof("category %d linked under %d", sonID, parentID)

	return nil
}

// ancestors обходит граф вверх в ширину и возвращает множество предков.
func (uc *CategoryUsecase) ancestors(ctx context.Context, start *domain.Category) (map[int64]bool, error) {
	visited := make(map[int64]bool)
	queue := append([]int64(nil), start.Parents...)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true

		parents, err := uc.categoryRepo.GetParentIDs(ctx, id)
		if err != nil {
			if errors.Is(err, e.ErrCategoryNotFound) {
				continue
			}
			return nil, err
		}
		queue = append(queue, parents...)
	}

	return visited, nil
}

func (uc *CategoryUsecase) ancestorsByID(ctx context.Context, id int64) (map[int64]bool, error) {
	parents, err := uc.categoryRepo.GetParentIDs(ctx, id)
	if err != nil {
		return nil, err
	}

	return uc.ancestors(ctx, &domain.Category{ID: id, Parents: parents})
}
