package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jimlawless/whereami"

	"github.com/bidhaus/auction-backend/internal/cfg"
	"github.com/bidhaus/auction-backend/internal/domain"
	"github.com/bidhaus/auction-backend/pkg/e"
	"github.com/bidhaus/auction-backend/pkg/logger"
)

// SessionUsecase отвечает за регистрацию и сессии. Роль выбирается при
// входе и живёт в сессии, а не в профиле пользователя.
type SessionUsecase struct {
	userRepo     UserRepository
	sessionStore SessionStore
	validator    FieldValidator
	rules        *cfg.RulesCfg
	logger       logger.Logger
	now          func() time.Time
}

func NewSessionUsecase(
	userRepo UserRepository,
	sessionStore SessionStore,
	validator FieldValidator,
	rules *cfg.RulesCfg,
	logger logger.Logger,
) *SessionUsecase {
	return &SessionUsecase{
		userRepo:     userRepo,
		sessionStore: sessionStore,
		validator:    validator,
		rules:        rules,
		logger:       logger,
		now:          time.Now,
	}
}

// Register создаёт нового пользователя со стартовой репутацией.
func (uc *SessionUsecase) Register(ctx context.Context, draft *UserDraft) (int64, error) {
	if err := uc.validator.ValidateUserDraft(draft); err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	user := &domain.User{
		FirstName:  draft.FirstName,
		LastName:   draft.LastName,
		Email:      draft.Email,
		Password:   draft.Password,
		Age:        draft.Age,
		NationalID: draft.NationalID,
		Address:    draft.Address,
		Phone:      draft.Phone,
		Score:      uc.rules.DefaultScore,
	}

	created, err := uc.userRepo.Create(ctx, user)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	uc.logger.Infof("user %d registered", created.ID)

	return created.ID, nil
}

// LogIn проверяет учётные данные и выдаёт токен сессии с выбранной ролью.
func (uc *SessionUsecase) LogIn(ctx context.Context, email, password string, role domain.Role) (*Session, error) {
	if !role.Valid() {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrInvalidRole)
	}

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if user.Password != password {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrWrongPassword)
	}

	session := &Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		Role:      role,
		CreatedAt: uc.now(),
	}

	if err = uc.sessionStore.Save(ctx, session); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	uc.logger.Infof("user %d logged in as role %d", user.ID, role)

	return session, nil
}

// LogOut удаляет сессию по токену.
func (uc *SessionUsecase) LogOut(ctx context.Context, token string) error {
	if err := uc.sessionStore.Delete(ctx, token); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// CurrentSession возвращает сессию по токену либо ErrNotLoggedIn.
func (uc *SessionUsecase) CurrentSession(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrNotLoggedIn)
	}

	session, err := uc.sessionStore.Get(ctx, token)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return session, nil
}
