package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bidhaus/auction-backend/internal/domain"
	"github.com/bidhaus/auction-backend/internal/repository/memory"
	"github.com/bidhaus/auction-backend/internal/usecase"
	"github.com/bidhaus/auction-backend/internal/validation"
	"github.com/bidhaus/auction-backend/pkg/e"
	"github.com/bidhaus/auction-backend/pkg/logger"
)

func newSessionUC() (*usecase.SessionUsecase, *memory.UserRepo) {
	users := memory.NewUserRepo()
	uc := usecase.NewSessionUsecase(users, memory.NewSessionStore(), validation.NewValidator(), testRules(), logger.Discard{})

	return uc, users
}

func validUserDraft() *usecase.UserDraft {
	return &usecase.UserDraft{
		FirstName:  "Andrei",
		LastName:   "Popescu",
		Email:      "andrei@mail.com",
		Password:   "parola",
		Age:        30,
		NationalID: "1960203123456",
		Address:    "Str. Unirii, Bucuresti",
		Phone:      "0721234567",
	}
}

func TestRegister(t *testing.T) {
	uc, users := newSessionUC()
	ctx := context.Background()

	id, err := uc.Register(ctx, validUserDraft())
	require.NoError(t, err)

	user, err := users.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "andrei@mail.com", user.Email)
	require.Equal(t, 5.0, user.Score)
	require.Nil(t, user.BannedUntil)
}

func TestRegisterInvalidDraft(t *testing.T) {
	uc, _ := newSessionUC()
	ctx := context.Background()

	mutations := map[string]func(d *usecase.UserDraft){
		"first name": func(d *usecase.UserDraft) { d.FirstName = "an" },
		"age":        func(d *usecase.UserDraft) { d.Age = 17 },
		"email":      func(d *usecase.UserDraft) { d.Email = "not-an-email" },
		"password":   func(d *usecase.UserDraft) { d.Password = "ab" },
		"cnp":        func(d *usecase.UserDraft) { d.NationalID = "0960203123456" },
		"phone":      func(d *usecase.UserDraft) { d.Phone = "123" },
	}

	for name, mutate := range mutations {
		draft := validUserDraft()
		mutate(draft)

		_, err := uc.Register(ctx, draft)
		require.ErrorIs(t, err, e.ErrInvalidUser, "field %s", name)
	}
}

func TestLogInLogOut(t *testing.T) {
	uc, _ := newSessionUC()
	ctx := context.Background()

	_, err := uc.Register(ctx, validUserDraft())
	require.NoError(t, err)

	session, err := uc.LogIn(ctx, "andrei@mail.com", "parola", domain.RoleBidder)
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	require.Equal(t, domain.RoleBidder, session.Role)

	got, err := uc.CurrentSession(ctx, session.Token)
	require.NoError(t, err)
	require.Equal(t, session.UserID, got.UserID)

	require.NoError(t, uc.LogOut(ctx, session.Token))

	_, err = uc.CurrentSession(ctx, session.Token)
	require.ErrorIs(t, err, e.ErrSessionNotFound)
}

func TestLogInFailures(t *testing.T) {
	uc, _ := newSessionUC()
	ctx := context.Background()

	_, err := uc.Register(ctx, validUserDraft())
	require.NoError(t, err)

	_, err = uc.LogIn(ctx, "andrei@mail.com", "parola", domain.Role(3))
	require.ErrorIs(t, err, e.ErrInvalidRole)

	_, err = uc.LogIn(ctx, "nobody@mail.com", "parola", domain.RoleBidder)
	require.ErrorIs(t, err, e.ErrUserNotFound)

	_, err = uc.LogIn(ctx, "andrei@mail.com", "wrong", domain.RoleBidder)
	require.ErrorIs(t, err, e.ErrWrongPassword)
}

func TestParallelSessions(t *testing.T) {
	uc, _ := newSessionUC()
	ctx := context.Background()

	_, err := uc.Register(ctx, validUserDraft())
	require.NoError(t, err)

	asBidder, err := uc.LogIn(ctx, "andrei@mail.com", "parola", domain.RoleBidder)
	require.NoError(t, err)
	asProvider, err := uc.LogIn(ctx, "andrei@mail.com", "parola", domain.RoleProvider)
	require.NoError(t, err)

	require.NotEqual(t, asBidder.Token, asProvider.Token)

	got, err := uc.CurrentSession(ctx, asBidder.Token)
	require.NoError(t, err)
	require.Equal(t, domain.RoleBidder, got.Role)
}

func TestCurrentSessionEmptyToken(t *testing.T) {
	uc, _ := newSessionUC()

	_, err := uc.CurrentSession(context.Background(), "")
	require.ErrorIs(t, err, e.ErrNotLoggedIn)
}
