package http

import (
	"encoding/json"
	"net/http"

	"github.com/bidhaus/auction-backend/internal/domain"
	"github.com/bidhaus/auction-backend/internal/usecase"
	"github.com/bidhaus/auction-backend/pkg/e"
	"github.com/bidhaus/auction-backend/pkg/logger"
)

type AuthHandler struct {
	sessionUsecase usecase.SessionUC
	logger         logger.Logger
}

func NewAuthHandler(sessionUsecase usecase.SessionUC, logger logger.Logger) *AuthHandler {
	return &AuthHandler{sessionUsecase: sessionUsecase, logger: logger}
}

type registerRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Age        int    `json:"age"`
	NationalID string `json:"national_id"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// register
//
//	@Summary		Регистрация пользователя
//	@Description	Создаёт нового пользователя площадки
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		registerRequest	true	"Данные пользователя"
//	@Success		201		{object}	map[string]interface{}
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/auth/register [post]
func (a *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	id, err := a.sessionUsecase.Register(r.Context(), &usecase.UserDraft{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Password:   req.Password,
		Age:        req.Age,
		NationalID: req.NationalID,
		Address:    req.Address,
		Phone:      req.Phone,
	})
	if err != nil {
		a.logger.Warnf("register failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"UserID": id,
	})
}

// logIn
//
//	@Summary		Вход
//	@Description	Проверяет учётные данные и выдаёт токен сессии с выбранной ролью
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		loginRequest	true	"Учётные данные и роль (bidder|provider)"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		401		{object}	ErrorResponse	"Неверные учётные данные"
//	@Router			/auth/login [post]
func (a *AuthHandler) logIn(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	role, err := parseRole(req.Role)
	if err != nil {
		WriteError(w, err)
		return
	}

	session, err := a.sessionUsecase.LogIn(r.Context(), req.Email, req.Password, role)
	if err != nil {
		a.logger.Warnf("login failed for %s: %s", req.Email, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"Token": session.Token,
		"Role":  req.Role,
	})
}

// logOut
//
//	@Summary		Выход
//	@Description	Завершает текущую сессию
//	@Tags			auth
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Success		204
//	@Failure		401	{object}	ErrorResponse
//	@Router			/auth/logout [post]
func (a *AuthHandler) logOut(w http.ResponseWriter, r *http.Request) {
	if err := a.sessionUsecase.LogOut(r.Context(), bearerToken(r)); err != nil {
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseRole(s string) (domain.Role, error) {
	switch s {
	case "bidder":
		return domain.RoleBidder, nil
	case "provider":
		return domain.RoleProvider, nil
	default:
		return 0, e.ErrInvalidRole
	}
}
