package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bidhaus/auction-backend/internal/cfg"
	"github.com/bidhaus/auction-backend/internal/domain"
	"github.com/bidhaus/auction-backend/internal/usecase"
	"github.com/bidhaus/auction-backend/pkg/e"
	"github.com/bidhaus/auction-backend/pkg/logger"
)

type ProductHandler struct {
	auctionUsecase usecase.AuctionUC
	minioCfg       *cfg.MinIOCfg
	logger         logger.Logger
}

func NewProductHandler(auctionUsecase usecase.AuctionUC, minioCfg *cfg.MinIOCfg, logger logger.Logger) *ProductHandler {
	return &ProductHandler{auctionUsecase: auctionUsecase, minioCfg: minioCfg, logger: logger}
}

type placeBidRequest struct {
	Price    string `json:"price"`
	Currency string `json:"currency"`
}

type assignScoreRequest struct {
	Score float64 `json:"score"`
}

type productSummaryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Currency    string `json:"currency"`
}

type wonProductResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Currency string `json:"currency"`
	EndTime  string `json:"end_time"`
	Scored   bool   `json:"scored"`
}

// createProduct
//
//	@Summary		Выставление лота
//	@Description	Создаёт новый лот с фотографиями от имени поставщика
//	@Tags			products
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			name			formData	string	true	"Название лота"
//	@Param			description		formData	string	true	"Описание"
//	@Param			specification	formData	string	true	"Характеристики"
//	@Param			currency		formData	string	true	"Валюта (ISO 4217)"
//	@Param			start_price		formData	number	true	"Стартовая цена"
//	@Param			category_id		formData	int		true	"Категория"
//	@Param			start_time		formData	string	true	"Начало торгов (RFC3339)"
//	@Param			end_time		formData	string	true	"Конец торгов (RFC3339)"
//	@Param			photos			formData	file	false	"Фотографии лота"
//	@Success		201				{object}	map[string]interface{}
//	@Failure		400				{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		403				{object}	ErrorResponse	"Бан или чужая роль"
//	@Failure		409				{object}	ErrorResponse	"Превышены лимиты активных лотов"
//	@Router			/products [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = 150 << 20
		maxMemory           = 32 << 20
	)

	session, err := callerWithRole(r.Context(), domain.RoleProvider)
	if err != nil {
		WriteError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), r.Header.Get("Content-Type"))
		WriteError(w, err)
		return
	}

	draft, err := parseProductForm(r)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	photos, err := parsePhotos(r.MultipartForm.File["photos"], p.minioCfg.UploadPhotosLimit)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}
	draft.Photos = photos

	id, err := p.auctionUsecase.CreateProduct(r.Context(), session.UserID, draft)
	if err != nil {
		p.logger.Warnf("create product failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"ProductID": id,
	})
}

// closeProduct
//
//	@Summary		Закрытие лота владельцем
//	@Tags			products
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			id	path	int	true	"ID лота"
//	@Success		204
//	@Failure		403	{object}	ErrorResponse	"Лот принадлежит другому поставщику"
//	@Failure		404	{object}	ErrorResponse	"Лот не найден"
//	@Router			/products/{id}/close [post]
func (p *ProductHandler) closeProduct(w http.ResponseWriter, r *http.Request) {
	session, err := callerWithRole(r.Context(), domain.RoleProvider)
	if err != nil {
		WriteError(w, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := p.auctionUsecase.CloseProduct(r.Context(), session.UserID, id); err != nil {
		p.logger.Warnf("close product %d failed: %s", id, err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// placeBid
//
//	@Summary		Ставка на лот
//	@Description	Принимает ставку в пределах допустимого шага от текущей цены
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			id		path	int				true	"ID лота"
//	@Param			body	body	placeBidRequest	true	"Цена и валюта ставки"
//	@Success		204
//	@Failure		409	{object}	ErrorResponse	"Участник уже лидирует"
//	@Failure		422	{object}	ErrorResponse	"Ставка вне допустимого диапазона"
//	@Router			/products/{id}/bids [post]
func (p *ProductHandler) placeBid(w http.ResponseWriter, r *http.Request) {
	session, err := callerWithRole(r.Context(), domain.RoleBidder)
	if err != nil {
		WriteError(w, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req placeBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	price, err := parsePriceToCents(req.Price)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := p.auctionUsecase.PlaceBid(r.Context(), session.UserID, id, price, req.Currency); err != nil {
		p.logger.Warnf("bid on product %d failed: %s", id, err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// assignScore
//
//	@Summary		Оценка выигранного лота
//	@Description	Победитель торгов оценивает лот один раз в отведённое окно
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			id		path	int					true	"ID лота"
//	@Param			body	body	assignScoreRequest	true	"Оценка по шкале [1,10]"
//	@Success		204
//	@Failure		403	{object}	ErrorResponse	"Запрос не от победителя"
//	@Failure		409	{object}	ErrorResponse	"Лот уже оценён"
//	@Failure		422	{object}	ErrorResponse	"Окно оценки закрыто"
//	@Router			/products/{id}/score [post]
func (p *ProductHandler) assignScore(w http.ResponseWriter, r *http.Request) {
	session, err := callerWithRole(r.Context(), domain.RoleBidder)
	if err != nil {
		WriteError(w, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req assignScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	if err := p.auctionUsecase.AssignScore(r.Context(), session.UserID, id, req.Score); err != nil {
		p.logger.Warnf("score product %d failed: %s", id, err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// getProduct
//
//	@Summary		Карточка лота
//	@Tags			products
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			id	path		int	true	"ID лота"
//	@Success		200	{object}	productSummaryResponse
//	@Failure		404	{object}	ErrorResponse	"Лот не найден"
//	@Router			/products/{id} [get]
func (p *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	summary, err := p.auctionUsecase.GetProduct(r.Context(), session.UserID, id)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toSummaryResponse(*summary))
}

// listOthers
//
//	@Summary		Активные лоты других пользователей
//	@Tags			products
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Success		200	{array}		productSummaryResponse
//	@Failure		404	{object}	ErrorResponse	"Активных лотов нет"
//	@Router			/products [get]
func (p *ProductHandler) listOthers(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	summaries, err := p.auctionUsecase.ListOthers(r.Context(), session.UserID)
	if err != nil {
		WriteError(w, err)
		return
	}
	if len(summaries) == 0 {
		WriteError(w, e.ErrNoActiveAuctions)
		return
	}

	WriteSuccess(w, http.StatusOK, toSummaryResponses(summaries))
}

// listOwnWins
//
//	@Summary		Выигранные лоты
//	@Tags			products
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Success		200	{array}		wonProductResponse
//	@Failure		404	{object}	ErrorResponse	"Выигранных лотов нет"
//	@Router			/me/wins [get]
func (p *ProductHandler) listOwnWins(w http.ResponseWriter, r *http.Request) {
	session, err := callerWithRole(r.Context(), domain.RoleBidder)
	if err != nil {
		WriteError(w, err)
		return
	}

	products, err := p.auctionUsecase.ListOwnWins(r.Context(), session.UserID)
	if err != nil {
		WriteError(w, err)
		return
	}
	if len(products) == 0 {
		WriteError(w, e.ErrNoWonAuctions)
		return
	}

	responses := make([]wonProductResponse, 0, len(products))
	for _, product := range products {
		price := product.StartPrice
		if product.CurrentPrice != nil {
			price = *product.CurrentPrice
		}
		responses = append(responses, wonProductResponse{
			ID:       product.ID,
			Name:     product.Name,
			Price:    formatPrice(price),
			Currency: product.Currency,
			EndTime:  product.EndTime.Format(time.RFC3339),
			Scored:   product.Score != nil,
		})
	}

	WriteSuccess(w, http.StatusOK, responses)
}

// listOwnActiveBids
//
//	@Summary		Активные лоты, где участник лидирует
//	@Tags			products
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Success		200	{array}		productSummaryResponse
//	@Failure		404	{object}	ErrorResponse	"Активных ставок нет"
//	@Router			/me/bids [get]
func (p *ProductHandler) listOwnActiveBids(w http.ResponseWriter, r *http.Request) {
	session, err := callerWithRole(r.Context(), domain.RoleBidder)
	if err != nil {
		WriteError(w, err)
		return
	}

	summaries, err := p.auctionUsecase.ListOwnActiveBids(r.Context(), session.UserID)
	if err != nil {
		WriteError(w, err)
		return
	}
	if len(summaries) == 0 {
		WriteError(w, e.ErrNoActiveAuctions)
		return
	}

	WriteSuccess(w, http.StatusOK, toSummaryResponses(summaries))
}

func parseProductForm(r *http.Request) (*usecase.ProductDraft, error) {
	name := r.FormValue("name")
	description := r.FormValue("description")
	specification := r.FormValue("specification")
	currency := r.FormValue("currency")
	priceStr := r.FormValue("start_price")
	categoryStr := r.FormValue("category_id")
	startStr := r.FormValue("start_time")
	endStr := r.FormValue("end_time")

	if name == "" || description == "" || specification == "" || currency == "" ||
		priceStr == "" || categoryStr == "" || startStr == "" || endStr == "" {
		return nil, e.ErrMissingFields
	}

	price, err := parsePriceToCents(priceStr)
	if err != nil {
		return nil, err
	}

	categoryID, err := strconv.ParseInt(categoryStr, 10, 64)
	if err != nil || categoryID <= 0 {
		return nil, e.ErrStatusBadRequest
	}

	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return nil, e.ErrInvalidDates
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return nil, e.ErrInvalidDates
	}

	return &usecase.ProductDraft{
		CategoryID:    categoryID,
		Name:          name,
		Description:   description,
		Specification: specification,
		Currency:      currency,
		StartPrice:    price,
		StartTime:     start,
		EndTime:       end,
	}, nil
}

func toSummaryResponse(s usecase.ProductSummary) productSummaryResponse {
	return productSummaryResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       formatPrice(s.Price),
		Currency:    s.Currency,
	}
}

func toSummaryResponses(summaries []usecase.ProductSummary) []productSummaryResponse {
	responses := make([]productSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		responses = append(responses, toSummaryResponse(s))
	}
	return responses
}

// formatPrice переводит минорные единицы в строку вида "27.50".
func formatPrice(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}
