package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bidhaus/auction-backend/internal/usecase"
	"github.com/bidhaus/auction-backend/pkg/e"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrStatusBadRequest),
		errors.Is(err, e.ErrExpectedMultipart),
		errors.Is(err, e.ErrMissingFields),
		errors.Is(err, e.ErrTooManyPhotos),
		errors.Is(err, e.ErrFileTooLarge),
		errors.Is(err, e.ErrUnsupportedMedia),
		errors.Is(err, e.ErrInvalidName),
		errors.Is(err, e.ErrInvalidDescription),
		errors.Is(err, e.ErrInvalidSpecification),
		errors.Is(err, e.ErrInvalidCurrency),
		errors.Is(err, e.ErrInvalidPrice),
		errors.Is(err, e.ErrPricePrecision),
		errors.Is(err, e.ErrInvalidDates),
		errors.Is(err, e.ErrInvalidScore),
		errors.Is(err, e.ErrInvalidCategoryName),
		errors.Is(err, e.ErrInvalidCategoryLink),
		errors.Is(err, e.ErrInvalidUser),
		errors.Is(err, e.ErrInvalidRole):
		return http.StatusBadRequest, unwrapMessage(err)

	case errors.Is(err, e.ErrNotLoggedIn),
		errors.Is(err, e.ErrSessionNotFound),
		errors.Is(err, e.ErrWrongPassword):
		return http.StatusUnauthorized, unwrapMessage(err)

	case errors.Is(err, e.ErrNotOwner),
		errors.Is(err, e.ErrNotWinner),
		errors.Is(err, e.ErrUserBanned),
		errors.Is(err, e.ErrRoleNotAllowed):
		return http.StatusForbidden, unwrapMessage(err)

	case errors.Is(err, e.ErrProductNotFound),
		errors.Is(err, e.ErrCategoryNotFound),
		errors.Is(err, e.ErrUserNotFound),
		errors.Is(err, e.ErrNoActiveAuctions),
		errors.Is(err, e.ErrNoWonAuctions):
		return http.StatusNotFound, unwrapMessage(err)

	case errors.Is(err, e.ErrSelfBid),
		errors.Is(err, e.ErrAlreadyScored),
		errors.Is(err, e.ErrTooManyActive),
		errors.Is(err, e.ErrTooManyActiveInCategory):
		return http.StatusConflict, unwrapMessage(err)

	case errors.Is(err, e.ErrPriceTooLow),
		errors.Is(err, e.ErrPriceTooHigh),
		errors.Is(err, e.ErrCurrencyMismatch),
		errors.Is(err, e.ErrScoreWindowClosed),
		errors.Is(err, e.ErrNoScoredProducts):
		return http.StatusUnprocessableEntity, unwrapMessage(err)

	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

// unwrapMessage достаёт сообщение самой глубокой ошибки цепочки, чтобы не
// отдавать клиенту пути до файлов из обёрток whereami.
func unwrapMessage(err error) string {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err.Error()
		}
		err = unwrapped
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parsePriceToCents конвертирует строку вида "25.99" или "26" в минорные
// единицы. Отклоняет пустые строки, отрицательные значения, больше двух
// знаков после запятой и неправдоподобно большие суммы.
func parsePriceToCents(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, e.ErrInvalidPrice
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidPrice
	}

	if d.LessThanOrEqual(decimal.Zero) {
		return 0, e.ErrInvalidPrice
	}

	maxPrice := decimal.NewFromInt(1_000_000_000)
	if d.GreaterThan(maxPrice) {
		return 0, e.ErrInvalidPrice
	}

	if d.Exponent() < -2 {
		return 0, e.ErrPricePrecision
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.ErrExpectedMultipart
	}
	return r.ParseMultipartForm(maxMemory)
}

func parsePhotos(files []*multipart.FileHeader, limit int) ([]usecase.PhotoUpload, error) {
	const maxFileSize = 15 << 20

	if len(files) > limit {
		return nil, e.ErrTooManyPhotos
	}

	photos := make([]usecase.PhotoUpload, 0, len(files))
	for _, fh := range files {
		data, mimeType, err := readFile(fh, maxFileSize)
		if err != nil {
			return nil, err
		}
		photos = append(photos, *usecase.NewPhotoUpload(data, mimeType, int64(len(data)), fh.Filename))
	}
	return photos, nil
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	if int64(len(data)) > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	return data, mimeType, nil
}
