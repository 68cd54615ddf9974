package usecase

import (
	"time"

	"github.com/bidhaus/auction-backend/internal/domain"
)

// AUCTION USECASE

// ProductDraft — заявка поставщика на новый лот. Цена в минорных единицах.
type ProductDraft struct {
	CategoryID    int64
	Name          string
	Description   string
	Specification string
	Currency      string
	StartPrice    int64
	StartTime     time.Time
	EndTime       time.Time
	Photos        []PhotoUpload
}

// PhotoUpload представляет фото, загруженное через multipart/form-data.
type PhotoUpload struct {
	Data     []byte // байты изображения
	MimeType string // Content-Type из multipart (image/jpeg)
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла (для логов)
}

// ProductSummary — карточка лота для витрины. Price — текущая цена,
// либо стартовая, если ставок ещё не было.
type ProductSummary struct {
	ID          int64
	Name        string
	Description string
	Price       int64
	Currency    string
}

// SESSION USECASE

// UserDraft — заявка на регистрацию пользователя.
type UserDraft struct {
	FirstName  string
	LastName   string
	Email      string
	Password   string
	Age        int
	NationalID string
	Address    string
	Phone      string
}

// Session — выданная при входе сессия. Роль выбирается на время сессии.
type Session struct {
	Token     string
	UserID    int64
	Role      domain.Role
	CreatedAt time.Time
}

// INFRASTRUCTURE

// UploadPhotosReq — запрос на загрузку фотографий лота.
type UploadPhotosReq struct {
	Name   string
	Photos []PhotoUpload
}

// UploadPhotosRes — результат загрузки фотографий (ключи в MinIO).
type UploadPhotosRes struct {
	Keys []string
}

type WriteRawMessageReq struct {
	AggregateID int64
	Payload     []byte
}

// MAPPERS

func NewPhotoUpload(data []byte, mimeType string, size int64, name string) *PhotoUpload {
	return &PhotoUpload{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func NewProductSummary(id int64, name, description string, price int64, currency string) ProductSummary {
	return ProductSummary{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
		Currency:    currency,
	}
}

func NewUploadPhotosReq(name string, photos []PhotoUpload) *UploadPhotosReq {
	return &UploadPhotosReq{
		Name:   name,
		Photos: photos,
	}
}

func NewUploadPhotosRes(keys []string) *UploadPhotosRes {
	return &UploadPhotosRes{
		Keys: keys,
	}
}

func NewWriteRawMessageReq(aggregateID int64, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		AggregateID: aggregateID,
		Payload:     payload,
	}
}
