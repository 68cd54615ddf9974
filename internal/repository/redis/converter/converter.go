//go:generate goverter gen github.com/bidhaus/auction-backend/internal/repository/redis/converter

package converter

import (
	"time"

	"github.com/bidhaus/auction-backend/internal/usecase"
)

// goverter:converter
type ProductSummaryConverter interface {
	ToRedisModel(entity *usecase.ProductSummary) *ProductSummaryRedisModel
	ToUseCase(model *ProductSummaryRedisModel) *usecase.ProductSummary
	ToArrRedisModel(entities []usecase.ProductSummary) []ProductSummaryRedisModel
	ToArrUseCase(models []ProductSummaryRedisModel) []usecase.ProductSummary
}

// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertRole
type SessionConverter interface {
	ToRedisModel(entity *usecase.Session) *SessionRedisModel
	ToUseCase(model *SessionRedisModel) *usecase.Session
}

func ConvertTime(t time.Time) time.Time {
	return t
}

func ConvertRole(r int) int {
	return r
}
