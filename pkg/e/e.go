package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound  = fmt.Errorf("transaction not found")
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// Ошибки поиска сущностей
	ErrProductNotFound  = fmt.Errorf("product not found")
	ErrCategoryNotFound = fmt.Errorf("category not found")
	ErrUserNotFound     = fmt.Errorf("user not found")
	ErrSessionNotFound  = fmt.Errorf("session not found")

	// Ошибки авторизации операций
	ErrNotOwner  = fmt.Errorf("auction does not belong to requester")
	ErrNotWinner = fmt.Errorf("auction was not won by requester")

	// Ошибки правил выставления лотов
	ErrUserBanned              = fmt.Errorf("account is suspended")
	ErrTooManyActive           = fmt.Errorf("too many auctions started and unfinished")
	ErrTooManyActiveInCategory = fmt.Errorf("too many auctions started and unfinished in category")

	// Ошибки правил торгов
	ErrSelfBid          = fmt.Errorf("bidder is already in the lead")
	ErrCurrencyMismatch = fmt.Errorf("auction currency mismatch")
	ErrPriceTooLow      = fmt.Errorf("bid price is too low")
	ErrPriceTooHigh     = fmt.Errorf("bid price is too high")

	// Ошибки оценки выигранных лотов
	ErrAlreadyScored     = fmt.Errorf("product is already scored")
	ErrScoreWindowClosed = fmt.Errorf("score window is closed")
	ErrNoScoredProducts  = fmt.Errorf("no scored products")

	// Ошибки графа категорий
	ErrInvalidCategoryLink = fmt.Errorf("invalid category link")

	// 400 Bad Request: ошибки валидации полей
	ErrInvalidName          = fmt.Errorf("invalid name")
	ErrInvalidDescription   = fmt.Errorf("invalid description")
	ErrInvalidSpecification = fmt.Errorf("invalid specification")
	ErrInvalidCurrency      = fmt.Errorf("invalid currency code")
	ErrInvalidPrice         = fmt.Errorf("invalid price")
	ErrPricePrecision       = fmt.Errorf("price must have at most 2 decimal places")
	ErrInvalidDates         = fmt.Errorf("invalid auction time window")
	ErrInvalidScore         = fmt.Errorf("invalid score")
	ErrInvalidCategoryName  = fmt.Errorf("invalid category name")
	ErrInvalidUser          = fmt.Errorf("invalid user data")

	// Ошибки сессий
	ErrInvalidRole    = fmt.Errorf("invalid role")
	ErrWrongPassword  = fmt.Errorf("email and password do not match")
	ErrNotLoggedIn    = fmt.Errorf("user is not logged in")
	ErrRoleNotAllowed = fmt.Errorf("operation is not allowed for session role")

	// Пустые выборки, превращаемые фасадом в ответ "ничего нет"
	ErrNoActiveAuctions = fmt.Errorf("no started auctions")
	ErrNoWonAuctions    = fmt.Errorf("no won auctions")

	// Транспортные ошибки HTTP-слоя
	ErrStatusBadRequest    = fmt.Errorf("bad request")
	ErrExpectedMultipart   = fmt.Errorf("expected multipart/form-data")
	ErrMissingFields       = fmt.Errorf("missing required fields")
	ErrTooManyPhotos       = fmt.Errorf("too many photos")
	ErrFileTooLarge        = fmt.Errorf("file too large")
	ErrUnsupportedMedia    = fmt.Errorf("unsupported media type")
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
