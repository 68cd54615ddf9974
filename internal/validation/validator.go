package validation

import (
	"regexp"
	"time"
	"unicode"

	"github.com/bidhaus/auction-backend/internal/usecase"
	"github.com/bidhaus/auction-backend/pkg/e"
)

// Граница смещения окна торгов: лот нельзя запланировать дальше
// четырёх месяцев вперёд и нельзя растянуть дольше четырёх месяцев.
const maxWindowMonths = 4

var emailRe = regexp.MustCompile(`^([\w.\-]+)@([\w\-]+)((\.(\w){2,3})+)$`)

// Validator реализует проверки формата полей. Правила сравнения цен,
// квоты и репутация сюда не входят — это зона ответственности ядра,
// валидатор отвечает только за форму данных.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateCategoryName проверяет имя категории: длина [3,50], буквы,
// пробелы и дефисы, первая буква заглавная.
func (v *Validator) ValidateCategoryName(name string) error {
	if err := properName(name, 3, 50); err != nil {
		return e.Wrap("category name", e.ErrInvalidCategoryName)
	}

	return nil
}

// ValidateProductDraft проверяет форму полей нового лота.
func (v *Validator) ValidateProductDraft(d *usecase.ProductDraft, now time.Time) error {
	if err := properName(d.Name, 3, 50); err != nil {
		return e.Wrap("product name", err)
	}

	if err := properText(d.Description, 15, 100); err != nil {
		return e.Wrap("product description", e.ErrInvalidDescription)
	}

	if err := properText(d.Specification, 10, 100); err != nil {
		return e.Wrap("product specification", e.ErrInvalidSpecification)
	}

	if !validCurrency(d.Currency) {
		return e.ErrInvalidCurrency
	}

	if d.StartPrice <= 0 {
		return e.ErrInvalidPrice
	}

	if d.CategoryID <= 0 {
		return e.ErrCategoryNotFound
	}

	return v.validateWindow(d.StartTime, d.EndTime, now)
}

// ValidateScore проверяет, что оценка лежит в шкале [1,10].
func (v *Validator) ValidateScore(score float64) error {
	if score < 1 || score > 10 {
		return e.ErrInvalidScore
	}

	return nil
}

// ValidateUserDraft проверяет форму полей регистрируемого пользователя.
func (v *Validator) ValidateUserDraft(d *usecase.UserDraft) error {
	if err := properName(d.FirstName, 3, 50); err != nil {
		return e.Wrap("first name", e.ErrInvalidUser)
	}

	if err := properName(d.LastName, 3, 50); err != nil {
		return e.Wrap("last name", e.ErrInvalidUser)
	}

	if d.Age < 18 || d.Age > 107 {
		return e.Wrap("age", e.ErrInvalidUser)
	}

	if len(d.Email) < 4 || len(d.Email) > 50 || !emailRe.MatchString(d.Email) {
		return e.Wrap("email", e.ErrInvalidUser)
	}

	if len(d.Password) < 3 || len(d.Password) > 50 {
		return e.Wrap("password", e.ErrInvalidUser)
	}

	if !validNationalID(d.NationalID) {
		return e.Wrap("national id", e.ErrInvalidUser)
	}

	if err := properText(d.Address, 3, 100); err != nil {
		return e.Wrap("address", e.ErrInvalidUser)
	}

	if !validPhone(d.Phone) {
		return e.Wrap("phone", e.ErrInvalidUser)
	}

	return nil
}

// validateWindow: начало не в прошлом и не дальше четырёх месяцев,
// конец строго позже начала и не дальше четырёх месяцев от него.
func (v *Validator) validateWindow(start, end, now time.Time) error {
	if start.Before(now) {
		return e.Wrap("start time in the past", e.ErrInvalidDates)
	}

	if start.After(now.AddDate(0, maxWindowMonths, 0)) {
		return e.Wrap("start time too far ahead", e.ErrInvalidDates)
	}

	if !end.After(start) {
		return e.Wrap("end time not after start time", e.ErrInvalidDates)
	}

	if end.After(start.AddDate(0, maxWindowMonths, 0)) {
		return e.Wrap("auction window too long", e.ErrInvalidDates)
	}

	return nil
}

// properName — имена собственные: буквы, пробелы, дефисы, первая буква заглавная.
func properName(s string, min, max int) error {
	runes := []rune(s)

	if len(runes) < min || len(runes) > max {
		return e.ErrInvalidName
	}

	for _, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) && r != '-' {
			return e.ErrInvalidName
		}
	}

	if unicode.IsLower(runes[0]) {
		return e.ErrInvalidName
	}

	return nil
}

// properText — свободный текст: к набору properName добавляются точки и запятые.
func properText(s string, min, max int) error {
	runes := []rune(s)

	if len(runes) < min || len(runes) > max {
		return e.ErrInvalidDescription
	}

	for _, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) && r != '-' && r != '.' && r != ',' {
			return e.ErrInvalidDescription
		}
	}

	if unicode.IsLower(runes[0]) {
		return e.ErrInvalidDescription
	}

	return nil
}

// validCurrency: ровно три заглавные латинские буквы (ISO 4217).
func validCurrency(s string) bool {
	if len(s) != 3 {
		return false
	}

	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}

	return true
}

// validNationalID: тринадцать цифр, первая ненулевая.
func validNationalID(s string) bool {
	if len(s) != 13 {
		return false
	}

	for i, r := range s {
		if r < '0' || r > '9' {
			return false
		}
		if i == 0 && r == '0' {
			return false
		}
	}

	return true
}

// validPhone: десять цифр.
func validPhone(s string) bool {
	if len(s) != 10 {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
