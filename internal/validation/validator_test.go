package validation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bidhaus/auction-backend/internal/usecase"
	"github.com/bidhaus/auction-backend/internal/validation"
	"github.com/bidhaus/auction-backend/pkg/e"
)

func draft() *usecase.ProductDraft {
	now := time.Now()

	return &usecase.ProductDraft{
		CategoryID:    1,
		Name:          "Vintage camera",
		Description:   "Mechanical camera, fully serviced",
		Specification: "Shutter up to speed",
		Currency:      "RON",
		StartPrice:    2500,
		StartTime:     now.Add(time.Minute),
		EndTime:       now.Add(48 * time.Hour),
	}
}

func TestValidateCategoryName(t *testing.T) {
	v := validation.NewValidator()

	require.NoError(t, v.ValidateCategoryName("Electronics"))
	require.NoError(t, v.ValidateCategoryName("Home-Appliances"))
	require.NoError(t, v.ValidateCategoryName("Fine Arts"))

	for _, name := range []string{"", "Tv", "electronics", "Gadgets 2024", "Electro+nics"} {
		require.ErrorIs(t, v.ValidateCategoryName(name), e.ErrInvalidCategoryName, "name %q", name)
	}
}

func TestValidateProductDraft(t *testing.T) {
	v := validation.NewValidator()
	now := time.Now()

	require.NoError(t, v.ValidateProductDraft(draft(), now))

	cases := []struct {
		name   string
		mutate func(d *usecase.ProductDraft)
		want   error
	}{
		{"short name", func(d *usecase.ProductDraft) { d.Name = "Tv" }, e.ErrInvalidName},
		{"lowercase name", func(d *usecase.ProductDraft) { d.Name = "vintage camera" }, e.ErrInvalidName},
		{"short description", func(d *usecase.ProductDraft) { d.Description = "Too short" }, e.ErrInvalidDescription},
		{"digits in description", func(d *usecase.ProductDraft) { d.Description = "Camera made in 1954, serviced" }, e.ErrInvalidDescription},
		{"short specification", func(d *usecase.ProductDraft) { d.Specification = "Short" }, e.ErrInvalidSpecification},
		{"lowercase currency", func(d *usecase.ProductDraft) { d.Currency = "ron" }, e.ErrInvalidCurrency},
		{"long currency", func(d *usecase.ProductDraft) { d.Currency = "LEUL" }, e.ErrInvalidCurrency},
		{"zero price", func(d *usecase.ProductDraft) { d.StartPrice = 0 }, e.ErrInvalidPrice},
		{"negative price", func(d *usecase.ProductDraft) { d.StartPrice = -100 }, e.ErrInvalidPrice},
		{"missing category", func(d *usecase.ProductDraft) { d.CategoryID = 0 }, e.ErrCategoryNotFound},
		{"start in the past", func(d *usecase.ProductDraft) { d.StartTime = now.Add(-time.Hour) }, e.ErrInvalidDates},
		{"start too far", func(d *usecase.ProductDraft) { d.StartTime = now.AddDate(0, 5, 0); d.EndTime = now.AddDate(0, 5, 1) }, e.ErrInvalidDates},
		{"end before start", func(d *usecase.ProductDraft) { d.EndTime = d.StartTime.Add(-time.Hour) }, e.ErrInvalidDates},
		{"end equals start", func(d *usecase.ProductDraft) { d.EndTime = d.StartTime }, e.ErrInvalidDates},
		{"window too long", func(d *usecase.ProductDraft) { d.EndTime = d.StartTime.AddDate(0, 5, 0) }, e.ErrInvalidDates},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := draft()
			tc.mutate(d)
			require.ErrorIs(t, v.ValidateProductDraft(d, now), tc.want)
		})
	}
}

func TestValidateScore(t *testing.T) {
	v := validation.NewValidator()

	require.NoError(t, v.ValidateScore(1))
	require.NoError(t, v.ValidateScore(10))
	require.NoError(t, v.ValidateScore(5.18))

	require.ErrorIs(t, v.ValidateScore(0.99), e.ErrInvalidScore)
	require.ErrorIs(t, v.ValidateScore(10.01), e.ErrInvalidScore)
	require.ErrorIs(t, v.ValidateScore(-3), e.ErrInvalidScore)
}

func TestValidateUserDraft(t *testing.T) {
	v := validation.NewValidator()

	valid := usecase.UserDraft{
		FirstName:  "Andrei",
		LastName:   "Popescu",
		Email:      "andrei@mail.com",
		Password:   "parola",
		Age:        30,
		NationalID: "1960203123456",
		Address:    "Str. Unirii, Bucuresti",
		Phone:      "0721234567",
	}

	require.NoError(t, v.ValidateUserDraft(&valid))

	cases := []struct {
		name   string
		mutate func(d *usecase.UserDraft)
	}{
		{"short first name", func(d *usecase.UserDraft) { d.FirstName = "An" }},
		{"lowercase last name", func(d *usecase.UserDraft) { d.LastName = "popescu" }},
		{"too young", func(d *usecase.UserDraft) { d.Age = 17 }},
		{"too old", func(d *usecase.UserDraft) { d.Age = 108 }},
		{"malformed email", func(d *usecase.UserDraft) { d.Email = "andrei@@mail.com" }},
		{"short password", func(d *usecase.UserDraft) { d.Password = "ab" }},
		{"short cnp", func(d *usecase.UserDraft) { d.NationalID = "196020312345" }},
		{"cnp leading zero", func(d *usecase.UserDraft) { d.NationalID = "0960203123456" }},
		{"cnp letters", func(d *usecase.UserDraft) { d.NationalID = "19602031234ab" }},
		{"short phone", func(d *usecase.UserDraft) { d.Phone = "072123456" }},
		{"phone letters", func(d *usecase.UserDraft) { d.Phone = "07212345ab" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := valid
			tc.mutate(&d)
			require.ErrorIs(t, v.ValidateUserDraft(&d), e.ErrInvalidUser)
		})
	}
}
