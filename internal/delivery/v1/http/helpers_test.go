package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bidhaus/auction-backend/pkg/e"
)

func TestParsePriceToCents(t *testing.T) {
	cases := []struct {
		name  string
		input string
		cents int64
		err   error
	}{
		{name: "integer", input: "25", cents: 2500},
		{name: "two decimals", input: "25.99", cents: 2599},
		{name: "one decimal", input: "27.5", cents: 2750},
		{name: "empty", input: "", err: e.ErrInvalidPrice},
		{name: "blank", input: "   ", err: e.ErrInvalidPrice},
		{name: "not a number", input: "abc", err: e.ErrInvalidPrice},
		{name: "zero", input: "0", err: e.ErrInvalidPrice},
		{name: "negative", input: "-5", err: e.ErrInvalidPrice},
		{name: "too large", input: "1000000001", err: e.ErrInvalidPrice},
		{name: "three decimals", input: "25.999", err: e.ErrPricePrecision},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cents, err := parsePriceToCents(tc.input)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.cents, cents)
		})
	}
}

func TestToHTTPResponse(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{err: e.ErrInvalidPrice, code: http.StatusBadRequest},
		{err: e.ErrInvalidCategoryLink, code: http.StatusBadRequest},
		{err: e.ErrNotLoggedIn, code: http.StatusUnauthorized},
		{err: e.ErrWrongPassword, code: http.StatusUnauthorized},
		{err: e.ErrNotOwner, code: http.StatusForbidden},
		{err: e.ErrUserBanned, code: http.StatusForbidden},
		{err: e.ErrRoleNotAllowed, code: http.StatusForbidden},
		{err: e.ErrProductNotFound, code: http.StatusNotFound},
		{err: e.ErrNoActiveAuctions, code: http.StatusNotFound},
		{err: e.ErrSelfBid, code: http.StatusConflict},
		{err: e.ErrTooManyActive, code: http.StatusConflict},
		{err: e.ErrPriceTooHigh, code: http.StatusUnprocessableEntity},
		{err: e.ErrScoreWindowClosed, code: http.StatusUnprocessableEntity},
		{err: fmt.Errorf("driver went away"), code: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			code, _ := ToHTTPResponse(tc.err)
			require.Equal(t, tc.code, code)
		})
	}
}

func TestToHTTPResponseUnwrapsMessage(t *testing.T) {
	wrapped := e.Wrap("internal/usecase/auction_usecase.go:42", e.ErrPriceTooLow)

	code, msg := ToHTTPResponse(wrapped)

	require.Equal(t, http.StatusUnprocessableEntity, code)
	require.Equal(t, e.ErrPriceTooLow.Error(), msg)
}

func TestToHTTPResponseHidesInternalDetails(t *testing.T) {
	_, msg := ToHTTPResponse(fmt.Errorf("pq: relation products does not exist"))

	require.Equal(t, e.ErrInternalServerError.Error(), msg)
}
