package http

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bidhaus/auction-backend/pkg/e"
)

func productForm() url.Values {
	return url.Values{
		"name":          {"Vintage radio"},
		"description":   {"Working tube radio from the sixties"},
		"specification": {"Wood case, 220V"},
		"currency":      {"RON"},
		"start_price":   {"25.99"},
		"category_id":   {"7"},
		"start_time":    {time.Now().Add(time.Hour).Format(time.RFC3339)},
		"end_time":      {time.Now().Add(48 * time.Hour).Format(time.RFC3339)},
	}
}

func TestParseProductForm(t *testing.T) {
	form := productForm()
	r := httptest.NewRequest("POST", "/api/v1/products", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	draft, err := parseProductForm(r)

	require.NoError(t, err)
	require.Equal(t, "Vintage radio", draft.Name)
	require.Equal(t, "RON", draft.Currency)
	require.Equal(t, int64(2599), draft.StartPrice)
	require.Equal(t, int64(7), draft.CategoryID)
	require.True(t, draft.EndTime.After(draft.StartTime))
}

func TestParseProductFormRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(url.Values)
		err    error
	}{
		{
			name:   "missing name",
			mutate: func(f url.Values) { f.Del("name") },
			err:    e.ErrMissingFields,
		},
		{
			name:   "bad price",
			mutate: func(f url.Values) { f.Set("start_price", "abc") },
			err:    e.ErrInvalidPrice,
		},
		{
			name:   "bad category id",
			mutate: func(f url.Values) { f.Set("category_id", "seven") },
			err:    e.ErrStatusBadRequest,
		},
		{
			name:   "non-positive category id",
			mutate: func(f url.Values) { f.Set("category_id", "0") },
			err:    e.ErrStatusBadRequest,
		},
		{
			name:   "bad start time",
			mutate: func(f url.Values) { f.Set("start_time", "tomorrow") },
			err:    e.ErrInvalidDates,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := productForm()
			tc.mutate(form)
			r := httptest.NewRequest("POST", "/api/v1/products", strings.NewReader(form.Encode()))
			r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

			_, err := parseProductForm(r)
			require.ErrorIs(t, err, tc.err)
		})
	}
}
