package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"carte/internal/domain"
	"carte/internal/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func jsonContext(t *testing.T, method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(method, target, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder, data interface{}) handler.APIResponse {
	t.Helper()
	var raw struct {
		handler.APIResponse
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	if data != nil && len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return raw.APIResponse
}

func price(v float64, currency string) *domain.Price {
	return &domain.Price{Amount: &v, Currency: currency}
}

func sampleMenu() *domain.ParsedMenu {
	return &domain.ParsedMenu{
		OriginalLanguage:   "Spanish",
		TranslatedLanguage: "English",
		Sections: []domain.MenuSection{
			{
				ID:              "s1",
				OriginalTitle:   "Tapas",
				TranslatedTitle: "Small plates",
				Items: []domain.MenuItem{
					{ID: "a", OriginalName: "Patatas bravas", TranslatedName: "Spicy potatoes", Price: price(6.5, "EUR"), Allergens: []domain.Allergen{}},
					{ID: "b", OriginalName: "Croquetas", TranslatedName: "Croquettes", Price: price(8, "EUR"), Allergens: []domain.Allergen{}},
				},
			},
		},
	}
}
