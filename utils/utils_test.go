package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/food-ordering/models"
)

func TestMain(m *testing.M) {
	InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) JSONResponse {
	t.Helper()
	var resp JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewNotFound("Order not found: %d", 3))

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, "Order not found: 3", NewNotFound("Order not found: %d", 3).Error())
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	RespondError(c, http.StatusInternalServerError, errors.New("dial tcp 10.0.0.1:3306: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeEnvelope(t, w)
	assert.False(t, resp.Status)
	assert.Equal(t, "INTERNAL_ERROR", resp.Code)
	assert.Equal(t, "internal server error", resp.Message)
	assert.NotContains(t, w.Body.String(), "10.0.0.1")
}

func TestRespondAppError(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{NewNotFound("Menu item not found with id: 1"), http.StatusNotFound},
		{NewValidation("bad"), http.StatusBadRequest},
		{NewConflict("Email already exists"), http.StatusBadRequest},
		{NewUnauthorized("Not authenticated"), http.StatusUnauthorized},
		{NewForbidden("nope"), http.StatusForbidden},
		{&AppError{Kind: KindNotFound, Message: "gone", Err: errors.New("record not found")}, http.StatusNotFound},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

		RespondAppError(c, tt.err)

		assert.Equal(t, tt.code, w.Code)
		resp := decodeEnvelope(t, w)
		assert.Equal(t, string(KindOf(tt.err)), resp.Code)
		assert.Equal(t, tt.err.Error(), resp.Message)
		assert.NotContains(t, w.Body.String(), "record not found")
	}
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$0.00", FormatCurrency(decimal.Zero))
	assert.Equal(t, "$28.97", FormatCurrency(decimal.RequireFromString("28.97")))
	assert.Equal(t, "$1,234,567.50", FormatCurrency(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "-$999.99", FormatCurrency(decimal.RequireFromString("-999.99")))
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, claims, err := issuer.GenerateToken(42, "a@example.com", "CUSTOMER")
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)

	parsed, err := issuer.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), parsed.UserID)
	assert.Equal(t, "a@example.com", parsed.Email)
	assert.Equal(t, "CUSTOMER", parsed.Role)
	assert.Equal(t, claims.ID, parsed.ID)
}

func TestTokenRejectsForeignSecretAndExpiry(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	other := NewTokenIssuer("other-secret", time.Hour)

	token, _, err := other.GenerateToken(1, "a@example.com", "ADMIN")
	require.NoError(t, err)
	_, err = issuer.ParseToken(token)
	assert.Error(t, err)

	expired := NewTokenIssuer("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err = expired.GenerateToken(1, "a@example.com", "ADMIN")
	require.NoError(t, err)
	_, err = issuer.ParseToken(token)
	assert.Error(t, err)

	_, err = issuer.ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestRequireRole(t *testing.T) {
	run := func(id *Identity) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
		if id != nil {
			SetIdentity(c, id)
		}
		if _, ok := RequireRole(c, models.RoleAdmin, "Only admins can view all orders"); ok {
			c.Status(http.StatusNoContent)
		}
		return w
	}

	assert.Equal(t, http.StatusUnauthorized, run(nil).Code)

	w := run(&Identity{UserID: 2, Role: models.RoleCustomer})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Only admins can view all orders", decodeEnvelope(t, w).Message)

	assert.Equal(t, http.StatusNoContent, run(&Identity{UserID: 1, Role: models.RoleAdmin}).Code)
}

func TestCacheHelpers(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ctx := context.Background()

	var out []string
	found, err := GetCache(ctx, rdb, "menu:list:a", &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetCache(ctx, rdb, "menu:list:a", []string{"x", "y"}, time.Minute))
	require.NoError(t, SetCache(ctx, rdb, "menu:list:b", []string{"z"}, time.Minute))
	require.NoError(t, SetCache(ctx, rdb, "other", "keep", time.Minute))

	found, err = GetCache(ctx, rdb, "menu:list:a", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"x", "y"}, out)

	require.NoError(t, DeleteCachePattern(ctx, rdb, "menu:list:*"))
	assert.False(t, mr.Exists("menu:list:a"))
	assert.False(t, mr.Exists("menu:list:b"))
	assert.True(t, mr.Exists("other"))

	require.NoError(t, DeleteCache(ctx, rdb, "other"))
	assert.False(t, mr.Exists("other"))
}
