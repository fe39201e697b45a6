package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/food-ordering/config"
	"github.com/yeremiapane/food-ordering/database"
	"github.com/yeremiapane/food-ordering/kds"
	"github.com/yeremiapane/food-ordering/models"
	"github.com/yeremiapane/food-ordering/router"
	"github.com/yeremiapane/food-ordering/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const cookieName = "food_session"

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type envelope struct {
	Status  bool            `json:"status"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:           "controllers-test-secret",
		SessionTTL:          time.Hour,
		SessionCookieName:   cookieName,
		CORSOrigin:          "http://localhost:3000",
		MenuCacheTTL:        time.Minute,
		RateLimitRPS:        1000,
		RateLimitBurst:      1000,
		AuthRateLimitPerMin: 1000,
	}
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

func setupApp(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	r := router.SetupRouter(router.Dependencies{
		Config: testConfig(),
		DB:     db,
		Hub:    kds.NewHub(),
	})
	return r, db
}

func createUser(t *testing.T, db *gorm.DB, email, password string, role models.Role) models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Email: email, Password: string(hashed), Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func doJSON(t *testing.T, r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data), string(env.Data))
	}
	return env
}

func login(t *testing.T, r http.Handler, email, password string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var data struct {
		Token string `json:"token"`
	}
	decode(t, w, &data)
	require.NotEmpty(t, data.Token)
	return data.Token
}

// loginAs creates a user with the given role and returns a session token for it.
func loginAs(t *testing.T, r http.Handler, db *gorm.DB, email string, role models.Role) (models.User, string) {
	t.Helper()
	user := createUser(t, db, email, "secret123", role)
	return user, login(t, r, email, "secret123")
}

func newRequest(t *testing.T, method, path string) *http.Request {
	t.Helper()
	return httptest.NewRequest(method, path, nil)
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
