package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"restaurant-api/config"
	"restaurant-api/email"
	"restaurant-api/middleware"
	"restaurant-api/models"
	"restaurant-api/routes"
)

// fakeSender records delivery attempts and can be told to fail.
type fakeSender struct {
	mu       sync.Mutex
	fail     bool
	attempts chan string
}

func newFakeSender() *fakeSender {
	return &fakeSender{attempts: make(chan string, 16)}
}

func (f *fakeSender) Send(to, subject, htmlBody string) error {
	f.mu.Lock()
	fail := f.fail
	f.mu.Unlock()
	f.attempts <- subject
	if fail {
		return errors.New("smtp unavailable")
	}
	return nil
}

func (f *fakeSender) setFail(fail bool) {
	f.mu.Lock()
	f.fail = fail
	f.mu.Unlock()
}

// setupRouter wires an isolated in-memory database and a full router, and
// swaps the email sender for a recording fake.
func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB, *fakeSender) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	config.DB = db

	sender := newFakeSender()
	prev := email.Default
	email.Default = sender
	t.Cleanup(func() { email.Default = prev })

	r := gin.New()
	routes.SetupRoutes(r)
	return r, db, sender
}

func createUser(t *testing.T, db *gorm.DB, name string, role models.UserRole) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Name:         name,
		Email:        strings.ToLower(name) + "@example.com",
		PasswordHash: string(hash),
		Phone:        "0256286634",
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func authHeader(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := middleware.GenerateToken(user)
	require.NoError(t, err)
	return "Bearer " + token
}

func createMenuItem(t *testing.T, db *gorm.DB, name string, price float64) *models.MenuItem {
	t.Helper()
	item := &models.MenuItem{Name: name, Price: price, Category: "JOLLOF ZONE", Available: true}
	require.NoError(t, db.Create(item).Error)
	return item
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
