package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"perfumery/internal/handlers"
	"perfumery/internal/middleware"
	"perfumery/internal/models"
	"perfumery/internal/negotiate"
	"perfumery/internal/repositories"
	"perfumery/internal/services"
	"perfumery/internal/session"
	"perfumery/internal/views"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testEnv struct {
	app        *fiber.App
	db         *gorm.DB
	userRepo   repositories.UserRepository
	brandRepo  repositories.BrandRepository
	reviewRepo repositories.ReviewRepository
}

// setupApp sets up a Fiber app for testing with in-memory SQLite and all handlers/services.
func setupApp(t *testing.T) *testEnv {
	t.Helper()
	db, err := repositories.Open(repositories.DriverSQLite, fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)

	userRepo := repositories.NewGORMUserRepository(db)
	brandRepo := repositories.NewGORMBrandRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)

	authService := services.NewAuthService(userRepo).WithHashCost(bcrypt.MinCost)
	brandService := services.NewBrandService(brandRepo, reviewRepo, nil)
	reviewService := services.NewReviewService(reviewRepo, brandRepo, nil)
	sessions := session.NewManager(repositories.NewGORMSessionStorage(db), session.Config{Expiration: time.Hour})

	app := fiber.New(fiber.Config{Views: views.New()})
	app.Use(middleware.MethodOverride())
	app.Use(negotiate.New())
	app.Use(middleware.LoadIdentity(sessions, authService))

	handlers.NewPublicHandler(brandService, reviewService).RegisterRoutes(app)
	handlers.NewAuthHandler(authService, sessions).RegisterRoutes(app)
	guards := []fiber.Handler{middleware.SignedIn(), middleware.OwnerRequired()}
	handlers.NewBrandHandler(brandService).RegisterRoutes(app, guards...)
	handlers.NewReviewHandler(reviewService).RegisterRoutes(app, guards...)

	return &testEnv{app: app, db: db, userRepo: userRepo, brandRepo: brandRepo, reviewRepo: reviewRepo}
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// client keeps the session cookie between requests.
type client struct {
	t       *testing.T
	app     *fiber.App
	accept  string
	cookies map[string]*http.Cookie
}

func (e *testEnv) jsonClient(t *testing.T) *client {
	return &client{t: t, app: e.app, accept: fiber.MIMEApplicationJSON, cookies: map[string]*http.Cookie{}}
}

func (e *testEnv) browser(t *testing.T) *client {
	return &client{t: t, app: e.app, accept: fiber.MIMETextHTML, cookies: map[string]*http.Cookie{}}
}

func (c *client) do(method, path string, body io.Reader, contentType string) *http.Response {
	c.t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Accept", c.accept)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, ck := range c.cookies {
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	for _, ck := range resp.Cookies() {
		expired := !ck.Expires.IsZero() && ck.Expires.Before(time.Now())
		if ck.MaxAge < 0 || ck.Value == "" || expired {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return resp
}

func (c *client) json(method, path string, payload interface{}) *http.Response {
	c.t.Helper()
	if payload == nil {
		return c.do(method, path, nil, "")
	}
	b, err := json.Marshal(payload)
	require.NoError(c.t, err)
	return c.do(method, path, bytes.NewReader(b), fiber.MIMEApplicationJSON)
}

func (c *client) form(method, path string, values url.Values) *http.Response {
	c.t.Helper()
	return c.do(method, path, strings.NewReader(values.Encode()), fiber.MIMEApplicationForm)
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

type userEnvelope struct {
	User *models.Identity `json:"user"`
}

// signUp registers username over JSON and returns a signed-in client and the new user id.
func (e *testEnv) signUp(t *testing.T, username string) (*client, string) {
	t.Helper()
	c := e.jsonClient(t)
	resp := c.json(http.MethodPost, "/auth/sign-up", map[string]string{
		"username": username, "password": "secret", "confirmPassword": "secret",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var env userEnvelope
	decode(t, resp, &env)
	require.NotNil(t, env.User)
	return c, env.User.UserID
}

func (c *client) createBrand(userID, name string) models.Brand {
	c.t.Helper()
	resp := c.json(http.MethodPost, "/users/"+userID+"/brands", map[string]string{"name": name})
	require.Equal(c.t, http.StatusCreated, resp.StatusCode)
	var brand models.Brand
	decode(c.t, resp, &brand)
	return brand
}

func (c *client) createReview(userID, brandID, name string) models.PerfumeReview {
	c.t.Helper()
	resp := c.json(http.MethodPost, "/users/"+userID+"/reviews", map[string]string{
		"name": name, "notes": "notes on " + name, "brandId": brandID,
	})
	require.Equal(c.t, http.StatusCreated, resp.StatusCode)
	var review models.PerfumeReview
	decode(c.t, resp, &review)
	return review
}

func TestAuth_SignUpSignInSignOut(t *testing.T) {
	env := setupApp(t)
	c, userID := env.signUp(t, "alice")
	assert.NotEmpty(t, userID)

	resp := c.json(http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var me userEnvelope
	decode(t, resp, &me)
	require.NotNil(t, me.User)
	assert.Equal(t, models.Identity{Username: "alice", UserID: userID}, *me.User)

	resp = c.json(http.MethodGet, "/auth/sign-out", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, bodyString(t, resp))

	resp = c.json(http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"user":null}`, bodyString(t, resp))

	resp = c.json(http.MethodPost, "/auth/sign-in", map[string]string{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Username or Password is invalid"}`, bodyString(t, resp))

	resp = c.json(http.MethodPost, "/auth/sign-in", map[string]string{"username": "nobody", "password": "secret"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = c.json(http.MethodPost, "/auth/sign-in", map[string]string{"username": "alice", "password": "secret"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var signedIn userEnvelope
	decode(t, resp, &signedIn)
	require.NotNil(t, signedIn.User)
	assert.Equal(t, userID, signedIn.User.UserID)

	resp = c.json(http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestAuth_SessionOfRemovedUser(t *testing.T) {
	env := setupApp(t)
	c, userID := env.signUp(t, "erin")

	resp := c.json(http.MethodGet, "/users/"+userID+"/brands", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	require.NoError(t, env.db.Delete(&models.User{}, "id = ?", userID).Error)

	resp = c.json(http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"user":null}`, bodyString(t, resp))

	resp = c.json(http.MethodGet, "/users/"+userID+"/brands", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestAuth_SignUpRejections(t *testing.T) {
	env := setupApp(t)
	env.signUp(t, "alice")

	ctx := t.Context()
	before, err := env.userRepo.Count(ctx)
	require.NoError(t, err)

	c := env.jsonClient(t)
	resp := c.json(http.MethodPost, "/auth/sign-up", map[string]string{
		"username": "alice", "password": "other", "confirmPassword": "other",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, services.MsgInvalidCredentials, bodyString(t, resp))

	resp = c.json(http.MethodPost, "/auth/sign-up", map[string]string{
		"username": "bob", "password": "one", "confirmPassword": "two",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, services.MsgPasswordMismatch, bodyString(t, resp))

	resp = c.json(http.MethodPost, "/auth/sign-up", map[string]string{"username": "", "password": "x", "confirmPassword": "x"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "username is required", bodyString(t, resp))

	long := strings.Repeat("p", 80)
	resp = c.json(http.MethodPost, "/auth/sign-up", map[string]string{
		"username": "dave", "password": long, "confirmPassword": long,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "password is too long", bodyString(t, resp))

	resp = c.json(http.MethodPost, "/auth/sign-up", map[string]string{
		"username": strings.Repeat("u", 101), "password": "pw", "confirmPassword": "pw",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "username is too long", bodyString(t, resp))

	after, err := env.userRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	resp = c.json(http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestAuth_BrowserFlow(t *testing.T) {
	env := setupApp(t)
	b := env.browser(t)

	resp := b.do(http.MethodGet, "/auth/sign-up", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), `action="/auth/sign-up"`)

	resp = b.form(http.MethodPost, "/auth/sign-up", url.Values{
		"username": {"carol"}, "password": {"pw"}, "confirmPassword": {"pw"},
	})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	resp.Body.Close()

	resp = b.do(http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "carol")

	resp = b.do(http.MethodGet, "/auth/sign-out", nil, "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	resp.Body.Close()

	resp = b.form(http.MethodPost, "/auth/sign-in", url.Values{"username": {"carol"}, "password": {"bad"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, services.MsgInvalidCredentials, bodyString(t, resp))

	j := env.jsonClient(t)
	resp = j.json(http.MethodGet, "/auth/sign-in", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var hint map[string]string
	decode(t, resp, &hint)
	assert.Contains(t, hint["message"], "/auth/sign-in")
}

func TestOwnerRoutes_RequireSignIn(t *testing.T) {
	env := setupApp(t)

	resp := env.jsonClient(t).json(http.MethodGet, "/users/someone/brands", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Sign in required"}`, bodyString(t, resp))

	resp = env.browser(t).do(http.MethodGet, "/users/someone/reviews/new", nil, "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, middleware.SignInPath, resp.Header.Get("Location"))
	resp.Body.Close()
}

func TestBrands_CRUD(t *testing.T) {
	env := setupApp(t)
	alice, aliceID := env.signUp(t, "alice")

	for _, name := range []string{"Dior", "Chanel", "Amouage"} {
		alice.createBrand(aliceID, name)
	}

	resp := alice.json(http.MethodGet, "/users/"+aliceID+"/brands", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var brands []models.Brand
	decode(t, resp, &brands)
	require.Len(t, brands, 3)
	assert.Equal(t, []string{"Amouage", "Chanel", "Dior"}, []string{brands[0].Name, brands[1].Name, brands[2].Name})
	for _, b := range brands {
		assert.Equal(t, aliceID, b.OwnerID)
	}

	brandPath := "/users/" + aliceID + "/brands/" + brands[1].ID
	resp = alice.json(http.MethodPut, brandPath, map[string]string{"name": "Chanel Paris"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Brand
	decode(t, resp, &updated)
	assert.Equal(t, "Chanel Paris", updated.Name)
	assert.Equal(t, brands[1].ID, updated.ID)

	resp = alice.json(http.MethodPut, brandPath, map[string]string{"name": "   "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"error":"name is required"}`, bodyString(t, resp))

	resp = alice.json(http.MethodGet, brandPath+"/edit", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = alice.json(http.MethodGet, "/users/"+aliceID+"/brands/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Brand not found"}`, bodyString(t, resp))

	resp = alice.json(http.MethodPost, "/users/"+aliceID+"/brands", map[string]string{"name": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = alice.json(http.MethodGet, "/brands", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var public []models.Brand
	decode(t, resp, &public)
	assert.Len(t, public, 3)
}

func TestBrands_OwnershipEnforced(t *testing.T) {
	env := setupApp(t)
	alice, aliceID := env.signUp(t, "alice")
	bob, bobID := env.signUp(t, "bob")
	brand := alice.createBrand(aliceID, "Guerlain")

	cases := []struct {
		name   string
		method string
		path   string
	}{
		{"foreign path update", http.MethodPut, "/users/" + aliceID + "/brands/" + brand.ID},
		{"own path update", http.MethodPut, "/users/" + bobID + "/brands/" + brand.ID},
		{"foreign path delete", http.MethodDelete, "/users/" + aliceID + "/brands/" + brand.ID},
		{"own path delete", http.MethodDelete, "/users/" + bobID + "/brands/" + brand.ID},
		{"own path edit form", http.MethodGet, "/users/" + bobID + "/brands/" + brand.ID + "/edit"},
		{"foreign listing", http.MethodGet, "/users/" + aliceID + "/brands"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := bob.json(tc.method, tc.path, map[string]string{"name": "Hijacked"})
			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, bodyString(t, resp))

			stored, err := env.brandRepo.GetByID(t.Context(), brand.ID)
			require.NoError(t, err)
			assert.Equal(t, "Guerlain", stored.Name)
			assert.Equal(t, aliceID, stored.OwnerID)
		})
	}

	resp := bob.json(http.MethodGet, "/users/"+bobID+"/brands/missing/edit", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestBrands_DeleteCascadesReviews(t *testing.T) {
	env := setupApp(t)
	alice, aliceID := env.signUp(t, "alice")
	doomed := alice.createBrand(aliceID, "Doomed")
	kept := alice.createBrand(aliceID, "Kept")
	alice.createReview(aliceID, doomed.ID, "First")
	alice.createReview(aliceID, doomed.ID, "Second")
	survivor := alice.createReview(aliceID, kept.ID, "Survivor")

	resp := alice.json(http.MethodDelete, "/users/"+aliceID+"/brands/"+doomed.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var deleted map[string]interface{}
	decode(t, resp, &deleted)
	assert.Equal(t, "Brand deleted", deleted["message"])
	assert.EqualValues(t, 2, deleted["reviewsRemoved"])

	count, err := env.reviewRepo.CountByBrand(t.Context(), doomed.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	resp = alice.json(http.MethodGet, "/reviews", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var reviews []models.PerfumeReview
	decode(t, resp, &reviews)
	require.Len(t, reviews, 1)
	assert.Equal(t, survivor.ID, reviews[0].ID)

	resp = alice.json(http.MethodGet, "/brands/"+doomed.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestReviews_CRUDAndOwnership(t *testing.T) {
	env := setupApp(t)
	alice, aliceID := env.signUp(t, "alice")
	bob, bobID := env.signUp(t, "bob")
	brand := alice.createBrand(aliceID, "Creed")

	resp := alice.json(http.MethodPost, "/users/"+aliceID+"/reviews", map[string]string{
		"name": "Aventus", "notes": "pineapple", "brandId": "missing",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"error":"brand does not exist"}`, bodyString(t, resp))

	resp = alice.json(http.MethodPost, "/users/"+aliceID+"/reviews", map[string]string{"name": "Aventus", "brandId": brand.ID})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"error":"notes is required"}`, bodyString(t, resp))

	review := alice.createReview(aliceID, brand.ID, "Aventus")
	assert.Equal(t, aliceID, review.OwnerID)
	assert.Equal(t, brand.ID, review.BrandID)

	reviewPath := "/users/" + aliceID + "/reviews/" + review.ID
	resp = bob.json(http.MethodPut, "/users/"+bobID+"/reviews/"+review.ID, map[string]string{
		"name": "Hijacked", "notes": "x", "brandId": brand.ID,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
	resp = bob.json(http.MethodDelete, reviewPath, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	stored, err := env.reviewRepo.GetByID(t.Context(), review.ID)
	require.NoError(t, err)
	assert.Equal(t, "Aventus", stored.Name)

	resp = alice.json(http.MethodPut, reviewPath, map[string]string{
		"name": "Aventus Cologne", "notes": "ginger", "brandId": brand.ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.PerfumeReview
	decode(t, resp, &updated)
	assert.Equal(t, "Aventus Cologne", updated.Name)
	assert.Equal(t, "ginger", updated.Notes)

	resp = alice.json(http.MethodGet, "/users/"+aliceID+"/reviews", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mine []models.PerfumeReview
	decode(t, resp, &mine)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].Brand)
	assert.Equal(t, "Creed", mine[0].Brand.Name)

	resp = alice.json(http.MethodDelete, reviewPath, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Review deleted"}`, bodyString(t, resp))

	resp = alice.json(http.MethodGet, "/reviews/"+review.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Review not found"}`, bodyString(t, resp))
}

func TestHome_ShowsRecentReviews(t *testing.T) {
	env := setupApp(t)
	alice, aliceID := env.signUp(t, "alice")
	brand := alice.createBrand(aliceID, "Byredo")
	for i := 0; i < services.RecentReviewsLimit+2; i++ {
		alice.createReview(aliceID, brand.ID, fmt.Sprintf("Review %d", i))
	}

	resp := env.jsonClient(t).json(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var home struct {
		RecentReviews []models.PerfumeReview `json:"recentReviews"`
	}
	decode(t, resp, &home)
	require.Len(t, home.RecentReviews, services.RecentReviewsLimit)
	for i := 1; i < len(home.RecentReviews); i++ {
		assert.False(t, home.RecentReviews[i].CreatedAt.After(home.RecentReviews[i-1].CreatedAt))
	}
	assert.Equal(t, fmt.Sprintf("Review %d", services.RecentReviewsLimit+1), home.RecentReviews[0].Name)

	resp = env.browser(t).do(http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "Review 7")
}

func TestBrowser_FormsWithMethodOverride(t *testing.T) {
	env := setupApp(t)
	b := env.browser(t)
	resp := b.form(http.MethodPost, "/auth/sign-up", url.Values{
		"username": {"dana"}, "password": {"pw"}, "confirmPassword": {"pw"},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	resp.Body.Close()

	user, err := env.userRepo.GetByUsername(t.Context(), "dana")
	require.NoError(t, err)
	brandsPath := "/users/" + user.ID + "/brands"

	resp = b.form(http.MethodPost, brandsPath, url.Values{"name": {"Le Labo"}})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, brandsPath, resp.Header.Get("Location"))
	resp.Body.Close()

	owned, err := env.brandRepo.GetByOwner(t.Context(), user.ID)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	brandPath := brandsPath + "/" + owned[0].ID

	resp = b.do(http.MethodGet, brandPath+"/edit", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), `value="Le Labo"`)

	resp = b.form(http.MethodPost, brandPath+"?_method=PUT", url.Values{"name": {"Le Labo NYC"}})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, brandPath, resp.Header.Get("Location"))
	resp.Body.Close()

	resp = b.do(http.MethodGet, brandPath, nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "Le Labo NYC")

	resp = b.form(http.MethodPost, brandPath, url.Values{"_method": {"DELETE"}})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, brandsPath, resp.Header.Get("Location"))
	resp.Body.Close()

	_, err = env.brandRepo.GetByID(t.Context(), owned[0].ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	resp = b.do(http.MethodGet, "/users/"+uuid.NewString()+"/brands", nil, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Unauthorized", bodyString(t, resp))
}

func TestAuth_RandomCredentials(t *testing.T) {
	env := setupApp(t)
	faker := gofakeit.New(42)

	for i := 0; i < 5; i++ {
		username := fmt.Sprintf("%s%d", faker.Username(), i)
		password := faker.Password(true, true, true, false, false, 14)

		c := env.jsonClient(t)
		resp := c.json(http.MethodPost, "/auth/sign-up", map[string]string{
			"username": username, "password": password, "confirmPassword": password,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode, username)
		resp.Body.Close()

		stored, err := env.userRepo.GetByUsername(t.Context(), username)
		require.NoError(t, err)
		assert.NotEqual(t, password, stored.Password)

		fresh := env.jsonClient(t)
		resp = fresh.json(http.MethodPost, "/auth/sign-in", map[string]string{"username": username, "password": password + "x"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()

		resp = fresh.json(http.MethodPost, "/auth/sign-in", map[string]string{"username": username, "password": password})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}
}
