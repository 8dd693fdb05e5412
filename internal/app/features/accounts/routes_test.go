package accounts_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/regionpress/accounthub/internal/app/features/accounts"
	"github.com/regionpress/accounthub/internal/app/system/authgate"
	"github.com/regionpress/accounthub/internal/domain/models"
	"github.com/regionpress/accounthub/internal/testutil"
)

const testAuthSecret = "routes-test-secret"

func signToken(t *testing.T, role string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "user_caller",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte(testAuthSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func newTestRouter(t *testing.T) (http.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	handler := accounts.NewHandler(db, &stubIdentity{}, zap.NewNop())
	gate := authgate.New(testAuthSecret, zap.NewNop())
	return accounts.Routes(handler, gate), testutil.NewFixtures(t, db)
}

func TestRoutes_Promote_RequiresAdmin(t *testing.T) {
	router, fixtures := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "Gated User", "gated@example.com", "user_gated", nil)
	payload := map[string]string{"userId": user.ID.Hex(), "role": models.RoleEditor}

	// No token.
	req := testutil.NewJSONRequest(t, "POST", "/promote", payload)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	// Non-admin token.
	req = testutil.NewJSONRequest(t, "POST", "/promote", payload)
	req.Header.Set("Authorization", "Bearer "+signToken(t, models.RoleReporter))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("non-admin token: got %d, want %d", rec.Code, http.StatusForbidden)
	}

	// Admin token.
	req = testutil.NewJSONRequest(t, "POST", "/promote", payload)
	req.Header.Set("Authorization", "Bearer "+signToken(t, models.RoleAdmin))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("admin token: got %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
}

func TestRoutes_Status_RequiresToken(t *testing.T) {
	router, fixtures := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "Status Gated", "sg@example.com", "user_sg", nil)

	req := httptest.NewRequest("GET", "/"+user.ID.Hex()+"/status", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	req = httptest.NewRequest("GET", "/"+user.ID.Hex()+"/status", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, models.RoleReader))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("with token: got %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
}

func TestRoutes_ParamRouting(t *testing.T) {
	router, fixtures := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	regionID := primitive.NewObjectID()
	user := fixtures.CreateSubscribedUser(ctx, "Routed User", "routed@example.com", "user_routed",
		[]models.Subscription{{RegionID: regionID, RegionType: models.RegionTypeCity}})

	// Static-suffix routes under the same wildcard coexist.
	paths := []string{
		"/profile/" + user.ID.Hex(),
		"/details/user_routed",
		"/user_routed/subscription-status?regionId=" + regionID.Hex() + "&regionType=City",
		"/" + user.ID.Hex() + "/subscriptions",
	}
	for _, p := range paths {
		req := httptest.NewRequest("GET", p, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s: got %d, want %d (body %s)", p, rec.Code, http.StatusOK, rec.Body.String())
		}
	}
}
