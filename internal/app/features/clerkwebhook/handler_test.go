package clerkwebhook_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/regionpress/accounthub/internal/app/features/clerkwebhook"
	"github.com/regionpress/accounthub/internal/domain/models"
	"github.com/regionpress/accounthub/internal/testutil"
)

// okVerifier accepts every delivery; failVerifier rejects every delivery.
type okVerifier struct{}

func (okVerifier) Verify([]byte, http.Header) error { return nil }

type failVerifier struct{}

func (failVerifier) Verify([]byte, http.Header) error { return errors.New("bad signature") }

func newTestHandler(t *testing.T, v clerkwebhook.Verifier) (*clerkwebhook.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return clerkwebhook.NewHandler(db, v, zap.NewNop()), testutil.NewFixtures(t, db)
}

func signedRequest(t *testing.T, payload any) *http.Request {
	t.Helper()
	req := testutil.NewJSONRequest(t, "POST", "/clerk", payload)
	req.Header.Set("svix-id", "msg_test")
	req.Header.Set("svix-timestamp", "1700000000")
	req.Header.Set("svix-signature", "v1,deadbeef")
	return req
}

func decodeAck(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return body
}

func createdPayload(id, email string) map[string]any {
	return map[string]any{
		"type": "user.created",
		"data": map[string]any{
			"id":         id,
			"first_name": "Web",
			"last_name":  "Hook",
			"email_addresses": []map[string]any{
				{"email_address": email},
			},
		},
	}
}

func TestWebhook_NoVerifierConfigured(t *testing.T) {
	handler, _ := newTestHandler(t, nil)

	rec := httptest.NewRecorder()
	handler.HandleClerkWebhook(rec, signedRequest(t, createdPayload("user_w0", "w0@example.com")))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if body := decodeAck(t, rec); body["success"] != false {
		t.Errorf("success: got %v, want false", body["success"])
	}
}

func TestWebhook_MissingSvixHeaders(t *testing.T) {
	handler, _ := newTestHandler(t, okVerifier{})

	req := testutil.NewJSONRequest(t, "POST", "/clerk", createdPayload("user_w1", "w1@example.com"))
	rec := httptest.NewRecorder()
	handler.HandleClerkWebhook(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if body := decodeAck(t, rec); body["message"] != "Error: Missing svix headers" {
		t.Errorf("message: got %v", body["message"])
	}
}

func TestWebhook_VerificationFailure(t *testing.T) {
	handler, _ := newTestHandler(t, failVerifier{})

	rec := httptest.NewRecorder()
	handler.HandleClerkWebhook(rec, signedRequest(t, createdPayload("user_w2", "w2@example.com")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if body := decodeAck(t, rec); body["message"] != "Webhook verification failed" {
		t.Errorf("message: got %v", body["message"])
	}
}

func TestWebhook_UserCreated(t *testing.T) {
	handler, _ := newTestHandler(t, okVerifier{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rec := httptest.NewRecorder()
	handler.HandleClerkWebhook(rec, signedRequest(t, createdPayload("user_w3", "W3@Example.com")))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	if body := decodeAck(t, rec); body["message"] != "Webhook received and processed successfully" {
		t.Errorf("message: got %v", body["message"])
	}

	u, err := handler.Users.GetByClerkID(ctx, "user_w3")
	if err != nil {
		t.Fatalf("GetByClerkID failed: %v", err)
	}
	if u.Email != "w3@example.com" {
		t.Errorf("email: got %q", u.Email)
	}
	if u.Name != "Web Hook" {
		t.Errorf("name: got %q", u.Name)
	}
	if len(u.Roles) != 2 {
		t.Errorf("roles: got %v, want default set", u.Roles)
	}
}

func TestWebhook_UserCreated_ExistingRecord(t *testing.T) {
	handler, fixtures := newTestHandler(t, okVerifier{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "Original Name", "orig@example.com", "user_w4", nil)

	rec := httptest.NewRecorder()
	handler.HandleClerkWebhook(rec, signedRequest(t, createdPayload("user_w4", "new@example.com")))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	u, err := handler.Users.GetByClerkID(ctx, "user_w4")
	if err != nil {
		t.Fatalf("GetByClerkID failed: %v", err)
	}
	if u.Email != "orig@example.com" {
		t.Errorf("existing record was overwritten: email %q", u.Email)
	}
}

func TestWebhook_UserUpdated_KeepsRolesAndStatus(t *testing.T) {
	handler, fixtures := newTestHandler(t, okVerifier{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "Old Name", "old@example.com", "user_w5",
		[]string{models.RoleReader, models.RoleEditor})

	payload := map[string]any{
		"type": "user.updated",
		"data": map[string]any{
			"id":         "user_w5",
			"first_name": "New",
			"last_name":  "Name",
			"email_addresses": []map[string]any{
				{"email_address": "new5@example.com"},
			},
		},
	}
	rec := httptest.NewRecorder()
	handler.HandleClerkWebhook(rec, signedRequest(t, payload))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	u, err := handler.Users.GetByClerkID(ctx, "user_w5")
	if err != nil {
		t.Fatalf("GetByClerkID failed: %v", err)
	}
	if u.Email != "new5@example.com" || u.Name != "New Name" {
		t.Errorf("update not applied: email %q, name %q", u.Email, u.Name)
	}
	if !u.HasRole(models.RoleEditor) {
		t.Error("expected roles to survive the update event")
	}
	if u.Status != models.StatusApproved {
		t.Errorf("status: got %q, want %q", u.Status, models.StatusApproved)
	}
}

func TestWebhook_UserUpdated_InvalidRole(t *testing.T) {
	handler, fixtures := newTestHandler(t, okVerifier{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "Role Kept", "rolekept@example.com", "user_w9", nil)

	payload := map[string]any{
		"type": "user.updated",
		"data": map[string]any{
			"id":         "user_w9",
			"first_name": "Role",
			"last_name":  "Kept",
			"email_addresses": []map[string]any{
				{"email_address": "rolekept@example.com"},
			},
			"role": []string{"overlord"},
		},
	}
	rec := httptest.NewRecorder()
	handler.HandleClerkWebhook(rec, signedRequest(t, payload))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
	if body := decodeAck(t, rec); body["message"] != "Error: Invalid role in the payload" {
		t.Errorf("message: got %v", body["message"])
	}

	u, err := handler.Users.GetByClerkID(ctx, "user_w9")
	if err != nil {
		t.Fatalf("GetByClerkID failed: %v", err)
	}
	if len(u.Roles) != 2 {
		t.Errorf("roles: got %v, want default set", u.Roles)
	}
}

func TestWebhook_UserDeleted(t *testing.T) {
	handler, fixtures := newTestHandler(t, okVerifier{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "Doomed", "doomed@example.com", "user_w6", nil)

	// Deletion events carry only the id.
	payload := map[string]any{
		"type": "user.deleted",
		"data": map[string]any{"id": "user_w6"},
	}
	rec := httptest.NewRecorder()
	handler.HandleClerkWebhook(rec, signedRequest(t, payload))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	if _, err := handler.Users.GetByClerkID(ctx, "user_w6"); err == nil {
		t.Error("expected record to be deleted")
	}
}

func TestWebhook_MissingEmail(t *testing.T) {
	handler, _ := newTestHandler(t, okVerifier{})

	payload := map[string]any{
		"type": "user.created",
		"data": map[string]any{
			"id":         "user_w7",
			"first_name": "No",
			"last_name":  "Email",
		},
	}
	rec := httptest.NewRecorder()
	handler.HandleClerkWebhook(rec, signedRequest(t, payload))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if body := decodeAck(t, rec); body["message"] != "Error: Email not found in the payload" {
		t.Errorf("message: got %v", body["message"])
	}
}

func TestWebhook_UnknownEventType(t *testing.T) {
	handler, _ := newTestHandler(t, okVerifier{})

	payload := map[string]any{
		"type": "session.created",
		"data": map[string]any{"id": "sess_1"},
	}
	rec := httptest.NewRecorder()
	handler.HandleClerkWebhook(rec, signedRequest(t, payload))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if body := decodeAck(t, rec); body["success"] != true {
		t.Errorf("success: got %v, want true", body["success"])
	}
}

func TestWebhook_RoleAsStringOrArray(t *testing.T) {
	handler, _ := newTestHandler(t, okVerifier{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	payload := createdPayload("user_w8", "w8@example.com")
	payload["data"].(map[string]any)["role"] = "reader"

	rec := httptest.NewRecorder()
	handler.HandleClerkWebhook(rec, signedRequest(t, payload))
	if rec.Code != http.StatusOK {
		t.Fatalf("string role: got %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	u, err := handler.Users.GetByClerkID(ctx, "user_w8")
	if err != nil {
		t.Fatalf("GetByClerkID failed: %v", err)
	}
	if len(u.Roles) != 1 || u.Roles[0] != models.RoleReader {
		t.Errorf("roles: got %v, want [reader]", u.Roles)
	}
}
