package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/itemkeeper/item-keeper/internal/logger"
	"github.com/itemkeeper/item-keeper/internal/service"
	"github.com/itemkeeper/item-keeper/internal/store"
	"github.com/itemkeeper/item-keeper/internal/utils"
	"github.com/itemkeeper/item-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerUserFn    func(ctx context.Context, req models.SignupRequest) (models.User, error)
	loginFn           func(ctx context.Context, req models.SigninRequest) (models.User, error)
	changePasswordFn  func(ctx context.Context, email, oldPassword, newPassword string) (models.User, error)
	deleteUserFn      func(ctx context.Context, email string) (models.User, error)
	findUsersByNameFn func(ctx context.Context, name string) ([]models.User, error)
	createTokenFn     func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn      func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, req models.SignupRequest) (models.User, error) {
	return m.registerUserFn(ctx, req)
}

func (m *mockAuthService) Login(ctx context.Context, req models.SigninRequest) (models.User, error) {
	return m.loginFn(ctx, req)
}

func (m *mockAuthService) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) (models.User, error) {
	return m.changePasswordFn(ctx, email, oldPassword, newPassword)
}

func (m *mockAuthService) DeleteUser(ctx context.Context, email string) (models.User, error) {
	return m.deleteUserFn(ctx, email)
}

func (m *mockAuthService) FindUsersByName(ctx context.Context, name string) ([]models.User, error) {
	return m.findUsersByNameFn(ctx, name)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

// newHandlerWithAuth builds a Handler with the given AuthService mock.
func newHandlerWithAuth(t *testing.T, auth service.AuthService) *Handler {
	t.Helper()
	return NewHandler(&service.Services{AuthService: auth}, logger.Nop())
}

// jsonBody serialises v to a JSON request body string.
func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// stubToken returns a models.Token with the given signed string and email.
func stubToken(signed, email string) models.Token {
	return models.Token{SignedString: signed, Email: email}
}

// withIdentity stamps the authenticated email onto the request context,
// simulating a request that already passed the auth middleware.
func withIdentity(r *http.Request, email string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), utils.EmailCtxKey, email))
}

// withURLParams attaches chi URL parameters to the request context so that
// a handler can be invoked directly, without routing through the mux.
func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

var validSignup = models.SignupRequest{
	Email:    "alice@example.com",
	Password: "password1",
	Name:     "Alice",
}

func TestSignup_Success(t *testing.T) {
	const signedToken = "signed.jwt.token"

	auth := &mockAuthService{
		registerUserFn: func(_ context.Context, req models.SignupRequest) (models.User, error) {
			return models.User{UserID: 7, Email: req.Email, Name: req.Name}, nil
		},
		createTokenFn: func(_ context.Context, u models.User) (models.Token, error) {
			return stubToken(signedToken, u.Email), nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/user/signup", strings.NewReader(jsonBody(t, validSignup)))
	rec := httptest.NewRecorder()

	h.signup(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.SignupResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.Equal(t, signedToken, resp.Key)
	assert.Equal(t, int64(7), resp.ID)
}

func TestSignup_InvalidJSON(t *testing.T) {
	h := newHandlerWithAuth(t, &mockAuthService{})
	req := httptest.NewRequest(http.MethodPost, "/api/user/signup", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.signup(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignup_DuplicateEmailConflict(t *testing.T) {
	auth := &mockAuthService{
		registerUserFn: func(_ context.Context, _ models.SignupRequest) (models.User, error) {
			return models.User{}, store.ErrEmailAlreadyExists
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/user/signup", strings.NewReader(jsonBody(t, validSignup)))
	rec := httptest.NewRecorder()

	h.signup(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSignup_ValidationBadRequest(t *testing.T) {
	auth := &mockAuthService{
		registerUserFn: func(_ context.Context, _ models.SignupRequest) (models.User, error) {
			return models.User{}, service.ErrInvalidDataProvided
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/user/signup", strings.NewReader(jsonBody(t, validSignup)))
	rec := httptest.NewRecorder()

	h.signup(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignin_Success(t *testing.T) {
	const signedToken = "signed.jwt.token"

	auth := &mockAuthService{
		loginFn: func(_ context.Context, req models.SigninRequest) (models.User, error) {
			return models.User{UserID: 7, Email: req.Email, Name: "Alice"}, nil
		},
		createTokenFn: func(_ context.Context, u models.User) (models.Token, error) {
			return stubToken(signedToken, u.Email), nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	body := jsonBody(t, models.SigninRequest{Email: "alice@example.com", Password: "password1"})
	req := httptest.NewRequest(http.MethodPost, "/api/user/signin", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.signin(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.SigninResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, signedToken, resp.Token)
	assert.Equal(t, "alice@example.com", resp.Email)
}

// TestSignin_CredentialFailuresIndistinguishable verifies that an absent
// account and a wrong password produce byte-identical 401 responses.
func TestSignin_CredentialFailuresIndistinguishable(t *testing.T) {
	run := func(loginErr error) *httptest.ResponseRecorder {
		auth := &mockAuthService{
			loginFn: func(_ context.Context, _ models.SigninRequest) (models.User, error) {
				return models.User{}, loginErr
			},
		}
		h := newHandlerWithAuth(t, auth)
		body := jsonBody(t, models.SigninRequest{Email: "alice@example.com", Password: "password1"})
		req := httptest.NewRequest(http.MethodPost, "/api/user/signin", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.signin(rec, req)
		return rec
	}

	absent := run(store.ErrNoUserWasFound)
	wrongPassword := run(service.ErrWrongPassword)

	assert.Equal(t, http.StatusUnauthorized, absent.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, absent.Body.String(), wrongPassword.Body.String())
}

func TestUsersByName_Success(t *testing.T) {
	auth := &mockAuthService{
		findUsersByNameFn: func(_ context.Context, name string) ([]models.User, error) {
			return []models.User{
				{UserID: 1, Email: "alice@example.com", Name: name, PasswordHash: "secret-digest"},
			}, nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodGet, "/api/user/bulk?name=Alice", nil)
	rec := httptest.NewRecorder()

	h.usersByName(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.UsersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Users, 1)
	assert.Equal(t, "alice@example.com", resp.Users[0].Email)

	// the password digest must never appear in the listing
	assert.NotContains(t, rec.Body.String(), "secret-digest")
}

func TestChangePassword_Success(t *testing.T) {
	auth := &mockAuthService{
		changePasswordFn: func(_ context.Context, email, oldPassword, newPassword string) (models.User, error) {
			return models.User{UserID: 7, Email: email}, nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	body := jsonBody(t, models.ChangePasswordRequest{UserID: "alice@example.com", OldPassword: "password1", NewPassword: "password2"})
	req := httptest.NewRequest(http.MethodPut, "/api/user/changePassword", strings.NewReader(body))
	req = withIdentity(req, "alice@example.com")
	rec := httptest.NewRecorder()

	h.changePassword(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.UserChangedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alice@example.com", resp.Email)
}

// TestChangePassword_OwnerMismatchForbidden verifies that a valid token for
// one account cannot change another account's password.
func TestChangePassword_OwnerMismatchForbidden(t *testing.T) {
	auth := &mockAuthService{
		changePasswordFn: func(_ context.Context, _, _, _ string) (models.User, error) {
			t.Fatal("service must not be called on owner mismatch")
			return models.User{}, nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	body := jsonBody(t, models.ChangePasswordRequest{UserID: "bob@example.com", OldPassword: "password1", NewPassword: "password2"})
	req := httptest.NewRequest(http.MethodPut, "/api/user/changePassword", strings.NewReader(body))
	req = withIdentity(req, "alice@example.com")
	rec := httptest.NewRecorder()

	h.changePassword(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestChangePassword_SamePasswordBadRequest(t *testing.T) {
	auth := &mockAuthService{
		changePasswordFn: func(_ context.Context, _, _, _ string) (models.User, error) {
			return models.User{}, service.ErrSamePassword
		},
	}

	h := newHandlerWithAuth(t, auth)
	body := jsonBody(t, models.ChangePasswordRequest{UserID: "alice@example.com", OldPassword: "password1", NewPassword: "password1"})
	req := httptest.NewRequest(http.MethodPut, "/api/user/changePassword", strings.NewReader(body))
	req = withIdentity(req, "alice@example.com")
	rec := httptest.NewRecorder()

	h.changePassword(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveUser_Success(t *testing.T) {
	auth := &mockAuthService{
		deleteUserFn: func(_ context.Context, email string) (models.User, error) {
			return models.User{UserID: 7, Email: email}, nil
		},
	}

	h := newHandlerWithAuth(t, auth)

	req := httptest.NewRequest(http.MethodDelete, "/api/user/removeUser/user/alice@example.com/id/7", nil)
	req = withIdentity(req, "alice@example.com")
	req = withURLParams(req, map[string]string{"userId": "alice@example.com", "id": "7"})
	rec := httptest.NewRecorder()

	h.removeUser(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.UserChangedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alice@example.com", resp.Email)
}

func TestRemoveUser_OtherAccountForbidden(t *testing.T) {
	auth := &mockAuthService{
		deleteUserFn: func(_ context.Context, email string) (models.User, error) {
			t.Fatal("service must not be called on owner mismatch")
			return models.User{}, nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodDelete, "/api/user/removeUser/user/bob@example.com/id/7", nil)
	req = withIdentity(req, "alice@example.com")
	req = withURLParams(req, map[string]string{"userId": "bob@example.com", "id": "7"})
	rec := httptest.NewRecorder()

	h.removeUser(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRemoveUser_AbsentAccountNotFound(t *testing.T) {
	auth := &mockAuthService{
		deleteUserFn: func(_ context.Context, email string) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodDelete, "/api/user/removeUser/user/alice@example.com/id/7", nil)
	req = withIdentity(req, "alice@example.com")
	req = withURLParams(req, map[string]string{"userId": "alice@example.com", "id": "7"})
	rec := httptest.NewRecorder()

	h.removeUser(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
