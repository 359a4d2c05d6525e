package auth_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgibeparking/parking-api/auth"
	"github.com/cgibeparking/parking-api/store/memstore"
)

type authFixture struct {
	app    *fiber.App
	mailer *recorderMailer
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	users := memstore.NewUsers()
	tokens := auth.NewTokenService([]byte("test-key"))
	mailer := &recorderMailer{}

	registrar := auth.NewRegistrar(
		users, memstore.NewRegistrations(), mailer, tokens,
		"https://parking.example.com",
	)
	auther := auth.NewAuthenticator(users, tokens)

	app := fiber.New()
	auth.RegisterRoutes(app, auth.NewController(registrar, auther))

	return &authFixture{app: app, mailer: mailer}
}

func (f *authFixture) postJSON(t *testing.T, path string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	res, err := f.app.Test(req)
	require.NoError(t, err)
	return res
}

func decodeBody(t *testing.T, res *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestSignupFlow(t *testing.T) {
	f := newAuthFixture(t)

	res := f.postJSON(t, "/register", auth.RegisterInput{
		UserID:   "alice1",
		Name:     "Alice",
		Email:    "alice@cgi.com",
		Password: "secret99",
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, true, decodeBody(t, res)["success"])

	token := f.mailer.lastToken(t)
	req := httptest.NewRequest(fiber.MethodGet, "/register/activate/"+token, nil)
	res, err := f.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	body := decodeBody(t, res)
	assert.Equal(t, true, body["auth"])
	assert.Equal(t, "alice1", body["userId"])
	assert.Equal(t, "MEMBER", body["roles"])
	assert.NotEmpty(t, body["token"])

	res = f.postJSON(t, "/login", auth.LoginRequest{UserID: "alice1", Password: "secret99"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	body = decodeBody(t, res)
	assert.Equal(t, true, body["auth"])
	assert.Equal(t, "alice@cgi.com", body["email"])
}

func TestRegisterEndpointErrors(t *testing.T) {
	tests := []struct {
		name       string
		input      auth.RegisterInput
		wantStatus int
		wantError  string
	}{
		{
			name: "Validation failure",
			input: auth.RegisterInput{
				UserID: "alice1", Name: "Alice",
				Email: "alice@cgi.com", Password: "short1",
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "Password needs to be longer than 8 characters",
		},
		{
			name: "Bad email domain",
			input: auth.RegisterInput{
				UserID: "alice1", Name: "Alice",
				Email: "alice@gmail.com", Password: "secret99",
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "Email is not valid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			res := f.postJSON(t, "/register", tt.input)
			assert.Equal(t, tt.wantStatus, res.StatusCode)
			assert.Equal(t, tt.wantError, decodeBody(t, res)["error"])
		})
	}
}

func TestRegisterEndpointDuplicate(t *testing.T) {
	f := newAuthFixture(t)
	input := auth.RegisterInput{
		UserID: "alice1", Name: "Alice",
		Email: "alice@cgi.com", Password: "secret99",
	}

	res := f.postJSON(t, "/register", input)
	require.Equal(t, http.StatusOK, res.StatusCode)

	req := httptest.NewRequest(fiber.MethodGet, "/register/activate/"+f.mailer.lastToken(t), nil)
	_, err := f.app.Test(req)
	require.NoError(t, err)

	res = f.postJSON(t, "/register", input)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Equal(t, "UserId already taken", decodeBody(t, res)["error"])
}

func TestActivateEndpointUnknownToken(t *testing.T) {
	f := newAuthFixture(t)

	req := httptest.NewRequest(fiber.MethodGet, "/register/activate/bogus", nil)
	res, err := f.app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "Activation Token not valid", decodeBody(t, res)["error"])
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	f := newAuthFixture(t)

	res := f.postJSON(t, "/login", auth.LoginRequest{UserID: "nobody1", Password: "whatever"})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, "The credentials do not match.", decodeBody(t, res)["error"])
}
