package integration

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"marketsafe_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorBody struct {
	ErrorMessage string `json:"error_message"`
	ErrorCode    string `json:"error_code"`
}

func decodeError(t *testing.T, body string) errorBody {
	t.Helper()
	var eb errorBody
	require.NoError(t, json.Unmarshal([]byte(body), &eb))
	return eb
}

func signupBody(email string) map[string]string {
	return map[string]string{
		"email":    email,
		"password": "Password1",
		"fname":    "Alice",
		"lname":    "Bright",
	}
}

func TestSignupFlow(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/accounts", "", signupBody("a@umanitoba.ca"))
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var created struct {
		Account struct {
			ID       uint   `json:"id"`
			Email    string `json:"email"`
			Verified bool   `json:"verified"`
		} `json:"account"`
		VerificationLink string `json:"verification_link"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	assert.Equal(t, "a@umanitoba.ca", created.Account.Email)
	assert.False(t, created.Account.Verified)
	assert.NotEmpty(t, created.VerificationLink)

	t.Run("duplicate email conflicts", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/accounts", "", signupBody("a@umanitoba.ca"))
		assert.Equal(t, http.StatusConflict, res.StatusCode)
		assert.Equal(t, "ACCOUNT_ALREADY_EXISTS", decodeError(t, body).ErrorCode)
	})

	t.Run("outside domain rejected", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/accounts", "", signupBody("a@gmail.com"))
		assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", decodeError(t, body).ErrorCode)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/accounts", "", map[string]string{"email": "b@umanitoba.ca"})
		assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	})
}

func TestLoginFlow(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/accounts", "", signupBody("login@umanitoba.ca"))
	require.Equal(t, http.StatusCreated, res.StatusCode)

	t.Run("success", func(t *testing.T) {
		token := ts.Login(t, "login@umanitoba.ca", "Password1")
		assert.NotEmpty(t, token)
	})

	t.Run("missing password is a 400", func(t *testing.T) {
		res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/accounts/login", "", map[string]string{"email": "login@umanitoba.ca"})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("wrong password and unknown email are identical 401s", func(t *testing.T) {
		res1, body1 := ts.SendRequest(t, http.MethodPost, "/api/v1/accounts/login", "", map[string]string{
			"email": "login@umanitoba.ca", "password": "WrongPass1",
		})
		res2, body2 := ts.SendRequest(t, http.MethodPost, "/api/v1/accounts/login", "", map[string]string{
			"email": "ghost@umanitoba.ca", "password": "Password1",
		})
		assert.Equal(t, http.StatusUnauthorized, res1.StatusCode)
		assert.Equal(t, http.StatusUnauthorized, res2.StatusCode)
		assert.Equal(t, body1, body2, "login responses must not reveal whether the account exists")
	})
}

func TestCurrentAccountEndpoint(t *testing.T) {
	ts := helpers.NewTestServer(t)

	_, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/accounts", "", signupBody("me@umanitoba.ca"))
	token := ts.Login(t, "me@umanitoba.ca", "Password1")

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/accounts/me", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var me struct {
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &me))
	assert.Equal(t, "me@umanitoba.ca", me.Email)

	t.Run("without token", func(t *testing.T) {
		res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/accounts/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})

	t.Run("with garbage token", func(t *testing.T) {
		res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/accounts/me", "garbage", nil)
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})
}

func TestVerifyEmailFlow(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/accounts", "", signupBody("verify@umanitoba.ca"))
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var created struct {
		VerificationLink string `json:"verification_link"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &created))

	link, err := url.Parse(created.VerificationLink)
	require.NoError(t, err)
	rawToken := link.Query().Get("token")
	require.NotEmpty(t, rawToken)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/accounts/verify-email?token="+rawToken, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var verified struct {
		Verified bool `json:"verified"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &verified))
	assert.True(t, verified.Verified)

	t.Run("second use rejected", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/accounts/verify-email?token="+rawToken, "", nil)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "TOKEN_ALREADY_USED", decodeError(t, body).ErrorCode)
	})

	t.Run("unknown token", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/accounts/verify-email?token=0123456789abcdef", "", nil)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.Equal(t, "TOKEN_NOT_FOUND", decodeError(t, body).ErrorCode)
	})

	t.Run("malformed token", func(t *testing.T) {
		res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/accounts/verify-email?token=abc", "", nil)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})
}

func TestHealthEndpoint(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "ok")
}
