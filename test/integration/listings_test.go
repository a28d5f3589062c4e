package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"marketsafe_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listingBody() map[string]interface{} {
	return map[string]interface{}{
		"title":       "Calc textbook",
		"description": "Third edition, some highlighting",
		"price":       25.50,
		"location":    "University Centre",
	}
}

func signupAndLogin(t *testing.T, ts *helpers.TestServer, email string) string {
	t.Helper()
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/accounts", "", signupBody(email))
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	return ts.Login(t, email, "Password1")
}

func TestListingLifecycle(t *testing.T) {
	ts := helpers.NewTestServer(t)
	sellerToken := signupAndLogin(t, ts, "seller@umanitoba.ca")
	buyerToken := signupAndLogin(t, ts, "buyer@umanitoba.ca")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/listings", sellerToken, listingBody())
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var listing struct {
		ID       uint  `json:"id"`
		SellerID uint  `json:"seller_id"`
		IsSold   bool  `json:"is_sold"`
		SoldToID *uint `json:"sold_to_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &listing))
	require.NotZero(t, listing.ID)
	assert.False(t, listing.IsSold)

	t.Run("listed publicly", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/listings", "", nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, body, "Calc textbook")
	})

	t.Run("fetch by id", func(t *testing.T) {
		res, _ := ts.SendRequest(t, http.MethodGet, fmt.Sprintf("/api/v1/listings/%d", listing.ID), "", nil)
		assert.Equal(t, http.StatusOK, res.StatusCode)

		res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/listings/99999", "", nil)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, body).ErrorCode)
	})

	t.Run("my listings", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/listings/me", sellerToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, body, "Calc textbook")

		res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/listings/me", buyerToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.NotContains(t, body, "Calc textbook")
	})

	t.Run("comments", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/listings/%d/comments", listing.ID), buyerToken,
			map[string]string{"content": "Is the price negotiable?"})
		require.Equal(t, http.StatusCreated, res.StatusCode, body)

		res, body = ts.SendRequest(t, http.MethodGet, fmt.Sprintf("/api/v1/listings/%d", listing.ID), "", nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, body, "Is the price negotiable?")
	})

	t.Run("mark sold", func(t *testing.T) {
		var buyer struct {
			ID uint `json:"id"`
		}
		res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/accounts/me", buyerToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		require.NoError(t, json.Unmarshal([]byte(body), &buyer))

		soldBody := map[string]interface{}{"buyer_id": buyer.ID}

		res, body = ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/listings/%d/sold", listing.ID), buyerToken, soldBody)
		assert.Equal(t, http.StatusForbidden, res.StatusCode, "only the seller may mark sold: "+body)

		res, body = ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/listings/%d/sold", listing.ID), sellerToken, soldBody)
		require.Equal(t, http.StatusOK, res.StatusCode, body)

		res, body = ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/listings/%d/sold", listing.ID), sellerToken, soldBody)
		assert.Equal(t, http.StatusConflict, res.StatusCode, body)
	})
}

func TestCreateListingValidation(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token := signupAndLogin(t, ts, "val@umanitoba.ca")

	t.Run("requires auth", func(t *testing.T) {
		res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/listings", "", listingBody())
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})

	t.Run("aggregated field errors", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/listings", token, map[string]interface{}{
			"title":     "",
			"price":     -1,
			"image_url": "not-a-url",
		})
		require.Equal(t, http.StatusUnprocessableEntity, res.StatusCode, body)
		assert.Equal(t, "VALIDATION_ERROR", decodeError(t, body).ErrorCode)
		for _, field := range []string{"title", "description", "price", "location", "image_url"} {
			assert.Contains(t, body, field)
		}
	})
}
