package handlers

import (
	"net/http"

	"marketsafe_backend/internal/logger"
	"marketsafe_backend/internal/services"
	"marketsafe_backend/internal/services/dto"
	"marketsafe_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	*BaseHandler
	accountService services.AccountService
}

func NewAccountHandler(base *BaseHandler, accountService services.AccountService) *AccountHandler {
	return &AccountHandler{
		BaseHandler:    base,
		accountService: accountService,
	}
}

// RegisterRoutes wires the account endpoints under /api/v1.
func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.Signup)
		accounts.POST("/login", h.Login)
		accounts.GET("/verify-email", h.VerifyEmail)
	}

	protected := rg.Group("/accounts")
	protected.Use(authRequired)
	{
		protected.GET("/me", h.GetCurrentAccount)
		protected.POST("/resend-verification", h.ResendVerification)
	}
}

// Signup handles POST /accounts.
func (h *AccountHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	response, err := h.accountService.Signup(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "Account created", "account_id", response.Account.ID)
	c.JSON(http.StatusCreated, response)
}

// Login handles POST /accounts/login. Missing or malformed credentials are
// reported as 400, everything else that fails is a 401, so the response
// never reveals whether the account exists.
func (h *AccountHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return
	}

	db := h.GetDB(c)

	response, err := h.accountService.Login(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetCurrentAccount handles GET /accounts/me.
func (h *AccountHandler) GetCurrentAccount(c *gin.Context) {
	accountID, ok := h.GetAndAuthorizeAccountID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	account, err := h.accountService.GetAccountByID(db, accountID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AccountResponse{
		ID:       account.ID,
		Email:    account.Email,
		Fname:    account.Fname,
		Lname:    account.Lname,
		Verified: account.Verified,
	})
}

// VerifyEmail handles GET /accounts/verify-email?token=...
func (h *AccountHandler) VerifyEmail(c *gin.Context) {
	rawToken := c.Query("token")
	if len(rawToken) < 10 {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing or malformed verification token"))
		return
	}

	db := h.GetDB(c)

	account, err := h.accountService.VerifyEmailToken(db, rawToken)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "Email verified", "account_id", account.ID)
	c.JSON(http.StatusOK, dto.VerifyEmailResponse{
		Message: "Email verified successfully",
		Account: dto.AccountResponse{
			ID:       account.ID,
			Email:    account.Email,
			Fname:    account.Fname,
			Lname:    account.Lname,
			Verified: account.Verified,
		},
		Verified: account.Verified,
	})
}

// ResendVerification handles POST /accounts/resend-verification for the
// authenticated account.
func (h *AccountHandler) ResendVerification(c *gin.Context) {
	accountID, ok := h.GetAndAuthorizeAccountID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	link, err := h.accountService.ResendVerification(db, accountID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":           "Verification email sent",
		"verification_link": link,
	})
}
