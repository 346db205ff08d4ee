package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lakshaylalia/Taskflow-Backend/internal/auth"
	"github.com/lakshaylalia/Taskflow-Backend/internal/config"
	"github.com/lakshaylalia/Taskflow-Backend/internal/models"
	"github.com/lakshaylalia/Taskflow-Backend/internal/oauth"
	"github.com/lakshaylalia/Taskflow-Backend/internal/types"
	"github.com/lakshaylalia/Taskflow-Backend/internal/utils"
)

const stateCookieName = "oauth_state"

// Accepts an optional leading + and 10 to 15 digits.
var contactNumberRe = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

type AuthHandler struct {
	db     *gorm.DB
	issuer *auth.Issuer
	linker *oauth.Linker
	google *oauth.Google
	github *oauth.GitHub
	cfg    config.Config
}

func NewAuthHandler(db *gorm.DB, issuer *auth.Issuer, linker *oauth.Linker, google *oauth.Google, github *oauth.GitHub, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		db:     db,
		issuer: issuer,
		linker: linker,
		google: google,
		github: github,
		cfg:    cfg,
	}
}

type RegisterRequest struct {
	FirstName     string `json:"firstName" binding:"required,min=2,max=100"`
	LastName      string `json:"lastName" binding:"required,min=2,max=100"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6,max=100"`
	ContactNumber string `json:"contactNumber" binding:"required"`
	EmployeeID    string `json:"employeeId" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req RegisterRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondError(ctx, types.NewApiError(http.StatusBadRequest, "All fields are required"))
		return
	}

	if !contactNumberRe.MatchString(req.ContactNumber) {
		utils.RespondError(ctx, types.NewApiError(http.StatusBadRequest, "Contact number must be 10 to 15 digits"))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)

	var existing models.User

	err := h.db.
		Where("email = ? OR contact_number = ? OR employee_id = ?", email, req.ContactNumber, req.EmployeeID).
		First(&existing).Error

	if err == nil {
		utils.RespondError(ctx, types.NewApiError(http.StatusBadRequest, "User already exists"))
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(ctx, err)
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	user := models.User{
		FirstName:     firstName,
		LastName:      lastName,
		FullName:      firstName + " " + lastName,
		Email:         &email,
		PasswordHash:  passwordHash,
		Provider:      types.ProviderLocal,
		ContactNumber: &req.ContactNumber,
		EmployeeID:    &req.EmployeeID,
	}

	if err := h.db.Create(&user).Error; err != nil {
		// Two concurrent registrations can both pass the lookup above;
		// the unique indexes decide the winner.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondError(ctx, types.NewApiError(http.StatusBadRequest, "User already exists"))
			return
		}
		utils.RespondError(ctx, err)
		return
	}

	token, err := h.issuer.Issue(user.ID, email, types.ProviderLocal)

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	h.setTokenCookie(ctx, token)
	utils.Respond(ctx, http.StatusCreated, gin.H{
		"user":  userResponse(user),
		"token": token,
	}, "User created successfully")
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondError(ctx, types.NewApiError(http.StatusBadRequest, "Email and password are required"))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User

	err := h.db.Where("email = ?", email).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same outcome as a wrong password: the caller must not be
			// able to tell whether the account exists.
			h.invalidCredentials(ctx)
			return
		}
		utils.RespondError(ctx, err)
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		h.invalidCredentials(ctx)
		return
	}

	token, err := h.issuer.Issue(user.ID, email, user.Provider)

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	h.setTokenCookie(ctx, token)
	utils.Respond(ctx, http.StatusOK, gin.H{
		"user":  userResponse(user),
		"token": token,
	}, "User login successfully")
}

func (h *AuthHandler) Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		utils.RespondError(ctx, types.NewApiError(http.StatusUnauthorized, "User not authenticated"))
		return
	}

	var user models.User

	if err := h.db.First(&user, currentUser.ID).Error; err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.Respond(ctx, http.StatusOK, gin.H{"user": userResponse(user)}, "User fetched successfully")
}

func (h *AuthHandler) GoogleLogin(ctx *gin.Context) {
	if h.google == nil {
		utils.RespondError(ctx, types.NewApiError(http.StatusNotFound, "Google login is not configured"))
		return
	}

	state := oauth.RandState()
	h.setStateCookie(ctx, state)
	ctx.Redirect(http.StatusTemporaryRedirect, h.google.LoginURL(state))
}

func (h *AuthHandler) GoogleCallback(ctx *gin.Context) {
	if h.google == nil {
		utils.RespondError(ctx, types.NewApiError(http.StatusNotFound, "Google login is not configured"))
		return
	}

	h.oauthCallback(ctx, types.ProviderGoogle, h.google.Exchange)
}

func (h *AuthHandler) GitHubLogin(ctx *gin.Context) {
	if h.github == nil {
		utils.RespondError(ctx, types.NewApiError(http.StatusNotFound, "GitHub login is not configured"))
		return
	}

	state := oauth.RandState()
	h.setStateCookie(ctx, state)
	ctx.Redirect(http.StatusTemporaryRedirect, h.github.LoginURL(state))
}

func (h *AuthHandler) GitHubCallback(ctx *gin.Context) {
	if h.github == nil {
		utils.RespondError(ctx, types.NewApiError(http.StatusNotFound, "GitHub login is not configured"))
		return
	}

	h.oauthCallback(ctx, types.ProviderGitHub, h.github.Exchange)
}

// oauthCallback finishes the OAuth flow: state check, code exchange, account
// linking, token issuance, then a redirect to the front-end with the token
// as a query parameter. Any failure redirects to the login page instead.
func (h *AuthHandler) oauthCallback(ctx *gin.Context, provider types.Provider, exchange func(context.Context, string) (oauth.Profile, error)) {
	loginURL := h.cfg.FrontendURL + "/login"

	state, err := ctx.Cookie(stateCookieName)

	if err != nil || state == "" || ctx.Query("state") != state {
		ctx.Redirect(http.StatusTemporaryRedirect, loginURL)
		return
	}

	h.clearStateCookie(ctx)

	code := ctx.Query("code")

	if code == "" {
		ctx.Redirect(http.StatusTemporaryRedirect, loginURL)
		return
	}

	profile, err := exchange(ctx.Request.Context(), code)

	if err != nil {
		log.Printf("%s exchange failed: %v", provider, err)
		ctx.Redirect(http.StatusTemporaryRedirect, loginURL)
		return
	}

	user, err := h.linker.Resolve(ctx.Request.Context(), provider, profile)

	if err != nil {
		log.Printf("Failed to resolve %s user: %v", provider, err)
		ctx.Redirect(http.StatusTemporaryRedirect, loginURL)
		return
	}

	email := ""
	if user.Email != nil {
		email = *user.Email
	}

	token, err := h.issuer.Issue(user.ID, email, user.Provider)

	if err != nil {
		log.Printf("Failed to issue token: %v", err)
		ctx.Redirect(http.StatusTemporaryRedirect, loginURL)
		return
	}

	ctx.Redirect(http.StatusTemporaryRedirect, fmt.Sprintf("%s/oauth?token=%s", h.cfg.FrontendURL, url.QueryEscape(token)))
}

func (h *AuthHandler) invalidCredentials(ctx *gin.Context) {
	utils.RespondError(ctx, types.NewApiError(http.StatusUnauthorized, "Invalid email or password"))
}

func (h *AuthHandler) setTokenCookie(ctx *gin.Context, token string) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     types.TokenCookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.cfg.CookieDomain,
		MaxAge:   int(h.cfg.JWTTTL.Seconds()),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}

func (h *AuthHandler) setStateCookie(ctx *gin.Context, state string) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		Domain:   h.cfg.CookieDomain,
		MaxAge:   600,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearStateCookie(ctx *gin.Context) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.cfg.CookieDomain,
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func userResponse(user models.User) types.UserResponse {
	email := ""
	if user.Email != nil {
		email = *user.Email
	}

	contactNumber := ""
	if user.ContactNumber != nil {
		contactNumber = *user.ContactNumber
	}

	employeeID := ""
	if user.EmployeeID != nil {
		employeeID = *user.EmployeeID
	}

	return types.UserResponse{
		ID:            user.ID,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		FullName:      user.FullName,
		Email:         email,
		Provider:      string(user.Provider),
		ContactNumber: contactNumber,
		EmployeeID:    employeeID,
		AvatarImage:   user.AvatarImage,
	}
}
