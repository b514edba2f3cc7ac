package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/caremesh/hospital-api/internal/domain"
	"github.com/caremesh/hospital-api/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// RegisterPublic mounts the endpoints that need no token.
func (h *AuthHandler) RegisterPublic(r gin.IRouter) {
	auth := r.Group("/auth")
	auth.POST("/register", h.register)
	auth.POST("/login", h.login)
}

// RegisterProtected mounts the endpoints that run behind authentication.
func (h *AuthHandler) RegisterProtected(r gin.IRouter) {
	auth := r.Group("/auth")
	auth.POST("/change-password", h.changePassword)
	auth.POST("/admins", h.createAdmin)
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	Username     string      `json:"username"`
	Role         domain.Role `json:"role"`
	DoctorID     *uuid.UUID  `json:"doctorId,omitempty"`
	PatientID    *uuid.UUID  `json:"patientId,omitempty"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type userResponse struct {
	ID       uuid.UUID   `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
}

func (h *AuthHandler) register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.svc.Register(c.Request.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, userResponse{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role})
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, loginResponse{
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
		Username:     result.Username,
		Role:         result.Role,
		DoctorID:     result.DoctorID,
		PatientID:    result.PatientID,
	})
}

func (h *AuthHandler) changePassword(c *gin.Context) {
	claims := service.ActorFrom(c.Request.Context())
	if claims == nil {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req changePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.NewPassword == "" {
		respondError(c, http.StatusBadRequest, "newPassword is required")
		return
	}

	if err := h.svc.ChangePassword(c.Request.Context(), claims.Username, req.CurrentPassword, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse[any]{Message: "password changed"})
}

func (h *AuthHandler) createAdmin(c *gin.Context) {
	claims := service.ActorFrom(c.Request.Context())
	if claims == nil {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.svc.CreateAdmin(c.Request.Context(), claims.Username, req.Username, req.Password, req.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, userResponse{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role})
}
