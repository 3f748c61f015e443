package ginserver

import (
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	gin "github.com/gin-gonic/gin"

	"stayhub/internal/app/dto"
	"stayhub/internal/app/services/auth"
	favoritesapp "stayhub/internal/app/services/favorites"
	domainuser "stayhub/internal/domain/user"
	"stayhub/internal/infra/storage/s3"
)

const avatarMaxBytes = 5 << 20

// AuthHandler covers account lifecycle plus the avatar upload that hangs off
// the profile.
type AuthHandler struct {
	Service   *auth.Service
	Favorites *favoritesapp.Registry
	Uploader  s3.Uploader
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h AuthHandler) Register(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "auth unavailable"})
		return
	}
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.Service.Register(c.Request.Context(), auth.RegisterParams{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.AuthResponse{
		Token: result.Token,
		User:  dto.MapUserProfile(result.User),
	})
}

func (h AuthHandler) Login(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "auth unavailable"})
		return
	}
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.Service.Login(c.Request.Context(), auth.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AuthResponse{
		Token: result.Token,
		User:  dto.MapUserProfile(result.User),
	})
}

// Logout revokes the session and drops the cached favorites synchronizer so a
// re-login starts from a fresh hydration.
func (h AuthHandler) Logout(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "auth unavailable"})
		return
	}
	p, ok := currentPrincipal(c)
	if ok {
		if err := h.Service.Logout(c.Request.Context(), p.Token); err != nil {
			respondError(c, err)
			return
		}
		if h.Favorites != nil {
			h.Favorites.DropUser(domainuser.ID(p.ID))
		}
	}
	c.Status(http.StatusNoContent)
}

func (h AuthHandler) Me(c *gin.Context) {
	p, ok := requireAuth(c)
	if !ok {
		return
	}
	u, err := h.Service.Users.ByID(c.Request.Context(), domainuser.ID(p.ID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapUserProfile(u))
}

// UploadAvatar stores the image and points the profile at its public URL.
func (h AuthHandler) UploadAvatar(c *gin.Context) {
	p, ok := requireAuth(c)
	if !ok {
		return
	}
	if h.Uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "uploads unavailable"})
		return
	}
	file, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
		return
	}
	if file.Size > avatarMaxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "avatar exceeds size limit"})
		return
	}
	reader, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer reader.Close()

	key := fmt.Sprintf("avatars/%s/%d%s", p.ID, time.Now().UnixMilli(), safeExt(file.Filename))
	url, err := h.Uploader.Upload(c.Request.Context(), key, reader, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, err)
		return
	}

	u, err := h.Service.Users.ByID(c.Request.Context(), domainuser.ID(p.ID))
	if err != nil {
		respondError(c, err)
		return
	}
	u.SetAvatarURL(url, time.Now())
	if err := h.Service.Users.Save(c.Request.Context(), u); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapUserProfile(u))
}

func safeExt(filename string) string {
	switch strings.ToLower(path.Ext(filename)) {
	case ".png":
		return ".png"
	case ".webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

var _ AuthHTTP = AuthHandler{}
