package handlers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"risehub/internal/config"
	"risehub/internal/middleware"
	"risehub/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
)

const (
	discordAPIBase = "https://discord.com/api"
	oauthStateKey  = "oauth_state"
)

var discordEndpoint = oauth2.Endpoint{
	AuthURL:   "https://discord.com/oauth2/authorize",
	TokenURL:  discordAPIBase + "/oauth2/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

type AuthHandler struct {
	cfg         *config.Config
	oauth       *oauth2.Config
	userInfoURL string
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		cfg: cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.DiscordClientID,
			ClientSecret: cfg.DiscordClientSecret,
			RedirectURL:  cfg.SiteURL + "/auth/discord/callback",
			Scopes:       []string{"identify", "email"},
			Endpoint:     discordEndpoint,
		},
		userInfoURL: discordAPIBase + "/users/@me",
	}
}

// DiscordUserInfo Discord 用户信息结构
type DiscordUserInfo struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name"`
	Email      string `json:"email"`
	Verified   bool   `json:"verified"`
	Avatar     string `json:"avatar"`
}

func (u *DiscordUserInfo) avatarURL() string {
	if u.Avatar == "" {
		return ""
	}
	return fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.png", u.ID, u.Avatar)
}

// generateStateToken 生成随机 state token
func generateStateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// DiscordLogin 发起 Discord OAuth 登录
func (h *AuthHandler) DiscordLogin(c *gin.Context) {
	state, err := generateStateToken()
	if err != nil {
		respondError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(oauthStateKey, state)
	if err := session.Save(); err != nil {
		respondError(c, err)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, h.oauth.AuthCodeURL(state))
}

// DiscordCallback 处理 Discord OAuth 回调
func (h *AuthHandler) DiscordCallback(c *gin.Context) {
	session := sessions.Default(c)
	savedState, _ := session.Get(oauthStateKey).(string)
	if savedState == "" || c.Query("state") != savedState {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OAuth state"})
		return
	}
	session.Delete(oauthStateKey)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing authorization code"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	token, err := h.oauth.Exchange(ctx, code)
	if err != nil {
		log.Printf("[auth] discord token exchange: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login failed"})
		return
	}

	info, err := h.fetchUserInfo(ctx, token)
	if err != nil {
		log.Printf("[auth] discord user info: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login failed"})
		return
	}

	email := ""
	if info.Verified {
		email = info.Email
	}
	name := info.GlobalName
	if name == "" {
		name = info.Username
	}

	user, err := services.UpsertDiscordUser(services.ExternalIdentity{
		DiscordID: info.ID,
		Name:      name,
		Email:     email,
		Image:     info.avatarURL(),
	}, email != "" && h.cfg.IsAdminEmail(email))
	if err != nil {
		respondError(c, err)
		return
	}

	session.Set(middleware.SessionUserKey, user.ID)
	if err := session.Save(); err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, h.cfg.SiteURL+"/")
}

func (h *AuthHandler) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*DiscordUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.oauth.Client(ctx, token).Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discord returned HTTP %d", resp.StatusCode)
	}
	var info DiscordUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}
	if info.ID == "" {
		return nil, fmt.Errorf("discord user info has no id")
	}
	return &info, nil
}

// Logout POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
