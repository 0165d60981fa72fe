package web

import (
	"context"
	"crypto/subtle"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/Zachkp/devfolio/internal/analytics"
)

const adminCookie = "admin_token"

// Login attempts refill at one every 12s with a burst of 5, per client.
const (
	loginInterval = 12 * time.Second
	loginBurst    = 5
	maxLoginPeers = 1024
)

// VisitorStore is what the admin pages and tracking need from analytics.
type VisitorStore interface {
	visitRecorder
	pinger
	HashIP(ip string) string
	Stats(ctx context.Context) (*analytics.Stats, error)
	Recent(ctx context.Context, limit int) ([]analytics.VisitorMetric, error)
	Cleanup(ctx context.Context, retention time.Duration) (int64, error)
}

type AdminCredentials struct {
	Username string
	Password string
}

type adminHandler struct {
	store     VisitorStore
	creds     AdminCredentials
	token     string
	retention time.Duration

	mu     sync.Mutex
	logins map[string]*rate.Limiter
}

func newAdminHandler(store VisitorStore, creds AdminCredentials, retention time.Duration) (*adminHandler, error) {
	token, err := analytics.NewToken()
	if err != nil {
		return nil, err
	}
	if creds.Username == "" || creds.Password == "" {
		if gin.Mode() != gin.DebugMode {
			log.Println("Admin login disabled: ADMIN_USERNAME and ADMIN_PASSWORD not set")
		} else {
			log.Println("WARNING: Using default admin credentials. Set ADMIN_USERNAME and ADMIN_PASSWORD.")
			creds = AdminCredentials{Username: "admin", Password: "admin123"}
		}
	}
	log.Printf("Admin access available at: /admin/login")
	if gin.Mode() == gin.DebugMode {
		log.Printf("Admin token (dev only): %s", token)
	}
	return &adminHandler{
		store:     store,
		creds:     creds,
		token:     token,
		retention: retention,
		logins:    make(map[string]*rate.Limiter),
	}, nil
}

// loginLimiter returns the limiter for one hashed client. The table is
// reset when it grows past maxLoginPeers.
func (h *adminHandler) loginLimiter(client string) *rate.Limiter {
	h.mu.Lock()
	defer h.mu.Unlock()
	l, ok := h.logins[client]
	if !ok {
		if len(h.logins) >= maxLoginPeers {
			clear(h.logins)
		}
		l = rate.NewLimiter(rate.Every(loginInterval), loginBurst)
		h.logins[client] = l
	}
	return l
}

func (h *adminHandler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(h.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (h *adminHandler) checkCredentials(username, password string) bool {
	if h.creds.Username == "" || h.creds.Password == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(h.creds.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(h.creds.Password)) == 1
	return userOK && passOK
}

func (h *adminHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		client := h.store.HashIP(c.ClientIP())
		if !h.loginLimiter(client).Allow() {
			log.Printf("Admin login throttled for %s", client)
			c.HTML(http.StatusTooManyRequests, "admin-login.html", gin.H{
				"title": "Admin Login",
				"error": "Too many attempts, try again shortly",
			})
			return
		}
		if h.checkCredentials(c.PostForm("username"), c.PostForm("password")) {
			c.SetCookie(adminCookie, h.token, 3600*24, "/admin", "", false, true)
			log.Printf("Admin login successful from %s", client)
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}
		log.Printf("Failed admin login attempt from %s", client)
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	group := r.Group("/admin")
	group.Use(h.authMiddleware())

	group.GET("/dashboard", func(c *gin.Context) {
		stats, err := h.store.Stats(c.Request.Context())
		if err != nil {
			log.Printf("Error loading admin stats: %v", err)
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{
				"title": "Error",
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"title": "Dashboard",
			"stats": stats,
		})
	})

	group.GET("/api/stats", func(c *gin.Context) {
		stats, err := h.store.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	group.GET("/api/visitors", func(c *gin.Context) {
		visitors, err := h.store.Recent(c.Request.Context(), 200)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, visitors)
	})

	group.POST("/privacy/cleanup", func(c *gin.Context) {
		n, err := h.store.Cleanup(c.Request.Context(), h.retention)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete", "removed": n})
	})

	group.GET("/export/stats", func(c *gin.Context) {
		stats, err := h.store.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		log.Printf("Admin stats exported by %s", h.store.HashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}
