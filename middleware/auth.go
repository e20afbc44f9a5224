package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"freelancehub/models"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type contextKey string

const UserContextKey contextKey = "user"

// TokenCookie is the cookie login sets and the middleware falls back to.
const TokenCookie = "token"

type Claims struct {
	UserID string      `json:"id"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator issues tokens and resolves them back to users.
type Authenticator struct {
	secret     []byte
	expiration time.Duration
	db         *gorm.DB
}

func NewAuthenticator(secret string, expiration time.Duration, db *gorm.DB) *Authenticator {
	return &Authenticator{
		secret:     []byte(secret),
		expiration: expiration,
		db:         db,
	}
}

func (a *Authenticator) Expiration() time.Duration {
	return a.expiration
}

func (a *Authenticator) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(a.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

func (a *Authenticator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}

// Middleware rejects requests without a valid token and puts the
// token's user into the request context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := tokenFromRequest(r)
		if tokenString == "" {
			writeError(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}

		claims, err := a.ValidateToken(tokenString)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Token is not valid")
			return
		}

		// Role changes take effect without a new token.
		var user models.User
		if err := a.db.WithContext(r.Context()).First(&user, "id = ?", claims.UserID).Error; err != nil {
			writeError(w, http.StatusUnauthorized, "Token is not valid")
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, &user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func tokenFromRequest(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	if cookie, err := r.Cookie(TokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUserFromContext(r.Context())
			if user == nil {
				writeError(w, http.StatusUnauthorized, "Not authorized")
				return
			}

			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			writeError(w, http.StatusForbidden, "Forbidden: insufficient role")
		})
	}
}

func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
