package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/internship-portal/internal/errors"
	"github.com/jrsteele09/internship-portal/users"
)

type TokenType string

const (
	TypeAccess  TokenType = "access"
	TypeRefresh TokenType = "refresh"
)

// Claims is the verified content of an access or refresh token
type Claims struct {
	UserID    int64
	Username  string
	Type      TokenType
	JTI       string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenPair is issued on login and carried in the access/refresh cookies
type TokenPair struct {
	Access  string
	Refresh string
}

// TokenIntrospection represents the metadata of a token.
// The 'active' field indicates the state of the token - if it's false, other fields may not be populated.
type TokenIntrospection struct {
	Active    bool      `json:"active"`               // Is the token valid, unexpired and not revoked
	Sub       *string   `json:"sub,omitempty"`        // User ID
	Username  string    `json:"username,omitempty"`   // Username at issue time
	TokenType TokenType `json:"token_type,omitempty"` // access or refresh
	Exp       *int64    `json:"exp,omitempty"`        // Expiration
	Iat       *int64    `json:"iat,omitempty"`        // Issued at time
	Iss       *string   `json:"iss,omitempty"`        // Issuer of the token
}

// Manager issues and verifies HS256 tokens with a single shared secret
type Manager struct {
	secret             []byte            // HMAC key for signing and verification
	issuer             string            // iss claim
	revokedCache       RevokedTokenCache // Cache for revoked tokens
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
	nowFunc            func() time.Time
}

type ManagerOption func(*Manager)

func WithTokenExpiry(accessTokenExpiry time.Duration, refreshTokenExpiry time.Duration) ManagerOption {
	return func(m *Manager) {
		m.accessTokenExpiry = accessTokenExpiry
		m.refreshTokenExpiry = refreshTokenExpiry
	}
}

func WithNowFunc(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowFunc = now
	}
}

func WithIssuer(issuer string) ManagerOption {
	return func(m *Manager) {
		m.issuer = issuer
	}
}

func WithRevokedTokenCache(cache RevokedTokenCache) ManagerOption {
	return func(m *Manager) {
		m.revokedCache = cache
	}
}

func New(secret string, options ...ManagerOption) *Manager {
	m := &Manager{
		secret: []byte(secret),
		issuer: "internship-portal",
	}

	for _, opt := range options {
		opt(m)
	}

	if m.accessTokenExpiry == 0 {
		m.accessTokenExpiry = 15 * time.Minute
	}
	if m.refreshTokenExpiry == 0 {
		m.refreshTokenExpiry = 7 * 24 * time.Hour
	}
	if m.nowFunc == nil {
		m.nowFunc = time.Now
	}
	if m.revokedCache == nil {
		m.revokedCache = NewInMemoryRevokedTokenCacheWithClock(m.nowFunc)
	}
	return m
}

func (c *Manager) AccessTokenExpiry() time.Duration {
	return c.accessTokenExpiry
}

func (c *Manager) RefreshTokenExpiry() time.Duration {
	return c.refreshTokenExpiry
}

// CreateTokenPair issues the access and refresh tokens for a successful login
func (c *Manager) CreateTokenPair(user *users.User) (*TokenPair, error) {
	access, err := c.CreateAccessToken(user)
	if err != nil {
		return nil, err
	}
	refresh, err := c.CreateRefreshToken(user)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func (c *Manager) CreateAccessToken(user *users.User) (string, error) {
	return c.createToken(user.ID, user.Username, TypeAccess, c.accessTokenExpiry)
}

func (c *Manager) CreateRefreshToken(user *users.User) (string, error) {
	return c.createToken(user.ID, user.Username, TypeRefresh, c.refreshTokenExpiry)
}

func (c *Manager) createToken(userID int64, username string, tokenType TokenType, expiry time.Duration) (string, error) {
	now := c.nowFunc()
	claims := jwt.MapClaims{
		"iss":        c.issuer,                      // The issuer of the token
		"sub":        strconv.FormatInt(userID, 10), // Subject: the user ID
		"username":   username,                      // Convenience for logs and /me fallbacks
		"token_type": string(tokenType),             // access or refresh, never interchangeable
		"iat":        now.Unix(),                    // Issued At
		"exp":        now.Add(expiry).Unix(),        // Expiry
		"jti":        uuid.New().String(),           // Unique token ID for revocation
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("Manager.createToken %s: %w", tokenType, err)
	}
	return signed, nil
}

// Validate verifies signature, expiry, revocation and type of rawToken
func (c *Manager) Validate(rawToken string, expected TokenType) (*Claims, error) {
	claims, err := c.parse(rawToken)
	if err != nil {
		return nil, err
	}
	if claims.Type != expected {
		return nil, apperrors.Wrapf(apperrors.ErrWrongTokenType, "expected %s, got %s", expected, claims.Type)
	}
	if claims.JTI != "" && c.revokedCache.IsRevoked(claims.JTI) {
		return nil, apperrors.ErrTokenRevoked
	}
	return claims, nil
}

// Refresh exchanges a valid refresh token for a new access token
func (c *Manager) Refresh(rawRefresh string) (string, *Claims, error) {
	claims, err := c.Validate(rawRefresh, TypeRefresh)
	if err != nil {
		return "", nil, apperrors.Wrapf(err, "Manager.Refresh")
	}
	access, err := c.createToken(claims.UserID, claims.Username, TypeAccess, c.accessTokenExpiry)
	if err != nil {
		return "", nil, err
	}
	return access, claims, nil
}

// Revoke blacklists a token's jti until it expires
func (c *Manager) Revoke(rawToken string) error {
	claims, err := c.parse(rawToken)
	if err != nil {
		return apperrors.Wrapf(err, "Manager.Revoke")
	}
	if claims.JTI == "" {
		return errors.New("token missing jti claim")
	}
	return c.revokedCache.Add(claims.JTI, claims.ExpiresAt)
}

// Introspection reports token state without failing on inactive tokens
func (c *Manager) Introspection(rawToken string) (*TokenIntrospection, error) {
	claims, err := c.parse(rawToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenExpired) {
			return &TokenIntrospection{Active: false}, nil
		}
		return &TokenIntrospection{Active: false}, err
	}

	sub := strconv.FormatInt(claims.UserID, 10)
	iat := claims.IssuedAt.Unix()
	exp := claims.ExpiresAt.Unix()
	return &TokenIntrospection{
		Active:    claims.JTI == "" || !c.revokedCache.IsRevoked(claims.JTI),
		Sub:       &sub,
		Username:  claims.Username,
		TokenType: claims.Type,
		Exp:       &exp,
		Iat:       &iat,
		Iss:       &c.issuer,
	}, nil
}

// CleanupRevokedTokens removes expired tokens from the revocation cache
func (c *Manager) CleanupRevokedTokens() {
	if c.revokedCache != nil {
		c.revokedCache.Cleanup()
	}
}

func (c *Manager) verificationKey(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return c.secret, nil
}

func (c *Manager) parse(rawToken string) (*Claims, error) {
	if rawToken == "" {
		return nil, apperrors.ErrInvalidToken
	}

	token, err := jwt.Parse(rawToken, c.verificationKey,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithTimeFunc(c.nowFunc),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.Wrapf(apperrors.ErrTokenExpired, "%v", err)
		}
		return nil, apperrors.Wrapf(apperrors.ErrInvalidToken, "%v", err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidToken, "error extracting claims")
	}

	sub, _ := mapClaims["sub"].(string)
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidToken, "bad subject %q", sub)
	}
	username, _ := mapClaims["username"].(string)
	tokenType, _ := mapClaims["token_type"].(string)
	jti, _ := mapClaims["jti"].(string)
	iat, _ := mapClaims["iat"].(float64)
	exp, _ := mapClaims["exp"].(float64)

	return &Claims{
		UserID:    userID,
		Username:  username,
		Type:      TokenType(tokenType),
		JTI:       jti,
		IssuedAt:  time.Unix(int64(iat), 0),
		ExpiresAt: time.Unix(int64(exp), 0),
	}, nil
}
