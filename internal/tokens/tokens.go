// tokens — выпуск и проверка access/refresh JWT шлюза.
//
// Оба типа токенов подписываются одним секретом (HS256); различаются только
// TTL. Claims несут userLoginId как долговременную идентичность субъекта и
// jti (RegisteredClaims.ID) для выборочного отзыва на стороне auth-сервиса.
package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pribylovaa/vocab-trainer-gateway/internal/config"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims — полезная нагрузка токенов шлюза.
type Claims struct {
	UserLoginID string `json:"userLoginId"`
	jwt.RegisteredClaims
}

// Manager подписывает и проверяет токены. Иммутабелен, безопасен для
// конкурентного использования.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
	audience   []string
}

func NewManager(cfg config.JWTConfig) *Manager {
	return &Manager{
		secret:     []byte(cfg.Secret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
	}
}

// RefreshTTL — срок жизни refresh-токена; им же ограничен max-age куки.
func (m *Manager) RefreshTTL() time.Duration { return m.refreshTTL }

// IssueAccess подписывает access-токен. Каждый вызов даёт свежий jti.
func (m *Manager) IssueAccess(userLoginID string, now time.Time) (string, error) {
	return m.issue(userLoginID, now, m.accessTTL)
}

// IssueRefresh подписывает refresh-токен. Каждый вызов даёт свежий jti.
func (m *Manager) IssueRefresh(userLoginID string, now time.Time) (string, error) {
	return m.issue(userLoginID, now, m.refreshTTL)
}

func (m *Manager) issue(userLoginID string, now time.Time, ttl time.Duration) (string, error) {
	const op = "tokens.issue"

	claims := Claims{
		UserLoginID: userLoginID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userLoginID,
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings(m.audience),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// VerifyAccess проверяет access-токен из Authorization-заголовка.
func (m *Manager) VerifyAccess(tokenStr string) (*Claims, error) {
	return m.verify(tokenStr)
}

// VerifyRefresh проверяет refresh-токен из куки. Проверка выполняется ДО
// любого обращения к auth-сервису: битый или просроченный токен не должен
// доходить до апстрима.
func (m *Manager) VerifyRefresh(tokenStr string) (*Claims, error) {
	return m.verify(tokenStr)
}

func (m *Manager) verify(tokenStr string) (*Claims, error) {
	const op = "tokens.verify"

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
			}

			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5*time.Second),
		jwt.WithIssuer(m.issuer),
		jwt.WithAudience(m.audience...),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	if claims.UserLoginID == "" || claims.ID == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return claims, nil
}
