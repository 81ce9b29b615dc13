package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/jwkset"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	// ErrUnauthenticated — нет заголовка, неверный формат, подпись или истёкший токен (401).
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrMisconfigured — не задан ни JWKS, ни общий секрет (500).
	ErrMisconfigured = errors.New("server auth misconfiguration")

	// Уточнения ErrUnauthenticated: errors.Is(err, ErrUnauthenticated) для них тоже true.
	ErrMissingBearer  = fmt.Errorf("%w: missing or invalid Authorization header", ErrUnauthenticated)
	ErrInvalidPayload = fmt.Errorf("%w: invalid token payload", ErrUnauthenticated)
)

// Verifier проверяет bearer-токен и возвращает subject.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// Claims из токена провайдера идентификации.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// ExtractBearer вытаскивает токен из "Authorization: Bearer <token>".
func ExtractBearer(header string) (string, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", ErrMissingBearer
	}
	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", ErrMissingBearer
	}
	return token, nil
}

// Допустимые алгоритмы для ключей из JWKS.
var asymmetricMethods = []string{"RS256", "RS384", "RS512", "ES256", "ES384", "ES512", "EdDSA"}

// JWKSVerifier проверяет подпись по опубликованному набору ключей.
// Набор кэшируется и периодически обновляется keyfunc.
type JWKSVerifier struct {
	keys   keyfunc.Keyfunc
	parser *jwt.Parser
}

// JWKSURL строит адрес набора ключей из базового URL издателя.
func JWKSURL(issuerBase string) string {
	return strings.TrimRight(issuerBase, "/") + "/auth/v1/.well-known/jwks.json"
}

// Внеплановое обновление при незнакомом kid не чаще раза в этот интервал.
const unknownKIDRefreshEvery = 5 * time.Minute

// NewJWKSVerifier запускает фоновое обновление ключей; ctx ограничивает его жизнь.
// Недоступность URL при старте не ошибка: ключи подтянутся при первом токене.
// timeout ограничивает каждый запрос к JWKS, в том числе внеплановый из Verify.
func NewJWKSVerifier(ctx context.Context, jwksURL string, timeout, refresh time.Duration) (*JWKSVerifier, error) {
	storage, err := jwkset.NewStorageFromHTTP(jwksURL, jwkset.HTTPClientStorageOptions{
		Ctx:                       ctx,
		HTTPTimeout:               timeout,
		RefreshInterval:           refresh,
		NoErrorReturnFirstHTTPReq: true,
		RefreshErrorHandler: func(_ context.Context, err error) {
			zap.L().Warn("jwks refresh failed", zap.String("url", jwksURL), zap.Error(err))
		},
	})
	if err != nil {
		return nil, fmt.Errorf("jwks %s: %w", jwksURL, err)
	}
	client, err := jwkset.NewHTTPClient(jwkset.HTTPClientOptions{
		HTTPURLs: map[string]jwkset.Storage{jwksURL: storage},
		// Внеплановый запрос идёт с этим дедлайном, а не с HTTPTimeout.
		RateLimitWaitMax:  timeout,
		RefreshUnknownKID: rate.NewLimiter(rate.Every(unknownKIDRefreshEvery), 1),
	})
	if err != nil {
		return nil, fmt.Errorf("jwks client %s: %w", jwksURL, err)
	}
	k, err := keyfunc.New(keyfunc.Options{Ctx: ctx, Storage: client})
	if err != nil {
		return nil, fmt.Errorf("keyfunc %s: %w", jwksURL, err)
	}
	return newJWKSVerifier(k), nil
}

func newJWKSVerifier(k keyfunc.Keyfunc) *JWKSVerifier {
	return &JWKSVerifier{
		keys:   k,
		parser: jwt.NewParser(jwt.WithValidMethods(asymmetricMethods), jwt.WithIssuedAt()),
	}
}

func (v *JWKSVerifier) Verify(ctx context.Context, token string) (string, error) {
	return parseSubject(v.parser, token, v.keys.KeyfuncCtx(ctx))
}

// SecretVerifier — старый режим: HMAC с общим секретом, только HS256.
type SecretVerifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewSecretVerifier(secret string) *SecretVerifier {
	return &SecretVerifier{
		secret: []byte(secret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuedAt()),
	}
}

func (v *SecretVerifier) Verify(_ context.Context, token string) (string, error) {
	return parseSubject(v.parser, token, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
}

// MisconfiguredVerifier отвечает ErrMisconfigured на любой токен.
type MisconfiguredVerifier struct{}

func (MisconfiguredVerifier) Verify(context.Context, string) (string, error) {
	return "", ErrMisconfigured
}

func parseSubject(parser *jwt.Parser, token string, keyFunc jwt.Keyfunc) (string, error) {
	claims := &Claims{}
	t, err := parser.ParseWithClaims(token, claims, keyFunc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if !t.Valid {
		return "", fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", ErrInvalidPayload
	}
	return claims.Subject, nil
}
