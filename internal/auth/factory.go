package auth

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Options — настройки проверки токенов.
type Options struct {
	// Базовый URL издателя (например, https://xxx.supabase.co). Включает режим JWKS.
	IssuerBase string
	// Общий HMAC-секрет, используется только если IssuerBase пуст.
	Secret string

	JWKSTimeout time.Duration
	JWKSRefresh time.Duration
}

// New выбирает режим проверки. JWKS важнее секрета; если нет ни того, ни другого,
// возвращается MisconfiguredVerifier, и все защищённые запросы получают 500.
func New(ctx context.Context, opts Options) (Verifier, error) {
	switch {
	case opts.IssuerBase != "":
		url := JWKSURL(opts.IssuerBase)
		v, err := NewJWKSVerifier(ctx, url, opts.JWKSTimeout, opts.JWKSRefresh)
		if err != nil {
			return nil, err
		}
		zap.L().Info("auth: remote key set mode", zap.String("jwks_url", url))
		return v, nil
	case opts.Secret != "":
		zap.L().Info("auth: shared secret mode (HS256)")
		return NewSecretVerifier(opts.Secret), nil
	default:
		zap.L().Error("auth: set SUPABASE_URL (for JWKS) or SUPABASE_JWT_SECRET (legacy)")
		return MisconfiguredVerifier{}, nil
	}
}
