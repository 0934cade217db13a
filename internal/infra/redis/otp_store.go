package redis

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"engagesphere/internal/domain/ports/repository"

	"github.com/go-redis/redis/v8"
)

var _ repository.OTPStore = (*OTPStore)(nil)

// OTPStore keeps one-time codes in Redis under purpose-scoped keys. Expiry is
// handled entirely by the key TTL, so an expired code behaves exactly like a
// code that was never issued.
type OTPStore struct {
	client RedisClient
}

func NewOTPStore(client RedisClient) *OTPStore {
	return &OTPStore{client: client}
}

func (s *OTPStore) codeKey(purpose repository.OTPPurpose, email string) string {
	return fmt.Sprintf("otp:%s:%s", purpose, email)
}

func (s *OTPStore) verifiedKey(purpose repository.OTPPurpose, email string) string {
	return fmt.Sprintf("otp_verified:%s:%s", purpose, email)
}

func (s *OTPStore) Put(ctx context.Context, purpose repository.OTPPurpose, email, code string, ttl time.Duration) error {
	return s.client.Set(ctx, s.codeKey(purpose, email), code, ttl)
}

func (s *OTPStore) Check(ctx context.Context, purpose repository.OTPPurpose, email, code string) (bool, error) {
	key := s.codeKey(purpose, email)
	stored, err := s.client.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return false, nil
	}
	if err := s.client.Del(ctx, key); err != nil {
		return false, err
	}
	return true, nil
}

func (s *OTPStore) MarkVerified(ctx context.Context, purpose repository.OTPPurpose, email string, ttl time.Duration) error {
	return s.client.Set(ctx, s.verifiedKey(purpose, email), "1", ttl)
}

func (s *OTPStore) ConsumeVerified(ctx context.Context, purpose repository.OTPPurpose, email string) (bool, error) {
	key := s.verifiedKey(purpose, email)
	if _, err := s.client.Get(ctx, key); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := s.client.Del(ctx, key); err != nil {
		return false, err
	}
	return true, nil
}
