package utils

import (
	"context"
	"fmt"
	"time"

	DB "Backend-FormCraft/src/database"

	"github.com/redis/go-redis/v9"
)

var Ctx = context.Background()

// Refresh tokens and the access-token blacklist live in Redis. All helpers
// degrade gracefully when Redis is not configured (development mode): store
// and delete become no-ops, validation passes.

func StoreRefreshToken(userID, refreshToken string, expiresIn time.Duration) error {
	if DB.RedisClient == nil {
		return nil
	}

	key := fmt.Sprintf("refresh_token:%s", userID)
	if err := DB.RedisClient.Set(Ctx, key, refreshToken, expiresIn).Err(); err != nil {
		return fmt.Errorf("failed to store refresh token: %v", err)
	}
	return nil
}

func ValidateRefreshToken(userID, refreshToken string) (bool, error) {
	if DB.RedisClient == nil {
		return true, nil
	}

	key := fmt.Sprintf("refresh_token:%s", userID)
	storedToken, err := DB.RedisClient.Get(Ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get refresh token: %v", err)
	}

	return storedToken == refreshToken, nil
}

func DeleteRefreshToken(userID string) error {
	if DB.RedisClient == nil {
		return nil
	}

	key := fmt.Sprintf("refresh_token:%s", userID)
	if err := DB.RedisClient.Del(Ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete refresh token: %v", err)
	}
	return nil
}

func BlacklistToken(token string, expiresIn time.Duration) error {
	if DB.RedisClient == nil {
		return nil
	}

	key := fmt.Sprintf("blacklist:%s", token)
	if err := DB.RedisClient.Set(Ctx, key, "1", expiresIn).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %v", err)
	}
	return nil
}

func IsTokenBlacklisted(token string) (bool, error) {
	if DB.RedisClient == nil {
		return false, nil
	}

	key := fmt.Sprintf("blacklist:%s", token)
	_, err := DB.RedisClient.Get(Ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to check blacklist: %v", err)
	}
	return true, nil
}
