package app

import (
	"time"

	"github.com/mealdash/mealdash-backend/internal/pkg/logger"
	"github.com/mealdash/mealdash-backend/internal/utils"
)

type Config struct {
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	Port            string
	UploadDir       string
	RedisAddr       string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	port := utils.GetEnv("PORT", "8080", log)
	uploadDir := utils.GetEnv("UPLOAD_DIR", "uploads", log)
	redisAddr := utils.GetEnv("REDIS_ADDR", "", log)
	return Config{
		JWTSecretKey:    jwtSecretKey,
		AccessTokenTTL:  time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTokenTTLSeconds) * time.Second,
		Port:            port,
		UploadDir:       uploadDir,
		RedisAddr:       redisAddr,
	}
}
