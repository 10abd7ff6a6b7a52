package infrastructures

import "time"

type AuthConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
}

func NewAuthConfig() AuthConfig {
	return AuthConfig{
		SecretKey:      Config.SECRET_KEY,
		AccessTokenTTL: time.Duration(Config.ACCESS_TOKEN_EXPIRE_MINUTES) * time.Minute,
	}
}
