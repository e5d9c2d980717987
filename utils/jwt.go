package utils

import (
	"log"
	"os"
)

// JWTSecretKey is the HMAC key used to verify bearer tokens issued by the
// identity provider. This service never issues tokens, it only verifies them.
var JWTSecretKey string

func InitJWT() {
	// For tests, use a default key if the environment variable isn't set
	if os.Getenv("GO_ENV") == "test" && os.Getenv("JWT_SECRET_KEY") == "" {
		os.Setenv("JWT_SECRET_KEY", "test_secret_key")
	}

	JWTSecretKey = os.Getenv("JWT_SECRET_KEY")
	if JWTSecretKey == "" {
		log.Fatal("JWT Secret Key not set")
	}
}
