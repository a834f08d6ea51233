package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenExpired = errors.New("token expired")

type Claims struct {
	Actor Actor `json:"actor"`
	jwt.RegisteredClaims
}

func IssueToken(secret string, a Actor, ttl time.Duration, now time.Time) (string, error) {
	claims := Claims{
		Actor: a,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.RegistryNo,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(secret, tokenString string) (Actor, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Actor{}, ErrTokenExpired
		}
		return Actor{}, err
	}
	if !token.Valid || claims.Actor.RegistryNo == "" {
		return Actor{}, errors.New("invalid token claims")
	}
	return claims.Actor, nil
}
