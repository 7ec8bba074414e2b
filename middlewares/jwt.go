package middlewares

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/CPU-commits/Intranet_BCourseStats/res"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken  = errors.New("missing bearer token")
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidFormat = errors.New("invalid token format")
)

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrInvalidFormat
	}
	return parts[1], nil
}

func validateToken(tokenString string, secretKey []byte) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// JWTMiddleware requires an HS256 bearer token signed with secretKey. An
// empty secret leaves the route open.
func JWTMiddleware(secretKey string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if secretKey == "" {
			ctx.Next()
			return
		}
		tokenString, err := bearerToken(ctx.GetHeader("Authorization"))
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, &res.Response{
				Success: false,
				Message: err.Error(),
			})
			return
		}
		claims, err := validateToken(tokenString, []byte(secretKey))
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, &res.Response{
				Success: false,
				Message: "Unauthorized",
			})
			return
		}
		ctx.Set("claims", claims)
		ctx.Next()
	}
}
