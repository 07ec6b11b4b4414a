package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/LiuXiaoZhuang/graphql"
)

const (
	APP_ISSUER = "github.com/LiuXiaoZhuang/graphql/example/hackernews"
	APP_SECRET = "GraphQL-is-awesome" // TODO get this from secret store

	userIDClaim = "jti"
	expiryClaim = "exp"
	issuerClaim = "iss"
)

type userKey struct{}

// Authenticate gets the user ID from the JWT token in an HTTP Authorization header value
// and adds it to the context so resolvers can check that the request is authorised.
func Authenticate(ctx context.Context, authHeader string) context.Context {
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ctx // no auth hdr
	}
	token, err := jwt.Parse(authHeader[len("Bearer "):], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(APP_SECRET), nil
	})
	if err != nil || !token.Valid {
		return ctx // token invalid
	}
	ID, ok := token.Claims.(jwt.MapClaims)[userIDClaim].(string)
	if !ok || ID == "" {
		return ctx // no ID
	}
	return context.WithValue(ctx, userKey{}, graphql.ID(ID))
}

// CurrentUser returns the ID of the logged-in user (added by Authenticate)
func CurrentUser(ctx context.Context) (graphql.ID, bool) {
	ID, ok := ctx.Value(userKey{}).(graphql.ID)
	return ID, ok
}

// GetToken returns a JWT token for the given user ID.  This JWT indicates what user
// is logged in and can be used to authorise requests.
func GetToken(userID graphql.ID) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		userIDClaim: string(userID),
		expiryClaim: time.Now().Add(time.Hour * 24).Unix(),
		issuerClaim: APP_ISSUER,
	})
	return token.SignedString([]byte(APP_SECRET))
}
