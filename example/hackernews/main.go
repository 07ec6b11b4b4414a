package main

import (
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/LiuXiaoZhuang/graphql"
)

// NewSchema builds the schema of the example with resolvers that use users and links
func NewSchema(users *Users, links *Links, opts ...graphql.Option) (*graphql.Schema, error) {
	return graphql.New(opts...).
		AddType(User{}, AuthPayload{}, Link{}).
		AddExtension(links.UserLinks()).
		AddQuery(links.Query()).
		AddMutation(users.Controller(), links.Mutation()).
		Build()
}

func main() {
	cfg, err := graphql.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	logger, err := graphql.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer logger.Sync()

	users := NewUsers()
	s, err := NewSchema(users, NewLinks(users), graphql.WithConfig(cfg), graphql.WithLogger(logger))
	if err != nil {
		logger.Fatal("building schema", zap.Error(err))
	}
	logger.Info("built schema", zap.Int("types", len(s.AST.Types)))
	fmt.Print(s.SDL)
}
