// Package graphql builds a GraphQL schema, with a resolver for every field, from annotated Go structs.
//
// Types are declared with struct tags on blank (_) fields.  A self type carries its own fields:
//
//	type User struct {
//		_     graphql.TagHolder `egg:"type# a registered user"`
//		Name  string
//		First string
//		Last  string
//		_     graphql.Method `egg:"fullName(sep = \" \"):String"`
//	}
//
//	func (u *User) FullName(sep string) string { return u.First + sep + u.Last }
//
// Fields of a type can also be provided by a separate struct, whose exported function fields
// resolve them.  The provider instance is passed to AddType (or Provide):
//
//	type PostType struct {
//		_      *Post `egg:"type"`
//		Author func(post *Post) (*User, error) `egg:",source"`
//	}
//
// Extensions add fields to an existing type, and controllers add fields to the root Query
// and Mutation types:
//
//	type UserPosts struct {
//		_     *User `egg:"extend"`
//		Posts func(ctx context.Context, user *User, first *int) []Post `egg:"posts(first),source"`
//	}
//
//	s, err := graphql.New(graphql.WithLogger(logger)).
//		AddType(User{}, &PostType{...}).
//		AddExtension(&UserPosts{...}).
//		AddQuery(&Query{...}).
//		Build()
//
// The resulting Schema has the schema text (SDL), the validated schema AST and the resolver of each
// field, which an execution engine calls with the source (parent) object, the raw argument values and
// information about the field being resolved.  Missing arguments use the default given in the tag.
//
// Building is done once, by one goroutine.  The built Schema is immutable and its resolvers may be
// called concurrently.
package graphql
