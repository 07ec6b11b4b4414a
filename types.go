package graphql

// types.go has standard GraphQL types like "ID" as well as custom scalars like "Time"

import (
	"fmt"
	"math/big"
	"time"

	"github.com/LiuXiaoZhuang/graphql/internal/binder"
	"github.com/LiuXiaoZhuang/graphql/internal/container"
	"github.com/LiuXiaoZhuang/graphql/internal/field"
	"github.com/LiuXiaoZhuang/graphql/internal/schema"
	"github.com/LiuXiaoZhuang/graphql/internal/typegen"
)

// ID is used when a standard GraphQL ID type is required.
// An ID can be used like any other scalar (Int, etc) as a field type, resolver argument type etc.
// It is typically used for a field that uniquely identifies an object, but it is up to the server
// to guarantee uniqueness. It is stored as a string but can be decoded from an integer or string.
type ID = field.ID

// TagHolder is used to declare a field with name "_" (underscore) in a struct to allow metadata (tags)
// to be attached to a struct.  (Metadata can only be attached to fields, so we use an "_" field
// to allow attaching metadata to the parent struct.)  A struct with a TagHolder field tagged
// `egg:"type"` is a self type: its own fields and methods make up the fields of the GraphQL type.
// Note: An empty struct will not add to the size of the containing struct if declared at the start.
type TagHolder = field.TagHolder

// Method is used to declare a "_" field whose tag describes a GraphQL field that is resolved by
// calling a method, eg `egg:"fullName(sep):String,method=FullName"`.  If the method option is
// not given the method name is the field name with the 1st letter capitalised.
type Method = field.Method

type (
	// ResolveInfo has information about the field being resolved that is supplied by the execution engine
	ResolveInfo = binder.ResolveInfo

	// Resolver is called by the execution engine to get the value of a field
	Resolver = binder.Resolver
)

// Errors
type (
	MissingArgumentError             = binder.MissingArgumentError
	InvalidFieldConfigurationError   = binder.InvalidFieldConfigurationError
	MissingTypeAnnotationError       = typegen.MissingTypeAnnotationError
	MissingExtendTypeAnnotationError = typegen.MissingExtendTypeAnnotationError
	TypeConflictError                = typegen.TypeConflictError
	DuplicateFieldError              = schema.DuplicateFieldError
	DuplicateTypeError               = schema.DuplicateTypeError
	NotFoundError                    = container.NotFoundError
)

// ErrFrozen is returned when a type is changed after the schema has been built
var ErrFrozen = schema.ErrFrozen

// Time is a custom scalar for representing a point in time
type Time time.Time

// timeFormat represents how a Time is encoded in a string
const timeFormat = time.RFC3339 // GraphQL spec says that any "Time" ext. scalar type should use this format (ISO-8601)

// UnmarshalGraphQL is called to decode a string argument to a Time
func (pt *Time) UnmarshalGraphQL(in string) error {
	tmp, err := time.Parse(timeFormat, in)
	if err != nil {
		return fmt.Errorf("%w error in UnmarshalGraphQL for custom scalar Time", err)
	}
	*pt = Time(tmp) // cast from time.Time to graphql.Time
	return nil
}

// MarshalGraphQL encodes a Time object to a string
func (t Time) MarshalGraphQL() (string, error) {
	return time.Time(t).Format(timeFormat), nil
}

// BigInt is a custom scalar for representing a big.Int
// Note that we embed a big.Int so that we can use the standard big.Int methods
type BigInt struct{ big.Int }

// UnmarshalGraphQL is called to decode a string argument to a BigInt
// Note that MarshalGraphQL is not needed to encode a BigInt (big.Int.String() is used)
func (bi *BigInt) UnmarshalGraphQL(in string) error {
	if err := bi.Int.UnmarshalText([]byte(in)); err != nil {
		return fmt.Errorf("%w error in UnmarshalGraphQL for custom scalar BigInt", err)
	}
	return nil
}
