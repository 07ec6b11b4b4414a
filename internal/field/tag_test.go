package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LiuXiaoZhuang/graphql/internal/field"
)

func TestSplitWithDesc(t *testing.T) {
	splitData := map[string]struct {
		in   string
		exp  []string
		desc string
	}{
		"Empty":         {"", []string{""}, ""},
		"DoubleEmpty":   {",", []string{"", ""}, ""},
		"One":           {"a", []string{"a"}, ""},
		"OneSpace":      {" a ", []string{"a"}, ""},
		"OneQuotes":     {`"a" `, []string{`"a"`}, ""},
		"BracketP2":     {"a(b,c)", []string{"a(b,c)"}, ""},
		"Params2":       {"a(b, c), d(e,f)", []string{"a(b, c)", "d(e,f)"}, ""},
		"Params4":       {"  a,  b,  c,  d(e, f) ", []string{"a", "b", "c", "d(e, f)"}, ""},
		"BracketNested": {"a(b(c), d), e(f)", []string{"a(b(c), d)", "e(f)"}, ""},
		"String":        {`a(b"(c), d), e("f)`, []string{`a(b"(c), d), e("f)`}, ""},
		"String3":       {` a("{]}"), b[1,2,3] `, []string{`a("{]}")`, `b[1,2,3]`}, ""},
		"Escaped":       {`a("x\",y"),b`, []string{`a("x\",y")`, "b"}, ""},
		"Desc0":         {`# abc`, []string{""}, "abc"},
		"Desc2":         {`,z# abc`, []string{"", "z"}, "abc"},
		"DescString":    {`"#"# abc`, []string{`"#"`}, "abc"}, // first # is in quotes, so 2nd # starts desc.
		"DescBrackets":  {`(#)# abc`, []string{`(#)`}, "abc"},
		"NoDescString":  {`"a#b"`, []string{`"a#b"`}, ""},
		"DescWithArgs":  {`f(list=[1,3,6]#arg1), nullable # abc, def`, []string{`f(list=[1,3,6]#arg1)`, "nullable"}, "abc, def"},
	}
	for name, data := range splitData {
		t.Run(name, func(t *testing.T) {
			got, desc, err := field.SplitWithDesc(data.in)
			require.NoError(t, err)
			assert.Equal(t, data.exp, got)
			assert.Equal(t, data.desc, desc)
		})
	}
}

func TestSplitArgs(t *testing.T) {
	got, err := field.SplitArgs(`list=[1,3,6]#arg1,obj={a:"][][["}#arg2`)
	require.NoError(t, err)
	assert.Equal(t, []string{`list=[1,3,6]#arg1`, `obj={a:"][][["}#arg2`}, got)

	for _, bad := range []string{"a(b", "a)", "[", "]", "{", "}", `"abc`} {
		_, err := field.SplitArgs(bad)
		assert.Error(t, err, bad)
	}
}

func TestGetInfoFromTag(t *testing.T) {
	tagData := map[string]struct {
		in       string
		name     string
		typeName string
		args     []string
		argTypes []string
		defaults []string
		argDescs []string
		nullable bool
		source   bool
		method   string
		desc     string
	}{
		"Empty":       {in: ``},
		"Empty2":      {in: `,`},
		"Nullable":    {in: `,nullable`, nullable: true},
		"NameOnly":    {in: `X`, name: "X"},
		"NameNull":    {in: `joe,nullable`, name: "joe", nullable: true},
		"Type":        {in: `unit:Unit`, name: "unit", typeName: "Unit"},
		"TypeNoName":  {in: `:[Int!]`, typeName: "[Int!]"},
		"Source":      {in: `posts,source`, name: "posts", source: true},
		"Method":      {in: `full,method=FullName`, name: "full", method: "FullName"},
		"MethodFirst": {in: `method=Initials`, method: "Initials"},
		"MethodComma": {in: `,method=Initials,nullable`, method: "Initials", nullable: true},
		"Desc":        {in: `a # the A field`, name: "a", desc: "the A field"},
		"Params0":     {in: `f()`, name: "f", args: []string{}, argTypes: []string{}, defaults: []string{}, argDescs: []string{}},
		"Params1":     {in: `(a)`, args: []string{"a"}, argTypes: []string{""}, defaults: []string{""}, argDescs: []string{""}},
		"ParamsSpace": {in: `f( a , bcd )`, name: "f", args: []string{"a", "bcd"}, argTypes: []string{"", ""}, defaults: []string{"", ""}, argDescs: []string{"", ""}},
		"Defaults": {
			in:   `f(one=1,two="number two", list=[1,2]):Int`,
			name: "f", typeName: "Int",
			args: []string{"one", "two", "list"}, argTypes: []string{"", "", ""},
			defaults: []string{"1", `"number two"`, "[1,2]"}, argDescs: []string{"", "", ""},
		},
		"All": {
			in:   `height(h:Float = 1.5 # in metres, unit:Unit=METER):String!,nullable,source # height of a thing`,
			name: "height", typeName: "String!",
			args: []string{"h", "unit"}, argTypes: []string{"Float", "Unit"},
			defaults: []string{"1.5", "METER"}, argDescs: []string{"in metres", ""},
			nullable: true, source: true, desc: "height of a thing",
		},
		"DefaultColon": {
			in:   `join(sep=":")`,
			name: "join", args: []string{"sep"}, argTypes: []string{""}, defaults: []string{`":"`}, argDescs: []string{""},
		},
	}
	for name, data := range tagData {
		t.Run(name, func(t *testing.T) {
			got, err := field.GetInfoFromTag(data.in)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, data.name, got.Name)
			assert.Equal(t, data.typeName, got.GQLTypeName)
			assert.Equal(t, data.args, got.Args)
			assert.Equal(t, data.argTypes, got.ArgTypes)
			assert.Equal(t, data.defaults, got.ArgDefaults)
			assert.Equal(t, data.argDescs, got.ArgDescriptions)
			assert.Equal(t, data.nullable, got.Nullable)
			assert.Equal(t, data.source, got.Source)
			assert.Equal(t, data.method, got.Method)
			assert.Equal(t, data.desc, got.Description)
		})
	}
}

func TestGetInfoFromTagErrors(t *testing.T) {
	errorData := map[string]string{
		"Unknown":    `a,bad`,
		"OldArgs":    `a,args(b)`,
		"Unmatched":  `a(b`,
		"NoBrackets": `f:Int(x)`,
	}
	for name, in := range errorData {
		t.Run(name, func(t *testing.T) {
			_, err := field.GetInfoFromTag(in)
			assert.Error(t, err)
		})
	}

	got, err := field.GetInfoFromTag("-")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetTypeTag(t *testing.T) {
	got, err := field.GetTypeTag(`type=User # a registered user`)
	require.NoError(t, err)
	assert.Equal(t, &field.TypeTag{Kind: field.TypeKeyword, Name: "User", Description: "a registered user"}, got)

	got, err = field.GetTypeTag(`extend`)
	require.NoError(t, err)
	assert.Equal(t, &field.TypeTag{Kind: field.ExtendKeyword}, got)

	got, err = field.GetTypeTag(`# just a comment`)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = field.GetTypeTag(`type=`)
	assert.Error(t, err)
	_, err = field.GetTypeTag(`type,other`)
	assert.Error(t, err)
}
