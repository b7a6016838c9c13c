package report

import (
	"testing"

	"github.com/specialistvlad/eqgen/internal/analyser"
	"github.com/specialistvlad/eqgen/internal/ast"
	"github.com/specialistvlad/eqgen/internal/model"
	. "github.com/specialistvlad/eqgen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fastjson"
)

func render(t *testing.T, m *model.Model) *fastjson.Value {
	t.Helper()
	res := analyser.Analyse(Context(t), m, analyser.Options{})
	doc, err := Render(Context(t), res)
	require.NoError(t, err)
	require.Equal(t, byte('\n'), doc[len(doc)-1])

	v, err := fastjson.ParseBytes(doc)
	require.NoError(t, err)
	return v
}

func texts(vs []*fastjson.Value) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v.GetStringBytes())
	}
	return out
}

func TestRender_Membrane(t *testing.T) {
	// --- Arrange ---
	m := Membrane()

	// --- Act ---
	doc := render(t, m)

	// --- Assert ---
	assert.Equal(t, "membrane", string(doc.GetStringBytes("model")))
	assert.True(t, doc.GetBool("valid"))
	assert.Empty(t, doc.GetArray("issues"))

	var kinds = map[string]string{}
	for _, v := range doc.GetArray("variables") {
		kinds[string(v.GetStringBytes("component"))+"."+string(v.GetStringBytes("name"))] = string(v.GetStringBytes("kind"))
	}
	assert.Equal(t, "voi", kinds["membrane.t"])
	assert.Equal(t, "state", kinds["membrane.V"])
	assert.Equal(t, "state", kinds["gate.n"])
	assert.Equal(t, "constant", kinds["membrane.Cm"])
	assert.Equal(t, "computed_constant", kinds["membrane.E_L"])
	assert.Equal(t, "algebraic", kinds["system.p"])
	assert.NotContains(t, kinds, "gate.V", "equivalent variables are listed under their primary")

	for _, v := range doc.GetArray("variables") {
		if string(v.GetStringBytes("name")) == "V" {
			assert.Equal(t, []string{"gate.V"}, texts(v.GetArray("equivalents")))
			assert.Equal(t, "-0.075", string(v.GetStringBytes("initial_value")))
		}
	}

	groups := doc.GetArray("groups")
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"system.p", "system.q"}, texts(groups[0].GetArray("unknowns")))
	assert.Len(t, groups[0].GetArray("equations"), 2)

	for _, p := range analyser.Phases {
		assert.NotEmpty(t, doc.GetArray("phases", p.String()), p.String())
	}
	for _, e := range doc.GetArray("equations") {
		if string(e.GetStringBytes("type")) == "nla_residual" {
			assert.Equal(t, 0, e.GetInt("group"))
			assert.Nil(t, e.Get("defines"))
		}
	}
}

func TestRender_ReportsIssues(t *testing.T) {
	// --- Arrange ---
	m := model.New("broken")
	c := m.AddComponent("main")
	a := c.AddVariable("a", "dimensionless").SetInitialLiteral("1.0")
	x := c.AddVariable("x", "dimensionless")
	Eq(c, V(x), V(a))
	Eq(c, V(x), Op(ast.Times, N("2.0"), V(a)))

	// --- Act ---
	doc := render(t, m)

	// --- Assert ---
	assert.False(t, doc.GetBool("valid"))
	issues := doc.GetArray("issues")
	var found *fastjson.Value
	for _, i := range issues {
		if string(i.GetStringBytes("kind")) == "overconstrained" {
			found = i
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, "error", string(found.GetStringBytes("severity")))
	assert.Contains(t, string(found.GetStringBytes("message")), "already computed")
}

func TestValidator(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	valid := `{
		"model": "m", "valid": true,
		"variables": [{"name": "x", "component": "main", "units": "dimensionless", "kind": "algebraic", "index": 0, "equivalents": []}],
		"equations": [],
		"phases": {"initialise": [], "compute_computed_constants": [], "compute_rates": [], "compute_variables": []},
		"groups": [],
		"issues": []
	}`

	testCases := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{name: "valid", doc: valid},
		{
			name:    "unknown kind",
			doc:     `{"model": "m", "valid": true, "variables": [{"name": "x", "component": "main", "units": "", "kind": "parameter", "index": 0, "equivalents": []}], "equations": [], "phases": {"initialise": [], "compute_computed_constants": [], "compute_rates": [], "compute_variables": []}, "groups": [], "issues": []}`,
			wantErr: true,
		},
		{
			name:    "unknown field",
			doc:     `{"model": "m", "valid": true, "extra": 1, "variables": [], "equations": [], "phases": {"initialise": [], "compute_computed_constants": [], "compute_rates": [], "compute_variables": []}, "groups": [], "issues": []}`,
			wantErr: true,
		},
		{
			name:    "missing field",
			doc:     `{"model": "m", "valid": true, "variables": [], "equations": [], "groups": [], "issues": []}`,
			wantErr: true,
		},
		{
			name:    "negative index",
			doc:     `{"model": "m", "valid": true, "variables": [], "equations": [{"id": -1, "type": "rate", "phase": "compute_rates", "equation": "x"}], "phases": {"initialise": [], "compute_computed_constants": [], "compute_rates": [], "compute_variables": []}, "groups": [], "issues": []}`,
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate([]byte(tc.doc))
			if tc.wantErr {
				assert.Error(t, err)
				assert.NotEmpty(t, v.Problems([]byte(tc.doc)))
				return
			}
			assert.NoError(t, err)
			assert.Empty(t, v.Problems([]byte(tc.doc)))
		})
	}
}
