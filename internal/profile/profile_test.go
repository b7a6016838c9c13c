package profile

import (
	"path/filepath"
	"testing"

	"github.com/specialistvlad/eqgen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinsAreValid(t *testing.T) {
	for _, p := range []Profile{C(), Python()} {
		t.Run(p.Name, func(t *testing.T) {
			assert.NoError(t, Validate(p))
		})
	}
}

func TestBuiltinsAreIndependentValues(t *testing.T) {
	// --- Arrange ---
	p := C()

	// --- Act ---
	p.Plus = "PLUS"

	// --- Assert ---
	assert.Equal(t, " + ", C().Plus)
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	// --- Arrange ---
	p := C()
	p.Plus = ""
	p.FunctionDefinition = "void [NAME]()"
	p.ImplementationExtension = ".h"

	// --- Act ---
	err := Validate(p)

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile 'c' validation failed:")
	assert.Contains(t, err.Error(), "- plus must not be empty")
	assert.Contains(t, err.Error(), "- function_definition must contain [CODE]")
	assert.Contains(t, err.Error(), "- interface and implementation share the extension '.h'")
}

func TestValidate_PiecewiseTemplatesFollowTheConditionalOperatorFlag(t *testing.T) {
	// --- Arrange ---
	p := Python()
	p.HasConditionalOperator = true

	// --- Act ---
	err := Validate(p)

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conditional_operator_if must not be empty")
	assert.NotContains(t, err.Error(), "piecewise_if")
}

func TestRegistry(t *testing.T) {
	t.Run("built-ins are registered", func(t *testing.T) {
		r := NewRegistry()
		assert.Equal(t, []string{"c", "python"}, r.Names())

		p, err := r.Get("python")
		require.NoError(t, err)
		assert.Equal(t, ".py", p.ImplementationExtension)
	})

	t.Run("unknown name lists the available ones", func(t *testing.T) {
		_, err := NewRegistry().Get("fortran")
		require.Error(t, err)
		assert.Equal(t, "unknown profile 'fortran' (available: c, python)", err.Error())
	})

	t.Run("duplicate names are rejected", func(t *testing.T) {
		err := NewRegistry().Register(C())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already registered")
	})
}

func TestLoadFiles(t *testing.T) {
	t.Run("overrides only the attributes present", func(t *testing.T) {
		// --- Arrange ---
		dir := testutil.WriteFiles(t, map[string]string{
			"profiles/c_single.hcl": `
				profile "c_single" {
				  base                  = "c"
				  has_interface         = false
				  implementation_header = "#include <math.h>\n"
				}
			`,
		})
		r := NewRegistry()

		// --- Act ---
		err := r.LoadFiles(testutil.Context(t), dir)

		// --- Assert ---
		require.NoError(t, err)
		p, err := r.Get("c_single")
		require.NoError(t, err)
		assert.Equal(t, "c_single", p.Name)
		assert.False(t, p.HasInterface)
		assert.Equal(t, "#include <math.h>\n", p.ImplementationHeader)
		assert.Equal(t, " + ", p.Plus)
		assert.Equal(t, C().FunctionDefinition, p.FunctionDefinition)

		base, err := r.Get("c")
		require.NoError(t, err)
		assert.True(t, base.HasInterface)
	})

	t.Run("a profile may derive from one loaded earlier", func(t *testing.T) {
		// --- Arrange ---
		dir := testutil.WriteFiles(t, map[string]string{
			"a.hcl": `
				profile "py_spaced" {
				  base  = "python"
				  times = " * "
				}
			`,
			"b.hcl": `
				profile "py_spaced_div" {
				  base   = "py_spaced"
				  divide = " / "
				}
			`,
		})
		r := NewRegistry()

		// --- Act ---
		err := r.LoadFiles(testutil.Context(t), dir)

		// --- Assert ---
		require.NoError(t, err)
		p, err := r.Get("py_spaced_div")
		require.NoError(t, err)
		assert.Equal(t, " * ", p.Times)
		assert.Equal(t, " / ", p.Divide)
	})

	t.Run("errors", func(t *testing.T) {
		testCases := []struct {
			name    string
			content string
			wantErr string
		}{
			{
				name:    "unknown base",
				content: `profile "x" { base = "cobol" }`,
				wantErr: "unknown profile 'cobol'",
			},
			{
				name:    "unknown attribute",
				content: `
					profile "x" {
					  base   = "c"
					  colour = "red"
					}
				`,
				wantErr: "Unsupported argument",
			},
			{
				name:    "invalid result",
				content: `
					profile "x" {
					  base = "c"
					  plus = ""
					}
				`,
				wantErr: "plus must not be empty",
			},
			{
				name:    "shadowing a built-in",
				content: `profile "python" { base = "c" }`,
				wantErr: "already registered",
			},
			{
				name:    "syntax",
				content: `profile "x" {`,
				wantErr: "failed to parse HCL file",
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				dir := testutil.WriteFiles(t, map[string]string{"p.hcl": tc.content})

				err := NewRegistry().LoadFiles(testutil.Context(t), filepath.Join(dir, "p.hcl"))

				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
			})
		}
	})
}
