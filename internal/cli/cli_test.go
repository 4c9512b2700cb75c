package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dynadoc/internal/config"
)

func TestMain(m *testing.M) {
	color.NoColor = true

	os.Exit(m.Run())
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()

	assert.Equal(t, "dynadoc", cmd.Use)
	assert.NotEmpty(t, cmd.Short)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}

	for _, expected := range []string{"version", "render", "check", "dump", "schema", "init"} {
		assert.Contains(t, names, expected)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)

	assert.Contains(t, out, "dynadoc version: dev")
	assert.Contains(t, out, "Go version: go")
}

func TestRender_Symbol(t *testing.T) {
	out, _, err := execute(t, "render", "dynadoc/store", "--style", "pep8", "--symbol", "ParseStatus")
	require.NoError(t, err)

	assert.Equal(t, "dynadoc/store.ParseStatus\n"+
		"=========================\n"+
		"ParseStatus parses a status name, ignoring case.\n"+
		"\n"+
		":argument name: \n"+
		":type name: string\n"+
		":rtype: store.OrderStatus\n"+
		":raises store.ErrUnknownStatus: when name is not a status.\n"+
		"\n", out)
}

func TestRender_NestedSymbol(t *testing.T) {
	out, _, err := execute(t, "render", "dynadoc/store", "-s", "Order.Validate", "--no-preserve")
	require.NoError(t, err)

	assert.Contains(t, out, "dynadoc/store.Order.Validate\n")
	assert.Contains(t, out, ":raises store.ErrEmptyOrder: when the order has no items.")
	assert.NotContains(t, out, "Validate checks that the order can be placed.")
}

func TestRender_UnknownSymbol(t *testing.T) {
	_, _, err := execute(t, "render", "dynadoc/store", "-s", "Order.Missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `dynadoc/store.Order has no member "Missing"`)
}

func TestRender_Targets(t *testing.T) {
	out, _, err := execute(t, "render", "dynadoc/store", "--targets", "function")
	require.NoError(t, err)

	assert.Contains(t, out, "dynadoc/store\n=============\nPackage store is a small order-management model.")
	assert.Contains(t, out, "dynadoc/store.Visit\n")
	assert.Contains(t, out, "dynadoc/store.Paginate\n")
	assert.NotContains(t, out, "dynadoc/store.Product\n")
	assert.NotContains(t, out, "dynadoc/store.Order.Total\n")
}

func TestRender_Classes(t *testing.T) {
	out, stderr, err := execute(t, "render", "dynadoc/store", "--targets", "class,function")
	require.NoError(t, err)

	assert.Contains(t, out, "dynadoc/store.Product\n")
	assert.Contains(t, out, ":ivar SKU: Stock keeping unit.")
	assert.NotContains(t, out, "Supplier")
	assert.Contains(t, out, "dynadoc/store.Order.Total\n")
	assert.Contains(t, stderr, "Fragment 'description' not in provided table.")
}

func TestRender_EnvironmentOverride(t *testing.T) {
	t.Setenv("DYNADOC_STYLE", "fancy")

	_, _, err := execute(t, "render", "dynadoc/store")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown render style "fancy"`)
}

func TestCheck(t *testing.T) {
	out, _, err := execute(t, "check", "dynadoc/store", "--targets", "class")
	require.ErrorIs(t, err, ErrProblems)

	assert.Contains(t, out, "error")
	assert.Contains(t, out, "Fragment 'description' not in provided table.")
	assert.Contains(t, out, "0 alerts, 1 error, 0 admonitions")
}

func TestCheck_WithConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dynadoc.yaml")

	f := config.Default()
	f.Introspection.Targets = []string{"class"}
	f.Fragments = map[string]string{"description": "Long-form product description."}
	require.NoError(t, config.WriteFile(path, f))

	out, _, err := execute(t, "check", "dynadoc/store", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "no problems found")
}

func TestCheck_NotifyThreshold(t *testing.T) {
	out, _, err := execute(t, "check", "dynadoc/store", "--targets", "class", "--notify", "alert")
	require.NoError(t, err)
	assert.Contains(t, out, "no problems found")
}

func TestDump(t *testing.T) {
	out, _, err := execute(t, "dump", "dynadoc/store", "-s", "ParseStatus")
	require.NoError(t, err)

	assert.Contains(t, out, "dynadoc/store.ParseStatus\n")
	assert.Contains(t, out, "ArgumentInformation")
	assert.Contains(t, out, "ReturnInformation")
	assert.Contains(t, out, "ExceptionInformation")
}

func TestSchema(t *testing.T) {
	out, _, err := execute(t, "schema")
	require.NoError(t, err)

	assert.Contains(t, out, `"title": "dynadoc configuration"`)
	assert.Contains(t, out, `"visibility_order"`)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dynadoc.yaml")

	out, _, err := execute(t, "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "created "+path)

	loaded, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), loaded)

	_, _, err = execute(t, "init", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, "init", path, "--force")
	require.NoError(t, err)
}
