package categorizer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRulesOrder(t *testing.T) {
	rules := DefaultRules()
	require.NotEmpty(t, rules)

	assert.Equal(t, CategoryFood, rules[0].Name)
	assert.Equal(t, CategoryTransport, rules[1].Name)
	assert.Equal(t, CategoryOther, rules[len(rules)-1].Name)
}

func TestLoadRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "categories.yaml")

	content := `categories:
  - name: "Pets"
    keywords:
      - "vet"
      - "petco"
  - name: "Groceries"
    keywords:
      - "grocery"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	rules, err := LoadRules(path)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "Pets", rules[0].Name)
	assert.Equal(t, []string{"vet", "petco"}, rules[0].Keywords)
	assert.Equal(t, "Groceries", rules[1].Name)
}

func TestLoadRulesEmptyPathUsesDefaults(t *testing.T) {
	rules, err := LoadRules("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRules(), rules)
}

func TestLoadRulesErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRules(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("categories: [unclosed"), 0600))
		_, err := LoadRules(path)
		assert.Error(t, err)
	})

	t.Run("no categories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte("categories: []"), 0600))
		_, err := LoadRules(path)
		assert.Error(t, err)
	})
}
