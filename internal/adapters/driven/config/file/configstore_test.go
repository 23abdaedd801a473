package file

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", home)
	}

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".nutri", "config.toml"), store.Path())
}

func TestConfigStore_TypedValuesSurviveReload(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("search.group_by_category", false))
	require.NoError(t, store.Set("search.limit", 25))
	require.NoError(t, store.Set("web.rate_limit", 2.5))
	require.NoError(t, store.Set("web.burst", 4))
	require.NoError(t, store.Set("catalog.backend", "sqlite"))
	require.NoError(t, store.Set("search.fields", []string{"title", "description"}))

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, exists := reloaded.Get("search.group_by_category")
	assert.True(t, exists)
	assert.False(t, reloaded.GetBool("search.group_by_category"))
	assert.Equal(t, 25, reloaded.GetInt("search.limit"))
	assert.Equal(t, 2.5, reloaded.GetFloat("web.rate_limit"))
	assert.Equal(t, 4.0, reloaded.GetFloat("web.burst"))
	assert.Equal(t, "sqlite", reloaded.GetString("catalog.backend"))
	assert.Equal(t, []string{"title", "description"}, reloaded.GetStringSlice("search.fields"))
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("catalog.backend", "json"))
	require.NoError(t, store.Set("catalog.path", "/data/foods.json"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[catalog]")
	assert.Contains(t, string(data), "backend = 'json'")
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := "[search]\npresentation = 'modal_dialog'\ndebounce_ms = 150\n\n[web]\naddr = ':9090'\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "modal_dialog", store.GetString("search.presentation"))
	assert.Equal(t, 150, store.GetInt("search.debounce_ms"))
	assert.Equal(t, ":9090", store.GetString("web.addr"))
}

func TestConfigStore_WrongTypesReturnZero(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("web.addr", ":8080"))

	assert.Zero(t, store.GetInt("web.addr"))
	assert.Zero(t, store.GetFloat("web.addr"))
	assert.False(t, store.GetBool("web.addr"))
	assert.Nil(t, store.GetStringSlice("web.addr"))
	assert.Empty(t, store.GetString("missing"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not enforced on windows")
	}
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("[search\nlimit = "), 0600))

	_, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("search.limit", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("search.limit")
		}()
	}
	wg.Wait()

	_, ok := store.Get("search.limit")
	assert.True(t, ok)
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"search.limit":       10,
		"search.debounce_ms": 300,
		"web":                "flat",
		"web.addr":           ":8080",
	})

	search, ok := nested["search"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 10, search["limit"])
	assert.Equal(t, "flat", nested["web"])
	assert.Equal(t, ":8080", nested["web.addr"])

	assert.Equal(t, map[string]any{
		"search.limit":       10,
		"search.debounce_ms": 300,
		"web":                "flat",
		"web.addr":           ":8080",
	}, flattenMap(nested, ""))
}
