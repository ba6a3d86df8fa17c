package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/shoplist/internal/config"
	"github.com/idilsaglam/shoplist/internal/model"
	"github.com/idilsaglam/shoplist/internal/resolver"
	"github.com/idilsaglam/shoplist/internal/store"
	"github.com/idilsaglam/shoplist/internal/store/jsonstore"
)

type harness struct {
	t   *testing.T
	dir string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv(config.EnvVar, filepath.Join(t.TempDir(), "missing.yml"))
	t.Setenv("NO_COLOR", "1")
	return &harness{t: t, dir: t.TempDir()}
}

// run executes one CLI invocation with stdin and returns exit code, stdout and stderr.
func (h *harness) run(stdin string, args ...string) (int, string, string) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	streams := Streams{In: strings.NewReader(stdin), Out: &out, Err: &errOut}
	full := append([]string{"--data-dir", h.dir, "--theme", "mono", "--no-color"}, args...)
	code := Run(full, streams, "test")
	return code, out.String(), errOut.String()
}

// state reads what was persisted by the previous invocations.
func (h *harness) state() *model.AppState {
	h.t.Helper()
	st := store.New(jsonstore.New(h.dir))
	st.Load(context.Background())
	return st.State()
}

func (h *harness) texts() []string {
	var out []string
	for _, it := range h.state().ActiveList().Items {
		out = append(out, it.Text)
	}
	return out
}

func (h *harness) itemID(text string) string {
	h.t.Helper()
	for _, it := range h.state().ActiveList().Items {
		if it.Text == text {
			return resolver.Short(it.ID)
		}
	}
	h.t.Fatalf("no item %q", text)
	return ""
}

func TestFirstRunSeedsDefaultList(t *testing.T) {
	h := newHarness(t)
	code, out, _ := h.run("", "lists")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Meine Liste (0)")

	st := h.state()
	require.Len(t, st.Lists, 1)
	assert.Equal(t, st.Lists[0].ID, st.ActiveListID)
}

func TestAddAndList(t *testing.T) {
	h := newHarness(t)

	code, out, _ := h.run("", "add", "Milch")
	require.Equal(t, 0, code)
	assert.Contains(t, out, `added "Milch"`)
	// the list panel is printed after the change
	assert.Contains(t, out, "[ ] Milch")

	code, _, _ = h.run("", "-q", "add", "2", "kg", "Kartoffeln")
	require.Equal(t, 0, code)
	assert.Equal(t, []string{"2 kg Kartoffeln", "Milch"}, h.texts())

	code, out, _ = h.run("", "ls")
	require.Equal(t, 0, code)
	assert.Less(t, strings.Index(out, "Kartoffeln"), strings.Index(out, "Milch"))
}

func TestAddBlankIsUsageError(t *testing.T) {
	h := newHarness(t)
	code, _, errOut := h.run("", "add", "   ")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "empty text")
	assert.Empty(t, h.texts())
}

func TestCheckAndGroupedListing(t *testing.T) {
	h := newHarness(t)
	h.run("", "-q", "add", "Brot")
	h.run("", "-q", "add", "Milch")

	code, out, _ := h.run("", "-q", "check", h.itemID("Brot"))
	require.Equal(t, 0, code)
	assert.Contains(t, out, "toggled")
	assert.True(t, h.state().ActiveList().Items[1].Checked)

	code, out, _ = h.run("", "--group", "ls")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Einkaufen")
	assert.Contains(t, out, "Gekauft")
	assert.Less(t, strings.Index(out, "Milch"), strings.Index(out, "Gekauft"))
	assert.Less(t, strings.Index(out, "Gekauft"), strings.Index(out, "Brot"))
}

func TestLsWhere(t *testing.T) {
	h := newHarness(t)
	h.run("", "-q", "add", "Vollmilch")
	h.run("", "-q", "add", "Brot")
	h.run("", "-q", "check", h.itemID("Brot"))

	code, out, _ := h.run("", "ls", "--where", `!checked && text contains "milch"`)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Vollmilch")
	assert.NotContains(t, out, "Brot")

	code, _, errOut := h.run("", "ls", "--where", "text +")
	assert.Equal(t, 2, code)
	assert.NotEmpty(t, errOut)
}

func TestUnknownItemID(t *testing.T) {
	h := newHarness(t)
	h.run("", "-q", "add", "Brot")

	code, _, errOut := h.run("", "check", "zzzzzzzz")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, `no item matching "zzzzzzzz"`)
	assert.Contains(t, errOut, "shoplist ls")
}

func TestUnknownCommand(t *testing.T) {
	h := newHarness(t)
	code, _, _ := h.run("", "frobnicate")
	assert.Equal(t, 2, code)
}

func TestEdit(t *testing.T) {
	h := newHarness(t)
	h.run("", "-q", "add", "Milch")
	id := h.itemID("Milch")

	t.Run("with text", func(t *testing.T) {
		code, out, _ := h.run("", "-q", "edit", id, "Hafermilch")
		require.Equal(t, 0, code)
		assert.Contains(t, out, `"Milch" -> "Hafermilch"`)
		assert.Equal(t, []string{"Hafermilch"}, h.texts())
	})

	t.Run("prompted", func(t *testing.T) {
		code, out, _ := h.run("  Sojamilch \n", "-q", "edit", id)
		require.Equal(t, 0, code)
		assert.Contains(t, out, "Artikel bearbeiten [Hafermilch]:")
		assert.Equal(t, []string{"Sojamilch"}, h.texts())
	})

	t.Run("empty line keeps the text", func(t *testing.T) {
		code, out, _ := h.run("\n", "-q", "edit", id)
		require.Equal(t, 0, code)
		assert.Contains(t, out, "unchanged")
		assert.Equal(t, []string{"Sojamilch"}, h.texts())
	})

	t.Run("end of input cancels", func(t *testing.T) {
		code, out, _ := h.run("", "-q", "edit", id)
		require.Equal(t, 0, code)
		assert.Contains(t, out, "unchanged")
		assert.Equal(t, []string{"Sojamilch"}, h.texts())
	})
}

func TestRm(t *testing.T) {
	h := newHarness(t)
	h.run("", "-q", "add", "Brot")
	h.run("", "-q", "add", "Milch")

	code, _, _ := h.run("", "-q", "rm", h.itemID("Brot"))
	require.Equal(t, 0, code)
	assert.Equal(t, []string{"Milch"}, h.texts())
}

func TestClearDone(t *testing.T) {
	h := newHarness(t)

	code, out, _ := h.run("", "clear-done")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "nothing checked")

	h.run("", "-q", "add", "Brot")
	h.run("", "-q", "add", "Milch")
	h.run("", "-q", "check", h.itemID("Brot"))

	code, out, _ = h.run("n\n", "-q", "clear-done")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Alle 1 abgehakten Artikel löschen? [y/N]")
	assert.Contains(t, out, "cancelled")
	assert.Len(t, h.texts(), 2)

	code, out, _ = h.run("ja\n", "-q", "clear-done")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "removed 1 checked item(s)")
	assert.Equal(t, []string{"Milch"}, h.texts())
}

func TestClear(t *testing.T) {
	h := newHarness(t)

	code, out, _ := h.run("", "clear")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "nothing to clear")

	h.run("", "-q", "add", "Brot")
	h.run("", "-q", "add", "Milch")

	code, out, _ = h.run("", "-q", "clear")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "cancelled")
	assert.Len(t, h.texts(), 2)

	code, out, _ = h.run("", "-q", "clear", "--yes")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "removed 2 item(s)")
	assert.Empty(t, h.texts())
}

func TestListCommands(t *testing.T) {
	h := newHarness(t)
	first := h.state().ActiveListID
	h.run("", "-q", "add", "Brot")

	code, out, _ := h.run("", "-q", "new", "Baumarkt")
	require.Equal(t, 0, code)
	assert.Contains(t, out, `created "Baumarkt"`)
	st := h.state()
	require.Len(t, st.Lists, 2)
	assert.Equal(t, "Baumarkt", st.ActiveList().Name)
	assert.Empty(t, st.ActiveList().Items)

	code, _, _ = h.run("", "-q", "new")
	require.Equal(t, 0, code)
	assert.Equal(t, "Neue Liste", h.state().ActiveList().Name)

	code, _, _ = h.run("", "-q", "rename", "Drogerie")
	require.Equal(t, 0, code)
	assert.Equal(t, "Drogerie", h.state().ActiveList().Name)

	code, _, _ = h.run("", "-q", "use", resolver.Short(first))
	require.Equal(t, 0, code)
	assert.Equal(t, first, h.state().ActiveListID)
	assert.Equal(t, []string{"Brot"}, h.texts())

	code, out, _ = h.run("", "lists")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "> Meine Liste (1)")
	assert.Contains(t, out, "Baumarkt (0)")
	assert.Contains(t, out, "Drogerie (0)")
}

func TestDrop(t *testing.T) {
	h := newHarness(t)
	first := h.state().ActiveListID
	h.run("", "-q", "new", "Baumarkt")

	t.Run("declined", func(t *testing.T) {
		code, out, _ := h.run("nein\n", "-q", "drop")
		require.Equal(t, 0, code)
		assert.Contains(t, out, "Diese Liste löschen? (Baumarkt) [y/N]")
		assert.Len(t, h.state().Lists, 2)
	})

	t.Run("active list falls back to the first", func(t *testing.T) {
		code, _, _ := h.run("y\n", "-q", "drop")
		require.Equal(t, 0, code)
		st := h.state()
		require.Len(t, st.Lists, 1)
		assert.Equal(t, first, st.ActiveListID)
	})

	t.Run("last list is replaced by a fresh default", func(t *testing.T) {
		code, _, _ := h.run("", "-q", "drop", "--yes", resolver.Short(first))
		require.Equal(t, 0, code)
		st := h.state()
		require.Len(t, st.Lists, 1)
		assert.NotEqual(t, first, st.Lists[0].ID)
		assert.Equal(t, "Meine Liste", st.Lists[0].Name)
		assert.Equal(t, st.Lists[0].ID, st.ActiveListID)
	})
}

func TestMemoryBackendDoesNotTouchDisk(t *testing.T) {
	h := newHarness(t)
	cfgPath := filepath.Join(t.TempDir(), "shoplist.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("storage:\n  backend: memory\n"), 0o644))

	code, _, _ := h.run("", "--config", cfgPath, "-q", "add", "Brot")
	require.Equal(t, 0, code)
	assert.Empty(t, h.texts())
}

func TestMissingExplicitConfig(t *testing.T) {
	h := newHarness(t)
	code, _, errOut := h.run("", "--config", filepath.Join(t.TempDir(), "nope.yml"), "lists")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "failed to read config")
}

func TestBadThemeIsUsageError(t *testing.T) {
	h := newHarness(t)
	var out, errOut bytes.Buffer
	code := Run([]string{"--data-dir", h.dir, "--theme", "rainbow", "lists"},
		Streams{In: strings.NewReader(""), Out: &out, Err: &errOut}, "test")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut.String(), `unknown theme "rainbow"`)
}

func TestArgumentErrorsAreUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing item id", []string{"check"}},
		{"too many ids", []string{"rm", "aaaa", "bbbb"}},
		{"missing text", []string{"add"}},
		{"extra argument", []string{"lists", "extra"}},
		{"two lists", []string{"use", "aaaa", "bbbb"}},
		{"drop two lists", []string{"drop", "aaaa", "bbbb"}},
		{"unknown flag", []string{"ls", "--bogus"}},
		{"unknown command", []string{"frobnicate"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			code, _, errOut := h.run("", tt.args...)
			assert.Equal(t, 2, code)
			assert.NotEmpty(t, errOut)
		})
	}
}

func TestUnknownCommandSuggests(t *testing.T) {
	h := newHarness(t)
	code, _, errOut := h.run("", "lits")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, `unknown command "lits" for "shoplist"`)
	assert.Contains(t, errOut, "Did you mean this?")
	assert.Contains(t, errOut, "lists")
}

func TestRootWithoutCommandPrintsHelp(t *testing.T) {
	h := newHarness(t)
	code, out, _ := h.run("")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Usage:")

	entries, err := os.ReadDir(h.dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExitCode_OnlyTypedErrorsAreUsage(t *testing.T) {
	var w bytes.Buffer
	assert.Equal(t, 0, exitCode(nil, &w))
	assert.Equal(t, 2, exitCode(usagef("bad input"), &w))
	assert.Equal(t, 2, exitCode(&resolver.NotFoundError{Kind: "item", ShortID: "abcd"}, &w))
	// wording alone does not make a usage error
	assert.Equal(t, 1, exitCode(errors.New("unknown command \"x\""), &w))
	assert.Equal(t, 1, exitCode(errors.New("accepts 1 arg(s), received 2"), &w))
}
