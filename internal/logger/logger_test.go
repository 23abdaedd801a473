package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func resetLogger() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer resetLogger()

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_WhenVerbose(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("test message %s", "arg")

	out := buf.String()
	assert.Contains(t, out, "DEBU")
	assert.Contains(t, out, "nutri")
	assert.Contains(t, out, "test message arg")
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("test message")

	assert.Zero(t, buf.Len())
}

func TestSection(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Section("Search")

	assert.Contains(t, buf.String(), "=== Search ===")
}

func TestInfoAndWarn_RespectVerbose(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)

	Info("hidden")
	Warn("hidden")
	assert.Zero(t, buf.Len())

	SetVerbose(true)
	Info("loaded %d foods", 12)
	Warn("catalog %s missing", "foods.json")

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "loaded 12 foods")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "catalog foods.json missing")
}

func TestError_AlwaysPrinted(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Error("listen failed: %v", "address in use")

	assert.Contains(t, buf.String(), "ERRO")
	assert.Contains(t, buf.String(), "listen failed: address in use")
}

func TestOutput(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	assert.Same(t, &buf, Output())
}
