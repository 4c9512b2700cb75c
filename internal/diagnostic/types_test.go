package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"dynadoc/internal/common"
)

func TestDiagnostics_Notify(t *testing.T) {
	var d Diagnostics

	d.Notify(LevelAdmonition, "circular reference")
	d.Notify(LevelError, "cannot reconstruct")
	d.Notify(LevelAlert, "look here")

	assert.Len(t, d.Admonitions, 1)
	assert.Len(t, d.Errors, 1)
	assert.Len(t, d.Alerts, 1)
	assert.Equal(t, 3, d.Len())
	assert.True(t, d.HasErrors())
	assert.Equal(t, "look here", d.All()[0].Message)
}

func TestDiagnostic_String(t *testing.T) {
	diag := Diagnostic{Level: LevelError, Message: "Fragment 'contxt' not in provided table. Did you mean: context?"}

	assert.Equal(t, "Fragment 'contxt' not in provided table. Did you mean: context?", diag.String())
}

func TestLevel_StringAndParse(t *testing.T) {
	for _, l := range []Level{LevelAdmonition, LevelError, LevelAlert} {
		parsed, err := ParseLevel(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, parsed)
	}

	_, err := ParseLevel("warning")
	require.Error(t, err)
	assert.Equal(t, common.UnknownStr, Level(9).String())
}

func TestNotifiers(t *testing.T) {
	var got []string
	collect := NotifierFunc(func(level Level, message string) {
		got = append(got, level.String()+":"+message)
	})

	Tee(collect, Discard).Notify(LevelError, "a")
	Threshold(LevelError, collect).Notify(LevelAdmonition, "dropped")
	Threshold(LevelError, collect).Notify(LevelAlert, "b")

	assert.Equal(t, []string{"error:a", "alert:b"}, got)
}

func TestZapNotifier(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	n := NewZapNotifier(zap.New(core))

	n.Notify(LevelAdmonition, "circular")
	n.Notify(LevelError, "broken")
	n.Notify(LevelAlert, "heads up")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
	assert.Equal(t, zap.WarnLevel, entries[2].Level)
	assert.Equal(t, "broken", entries[1].Message)

	assert.NotPanics(t, func() { NewZapNotifier(nil).Notify(LevelError, "x") })
}
