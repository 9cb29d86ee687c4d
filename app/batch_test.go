package app

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"devconsole/cmd"
	"devconsole/cmd/commands"
	"devconsole/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const script = `# demo script

testString "hello world"
nope
  testCalculate 1 2 3 4
`

func newBatchRegistry() (*cmd.Registry, *log.Hub) {
	hub := log.NewQuietHub()
	hub.SetClock(func() time.Time { return stamp })
	registry := cmd.NewRegistry(cmd.WithLogger(hub))
	registry.Register(commands.NewExample(hub))
	return registry, hub
}

func TestRunScript(t *testing.T) {
	registry, hub := newBatchRegistry()
	var out bytes.Buffer

	err := RunScript(context.Background(), registry, hub, strings.NewReader(script), &out, false)
	require.NoError(t, err)

	assert.Equal(t, []string{
		`[09:30:00]  > testString "hello world"`,
		"[09:30:00]  hello world",
		"[09:30:00]  > nope",
		"[09:30:00]  [CONSOLE] command not found: nope",
		"[09:30:00]  > testCalculate 1 2 3 4",
		"[09:30:00]  10",
	}, strings.Split(strings.TrimSpace(out.String()), "\n"))
	assert.Equal(t, []string{`testString "hello world"`, "testCalculate 1 2 3 4"}, registry.History())
}

func TestRunScriptStrict(t *testing.T) {
	registry, hub := newBatchRegistry()
	var out bytes.Buffer

	err := RunScript(context.Background(), registry, hub, strings.NewReader(script), &out, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, cmd.ErrCommandNotFound)
	assert.Contains(t, err.Error(), "line 4")
	assert.NotContains(t, out.String(), "testCalculate")
}

func TestRunScriptCancelled(t *testing.T) {
	registry, hub := newBatchRegistry()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RunScript(ctx, registry, hub, strings.NewReader(script), &bytes.Buffer{}, false)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, registry.History())
}

func TestRunScriptUnsubscribes(t *testing.T) {
	registry, hub := newBatchRegistry()
	var out bytes.Buffer

	require.NoError(t, RunScript(context.Background(), registry, hub, strings.NewReader(""), &out, false))
	hub.Infof("after")
	assert.Empty(t, out.String())
}
