package main

import (
	"bytes"
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chzyer/readline"
	"github.com/pingcap-incubator/tinytxn/kv/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runLines(t *testing.T, sh *shell, script string) string {
	var out bytes.Buffer
	sh.out = &out
	src := newScriptSource(ioutil.NopCloser(strings.NewReader(script)))
	require.NoError(t, sh.run(context.Background(), src))
	return out.String()
}

func TestShellScript(t *testing.T) {
	sh := &shell{svr: server.NewServer()}
	out := runLines(t, sh, `SET a 10
BEGIN
SET a 20
GET a
ROLLBACK
GET a
ROLLBACK
FOO
END
GET a
`)
	assert.Equal(t, "20\n10\nNO TRANSACTIONS\nNot a command!\n", out)
}

func TestShellEcho(t *testing.T) {
	sh := &shell{svr: server.NewServer(), echo: true, prompt: "> "}
	out := runLines(t, sh, "SET a 1\nGET a\n")
	assert.Equal(t, "> SET a 1\n> GET a\n1\n", out)
}

func TestShellClearScreen(t *testing.T) {
	sh := &shell{svr: server.NewServer()}
	out := runLines(t, sh, "clear\n")
	var want bytes.Buffer
	readline.ClearScreen(&want)
	assert.Equal(t, want.String(), out)
}

func TestShellCancelled(t *testing.T) {
	sh := &shell{svr: server.NewServer(), out: ioutil.Discard}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := newScriptSource(ioutil.NopCloser(strings.NewReader("SET a 1\n")))
	require.NoError(t, sh.run(ctx, src))
	assert.Empty(t, sh.svr.Variables())
}

type countingSource struct {
	lineSource
	closed int
}

func (s *countingSource) Close() error {
	s.closed++
	return nil
}

func TestCloseOnce(t *testing.T) {
	inner := &countingSource{}
	src := &closeOnce{lineSource: inner}
	require.NoError(t, src.Close())
	require.NoError(t, src.Close())
	assert.Equal(t, 1, inner.closed)
}

func TestHandleSignalStopsWithContext(t *testing.T) {
	inner := &countingSource{}
	ctx, cancel := context.WithCancel(context.Background())
	handleSignal(ctx, cancel, inner)
	cancel()
	// The handler returns without touching the source when the session ends normally.
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, 0, inner.closed)
}

func TestOpenScript(t *testing.T) {
	dir, err := ioutil.TempDir("", "txnshell")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "script.txt")
	require.NoError(t, ioutil.WriteFile(path, []byte("SET a 5\nNUMEQUALTO 5\n"), 0644))

	src, err := openScript(path)
	require.NoError(t, err)
	defer src.Close()

	var out bytes.Buffer
	sh := &shell{svr: server.NewServer(), out: &out}
	require.NoError(t, sh.run(context.Background(), src))
	assert.Equal(t, "1\n", out.String())

	_, err = openScript(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}
