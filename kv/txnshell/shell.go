package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/chzyer/readline"
	"github.com/pingcap-incubator/tinytxn/kv/config"
	"github.com/pingcap-incubator/tinytxn/kv/server"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"
)

// lineSource yields input lines. ReadLine returns io.EOF when there is no more input.
type lineSource interface {
	ReadLine() (string, error)
	Close() error
}

// closeOnce lets the signal handler and the normal shutdown path both close a source.
type closeOnce struct {
	lineSource
	once sync.Once
	err  error
}

func (c *closeOnce) Close() error {
	c.once.Do(func() {
		c.err = c.lineSource.Close()
	})
	return c.err
}

type readlineSource struct {
	l *readline.Instance
}

func newReadlineSource(conf *config.Config) (*readlineSource, error) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          conf.Prompt,
		HistoryFile:     conf.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "^D",
	})
	if err != nil {
		return nil, errors.Annotate(err, "open terminal")
	}
	return &readlineSource{l: l}, nil
}

func (s *readlineSource) ReadLine() (string, error) {
	line, err := s.l.Readline()
	if err == readline.ErrInterrupt {
		return "", io.EOF
	}
	return line, err
}

func (s *readlineSource) Close() error {
	return s.l.Close()
}

// scriptSource reads lines from a file or stdin without any terminal handling.
type scriptSource struct {
	scanner *bufio.Scanner
	closer  io.Closer
}

func newScriptSource(r io.ReadCloser) *scriptSource {
	return &scriptSource{scanner: bufio.NewScanner(r), closer: r}
}

func openScript(path string) (*scriptSource, error) {
	if path == "-" {
		return newScriptSource(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Annotatef(err, "open script %s", path)
	}
	return newScriptSource(f), nil
}

func (s *scriptSource) ReadLine() (string, error) {
	if s.scanner.Scan() {
		return s.scanner.Text(), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", errors.Trace(err)
	}
	return "", io.EOF
}

func (s *scriptSource) Close() error {
	return s.closer.Close()
}

// shell feeds lines to the server until END, end of input or cancellation, and prints every non-empty result.
type shell struct {
	svr    *server.Server
	out    io.Writer
	echo   bool
	prompt string
}

func (sh *shell) run(ctx context.Context, src lineSource) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := src.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if sh.echo {
			fmt.Fprintf(sh.out, "%s%s\n", sh.prompt, line)
		}

		resp, err := sh.svr.Execute(line)
		if err != nil {
			log.Debug("line rejected", zap.String("line", line), zap.Error(err))
		}
		if resp.ClearScreen {
			readline.ClearScreen(sh.out)
		}
		if resp.Output != "" {
			fmt.Fprintln(sh.out, resp.Output)
		}
		if resp.End {
			return nil
		}
	}
}
