package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-shellwords"
	"github.com/pingcap-incubator/tinytxn/kv/storage"
	"github.com/pingcap-incubator/tinytxn/kv/transaction"
	"github.com/pingcap-incubator/tinytxn/kv/transaction/commands"
	"github.com/pingcap/errcode"
	"github.com/pingcap/log"
	"go.uber.org/zap"
)

// ResultNotACommand is displayed for a name missing from the command table.
const ResultNotACommand = "Not a command!"

// Response is what the shell should do after a line has been executed.
type Response struct {
	// Output is the text to display. Empty means nothing is displayed.
	Output string
	// End is set when the session should terminate.
	End bool
	// ClearScreen asks the shell to clear the terminal before displaying Output.
	ClearScreen bool
}

// Server owns one variable store and the transaction stack in front of it. It is the single owner of both, so every
// command must be executed from one goroutine; only Stats may be called concurrently.
type Server struct {
	store *storage.VariableStore
	stack *transaction.Stack
	stats *stats
}

func NewServer() *Server {
	store := storage.NewVariableStore()
	return &Server{
		store: store,
		stack: transaction.NewStack(store),
		stats: newStats(),
	}
}

// metaHandler implements an interpreter command that is not part of the transactional command set.
type metaHandler func(server *Server, args []string) (Response, error)

var metaHandlers = map[string]metaHandler{
	"DUMPSTACK":  dumpStack,
	"CLEARSTACK": clearStack,
	"CLEAR":      clearScreen,
	"HELP":       help,
}

// Execute tokenizes and runs one input line. Blank lines do nothing. The returned error, if any, describes why the
// command failed; the Response still carries the text to display.
func (server *Server) Execute(line string) (Response, error) {
	args, err := shellwords.Parse(line)
	if err != nil {
		server.stats.invalidCommands.Inc()
		return Response{Output: commands.ResultInvalidArguments}, errcode.NewInvalidInputErr(err)
	}
	if len(args) == 0 {
		return Response{}, nil
	}

	name := strings.ToUpper(args[0])
	if handler, ok := metaHandlers[name]; ok {
		log.Debug("execute meta command", zap.String("name", name))
		return handler(server, args[1:])
	}

	kind, ok := commands.ParseKind(name)
	if !ok {
		server.stats.invalidCommands.Inc()
		return Response{Output: ResultNotACommand}, commands.UnknownCommandErr{Name: args[0]}
	}
	if kind == commands.End {
		log.Debug("session ended")
		return Response{End: true}, nil
	}

	output, err := server.ExecuteCommand(commands.New(kind, args[1:]...))
	return Response{Output: output}, err
}

// ExecuteCommand runs an already parsed command through the transaction stack and returns the text to display.
func (server *Server) ExecuteCommand(cmd commands.Command) (string, error) {
	start := time.Now()
	depth := server.stack.Depth()
	output, err := server.stack.Execute(cmd)
	commandDuration.WithLabelValues(cmd.Kind().String()).Observe(time.Since(start).Seconds())

	result := "ok"
	if err != nil {
		result = "error"
		server.stats.invalidCommands.Inc()
		log.Debug("command failed", zap.Stringer("command", cmd), zap.Error(err))
	} else {
		switch cmd.Kind() {
		case commands.Commit:
			// COMMIT outside a transaction does nothing.
			if depth > 0 {
				server.stats.commits.Inc()
			}
		case commands.Rollback:
			server.stats.rollbacks.Inc()
		}
		log.Debug("command executed",
			zap.Stringer("command", cmd),
			zap.Int("depth", server.stack.Depth()),
			zap.String("output", output))
	}
	commandCounter.WithLabelValues(cmd.Kind().String(), result).Inc()
	server.stats.commands.Inc()
	server.updateGauges()
	return output, err
}

func (server *Server) updateGauges() {
	depth, pending, vars := server.stack.Depth(), server.stack.Pending(), server.store.Len()
	server.stats.depth.Store(int64(depth))
	server.stats.pending.Store(int64(pending))
	server.stats.variables.Store(int64(vars))
	transactionDepthGauge.Set(float64(depth))
	pendingCommandsGauge.Set(float64(pending))
	variablesGauge.Set(float64(vars))
}

// Stats returns the server's counters. It is safe to call from any goroutine.
func (server *Server) Stats() Stats {
	return server.stats.snapshot()
}

// Depth returns the number of open transactions.
func (server *Server) Depth() int {
	return server.stack.Depth()
}

// Variables returns a copy of the committed variables.
func (server *Server) Variables() map[string]int {
	return server.store.Snapshot()
}

func dumpStack(server *Server, _ []string) (Response, error) {
	lines := []string{"Stack Begin:", ""}
	server.store.Ascend(func(v storage.Variable) bool {
		lines = append(lines, fmt.Sprintf("%s = %d", v.Name, v.Value))
		return true
	})
	return Response{Output: strings.Join(lines, "\n"), ClearScreen: true}, nil
}

func clearStack(server *Server, _ []string) (Response, error) {
	log.Info("clearing store and open transactions",
		zap.Int("variables", server.store.Len()),
		zap.Int("depth", server.stack.Depth()))
	server.stack.Reset()
	server.store.EraseAll()
	server.updateGauges()
	return Response{}, nil
}

func clearScreen(_ *Server, _ []string) (Response, error) {
	return Response{ClearScreen: true}, nil
}

var helpText = strings.Join([]string{
	"SET <name> <value>   set a variable to an integer value",
	"GET <name>           print a variable's value, or NULL",
	"UNSET <name>         remove a variable",
	"NUMEQUALTO <value>   print how many variables equal value",
	"BEGIN                open a transaction block",
	"ROLLBACK             discard the innermost transaction block",
	"COMMIT               commit every open transaction block",
	"END                  exit",
	"DUMPSTACK            list every committed variable",
	"CLEARSTACK           erase every variable and open transaction",
	"CLEAR                clear the screen",
	"HELP                 show this help",
}, "\n")

func help(_ *Server, _ []string) (Response, error) {
	return Response{Output: helpText}, nil
}
