package tinytxn

/*
TinyTxn is an in-memory integer variable store with nested speculative transactions, driven from a line-oriented
command interpreter. It is intended for teaching and experimentation: nothing is persisted and a store serves a single
client.

Building TinyTxn produces one executable, txnshell, which reads commands from an interactive prompt or from a script.

The `tinytxn` module is organized into the following packages:

* `kv/storage`: the variable store and its value to count index.
* `kv/transaction`: transaction blocks and the stack of open blocks; `kv/transaction/commands` holds the command
  model, command evaluation and counter-command derivation.
* `kv/server`: the interpreter that owns a store and its transaction stack, plus metrics.
* `kv/status`: an optional read-only HTTP endpoint exposing session counters and metrics.
* `kv/config`: configuration and logger setup.
* `kv/txnshell`: the txnshell binary.
*/
