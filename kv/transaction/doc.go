package transaction

// The transaction package implements nested speculative transactions over a variable store.
//
// A Block is one level of nesting. It is an ordered log of commands bound to a store. Adding a command to a Block
// previews it: every logged command is replayed against the real store so that the newly added command sees the effects
// of everything before it, the result of the new command is captured, and then the replay is undone by applying
// counter-commands (see commands.Counter) in reverse order. The store is therefore never left modified by an open Block.
// Only Commit replays the log for real.
//
// A Stack holds the open Blocks, oldest first. BEGIN pushes a Block, ROLLBACK discards the innermost Block only, and
// COMMIT commits every open Block starting with the oldest, which keeps commands in the order they were issued even
// across nesting levels. Other commands are routed to the innermost Block, or applied directly to the store when no
// Block is open.
//
// Every append replays the whole log, so AddAndPreview costs O(log length).
