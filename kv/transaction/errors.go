package transaction

import (
	"github.com/pingcap/errcode"
)

// NoOpenTransactionCode is returned for ROLLBACK when no transaction is open.
var NoOpenTransactionCode = errcode.StateCode.Child("state.transaction")

var _ errcode.ErrorCode = (*NoOpenTransactionErr)(nil) // assert implements interface

// NoOpenTransactionErr is returned by Stack.Execute for a ROLLBACK with nothing to roll back. No state changes.
type NoOpenTransactionErr struct{}

func (e NoOpenTransactionErr) Error() string {
	return "no open transaction"
}

// Code returns NoOpenTransactionCode
func (e NoOpenTransactionErr) Code() errcode.Code { return NoOpenTransactionCode }
