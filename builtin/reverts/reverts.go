// Copyright (c) 2025 The VeChainThor developers
// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
)

// ErrRevert is a dispatch error reported back to the caller of an extrinsic.
// Everything else returned by builtin modules is an internal failure.
type ErrRevert struct {
	module  string
	message string
}

// New creates a revert error of module.
func New(module, message string) *ErrRevert {
	return &ErrRevert{
		module:  module,
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

// Module returns the name of the module raising the error.
func (e *ErrRevert) Module() string {
	return e.module
}

// Code returns the qualified error name, e.g. DappStaking.ZeroAmount.
func (e *ErrRevert) Code() string {
	return e.module + "." + e.message
}

// IsRevertErr tells whether err is, or wraps, an *ErrRevert.
func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	if errors.As(e, &ve) {
		return ve != nil
	}
	return false
}

// AsRevert extracts the revert error from err, or nil.
func AsRevert(err error) *ErrRevert {
	var ve *ErrRevert
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
