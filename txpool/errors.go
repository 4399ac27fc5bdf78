// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package txpool

import "github.com/pkg/errors"

var (
	errKnownTx      = errors.New("known extrinsic")
	errTooLarge     = errors.New("extrinsic too large")
	errPoolFull     = errors.New("pool is full")
	errBadSignature = errors.New("bad signature")
	errClosed       = errors.New("pool is closed")
)

func IsErrKnownTx(err error) bool {
	return err == errKnownTx
}

func IsErrTooLarge(err error) bool {
	return err == errTooLarge
}

func IsErrPoolFull(err error) bool {
	return err == errPoolFull
}

// IsBadTx tells whether err rejects the extrinsic itself rather than the
// state of the pool.
func IsBadTx(err error) bool {
	return errors.Is(err, errBadSignature) || err == errTooLarge
}
