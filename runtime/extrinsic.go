// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"crypto/ecdsa"
	"encoding/json"
	"io"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/astar-network/astar/astar"
)

// Extrinsic is a call submitted by an account.
type Extrinsic struct {
	Signer    astar.Address   `json:"signer"`
	Call      string          `json:"call"`
	Args      json.RawMessage `json:"args,omitempty"`
	Nonce     uint64          `json:"nonce"`
	Signature hexutil.Bytes   `json:"signature,omitempty"`
}

// SigningHash returns the hash signed by the signer.
func (x *Extrinsic) SigningHash() astar.Bytes32 {
	return astar.Blake2bFn(func(w io.Writer) {
		rlp.Encode(w, []any{
			x.Signer,
			x.Call,
			[]byte(x.Args),
			x.Nonce,
		})
	})
}

// Hash identifies the extrinsic, signature included.
func (x *Extrinsic) Hash() astar.Bytes32 {
	signing := x.SigningHash()
	return astar.Blake2b(signing[:], x.Signature)
}

// Sign signs the extrinsic with key, which must belong to the signer.
func (x *Extrinsic) Sign(key *ecdsa.PrivateKey) error {
	if astar.Address(crypto.PubkeyToAddress(key.PublicKey)) != x.Signer {
		return errors.New("key does not belong to signer")
	}
	hash := x.SigningHash()
	sig, err := crypto.Sign(hash[:], key)
	if err != nil {
		return err
	}
	x.Signature = sig
	return nil
}

// Verify checks the signature was made by the signer.
func (x *Extrinsic) Verify() error {
	if len(x.Signature) != crypto.SignatureLength {
		return errors.New("invalid signature length")
	}
	hash := x.SigningHash()
	pub, err := crypto.SigToPub(hash[:], x.Signature)
	if err != nil {
		return errors.Wrap(err, "recover signer")
	}
	if astar.Address(crypto.PubkeyToAddress(*pub)) != x.Signer {
		return errors.New("signature does not match signer")
	}
	return nil
}

// NewExtrinsic builds an unsigned extrinsic, encoding args as json.
func NewExtrinsic(signer astar.Address, call string, args any, nonce uint64) (*Extrinsic, error) {
	x := &Extrinsic{Signer: signer, Call: call, Nonce: nonce}
	if args != nil {
		raw, err := json.Marshal(args)
		if err != nil {
			return nil, errors.Wrap(err, "encode args")
		}
		x.Args = raw
	}
	return x, nil
}
