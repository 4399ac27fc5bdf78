// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package txpool

import (
	"crypto/ecdsa"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/runtime"
)

func newKey(t *testing.T) *ecdsa.PrivateKey {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return key
}

func signed(t *testing.T, key *ecdsa.PrivateKey, call string, nonce uint64) *runtime.Extrinsic {
	x, err := runtime.NewExtrinsic(astar.Address(crypto.PubkeyToAddress(key.PublicKey)), call, nil, nonce)
	require.NoError(t, err)
	require.NoError(t, x.Sign(key))
	return x
}

func TestFIFO(t *testing.T) {
	pool := New(Options{})
	defer pool.Close()
	key := newKey(t)

	var added []*runtime.Extrinsic
	for i := range 5 {
		x := signed(t, key, "dappStaking.claimStakerRewards", uint64(i))
		require.NoError(t, pool.Add(x))
		added = append(added, x)
	}
	assert.Equal(t, 5, pool.Len())
	assert.Equal(t, added, pool.Dump())

	assert.Equal(t, added[:2], pool.Executables(2))
	assert.Equal(t, added[2:], pool.Executables(10))
	assert.Nil(t, pool.Executables(10))
	assert.Equal(t, 0, pool.Len())
}

func TestDuplicates(t *testing.T) {
	pool := New(Options{})
	defer pool.Close()
	key := newKey(t)

	x := signed(t, key, "dappStaking.claimStakerRewards", 1)
	require.NoError(t, pool.Add(x))
	assert.True(t, IsErrKnownTx(pool.Add(x)))

	// still known once handed out for execution
	pool.Executables(1)
	assert.True(t, IsErrKnownTx(pool.Add(x)))

	require.NoError(t, pool.Add(signed(t, key, "dappStaking.claimStakerRewards", 2)))
}

func TestRejected(t *testing.T) {
	pool := New(Options{Limit: 1})
	defer pool.Close()
	key := newKey(t)

	unsigned, err := runtime.NewExtrinsic(astar.Address(crypto.PubkeyToAddress(key.PublicKey)), "dappStaking.claimStakerRewards", nil, 0)
	require.NoError(t, err)
	assert.True(t, IsBadTx(pool.Add(unsigned)))

	large := signed(t, key, "dappStaking.lock", 0)
	large.Args = json.RawMessage(`"` + strings.Repeat("a", MaxArgsSize) + `"`)
	assert.True(t, IsErrTooLarge(pool.Add(large)))

	require.NoError(t, pool.Add(signed(t, key, "dappStaking.claimStakerRewards", 1)))
	assert.True(t, IsErrPoolFull(pool.Add(signed(t, key, "dappStaking.claimStakerRewards", 2))))
}

func TestSkipVerify(t *testing.T) {
	pool := New(Options{SkipVerify: true})
	defer pool.Close()

	x, err := runtime.NewExtrinsic(astar.Address{1}, "dappStaking.claimStakerRewards", nil, 0)
	require.NoError(t, err)
	assert.NoError(t, pool.Add(x))
}

func TestSubscribe(t *testing.T) {
	pool := New(Options{})
	key := newKey(t)

	ch := make(chan *TxEvent, 1)
	sub := pool.SubscribeTxEvent(ch)
	defer sub.Unsubscribe()

	x := signed(t, key, "dappStaking.claimStakerRewards", 0)
	require.NoError(t, pool.Add(x))

	select {
	case ev := <-ch:
		assert.Equal(t, x, ev.Extrinsic)
	case <-time.After(time.Second):
		t.Fatal("no event")
	}

	pool.Close()
	assert.Error(t, pool.Add(signed(t, key, "dappStaking.claimStakerRewards", 1)))
}
