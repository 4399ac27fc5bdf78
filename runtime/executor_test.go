// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/cycle"
	"github.com/astar-network/astar/builtin/dappstaking/tiers"
	"github.com/astar-network/astar/builtin/inflation"
	"github.com/astar-network/astar/lvldb"
	"github.com/astar-network/astar/state"
	"github.com/astar-network/astar/test/datagen"
	"github.com/astar-network/astar/test/teststate"
)

type testChain struct {
	t        *testing.T
	executor *Executor
	st       *state.State
	db       *lvldb.LevelDB
	sudo     astar.Address
	number   uint32
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.DappStaking.Cycle = cycle.Configuration{
		PeriodsPerCycle:              2,
		ErasPerVotingSubperiod:       2,
		ErasPerBuildAndEarnSubperiod: 3,
		BlocksPerEra:                 10,
	}
	cfg.DappStaking.MinimumLockedAmount = big.NewInt(100)
	cfg.DappStaking.MinimumStakeAmount = big.NewInt(50)
	cfg.DappStaking.RegistrationDeposit = big.NewInt(1000)
	cfg.Beneficiaries = inflation.Beneficiaries{
		Treasury:    datagen.RandAddress(),
		CollatorPot: datagen.RandAddress(),
	}
	cfg.Sudo = datagen.RandAddress()
	return cfg
}

func testTierParams() *tiers.TierParameters {
	return &tiers.TierParameters{
		RewardPortion:    []astar.Permill{astar.PermillFromPercent(60), astar.PermillFromPercent(40)},
		SlotDistribution: []astar.Permill{astar.PermillFromPercent(50), astar.PermillFromPercent(50)},
		TierThresholds: []tiers.TierThreshold{
			tiers.FixedTvl(big.NewInt(1000)),
			tiers.FixedTvl(big.NewInt(100)),
		},
		BaseSlots: 4,
	}
}

func newTestChain(t *testing.T, cfg Config) *testChain {
	st, db := teststate.New(t)
	teststate.Fund(st, cfg.Sudo, big.NewInt(1_000_000_000))

	mods := NewModules(st, cfg)
	require.NoError(t, mods.DappStaking.Init(testTierParams()))
	require.NoError(t, mods.Inflation.Init(inflation.DefaultParams(), 1))
	require.NoError(t, st.Commit(db))

	return &testChain{
		t:        t,
		executor: NewExecutor(db, cfg),
		st:       st,
		db:       db,
		sudo:     cfg.Sudo,
	}
}

func (c *testChain) Account(amount int64) astar.Address {
	addr := datagen.RandAddress()
	teststate.Fund(c.st, addr, big.NewInt(amount))
	return addr
}

func (c *testChain) Extrinsic(signer astar.Address, call string, args any) *Extrinsic {
	x, err := NewExtrinsic(signer, call, args, 0)
	require.NoError(c.t, err)
	return x
}

func (c *testChain) Block(extrinsics ...*Extrinsic) *Block {
	c.number++
	block, err := c.executor.ExecuteBlock(c.st, c.number, extrinsics)
	require.NoError(c.t, err)
	require.Len(c.t, block.Receipts, len(extrinsics))
	return block
}

func eventNames(records []*EventRecord) []string {
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Name)
	}
	return names
}

func TestExecuteBlock(t *testing.T) {
	chain := newTestChain(t, testConfig())
	alice := chain.Account(10_000)

	block := chain.Block(
		chain.Extrinsic(alice, "dappStaking.lock", map[string]any{"amount": "1000"}),
	)
	receipt := block.Receipts[0]
	assert.True(t, receipt.Succeeded(), receipt.Error)
	assert.Equal(t, []string{"Locked"}, eventNames(receipt.Events))
	assert.Greater(t, receipt.Weight, uint64(0))
	assert.Equal(t, receipt.Weight, block.Weight)

	// committed: a fresh state over the store sees the lock
	reloaded := NewModules(state.New(chain.db), chain.executor.Config())
	ledger, err := reloaded.DappStaking.Ledger(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), ledger.Locked)
	usable, err := reloaded.Balances.Usable(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(9000), usable)
}

func TestRevertedExtrinsic(t *testing.T) {
	chain := newTestChain(t, testConfig())
	alice := chain.Account(10_000)
	contract := datagen.RandAddress()

	block := chain.Block(
		chain.Extrinsic(alice, "dappStaking.lock", map[string]any{"amount": 1000}),
		chain.Extrinsic(alice, "dappStaking.vote", map[string]any{"contract": contract, "amount": 500}),
		chain.Extrinsic(alice, "dappStaking.nope", nil),
		chain.Extrinsic(alice, "dappStaking.lock", map[string]any{"amount": "lots"}),
		chain.Extrinsic(alice, "dappStaking.lock", nil),
	)

	assert.True(t, block.Receipts[0].Succeeded())
	assert.Equal(t, "DappStaking.NotOperatedContract", block.Receipts[1].Error)
	assert.Empty(t, block.Receipts[1].Events)
	assert.Equal(t, "Runtime.UnknownCall", block.Receipts[2].Error)
	assert.Equal(t, "Runtime.InvalidArguments", block.Receipts[3].Error)
	assert.Equal(t, "Runtime.InvalidArguments", block.Receipts[4].Error)
	for i, r := range block.Receipts {
		assert.Equal(t, uint32(i), r.Index)
	}

	mods := NewModules(chain.st, chain.executor.Config())
	ledger, err := mods.DappStaking.Ledger(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), ledger.Locked)
	assert.Equal(t, 0, ledger.StakedAmount(1).Sign())
}

func TestOutOfRangeAmountArgs(t *testing.T) {
	chain := newTestChain(t, testConfig())
	alice := chain.Account(10_000)
	bob := chain.Account(10_000)
	aboveMax := new(big.Int).Add(astar.MaxBalance, big.NewInt(1))

	block := chain.Block(
		chain.Extrinsic(alice, "balances.transfer", map[string]any{"to": bob, "amount": "-5000"}),
		chain.Extrinsic(alice, "dappStaking.lock", map[string]any{"amount": "1000"}),
		chain.Extrinsic(alice, "dappStaking.lock", map[string]any{"amount": "-800"}),
		chain.Extrinsic(alice, "dappStaking.unlock", map[string]any{"amount": "-800"}),
		chain.Extrinsic(alice, "dappStaking.lock", map[string]any{"amount": aboveMax.String()}),
		chain.Extrinsic(alice, "balances.transfer", map[string]any{"to": bob, "amount": aboveMax.String()}),
	)

	assert.Equal(t, "Runtime.InvalidArguments", block.Receipts[0].Error)
	assert.True(t, block.Receipts[1].Succeeded(), block.Receipts[1].Error)
	for _, r := range block.Receipts[2:] {
		assert.Equal(t, "Runtime.InvalidArguments", r.Error, "receipt %d", r.Index)
		assert.Empty(t, r.Events)
	}

	mods := NewModules(chain.st, chain.executor.Config())
	aliceFree, err := mods.Balances.Free(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(10_000), aliceFree)
	bobFree, err := mods.Balances.Free(bob)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(10_000), bobFree)

	ledger, err := mods.DappStaking.Ledger(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), ledger.Locked)
	usable, err := mods.Balances.Usable(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(9000), usable)
}

func TestRootCalls(t *testing.T) {
	chain := newTestChain(t, testConfig())
	alice := chain.Account(10_000)

	block := chain.Block(
		chain.Extrinsic(alice, "dappStaking.setMaintenanceMode", map[string]any{"enabled": true}),
		chain.Extrinsic(chain.sudo, "dappStaking.setMaintenanceMode", map[string]any{"enabled": true}),
		chain.Extrinsic(alice, "dappStaking.lock", map[string]any{"amount": 1000}),
	)
	assert.Equal(t, "Runtime.BadOrigin", block.Receipts[0].Error)
	assert.True(t, block.Receipts[1].Succeeded())
	assert.Equal(t, []string{"MaintenanceMode"}, eventNames(block.Receipts[1].Events))
	assert.Equal(t, "DappStaking.Disabled", block.Receipts[2].Error)
}

func TestManagedCalls(t *testing.T) {
	chain := newTestChain(t, testConfig())
	owner := chain.Account(10_000)
	other := chain.Account(10_000)
	contract := datagen.RandAddress()
	args := map[string]any{"owner": owner, "contract": contract}

	block := chain.Block(
		chain.Extrinsic(other, "dappStaking.register", args),
		chain.Extrinsic(chain.sudo, "dappStaking.register", args),
	)
	assert.Equal(t, "Runtime.BadOrigin", block.Receipts[0].Error)
	assert.True(t, block.Receipts[1].Succeeded(), block.Receipts[1].Error)

	mods := NewModules(chain.st, chain.executor.Config())
	info, err := mods.DappStaking.DApp(contract)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, owner, info.Owner)
}

func TestForceThroughExtrinsic(t *testing.T) {
	chain := newTestChain(t, testConfig())

	block := chain.Block(
		chain.Extrinsic(chain.sudo, "dappStaking.force", map[string]any{"forcingType": "Subperiod"}),
	)
	require.True(t, block.Receipts[0].Succeeded(), block.Receipts[0].Error)

	// the era ends at the next block
	block = chain.Block()
	assert.Contains(t, eventNames(block.Events), "NewEra")
	assert.Contains(t, eventNames(block.Events), "NewSubperiod")
}

func TestBlockHooks(t *testing.T) {
	cfg := testConfig()
	chain := newTestChain(t, cfg)

	chain.Block()
	mods := NewModules(chain.st, cfg)
	treasury, err := mods.Balances.Free(cfg.Beneficiaries.Treasury)
	require.NoError(t, err)
	assert.Equal(t, 1, treasury.Sign())

	// era 2 starts at the block after the voting subperiod
	for range cfg.DappStaking.Cycle.VotingSubperiodLength() - 1 {
		block := chain.Block()
		assert.Empty(t, block.Events)
	}
	block := chain.Block()
	assert.Equal(t, []string{"NewEra", "NewSubperiod"}, eventNames(block.Events))
}

func TestBlockWeightLimit(t *testing.T) {
	cfg := testConfig()
	cfg.BlockWeightLimit = 1_000_000
	chain := newTestChain(t, cfg)
	alice := chain.Account(10_000)

	block := chain.Block(
		chain.Extrinsic(alice, "dappStaking.lock", map[string]any{"amount": 1000}),
		chain.Extrinsic(alice, "dappStaking.lock", map[string]any{"amount": 1000}),
		chain.Extrinsic(alice, "dappStaking.lock", map[string]any{"amount": 1000}),
	)
	var exhausted int
	for _, r := range block.Receipts {
		if r.Error == "Runtime.ExhaustsResources" {
			exhausted++
		}
	}
	assert.Greater(t, exhausted, 0)
	assert.LessOrEqual(t, block.Weight, cfg.BlockWeightLimit)
}

func TestCalls(t *testing.T) {
	names := Calls()
	assert.Contains(t, names, "dappStaking.claimDAppReward")
	assert.Contains(t, names, "oracle.submitPrice")
	assert.IsIncreasing(t, names)
}
