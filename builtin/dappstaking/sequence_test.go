// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dappstaking

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/balances"
	"github.com/astar-network/astar/builtin/cycle"
	"github.com/astar-network/astar/builtin/dappstaking/protocol"
	"github.com/astar-network/astar/builtin/dappstaking/tiers"
	"github.com/astar-network/astar/builtin/oracle"
	"github.com/astar-network/astar/builtin/storage"
	"github.com/astar-network/astar/lvldb"
	"github.com/astar-network/astar/state"
	"github.com/astar-network/astar/test/datagen"
	"github.com/astar-network/astar/test/teststate"
)

// fixedSource pays the same pools every era and mints claimed rewards.
type fixedSource struct {
	bal        *balances.Balances
	stakerPool *big.Int
	dappPool   *big.Int
	bonusPool  *big.Int
	observed   []uint32
}

func (s *fixedSource) StakerAndDAppRewardPools(*big.Int) (*big.Int, *big.Int, error) {
	return astar.Copy(s.stakerPool), astar.Copy(s.dappPool), nil
}

func (s *fixedSource) BonusRewardPool() (*big.Int, error) {
	return astar.Copy(s.bonusPool), nil
}

func (s *fixedSource) PayoutReward(account astar.Address, amount *big.Int) error {
	return s.bal.Deposit(account, amount)
}

func (s *fixedSource) BlockBeforeNewEra(nextEra uint32) error {
	s.observed = append(s.observed, nextEra)
	return nil
}

// testConfig has one voting era of 20 blocks and three build&earn eras of
// 10 blocks, so a period lasts 50 blocks.
func testConfig() Config {
	return Config{
		Cycle: cycle.Configuration{
			PeriodsPerCycle:              2,
			ErasPerVotingSubperiod:       2,
			ErasPerBuildAndEarnSubperiod: 3,
			BlocksPerEra:                 10,
		},
		MaxNumberOfContracts:       10,
		MaxUnlockingChunks:         2,
		MinimumLockedAmount:        big.NewInt(100),
		UnlockingPeriod:            2,
		MaxNumberOfStakedContracts: 3,
		MinimumStakeAmount:         big.NewInt(50),
		NumberOfTiers:              4,
		RewardRetentionInPeriods:   2,
		EraRewardSpanLength:        4,
		RegistrationDeposit:        big.NewInt(1000),
	}
}

// testTierParams gives 10 slots split 1/2/3/4 over fixed thresholds.
func testTierParams() *tiers.TierParameters {
	return &tiers.TierParameters{
		RewardPortion: []astar.Permill{
			astar.PermillFromPercent(40), astar.PermillFromPercent(30),
			astar.PermillFromPercent(20), astar.PermillFromPercent(10),
		},
		SlotDistribution: []astar.Permill{
			astar.PermillFromPercent(10), astar.PermillFromPercent(20),
			astar.PermillFromPercent(30), astar.PermillFromPercent(40),
		},
		TierThresholds: []tiers.TierThreshold{
			tiers.FixedTvl(big.NewInt(5000)),
			tiers.FixedTvl(big.NewInt(2000)),
			tiers.FixedTvl(big.NewInt(1000)),
			tiers.FixedTvl(big.NewInt(100)),
		},
		BaseSlots: 10,
	}
}

type DappStakingTest struct {
	*DappStaking
	t      *testing.T
	st     *state.State
	bal    *balances.Balances
	source *fixedSource
	now    uint32
	db     *lvldb.LevelDB
}

func newTest(t *testing.T) *DappStakingTest {
	return newTestWithConfig(t, testConfig())
}

func newTestWithConfig(t *testing.T, cfg Config) *DappStakingTest {
	st, db := teststate.New(t)
	bal := balances.New(st)
	source := &fixedSource{
		bal:        bal,
		stakerPool: big.NewInt(10_000),
		dappPool:   big.NewInt(2_000),
		bonusPool:  big.NewInt(3_000),
	}
	prices := oracle.New(storage.NewContext(astar.BytesToAddress([]byte("oracle")), st), oracle.DefaultConfig())
	engine := New(storage.NewContext(astar.BytesToAddress([]byte("dappstaking")), st), bal, prices, source, cfg)
	require.NoError(t, engine.Init(testTierParams()))

	return &DappStakingTest{
		DappStaking: engine,
		t:           t,
		st:          st,
		bal:         bal,
		source:      source,
		now:         1,
		db:          db,
	}
}

// Account returns a new account funded with amount.
func (ts *DappStakingTest) Account(amount int64) astar.Address {
	addr := datagen.RandAddress()
	teststate.Fund(ts.st, addr, big.NewInt(amount))
	return addr
}

// NewDApp registers a new contract owned by a new funded account.
func (ts *DappStakingTest) NewDApp() (owner, contract astar.Address) {
	owner = ts.Account(10_000)
	contract = datagen.RandAddress()
	require.NoError(ts.t, ts.Register(Signed(owner), owner, contract))
	return owner, contract
}

// NextEra jumps to the first block of the next era.
func (ts *DappStakingTest) NextEra() *DappStakingTest {
	ps, err := ts.ProtocolState()
	require.NoError(ts.t, err)
	ts.now = ps.NextEraStart
	require.NoError(ts.t, ts.Housekeep(ts.now))
	return ts
}

// RunToEra housekeeps every block until era starts.
func (ts *DappStakingTest) RunToEra(era uint32) *DappStakingTest {
	for {
		current, err := ts.CurrentEra()
		require.NoError(ts.t, err)
		if current >= era {
			return ts
		}
		ts.now++
		require.NoError(ts.t, ts.Housekeep(ts.now))
	}
}

func (ts *DappStakingTest) LockAmount(account astar.Address, amount int64) *DappStakingTest {
	require.NoError(ts.t, ts.Lock(Signed(account), big.NewInt(amount)))
	return ts
}

func (ts *DappStakingTest) LockErrors(account astar.Address, amount int64, expected error) *DappStakingTest {
	assert.ErrorIs(ts.t, ts.Lock(Signed(account), big.NewInt(amount)), expected)
	return ts
}

func (ts *DappStakingTest) UnlockAmount(account astar.Address, amount int64) *DappStakingTest {
	require.NoError(ts.t, ts.Unlock(Signed(account), big.NewInt(amount), ts.now))
	return ts
}

func (ts *DappStakingTest) UnlockErrors(account astar.Address, amount int64, expected error) *DappStakingTest {
	assert.ErrorIs(ts.t, ts.Unlock(Signed(account), big.NewInt(amount), ts.now), expected)
	return ts
}

func (ts *DappStakingTest) VoteAmount(account, contract astar.Address, amount int64) *DappStakingTest {
	require.NoError(ts.t, ts.Vote(Signed(account), contract, big.NewInt(amount)))
	return ts
}

func (ts *DappStakingTest) VoteErrors(account, contract astar.Address, amount int64, expected error) *DappStakingTest {
	assert.ErrorIs(ts.t, ts.Vote(Signed(account), contract, big.NewInt(amount)), expected)
	return ts
}

func (ts *DappStakingTest) StakeAmount(account, contract astar.Address, amount int64) *DappStakingTest {
	require.NoError(ts.t, ts.Stake(Signed(account), contract, big.NewInt(amount)))
	return ts
}

func (ts *DappStakingTest) StakeErrors(account, contract astar.Address, amount int64, expected error) *DappStakingTest {
	assert.ErrorIs(ts.t, ts.Stake(Signed(account), contract, big.NewInt(amount)), expected)
	return ts
}

func (ts *DappStakingTest) UnstakeAmount(account, contract astar.Address, amount int64) *DappStakingTest {
	require.NoError(ts.t, ts.Unstake(Signed(account), contract, big.NewInt(amount)))
	return ts
}

func (ts *DappStakingTest) UnstakeErrors(account, contract astar.Address, amount int64, expected error) *DappStakingTest {
	assert.ErrorIs(ts.t, ts.Unstake(Signed(account), contract, big.NewInt(amount)), expected)
	return ts
}

func (ts *DappStakingTest) ClaimStaker(account astar.Address) *DappStakingTest {
	require.NoError(ts.t, ts.ClaimStakerRewards(Signed(account)))
	return ts
}

func (ts *DappStakingTest) ClaimStakerErrors(account astar.Address, expected error) *DappStakingTest {
	assert.ErrorIs(ts.t, ts.ClaimStakerRewards(Signed(account)), expected)
	return ts
}

func (ts *DappStakingTest) AssertEra(era, period uint32, subperiod protocol.Subperiod) *DappStakingTest {
	ps, err := ts.ProtocolState()
	require.NoError(ts.t, err)
	assert.Equal(ts.t, era, ps.Era, "era mismatch")
	assert.Equal(ts.t, period, ps.PeriodNumber(), "period mismatch")
	assert.Equal(ts.t, subperiod, ps.Subperiod(), "subperiod mismatch")
	return ts
}

func (ts *DappStakingTest) AssertFree(account astar.Address, expected int64) *DappStakingTest {
	free, err := ts.bal.Free(account)
	require.NoError(ts.t, err)
	assert.Equal(ts.t, big.NewInt(expected), free, "free balance mismatch, got %v, expected %d", free, expected)
	return ts
}

func (ts *DappStakingTest) AssertLocked(account astar.Address, locked, staked int64) *DappStakingTest {
	l, err := ts.Ledger(account)
	require.NoError(ts.t, err)
	ps, err := ts.ProtocolState()
	require.NoError(ts.t, err)
	assert.Equal(ts.t, big.NewInt(locked), l.Locked, "locked mismatch")
	assert.Equal(ts.t, big.NewInt(staked), l.StakedAmount(ps.PeriodNumber()), "staked mismatch")
	return ts
}

func (ts *DappStakingTest) AssertEraInfo(current, next int64) *DappStakingTest {
	info, err := ts.EraInfo()
	require.NoError(ts.t, err)
	assert.Equal(ts.t, 0, info.CurrentStaked().Cmp(big.NewInt(current)), "current stake %v, expected %d", info.CurrentStaked(), current)
	assert.Equal(ts.t, 0, info.NextStakeAmount.Total().Cmp(big.NewInt(next)), "next stake %v, expected %d", info.NextStakeAmount.Total(), next)
	return ts
}

// EventNames returns the names of the events emitted since the last call.
func (ts *DappStakingTest) EventNames() []string {
	var names []string
	for _, e := range ts.TakeEvents() {
		names = append(names, e.Name())
	}
	return names
}
