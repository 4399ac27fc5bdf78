// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package inflation

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/balances"
	"github.com/astar-network/astar/builtin/cycle"
	"github.com/astar-network/astar/builtin/reverts"
	"github.com/astar-network/astar/builtin/storage"
	"github.com/astar-network/astar/test/datagen"
	"github.com/astar-network/astar/test/teststate"
)

var testCycle = cycle.Configuration{
	PeriodsPerCycle:              2,
	ErasPerVotingSubperiod:       1,
	ErasPerBuildAndEarnSubperiod: 4,
	BlocksPerEra:                 10,
}

func newInflation(t *testing.T, issuance int64) (*Inflation, *balances.Balances, Beneficiaries) {
	st, _ := teststate.New(t)
	teststate.Fund(st, datagen.RandAddress(), big.NewInt(issuance))
	bal := balances.New(st)
	ben := Beneficiaries{Treasury: datagen.RandAddress(), CollatorPot: datagen.RandAddress()}
	infl := New(storage.NewContext(datagen.RandAddress(), st), bal, testCycle, ben)
	return infl, bal, ben
}

func TestParamsValidity(t *testing.T) {
	assert.True(t, DefaultParams().IsValid())

	p := DefaultParams()
	p.BonusPart++
	assert.False(t, p.IsValid())

	infl, _, _ := newInflation(t, 1)
	assert.ErrorIs(t, infl.Init(p, 1), reverts.ErrInvalidInflationParameters)
	assert.ErrorIs(t, infl.SetParams(p), reverts.ErrInvalidInflationParameters)
}

func TestRecalculation(t *testing.T) {
	infl, _, _ := newInflation(t, 1_000_000_000)
	params := Params{
		MaxInflationRate:      astar.PerbillFromPercent(10),
		TreasuryPart:          astar.PerbillFromPercent(10),
		CollatorsPart:         astar.PerbillFromPercent(10),
		DAppsPart:             astar.PerbillFromPercent(20),
		BaseStakersPart:       astar.PerbillFromPercent(20),
		AdjustableStakersPart: astar.PerbillFromPercent(30),
		BonusPart:             astar.PerbillFromPercent(10),
		IdealStakingRate:      astar.PerbillFromPercent(50),
	}
	require.NoError(t, infl.Init(params, 1))

	cfg, err := infl.Configuration()
	require.NoError(t, err)
	// max emission 100_000_000; 2 periods of 5 eras, 8 build&earn eras, 100 blocks per cycle
	assert.Equal(t, uint32(11), cfg.RecalculationEra)
	assert.Equal(t, big.NewInt(1_100_000_000), cfg.IssuanceSafetyCap)
	assert.Equal(t, big.NewInt(100_000), cfg.TreasuryRewardPerBlock)
	assert.Equal(t, big.NewInt(2_500_000), cfg.DAppRewardPoolPerEra)
	assert.Equal(t, big.NewInt(2_500_000), cfg.BaseStakerRewardPoolPerEra)
	assert.Equal(t, big.NewInt(3_750_000), cfg.AdjustableStakerRewardPoolPerEra)
	assert.Equal(t, big.NewInt(5_000_000), cfg.BonusRewardPoolPerPeriod)

	// not yet a new cycle
	require.NoError(t, infl.BlockBeforeNewEra(10))
	cfg, _ = infl.Configuration()
	assert.Equal(t, uint32(11), cfg.RecalculationEra)

	require.NoError(t, infl.BlockBeforeNewEra(11))
	cfg, _ = infl.Configuration()
	assert.Equal(t, uint32(21), cfg.RecalculationEra)
}

func TestRewardPools(t *testing.T) {
	infl, bal, ben := newInflation(t, 1_000_000_000)
	params := DefaultParams()
	params.IdealStakingRate = astar.PerbillFromPercent(50)
	require.NoError(t, infl.Init(params, 1))
	cfg, _ := infl.Configuration()

	// nothing staked: base pool only
	staker, dapp, err := infl.StakerAndDAppRewardPools(big.NewInt(0))
	require.NoError(t, err)
	assert.Equal(t, cfg.BaseStakerRewardPoolPerEra, staker)
	assert.Equal(t, cfg.DAppRewardPoolPerEra, dapp)

	// staked ratio above ideal: full adjustable pool
	staker, _, err = infl.StakerAndDAppRewardPools(big.NewInt(900_000_000))
	require.NoError(t, err)
	assert.Equal(t, new(big.Int).Add(cfg.BaseStakerRewardPoolPerEra, cfg.AdjustableStakerRewardPoolPerEra), staker)

	// half of the ideal rate: half of the adjustable pool
	staker, _, err = infl.StakerAndDAppRewardPools(big.NewInt(250_000_000))
	require.NoError(t, err)
	half := new(big.Int).Quo(cfg.AdjustableStakerRewardPoolPerEra, big.NewInt(2))
	assert.Equal(t, new(big.Int).Add(cfg.BaseStakerRewardPoolPerEra, half), staker)

	require.NoError(t, infl.OnBlock())
	free, err := bal.Free(ben.Treasury)
	require.NoError(t, err)
	assert.Equal(t, cfg.TreasuryRewardPerBlock, free)

	who := datagen.RandAddress()
	require.NoError(t, infl.PayoutReward(who, big.NewInt(10)))
	assert.ErrorIs(t, infl.PayoutReward(who, cfg.IssuanceSafetyCap), reverts.ErrIssuanceCapExceeded)
}
