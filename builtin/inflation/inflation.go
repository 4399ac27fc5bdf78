// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package inflation mints the native currency: per block rewards for the
// treasury and collators, and per era reward pools for dApp staking.
package inflation

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/cycle"
	"github.com/astar-network/astar/builtin/reverts"
	"github.com/astar-network/astar/builtin/storage"
	"github.com/astar-network/astar/log"
	"github.com/astar-network/astar/metrics"
)

var (
	logger = log.WithContext("pkg", "inflation")

	slotParams        = storage.Slot("inflation-params")
	slotConfiguration = storage.Slot("inflation-config")

	metricRecalculations = metrics.LazyLoadCounter("inflation_recalculations_count")
	metricMinted         = metrics.LazyLoadCounterVec("inflation_minted_count", []string{"kind"})
)

// Minter creates new currency.
type Minter interface {
	Deposit(addr astar.Address, amount *big.Int) error
	TotalIssuance() (*big.Int, error)
}

// Beneficiaries of the per block issuance.
type Beneficiaries struct {
	Treasury    astar.Address `yaml:"treasury"`
	CollatorPot astar.Address `yaml:"collator-pot"`
}

// Inflation is the reward source of dApp staking.
type Inflation struct {
	minter        Minter
	cycle         cycle.Configuration
	beneficiaries Beneficiaries

	params        *storage.Value[*Params]
	configuration *storage.Value[*Configuration]
}

// New creates an inflation instance over sctx.
func New(sctx *storage.Context, minter Minter, cycle cycle.Configuration, beneficiaries Beneficiaries) *Inflation {
	return &Inflation{
		minter:        minter,
		cycle:         cycle,
		beneficiaries: beneficiaries,
		params:        storage.NewValue[*Params](sctx, slotParams),
		configuration: storage.NewValue[*Configuration](sctx, slotConfiguration),
	}
}

// Init stores the genesis parameters and derives the first configuration.
func (i *Inflation) Init(params Params, nextEra uint32) error {
	if !params.IsValid() {
		return reverts.ErrInvalidInflationParameters
	}
	if err := i.params.Set(&params); err != nil {
		return err
	}
	_, err := i.recalculate(nextEra)
	return err
}

// Params returns the active parameters.
func (i *Inflation) Params() (*Params, error) {
	return i.params.Get()
}

// Configuration returns the active emission schedule.
func (i *Inflation) Configuration() (*Configuration, error) {
	cfg, err := i.configuration.Get()
	if err != nil {
		return nil, err
	}
	return normalize(cfg), nil
}

// SetParams replaces the parameters. They take effect at the next recalculation.
func (i *Inflation) SetParams(params Params) error {
	if !params.IsValid() {
		return reverts.ErrInvalidInflationParameters
	}
	logger.Debug("setting inflation params", "params", params)
	if err := i.params.Set(&params); err != nil {
		return err
	}
	logger.Info("set inflation params")
	return nil
}

// ForceRecalculation derives a new configuration right away, starting a new
// cycle at nextEra.
func (i *Inflation) ForceRecalculation(nextEra uint32) (*Configuration, error) {
	logger.Debug("forcing inflation recalculation", "nextEra", nextEra)
	return i.recalculate(nextEra)
}

// OnBlock mints the per block rewards of treasury and collators.
func (i *Inflation) OnBlock() error {
	cfg, err := i.Configuration()
	if err != nil {
		return err
	}
	if err := i.minter.Deposit(i.beneficiaries.Treasury, cfg.TreasuryRewardPerBlock); err != nil {
		return errors.Wrap(err, "treasury reward")
	}
	if err := i.minter.Deposit(i.beneficiaries.CollatorPot, cfg.CollatorRewardPerBlock); err != nil {
		return errors.Wrap(err, "collator reward")
	}
	metricMinted().AddWithLabel(cfg.TreasuryRewardPerBlock.Int64(), map[string]string{"kind": "treasury"})
	metricMinted().AddWithLabel(cfg.CollatorRewardPerBlock.Int64(), map[string]string{"kind": "collators"})
	return nil
}

// BlockBeforeNewEra recalculates the configuration when nextEra starts a new cycle.
func (i *Inflation) BlockBeforeNewEra(nextEra uint32) error {
	cfg, err := i.Configuration()
	if err != nil {
		return err
	}
	if nextEra < cfg.RecalculationEra {
		return nil
	}
	_, err = i.recalculate(nextEra)
	return err
}

// StakerAndDAppRewardPools returns the reward pools of one era. The staker
// pool grows with the staked ratio of the issuance up to the ideal rate.
func (i *Inflation) StakerAndDAppRewardPools(totalStaked *big.Int) (*big.Int, *big.Int, error) {
	cfg, err := i.Configuration()
	if err != nil {
		return nil, nil, err
	}
	issuance, err := i.minter.TotalIssuance()
	if err != nil {
		return nil, nil, err
	}

	adjustable := cfg.AdjustableStakerRewardPoolPerEra
	if ideal := cfg.IdealStakingRate.Mul(issuance); ideal.Sign() > 0 {
		adjustable = astar.Min(adjustable, astar.MulDiv(adjustable, totalStaked, ideal))
	}
	stakerPool := astar.SaturatingAdd(cfg.BaseStakerRewardPoolPerEra, adjustable)
	return stakerPool, astar.Copy(cfg.DAppRewardPoolPerEra), nil
}

// BonusRewardPool returns the bonus pool of one period.
func (i *Inflation) BonusRewardPool() (*big.Int, error) {
	cfg, err := i.Configuration()
	if err != nil {
		return nil, err
	}
	return astar.Copy(cfg.BonusRewardPoolPerPeriod), nil
}

// PayoutReward mints amount to account, unless that would exceed the
// issuance safety cap of the cycle.
func (i *Inflation) PayoutReward(account astar.Address, amount *big.Int) error {
	cfg, err := i.Configuration()
	if err != nil {
		return err
	}
	issuance, err := i.minter.TotalIssuance()
	if err != nil {
		return err
	}
	if astar.SaturatingAdd(issuance, amount).Cmp(cfg.IssuanceSafetyCap) > 0 {
		return reverts.ErrIssuanceCapExceeded
	}
	if err := i.minter.Deposit(account, amount); err != nil {
		return err
	}
	metricMinted().AddWithLabel(amount.Int64(), map[string]string{"kind": "staking"})
	return nil
}

func (i *Inflation) recalculate(nextEra uint32) (*Configuration, error) {
	params, err := i.params.Get()
	if err != nil {
		return nil, err
	}
	issuance, err := i.minter.TotalIssuance()
	if err != nil {
		return nil, err
	}

	maxEmission := params.MaxInflationRate.Mul(issuance)
	perCycle := func(part astar.Perbill, n uint64) *big.Int {
		if n == 0 {
			return astar.Zero()
		}
		v := part.Mul(maxEmission)
		return v.Quo(v, new(big.Int).SetUint64(n))
	}

	blocks := i.cycle.BlocksPerCycle()
	eras := uint64(i.cycle.BuildAndEarnErasPerCycle())
	periods := uint64(i.cycle.PeriodsPerCycle)

	cfg := &Configuration{
		RecalculationEra:                 astar.SaturatingAddU32(nextEra, i.cycle.ErasPerCycle()),
		IssuanceSafetyCap:                astar.SaturatingAdd(issuance, maxEmission),
		CollatorRewardPerBlock:           perCycle(params.CollatorsPart, blocks),
		TreasuryRewardPerBlock:           perCycle(params.TreasuryPart, blocks),
		DAppRewardPoolPerEra:             perCycle(params.DAppsPart, eras),
		BaseStakerRewardPoolPerEra:       perCycle(params.BaseStakersPart, eras),
		AdjustableStakerRewardPoolPerEra: perCycle(params.AdjustableStakersPart, eras),
		BonusRewardPoolPerPeriod:         perCycle(params.BonusPart, periods),
		IdealStakingRate:                 params.IdealStakingRate,
	}
	if err := i.configuration.Set(cfg); err != nil {
		return nil, err
	}

	metricRecalculations().Add(1)
	logger.Info("inflation recalculated",
		"nextEra", nextEra,
		"recalculationEra", cfg.RecalculationEra,
		"issuance", issuance,
		"dappPoolPerEra", cfg.DAppRewardPoolPerEra,
	)
	return cfg, nil
}

func normalize(cfg *Configuration) *Configuration {
	for _, v := range []**big.Int{
		&cfg.IssuanceSafetyCap,
		&cfg.CollatorRewardPerBlock,
		&cfg.TreasuryRewardPerBlock,
		&cfg.DAppRewardPoolPerEra,
		&cfg.BaseStakerRewardPoolPerEra,
		&cfg.AdjustableStakerRewardPoolPerEra,
		&cfg.BonusRewardPoolPerPeriod,
	} {
		if *v == nil {
			*v = astar.Zero()
		}
	}
	return cfg
}
