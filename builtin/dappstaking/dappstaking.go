// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package dappstaking implements dApp staking: accounts lock funds and stake
// them on registered smart contracts, eras accrue staker rewards, and at the
// end of every period the staked dApps are ranked into reward tiers.
package dappstaking

import (
	"math/big"

	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/dappstaking/erainfo"
	"github.com/astar-network/astar/builtin/dappstaking/protocol"
	"github.com/astar-network/astar/builtin/dappstaking/rewards"
	"github.com/astar-network/astar/builtin/dappstaking/tiers"
	"github.com/astar-network/astar/builtin/reverts"
	"github.com/astar-network/astar/builtin/storage"
	"github.com/astar-network/astar/log"
)

// StorageVersion is the storage layout written by genesis and reached by migrations.
const StorageVersion uint32 = 8

var logger = log.WithContext("pkg", "dappstaking")

// Currency locks and reserves the native currency of accounts.
type Currency interface {
	Usable(account astar.Address) (*big.Int, error)
	Freeze(account astar.Address, total *big.Int) error
	Thaw(account astar.Address) error
	Reserve(account astar.Address, amount *big.Int) error
	Unreserve(account astar.Address, amount *big.Int) (*big.Int, error)
	TotalIssuance() (*big.Int, error)
}

// PriceProvider supplies the native currency price used to size the tiers.
type PriceProvider interface {
	AveragePrice() (astar.FixedU128, error)
}

// RewardSource funds the reward pools and pays out claims.
type RewardSource interface {
	StakerAndDAppRewardPools(totalStaked *big.Int) (*big.Int, *big.Int, error)
	BonusRewardPool() (*big.Int, error)
	PayoutReward(account astar.Address, amount *big.Int) error
}

// CycleObserver is notified right before every new era. A RewardSource
// implementing it is notified automatically.
type CycleObserver interface {
	BlockBeforeNewEra(nextEra uint32) error
}

// DappStaking implements the dApp staking operations over one storage context.
type DappStaking struct {
	cfg      Config
	currency Currency
	oracle   PriceProvider
	source   RewardSource

	store           *store
	protocolService *protocol.Service
	eraInfoService  *erainfo.Service
	rewardsService  *rewards.Service

	events []Event
}

// New creates the engine. It holds no state besides the storage context.
func New(sctx *storage.Context, currency Currency, oracle PriceProvider, source RewardSource, cfg Config) *DappStaking {
	return &DappStaking{
		cfg:      cfg,
		currency: currency,
		oracle:   oracle,
		source:   source,

		store:           newStore(sctx),
		protocolService: protocol.New(sctx),
		eraInfoService:  erainfo.New(sctx),
		rewardsService:  rewards.New(sctx, cfg.EraRewardSpanLength),
	}
}

// Init writes the genesis state: era 1 of period 1 in the voting subperiod.
func (d *DappStaking) Init(params *tiers.TierParameters) error {
	if params == nil || !params.IsValid(d.cfg.NumberOfTiers) {
		return reverts.ErrInvalidTierParams
	}
	ps := protocol.Genesis(d.cfg.Cycle.VotingSubperiodLength())
	if err := d.protocolService.Set(ps); err != nil {
		return err
	}
	if err := d.eraInfoService.Set(erainfo.Genesis(ps.Era, ps.PeriodNumber())); err != nil {
		return err
	}
	if err := d.store.tierParams.Set(params); err != nil {
		return err
	}
	if err := d.recalculateTierConfig(); err != nil {
		return err
	}
	if err := d.rewardsService.SetCleanupMarker(&rewards.CleanupMarker{OldestValidPeriod: 1, DAppTiersIndex: 1}); err != nil {
		return err
	}
	if err := d.store.version.Set(StorageVersion); err != nil {
		return err
	}
	logger.Info("dapp staking initialized", "era", ps.Era, "nextEraStart", ps.NextEraStart)
	return nil
}

// Config returns the constants of the engine.
func (d *DappStaking) Config() Config {
	return d.cfg
}

// TakeEvents returns the events emitted since the last call and forgets them.
func (d *DappStaking) TakeEvents() []Event {
	events := d.events
	d.events = nil
	return events
}

func (d *DappStaking) emit(e Event) {
	d.events = append(d.events, e)
}

// enabledState returns the protocol state, failing in maintenance mode.
func (d *DappStaking) enabledState() (*protocol.ProtocolState, error) {
	ps, err := d.protocolService.Get()
	if err != nil {
		return nil, err
	}
	if ps.Maintenance {
		return nil, reverts.ErrDisabled
	}
	return ps, nil
}

// oldestClaimablePeriod is the oldest period whose rewards can still be claimed.
func (d *DappStaking) oldestClaimablePeriod(current uint32) uint32 {
	return max(astar.SaturatingSubU32(current, d.cfg.RewardRetentionInPeriods), 1)
}

func (d *DappStaking) recalculateTierConfig() error {
	params, err := d.store.staticTierParams()
	if err != nil {
		return err
	}
	prev, err := d.store.tierConfiguration()
	if err != nil {
		return err
	}
	price, err := d.oracle.AveragePrice()
	if err != nil {
		return err
	}
	issuance, err := d.currency.TotalIssuance()
	if err != nil {
		return err
	}
	if prev.NumberOfSlots == 0 {
		prev = nil
	}
	next := tiers.Recalculate(prev, params, price, issuance, d.cfg.MaxNumberOfContracts)
	return d.store.tierConfig.Set(next)
}
