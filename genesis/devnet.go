// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/dappstaking/tiers"
	"github.com/astar-network/astar/builtin/inflation"
	"github.com/astar-network/astar/runtime"
)

// DevAccount account for development.
type DevAccount struct {
	Address    astar.Address
	PrivateKey *ecdsa.PrivateKey
}

var devAccounts atomic.Value

// DevAccounts returns the pre-funded accounts of dev chains.
func DevAccounts() []DevAccount {
	if accs := devAccounts.Load(); accs != nil {
		return accs.([]DevAccount)
	}

	var accs []DevAccount
	privKeys := []string{
		"dce1443bd2ef0c2631adc1c67e5c93f13dc23a41c18b536effbbdcbcdb96fb65",
		"321d6443bc6177273b5abf54210fe806d451d6b7973bccc2384ef78bbcd0bf51",
		"2d7c882bad2a01105e36dda3646693bc1aaaa45b0ed63fb0ce23c060294f3af2",
		"593537225b037191d322c3b1df585fb1e5100811b71a6f7fc7e29cca1333483e",
		"ca7b25fc980c759df5f3ce17a3d881d6e19a38e651fc4315fc08917edab41058",
		"88d2d80b12b92feaa0da6d62309463d20408157723f2d7e799b6a74ead9a673b",
		"fbb9e7ba5fe9969a71c6599052237b91adeb1e5fc0c96727b66e56ff5d02f9d0",
		"547fb081e73dc2e22b4aae5c60e2970b008ac4fc3073aebc27d41ace9c4f53e9",
		"c8c53657e41a8d669349fc287f57457bd746cb1fcfc38cf94d235deb2cfca81b",
		"87e0eba9c86c494d98353800571089f316740b0cb84c9a7cdf2fe5c9997c7966",
	}
	for _, str := range privKeys {
		pk, err := crypto.HexToECDSA(str)
		if err != nil {
			panic(err)
		}
		addr := crypto.PubkeyToAddress(pk.PublicKey)
		accs = append(accs, DevAccount{astar.Address(addr), pk})
	}
	devAccounts.Store(accs)
	return accs
}

// Default beneficiaries of the per block issuance on dev chains.
var (
	DevTreasury    = astar.BytesToAddress([]byte("Treasury"))
	DevCollatorPot = astar.BytesToAddress([]byte("CollatorPot"))
)

// DevAccountBalance is the initial free balance of every dev account.
var DevAccountBalance = astar.MustParseBalance("1000000000000000000000000000")

// DevTierParams returns four tiers with thresholds relative to the total issuance.
func DevTierParams() *tiers.TierParameters {
	return &tiers.TierParameters{
		RewardPortion: []astar.Permill{
			astar.PermillFromPercent(40),
			astar.PermillFromPercent(30),
			astar.PermillFromPercent(20),
			astar.PermillFromPercent(10),
		},
		SlotDistribution: []astar.Permill{
			astar.PermillFromPercent(5),
			astar.PermillFromPercent(20),
			astar.PermillFromPercent(30),
			astar.PermillFromPercent(45),
		},
		TierThresholds: []tiers.TierThreshold{
			tiers.DynamicShare(astar.PerbillFromParts(35_700_000), astar.PerbillFromParts(23_800_000)),
			tiers.DynamicShare(astar.PerbillFromParts(8_900_000), astar.PerbillFromParts(6_000_000)),
			tiers.DynamicShare(astar.PerbillFromParts(2_380_000), astar.PerbillFromParts(1_790_000)),
			tiers.FixedShare(astar.PerbillFromParts(200_000)),
		},
		SlotsPerPrice: 1000,
		BaseSlots:     50,
	}
}

// NewDevnet creates the genesis of a dev chain. Zero valued beneficiaries and
// sudo in cfg are replaced by the dev defaults, the first dev account being
// the sudo key.
func NewDevnet(cfg runtime.Config) *Genesis {
	if cfg.Sudo.IsZero() {
		cfg.Sudo = DevAccounts()[0].Address
	}
	if cfg.Beneficiaries.Treasury.IsZero() {
		cfg.Beneficiaries.Treasury = DevTreasury
	}
	if cfg.Beneficiaries.CollatorPot.IsZero() {
		cfg.Beneficiaries.CollatorPot = DevCollatorPot
	}

	builder := new(Builder).
		TierParams(DevTierParams()).
		InflationParams(inflation.DefaultParams())
	for _, acc := range DevAccounts() {
		builder.Alloc(acc.Address, DevAccountBalance)
	}
	builder.Alloc(cfg.Beneficiaries.Treasury, DevAccountBalance)

	return &Genesis{
		name:    "devnet",
		cfg:     cfg,
		builder: builder,
	}
}
