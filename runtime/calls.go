// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"encoding/json"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/dappstaking"
	"github.com/astar-network/astar/builtin/dappstaking/protocol"
	"github.com/astar-network/astar/builtin/dappstaking/tiers"
	"github.com/astar-network/astar/builtin/inflation"
	"github.com/astar-network/astar/builtin/reverts"
)

// originKind tells how the signer of a call is turned into its origin.
type originKind uint8

const (
	// signed calls are dispatched as the signer.
	signed originKind = iota
	// root calls must be signed by the sudo account.
	root
	// managed calls are dispatched as root when signed by the sudo account.
	managed
)

type call struct {
	origin originKind
	run    func(env *env) error
}

// env is the environment of one dispatched call.
type env struct {
	*Modules
	origin dappstaking.Origin
	number uint32
	args   json.RawMessage
}

func (e *env) parseArgs(v any) error {
	if len(e.args) == 0 {
		return reverts.ErrInvalidArgs
	}
	if err := json.Unmarshal(e.args, v); err != nil {
		logger.Debug("invalid call arguments", "err", err)
		return reverts.ErrInvalidArgs
	}
	return nil
}

// amount converts a decoded amount argument, which must lie within
// [0, MaxBalance].
func amount(v *math.HexOrDecimal256) (*big.Int, error) {
	if v == nil {
		return new(big.Int), nil
	}
	a := (*big.Int)(v)
	if a.Sign() < 0 || a.Cmp(astar.MaxBalance) > 0 {
		return nil, reverts.ErrInvalidArgs
	}
	return a, nil
}

var calls = make(map[string]call)

// Calls returns the names of the dispatchable calls.
func Calls() []string {
	names := make([]string, 0, len(calls))
	for name := range calls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	defines := []struct {
		name   string
		origin originKind
		run    func(env *env) error
	}{
		{"balances.transfer", signed, func(env *env) error {
			var args struct {
				To     astar.Address
				Amount *math.HexOrDecimal256
			}
			if err := env.parseArgs(&args); err != nil {
				return err
			}
			amt, err := amount(args.Amount)
			if err != nil {
				return err
			}
			return env.Balances.Transfer(env.origin.Signer, args.To, amt)
		}},
		{"oracle.submitPrice", root, func(env *env) error {
			var args struct {
				Price astar.FixedU128
			}
			if err := env.parseArgs(&args); err != nil {
				return err
			}
			return env.Oracle.SubmitPrice(args.Price)
		}},
		{"inflation.setParams", root, func(env *env) error {
			var args inflation.Params
			if err := env.parseArgs(&args); err != nil {
				return err
			}
			return env.Inflation.SetParams(args)
		}},
		{"inflation.forceRecalculation", root, func(env *env) error {
			era, err := env.DappStaking.CurrentEra()
			if err != nil {
				return err
			}
			_, err = env.Inflation.ForceRecalculation(astar.SaturatingAddU32(era, 1))
			return err
		}},
		{"dappStaking.register", managed, func(env *env) error {
			var args struct {
				Owner    astar.Address
				Contract astar.Address
			}
			if err := env.parseArgs(&args); err != nil {
				return err
			}
			return env.DappStaking.Register(env.origin, args.Owner, args.Contract)
		}},
		{"dappStaking.unregister", managed, func(env *env) error {
			var args struct {
				Contract astar.Address
			}
			if err := env.parseArgs(&args); err != nil {
				return err
			}
			return env.DappStaking.Unregister(env.origin, args.Contract)
		}},
		{"dappStaking.setDAppOwner", managed, func(env *env) error {
			var args struct {
				Contract astar.Address
				NewOwner astar.Address
			}
			if err := env.parseArgs(&args); err != nil {
				return err
			}
			return env.DappStaking.SetDAppOwner(env.origin, args.Contract, args.NewOwner)
		}},
		{"dappStaking.setDAppRewardBeneficiary", signed, func(env *env) error {
			var args struct {
				Contract    astar.Address
				Beneficiary *astar.Address
			}
			if err := env.parseArgs(&args); err != nil {
				return err
			}
			return env.DappStaking.SetDAppRewardBeneficiary(env.origin, args.Contract, args.Beneficiary)
		}},
		{"dappStaking.lock", signed, func(env *env) error {
			var args struct {
				Amount *math.HexOrDecimal256
			}
			if err := env.parseArgs(&args); err != nil {
				return err
			}
			amt, err := amount(args.Amount)
			if err != nil {
				return err
			}
			return env.DappStaking.Lock(env.origin, amt)
		}},
		{"dappStaking.unlock", signed, func(env *env) error {
			var args struct {
				Amount *math.HexOrDecimal256
			}
			if err := env.parseArgs(&args); err != nil {
				return err
			}
			amt, err := amount(args.Amount)
			if err != nil {
				return err
			}
			return env.DappStaking.Unlock(env.origin, amt, env.number)
		}},
		{"dappStaking.claimUnlocked", signed, func(env *env) error {
			return env.DappStaking.ClaimUnlocked(env.origin, env.number)
		}},
		{"dappStaking.relockUnlocking", signed, func(env *env) error {
			return env.DappStaking.RelockUnlocking(env.origin)
		}},
		{"dappStaking.vote", signed, func(env *env) error {
			var args struct {
				Contract astar.Address
				Amount   *math.HexOrDecimal256
			}
			if err := env.parseArgs(&args); err != nil {
				return err
			}
			amt, err := amount(args.Amount)
			if err != nil {
				return err
			}
			return env.DappStaking.Vote(env.origin, args.Contract, amt)
		}},
		{"dappStaking.stake", signed, func(env *env) error {
			var args struct {
				Contract astar.Address
				Amount   *math.HexOrDecimal256
			}
			if err := env.parseArgs(&args); err != nil {
				return err
			}
			amt, err := amount(args.Amount)
			if err != nil {
				return err
			}
			return env.DappStaking.Stake(env.origin, args.Contract, amt)
		}},
		{"dappStaking.unstake", signed, func(env *env) error {
			var args struct {
				Contract astar.Address
				Amount   *math.HexOrDecimal256
			}
			if err := env.parseArgs(&args); err != nil {
				return err
			}
			amt, err := amount(args.Amount)
			if err != nil {
				return err
			}
			return env.DappStaking.Unstake(env.origin, args.Contract, amt)
		}},
		{"dappStaking.unstakeFromUnregistered", signed, func(env *env) error {
			var args struct {
				Contract astar.Address
			}
			if err := env.parseArgs(&args); err != nil {
				return err
			}
			return env.DappStaking.UnstakeFromUnregistered(env.origin, args.Contract)
		}},
		{"dappStaking.claimStakerRewards", signed, func(env *env) error {
			return env.DappStaking.ClaimStakerRewards(env.origin)
		}},
		{"dappStaking.claimBonusReward", signed, func(env *env) error {
			var args struct {
				Contract astar.Address
			}
			if err := env.parseArgs(&args); err != nil {
				return err
			}
			return env.DappStaking.ClaimBonusReward(env.origin, args.Contract)
		}},
		{"dappStaking.claimDAppReward", signed, func(env *env) error {
			var args struct {
				Contract astar.Address
				Period   uint32
			}
			if err := env.parseArgs(&args); err != nil {
				return err
			}
			return env.DappStaking.ClaimDAppReward(env.origin, args.Contract, args.Period)
		}},
		{"dappStaking.cleanupExpiredEntries", signed, func(env *env) error {
			return env.DappStaking.CleanupExpiredEntries(env.origin)
		}},
		{"dappStaking.setMaintenanceMode", root, func(env *env) error {
			var args struct {
				Enabled bool
			}
			if err := env.parseArgs(&args); err != nil {
				return err
			}
			return env.DappStaking.SetMaintenanceMode(env.origin, args.Enabled)
		}},
		{"dappStaking.setStaticTierParams", root, func(env *env) error {
			var args tiers.TierParameters
			if err := env.parseArgs(&args); err != nil {
				return err
			}
			return env.DappStaking.SetStaticTierParams(env.origin, &args)
		}},
		{"dappStaking.force", root, func(env *env) error {
			var args struct {
				ForcingType protocol.ForcingType
			}
			if err := env.parseArgs(&args); err != nil {
				return err
			}
			return env.DappStaking.Force(env.origin, args.ForcingType, env.number)
		}},
	}

	for _, def := range defines {
		if _, exists := calls[def.name]; exists {
			panic("duplicate call " + def.name)
		}
		calls[def.name] = call{origin: def.origin, run: def.run}
	}
}
