// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

const (
	moduleBalances    = "Balances"
	moduleOracle      = "Oracle"
	moduleInflation   = "Inflation"
	moduleDappStaking = "DappStaking"
	moduleRuntime     = "Runtime"
)

// Balances
var (
	ErrInsufficientBalance = New(moduleBalances, "InsufficientBalance")
	ErrLiquidityRestricted = New(moduleBalances, "LiquidityRestrictions")
	ErrInvalidAmount       = New(moduleBalances, "InvalidAmount")
)

// Oracle
var (
	ErrInvalidPrice = New(moduleOracle, "InvalidPrice")
)

// Inflation
var (
	ErrInvalidInflationParameters = New(moduleInflation, "InvalidInflationParameters")
	ErrIssuanceCapExceeded        = New(moduleInflation, "IssuanceCapExceeded")
)

// Runtime
var (
	ErrBadOrigin     = New(moduleRuntime, "BadOrigin")
	ErrUnknownCall   = New(moduleRuntime, "UnknownCall")
	ErrInvalidArgs   = New(moduleRuntime, "InvalidArguments")
	ErrExhaustsBlock = New(moduleRuntime, "ExhaustsResources")
)

// DappStaking
var (
	ErrDisabled                          = New(moduleDappStaking, "Disabled")
	ErrContractAlreadyRegistered         = New(moduleDappStaking, "ContractAlreadyRegistered")
	ErrExceededMaxNumberOfContracts      = New(moduleDappStaking, "ExceededMaxNumberOfContracts")
	ErrNewDAppIdUnavailable              = New(moduleDappStaking, "NewDAppIdUnavailable")
	ErrInvalidSmartContract              = New(moduleDappStaking, "InvalidSmartContract")
	ErrContractNotFound                  = New(moduleDappStaking, "ContractNotFound")
	ErrOriginNotOwner                    = New(moduleDappStaking, "OriginNotOwner")
	ErrZeroAmount                        = New(moduleDappStaking, "ZeroAmount")
	ErrLockedAmountBelowThreshold        = New(moduleDappStaking, "LockedAmountBelowThreshold")
	ErrTooManyUnlockingChunks            = New(moduleDappStaking, "TooManyUnlockingChunks")
	ErrRemainingStakePreventsFullUnlock  = New(moduleDappStaking, "RemainingStakePreventsFullUnlock")
	ErrNoUnlockedChunksToClaim           = New(moduleDappStaking, "NoUnlockedChunksToClaim")
	ErrNoUnlockingChunks                 = New(moduleDappStaking, "NoUnlockingChunks")
	ErrInsufficientAvailableStake        = New(moduleDappStaking, "InsufficientAvailableStake")
	ErrNotOperatedContract               = New(moduleDappStaking, "NotOperatedContract")
	ErrCannotStakeInVotingSubperiod      = New(moduleDappStaking, "CannotStakeInVotingSubperiod")
	ErrCannotVoteInBuildAndEarnSubperiod = New(moduleDappStaking, "CannotVoteInBuildAndEarnSubperiod")
	ErrPeriodEndsInNextEra               = New(moduleDappStaking, "PeriodEndsInNextEra")
	ErrUnclaimedRewards                  = New(moduleDappStaking, "UnclaimedRewards")
	ErrInsufficientStakeAmount           = New(moduleDappStaking, "InsufficientStakeAmount")
	ErrTooManyStakedContracts            = New(moduleDappStaking, "TooManyStakedContracts")
	ErrStakingInfoNotFound               = New(moduleDappStaking, "NoStakingInfo")
	ErrUnstakeFromPastPeriod             = New(moduleDappStaking, "UnstakeFromPastPeriod")
	ErrUnstakeAmountTooLarge             = New(moduleDappStaking, "UnstakeAmountTooLarge")
	ErrNoClaimableRewards                = New(moduleDappStaking, "NoClaimableRewards")
	ErrRewardExpired                     = New(moduleDappStaking, "RewardExpired")
	ErrNotEligibleForBonusReward         = New(moduleDappStaking, "NotEligibleForBonusReward")
	ErrInvalidClaimPeriod                = New(moduleDappStaking, "InvalidClaimPeriod")
	ErrNoDAppTierInfo                    = New(moduleDappStaking, "NoDAppTierInfo")
	ErrContractStillActive               = New(moduleDappStaking, "ContractStillActive")
	ErrNoExpiredEntries                  = New(moduleDappStaking, "NoExpiredEntries")
	ErrInvalidTierParams                 = New(moduleDappStaking, "InvalidTierParams")
)
