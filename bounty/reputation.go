package bounty

// AccessTier advisory creator trust band derived from reputation. The program
// does not gate anything on tiers; agents use them to decide which creators'
// bounties are worth working on.
type AccessTier string

const (
	TierBlocked AccessTier = "Blocked"
	TierLimited AccessTier = "Limited"
	TierFull    AccessTier = "Full Access"
)

// Tier boundaries.
const (
	tierLimitedMin = 30
	tierFullMin    = 60
)

// LimitedMaxBountyAtoms advisory per-bounty cap for Limited creators: 100 USDC.
const LimitedMaxBountyAtoms uint64 = 100 * AtomsPerToken

// TierFor map a reputation score to its access tier.
func TierFor(reputation int64) AccessTier {
	switch {
	case reputation >= tierFullMin:
		return TierFull
	case reputation >= tierLimitedMin:
		return TierLimited
	default:
		return TierBlocked
	}
}

// CanCreate report whether the tier permits creating new bounties at all.
func (t AccessTier) CanCreate() bool {
	return t != TierBlocked
}

// MaxBountyAtoms advisory per-bounty amount cap for the tier. Zero for
// Blocked; 0 second return means unlimited.
func (t AccessTier) MaxBountyAtoms() (limit uint64, capped bool) {
	switch t {
	case TierBlocked:
		return 0, true
	case TierLimited:
		return LimitedMaxBountyAtoms, true
	default:
		return 0, false
	}
}
