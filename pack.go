package combspec

import "github.com/enadeau/combspec/internal/queue"

// StrategyPack groups a domain's strategy factories into the four
// scheduling tiers (§3, §6): verifications first, then inferrals, then
// initials, then expansions. The zero value is a valid, empty pack.
//
// Grounded on original_source/src/pack.rs's StrategyPack, generalized
// from its flat get_strategy_factory linear index into direct
// (tier, index) addressing matching internal/queue.Packet's shape.
type StrategyPack[C any, S Strategy[C]] struct {
	Verifications []StrategyFactory[C, S]
	Inferrals     []StrategyFactory[C, S]
	Initials      []StrategyFactory[C, S]
	Expansions    []StrategyFactory[C, S]
}

// Len reports the total number of factories across all four tiers.
func (p *StrategyPack[C, S]) Len() int {
	return len(p.Verifications) + len(p.Inferrals) + len(p.Initials) + len(p.Expansions)
}

// TierFactoryCount reports, for each queue.Tier in priority order, how
// many factories the pack carries — exactly the shape internal/queue.New
// needs to lay out its per-tier FIFOs.
func (p *StrategyPack[C, S]) TierFactoryCount() [4]int {
	return [4]int{
		int(queue.TierVerification): len(p.Verifications),
		int(queue.TierInferral):     len(p.Inferrals),
		int(queue.TierInitial):      len(p.Initials),
		int(queue.TierExpansion):    len(p.Expansions),
	}
}

// Factory returns the factory addressed by (tier, index), as assigned at
// pack-assembly time. index out of range for the tier is a contract
// violation: the queue never hands back an index it wasn't given by
// TierFactoryCount.
func (p *StrategyPack[C, S]) Factory(tier queue.Tier, index int) StrategyFactory[C, S] {
	switch tier {
	case queue.TierVerification:
		return p.Verifications[index]
	case queue.TierInferral:
		return p.Inferrals[index]
	case queue.TierInitial:
		return p.Initials[index]
	case queue.TierExpansion:
		return p.Expansions[index]
	default:
		panic("combspec: logic error, unknown tier")
	}
}
