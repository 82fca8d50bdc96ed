package combspec

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/enadeau/combspec/internal/classdb"
	"github.com/enadeau/combspec/internal/config"
	"github.com/enadeau/combspec/internal/label"
	"github.com/enadeau/combspec/internal/queue"
	"github.com/enadeau/combspec/internal/ruledb"
)

// RuleStore is the capability Searcher needs from a rule accumulator:
// record a rule, toggle deterministic extraction, and try to extract a
// Specification. Both internal/ruledb.SimpleRuleDB and
// internal/forest.ForestRuleDB satisfy it structurally.
type RuleStore[C Class, S Strategy[C]] interface {
	Add(parent label.Label, children []label.Label, strategy S)
	SetDeterministic(deterministic bool)
	GetSpecification(root label.Label, classes *classdb.DB[C]) (*ruledb.Specification[C, S], error)
}

// Searcher drives a single search: one ClassDB, one ClassQueue, one
// RuleStore, all owned exclusively (§5: "single-threaded, cooperative ...
// owned exclusively by a Searcher instance").
//
// The zero value is not ready to use; construct one with New.
type Searcher[C Class, S Strategy[C], R RuleStore[C, S]] struct {
	classes *classdb.DB[C]
	queue   *queue.Queue
	pack    *StrategyPack[C, S]
	store   R
	logger  *zap.Logger

	root             label.Label
	producedLastRule bool
	exhausted        bool
}

// New interns startClass, seeds a queue with its label, and wires store
// as the rule accumulator for the search. logger may be nil, in which
// case the search proceeds silently.
func New[C Class, S Strategy[C], R RuleStore[C, S]](startClass C, pack *StrategyPack[C, S], store R, logger *zap.Logger) *Searcher[C, S, R] {
	classes := classdb.New[C]()
	root := classes.Intern(startClass)
	return &Searcher[C, S, R]{
		classes: classes,
		queue:   queue.New(pack.TierFactoryCount(), root),
		pack:    pack,
		store:   store,
		logger:  logger,
		root:    root,
	}
}

// ExpandOnce performs one step of §4.6's expand_once: pop the next work
// packet, apply its factory, intern every resulting class, record every
// resulting rule. It returns false once the queue is exhausted, at which
// point further calls are a no-op that also return false.
func (s *Searcher[C, S, R]) ExpandOnce() bool {
	if s.exhausted {
		return false
	}

	packet, ok := s.queue.Next(s.producedLastRule)
	s.producedLastRule = false
	if !ok {
		s.exhausted = true
		return false
	}

	class := s.classes.Get(packet.Label)
	factory := s.pack.Factory(packet.Tier, packet.FactoryIndex)
	rules := factory.Apply(class)

	for _, r := range rules {
		parentLabel := s.classes.Intern(r.Parent)
		childLabels := make([]label.Label, len(r.Children))
		for i, c := range r.Children {
			cl := s.classes.Intern(c)
			childLabels[i] = cl
			s.queue.Add(cl)
		}
		s.store.Add(parentLabel, childLabels, r.Strategy)
		s.producedLastRule = true
	}

	if s.logger != nil {
		s.logger.Debug("expanded class",
			zap.Uint32("label", uint32(packet.Label)),
			zap.Int("tier", int(packet.Tier)),
			zap.Int("rules_produced", len(rules)))
	}
	return true
}

// tryExtract asks the rule store for a specification rooted at the start
// class, converting its internal ruledb.Specification into the public,
// descriptor-aware Specification type.
func (s *Searcher[C, S, R]) tryExtract() (*Specification[C, S], error) {
	raw, err := s.store.GetSpecification(s.root, s.classes)
	if err != nil {
		return nil, err
	}
	rules := make([]Rule[C, S], len(raw.Rules))
	for i, r := range raw.Rules {
		rules[i] = Rule[C, S]{Parent: r.Parent, Strategy: r.Strategy, Children: r.Children}
	}
	return &Specification[C, S]{Rules: rules, Root: raw.Root}, nil
}

func (s *Searcher[C, S, R]) notFound() *SpecificationNotFoundError {
	return &SpecificationNotFoundError{Root: fmt.Sprintf("%v", s.classes.Get(s.root))}
}

// AutoSearch drives ExpandOnce to a fixpoint or until cfg's bound is hit
// (§4.6, §5): expand, then probe the rule store for a specification;
// return it as soon as one is found. MaxExpansions == 0 means unbounded,
// likewise an empty Deadline.
func (s *Searcher[C, S, R]) AutoSearch(cfg *config.SearchConfig) (*Specification[C, S], error) {
	s.store.SetDeterministic(cfg.Deterministic)

	deadlineDur, unbounded, err := cfg.DeadlineDuration()
	if err != nil {
		return nil, err
	}
	var deadline time.Time
	if !unbounded {
		deadline = time.Now().Add(deadlineDur)
	}

	expansions := 0
	for {
		more := s.ExpandOnce()

		if spec, err := s.tryExtract(); err == nil {
			return spec, nil
		}

		if !more {
			return nil, s.notFound()
		}

		expansions++
		if cfg.MaxExpansions > 0 && expansions >= cfg.MaxExpansions {
			return nil, s.notFound()
		}
		if !unbounded && !time.Now().Before(deadline) {
			return nil, s.notFound()
		}
	}
}
