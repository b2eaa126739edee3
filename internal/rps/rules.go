package rps

import (
	_ "embed"
	"fmt"
	"slices"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed rules.cue
var defaultRulesCUE []byte

// GameObject wraps a hand with the hands it beats and the hands it loses to.
// Verb says how it beats them ("wraps"); it may be empty.
type GameObject struct {
	Hand  Hand
	Beats []Hand
	Loses []Hand
	Verb  string
}

// Winner compares o against other and returns the outcome from o's side.
func (o GameObject) Winner(other GameObject) (Outcome, error) {
	switch {
	case other.Hand == o.Hand:
		return Draw, nil
	case slices.Contains(o.Beats, other.Hand):
		return Win, nil
	case slices.Contains(o.Loses, other.Hand):
		return Lose, nil
	}
	return 0, &ConsistencyError{Self: o.Hand, Other: other.Hand, Beats: o.Beats, Loses: o.Loses}
}

func (o GameObject) String() string {
	return fmt.Sprintf("<%s beats=%v, loses=%v>", o.Hand, o.Beats, o.Loses)
}

// Rules is a validated rule table keyed by hand.
type Rules struct {
	objects map[Hand]GameObject
}

// Object returns the GameObject for h.
func (r *Rules) Object(h Hand) (GameObject, bool) {
	obj, ok := r.objects[h]
	return obj, ok
}

// Hands returns every hand in the table, in menu order.
func (r *Rules) Hands() []Hand {
	hands := make([]Hand, 0, len(r.objects))
	for _, h := range AllHands() {
		if _, ok := r.objects[h]; ok {
			hands = append(hands, h)
		}
	}
	return hands
}

// Compare resolves a turn between two hands from a's side.
func (r *Rules) Compare(a, b Hand) (Outcome, error) {
	objA, ok := r.objects[a]
	if !ok {
		return 0, fmt.Errorf("compare: unknown hand %s", a)
	}
	objB, ok := r.objects[b]
	if !ok {
		return 0, fmt.Errorf("compare: unknown hand %s", b)
	}
	return objA.Winner(objB)
}

// DefaultRules loads the embedded rock-paper-scissors table.
func DefaultRules() (*Rules, error) {
	return LoadRules(defaultRulesCUE)
}

// ruleDoc mirrors the concrete shape of rules.cue.
type ruleDoc struct {
	Hands map[string]struct {
		Beats []string `json:"beats"`
		Loses []string `json:"loses"`
		Verb  string   `json:"verb"`
	} `json:"hands"`
}

// LoadRules compiles a CUE rule table and checks that it describes a
// complete rock-paper-scissors cycle.
func LoadRules(src []byte) (*Rules, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename("rules.cue"))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	handsVal := v.LookupPath(cue.ParsePath("hands"))
	if !handsVal.Exists() {
		return nil, &RuleError{Field: "hands", Message: "hands is required", Pos: v.Pos()}
	}

	var doc ruleDoc
	if err := v.Decode(&doc); err != nil {
		return nil, formatCUEError(err)
	}

	objects := make(map[Hand]GameObject, len(doc.Hands))
	for name, rel := range doc.Hands {
		h, err := ParseHand(name)
		if err != nil {
			return nil, &RuleError{Field: "hands." + name, Message: err.Error()}
		}
		beats, err := parseHands(rel.Beats)
		if err != nil {
			return nil, &RuleError{Field: "hands." + name + ".beats", Message: err.Error()}
		}
		loses, err := parseHands(rel.Loses)
		if err != nil {
			return nil, &RuleError{Field: "hands." + name + ".loses", Message: err.Error()}
		}
		objects[h] = GameObject{Hand: h, Beats: beats, Loses: loses, Verb: rel.Verb}
	}

	if err := checkRelation(objects); err != nil {
		return nil, err
	}
	return &Rules{objects: objects}, nil
}

func parseHands(names []string) ([]Hand, error) {
	hands := make([]Hand, 0, len(names))
	for _, n := range names {
		h, err := ParseHand(n)
		if err != nil {
			return nil, err
		}
		hands = append(hands, h)
	}
	return hands, nil
}

// checkRelation enforces: every hand present, no hand relates to itself,
// each distinct pair is ordered exactly once, and beats/loses mirror.
func checkRelation(objects map[Hand]GameObject) error {
	for _, h := range AllHands() {
		if _, ok := objects[h]; !ok {
			return &RuleError{Field: "hands." + h.String(), Message: "hand is missing"}
		}
	}

	for _, a := range AllHands() {
		objA := objects[a]
		if slices.Contains(objA.Beats, a) || slices.Contains(objA.Loses, a) {
			return &RuleError{Field: "hands." + a.String(), Message: "hand cannot beat or lose to itself"}
		}
		for _, b := range AllHands() {
			if a == b {
				continue
			}
			objB := objects[b]
			aBeatsB := slices.Contains(objA.Beats, b)
			aLosesB := slices.Contains(objA.Loses, b)
			if aBeatsB == aLosesB {
				return &RuleError{
					Field:   "hands." + a.String(),
					Message: fmt.Sprintf("must either beat or lose to %s, not both or neither", b),
				}
			}
			if aBeatsB && !slices.Contains(objB.Loses, a) {
				return &RuleError{
					Field:   "hands." + b.String() + ".loses",
					Message: fmt.Sprintf("%s beats %s but %s does not lose to it", a, b, b),
				}
			}
		}
	}
	return nil
}
