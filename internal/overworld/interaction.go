package overworld

import (
	"math/rand"

	"github.com/vovakirdan/campus-dex/internal/core"
	"github.com/vovakirdan/campus-dex/internal/dex"
	"github.com/vovakirdan/campus-dex/internal/world"
)

// InteractionKind is the result of an interaction request.
type InteractionKind int

const (
	// InteractNone: the player is not in a catch zone.
	InteractNone InteractionKind = iota
	// InteractAllComplete: in a zone, but every creature is caught.
	InteractAllComplete
	// InteractOpen: a puzzle was selected.
	InteractOpen
	// InteractBusy: a puzzle is already running.
	InteractBusy
)

// String returns the kind name.
func (k InteractionKind) String() string {
	switch k {
	case InteractNone:
		return "none"
	case InteractAllComplete:
		return "all-complete"
	case InteractOpen:
		return "open"
	case InteractBusy:
		return "busy"
	default:
		return "unknown"
	}
}

// Interaction is the resolver's decision.
type Interaction struct {
	Kind InteractionKind
	Game dex.ID // set for InteractOpen
}

// Resolver decides what an interaction at a position does.
type Resolver struct {
	zones      *world.Zones
	collection *dex.Collection
	rng        *rand.Rand
	tileSize   int
}

// NewResolver creates a resolver over the session's zones and collection.
func NewResolver(zones *world.Zones, collection *dex.Collection, rng *rand.Rand, tileSize int) *Resolver {
	return &Resolver{zones: zones, collection: collection, rng: rng, tileSize: tileSize}
}

// Resolve picks a puzzle uniformly from the uncleared creatures when pos is
// inside a catch zone.
func (r *Resolver) Resolve(pos core.Vec) Interaction {
	if r == nil || r.zones == nil || r.collection == nil {
		return Interaction{Kind: InteractNone}
	}
	if !r.zones.IsInteractable(pos, r.tileSize) {
		return Interaction{Kind: InteractNone}
	}
	left := r.collection.Uncleared()
	if len(left) == 0 {
		return Interaction{Kind: InteractAllComplete}
	}
	return Interaction{Kind: InteractOpen, Game: left[r.rng.Intn(len(left))]}
}
