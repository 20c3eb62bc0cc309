package sidebetservice

import (
	"sort"

	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

// BetTree is an arena of a tournament's side bets indexed by id. It is built
// once per request from the flat bet list; presses hang off their parent and
// chains of presses nest to any depth.
type BetTree struct {
	bets     map[sharedtypes.BetID]sharedtypes.SideBet
	children map[sharedtypes.BetID][]sharedtypes.BetID
	roots    []sharedtypes.BetID
}

// BuildBetTree assembles the arena and resolves press inheritance: a press
// with no parties of its own plays under its parent's parties, game type,
// and high-low rule. Bets pointing at a missing parent are treated as roots
// rather than dropped.
func BuildBetTree(bets []sharedtypes.SideBet) *BetTree {
	tree := &BetTree{
		bets:     make(map[sharedtypes.BetID]sharedtypes.SideBet, len(bets)),
		children: make(map[sharedtypes.BetID][]sharedtypes.BetID),
	}
	for _, bet := range bets {
		tree.bets[bet.ID] = bet
	}
	for _, bet := range bets {
		if bet.ParentBetID != nil {
			if _, ok := tree.bets[*bet.ParentBetID]; ok {
				tree.children[*bet.ParentBetID] = append(tree.children[*bet.ParentBetID], bet.ID)
				continue
			}
		}
		tree.roots = append(tree.roots, bet.ID)
	}

	sort.Slice(tree.roots, func(i, j int) bool { return tree.roots[i] < tree.roots[j] })
	for _, ids := range tree.children {
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	}

	for _, id := range tree.roots {
		tree.inherit(id)
	}
	return tree
}

func (t *BetTree) inherit(id sharedtypes.BetID) {
	parent := t.bets[id]
	for _, childID := range t.children[id] {
		child := t.bets[childID]
		if len(child.Party1.PlayerIDs) == 0 {
			child.Party1 = parent.Party1
		}
		if len(child.Party2.PlayerIDs) == 0 {
			child.Party2 = parent.Party2
		}
		if child.GameType == "" {
			child.GameType = parent.GameType
		}
		child.UseHighLow = child.UseHighLow || parent.UseHighLow
		t.bets[childID] = child
		t.inherit(childID)
	}
}

// Roots returns the top-level bets in id order.
func (t *BetTree) Roots() []sharedtypes.SideBet {
	out := make([]sharedtypes.SideBet, 0, len(t.roots))
	for _, id := range t.roots {
		out = append(out, t.bets[id])
	}
	return out
}

// Statuses computes the full status tree for the snapshot: one BetStatus per
// root bet with its presses (and their presses) nested beneath it. Player
// nets are derived once and shared by every bet in the tree.
func (t *BetTree) Statuses(snap sharedtypes.RoundSnapshot) []BetStatus {
	nets := roundNets(snap)
	out := make([]BetStatus, 0, len(t.roots))
	for _, id := range t.roots {
		out = append(out, t.status(id, snap.Config, nets))
	}
	return out
}

func (t *BetTree) status(id sharedtypes.BetID, cfg sharedtypes.RoundConfig, nets map[sharedtypes.PlayerID]netsByHole) BetStatus {
	status := computeBetStatus(t.bets[id], cfg, nets)
	for _, childID := range t.children[id] {
		status.Presses = append(status.Presses, t.status(childID, cfg, nets))
	}
	return status
}
