package entities

// DefaultMaxXP is the ceiling for both XP counters
const DefaultMaxXP = 1000

// BattleState is a read-only snapshot of the quest list and both XP counters
type BattleState struct {
	Quests  []*Quest
	UserXP  int
	RivalXP int
	MaxXP   int

	// Busy is true while a rival update is in flight
	Busy bool

	// EditingQuestID is the quest currently open for editing, empty when none
	EditingQuestID string
}

// FindQuest returns the quest with id, or nil
func (s *BattleState) FindQuest(id string) *Quest {
	for _, q := range s.Quests {
		if q.ID == id {
			return q
		}
	}
	return nil
}

// EditingQuest resolves the edit slot against the quest list
func (s *BattleState) EditingQuest() *Quest {
	if s.EditingQuestID == "" {
		return nil
	}
	return s.FindQuest(s.EditingQuestID)
}

// ClampXP bounds v to [0, maxXP]
func ClampXP(v, maxXP int) int {
	return min(max(v, 0), maxXP)
}

// AddXP applies delta to cur and bounds the result to [0, maxXP] without
// overflowing on large deltas.
func AddXP(cur, delta, maxXP int) int {
	cur = ClampXP(cur, maxXP)
	switch {
	case delta > 0 && delta > maxXP-cur:
		return maxXP
	case delta < 0 && delta < -cur:
		return 0
	}
	return cur + delta
}

// CloneQuests deep-copies a quest list, preserving order
func CloneQuests(quests []*Quest) []*Quest {
	out := make([]*Quest, len(quests))
	for i, q := range quests {
		out[i] = q.Clone()
	}
	return out
}
