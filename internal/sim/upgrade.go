package sim

import (
	"fmt"
	"strings"
)

// UpgradeType is a dense enum of level-up rewards.
type UpgradeType int

const (
	UpgradeNewAttack      UpgradeType = iota // grant a random attack from the pool
	UpgradeUltRadius                         // widen the ultimate's leash
	UpgradeUltCooldown                       // shorten the ultimate's cooldown
	UpgradeMoveTime                          // extend the per-move time budget
	UpgradeAttackCooldown                    // shrink one attack's cooldown multiplier
	UpgradeAttackTier                        // advance one attack to its next tier
	upgradeTypeCount
)

// UpgradeTypes lists every upgrade type in index order. Eligibility scans
// follow this order so seeded runs are reproducible.
func UpgradeTypes() []UpgradeType {
	return []UpgradeType{
		UpgradeNewAttack, UpgradeUltRadius, UpgradeUltCooldown,
		UpgradeMoveTime, UpgradeAttackCooldown, UpgradeAttackTier,
	}
}

func (t UpgradeType) String() string {
	switch t {
	case UpgradeNewAttack:
		return "new_attack"
	case UpgradeUltRadius:
		return "ult_radius"
	case UpgradeUltCooldown:
		return "ult_cooldown"
	case UpgradeMoveTime:
		return "move_time"
	case UpgradeAttackCooldown:
		return "attack_cooldown"
	case UpgradeAttackTier:
		return "attack_tier"
	default:
		return "unknown"
	}
}

// Title is the menu caption.
func (t UpgradeType) Title() string {
	switch t {
	case UpgradeNewAttack:
		return "New attack"
	case UpgradeUltRadius:
		return "Teleport range +1"
	case UpgradeUltCooldown:
		return "Teleport cooldown -1"
	case UpgradeMoveTime:
		return "More time per move"
	case UpgradeAttackCooldown:
		return "Faster attack"
	case UpgradeAttackTier:
		return "Upgrade attack"
	default:
		return "?"
	}
}

func ParseUpgradeType(s string) (UpgradeType, error) {
	for _, t := range UpgradeTypes() {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown upgrade type %q", s)
}

// PerAttack reports whether the upgrade targets one owned attack.
func (t UpgradeType) PerAttack() bool {
	return t == UpgradeAttackCooldown || t == UpgradeAttackTier
}

// --- Requirements ---

type RequirementKind int

const (
	RequireNone RequirementKind = iota
	RequireScore
	RequireAttackSlots
)

type Requirement struct {
	Kind  RequirementKind
	Value int
}

func (r Requirement) Check(score, attackSlots int) bool {
	switch r.Kind {
	case RequireNone:
		return true
	case RequireScore:
		return score >= r.Value
	case RequireAttackSlots:
		return attackSlots >= r.Value
	default:
		return false
	}
}

// --- Counters ---

// UpgradeInfo counts how often a repeatable upgrade was taken.
type UpgradeInfo struct {
	Current int
	Max     int
}

func (u UpgradeInfo) Maxed() bool {
	return u.Current >= u.Max
}

// Upgrade is either global (one counter) or per-attack (one counter per owned
// attack, grown as attacks are acquired).
type Upgrade struct {
	Type        UpgradeType
	Info        UpgradeInfo   // global upgrades
	Requirement Requirement   // global upgrades
	Slots       []UpgradeInfo // per-attack upgrades
	SlotMax     int           // per-attack upgrades
}

func (u *Upgrade) growSlots(n int) {
	for len(u.Slots) < n {
		u.Slots = append(u.Slots, UpgradeInfo{Max: u.SlotMax})
	}
}

// UpgradeOption is one menu entry. Attacks holds the eligible attack indices
// for per-attack upgrades and is empty for global ones.
type UpgradeOption struct {
	Type    UpgradeType
	Attacks []int
}

// Label is the menu text, with 1-based attack numbers for per-attack
// upgrades.
func (o UpgradeOption) Label() string {
	if len(o.Attacks) == 0 {
		return o.Type.Title()
	}
	nums := make([]string, len(o.Attacks))
	for i, a := range o.Attacks {
		nums[i] = fmt.Sprintf("#%d", a+1)
	}
	return o.Type.Title() + " " + strings.Join(nums, ",")
}

// UpgradeMenu exists only while level-ups are waiting to be resolved.
type UpgradeMenu struct {
	LevelUpsLeft int
	Options      []UpgradeOption
	Choice       int
}

// Selected is the highlighted option.
func (m *UpgradeMenu) Selected() UpgradeOption {
	return m.Options[m.Choice]
}

// MoveCursor shifts the highlight by the sign of dx, wrapping around.
func (m *UpgradeMenu) MoveCursor(dx int) {
	n := len(m.Options)
	if n == 0 {
		return
	}
	m.Choice = mod(m.Choice+sign(dx), n)
}

// maxMenuOptions caps the size of a level-up menu.
const maxMenuOptions = 3

// --- Eligibility ---

// upgradeOptions scans every upgrade for what may be offered right now.
func (s *State) upgradeOptions() []UpgradeOption {
	slots := s.AttackSlots()
	var out []UpgradeOption
	for _, t := range UpgradeTypes() {
		u := s.upgrades[t]
		if u == nil {
			continue
		}
		if !t.PerAttack() {
			if u.Info.Maxed() || !u.Requirement.Check(s.score, slots) || !s.globalApplicable(u, slots) {
				continue
			}
			out = append(out, UpgradeOption{Type: t})
			continue
		}
		u.growSlots(len(s.attacks))
		var idx []int
		for i, a := range s.attacks {
			if u.Slots[i].Maxed() || !s.attackApplicable(t, a) {
				continue
			}
			idx = append(idx, i)
		}
		if len(idx) > 0 {
			out = append(out, UpgradeOption{Type: t, Attacks: idx})
		}
	}
	return out
}

func (s *State) globalApplicable(u *Upgrade, slots int) bool {
	switch u.Type {
	case UpgradeNewAttack:
		// A free slot beyond every attack taken so far.
		need := Requirement{Kind: RequireAttackSlots, Value: u.Info.Current + 2}
		return len(s.potential) > 0 && need.Check(s.score, slots)
	case UpgradeUltCooldown:
		return s.ultimate.Action.Cooldown > 1
	default:
		return true
	}
}

func (s *State) attackApplicable(t UpgradeType, a *Attack) bool {
	switch t {
	case UpgradeAttackCooldown:
		return a.Action.Total() > s.cfg.Upgrades.AttackCooldownFloor
	case UpgradeAttackTier:
		return a.CanUpgrade()
	default:
		return false
	}
}

// --- Menu lifecycle ---

// upgrade opens a menu for pending level-ups. With nothing eligible the
// level-ups are consumed silently.
func (s *State) upgrade(levelUps int) {
	if levelUps <= 0 {
		return
	}
	if s.menu != nil {
		s.menu.LevelUpsLeft += levelUps
		return
	}
	options := s.upgradeOptions()
	if len(options) == 0 {
		s.emit(Event{Kind: EventUpgradeSkipped, Value: levelUps, Detail: "no eligible upgrades"})
		return
	}
	k := min(maxMenuOptions, len(options))
	picked := make([]UpgradeOption, 0, k)
	for _, i := range s.rng.Perm(len(options))[:k] {
		picked = append(picked, options[i])
	}
	s.menu = &UpgradeMenu{LevelUpsLeft: levelUps, Options: picked}
	s.emit(Event{Kind: EventUpgradeOffered, Value: len(picked), Detail: menuDetail(picked)})
}

func menuDetail(options []UpgradeOption) string {
	out := ""
	for i, o := range options {
		if i > 0 {
			out += ","
		}
		out += o.Type.String()
	}
	return out
}

// SelectUpgrade applies the highlighted option. With more level-ups pending a
// fresh menu is rolled, since eligibility may have changed.
func (s *State) SelectUpgrade() {
	if s.menu == nil || s.player.Dead {
		return
	}
	menu := s.menu
	opt := menu.Selected()
	u := s.upgrades[opt.Type]
	if u == nil {
		panic(fmt.Sprintf("invariant: menu offers unconfigured upgrade %s", opt.Type))
	}

	attack := -1
	if len(opt.Attacks) > 0 {
		attack = opt.Attacks[s.rng.Intn(len(opt.Attacks))]
	}
	s.applyUpgrade(opt.Type, attack)

	if opt.Type.PerAttack() {
		u.growSlots(len(s.attacks))
		if attack < 0 || attack >= len(u.Slots) {
			panic(fmt.Sprintf("invariant: no %s slot for attack %d", opt.Type, attack))
		}
		u.Slots[attack].Current++
	} else {
		u.Info.Current++
	}
	s.emit(Event{Kind: EventUpgradeSelected, Value: attack, Detail: opt.Type.String()})

	s.menu = nil
	if left := menu.LevelUpsLeft - 1; left > 0 {
		s.upgrade(left)
	}
}

func (s *State) applyUpgrade(t UpgradeType, attack int) {
	switch t {
	case UpgradeNewAttack:
		if len(s.potential) == 0 {
			panic("invariant: new attack offered with an empty pool")
		}
		i := s.rng.Intn(len(s.potential))
		s.attacks = append(s.attacks, s.potential[i])
		s.potential = append(s.potential[:i], s.potential[i+1:]...)
	case UpgradeUltRadius:
		s.ultimate.Radius++
	case UpgradeUltCooldown:
		s.ultimate.Action.Cooldown = max(1, s.ultimate.Action.Cooldown-1)
	case UpgradeMoveTime:
		s.moveTimeLimit += s.cfg.Upgrades.MoveTimeBonus
	case UpgradeAttackCooldown:
		s.attackAt(attack).Action.CooldownMultiplier *= s.cfg.Upgrades.AttackCooldownFactor
	case UpgradeAttackTier:
		s.attackAt(attack).Upgrade()
	default:
		panic(fmt.Sprintf("invariant: unknown upgrade type %d", t))
	}
}

func (s *State) attackAt(i int) *Attack {
	if i < 0 || i >= len(s.attacks) {
		panic(fmt.Sprintf("invariant: attack index %d out of range (have %d)", i, len(s.attacks)))
	}
	return s.attacks[i]
}
