package game

// Side identifies which half of the board an entity fights for.
type Side string

const (
	SidePlayer Side = "player"
	SideBot    Side = "bot"
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SidePlayer {
		return SideBot
	}
	return SidePlayer
}

type AttackType string

const (
	Melee  AttackType = "Melee"
	Ranged AttackType = "Ranged"
)

type Faction string

const (
	FactionSyndicate    Faction = "Syndicate"
	FactionFremen       Faction = "Fremen"
	FactionPeacekeepers Faction = "Peacekeepers"
)

type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
)

// AbilityType is the closed set of ability kinds. Status entries reuse the
// same names (Poisoning, Freeze, Miss, Silence, Infection).
type AbilityType string

const (
	Reborn          AbilityType = "Reborn"
	Electroshock    AbilityType = "Electroshock"
	BuffATK         AbilityType = "BuffATK"
	StealHealth     AbilityType = "StealHealth"
	Evasion         AbilityType = "Evasion"
	Splash          AbilityType = "Splash"
	Freeze          AbilityType = "Freeze"
	CounterAttack   AbilityType = "CounterAttack"
	Immunity        AbilityType = "Immunity"
	DebuffATK       AbilityType = "DebuffATK"
	Flight          AbilityType = "Flight"
	SetStat         AbilityType = "SetStat"
	Summon          AbilityType = "Summon"
	Vampirism       AbilityType = "Vampirism"
	Poisoning       AbilityType = "Poisoning"
	Resistance      AbilityType = "Resistance"
	Heal            AbilityType = "Heal"
	Block           AbilityType = "Block"
	Invulnerability AbilityType = "Invulnerability"
	Accuracy        AbilityType = "Accuracy"
	MultiAttack     AbilityType = "MultiAttack"
	StealAttack     AbilityType = "StealAttack"
	PunchThrough    AbilityType = "PunchThrough"
	Damage          AbilityType = "Damage"
	Miss            AbilityType = "Miss"
	Silence         AbilityType = "Silence"
	BuffHP          AbilityType = "BuffHP"
	Cleanse         AbilityType = "Cleanse"
	Infection       AbilityType = "Infection"
)

var abilityTypes = map[AbilityType]struct{}{
	Reborn: {}, Electroshock: {}, BuffATK: {}, StealHealth: {}, Evasion: {}, Splash: {},
	Freeze: {}, CounterAttack: {}, Immunity: {}, DebuffATK: {}, Flight: {}, SetStat: {},
	Summon: {}, Vampirism: {}, Poisoning: {}, Resistance: {}, Heal: {}, Block: {},
	Invulnerability: {}, Accuracy: {}, MultiAttack: {}, StealAttack: {}, PunchThrough: {},
	Damage: {}, Miss: {}, Silence: {}, BuffHP: {}, Cleanse: {}, Infection: {},
}

// Valid reports whether t is a known ability type.
func (t AbilityType) Valid() bool {
	_, ok := abilityTypes[t]
	return ok
}

// Passive abilities are consulted by other systems and never act when triggered.
func (t AbilityType) Passive() bool {
	switch t {
	case Immunity, Resistance, Block, Evasion, Flight, Accuracy, MultiAttack, Splash, Electroshock, Reborn:
		return true
	}
	return false
}

type TriggerType string

const (
	OwnAttack             TriggerType = "OwnAttack"
	AllyAttack            TriggerType = "AllyAttack"
	EnemyAttack           TriggerType = "EnemyAttack"
	SelfAttacked          TriggerType = "SelfAttacked"
	AllyAttacked          TriggerType = "AllyAttacked"
	AlliedWarlordAttacked TriggerType = "AlliedWarlordAttacked"
	AnyWarlordAttacked    TriggerType = "AnyWarlordAttacked"
	SelfSpawn             TriggerType = "SelfSpawn"
	AllySpawn             TriggerType = "AllySpawn"
	EnemySpawn            TriggerType = "EnemySpawn"
	BeforeAttack          TriggerType = "BeforeAttack"
	KillEnemy             TriggerType = "KillEnemy"
	AllyFactionSpawn      TriggerType = "AllyFactionSpawn"
	EndTurn               TriggerType = "EndTurn"
	StartTurn             TriggerType = "StartTurn"
	EnemyDeath            TriggerType = "EnemyDeath"
	AllyDeath             TriggerType = "AllyDeath"
)

var triggerTypes = map[TriggerType]struct{}{
	OwnAttack: {}, AllyAttack: {}, EnemyAttack: {}, SelfAttacked: {}, AllyAttacked: {},
	AlliedWarlordAttacked: {}, AnyWarlordAttacked: {}, SelfSpawn: {}, AllySpawn: {},
	EnemySpawn: {}, BeforeAttack: {}, KillEnemy: {}, AllyFactionSpawn: {}, EndTurn: {},
	StartTurn: {}, EnemyDeath: {}, AllyDeath: {},
}

func (t TriggerType) Valid() bool {
	_, ok := triggerTypes[t]
	return ok
}

type TargetType string

const (
	TargetNone          TargetType = "None"
	TargetSelf          TargetType = "Self"
	TargetWarlord       TargetType = "Warlord"
	TargetAllAllies     TargetType = "AllAllies"
	TargetRandomAllies  TargetType = "RandomAllies"
	TargetAllEnemies    TargetType = "AllEnemies"
	TargetRandomEnemies TargetType = "RandomEnemies"
)

func (t TargetType) Valid() bool {
	switch t {
	case "", TargetNone, TargetSelf, TargetWarlord, TargetAllAllies, TargetRandomAllies, TargetAllEnemies, TargetRandomEnemies:
		return true
	}
	return false
}

type SummonLocation string

const (
	SummonRandom   SummonLocation = "Random"
	SummonBehind   SummonLocation = "Behind"
	SummonFrontRow SummonLocation = "FrontRow"
)

func (l SummonLocation) Valid() bool {
	switch l {
	case "", SummonRandom, SummonBehind, SummonFrontRow:
		return true
	}
	return false
}

type StatType string

const (
	StatNone StatType = "None"
	StatATK  StatType = "ATK"
	StatHP   StatType = "HP"
)

func (s StatType) Valid() bool {
	switch s {
	case "", StatNone, StatATK, StatHP:
		return true
	}
	return false
}
