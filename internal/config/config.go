package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ericogr/warlord-cards/internal/engine"
	"github.com/ericogr/warlord-cards/internal/game"
	"gopkg.in/yaml.v3"
)

type cardEntry struct {
	ID         int             `json:"id" yaml:"id"`
	Name       string          `json:"name" yaml:"name"`
	HP         int             `json:"hp" yaml:"hp"`
	ATK        int             `json:"atk" yaml:"atk"`
	AttackType game.AttackType `json:"attack_type" yaml:"attack_type"`
	Rarity     game.Rarity     `json:"rarity" yaml:"rarity"`
	Faction    game.Faction    `json:"faction" yaml:"faction"`
	Abilities  []game.Ability  `json:"abilities" yaml:"abilities"`
}

type warlordEntry struct {
	ID        int            `json:"id" yaml:"id"`
	Name      string         `json:"name" yaml:"name"`
	HP        int            `json:"hp" yaml:"hp"`
	Abilities []game.Ability `json:"abilities" yaml:"abilities"`
}

// rulesEntry carries delays as milliseconds so JSON and YAML files read the same.
type rulesEntry struct {
	CopiesPerCard      int `json:"copies_per_card" yaml:"copies_per_card"`
	StartingHand       int `json:"starting_hand" yaml:"starting_hand"`
	MaxHand            int `json:"max_hand" yaml:"max_hand"`
	MaxTurns           int `json:"max_turns" yaml:"max_turns"`
	MaxCascadeDepth    int `json:"max_cascade_depth" yaml:"max_cascade_depth"`
	AttackDelayMS      int `json:"attack_delay_ms" yaml:"attack_delay_ms"`
	RangedDelayMS      int `json:"ranged_delay_ms" yaml:"ranged_delay_ms"`
	MaterializeDelayMS int `json:"materialize_delay_ms" yaml:"materialize_delay_ms"`
	RebornDelayMS      int `json:"reborn_delay_ms" yaml:"reborn_delay_ms"`
	BattleStartDelayMS int `json:"battle_start_delay_ms" yaml:"battle_start_delay_ms"`
	BotThinkDelayMS    int `json:"bot_think_delay_ms" yaml:"bot_think_delay_ms"`
}

type rawConfig struct {
	CardList    []cardEntry    `json:"card_list" yaml:"card_list"`
	WarlordList []warlordEntry `json:"warlord_list" yaml:"warlord_list"`
	Rules       *rulesEntry    `json:"rules" yaml:"rules"`
	Server      *struct {
		Address string `json:"address" yaml:"address"`
	} `json:"server" yaml:"server"`
}

// LoadedConfig contains the catalog to seed, the match rules and the
// server address to bind to.
type LoadedConfig struct {
	Cards         []game.CardDefinition
	Warlords      []game.WarlordDefinition
	Rules         engine.Rules
	ServerAddress string
}

// LoadConfig reads the catalog file at path. Files ending in .json are
// parsed as JSON, anything else as YAML. It requires `card_list` and
// `warlord_list`.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(b, &rc)
	} else {
		err = yaml.Unmarshal(b, &rc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.CardList) == 0 {
		return nil, fmt.Errorf("config file %s: card_list is empty (provide 'card_list' array)", path)
	}
	if len(rc.WarlordList) == 0 {
		return nil, fmt.Errorf("config file %s: warlord_list is empty (provide 'warlord_list' array)", path)
	}

	cards := make([]game.CardDefinition, 0, len(rc.CardList))
	for _, c := range rc.CardList {
		cards = append(cards, game.CardDefinition{
			ID:         c.ID,
			Name:       strings.TrimSpace(c.Name),
			HP:         c.HP,
			ATK:        c.ATK,
			AttackType: c.AttackType,
			Rarity:     c.Rarity,
			Faction:    c.Faction,
			Abilities:  c.Abilities,
		})
	}
	warlords := make([]game.WarlordDefinition, 0, len(rc.WarlordList))
	for _, w := range rc.WarlordList {
		warlords = append(warlords, game.WarlordDefinition{
			ID:        w.ID,
			Name:      strings.TrimSpace(w.Name),
			HP:        w.HP,
			Abilities: w.Abilities,
		})
	}

	if err := validateCards(cards); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	cardIDs := make(map[int]struct{}, len(cards))
	for _, c := range cards {
		cardIDs[c.ID] = struct{}{}
	}
	for _, c := range cards {
		if err := validateAbilities("card '"+c.Name+"'", c.Abilities, cardIDs); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}
	if err := validateWarlords(warlords, cardIDs); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}

	return &LoadedConfig{
		Cards:         cards,
		Warlords:      warlords,
		Rules:         rc.Rules.toRules(),
		ServerAddress: addr,
	}, nil
}

func (r *rulesEntry) toRules() engine.Rules {
	if r == nil {
		return engine.DefaultRules()
	}
	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }
	return engine.Rules{
		CopiesPerCard:    r.CopiesPerCard,
		StartingHand:     r.StartingHand,
		MaxHand:          r.MaxHand,
		MaxTurns:         r.MaxTurns,
		MaxCascadeDepth:  r.MaxCascadeDepth,
		AttackDelay:      ms(r.AttackDelayMS),
		RangedDelay:      ms(r.RangedDelayMS),
		MaterializeDelay: ms(r.MaterializeDelayMS),
		RebornDelay:      ms(r.RebornDelayMS),
		BattleStartDelay: ms(r.BattleStartDelayMS),
		BotThinkDelay:    ms(r.BotThinkDelayMS),
	}.WithDefaults()
}

// validateCards checks each entry and the cross-entry constraints: unique
// ids and unique names (case-insensitive).
func validateCards(cards []game.CardDefinition) error {
	ids := make(map[int]struct{}, len(cards))
	names := make(map[string]struct{}, len(cards))
	for _, c := range cards {
		if c.Name == "" {
			return fmt.Errorf("card entry %d missing 'name'", c.ID)
		}
		if c.ID <= 0 {
			return fmt.Errorf("card '%s' needs a positive 'id'", c.Name)
		}
		if _, exists := ids[c.ID]; exists {
			return fmt.Errorf("duplicate card id %d", c.ID)
		}
		ids[c.ID] = struct{}{}
		ln := strings.ToLower(c.Name)
		if _, exists := names[ln]; exists {
			return fmt.Errorf("duplicate card name '%s'", c.Name)
		}
		names[ln] = struct{}{}
		if c.HP <= 0 {
			return fmt.Errorf("card '%s' needs positive 'hp'", c.Name)
		}
		if c.ATK < 0 {
			return fmt.Errorf("card '%s' has negative 'atk'", c.Name)
		}
		if c.AttackType != game.Melee && c.AttackType != game.Ranged {
			return fmt.Errorf("card '%s' has unknown attack_type '%s'", c.Name, c.AttackType)
		}
	}
	return nil
}

func validateWarlords(warlords []game.WarlordDefinition, cardIDs map[int]struct{}) error {
	ids := make(map[int]struct{}, len(warlords))
	names := make(map[string]struct{}, len(warlords))
	for _, w := range warlords {
		if w.Name == "" {
			return fmt.Errorf("warlord entry %d missing 'name'", w.ID)
		}
		if w.ID <= 0 {
			return fmt.Errorf("warlord '%s' needs a positive 'id'", w.Name)
		}
		if _, exists := ids[w.ID]; exists {
			return fmt.Errorf("duplicate warlord id %d", w.ID)
		}
		ids[w.ID] = struct{}{}
		ln := strings.ToLower(w.Name)
		if _, exists := names[ln]; exists {
			return fmt.Errorf("duplicate warlord name '%s'", w.Name)
		}
		names[ln] = struct{}{}
		if w.HP <= 0 {
			return fmt.Errorf("warlord '%s' needs positive 'hp'", w.Name)
		}
		if err := validateAbilities("warlord '"+w.Name+"'", w.Abilities, cardIDs); err != nil {
			return err
		}
		// Triggers only reach cards on the field; a warlord keeps passive abilities.
		for _, a := range w.Abilities {
			if !a.Type.Passive() {
				return fmt.Errorf("warlord '%s' ability %s must be passive", w.Name, a.Type)
			}
		}
	}
	return nil
}

// validateAbilities rejects unknown enum names, active abilities without
// triggers and summons of cards that do not exist. A summon with no card
// bound is accepted; the engine skips it with a warning.
func validateAbilities(owner string, abilities []game.Ability, cardIDs map[int]struct{}) error {
	for _, a := range abilities {
		if !a.Type.Valid() {
			return fmt.Errorf("%s has unknown ability type '%s'", owner, a.Type)
		}
		for _, tr := range a.Triggers {
			if !tr.Valid() {
				return fmt.Errorf("%s ability %s has unknown trigger '%s'", owner, a.Type, tr)
			}
		}
		if !a.Type.Passive() && len(a.Triggers) == 0 {
			return fmt.Errorf("%s ability %s needs at least one trigger", owner, a.Type)
		}
		if !a.Target.Valid() {
			return fmt.Errorf("%s ability %s has unknown target '%s'", owner, a.Type, a.Target)
		}
		if !a.SummonLocation.Valid() {
			return fmt.Errorf("%s ability %s has unknown summon_location '%s'", owner, a.Type, a.SummonLocation)
		}
		if !a.Stat.Valid() {
			return fmt.Errorf("%s ability %s has unknown stat '%s'", owner, a.Type, a.Stat)
		}
		if a.Type == game.Summon && a.SummonID != 0 {
			if _, ok := cardIDs[a.SummonID]; !ok {
				return fmt.Errorf("%s summons unknown card id %d", owner, a.SummonID)
			}
		}
	}
	return nil
}
