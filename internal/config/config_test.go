package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ericogr/warlord-cards/internal/engine"
	"github.com/ericogr/warlord-cards/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
card_list:
  - id: 1
    name: Rifleman
    hp: 10
    atk: 3
    attack_type: Ranged
    rarity: Common
    faction: Syndicate
    abilities:
      - type: BuffATK
        triggers: [KillEnemy]
        target: Self
        value: 1
  - id: 2
    name: Medic
    hp: 8
    atk: 1
    attack_type: Melee
    abilities:
      - type: Summon
        triggers: [SelfSpawn]
        summon_id: 1
        summon_location: Behind
      - type: Block
        value: 1
warlord_list:
  - id: 1
    name: Baron
    hp: 30
rules:
  max_hand: 6
  attack_delay_ms: 250
server:
  address: ":9090"
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadConfig_YAML(t *testing.T) {
	cfg, err := LoadConfig(writeFile(t, "warlord_config.yaml", sampleYAML))
	require.NoError(t, err)

	require.Len(t, cfg.Cards, 2)
	assert.Equal(t, game.Ranged, cfg.Cards[0].AttackType)
	assert.Equal(t, []game.TriggerType{game.KillEnemy}, cfg.Cards[0].Abilities[0].Triggers)
	assert.Equal(t, game.SummonBehind, cfg.Cards[1].Abilities[0].SummonLocation)
	require.Len(t, cfg.Warlords, 1)
	assert.Equal(t, ":9090", cfg.ServerAddress)

	assert.Equal(t, 6, cfg.Rules.MaxHand)
	assert.Equal(t, 250*time.Millisecond, cfg.Rules.AttackDelay)
	assert.Equal(t, engine.DefaultRules().StartingHand, cfg.Rules.StartingHand)
	assert.Equal(t, engine.DefaultRules().RangedDelay, cfg.Rules.RangedDelay)
}

func TestLoadConfig_JSONDefaults(t *testing.T) {
	body := `{
		"card_list": [{"id": 4, "name": "Drone", "hp": 2, "atk": 1, "attack_type": "Ranged"}],
		"warlord_list": [{"id": 1, "name": "Baron", "hp": 30}]
	}`
	cfg, err := LoadConfig(writeFile(t, "catalog.json", body))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, engine.DefaultRules(), cfg.Rules)
	for _, c := range cfg.Cards {
		for _, ab := range c.Abilities {
			if ab.Type == game.Splash {
				assert.Positive(t, ab.Value, c.Name)
			}
		}
	}
}

func TestLoadConfig_Validation(t *testing.T) {
	warlords := `
warlord_list:
  - {id: 1, name: Baron, hp: 30}
`
	cases := map[string]string{
		"empty cards":     warlords,
		"empty warlords":  "card_list:\n  - {id: 1, name: A, hp: 1, atk: 1, attack_type: Melee}\n",
		"duplicate id":    "card_list:\n  - {id: 1, name: A, hp: 1, atk: 1, attack_type: Melee}\n  - {id: 1, name: B, hp: 1, atk: 1, attack_type: Melee}\n" + warlords,
		"duplicate name":  "card_list:\n  - {id: 1, name: Ace, hp: 1, atk: 1, attack_type: Melee}\n  - {id: 2, name: ace, hp: 1, atk: 1, attack_type: Melee}\n" + warlords,
		"zero hp":         "card_list:\n  - {id: 1, name: A, hp: 0, atk: 1, attack_type: Melee}\n" + warlords,
		"negative atk":    "card_list:\n  - {id: 1, name: A, hp: 1, atk: -1, attack_type: Melee}\n" + warlords,
		"bad attack type": "card_list:\n  - {id: 1, name: A, hp: 1, atk: 1, attack_type: Magic}\n" + warlords,
		"unknown ability": "card_list:\n  - {id: 1, name: A, hp: 1, atk: 1, attack_type: Melee, abilities: [{type: Teleport}]}\n" + warlords,
		"unknown trigger": "card_list:\n  - {id: 1, name: A, hp: 1, atk: 1, attack_type: Melee, abilities: [{type: Heal, triggers: [Dawn]}]}\n" + warlords,
		"missing trigger": "card_list:\n  - {id: 1, name: A, hp: 1, atk: 1, attack_type: Melee, abilities: [{type: Heal, value: 2}]}\n" + warlords,
		"unknown summon":  "card_list:\n  - {id: 1, name: A, hp: 1, atk: 1, attack_type: Melee, abilities: [{type: Summon, triggers: [SelfSpawn], summon_id: 9}]}\n" + warlords,
		"bad target":      "card_list:\n  - {id: 1, name: A, hp: 1, atk: 1, attack_type: Melee, abilities: [{type: Heal, triggers: [EndTurn], target: Moon}]}\n" + warlords,
		"warlord zero hp": "card_list:\n  - {id: 1, name: A, hp: 1, atk: 1, attack_type: Melee}\nwarlord_list:\n  - {id: 1, name: Baron, hp: 0}\n",
		"warlord trigger": "card_list:\n  - {id: 1, name: A, hp: 1, atk: 1, attack_type: Melee}\nwarlord_list:\n  - {id: 1, name: Baron, hp: 9, abilities: [{type: Heal, triggers: [StartTurn], target: AllAllies, value: 3}]}\n",
		"not yaml at all": "card_list: [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeFile(t, "c.yaml", body))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadServerEnv(t *testing.T) {
	t.Setenv("WARLORD_ADDR", ":7000")
	t.Setenv("WARLORD_PLACEMENT_TIMEOUT", "90s")
	cfg, err := LoadServerEnv()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Address)
	assert.Equal(t, 90*time.Second, cfg.PlacementTimeout)
	assert.Equal(t, "./warlord_config.yaml", cfg.ConfigPath)
	assert.Equal(t, 5*time.Second, cfg.ScanInterval)

	t.Setenv("WARLORD_PLACEMENT_TIMEOUT", "soon")
	_, err = LoadServerEnv()
	assert.Error(t, err)
}

func TestLoadConfig_ShippedSample(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "warlord_config.yaml"))
	require.NoError(t, err)
	assert.Len(t, cfg.Cards, 14)
	assert.Len(t, cfg.Warlords, 3)
	assert.Equal(t, engine.DefaultRules(), cfg.Rules)
}

func TestLoadConfig_WarlordAbilitiesMustBePassive(t *testing.T) {
	body := "card_list:\n  - {id: 1, name: A, hp: 1, atk: 1, attack_type: Melee}\n" +
		"warlord_list:\n  - {id: 1, name: Baron, hp: 9, abilities: [{type: BuffATK, triggers: [AllyDeath], value: 1}]}\n"
	_, err := LoadConfig(writeFile(t, "c.yaml", body))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be passive")

	body = "card_list:\n  - {id: 1, name: A, hp: 1, atk: 1, attack_type: Melee}\n" +
		"warlord_list:\n  - {id: 1, name: Baron, hp: 9, abilities: [{type: Resistance, value: 20}]}\n"
	cfg, err := LoadConfig(writeFile(t, "c.yaml", body))
	require.NoError(t, err)
	assert.Equal(t, game.Resistance, cfg.Warlords[0].Abilities[0].Type)
}
