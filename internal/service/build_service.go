package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Dendekky/gamelytics-ai/internal/cache"
	"github.com/Dendekky/gamelytics-ai/internal/model"
)

// Game phases.
const (
	PhaseEarly = "early"
	PhaseMid   = "mid"
	PhaseLate  = "late"
)

// ErrGameNotFound is returned when no stored live game matches the id.
var ErrGameNotFound = errors.New("live game not found")

// ErrPlayerNotInGame is returned when the player is not in the game's
// stored roster.
var ErrPlayerNotInGame = errors.New("player not found in live game")

// BuildService derives itemization advice for a player inside a stored
// live game. The output is a pure function of (player role, game
// phase, enemy threat vector) with no independent lifecycle.
type BuildService struct {
	db    *gorm.DB
	cache *cache.Cache
	ttl   time.Duration
}

// NewBuildService creates the service.
func NewBuildService(db *gorm.DB, c *cache.Cache, ttl time.Duration) *BuildService {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &BuildService{db: db, cache: c, ttl: ttl}
}

// phaseBuild is one role's template for a single game phase.
type phaseBuild struct {
	core        []string
	vsAD        []string
	vsAP        []string
	vsMixed     []string
	vsAssassins []string
	vsBurst     []string
}

// buildTemplates maps role to per-phase item templates.
var buildTemplates = map[string]map[string]phaseBuild{
	RoleADC: {
		PhaseEarly: {
			core:        []string{"Doran's Blade", "Berserker's Greaves", "Mythic Item"},
			vsAssassins: []string{"Guardian Angel", "Phantom Dancer", "Immortal Shieldbow"},
			vsAD:        []string{"Lord Dominik's Regards", "Blade of the Ruined King", "Kraken Slayer"},
			vsAP:        []string{"Bloodthirster", "Mercurial Scimitar", "Hexdrinker"},
		},
		PhaseMid: {
			core:        []string{"Infinity Edge", "Zeal Item", "Last Whisper Item"},
			vsAssassins: []string{"Stopwatch", "Maw of Malmortius", "Sterak's Gage"},
			vsAD:        []string{"Lord Dominik's Regards", "Blade of the Ruined King"},
			vsAP:        []string{"Bloodthirster", "Hexdrinker"},
			vsBurst:     []string{"Stopwatch", "Maw of Malmortius", "Sterak's Gage"},
		},
		PhaseLate: {
			core:        []string{"Full Build", "Elixir of Wrath", "Control Wards"},
			vsAssassins: []string{"Guardian Angel", "Mercurial Scimitar"},
			vsAD:        []string{"Lord Dominik's Regards", "Guardian Angel"},
			vsAP:        []string{"Bloodthirster", "Mercurial Scimitar"},
		},
	},
	RoleSupport: {
		PhaseEarly: {
			core:    []string{"Support Item", "Control Wards", "Boots"},
			vsAD:    []string{"Relic Shield", "Guardian Rune", "Heal"},
			vsAP:    []string{"Mobility Boots", "Locket", "Redemption"},
			vsBurst: []string{"Locket of the Iron Solari", "Knight's Vow"},
		},
		PhaseMid: {
			core:    []string{"Mythic Support Item", "Redemption", "Locket"},
			vsAD:    []string{"Locket of the Iron Solari", "Zeke's Convergence"},
			vsAP:    []string{"Moonstone Renewer", "Staff of Flowing Water"},
			vsBurst: []string{"Locket", "Knight's Vow", "Mikael's Blessing"},
		},
		PhaseLate: {
			core:    []string{"Full Support Build", "Pink Wards", "Elixir"},
			vsAD:    []string{"Locket", "Knight's Vow", "Frozen Heart"},
			vsAP:    []string{"Redemption", "Mikael's Blessing", "Shurelya's"},
			vsMixed: []string{"Locket", "Redemption"},
		},
	},
	RoleTank: {
		PhaseEarly: {
			core:    []string{"Health/Armor", "Boots", "Doran's Shield"},
			vsAD:    []string{"Cloth Armor", "Bramble Vest", "Plated Steelcaps"},
			vsAP:    []string{"Spectre's Cowl", "Mercury Treads", "Magic Resist"},
			vsMixed: []string{"Bami's Cinder", "Kindlegem", "Defensive Boots"},
		},
		PhaseMid: {
			core:    []string{"Mythic Tank Item", "Situational Armor/MR"},
			vsAD:    []string{"Thornmail", "Frozen Heart", "Randuin's Omen"},
			vsAP:    []string{"Force of Nature", "Abyssal Mask", "Spirit Visage"},
			vsMixed: []string{"Sunfire Aegis", "Gargoyle Stoneplate"},
		},
		PhaseLate: {
			core:    []string{"Full Tank Build", "Situational Items"},
			vsAD:    []string{"Thornmail", "Randuin's Omen"},
			vsAP:    []string{"Force of Nature", "Spirit Visage"},
			vsMixed: []string{"Warmog's Armor", "Gargoyle Stoneplate"},
		},
	},
	RoleMage: {
		PhaseEarly: {
			core:        []string{"Doran's Ring", "Lost Chapter", "Sorcerer's Shoes"},
			vsAD:        []string{"Seeker's Armguard", "Zhonya's Hourglass", "Cloth Armor"},
			vsAP:        []string{"Null-Magic Mantle", "Banshee's Veil", "Mercury Treads"},
			vsAssassins: []string{"Stopwatch", "Barrier", "Zhonya's"},
		},
		PhaseMid: {
			core:        []string{"Mythic AP Item", "Rabadon's Deathcap", "Void Staff"},
			vsAD:        []string{"Zhonya's Hourglass", "Guardian Angel"},
			vsAP:        []string{"Banshee's Veil", "Abyssal Mask"},
			vsAssassins: []string{"Zhonya's Hourglass", "Edge of Night"},
		},
		PhaseLate: {
			core:    []string{"Full AP Build", "Elixir of Sorcery"},
			vsAD:    []string{"Zhonya's", "Guardian Angel"},
			vsAP:    []string{"Banshee's Veil", "Abyssal Mask"},
			vsMixed: []string{"Morellonomicon", "Cosmic Drive"},
		},
	},
	RoleAssassin: {
		PhaseEarly: {
			core:    []string{"Long Sword", "Serrated Dirk", "Boots"},
			vsAD:    []string{"Cloth Armor", "Doran's Shield"},
			vsAP:    []string{"Doran's Shield", "Second Wind", "Lifesteal"},
			vsMixed: []string{"Black Cleaver components", "Serylda's Grudge"},
		},
		PhaseMid: {
			core:    []string{"Mythic Assassin Item", "Situational Lethality"},
			vsAD:    []string{"Eclipse", "Black Cleaver", "Serylda's"},
			vsAP:    []string{"Youmuu's", "Duskblade", "The Collector"},
			vsBurst: []string{"Prowler's Claw", "Edge of Night"},
		},
		PhaseLate: {
			core:    []string{"Full Assassin Build", "Guardian Angel"},
			vsAD:    []string{"Guardian Angel", "Death's Dance"},
			vsAP:    []string{"Edge of Night", "Mercurial Scimitar"},
			vsMixed: []string{"Lord Dominik's", "Serylda's Grudge"},
		},
	},
	RoleFighter: {
		PhaseEarly: {
			core:    []string{"Doran's items", "Health/AD", "Boots"},
			vsAD:    []string{"Cloth Armor", "Bramble Vest", "Plated Steelcaps"},
			vsAP:    []string{"Null-Magic Mantle", "Hexdrinker", "Mercury's"},
			vsMixed: []string{"Black Cleaver components", "Conqueror rune"},
		},
		PhaseMid: {
			core:    []string{"Mythic Fighter Item", "Sterak's", "Situational"},
			vsAD:    []string{"Sterak's Gage", "Guardian Angel", "Death's Dance"},
			vsAP:    []string{"Maw of Malmortius", "Force of Nature"},
			vsMixed: []string{"Black Cleaver", "Blade of the Ruined King"},
		},
		PhaseLate: {
			core:    []string{"Full Fighter Build", "Elixir of Wrath"},
			vsAD:    []string{"Guardian Angel", "Death's Dance"},
			vsAP:    []string{"Maw of Malmortius", "Quicksilver Sash"},
			vsMixed: []string{"Black Cleaver", "Serylda's Grudge"},
		},
	},
}

// BuildRecommendation is the itemization advice payload.
type BuildRecommendation struct {
	PlayerChampion    int              `json:"player_champion"`
	PlayerRole        string           `json:"player_role"`
	GamePhase         string           `json:"game_phase"`
	GameTimeMinutes   int              `json:"game_time_minutes"`
	ThreatVector      TeamThreatVector `json:"enemy_threats"`
	PriorityItems     []string         `json:"priority_items"`
	SituationalItems  []string         `json:"situational_items"`
	BootsChoice       string           `json:"boots_recommendation"`
	BuildOrder        []string         `json:"build_order"`
	DefensivePriority string           `json:"defensive_priority"`
	SituationalAdvice []string         `json:"situational_advice"`
}

// GetRecommendations derives build advice for the player in the stored
// live game.
func (s *BuildService) GetRecommendations(ctx context.Context, puuid, gameID string) (*BuildRecommendation, error) {
	return cache.CallWithCache(ctx, s.cache, "build:recommendations", s.ttl, func(ctx context.Context) (*BuildRecommendation, error) {
		return s.computeRecommendations(puuid, gameID)
	}, puuid, gameID)
}

func (s *BuildService) computeRecommendations(puuid, gameID string) (*BuildRecommendation, error) {
	var game model.LiveGame
	if err := s.db.Where("game_id = ?", gameID).First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	var player model.LiveGameParticipant
	err := s.db.Where("game_id = ? AND puuid = ?", gameID, puuid).First(&player).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotInGame
		}
		return nil, err
	}

	var enemies []model.LiveGameParticipant
	err = s.db.Where("game_id = ? AND team_id <> ?", gameID, player.TeamID).Find(&enemies).Error
	if err != nil {
		return nil, err
	}

	enemyChampions := make([]int, 0, len(enemies))
	for _, p := range enemies {
		enemyChampions = append(enemyChampions, p.ChampionID)
	}

	phase := gamePhase(game.GameLength)
	role := ChampionRole(player.ChampionID)
	threats := aggregateThreatVector(enemyChampions)

	rec := &BuildRecommendation{
		PlayerChampion:  player.ChampionID,
		PlayerRole:      role,
		GamePhase:       phase,
		GameTimeMinutes: game.GameLength / 60,
		ThreatVector:    threats,
	}

	templates, ok := buildTemplates[role]
	if !ok {
		return nil, fmt.Errorf("no build templates for role %q", role)
	}
	template := templates[phase]

	rec.PriorityItems = append(rec.PriorityItems, template.core...)

	switch {
	case threats.ADDamage > threats.APDamage:
		rec.SituationalItems = append(rec.SituationalItems, template.vsAD...)
		rec.BootsChoice = "Plated Steelcaps"
		rec.DefensivePriority = "armor"
	case threats.APDamage > threats.ADDamage:
		rec.SituationalItems = append(rec.SituationalItems, template.vsAP...)
		rec.BootsChoice = "Mercury's Treads"
		rec.DefensivePriority = "magic_resist"
	default:
		rec.SituationalItems = append(rec.SituationalItems, template.vsMixed...)
		rec.BootsChoice = "Depends on primary threat"
		rec.DefensivePriority = "health_and_resistances"
	}

	if threats.BurstPotential >= 6 {
		rec.SituationalItems = append(rec.SituationalItems, template.vsBurst...)
		rec.SituationalItems = append(rec.SituationalItems, "Stopwatch/Guardian Angel")
	}
	if threats.DivePotential >= 6 {
		rec.SituationalItems = append(rec.SituationalItems, "Flash", "Barrier/Heal", "Peel items")
		rec.SituationalItems = append(rec.SituationalItems, template.vsAssassins...)
	}

	rec.BuildOrder = buildOrder(phase)
	rec.SituationalAdvice = situationalAdvice(role, threats, phase)
	return rec, nil
}

func gamePhase(gameLengthSeconds int) string {
	minutes := gameLengthSeconds / 60
	switch {
	case minutes < 15:
		return PhaseEarly
	case minutes < 30:
		return PhaseMid
	default:
		return PhaseLate
	}
}

func buildOrder(phase string) []string {
	switch phase {
	case PhaseEarly:
		return []string{
			"Core damage item",
			"Boots",
			"Defensive component if behind",
			"Complete first item",
		}
	case PhaseMid:
		return []string{
			"Complete mythic",
			"Situational defense",
			"Core damage item",
			"Utility/Defense",
		}
	default:
		return []string{
			"Optimize full build",
			"Situational swaps",
			"Elixirs",
			"Guardian Angel if needed",
		}
	}
}

func situationalAdvice(role string, threats TeamThreatVector, phase string) []string {
	var advice []string

	switch role {
	case RoleADC:
		if threats.DivePotential >= 6 {
			advice = append(advice,
				"Stay near your team - enemy has high dive potential",
				"Consider defensive summoners (Barrier/Heal)")
		}
		if threats.BurstPotential >= 6 {
			advice = append(advice,
				"Build defensive items early - enemy has high burst",
				"Position conservatively in team fights")
		}
	case RoleSupport:
		if threats.DivePotential >= 6 {
			advice = append(advice,
				"Ward flanks and prioritize peel items",
				"Stay close to your ADC")
		}
		if threats.PokePotential >= 4 {
			advice = append(advice, "Build sustain items and play for disengage")
		}
	case RoleMage, RoleAssassin:
		if threats.DivePotential >= 6 {
			advice = append(advice,
				"Zhonya's/Guardian Angel should be early priority",
				"Play safe until you have defensive items")
		}
	}

	switch phase {
	case PhaseEarly:
		advice = append(advice, "Focus on core items before defensive options")
		if threats.BurstPotential >= 6 {
			advice = append(advice, "Consider early defensive components")
		}
	case PhaseMid:
		advice = append(advice, "Team fights starting - balance damage and defense")
		if threats.CrowdControl >= 6 {
			advice = append(advice, "QSS/Cleanse becomes valuable")
		}
	default:
		advice = append(advice,
			"Full builds - consider situational swaps",
			"Elixirs and vision control are crucial")
	}

	return advice
}
