package service

// Champion role archetypes. The table only covers commonly picked
// champions; unknown ids classify as RoleUnknown and carry no threat
// weighting.
const (
	RoleADC      = "adc"
	RoleSupport  = "support"
	RoleTank     = "tank"
	RoleAssassin = "assassin"
	RoleMage     = "mage"
	RoleFighter  = "fighter"
	RoleJungler  = "jungler"
	RoleUnknown  = "unknown"
)

// championRoles maps champion id to its primary archetype.
var championRoles = map[int]string{
	// ADCs
	22: RoleADC, 51: RoleADC, 119: RoleADC, 202: RoleADC, 145: RoleADC,
	429: RoleADC, 222: RoleADC, 18: RoleADC, 81: RoleADC, 15: RoleADC,
	236: RoleADC, 21: RoleADC, 133: RoleADC, 498: RoleADC,

	// Supports
	555: RoleSupport, 412: RoleSupport, 40: RoleSupport, 267: RoleSupport,
	25: RoleSupport, 16: RoleSupport, 37: RoleSupport, 43: RoleSupport,
	89: RoleSupport, 117: RoleSupport, 201: RoleSupport, 350: RoleSupport,
	223: RoleSupport, 78: RoleSupport, 526: RoleSupport,

	// Tanks
	86: RoleTank, 54: RoleTank, 32: RoleTank, 57: RoleTank, 111: RoleTank,
	516: RoleTank, 79: RoleTank, 113: RoleTank, 33: RoleTank, 72: RoleTank,
	58: RoleTank, 14: RoleTank,

	// Assassins
	7: RoleAssassin, 238: RoleAssassin, 91: RoleAssassin, 121: RoleAssassin,
	245: RoleAssassin, 55: RoleAssassin, 28: RoleAssassin, 105: RoleAssassin,
	84: RoleAssassin, 157: RoleAssassin,

	// Mages
	1: RoleMage, 61: RoleMage, 34: RoleMage, 69: RoleMage, 45: RoleMage,
	115: RoleMage, 268: RoleMage, 99: RoleMage, 90: RoleMage, 127: RoleMage,
	13: RoleMage, 134: RoleMage,

	// Fighters
	24: RoleFighter, 122: RoleFighter, 266: RoleFighter, 75: RoleFighter,
	80: RoleFighter, 92: RoleFighter, 2: RoleFighter, 23: RoleFighter,
	39: RoleFighter, 59: RoleFighter,

	// Junglers
	104: RoleJungler, 5: RoleJungler, 120: RoleJungler, 203: RoleJungler,
	76: RoleJungler, 19: RoleJungler, 421: RoleJungler, 48: RoleJungler,
	77: RoleJungler, 11: RoleJungler,
}

// ChampionRole returns the archetype for champion id, or RoleUnknown.
func ChampionRole(championID int) string {
	if role, ok := championRoles[championID]; ok {
		return role
	}
	return RoleUnknown
}

// Archetype sets used for team level composition reads.
var (
	assassinChampions = map[int]struct{}{7: {}, 238: {}, 91: {}, 121: {}}
	tankChampions     = map[int]struct{}{86: {}, 54: {}, 32: {}, 57: {}}
	pokeChampions     = map[int]struct{}{22: {}, 51: {}, 61: {}}
)

func countInSet(championIDs []int, set map[int]struct{}) int {
	seen := make(map[int]struct{})
	for _, id := range championIDs {
		if _, ok := set[id]; ok {
			seen[id] = struct{}{}
		}
	}
	return len(seen)
}
