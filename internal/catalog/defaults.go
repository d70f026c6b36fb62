package catalog

import "github.com/durakfree/durak-server-go/internal/game"

// defaultFactionNames is the built-in faction table.
var defaultFactionNames = map[int]string{
	1: "Wolves",
	2: "Ravens",
	3: "Serpents",
	4: "Bears",
	5: "Lynxes",
	6: "Boars",
	7: "Owls",
	8: "Stags",
}

// defaultCards is the built-in 36-card set: powers run 10..95 and every
// card carries one to three factions, with enough overlap that faction
// chains and attach plays come up in normal games.
var defaultCards = []game.Card{
	{ID: 1, Name: "Wolf Whelp", Power: 10, Factions: []int{1}},
	{ID: 2, Name: "Raven Scout", Power: 12, Factions: []int{2}},
	{ID: 3, Name: "Grass Adder", Power: 14, Factions: []int{3}},
	{ID: 4, Name: "Bear Cub", Power: 16, Factions: []int{4}},
	{ID: 5, Name: "Lynx Kit", Power: 18, Factions: []int{5}},
	{ID: 6, Name: "Young Boar", Power: 20, Factions: []int{6}},
	{ID: 7, Name: "Barn Owl", Power: 22, Factions: []int{7}},
	{ID: 8, Name: "Stag Fawn", Power: 24, Factions: []int{8}},
	{ID: 9, Name: "Gray Howler", Power: 26, Factions: []int{1, 2}},
	{ID: 10, Name: "Carrion Crow", Power: 28, Factions: []int{2, 3}},
	{ID: 11, Name: "Pit Viper", Power: 30, Factions: []int{3, 4}},
	{ID: 12, Name: "Honey Thief", Power: 32, Factions: []int{4, 5}},
	{ID: 13, Name: "Tuft-Eared Stalker", Power: 34, Factions: []int{5, 6}},
	{ID: 14, Name: "Tusked Charger", Power: 36, Factions: []int{6, 7}},
	{ID: 15, Name: "Night Watcher", Power: 38, Factions: []int{7, 8}},
	{ID: 16, Name: "Antler Sentinel", Power: 40, Factions: []int{8, 1}},
	{ID: 17, Name: "Pack Hunter", Power: 42, Factions: []int{1, 3}},
	{ID: 18, Name: "Storm Raven", Power: 44, Factions: []int{2, 4}},
	{ID: 19, Name: "Coiled Striker", Power: 46, Factions: []int{3, 5}},
	{ID: 20, Name: "Cave Guardian", Power: 48, Factions: []int{4, 6}},
	{ID: 21, Name: "Shadow Pouncer", Power: 50, Factions: []int{5, 7}},
	{ID: 22, Name: "Iron Bristle", Power: 52, Factions: []int{6, 8}},
	{ID: 23, Name: "Moon Screecher", Power: 54, Factions: []int{7, 1}},
	{ID: 24, Name: "Thicket King", Power: 56, Factions: []int{8, 2}},
	{ID: 25, Name: "Timber Alpha", Power: 58, Factions: []int{1, 2, 3}},
	{ID: 26, Name: "Gallows Flock", Power: 62, Factions: []int{2, 3, 4}},
	{ID: 27, Name: "Marsh Constrictor", Power: 64, Factions: []int{3, 4, 5}},
	{ID: 28, Name: "Ridge Mauler", Power: 66, Factions: []int{4, 5, 6}},
	{ID: 29, Name: "Frost Prowler", Power: 70, Factions: []int{5, 6, 7}},
	{ID: 30, Name: "Razorback Chief", Power: 72, Factions: []int{6, 7, 8}},
	{ID: 31, Name: "Great Horned Sage", Power: 76, Factions: []int{7, 8, 1}},
	{ID: 32, Name: "Crowned Stag", Power: 80, Factions: []int{8, 1, 2}},
	{ID: 33, Name: "Winter Packlord", Power: 84, Factions: []int{1, 4}},
	{ID: 34, Name: "Raven Matriarch", Power: 88, Factions: []int{2, 7}},
	{ID: 35, Name: "World Serpent", Power: 92, Factions: []int{3, 8}},
	{ID: 36, Name: "Elder Ursine", Power: 95, Factions: []int{4, 1}},
}
