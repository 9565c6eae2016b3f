package models

// Category names a platform partition of the history file.
type Category string

const (
	CategoryBattle   Category = "battle"
	CategoryProspero Category = "prospero"
	CategoryOrbis    Category = "orbis"
	CategorySteam    Category = "steam"
)

// KnownCategories lists every category that must exist in a loaded history,
// in the order they are written when the file is bootstrapped.
var KnownCategories = []Category{
	CategoryBattle,
	CategoryProspero,
	CategoryOrbis,
	CategorySteam,
}

func (c Category) String() string {
	return string(c)
}
