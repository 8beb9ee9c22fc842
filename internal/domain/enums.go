package domain

// Allergen is a member of the closed allergen vocabulary.
type Allergen string

const (
	AllergenNuts      Allergen = "nuts"
	AllergenPeanuts   Allergen = "peanuts"
	AllergenDairy     Allergen = "dairy"
	AllergenGluten    Allergen = "gluten"
	AllergenSoy       Allergen = "soy"
	AllergenEggs      Allergen = "eggs"
	AllergenShellfish Allergen = "shellfish"
	AllergenFish      Allergen = "fish"
	AllergenSesame    Allergen = "sesame"
	AllergenNone      Allergen = "none"
)

// ValidAllergens is the closed allergen set.
var ValidAllergens = map[Allergen]bool{
	AllergenNuts:      true,
	AllergenPeanuts:   true,
	AllergenDairy:     true,
	AllergenGluten:    true,
	AllergenSoy:       true,
	AllergenEggs:      true,
	AllergenShellfish: true,
	AllergenFish:      true,
	AllergenSesame:    true,
	AllergenNone:      true,
}

// DietaryCategory is a member of the closed dietary vocabulary.
type DietaryCategory string

const (
	DietVegetarian  DietaryCategory = "vegetarian"
	DietVegan       DietaryCategory = "vegan"
	DietPescatarian DietaryCategory = "pescatarian"
	DietHalal       DietaryCategory = "halal"
	DietKosher      DietaryCategory = "kosher"
	DietNone        DietaryCategory = "none"
)

// ValidDietaryCategories is the closed dietary set.
var ValidDietaryCategories = map[DietaryCategory]bool{
	DietVegetarian:  true,
	DietVegan:       true,
	DietPescatarian: true,
	DietHalal:       true,
	DietKosher:      true,
	DietNone:        true,
}

// Badge highlights a dish.
type Badge string

const (
	BadgeLocalSpecialty Badge = "Local Specialty"
	BadgeMustTry        Badge = "Must Try"
)

// ValidBadges is the closed badge vocabulary.
var ValidBadges = map[Badge]bool{
	BadgeLocalSpecialty: true,
	BadgeMustTry:        true,
}

// HungerLevel describes how much the party wants to eat.
type HungerLevel string

const (
	HungerLight    HungerLevel = "light"
	HungerModerate HungerLevel = "moderate"
	HungerHungry   HungerLevel = "hungry"
	HungerFeast    HungerLevel = "feast"
)

// ValidHungerLevels is the closed hunger vocabulary.
var ValidHungerLevels = map[HungerLevel]bool{
	HungerLight:    true,
	HungerModerate: true,
	HungerHungry:   true,
	HungerFeast:    true,
}

// MinSpiceLevel and MaxSpiceLevel bound MenuItem.SpiceLevel.
const (
	MinSpiceLevel = 0
	MaxSpiceLevel = 5
)

// Supported image media types.
const (
	MediaTypeJPEG = "image/jpeg"
	MediaTypePNG  = "image/png"
	MediaTypeWEBP = "image/webp"
	MediaTypeGIF  = "image/gif"
)

// SupportedMediaTypes lists the image types accepted by every model backend.
var SupportedMediaTypes = map[string]string{
	MediaTypeJPEG: "jpg",
	MediaTypePNG:  "png",
	MediaTypeWEBP: "webp",
	MediaTypeGIF:  "gif",
}
