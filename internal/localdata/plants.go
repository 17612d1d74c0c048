// Package localdata holds the compiled-in fallback catalog. It is the
// authority for plant categories and the safety net when the content store
// is unreachable or missing an entry. Declaration order here is the catalog
// order for local-only entries.
package localdata

import (
	"go-desert-guide/internal/models"
)

var plants = []models.PlantRecord{
	{
		Slug:           "saguaro-cactus",
		Name:           "Saguaro Cactus",
		ScientificName: "Carnegiea gigantea",
		Category:       models.CategoryCactus,
		Description:    "The iconic columnar cactus of the Sonoran Desert, growing up to 40 feet tall and living 150 years or more. Arms typically appear after 50 to 70 years.",
		MainImage:      "https://cdn.desertguide.example/plants/saguaro-hero.webp",
		GalleryImages: []string{
			"https://cdn.desertguide.example/plants/saguaro-bloom.webp",
			"https://cdn.desertguide.example/plants/saguaro-skeleton.webp",
			"https://cdn.desertguide.example/plants/saguaro-crested.webp",
		},
		GalleryDetails: []models.GalleryDetail{
			{Alt: "Saguaro in evening light", Title: "Evening silhouette"},
			{Alt: "Saguaro flowers at the crown", Title: "Night bloom", Description: "Flowers open after sunset and close by the next afternoon."},
			{Alt: "Woody ribs of a dead saguaro", Title: "Saguaro skeleton"},
			{Alt: "Rare crested saguaro fan", Title: "Cristate form"},
		},
		QuickFacts: []models.QuickFact{
			{Label: "Height", Value: "15-40 ft"},
			{Label: "Bloom", Value: "May-June, white"},
			{Label: "Lifespan", Value: "150+ years"},
		},
		QuickID:       models.StringOrStringSlice{"Columnar trunk with pleated ribs", "Arms curve upward", "White crown flowers in late spring"},
		SeasonalNotes: models.StringOrStringSlice{"Fruit ripens red in June and July."},
		Uses:          models.StringOrStringSlice{"Fruit harvested traditionally by the Tohono O'odham", "Ribs used for shade structures"},
		Ethics:        models.StringOrStringSlice{"Protected under Arizona native plant law; never collect or damage."},
		WildlifeValue: models.StringOrStringSlice{"Gila woodpeckers and elf owls nest in cavities", "Bats and doves feed on nectar and fruit"},
		Facts:         models.StringOrStringSlice{"The saguaro is the state flower of Arizona.", "A mature plant can absorb 200 gallons of water in one rain."},
	},
	{
		Slug:           "ocotillo",
		Name:           "Ocotillo",
		ScientificName: "Fouquieria splendens",
		Category:       models.CategoryShrub,
		Description:    "A spindly, whip-stemmed desert shrub that leafs out within days of rain and drops its leaves again in drought. Scarlet flower clusters tip the canes in spring.",
		MainImage:      "https://cdn.desertguide.example/plants/ocotillo-hero.webp",
		GalleryImages: []string{
			"https://cdn.desertguide.example/plants/ocotillo-flowers.webp",
			"https://cdn.desertguide.example/plants/ocotillo-leafed.webp",
		},
		GalleryDetails: []models.GalleryDetail{
			{Alt: "Ocotillo canes against the sky"},
			{Alt: "Scarlet ocotillo flower cluster", Title: "Spring flowers", Description: "A key nectar stop for migrating hummingbirds."},
			{Alt: "Canes covered in small green leaves after rain", Title: "Leafed out"},
		},
		QuickFacts: []models.QuickFact{
			{Label: "Height", Value: "10-20 ft"},
			{Label: "Bloom", Value: "March-June, red"},
		},
		QuickID:       models.StringOrStringSlice{"Clustered unbranched canes from the base", "Rows of small oval leaves after rain", "Red tubular flowers at cane tips"},
		SeasonalNotes: models.StringOrStringSlice{"May leaf out and defoliate several times a year depending on rainfall."},
		Uses:          models.StringOrStringSlice{"Living fences made from planted canes"},
		WildlifeValue: models.StringOrStringSlice{"Hummingbirds time migration to its bloom"},
		Facts:         models.StringOrStringSlice{"Despite appearances it is not a cactus."},
	},
	{
		Slug:           "palo-verde",
		Name:           "Blue Palo Verde",
		ScientificName: "Parkinsonia florida",
		Category:       models.CategoryTree,
		Description:    "A green-barked desert tree that photosynthesizes through its trunk and branches. In April it disappears under a cloud of yellow blossoms.",
		MainImage:      "https://cdn.desertguide.example/plants/palo-verde-hero.webp",
		GalleryImages: []string{
			"https://cdn.desertguide.example/plants/palo-verde-bloom.webp",
		},
		GalleryDetails: []models.GalleryDetail{
			{Alt: "Green trunk and branches of a palo verde"},
			{Alt: "Palo verde covered in yellow flowers", Title: "Peak bloom"},
		},
		QuickFacts: []models.QuickFact{
			{Label: "Height", Value: "20-30 ft"},
			{Label: "Bloom", Value: "April-May, yellow"},
		},
		QuickID:       models.StringOrStringSlice{"Smooth green bark", "Tiny leaflets, often leafless", "Yellow pea-like flowers"},
		SeasonalNotes: models.StringOrStringSlice{"Drops leaflets in drought; bark carries on photosynthesis."},
		Uses:          models.StringOrStringSlice{"Seeds ground into flour historically"},
		WildlifeValue: models.StringOrStringSlice{"Nurse tree sheltering young saguaros"},
		Facts:         models.StringOrStringSlice{"Arizona's state tree."},
	},
	{
		Slug:           "creosote-bush",
		Name:           "Creosote Bush",
		ScientificName: "Larrea tridentata",
		Category:       models.CategoryShrub,
		Description:    "The most drought-tolerant shrub of the warm deserts, with resinous leaves that release the smell of desert rain. Clonal rings can persist for thousands of years.",
		MainImage:      "https://cdn.desertguide.example/plants/creosote-hero.webp",
		GalleryImages: []string{
			"https://cdn.desertguide.example/plants/creosote-flowers.webp",
			"https://cdn.desertguide.example/plants/creosote-seeds.webp",
		},
		GalleryDetails: []models.GalleryDetail{
			{Alt: "Creosote bush on open desert flat"},
			{Alt: "Small yellow creosote flowers", Title: "Yellow flowers"},
			{Alt: "Fuzzy white creosote seed capsules", Title: "Seed capsules"},
		},
		QuickFacts: []models.QuickFact{
			{Label: "Height", Value: "3-10 ft"},
			{Label: "Bloom", Value: "Spring and after rain, yellow"},
		},
		QuickID:       models.StringOrStringSlice{"Small waxy paired leaves", "Open, airy branching", "Smells of rain when wet"},
		Uses:          models.StringOrStringSlice{"Traditional medicinal teas and salves"},
		Ethics:        models.StringOrStringSlice{"Internal use is discouraged; compounds can stress the liver."},
		WildlifeValue: models.StringOrStringSlice{"Supports dozens of specialist bee species"},
		Facts:         models.StringOrStringSlice{"A Mojave clone ring called King Clone is estimated at 11,700 years old."},
	},
	{
		Slug:           "brittlebush",
		Name:           "Brittlebush",
		ScientificName: "Encelia farinosa",
		Category:       models.CategoryShrub,
		Description:    "A rounded, silver-leaved shrub that blankets rocky slopes with yellow daisy flowers in early spring.",
		MainImage:      "https://cdn.desertguide.example/plants/brittlebush-hero.webp",
		GalleryImages: []string{
			"https://cdn.desertguide.example/plants/brittlebush-slope.webp",
		},
		GalleryDetails: []models.GalleryDetail{
			{Alt: "Brittlebush in full yellow bloom"},
			{Alt: "Hillside covered in blooming brittlebush", Title: "Spring hillside"},
		},
		QuickFacts: []models.QuickFact{
			{Label: "Height", Value: "2-5 ft"},
			{Label: "Bloom", Value: "February-May, yellow"},
		},
		QuickID:       models.StringOrStringSlice{"Silvery felt-covered leaves", "Flower stalks held above the foliage"},
		Uses:          models.StringOrStringSlice{"Stem resin burned as incense by early missionaries"},
		Facts:         models.StringOrStringSlice{"The Spanish name incienso refers to its fragrant resin."},
	},
	{
		Slug:           "desert-marigold",
		Name:           "Desert Marigold",
		ScientificName: "Baileya multiradiata",
		Category:       models.CategoryWildflower,
		Description:    "A short-lived perennial wildflower with woolly gray foliage and bright yellow blooms that appear nearly year-round after rains.",
		MainImage:      "https://cdn.desertguide.example/plants/desert-marigold-hero.webp",
		GalleryDetails: []models.GalleryDetail{
			{Alt: "Desert marigold flowers on roadside gravel"},
		},
		QuickFacts: []models.QuickFact{
			{Label: "Height", Value: "12-18 in"},
			{Label: "Bloom", Value: "March-November, yellow"},
		},
		QuickID:       models.StringOrStringSlice{"Woolly whitish leaves in a basal mound", "Long leafless flower stalks"},
		SeasonalNotes: models.StringOrStringSlice{"Blooms in any month following rain."},
		Ethics:        models.StringOrStringSlice{"Toxic to livestock in quantity."},
	},
	{
		Slug:           "joshua-tree",
		Name:           "Joshua Tree",
		ScientificName: "Yucca brevifolia",
		Category:       models.CategoryTree,
		Description:    "The signature yucca of the Mojave Desert, branching into twisted arms tipped with dagger-like leaves. Blooms depend on a single species of moth for pollination.",
		MainImage:      "https://cdn.desertguide.example/plants/joshua-tree-hero.webp",
		GalleryImages: []string{
			"https://cdn.desertguide.example/plants/joshua-tree-bloom.webp",
		},
		GalleryDetails: []models.GalleryDetail{
			{Alt: "Joshua tree under a clear sky"},
			{Alt: "Creamy flower panicle on a Joshua tree", Title: "Flower panicle"},
		},
		QuickFacts: []models.QuickFact{
			{Label: "Height", Value: "15-40 ft"},
			{Label: "Bloom", Value: "February-April, cream"},
		},
		QuickID:       models.StringOrStringSlice{"Branching trunk with fibrous bark", "Stiff bayonet leaves in terminal rosettes"},
		WildlifeValue: models.StringOrStringSlice{"Obligate mutualism with the yucca moth", "Nest sites for Scott's orioles"},
		Facts:         models.StringOrStringSlice{"Mormon settlers reportedly named it for the prophet Joshua."},
	},
	{
		Slug:           "prickly-pear",
		Name:           "Engelmann Prickly Pear",
		ScientificName: "Opuntia engelmannii",
		Category:       models.CategoryCactus,
		Description:    "A sprawling paddle cactus with showy yellow spring flowers and magenta fruit prized by wildlife and people alike.",
		MainImage:      "https://cdn.desertguide.example/plants/prickly-pear-hero.webp",
		GalleryImages: []string{
			"https://cdn.desertguide.example/plants/prickly-pear-fruit.webp",
			"https://cdn.desertguide.example/plants/prickly-pear-flower.webp",
		},
		GalleryDetails: []models.GalleryDetail{
			{Alt: "Prickly pear pads with long white spines"},
			{Alt: "Ripe magenta prickly pear fruit", Title: "Tunas", Description: "The fruit is called a tuna; handle with tongs."},
			{Alt: "Yellow prickly pear flower", Title: "Spring flower"},
		},
		QuickFacts: []models.QuickFact{
			{Label: "Height", Value: "3-6 ft"},
			{Label: "Bloom", Value: "April-June, yellow"},
		},
		QuickID:       models.StringOrStringSlice{"Flat oval pads", "Clusters of fine glochids at each areole"},
		Uses:          models.StringOrStringSlice{"Pads eaten as nopales", "Fruit made into syrup and jelly"},
		WildlifeValue: models.StringOrStringSlice{"Javelina and tortoises eat the pads"},
	},
	{
		Slug:           "fishhook-barrel",
		Name:           "Fishhook Barrel Cactus",
		ScientificName: "Ferocactus wislizeni",
		Category:       models.CategoryCactus,
		Description:    "A stout barrel cactus with hooked central spines, ringed by orange flowers in late summer and crowned with pineapple-like fruit through winter.",
		MainImage:      "https://cdn.desertguide.example/plants/fishhook-barrel-hero.webp",
		GalleryDetails: []models.GalleryDetail{
			{Alt: "Barrel cactus leaning toward the southwest"},
		},
		QuickFacts: []models.QuickFact{
			{Label: "Height", Value: "2-5 ft"},
			{Label: "Bloom", Value: "July-September, orange"},
		},
		QuickID:       models.StringOrStringSlice{"Single stout barrel", "Hooked central spines", "Often leans southwest"},
		SeasonalNotes: models.StringOrStringSlice{"Yellow fruit persists on the crown most of the winter."},
		Facts:         models.StringOrStringSlice{"Its lean toward the afternoon sun earns it the name compass barrel."},
	},
}

// Plants returns the full local catalog in declaration order. Callers must
// treat the returned records as read-only.
func Plants() []models.PlantRecord {
	return plants
}

// BySlug returns the local record for slug, and whether one exists.
func BySlug(slug string) (models.PlantRecord, bool) {
	for _, p := range plants {
		if p.Slug == slug {
			return p, true
		}
	}
	return models.PlantRecord{}, false
}
