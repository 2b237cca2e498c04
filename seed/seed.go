// Package seed holds the canonical catalog and idempotent upsert routines.
// Seeding is a data-migration operation invoked through the admin seed
// endpoints, not part of the runtime lifecycle.
package seed

import (
	"gorm.io/gorm"

	"restaurant-api/models"
)

type accompanimentSeed struct {
	Name     string
	Price    float64
	Category string
}

var accompaniments = []accompanimentSeed{
	{Name: "Okro soup", Price: 70, Category: "soup"},
	{Name: "Ademe soup", Price: 70, Category: "soup"},
	{Name: "Ademe mix with Okro soup", Price: 70, Category: "soup"},
	{Name: "Fresh Tilapia light soup", Price: 100, Category: "soup"},
	{Name: "Egushie soup", Price: 80, Category: "soup"},

	{Name: "Aborbi tadi", Price: 80, Category: "sauce"},
	{Name: "Hot pepper", Price: 0, Category: "sauce"},
	{Name: "Gbomanyana", Price: 90, Category: "sauce"},

	{Name: "Kontomire Stew", Price: 80, Category: "stew"},
	{Name: "Garden Eggs Stew", Price: 60, Category: "stew"},
	{Name: "Egg Stew", Price: 60, Category: "stew"},

	{Name: "Fried Tilapia", Price: 100, Category: "protein"},
	{Name: "Grilled Tilapia", Price: 100, Category: "protein"},
	{Name: "Fried Chicken", Price: 70, Category: "protein"},
	{Name: "Grilled Chicken", Price: 70, Category: "protein"},

	{Name: "Extra Vegetables", Price: 15, Category: "extra"},
	{Name: "Extra Pepper", Price: 5, Category: "extra"},
}

type menuItemSeed struct {
	Name     string
	Price    float64
	Category string
	// Accompaniment names this item may be paired with; resolved to IDs at
	// seed time. Empty means the item is served as-is.
	Pairings []string
}

var menu = []menuItemSeed{
	{Name: "Banku", Price: 5, Category: "BANKU / AKPLE ZONE",
		Pairings: []string{"Aborbi tadi", "Ademe soup", "Okro soup", "Ademe mix with Okro soup", "Fresh Tilapia light soup", "Hot pepper", "Gbomanyana"}},
	{Name: "Akple", Price: 5, Category: "BANKU / AKPLE ZONE",
		Pairings: []string{"Aborbi tadi", "Ademe soup", "Okro soup", "Ademe mix with Okro soup", "Fresh Tilapia light soup", "Hot pepper", "Gbomanyana"}},
	{Name: "Atseke", Price: 30, Category: "LOCAL MIX ZONE",
		Pairings: []string{"Fried Tilapia", "Fried Chicken", "Grilled Tilapia", "Grilled Chicken"}},
	{Name: "Eba", Price: 20, Category: "LOCAL MIX ZONE",
		Pairings: []string{"Egushie soup", "Okro soup", "Ademe soup", "Ademe mix with Okro soup"}},
	{Name: "Boiled Yam", Price: 30, Category: "LOCAL MIX ZONE",
		Pairings: []string{"Kontomire Stew", "Garden Eggs Stew", "Egg Stew"}},
	{Name: "Boiled Plantain", Price: 30, Category: "LOCAL MIX ZONE",
		Pairings: []string{"Kontomire Stew", "Garden Eggs Stew", "Egg Stew"}},
	{Name: "Gariforto", Price: 85, Category: "LOCAL MIX ZONE"},

	{Name: "Superb Jollof", Price: 85, Category: "JOLLOF ZONE"},
	{Name: "Beef Jollof", Price: 90, Category: "JOLLOF ZONE"},
	{Name: "Beef Sauce With Jollof", Price: 95, Category: "JOLLOF ZONE"},
	{Name: "Chicken Sauce With Jollof", Price: 95, Category: "JOLLOF ZONE"},
	{Name: "Jollof Rice With Grilled Chicken", Price: 75, Category: "JOLLOF ZONE"},
	{Name: "Jollof With Fish", Price: 75, Category: "JOLLOF ZONE"},

	{Name: "Assorted Jollof With Fried Chicken", Price: 90, Category: "ASSORTED ZONE"},
	{Name: "Assorted Jollof With Grilled Chicken", Price: 90, Category: "ASSORTED ZONE"},
	{Name: "Assorted Fried Rice With Fried Chicken", Price: 90, Category: "ASSORTED ZONE"},
	{Name: "Assorted Noodles", Price: 80, Category: "ASSORTED ZONE"},
	{Name: "Assorted Spaghetti", Price: 80, Category: "ASSORTED ZONE"},

	{Name: "Egg Fried Rice With Fried Chicken", Price: 75, Category: "FRIED RICE ZONE"},
	{Name: "Egg Fried Rice With Grilled Chicken", Price: 75, Category: "FRIED RICE ZONE"},
	{Name: "Egg Fried Rice With Chicken Sauce", Price: 85, Category: "FRIED RICE ZONE"},
	{Name: "Egg Fried Rice With Beef Sauce", Price: 90, Category: "FRIED RICE ZONE"},
	{Name: "Vegetables Fried Rice", Price: 60, Category: "FRIED RICE ZONE"},

	{Name: "Plain Rice With Kontomire", Price: 85, Category: "PLAIN RICE ZONE"},
	{Name: "Plain Rice With Egg Stew", Price: 85, Category: "PLAIN RICE ZONE"},

	{Name: "Vegetable Salad", Price: 70, Category: "SALAD ZONE"},
	{Name: "Potato Salad", Price: 80, Category: "SALAD ZONE"},
	{Name: "Chicken Salad", Price: 80, Category: "SALAD ZONE"},
	{Name: "Samosa", Price: 15, Category: "SALAD ZONE"},
	{Name: "Spring rolls", Price: 15, Category: "SALAD ZONE"},
	{Name: "Couscous", Price: 25, Category: "SALAD ZONE"},
}

// Accompaniments upserts the canonical accompaniment list by name and
// returns how many rows exist afterwards.
func Accompaniments(db *gorm.DB) (int64, error) {
	for _, s := range accompaniments {
		var existing models.Accompaniment
		err := db.Where("name = ?", s.Name).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			err = db.Create(&models.Accompaniment{
				Name:      s.Name,
				Price:     s.Price,
				Category:  s.Category,
				Available: true,
			}).Error
		} else if err == nil {
			err = db.Model(&existing).Updates(map[string]interface{}{
				"price":    s.Price,
				"category": s.Category,
			}).Error
		}
		if err != nil {
			return 0, err
		}
	}

	var count int64
	err := db.Model(&models.Accompaniment{}).Count(&count).Error
	return count, err
}

// Menu upserts the canonical menu by item name, resolving each pairing list
// to accompaniment IDs. Accompaniments must be seeded first for pairings to
// resolve; unknown names are skipped.
func Menu(db *gorm.DB) (int64, error) {
	for _, s := range menu {
		allowed := resolvePairings(db, s.Pairings)

		var existing models.MenuItem
		err := db.Where("name = ?", s.Name).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			err = db.Create(&models.MenuItem{
				Name:                  s.Name,
				Price:                 s.Price,
				Category:              s.Category,
				Available:             true,
				AllowedAccompaniments: allowed,
			}).Error
		} else if err == nil {
			err = db.Model(&existing).Updates(map[string]interface{}{
				"price":                  s.Price,
				"category":               s.Category,
				"allowed_accompaniments": allowed,
			}).Error
		}
		if err != nil {
			return 0, err
		}
	}

	var count int64
	err := db.Model(&models.MenuItem{}).Count(&count).Error
	return count, err
}

func resolvePairings(db *gorm.DB, names []string) models.IDList {
	if len(names) == 0 {
		return models.IDList{}
	}
	var found []models.Accompaniment
	db.Where("name IN ?", names).Find(&found)

	byName := make(map[string]uint, len(found))
	for _, a := range found {
		byName[a.Name] = a.ID
	}

	ids := models.IDList{}
	for _, n := range names {
		if id, ok := byName[n]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}
