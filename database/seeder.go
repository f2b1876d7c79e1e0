// database/seeder.go
package database

import (
	"log"

	"counting-app/inventory"
	"counting-app/models"
)

// SeedCatalog installs the default counting catalog when the store
// has none yet. An existing catalog is never overwritten.
func SeedCatalog(store *inventory.Store) {
	if store.HasCatalog() {
		return
	}

	store.SetCatalog(defaultGroups(), defaultProducts())
	log.Println("Seeded default counting catalog")
}

func defaultGroups() []models.CountingGroup {
	return []models.CountingGroup{
		{
			ID:             "group1",
			Name:           "Group A - Stickers",
			MaterialGroups: []string{"1002001"},
			Person1:        "Anna Kowalska",
			Person2:        "Jan Nowak",
		},
		{
			ID:             "group2",
			Name:           "Group B - Packaging",
			MaterialGroups: []string{"1004009", "1004003"},
			Person1:        "Maria Wisniewska",
			Person2:        "Piotr Zielinski",
		},
	}
}

func defaultProducts() []models.Product {
	return []models.Product{
		{ID: 1, SapCode: "12000602", Name: "TOP/BOTTOM FOR BOX FOR PREFORMS", MaterialGroup: "1004009", ExpectedQty: 5885},
		{ID: 2, SapCode: "12000746", Name: "STICKER 330 CAN X24 COCA COLA", MaterialGroup: "1002001", ExpectedQty: 258500},
		{ID: 3, SapCode: "12006241", Name: "PALLET LAYER DIVIDER 1200MMX800MM CBC", MaterialGroup: "1004009", ExpectedQty: 3726},
		{ID: 4, SapCode: "12006259", Name: "SHRFLM TRANSPARENT 490 MM X 55 MIC", MaterialGroup: "1004003", ExpectedQty: 1898},
		{ID: 5, SapCode: "12006272", Name: "STICKER COKE ZERO 330 CAN", MaterialGroup: "1002001", ExpectedQty: 35500},
		{ID: 6, SapCode: "12006273", Name: "STICKER COKE ZERO 330 CAN VARIANT", MaterialGroup: "1002001", ExpectedQty: 75000},
		{ID: 7, SapCode: "12007889", Name: "STICKER 2.0 PET X8 COCA COLA", MaterialGroup: "1002001", ExpectedQty: 90000},
		{ID: 8, SapCode: "12007936", Name: "STICKER COKE ZERO 500 PET", MaterialGroup: "1002001", ExpectedQty: 25000},
		{ID: 9, SapCode: "12007937", Name: "STICKER COKE ZERO 500 PET VARIANT", MaterialGroup: "1002001", ExpectedQty: 28000},
		{ID: 10, SapCode: "12008134", Name: "SHRFLM CLEAR 510MMX60MIC", MaterialGroup: "1004003", ExpectedQty: 1779},
	}
}
