package mockserver

import (
	"fmt"

	"github.com/dmitrijs2005/arcanedex/internal/client/models"
	"github.com/dmitrijs2005/arcanedex/internal/common"
)

// DefaultCreatures is the catalog a fresh server starts with.
var DefaultCreatures = []string{
	"Basilisk", "Chimera", "Dryad", "Griffin", "Hydra", "Kraken", "Manticore",
	"Minotaur", "Phoenix", "Sphinx", "Wendigo", "Wyvern", "Yeti",
}

// SeedAdmin creates the admin account used to exercise admin endpoints.
func (s *Store) SeedAdmin(username, password string) error {
	_, err := s.CreateUser(models.Registration{
		FirstName: "Arcane",
		LastName:  "Keeper",
		Email:     username + "@arcanedex.local",
		Genero:    "Feminino",
		Username:  username,
		Password:  password,
		Role:      common.RoleAdmin,
	})
	return err
}

func (s *Store) SeedCreatures(names []string) error {
	for _, name := range names {
		lore := fmt.Sprintf("Notes on the %s.", name)
		img := fmt.Sprintf("https://img.arcanedex.local/%s.png", name)
		if _, err := s.AddCreature(models.CreatureInput{Name: name, Lore: &lore, Img: &img}); err != nil {
			return fmt.Errorf("seed %s: %w", name, err)
		}
	}
	return nil
}
