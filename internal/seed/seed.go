// Package seed implements the bulk fixture loader. It lives outside the
// request path: Populate is an idempotent one-shot insert keyed by natural
// keys (username, category name, product/offer title), Reset drops and
// recreates the whole schema before loading the fixture unconditionally.
package seed

import (
	"encoding/json"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/mbaye/ecom-backend/internal/auth"
	"github.com/mbaye/ecom-backend/internal/models"
)

type FixtureUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type FixtureOffer struct {
	Title    string  `json:"title"`
	Discount float64 `json:"discount"`
}

type FixtureProduct struct {
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
}

type Fixture struct {
	Users      []FixtureUser    `json:"users"`
	Categories []string         `json:"categories"`
	Offers     []FixtureOffer   `json:"offers"`
	Products   []FixtureProduct `json:"products"`
}

// LoadFixture reads and decodes a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var f Fixture
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &f, nil
}

// Populate inserts fixture rows that are not already present, looked up by
// natural key. Running it repeatedly leaves the database unchanged.
func Populate(db *gorm.DB, f *Fixture) error {
	for _, u := range f.Users {
		var count int64
		if err := db.Model(&models.User{}).Where("username = ?", u.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		hash, err := auth.HashPassword(u.Password)
		if err != nil {
			return err
		}
		role := u.Role
		if role == "" {
			role = "user"
		}
		if err := db.Create(&models.User{Username: u.Username, Password: hash, Role: role}).Error; err != nil {
			return err
		}
	}

	categoryIDs := map[string]uint{}
	names := append([]string{}, f.Categories...)
	for _, p := range f.Products {
		names = append(names, p.Category)
	}
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := categoryIDs[name]; ok {
			continue
		}
		var cat models.Category
		err := db.Where("name = ?", name).First(&cat).Error
		if err == gorm.ErrRecordNotFound {
			cat = models.Category{Name: name}
			err = db.Create(&cat).Error
		}
		if err != nil {
			return err
		}
		categoryIDs[name] = cat.ID
	}

	for _, o := range f.Offers {
		var count int64
		if err := db.Model(&models.Offer{}).Where("title = ?", o.Title).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&models.Offer{Title: o.Title, Discount: o.Discount}).Error; err != nil {
			return err
		}
	}

	for _, p := range f.Products {
		var count int64
		if err := db.Model(&models.Product{}).Where("title = ?", p.Title).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		catID, ok := categoryIDs[p.Category]
		if !ok {
			return fmt.Errorf("product %q references unknown category %q", p.Title, p.Category)
		}
		product := models.Product{
			Title:       p.Title,
			Price:       p.Price,
			Description: p.Description,
			Image:       p.Image,
			CategoryID:  catID,
		}
		if err := db.Create(&product).Error; err != nil {
			return err
		}
	}
	return nil
}

// Reset drops every table, recreates the schema, and loads the fixture.
func Reset(db *gorm.DB, f *Fixture) error {
	// Drop in reverse dependency order so referencing tables go first.
	all := models.All()
	for i := len(all) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(all[i]); err != nil {
			return fmt.Errorf("drop %T: %w", all[i], err)
		}
	}
	for _, m := range all {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return Populate(db, f)
}
