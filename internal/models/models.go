package models

// Catalog and account entities. Password holds the bcrypt hash, never the
// plaintext, and is excluded from every JSON response.

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"unique;not null;index" json:"username"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"not null;default:'user'" json:"role"`
}

type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
}

type Offer struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Title    string  `gorm:"not null" json:"title"`
	Discount float64 `gorm:"not null" json:"discount"` // plain percentage, no range constraint
}

type Product struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Title       string   `gorm:"not null" json:"title"`
	Price       float64  `gorm:"not null" json:"price"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	CategoryID  uint     `gorm:"not null;index" json:"category_id"`
	Category    Category `gorm:"foreignKey:CategoryID" json:"-"`
	OfferID     *uint    `gorm:"index" json:"offer_id"`
	Offer       *Offer   `gorm:"foreignKey:OfferID" json:"-"`
}

// Order references a product by id but carries the buyer as a free-text
// username, not a foreign key. Status is an open string: any non-empty
// value is accepted, there is no transition graph.
type Order struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ProductID uint    `gorm:"not null;index" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID" json:"-"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	User      string  `gorm:"not null" json:"user"`
	Status    string  `gorm:"not null;default:'Pending'" json:"status"`
}

// All returns the migration set in dependency order.
func All() []any {
	return []any{&User{}, &Category{}, &Offer{}, &Product{}, &Order{}}
}
