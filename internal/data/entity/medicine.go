package entity

import "time"

// Medicine is a seller-owned catalog listing.
type Medicine struct {
	ID          string    `json:"id" db:"id" bson:"_id"`
	SellerID    string    `json:"seller_id,omitempty" db:"seller_id" bson:"seller_id,omitempty"`
	SellerEmail string    `json:"seller_email" db:"seller_email" bson:"seller_email"`
	SellerName  string    `json:"seller_name" db:"seller_name" bson:"seller_name"`
	Name        string    `json:"name" db:"name" bson:"name"`
	GenericName string    `json:"generic_name" db:"generic_name" bson:"generic_name"`
	Description string    `json:"description" db:"description" bson:"description"`
	Image       string    `json:"image" db:"image" bson:"image"`
	Category    string    `json:"category" db:"category" bson:"category"`
	Company     string    `json:"company" db:"company" bson:"company"`
	MassUnit    string    `json:"mass_unit" db:"mass_unit" bson:"mass_unit"`
	Price       float64   `json:"price" db:"price" bson:"price"`
	Discount    float64   `json:"discount" db:"discount" bson:"discount"`
	CreatedTime time.Time `json:"created_time" db:"created_time" bson:"created_time"`
	UpdatedTime time.Time `json:"updated_time" db:"updated_time" bson:"updated_time"`
}

// MedicinePatch holds the mutable listing fields. Owner and id are not part of it.
type MedicinePatch struct {
	SellerName  *string
	Name        *string
	GenericName *string
	Description *string
	Image       *string
	Category    *string
	Company     *string
	MassUnit    *string
	Price       *float64
	Discount    *float64
}

func (m *Medicine) OwnedBy(email string) bool {
	return m.SellerEmail == email
}

func (m *Medicine) Apply(p MedicinePatch, now time.Time) {
	setString(&m.SellerName, p.SellerName)
	setString(&m.Name, p.Name)
	setString(&m.GenericName, p.GenericName)
	setString(&m.Description, p.Description)
	setString(&m.Image, p.Image)
	setString(&m.Category, p.Category)
	setString(&m.Company, p.Company)
	setString(&m.MassUnit, p.MassUnit)
	if p.Price != nil {
		m.Price = *p.Price
	}
	if p.Discount != nil {
		m.Discount = *p.Discount
	}
	m.UpdatedTime = now
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
