package request

type CreateMedicineRequest struct {
	SellerID    string  `json:"seller_id,omitempty"`
	SellerName  string  `json:"seller_name,omitempty"`
	SellerEmail string  `json:"seller_email" validate:"required,email"`
	Name        string  `json:"name" validate:"required,max=200"`
	GenericName string  `json:"generic_name,omitempty"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
	Category    string  `json:"category,omitempty"`
	Company     string  `json:"company,omitempty"`
	MassUnit    string  `json:"mass_unit,omitempty"`
	Price       float64 `json:"price" validate:"gte=0"`
	Discount    float64 `json:"discount" validate:"gte=0"`
}

// UpdateMedicineRequest carries only the fields being changed. seller_email,
// when present, must match the caller and is never written.
type UpdateMedicineRequest struct {
	SellerEmail string   `json:"seller_email,omitempty" validate:"omitempty,email"`
	SellerName  *string  `json:"seller_name,omitempty"`
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	GenericName *string  `json:"generic_name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Image       *string  `json:"image,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Company     *string  `json:"company,omitempty"`
	MassUnit    *string  `json:"mass_unit,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Discount    *float64 `json:"discount,omitempty" validate:"omitempty,gte=0"`
}

type DeleteMedicineRequest struct {
	SellerEmail string `json:"seller_email,omitempty" validate:"omitempty,email"`
}
