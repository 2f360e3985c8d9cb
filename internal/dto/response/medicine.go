package response

import (
	"time"

	"healthhive/internal/data/entity"
)

type MedicineResponse struct {
	ID          string    `json:"id"`
	SellerID    string    `json:"seller_id,omitempty"`
	SellerEmail string    `json:"seller_email"`
	SellerName  string    `json:"seller_name"`
	Name        string    `json:"name"`
	GenericName string    `json:"generic_name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
	Company     string    `json:"company"`
	MassUnit    string    `json:"mass_unit"`
	Price       float64   `json:"price"`
	Discount    float64   `json:"discount"`
	CreatedTime time.Time `json:"created_time"`
	UpdatedTime time.Time `json:"updated_time"`
}

func MedicineToResponse(m *entity.Medicine) MedicineResponse {
	return MedicineResponse{
		ID:          m.ID,
		SellerID:    m.SellerID,
		SellerEmail: m.SellerEmail,
		SellerName:  m.SellerName,
		Name:        m.Name,
		GenericName: m.GenericName,
		Description: m.Description,
		Image:       m.Image,
		Category:    m.Category,
		Company:     m.Company,
		MassUnit:    m.MassUnit,
		Price:       m.Price,
		Discount:    m.Discount,
		CreatedTime: m.CreatedTime,
		UpdatedTime: m.UpdatedTime,
	}
}

func MedicinesToResponse(medicines []*entity.Medicine) []MedicineResponse {
	out := make([]MedicineResponse, 0, len(medicines))
	for _, m := range medicines {
		out = append(out, MedicineToResponse(m))
	}
	return out
}
