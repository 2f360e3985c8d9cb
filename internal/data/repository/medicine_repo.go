package repository

import (
	"context"
	"errors"
	"fmt"

	"healthhive/internal/data/entity"
	"healthhive/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const medicineColumns = `id, seller_id, seller_email, seller_name, name, generic_name, description,
	image, category, company, mass_unit, price, discount, created_time, updated_time`

type medicineRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMedicineRepository(db database.PgxIface, log *zap.Logger) MedicineRepository {
	return &medicineRepository{
		db:  db,
		log: log.With(zap.String("repository", "medicine")),
	}
}

func (r *medicineRepository) Create(ctx context.Context, m *entity.Medicine) error {
	query := `
		INSERT INTO medicines (` + medicineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(ctx, query,
		m.ID,
		m.SellerID,
		m.SellerEmail,
		m.SellerName,
		m.Name,
		m.GenericName,
		m.Description,
		m.Image,
		m.Category,
		m.Company,
		m.MassUnit,
		m.Price,
		m.Discount,
		m.CreatedTime,
		m.UpdatedTime,
	)
	if err != nil {
		r.log.Error("Failed to create medicine",
			zap.Error(err),
			zap.String("seller_email", m.SellerEmail),
			zap.String("name", m.Name),
		)
		return fmt.Errorf("create medicine %s: %w", m.ID, err)
	}

	return nil
}

func (r *medicineRepository) FindByID(ctx context.Context, id string) (*entity.Medicine, error) {
	query := `SELECT ` + medicineColumns + ` FROM medicines WHERE id = $1`

	m, err := scanMedicine(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find medicine by ID", zap.Error(err), zap.String("medicine_id", id))
		return nil, fmt.Errorf("find medicine by ID %s: %w", id, err)
	}

	return m, nil
}

// Find returns listings newest first.
func (r *medicineRepository) Find(ctx context.Context, filter MedicineFilter) ([]*entity.Medicine, error) {
	var cond conditions
	if filter.SellerEmail != "" {
		cond.add("seller_email = $%d", filter.SellerEmail)
	}
	if filter.Category != "" {
		cond.add("category = $%d", filter.Category)
	}
	if filter.DiscountedOnly {
		cond.addRaw("discount > 0")
	}

	query := `SELECT ` + medicineColumns + ` FROM medicines` + cond.where() + ` ORDER BY created_time DESC`

	rows, err := r.db.Query(ctx, query, cond.args...)
	if err != nil {
		r.log.Error("Failed to find medicines", zap.Error(err), zap.Any("filter", filter))
		return nil, fmt.Errorf("find medicines: %w", err)
	}
	defer rows.Close()

	medicines := make([]*entity.Medicine, 0)
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			r.log.Error("Failed to scan medicine row", zap.Error(err))
			return nil, fmt.Errorf("scan medicine row: %w", err)
		}
		medicines = append(medicines, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate medicine rows: %w", err)
	}

	return medicines, nil
}

// Update rewrites the mutable columns. seller_email is never part of the SET list.
func (r *medicineRepository) Update(ctx context.Context, m *entity.Medicine) error {
	query := `
		UPDATE medicines
		SET seller_name = $2, name = $3, generic_name = $4, description = $5,
		    image = $6, category = $7, company = $8, mass_unit = $9,
		    price = $10, discount = $11, updated_time = $12
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		m.ID,
		m.SellerName,
		m.Name,
		m.GenericName,
		m.Description,
		m.Image,
		m.Category,
		m.Company,
		m.MassUnit,
		m.Price,
		m.Discount,
		m.UpdatedTime,
	)
	if err != nil {
		r.log.Error("Failed to update medicine", zap.Error(err), zap.String("medicine_id", m.ID))
		return fmt.Errorf("update medicine %s: %w", m.ID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("medicine %s: %w", m.ID, ErrNotFound)
	}

	return nil
}

func (r *medicineRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM medicines WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete medicine", zap.Error(err), zap.String("medicine_id", id))
		return fmt.Errorf("delete medicine %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("medicine %s: %w", id, ErrNotFound)
	}

	r.log.Info("Medicine deleted", zap.String("medicine_id", id))
	return nil
}

func scanMedicine(row pgx.Row) (*entity.Medicine, error) {
	var m entity.Medicine
	err := row.Scan(
		&m.ID,
		&m.SellerID,
		&m.SellerEmail,
		&m.SellerName,
		&m.Name,
		&m.GenericName,
		&m.Description,
		&m.Image,
		&m.Category,
		&m.Company,
		&m.MassUnit,
		&m.Price,
		&m.Discount,
		&m.CreatedTime,
		&m.UpdatedTime,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
