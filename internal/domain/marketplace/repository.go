package marketplace

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Repository runs read-only catalog queries
type Repository interface {
	Search(ctx context.Context, p SearchParams) ([]*CatalogItem, int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates marketplace repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Search returns active listings matching the filters plus the unpaginated
// total. Filters are combined into a dynamic WHERE clause.
func (r *repository) Search(ctx context.Context, p SearchParams) ([]*CatalogItem, int, error) {
	conditions := []string{"l.status = 'active'"}
	args := []interface{}{}
	argIndex := 1

	if p.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(l.description ILIKE $%d OR l.crop_type ILIKE $%d OR f.name ILIKE $%d)",
			argIndex, argIndex, argIndex))
		args = append(args, "%"+p.Search+"%")
		argIndex++
	}

	if p.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("l.price_per_credit >= $%d", argIndex))
		args = append(args, *p.MinPrice)
		argIndex++
	}

	if p.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("l.price_per_credit <= $%d", argIndex))
		args = append(args, *p.MaxPrice)
		argIndex++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	from := `
		FROM listings l
		JOIN users u ON u.id = l.farmer_id
		JOIN farmlands f ON f.id = l.farmland_id
	`

	var total int
	countQuery := "SELECT COUNT(*) " + from + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count catalog: %w", err)
	}

	orderBy := map[string]string{
		"price_low":  "l.price_per_credit ASC, l.created_at DESC",
		"price_high": "l.price_per_credit DESC, l.created_at DESC",
		"newest":     "l.created_at DESC",
		"oldest":     "l.created_at ASC",
	}[p.Sort]
	if orderBy == "" {
		orderBy = "l.created_at DESC"
	}

	query := fmt.Sprintf(`
		SELECT l.id, l.crop_type, l.description, l.credits_available, l.price_per_credit,
		       l.farmer_id, u.name AS farmer_name,
		       l.farmland_id, f.name AS farmland_name, f.location, f.cultivation_method,
		       l.created_at
		%s %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, from, where, orderBy, argIndex, argIndex+1)

	args = append(args, p.Limit, p.Offset())

	items := []*CatalogItem{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("search catalog: %w", err)
	}

	return items, total, nil
}
