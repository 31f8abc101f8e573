package menurepo

import (
	"context"
	"errors"
	"strings"

	"vendorbot/internal/core/domain/model/menu"
	"vendorbot/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMenuRepository implements ports.MenuRepository using GORM.
type GormMenuRepository struct {
	db *gorm.DB
}

func NewGormMenuRepository(db *gorm.DB) *GormMenuRepository {
	return &GormMenuRepository{db: db}
}

// Save upserts by key. The display name and position of an existing row are kept.
func (r *GormMenuRepository) Save(ctx context.Context, item *menu.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := fromDomain(item)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "lookup_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"price", "unit", "availability", "updated_at"}),
		}).
		Create(&dto).Error
}

func (r *GormMenuRepository) Get(ctx context.Context, key string) (*menu.Item, error) {
	var dto MenuItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "lookup_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("menu_item", key)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormMenuRepository) List(ctx context.Context) ([]*menu.Item, error) {
	var dtos []MenuItemDTO
	if err := r.db.WithContext(ctx).Order("position").Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

// Search matches query as a literal substring of the item key.
func (r *GormMenuRepository) Search(ctx context.Context, query string) ([]*menu.Item, error) {
	pattern := "%" + escapeLike(menu.NormalizeName(query)) + "%"

	var dtos []MenuItemDTO
	if err := r.db.WithContext(ctx).
		Where(`lookup_key LIKE ? ESCAPE '\'`, pattern).
		Order("position").
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

func toDomainList(dtos []MenuItemDTO) ([]*menu.Item, error) {
	items := make([]*menu.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
