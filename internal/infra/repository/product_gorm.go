package repository

import (
	"context"
	"errors"
	"strings"

	"shopd/internal/domain/model"
	repo "shopd/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Product{})

	//カテゴリ絞り込み
	if q.CategoryID != nil {
		base = base.Where("category_id = ?", *q.CategoryID)
	}

	//価格レンジ
	if q.MinPrice != nil {
		base = base.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		base = base.Where("price <= ?", *q.MaxPrice)
	}

	//名前の部分一致（大文字小文字を区別しない）
	if s := strings.TrimSpace(q.Search); s != "" {
		base = base.Where("name ILIKE ?", "%"+s+"%")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	sortBy := q.SortBy
	switch sortBy {
	case "price", "name":
	default:
		sortBy = "created_at"
	}
	dir := "desc"
	if strings.EqualFold(q.Order, "asc") {
		dir = "asc"
	}

	var items []model.Product
	offset := (q.Page - 1) * q.Limit
	err := base.
		Preload("Category").
		Order(sortBy + " " + dir).
		Limit(q.Limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return []model.Product{}, 0, err
	}

	return items, total, nil
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	//ゼロ値でも全カラム書き込むようSelectで明示する
	res := r.db.WithContext(ctx).Model(&model.Product{ID: p.ID}).
		Select("name", "description", "price", "stock", "category_id", "images", "updated_at").
		Updates(p)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProductGormRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// カテゴリを参照している商品数
func (r *ProductGormRepository) CountByCategoryID(ctx context.Context, categoryID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("category_id = ?", categoryID).
		Count(&n).Error
	if err != nil {
		return 0, err
	}
	return n, nil
}
