package employee

import (
	"context"
	"database/sql"

	"go-leave/internal/shared/database"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindAll(ctx context.Context) ([]Employee, error)
	FindByFullName(ctx context.Context, fullName string) (*Employee, error)
	FindByRegistryNo(ctx context.Context, registryNo string) (*Employee, error)
	ExistsByRegistryNo(ctx context.Context, registryNo string) (bool, error)
	ExistsByFullName(ctx context.Context, fullName string) (bool, error)
	Create(ctx context.Context, e *Employee) error
	DeleteByFullName(ctx context.Context, fullName string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return database.Conn(ctx, r.db, r.tx)
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var emps []Employee
	err := r.conn(ctx).Order("full_name ASC").Find(&emps).Error
	return emps, err
}

func (r *repository) FindByFullName(ctx context.Context, fullName string) (*Employee, error) {
	var e Employee
	err := r.conn(ctx).First(&e, "full_name = ?", fullName).Error
	return &e, err
}

func (r *repository) FindByRegistryNo(ctx context.Context, registryNo string) (*Employee, error) {
	var e Employee
	err := r.conn(ctx).First(&e, "registry_no = ?", registryNo).Error
	return &e, err
}

func (r *repository) ExistsByRegistryNo(ctx context.Context, registryNo string) (bool, error) {
	var count int64
	err := r.conn(ctx).Model(&Employee{}).Where("registry_no = ?", registryNo).Count(&count).Error
	return count > 0, err
}

func (r *repository) ExistsByFullName(ctx context.Context, fullName string) (bool, error) {
	var count int64
	err := r.conn(ctx).Model(&Employee{}).Where("full_name = ?", fullName).Count(&count).Error
	return count > 0, err
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.conn(ctx).Create(e).Error
}

func (r *repository) DeleteByFullName(ctx context.Context, fullName string) error {
	res := r.conn(ctx).Delete(&Employee{}, "full_name = ?", fullName)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
