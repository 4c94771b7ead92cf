package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/tenantgate/tenantgate/internal/domain/tenant"
	"github.com/tenantgate/tenantgate/internal/infrastructure/persistence/mappers"
	"github.com/tenantgate/tenantgate/internal/infrastructure/persistence/models"
	"github.com/tenantgate/tenantgate/internal/shared/db"
	"github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

type TenantRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.TenantMapper
	logger logger.Interface
}

func NewTenantRepository(db *gorm.DB, logger logger.Interface) tenant.Repository {
	return &TenantRepositoryImpl{
		db:     db,
		mapper: mappers.NewTenantMapper(),
		logger: logger,
	}
}

func (r *TenantRepositoryImpl) Create(ctx context.Context, t *tenant.Tenant) error {
	model, err := r.mapper.ToModel(t)
	if err != nil {
		r.logger.Errorw("failed to convert tenant to model", "error", err)
		return fmt.Errorf("failed to convert tenant to model: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create tenant", "error", err, "name", t.Name())
		return fmt.Errorf("failed to create tenant: %w", err)
	}

	if err := t.SetID(model.ID); err != nil {
		return err
	}

	r.logger.Infow("tenant created successfully", "tenant_id", model.ID, "plan_id", t.PlanID())
	return nil
}

// Update leaves storage_used_mb alone so that concurrent upload accounting is never overwritten.
func (r *TenantRepositoryImpl) Update(ctx context.Context, t *tenant.Tenant) error {
	model, err := r.mapper.ToModel(t)
	if err != nil {
		r.logger.Errorw("failed to convert tenant to model", "error", err)
		return fmt.Errorf("failed to convert tenant to model: %w", err)
	}

	result := db.GetTxFromContext(ctx, r.db).Model(&models.TenantModel{}).
		Where("id = ?", t.ID()).
		Updates(map[string]interface{}{
			"plan_id":           model.PlanID,
			"name":              model.Name,
			"active":            model.Active,
			"payment_status":    model.PaymentStatus,
			"last_payment_date": model.LastPaymentDate,
			"next_payment_date": model.NextPaymentDate,
			"metadata":          model.Metadata,
			"updated_at":        model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update tenant", "error", result.Error, "tenant_id", t.ID())
		return fmt.Errorf("failed to update tenant: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("tenant not found")
	}
	return nil
}

func (r *TenantRepositoryImpl) GetByID(ctx context.Context, id uint) (*tenant.Tenant, error) {
	var model models.TenantModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get tenant by ID", "error", err, "tenant_id", id)
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *TenantRepositoryImpl) List(ctx context.Context, filter tenant.ListFilter) ([]*tenant.Tenant, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.TenantModel{})
	if filter.PaymentStatus != nil {
		query = query.Where("payment_status = ?", filter.PaymentStatus.String())
	}
	if filter.PlanID != nil {
		query = query.Where("plan_id = ?", *filter.PlanID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count tenants", "error", err)
		return nil, 0, fmt.Errorf("failed to count tenants: %w", err)
	}

	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var tenantModels []*models.TenantModel
	if err := query.Order("id ASC").Find(&tenantModels).Error; err != nil {
		r.logger.Errorw("failed to list tenants", "error", err)
		return nil, 0, fmt.Errorf("failed to list tenants: %w", err)
	}

	entities, err := r.mapper.ToEntities(tenantModels)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

func (r *TenantRepositoryImpl) CountByPlan(ctx context.Context, planID uint) (int64, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).Model(&models.TenantModel{}).
		Where("plan_id = ?", planID).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count tenants by plan", "error", err, "plan_id", planID)
		return 0, fmt.Errorf("failed to count tenants by plan: %w", err)
	}
	return count, nil
}

func (r *TenantRepositoryImpl) ListWithNextPaymentDate(ctx context.Context, afterID uint, limit int) ([]*tenant.Tenant, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Where("id > ? AND next_payment_date IS NOT NULL", afterID).
		Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var tenantModels []*models.TenantModel
	if err := query.Find(&tenantModels).Error; err != nil {
		r.logger.Errorw("failed to list tenants for sweep", "error", err, "after_id", afterID)
		return nil, fmt.Errorf("failed to list tenants for sweep: %w", err)
	}
	return r.mapper.ToEntities(tenantModels)
}

func (r *TenantRepositoryImpl) MarkOverdue(ctx context.Context, id uint, dueBefore time.Time) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).Model(&models.TenantModel{}).
		Where("id = ? AND payment_status <> ? AND next_payment_date < ?",
			id, tenant.PaymentStatusOverdue.String(), dueBefore.UTC()).
		Updates(map[string]interface{}{
			"payment_status": tenant.PaymentStatusOverdue.String(),
			"active":         false,
			"updated_at":     time.Now().UTC(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to mark tenant overdue", "error", result.Error, "tenant_id", id)
		return false, fmt.Errorf("failed to mark tenant overdue: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *TenantRepositoryImpl) MarkPending(ctx context.Context, id uint, from, until time.Time) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).Model(&models.TenantModel{}).
		Where("id = ? AND payment_status = ? AND next_payment_date >= ? AND next_payment_date < ?",
			id, tenant.PaymentStatusActive.String(), from.UTC(), until.UTC()).
		Updates(map[string]interface{}{
			"payment_status": tenant.PaymentStatusPending.String(),
			"updated_at":     time.Now().UTC(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to mark tenant pending", "error", result.Error, "tenant_id", id)
		return false, fmt.Errorf("failed to mark tenant pending: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// IncrementStorageUsed adds deltaMB in a single UPDATE and reads the total back in the same transaction.
func (r *TenantRepositoryImpl) IncrementStorageUsed(ctx context.Context, id uint, deltaMB float64) (float64, error) {
	var used float64
	err := db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.TenantModel{}).
			Where("id = ?", id).
			UpdateColumn("storage_used_mb", gorm.Expr("storage_used_mb + ?", deltaMB))
		if result.Error != nil {
			return fmt.Errorf("failed to increment storage usage: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return errors.NewNotFoundError("tenant not found")
		}
		var totals []float64
		if err := tx.Model(&models.TenantModel{}).Where("id = ?", id).Pluck("storage_used_mb", &totals).Error; err != nil {
			return fmt.Errorf("failed to read storage usage: %w", err)
		}
		if len(totals) > 0 {
			used = totals[0]
		}
		return nil
	})
	if err != nil {
		if !errors.IsNotFoundError(err) {
			r.logger.Errorw("failed to increment storage usage", "error", err, "tenant_id", id, "delta_mb", deltaMB)
		}
		return 0, err
	}
	return used, nil
}
