package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/tenantgate/tenantgate/internal/domain/catalog"
	"github.com/tenantgate/tenantgate/internal/infrastructure/persistence/mappers"
	"github.com/tenantgate/tenantgate/internal/infrastructure/persistence/models"
	"github.com/tenantgate/tenantgate/internal/shared/db"
	"github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

type ModuleRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ModuleMapper
	logger logger.Interface
}

func NewModuleRepository(db *gorm.DB, logger logger.Interface) catalog.ModuleRepository {
	return &ModuleRepositoryImpl{
		db:     db,
		mapper: mappers.NewModuleMapper(),
		logger: logger,
	}
}

func (r *ModuleRepositoryImpl) Create(ctx context.Context, module *catalog.Module) error {
	model := r.mapper.ToModel(module)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("module code already exists", module.Code())
		}
		r.logger.Errorw("failed to create module", "error", err, "code", module.Code())
		return fmt.Errorf("failed to create module: %w", err)
	}

	if err := module.SetID(model.ID); err != nil {
		return err
	}

	r.logger.Infow("module created successfully", "module_id", model.ID, "code", module.Code())
	return nil
}

func (r *ModuleRepositoryImpl) Update(ctx context.Context, module *catalog.Module) error {
	result := db.GetTxFromContext(ctx, r.db).Model(&models.ModuleModel{}).
		Where("id = ?", module.ID()).
		Updates(map[string]interface{}{
			"name":        module.Name(),
			"description": module.Description(),
			"is_core":     module.IsCore(),
			"is_active":   module.IsActive(),
			"updated_at":  module.UpdatedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update module", "error", result.Error, "module_id", module.ID())
		return fmt.Errorf("failed to update module: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("module not found")
	}
	return nil
}

func (r *ModuleRepositoryImpl) Delete(ctx context.Context, id uint) error {
	err := db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("module_id = ?", id).Delete(&models.PlanModuleModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete module plan links: %w", err)
		}
		if err := tx.Where("module_id = ?", id).Delete(&models.ModuleFeatureModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete module features: %w", err)
		}
		result := tx.Delete(&models.ModuleModel{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete module: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return errors.NewNotFoundError("module not found")
		}
		return nil
	})
	if err != nil {
		if !errors.IsNotFoundError(err) {
			r.logger.Errorw("failed to delete module", "error", err, "module_id", id)
		}
		return err
	}

	r.logger.Infow("module deleted successfully", "module_id", id)
	return nil
}

func (r *ModuleRepositoryImpl) GetByID(ctx context.Context, id uint) (*catalog.Module, error) {
	var model models.ModuleModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get module by ID", "error", err, "module_id", id)
		return nil, fmt.Errorf("failed to get module: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *ModuleRepositoryImpl) GetByCode(ctx context.Context, code string) (*catalog.Module, error) {
	var model models.ModuleModel
	if err := db.GetTxFromContext(ctx, r.db).Where("code = ?", code).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get module by code", "error", err, "code", code)
		return nil, fmt.Errorf("failed to get module by code: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *ModuleRepositoryImpl) List(ctx context.Context) ([]*catalog.Module, error) {
	return r.find(ctx, "failed to list modules", func(q *gorm.DB) *gorm.DB { return q })
}

func (r *ModuleRepositoryImpl) ListByIDs(ctx context.Context, ids []uint) ([]*catalog.Module, error) {
	if len(ids) == 0 {
		return []*catalog.Module{}, nil
	}
	return r.find(ctx, "failed to list modules by IDs", func(q *gorm.DB) *gorm.DB {
		return q.Where("id IN ?", ids)
	})
}

func (r *ModuleRepositoryImpl) ListByPlan(ctx context.Context, planID uint) ([]*catalog.Module, error) {
	return r.find(ctx, "failed to list plan modules", func(q *gorm.DB) *gorm.DB {
		linked := r.db.Model(&models.PlanModuleModel{}).Select("module_id").Where("plan_id = ?", planID)
		return q.Where("id IN (?)", linked)
	})
}

func (r *ModuleRepositoryImpl) ListCore(ctx context.Context) ([]*catalog.Module, error) {
	return r.find(ctx, "failed to list core modules", func(q *gorm.DB) *gorm.DB {
		return q.Where("is_core = ?", true)
	})
}

func (r *ModuleRepositoryImpl) find(ctx context.Context, msg string, scope func(*gorm.DB) *gorm.DB) ([]*catalog.Module, error) {
	var moduleModels []*models.ModuleModel
	query := scope(db.GetTxFromContext(ctx, r.db).Model(&models.ModuleModel{}))
	if err := query.Order("id ASC").Find(&moduleModels).Error; err != nil {
		r.logger.Errorw(msg, "error", err)
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	return r.mapper.ToEntities(moduleModels)
}

func (r *ModuleRepositoryImpl) ListPlanModuleIDs(ctx context.Context, planID uint) ([]uint, error) {
	var ids []uint
	err := db.GetTxFromContext(ctx, r.db).Model(&models.PlanModuleModel{}).
		Where("plan_id = ?", planID).
		Order("module_id ASC").
		Pluck("module_id", &ids).Error
	if err != nil {
		r.logger.Errorw("failed to list plan module IDs", "error", err, "plan_id", planID)
		return nil, fmt.Errorf("failed to list plan module IDs: %w", err)
	}
	if ids == nil {
		ids = []uint{}
	}
	return ids, nil
}

func (r *ModuleRepositoryImpl) ReplacePlanModules(ctx context.Context, planID uint, moduleIDs []uint) error {
	err := db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_id = ?", planID).Delete(&models.PlanModuleModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear plan modules: %w", err)
		}
		if len(moduleIDs) == 0 {
			return nil
		}
		now := time.Now().UTC()
		links := make([]models.PlanModuleModel, 0, len(moduleIDs))
		for _, moduleID := range moduleIDs {
			links = append(links, models.PlanModuleModel{PlanID: planID, ModuleID: moduleID, CreatedAt: now})
		}
		if err := tx.Create(&links).Error; err != nil {
			return fmt.Errorf("failed to insert plan modules: %w", err)
		}
		return nil
	})
	if err != nil {
		r.logger.Errorw("failed to replace plan modules", "error", err, "plan_id", planID)
		return err
	}

	r.logger.Infow("plan modules replaced", "plan_id", planID, "count", len(moduleIDs))
	return nil
}
