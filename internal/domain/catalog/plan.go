package catalog

import (
	"fmt"
	"strings"
	"time"
)

// Plan is a priced tier. Its code selects the per-file upload cap.
type Plan struct {
	id             uint
	code           string
	name           string
	description    string
	monthlyPrice   uint64
	storageLimitMB int64
	maxFileSizeMB  int64
	maxUsers       int
	metadata       map[string]interface{}
	version        int
	createdAt      time.Time
	updatedAt      time.Time
}

func NewPlan(code, name, description string, monthlyPrice uint64, storageLimitMB, maxFileSizeMB int64, maxUsers int) (*Plan, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)

	if code == "" {
		return nil, fmt.Errorf("plan code is required")
	}
	if len(code) > 20 {
		return nil, fmt.Errorf("plan code too long (max 20 characters)")
	}
	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("plan name too long (max 100 characters)")
	}
	if err := validateLimits(storageLimitMB, maxFileSizeMB, maxUsers); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Plan{
		code:           code,
		name:           name,
		description:    description,
		monthlyPrice:   monthlyPrice,
		storageLimitMB: storageLimitMB,
		maxFileSizeMB:  maxFileSizeMB,
		maxUsers:       maxUsers,
		metadata:       make(map[string]interface{}),
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructPlan(id uint, code, name, description string, monthlyPrice uint64,
	storageLimitMB, maxFileSizeMB int64, maxUsers int, metadata map[string]interface{},
	version int, createdAt, updatedAt time.Time) (*Plan, error) {

	if id == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}
	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	return &Plan{
		id:             id,
		code:           code,
		name:           name,
		description:    description,
		monthlyPrice:   monthlyPrice,
		storageLimitMB: storageLimitMB,
		maxFileSizeMB:  maxFileSizeMB,
		maxUsers:       maxUsers,
		metadata:       metadata,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func validateLimits(storageLimitMB, maxFileSizeMB int64, maxUsers int) error {
	if storageLimitMB < 0 {
		return fmt.Errorf("%w: storage limit cannot be negative", ErrInvalidPlanLimits)
	}
	if maxFileSizeMB < 0 {
		return fmt.Errorf("%w: max file size cannot be negative", ErrInvalidPlanLimits)
	}
	if maxUsers < 0 {
		return fmt.Errorf("%w: max users cannot be negative", ErrInvalidPlanLimits)
	}
	return nil
}

func (p *Plan) ID() uint                          { return p.id }
func (p *Plan) Code() string                      { return p.code }
func (p *Plan) Name() string                      { return p.name }
func (p *Plan) Description() string               { return p.description }
func (p *Plan) MonthlyPrice() uint64              { return p.monthlyPrice }
func (p *Plan) StorageLimitMB() int64             { return p.storageLimitMB }
func (p *Plan) MaxFileSizeMB() int64              { return p.maxFileSizeMB }
func (p *Plan) MaxUsers() int                     { return p.maxUsers }
func (p *Plan) Metadata() map[string]interface{} { return p.metadata }
func (p *Plan) Version() int                      { return p.version }
func (p *Plan) CreatedAt() time.Time              { return p.createdAt }
func (p *Plan) UpdatedAt() time.Time              { return p.updatedAt }

func (p *Plan) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("plan ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("plan ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Plan) UpdateDetails(name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("plan name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("plan name too long (max 100 characters)")
	}
	p.name = name
	p.description = description
	p.touch()
	return nil
}

func (p *Plan) UpdatePrice(monthlyPrice uint64) {
	p.monthlyPrice = monthlyPrice
	p.touch()
}

func (p *Plan) UpdateLimits(storageLimitMB, maxFileSizeMB int64, maxUsers int) error {
	if err := validateLimits(storageLimitMB, maxFileSizeMB, maxUsers); err != nil {
		return err
	}
	p.storageLimitMB = storageLimitMB
	p.maxFileSizeMB = maxFileSizeMB
	p.maxUsers = maxUsers
	p.touch()
	return nil
}

func (p *Plan) SetMetadata(metadata map[string]interface{}) {
	if metadata == nil {
		metadata = make(map[string]interface{})
	}
	p.metadata = metadata
	p.touch()
}

func (p *Plan) touch() {
	p.updatedAt = time.Now().UTC()
	p.version++
}
