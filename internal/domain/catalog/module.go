package catalog

import (
	"fmt"
	"strings"
	"time"
)

// Module is a named bundle of features. Core modules are entitled to every tenant.
type Module struct {
	id          uint
	code        string
	name        string
	description string
	isCore      bool
	active      bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewModule(code, name, description string, isCore bool) (*Module, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" {
		return nil, fmt.Errorf("%w: module code is required", ErrInvalidModuleInput)
	}
	if len(code) > 50 {
		return nil, fmt.Errorf("%w: module code too long (max 50 characters)", ErrInvalidModuleInput)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: module name is required", ErrInvalidModuleInput)
	}

	now := time.Now().UTC()
	return &Module{
		code:        code,
		name:        name,
		description: description,
		isCore:      isCore,
		active:      true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructModule(id uint, code, name, description string, isCore, active bool, createdAt, updatedAt time.Time) (*Module, error) {
	if id == 0 {
		return nil, fmt.Errorf("module ID cannot be zero")
	}
	return &Module{
		id:          id,
		code:        code,
		name:        name,
		description: description,
		isCore:      isCore,
		active:      active,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (m *Module) ID() uint             { return m.id }
func (m *Module) Code() string         { return m.code }
func (m *Module) Name() string         { return m.name }
func (m *Module) Description() string  { return m.description }
func (m *Module) IsCore() bool         { return m.isCore }
func (m *Module) IsActive() bool       { return m.active }
func (m *Module) CreatedAt() time.Time { return m.createdAt }
func (m *Module) UpdatedAt() time.Time { return m.updatedAt }

func (m *Module) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("module ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("module ID cannot be zero")
	}
	m.id = id
	return nil
}

func (m *Module) UpdateDetails(name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: module name is required", ErrInvalidModuleInput)
	}
	m.name = name
	m.description = description
	m.updatedAt = time.Now().UTC()
	return nil
}

func (m *Module) SetCore(isCore bool) {
	m.isCore = isCore
	m.updatedAt = time.Now().UTC()
}

func (m *Module) SetActive(active bool) {
	m.active = active
	m.updatedAt = time.Now().UTC()
}
