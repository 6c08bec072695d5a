package main

import (
	"fmt"
	"sync"

	"commons/internal/config"
	"commons/internal/database"
	"commons/internal/repository"
	"commons/internal/service"

	"gorm.io/gorm"
)

type dbOpener func() (*gorm.DB, error)

type commandContext struct {
	open dbOpener

	once  sync.Once
	admin *service.AdminService
	err   error
}

// newCommandContext builds a context that opens the configured database on
// first use. A nil opener means "load config and connect".
func newCommandContext(open dbOpener) *commandContext {
	if open == nil {
		open = openConfiguredDB
	}
	return &commandContext{open: open}
}

func (c *commandContext) adminService() (*service.AdminService, error) {
	c.once.Do(func() {
		db, err := c.open()
		if err != nil {
			c.err = err
			return
		}
		c.admin = service.NewAdminService(repository.NewUserRepository(db))
	})
	return c.admin, c.err
}

func openConfiguredDB() (*gorm.DB, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}
