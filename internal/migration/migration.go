package migration

import (
	sessiondomain "github.com/strongslime/atelier/internal/session/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Run creates the snapshot schema on startup so the service is usable
// out of the box for local and self-hosted environments.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(&sessiondomain.SessionSnapshot{})
}

var Module = fx.Module("migration",
	fx.Invoke(Run),
)
