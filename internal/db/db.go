package db

import (
	"time"

	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/auth"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/config"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/logger"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		logger.L.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.L.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Club{},
		&models.Member{},
		&models.Request{},
		&models.RequestNote{},
		&models.RequestLog{},
		&models.Event{},
		&models.ServiceHour{},
		&models.TrialClaim{},
		&models.SystemFlag{},
	); err != nil {
		logger.L.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(`
        UPDATE clubs
        SET plan = 'FREE'
        WHERE plan IS NULL OR plan = ''
    `)
	db.Exec(`
        UPDATE clubs
        SET subscription_status = 'inactive'
        WHERE subscription_status IS NULL OR subscription_status = ''
    `)
	db.Exec(`
        UPDATE members
        SET role = CASE WHEN is_admin THEN 'ADMIN' ELSE 'MEMBER' END
        WHERE role IS NULL OR role = ''
    `)

	seedAdmin(db, cfg)

	return db
}

// seedAdmin promotes (or creates) a super admin account from the
// environment. Intended for first deploys; a no-op when unset.
func seedAdmin(db *gorm.DB, cfg *config.Config) {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		return
	}

	email := auth.NormalizeLogin(cfg.SeedAdminEmail)

	var m models.Member
	err := db.Where("LOWER(email) = ?", email).First(&m).Error
	if err == nil {
		if !m.IsSuperAdmin || !m.IsAdmin {
			db.Model(&m).Updates(map[string]interface{}{
				"is_super_admin": true,
				"is_admin":       true,
				"is_active":      true,
			})
			logger.L.Infow("promoted seed admin", "email", email)
		}
		return
	}

	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		logger.L.Errorw("seed admin hash failed", "err", err)
		return
	}

	m = models.Member{
		Email:          email,
		HashedPassword: hash,
		FullName:       cfg.SeedAdminName,
		IsActive:       true,
		IsAdmin:        true,
		IsSuperAdmin:   true,
		Role:           models.RoleAdmin,
	}
	if err := db.Create(&m).Error; err != nil {
		logger.L.Errorw("seed admin create failed", "err", err)
		return
	}
	logger.L.Infow("created seed admin", "email", email)
}
