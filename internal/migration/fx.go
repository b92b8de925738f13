package migration

import (
	anamnesisdomain "github.com/TwinexTecnologia/bodybrothers/internal/anamnesis/domain"
	authdomain "github.com/TwinexTecnologia/bodybrothers/internal/auth/domain"
	"github.com/TwinexTecnologia/bodybrothers/internal/config"
	dietdomain "github.com/TwinexTecnologia/bodybrothers/internal/diet/domain"
	paymentdomain "github.com/TwinexTecnologia/bodybrothers/internal/payment/domain"
	plandomain "github.com/TwinexTecnologia/bodybrothers/internal/plan/domain"
	studentdomain "github.com/TwinexTecnologia/bodybrothers/internal/student/domain"
	workoutdomain "github.com/TwinexTecnologia/bodybrothers/internal/workout/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Models lists every persisted type in dependency order.
func Models() []any {
	return []any{
		&authdomain.Trainer{},
		&authdomain.Session{},
		&plandomain.Plan{},
		&studentdomain.Student{},
		&paymentdomain.PaymentRecord{},
		&workoutdomain.WorkoutProtocol{},
		&workoutdomain.WorkoutAssignment{},
		&dietdomain.DietProtocol{},
		&dietdomain.DietAssignment{},
		&anamnesisdomain.AnamnesisModel{},
		&anamnesisdomain.AnamnesisResponse{},
	}
}

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		// Versioned SQL migrations are postgres-only; sqlite and mysql
		// setups rely on the schema gorm derives from the models.
		if cfg.DBType != "postgres" {
			return conn.AutoMigrate(Models()...)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
