package pg

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Gorm opens a *gorm.DB on top of pool. Driver errors are translated, so
// unique violations surface as gorm.ErrDuplicatedKey.
func Gorm(pool *pgxpool.Pool, opts ...gorm.Option) (*gorm.DB, error) {
	dialector := postgres.New(postgres.Config{
		Conn: stdlib.OpenDBFromPool(pool),
	})

	base := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}

	db, err := gorm.Open(dialector, append([]gorm.Option{base}, opts...)...)
	if err != nil {
		return nil, errors.Join(ErrFailedToOpenGorm, err)
	}
	return db, nil
}
