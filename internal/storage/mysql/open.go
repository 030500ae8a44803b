package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Open wraps a database/sql pool opened with the "mysql" driver.
func Open(db *sql.DB) (*gorm.DB, error) {
	return gorm.Open(gormmysql.New(gormmysql.Config{Conn: db}), &gorm.Config{
		Logger: NewLogger(),
	})
}

// Connect dials dsn, verifies the connection and returns a Store over it,
// migrating the schema first when migrate is set.
func Connect(ctx context.Context, dsn string, migrate bool) (*Store, *sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open mysql: %w", err)
	}
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetMaxIdleConns(10)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping mysql: %w", err)
	}

	gdb, err := Open(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("gorm open: %w", err)
	}
	st := New(gdb)
	if migrate {
		if err := st.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return st, db, nil
}
