package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	// DriverSQLite stores content in a local SQLite file.
	DriverSQLite = "sqlite"
	// DriverPostgres connects to a hosted PostgreSQL database.
	DriverPostgres = "postgres"
)

// Options describes how to reach the content store.
type Options struct {
	Driver string
	// Path is the SQLite file; ignored for postgres.
	Path string
	// URL is the PostgreSQL DSN; ignored for sqlite.
	URL    string
	Logger logger.Interface
}

// Open 打开数据库连接并执行自动迁移。
// SQLite 的路径为空时回退到 advisorsite.db。
func Open(opts Options) (*gorm.DB, error) {
	gormConfig := &gorm.Config{}
	if opts.Logger != nil {
		gormConfig.Logger = opts.Logger
	}

	var dialector gorm.Dialector
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", DriverSQLite:
		path := strings.TrimSpace(opts.Path)
		if path == "" {
			path = "advisorsite.db"
		}
		if err := ensureParentDir(path); err != nil {
			return nil, err
		}
		dialector = sqlite.Open(path)
	case DriverPostgres:
		if strings.TrimSpace(opts.URL) == "" {
			return nil, errors.New("postgres database url is required")
		}
		dialector = postgres.Open(opts.URL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}

	gdb, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, err
	}

	if err := Migrate(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

// Models lists every table owned by the site, in migration order.
func Models() []interface{} {
	return []interface{}{
		&User{},
		&HeroSection{},
		&HeroSlide{},
		&TeamMember{},
		&ServiceOffering{},
		&Client{},
		&Credential{},
		&GalleryItem{},
		&AboutContent{},
		&ContactContent{},
		&CompanySettings{},
	}
}

// Migrate 自动迁移模式，为全部内容模型创建表。
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	// Rows written before status existed are treated as drafts.
	for _, model := range []interface{}{&HeroSection{}, &HeroSlide{}} {
		if err := gdb.Model(model).
			Where("status = '' OR status IS NULL").
			Update("status", StatusDraft).Error; err != nil {
			return fmt.Errorf("backfill status: %w", err)
		}
	}

	return nil
}

// Close releases the underlying connection pool.
func Close(gdb *gorm.DB) error {
	if gdb == nil {
		return nil
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func ensureParentDir(path string) error {
	if strings.HasPrefix(path, "file:") {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
