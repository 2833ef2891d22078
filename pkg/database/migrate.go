package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

// schemaMigrationsTable 记录 edu-space 结构版本的表
const schemaMigrationsTable = "edu_space_schema_migrations"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations 将 PostgreSQL 中的 edu-space 结构升级到最新版本
// （用户、分类、课程、课时、视频/附件、评论、评价、群发记录、Token 黑名单）。
// sqlite 不走此路径，由 repository.AutoMigrate 按模型建表。
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	files, err := migrationFiles()
	if err != nil {
		return err
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("读取内嵌结构脚本失败: %w", err)
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: schemaMigrationsTable})
	if err != nil {
		return fmt.Errorf("连接结构版本表失败: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("准备结构升级失败: %w", err)
	}

	before, _, _ := m.Version()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("结构升级失败（起始版本 %d）: %w", before, err)
	}

	after, dirty, _ := m.Version()
	if dirty {
		// 需人工修复后执行 migrate force
		logger.Warn("edu-space 结构版本未完整应用",
			zap.Uint("version", after),
			zap.String("table", schemaMigrationsTable),
		)
		return nil
	}
	logger.Info("edu-space 结构已是最新",
		zap.Uint("from", before),
		zap.Uint("to", after),
		zap.Int("scripts", len(files)),
	)
	return nil
}

// migrationFiles 列出内嵌的升级脚本，并校验每个 up 都有对应的 down
func migrationFiles() ([]string, error) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("读取内嵌结构脚本失败: %w", err)
	}

	names := make(map[string]bool, len(entries))
	for _, e := range entries {
		names[e.Name()] = true
	}

	var ups []string
	for name := range names {
		if !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		down := strings.TrimSuffix(name, ".up.sql") + ".down.sql"
		if !names[down] {
			return nil, fmt.Errorf("结构脚本 %s 缺少回滚脚本 %s", name, down)
		}
		ups = append(ups, name)
	}
	sort.Strings(ups)
	return ups, nil
}
