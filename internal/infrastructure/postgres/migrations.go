package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/jhoicas/contactbook-api/pkg/logger"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// migrationLockKey clave del advisory lock que serializa arranques concurrentes.
const migrationLockKey int64 = 7_246_153_001

const createMigrationsTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version    BIGINT PRIMARY KEY,
		name       TEXT NOT NULL,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// Migration un paso versionado de cambio de esquema.
type Migration struct {
	Version int64
	Name    string
	SQL     string
}

// DefaultMigrations devuelve las migraciones embebidas en el binario, ordenadas por versión.
func DefaultMigrations() ([]Migration, error) {
	return LoadMigrations(migrationFiles, "migrations")
}

// LoadMigrations lee los archivos NNN_descripcion.sql de dir y los ordena por versión.
// Un nombre mal formado, una versión repetida o un archivo vacío es error.
func LoadMigrations(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("leer directorio de migraciones: %w", err)
	}

	seen := make(map[int64]string)
	var list []Migration
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".sql")
		prefix, desc, ok := strings.Cut(name, "_")
		if !ok || desc == "" {
			return nil, fmt.Errorf("migración %q: se espera NNN_descripcion.sql", entry.Name())
		}
		version, err := strconv.ParseInt(prefix, 10, 64)
		if err != nil || version <= 0 {
			return nil, fmt.Errorf("migración %q: versión inválida", entry.Name())
		}
		if prev, dup := seen[version]; dup {
			return nil, fmt.Errorf("migración %q: versión %d repetida (%s)", entry.Name(), version, prev)
		}
		seen[version] = entry.Name()

		content, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("leer migración %s: %w", entry.Name(), err)
		}
		if strings.TrimSpace(string(content)) == "" {
			return nil, fmt.Errorf("migración %q vacía", entry.Name())
		}
		list = append(list, Migration{Version: version, Name: desc, SQL: string(content)})
	}

	sort.Slice(list, func(i, j int) bool { return list[i].Version < list[j].Version })
	return list, nil
}

// Migrator aplica migraciones pendientes y registra las aplicadas en schema_migrations.
type Migrator struct {
	db         DB
	migrations []Migration
	log        *logger.Logger
}

// NewMigrator construye el runner. migrations debe venir ordenado (LoadMigrations lo garantiza).
func NewMigrator(db DB, migrations []Migration, log *logger.Logger) *Migrator {
	return &Migrator{db: db, migrations: migrations, log: log}
}

// Up lleva el esquema a la última versión. Devuelve cuántas migraciones aplicó.
// Cada paso corre en su propia transacción: si uno falla, los anteriores quedan aplicados
// y el error se devuelve sin intentar los siguientes.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if _, err := m.db.Exec(ctx, createMigrationsTable); err != nil {
		return 0, fmt.Errorf("crear schema_migrations: %w", err)
	}

	applied := 0
	for _, mig := range m.migrations {
		ok, err := m.apply(ctx, mig)
		if err != nil {
			return applied, fmt.Errorf("migración %03d_%s: %w", mig.Version, mig.Name, err)
		}
		if ok {
			applied++
			m.log.Info().Int64("version", mig.Version).Str("name", mig.Name).Msg("migración aplicada")
		}
	}
	return applied, nil
}

// apply ejecuta una migración si aún no está registrada. El advisory lock de la transacción
// hace que dos procesos arrancando a la vez no apliquen el mismo paso dos veces.
func (m *Migrator) apply(ctx context.Context, mig Migration) (bool, error) {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, migrationLockKey); err != nil {
		return false, fmt.Errorf("advisory lock: %w", err)
	}

	var exists bool
	err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, mig.Version).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("consultar estado: %w", err)
	}
	if exists {
		return false, nil
	}

	if _, err := tx.Exec(ctx, mig.SQL); err != nil {
		return false, fmt.Errorf("ejecutar: %w", err)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, mig.Version, mig.Name); err != nil {
		return false, fmt.Errorf("registrar versión: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit transaction: %w", err)
	}
	return true, nil
}

// Applied lista las versiones registradas en schema_migrations, en orden.
func (m *Migrator) Applied(ctx context.Context) ([]int64, error) {
	rows, err := m.db.Query(ctx, `SELECT version FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("listar migraciones: %w", err)
	}
	defer rows.Close()

	versions := make([]int64, 0)
	for rows.Next() {
		var v int64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan migración: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}
