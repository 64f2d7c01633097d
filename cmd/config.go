package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"db-struct-check/internal/check"
	"db-struct-check/internal/dialect"
	"db-struct-check/internal/engine"
	"db-struct-check/internal/structure"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	roleSrc = "src"
	roleDst = "dst"
)

type DBConfig struct {
	Name   string `mapstructure:"name"`
	Role   string `mapstructure:"role"`
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

var (
	overrides  = map[string]*DBConfig{roleSrc: {}, roleDst: {}}
	schemaFlag []string
)

// GetEndpointConfig returns the database configured for role, with
// command line values taking precedence over the config file.
func GetEndpointConfig(role string) (*DBConfig, error) {
	var configs []DBConfig
	if err := viper.UnmarshalKey("databases", &configs); err != nil {
		return nil, fmt.Errorf("failed to parse databases config: %w", err)
	}

	var found *DBConfig
	for i := range configs {
		if !strings.EqualFold(configs[i].Role, role) {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("multiple %s databases found (only one is allowed)", role)
		}
		found = &configs[i]
	}
	if found == nil {
		found = &DBConfig{Name: role, Role: role}
	}

	// Flag > Env (STRUCT_CHECK_SRC_DSN, ...) > Config
	for _, v := range []string{viper.GetString(role + ".dsn"), overrides[role].DSN} {
		if v != "" {
			found.DSN = v
		}
	}
	for _, v := range []string{viper.GetString(role + ".driver"), overrides[role].Driver} {
		if v != "" {
			found.Driver = v
		}
	}
	if found.DSN == "" || found.Driver == "" {
		return nil, fmt.Errorf("no %s database configured (set databases[].role: %s or use --%s-dsn and --%s-driver)", role, role, role, role)
	}
	return found, nil
}

// configuredSchemas returns the schemas to check: Flag > Config.
func configuredSchemas() []string {
	if len(schemaFlag) > 0 {
		return schemaFlag
	}
	return viper.GetStringSlice("settings.schemas")
}

// schemaRoutes reads settings.schema_map as a list of {src, dst} pairs.
// Viper lowercases map keys, so a mapping would lose mixed-case schema names.
func schemaRoutes() ([]structure.Route, error) {
	var routes []structure.Route
	if err := viper.UnmarshalKey("settings.schema_map", &routes); err != nil {
		return nil, fmt.Errorf("failed to parse settings.schema_map (want a list of {src, dst}): %w", err)
	}
	for i, r := range routes {
		if r.Src == "" || r.Dst == "" {
			return nil, fmt.Errorf("settings.schema_map[%d]: src and dst are required", i)
		}
	}
	return routes, nil
}

// newFilter builds the object filter from settings.
func newFilter() (*check.Filter, error) {
	return check.NewFilter(
		viper.GetStringSlice("settings.do_structures"),
		viper.GetStringSlice("settings.include_tables"),
		viper.GetStringSlice("settings.exclude_tables"),
	)
}

// endpoint is an opened side of a check.
type endpoint struct {
	source engine.Source
	driver string
	db     *sql.DB
}

func (e *endpoint) Close() {
	if e.db != nil {
		e.db.Close()
	}
}

// openEndpoint connects to the database configured for role, or loads
// snapshotPath when it is set.
func openEndpoint(ctx context.Context, role, snapshotPath string) (*endpoint, error) {
	if snapshotPath != "" {
		s, err := engine.NewSnapshotSource(role, snapshotPath)
		if err != nil {
			return nil, err
		}
		Logger.Info("using snapshot", zap.String("role", role), zap.String("path", snapshotPath))
		return &endpoint{source: s}, nil
	}

	config, err := GetEndpointConfig(role)
	if err != nil {
		return nil, err
	}
	d, err := dialect.GetDialect(config.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(config.Driver, config.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s db: %w", role, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s db: %w", role, err)
	}
	fmt.Printf("🔍 Connected to %s %s (%s)\n", role, config.Name, config.Driver)

	src := &engine.DBSource{
		Label:   role,
		DB:      db,
		Dialect: d,
		Logger:  Logger.With(zap.String("role", role)),
	}
	if role == roleDst {
		routes, err := schemaRoutes()
		if err != nil {
			db.Close()
			return nil, err
		}
		src.Router = structure.NewRouter(routes, d.GetSchemaName)
	}
	return &endpoint{source: src, driver: config.Driver, db: db}, nil
}

// resolveSchemas falls back to the schemas the source side offers.
func resolveSchemas(ctx context.Context, src engine.Source) ([]string, error) {
	if schemas := configuredSchemas(); len(schemas) > 0 {
		return schemas, nil
	}
	schemas, err := src.Schemas(ctx)
	if err != nil {
		return nil, err
	}
	if len(schemas) == 0 {
		return nil, fmt.Errorf("%w: set settings.schemas or --schemas", engine.ErrNoSchemas)
	}
	return schemas, nil
}
