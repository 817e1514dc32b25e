package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/poe2-chicken-bot/internal/domain"
	"github.com/bnema/poe2-chicken-bot/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName          = "config"
	configType          = "toml"
	resourcesPathKey    = "resources.path"
	resourcesFileMode   = 0o600
	resourcesDirMode    = 0o700
	resourcesConfigDir  = ".poe2-chicken-bot"
	resourcesConfigFile = "resources.toml"
	tempFilePattern     = ".resources-*.toml.tmp"
)

// Repository stores the per-resource pointer chains (base, offsets,
// default threshold) in a TOML file. When the file is absent the built-in
// chains from domain.DefaultSpecs are served, so a fresh install works
// without any configuration.
type Repository struct {
	resourcesPath string
	mu            *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.ResourceRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, resourcesConfigDir, resourcesConfigFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, resourcesConfigDir))
	cfg.SetDefault(resourcesPathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	resourcesPath := cfg.GetString(resourcesPathKey)
	if resourcesPath == "" {
		return nil, errors.New("resources path is empty")
	}
	resourcesPath, err = normalizeResourcesPath(resourcesPath)
	if err != nil {
		return nil, err
	}

	return &Repository{resourcesPath: resourcesPath, mu: lockForPath(resourcesPath)}, nil
}

func (r *Repository) Get(ctx context.Context, key domain.ResourceKey) (domain.ResourceSpec, error) {
	specs, err := r.List(ctx)
	if err != nil {
		return domain.ResourceSpec{}, err
	}

	for _, spec := range specs {
		if spec.Key == key {
			return spec, nil
		}
	}

	return domain.ResourceSpec{}, fmt.Errorf("%w: %q", domain.ErrUnknownResource, key)
}

func (r *Repository) List(ctx context.Context) ([]domain.ResourceSpec, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}
	file.applyDefaults()

	if len(file.Resources) == 0 {
		return domain.DefaultSpecs(), nil
	}

	specs := make([]domain.ResourceSpec, 0, len(file.Resources))
	for _, entry := range file.Resources {
		spec, err := fromSchema(entry)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}

	return specs, nil
}

func (r *Repository) Save(ctx context.Context, spec domain.ResourceSpec) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := spec.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	file.applyDefaults()

	// A first write materializes the built-in chains so the file stays a
	// complete picture of what the bot will use.
	if len(file.Resources) == 0 {
		for _, builtin := range domain.DefaultSpecs() {
			file.Resources = append(file.Resources, toSchema(builtin))
		}
	}

	encoded := toSchema(spec)
	updated := false
	for i := range file.Resources {
		if file.Resources[i].Key == encoded.Key {
			file.Resources[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Resources = append(file.Resources, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.resourcesPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read resources file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode resources file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.resourcesPath), resourcesDirMode); err != nil {
		return fmt.Errorf("create resources directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode resources file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.resourcesPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp resources file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp resources file: %w", err)
	}

	if err := tempFile.Chmod(resourcesFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp resources file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp resources file: %w", err)
	}

	if err := os.Rename(tempName, r.resourcesPath); err != nil {
		return fmt.Errorf("replace resources file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.resourcesPath, resourcesFileMode); err != nil {
		return fmt.Errorf("chmod resources file: %w", err)
	}

	return nil
}

func normalizeResourcesPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve resources path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
