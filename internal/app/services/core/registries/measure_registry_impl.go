package registries

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"finalform-service/internal/app/contracts"
	"finalform-service/internal/app/models"
	"finalform-service/internal/pkg/constvars"
	"finalform-service/internal/pkg/exceptions"
	"finalform-service/internal/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"
)

// measureRegistry loads measure specs from
// <registry_path>/measures/<measure_id>/<version>.json where version dots are
// replaced with dashes (1.0.0 -> 1-0-0.json). Loaded specs are cached for the
// process lifetime.
type measureRegistry struct {
	Log          *zap.Logger
	measuresPath string
	schema       *jsonschema.Schema
	validate     *validator.Validate

	mu    sync.RWMutex
	cache map[string]*models.MeasureSpec
}

func NewMeasureRegistry(registryPath, schemaPath string, logger *zap.Logger) (contracts.MeasureRegistry, error) {
	registry := &measureRegistry{
		Log:          logger,
		measuresPath: filepath.Join(registryPath, "measures"),
		validate:     validator.New(),
		cache:        make(map[string]*models.MeasureSpec),
	}

	if schemaPath != "" {
		schema, err := jsonschema.Compile(schemaPath)
		if err != nil {
			return nil, exceptions.ErrStorage(err, "cannot compile measure spec schema: "+schemaPath)
		}
		registry.schema = schema
	}

	return registry, nil
}

func (r *measureRegistry) Get(measureID, version string) (*models.MeasureSpec, error) {
	cacheKey := measureID + "@" + version

	r.mu.RLock()
	if spec, ok := r.cache[cacheKey]; ok {
		r.mu.RUnlock()
		return spec, nil
	}
	r.mu.RUnlock()

	specPath := filepath.Join(r.measuresPath, measureID, utils.VersionToFilename(version))
	raw, err := os.ReadFile(specPath)
	if err != nil {
		r.Log.Error("measureRegistry.Get spec file not found",
			zap.String(constvars.LoggingMeasureIDKey, measureID),
			zap.String(constvars.LoggingVersionKey, version),
			zap.String(constvars.LoggingPathKey, specPath),
		)
		return nil, exceptions.ErrMeasureNotFound(measureID, version, specPath)
	}

	if r.schema != nil {
		var document any
		if err := json.Unmarshal(raw, &document); err != nil {
			return nil, exceptions.ErrMeasureValidation(err, measureID, version)
		}
		if err := r.schema.Validate(document); err != nil {
			r.Log.Error("measureRegistry.Get schema validation failed",
				zap.String(constvars.LoggingMeasureIDKey, measureID),
				zap.String(constvars.LoggingVersionKey, version),
				zap.Error(err),
			)
			return nil, exceptions.ErrMeasureValidation(err, measureID, version)
		}
	}

	spec := &models.MeasureSpec{}
	if err := json.Unmarshal(raw, spec); err != nil {
		return nil, exceptions.ErrMeasureValidation(err, measureID, version)
	}

	// Scales without an explicit policy fail hard on excess missing items.
	for idx := range spec.Scales {
		if spec.Scales[idx].MissingStrategy == "" {
			spec.Scales[idx].MissingStrategy = constvars.MissingStrategyFail
		}
	}

	if err := r.validate.Struct(spec); err != nil {
		return nil, exceptions.ErrMeasureValidation(err, measureID, version)
	}
	if problems := spec.CheckScaleReferences(); len(problems) > 0 {
		return nil, exceptions.ErrMeasureValidation(errReferences(problems), measureID, version)
	}

	r.mu.Lock()
	r.cache[cacheKey] = spec
	r.mu.Unlock()

	r.Log.Debug("measureRegistry.Get loaded spec",
		zap.String(constvars.LoggingMeasureIDKey, measureID),
		zap.String(constvars.LoggingVersionKey, version),
	)
	return spec, nil
}

func (r *measureRegistry) GetLatest(measureID string) (*models.MeasureSpec, error) {
	versions := r.ListVersions(measureID)
	if len(versions) == 0 {
		return nil, exceptions.ErrMeasureNoVersions(measureID)
	}
	return r.Get(measureID, versions[len(versions)-1])
}

func (r *measureRegistry) ListMeasures() []string {
	return listDirectories(r.measuresPath)
}

func (r *measureRegistry) ListVersions(measureID string) []string {
	return listVersionFiles(filepath.Join(r.measuresPath, measureID))
}

// listDirectories returns the sorted names of subdirectories, or an empty
// slice when the path does not exist.
func listDirectories(path string) []string {
	entries, err := os.ReadDir(path)
	if err != nil {
		return []string{}
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}

// listVersionFiles maps spec filenames back to version strings, sorted.
// String sort matches semver order while version components stay single-digit.
func listVersionFiles(path string) []string {
	entries, err := os.ReadDir(path)
	if err != nil {
		return []string{}
	}
	versions := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), ".json")
		versions = append(versions, utils.FilenameToVersion(stem))
	}
	sort.Strings(versions)
	return versions
}
