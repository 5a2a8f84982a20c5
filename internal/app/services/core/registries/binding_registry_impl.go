package registries

import (
	"errors"
	"os"
	"path/filepath"
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

// bindingRegistry mirrors the measure registry layout for binding specs:
// <registry_path>/bindings/<binding_id>/<version>.json.
type bindingRegistry struct {
	Log          *zap.Logger
	bindingsPath string
	schema       *jsonschema.Schema
	validate     *validator.Validate

	mu    sync.RWMutex
	cache map[string]*models.FormBindingSpec
}

func NewBindingRegistry(registryPath, schemaPath string, logger *zap.Logger) (contracts.BindingRegistry, error) {
	registry := &bindingRegistry{
		Log:          logger,
		bindingsPath: filepath.Join(registryPath, "bindings"),
		validate:     validator.New(),
		cache:        make(map[string]*models.FormBindingSpec),
	}

	if schemaPath != "" {
		schema, err := jsonschema.Compile(schemaPath)
		if err != nil {
			return nil, exceptions.ErrStorage(err, "cannot compile form binding spec schema: "+schemaPath)
		}
		registry.schema = schema
	}

	return registry, nil
}

func (r *bindingRegistry) Get(bindingID, version string) (*models.FormBindingSpec, error) {
	cacheKey := bindingID + "@" + version

	r.mu.RLock()
	if spec, ok := r.cache[cacheKey]; ok {
		r.mu.RUnlock()
		return spec, nil
	}
	r.mu.RUnlock()

	specPath := filepath.Join(r.bindingsPath, bindingID, utils.VersionToFilename(version))
	raw, err := os.ReadFile(specPath)
	if err != nil {
		r.Log.Error("bindingRegistry.Get spec file not found",
			zap.String(constvars.LoggingBindingIDKey, bindingID),
			zap.String(constvars.LoggingVersionKey, version),
			zap.String(constvars.LoggingPathKey, specPath),
		)
		return nil, exceptions.ErrBindingNotFound(bindingID, version, specPath)
	}

	if r.schema != nil {
		var document any
		if err := json.Unmarshal(raw, &document); err != nil {
			return nil, exceptions.ErrBindingValidation(err, bindingID, version)
		}
		if err := r.schema.Validate(document); err != nil {
			r.Log.Error("bindingRegistry.Get schema validation failed",
				zap.String(constvars.LoggingBindingIDKey, bindingID),
				zap.String(constvars.LoggingVersionKey, version),
				zap.Error(err),
			)
			return nil, exceptions.ErrBindingValidation(err, bindingID, version)
		}
	}

	spec := &models.FormBindingSpec{}
	if err := json.Unmarshal(raw, spec); err != nil {
		return nil, exceptions.ErrBindingValidation(err, bindingID, version)
	}
	if err := r.validate.Struct(spec); err != nil {
		return nil, exceptions.ErrBindingValidation(err, bindingID, version)
	}

	r.mu.Lock()
	r.cache[cacheKey] = spec
	r.mu.Unlock()

	r.Log.Debug("bindingRegistry.Get loaded spec",
		zap.String(constvars.LoggingBindingIDKey, bindingID),
		zap.String(constvars.LoggingVersionKey, version),
	)
	return spec, nil
}

func (r *bindingRegistry) GetLatest(bindingID string) (*models.FormBindingSpec, error) {
	versions := r.ListVersions(bindingID)
	if len(versions) == 0 {
		return nil, exceptions.ErrBindingNoVersions(bindingID)
	}
	return r.Get(bindingID, versions[len(versions)-1])
}

func (r *bindingRegistry) ListBindings() []string {
	return listDirectories(r.bindingsPath)
}

func (r *bindingRegistry) ListVersions(bindingID string) []string {
	return listVersionFiles(filepath.Join(r.bindingsPath, bindingID))
}

func errReferences(problems []string) error {
	return errors.New(strings.Join(problems, "; "))
}
