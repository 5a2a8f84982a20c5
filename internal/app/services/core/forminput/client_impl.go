package forminput

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"time"

	"finalform-service/internal/app/contracts"
	"finalform-service/internal/pkg/constvars"
	"finalform-service/internal/pkg/exceptions"
	"finalform-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const resolutionEventsFile = "_resolution_events.jsonl"

// itemMapDocument is the on-disk shape of one (form_id, measure_id) mapping.
type itemMapDocument struct {
	FormID    string            `json:"form_id"`
	MeasureID string            `json:"measure_id"`
	ItemMap   map[string]string `json:"item_map"`
	Meta      itemMapMeta       `json:"meta"`
}

type itemMapMeta struct {
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// formInputClient stores field_id -> item_id maps on the local filesystem,
// one JSON file per (form_id, measure_id) pair, plus an append-only
// resolution event log for future mapping analytics.
type formInputClient struct {
	Log         *zap.Logger
	storagePath string
	eventsPath  string
}

func NewFormInputClient(storagePath string, logger *zap.Logger) (contracts.FormInputClient, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return nil, exceptions.ErrStorage(err, "cannot create form input storage: "+storagePath)
	}
	return &formInputClient{
		Log:         logger,
		storagePath: storagePath,
		eventsPath:  filepath.Join(storagePath, resolutionEventsFile),
	}, nil
}

func (c *formInputClient) mappingPath(formID, measureID string) string {
	return filepath.Join(c.storagePath, utils.SanitizeIdentifier(formID), measureID+".json")
}

func (c *formInputClient) GetItemMap(formID, measureID string) (map[string]string, error) {
	raw, err := os.ReadFile(c.mappingPath(formID, measureID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, exceptions.ErrStorage(err, "cannot read item map for "+formID+"/"+measureID)
	}

	document := &itemMapDocument{}
	if err := json.Unmarshal(raw, document); err != nil {
		return nil, exceptions.ErrStorage(err, "corrupt item map for "+formID+"/"+measureID)
	}
	return document.ItemMap, nil
}

func (c *formInputClient) SaveItemMap(formID, measureID string, itemMap map[string]string) error {
	path := c.mappingPath(formID, measureID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return exceptions.ErrStorage(err, "cannot create form directory for "+formID)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	createdAt := now
	if raw, err := os.ReadFile(path); err == nil {
		existing := &itemMapDocument{}
		if err := json.Unmarshal(raw, existing); err == nil && existing.Meta.CreatedAt != "" {
			createdAt = existing.Meta.CreatedAt
		}
	}

	document := &itemMapDocument{
		FormID:    formID,
		MeasureID: measureID,
		ItemMap:   itemMap,
		Meta: itemMapMeta{
			CreatedAt: createdAt,
			UpdatedAt: now,
		},
	}

	encoded, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return exceptions.ErrStorage(err, "cannot encode item map for "+formID+"/"+measureID)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return exceptions.ErrStorage(err, "cannot write item map for "+formID+"/"+measureID)
	}

	c.Log.Info("formInputClient.SaveItemMap saved",
		zap.String(constvars.LoggingFormIDKey, formID),
		zap.String(constvars.LoggingMeasureIDKey, measureID),
		zap.Int("field_count", len(itemMap)),
	)
	return nil
}

func (c *formInputClient) ListMappings(formID string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(c.storagePath, utils.SanitizeIdentifier(formID)))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, exceptions.ErrStorage(err, "cannot list mappings for "+formID)
	}

	measureIDs := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "_") || filepath.Ext(name) != ".json" {
			continue
		}
		measureIDs = append(measureIDs, strings.TrimSuffix(name, ".json"))
	}
	return measureIDs, nil
}

func (c *formInputClient) DeleteItemMap(formID, measureID string) (bool, error) {
	err := os.Remove(c.mappingPath(formID, measureID))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, exceptions.ErrStorage(err, "cannot delete item map for "+formID+"/"+measureID)
	}
	return true, nil
}

func (c *formInputClient) RecordResolutionEvent(event *contracts.ResolutionEvent) error {
	if event.Timestamp == "" {
		event.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	}

	encoded, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrStorage(err, "cannot encode resolution event")
	}

	file, err := os.OpenFile(c.eventsPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return exceptions.ErrStorage(err, "cannot open resolution event log")
	}
	defer file.Close()

	if _, err := file.Write(append(encoded, '\n')); err != nil {
		return exceptions.ErrStorage(err, "cannot append resolution event")
	}
	return nil
}

func (c *formInputClient) GetResolutionEvents(formID, measureID string) ([]contracts.ResolutionEvent, error) {
	file, err := os.Open(c.eventsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []contracts.ResolutionEvent{}, nil
		}
		return nil, exceptions.ErrStorage(err, "cannot open resolution event log")
	}
	defer file.Close()

	events := make([]contracts.ResolutionEvent, 0)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		event := contracts.ResolutionEvent{}
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			return nil, exceptions.ErrStorage(err, "corrupt resolution event log")
		}
		if formID != "" && event.FormID != formID {
			continue
		}
		if measureID != "" && event.MeasureID != measureID {
			continue
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, exceptions.ErrStorage(err, "cannot read resolution event log")
	}
	return events, nil
}
