// Package layoutfile reads and writes dashboard layouts as YAML or JSON
// documents.
//
//	dashboards:
//	  - dashboardId: default
//	    widgets: [WidgetContainer_container1, Chart]
//	    childWidgetsConfig:
//	      - parentWidgetKey: WidgetContainer_container1
//	        widgetKey: Table
package layoutfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/manav03panchal/dashkit/internal/errors"
	"github.com/manav03panchal/dashkit/internal/logging"
	"github.com/manav03panchal/dashkit/internal/model"
	"github.com/manav03panchal/dashkit/internal/validate"
)

const (
	// AppName is the application name used for config directories.
	AppName = "dashkit"
	// FileName is the default layout file name.
	FileName = "dashboards.yaml"
)

// Format is a layout document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Document is the on-disk layout document.
type Document struct {
	Dashboards []model.DashboardConfig `yaml:"dashboards" json:"dashboards"`
}

// DefaultPath returns the default layout file path following XDG spec.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, FileName)
}

// FormatForPath picks the encoding from the file extension. Anything other
// than .json is YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Decode reads a layout document and validates it. Missing widget lists are
// normalized to empty ones.
func Decode(r io.Reader, format Format) ([]model.DashboardConfig, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, systemError("read", "failed to read layout document", err)
	}

	var doc Document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	}
	if err != nil {
		return nil, errors.NewUserError("Layout document is malformed: "+err.Error(),
			"Run 'dashkit validate' to check the layout file").WithCause(errors.ErrInvalidLayoutFile)
	}

	configs := make([]model.DashboardConfig, len(doc.Dashboards))
	for i, cfg := range doc.Dashboards {
		configs[i] = cfg.Clone()
	}

	if err := validate.Configs(configs); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidLayoutFile, err)
	}
	return configs, nil
}

// Encode writes configs as a layout document.
func Encode(w io.Writer, configs []model.DashboardConfig, format Format) error {
	doc := Document{Dashboards: model.CloneAll(configs)}
	if doc.Dashboards == nil {
		doc.Dashboards = []model.DashboardConfig{}
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
}

// Load reads and validates the layout file at path.
func Load(path string) ([]model.DashboardConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewUserErrorWithField("layouts", path,
				"Layout file not found", "").WithCause(errors.ErrLayoutFileNotFound)
		}
		return nil, systemError("load", "failed to open layout file", err)
	}
	defer f.Close()

	configs, err := Decode(f, FormatForPath(path))
	if err != nil {
		return nil, errors.WithContext(err, "load "+path)
	}

	logging.DebugLog("layout file loaded", logging.KeyPath, path, logging.KeyCount, len(configs))
	return configs, nil
}

// Save writes configs to path, replacing any existing file. The parent
// directory is created when missing and the file is locked while it is
// written.
func Save(path string, configs []model.DashboardConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return systemError("save", "failed to create layout directory", err)
	}

	lock := NewFileLock(path)
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer lock.Release()

	var buf bytes.Buffer
	if err := Encode(&buf, configs, FormatForPath(path)); err != nil {
		return systemError("save", "failed to encode layouts", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return systemError("save", "failed to write layout file", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return systemError("save", "failed to write layout file", err)
	}
	if err := tmp.Close(); err != nil {
		return systemError("save", "failed to write layout file", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return systemError("save", "failed to replace layout file", err)
	}

	logging.LogOperation("layouts_saved", logging.KeyPath, path, logging.KeyCount, len(configs))
	return nil
}

// systemError reports an I/O failure with the caller's stack attached.
func systemError(op, message string, err error) error {
	return errors.WithStack(errors.NewSystemErrorWithOp(op, message, err))
}
