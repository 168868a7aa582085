package model

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/poppolopoppo/vsexport/internal/base"
	"gopkg.in/yaml.v3"
)

/***************************************
 * Project file formats
 ***************************************/

type ProjectFormat byte

const (
	PROJECTFORMAT_JSON ProjectFormat = iota
	PROJECTFORMAT_TOML
	PROJECTFORMAT_YAML
)

func GetProjectFormats() []ProjectFormat {
	return []ProjectFormat{
		PROJECTFORMAT_JSON,
		PROJECTFORMAT_TOML,
		PROJECTFORMAT_YAML,
	}
}
func (x ProjectFormat) String() string {
	switch x {
	case PROJECTFORMAT_JSON:
		return "JSON"
	case PROJECTFORMAT_TOML:
		return "TOML"
	case PROJECTFORMAT_YAML:
		return "YAML"
	default:
		base.UnexpectedValue(x)
		return ""
	}
}
func (x *ProjectFormat) Set(in string) error {
	for _, it := range GetProjectFormats() {
		if strings.EqualFold(in, it.String()) || strings.EqualFold(in, it.Extension()) {
			*x = it
			return nil
		}
	}
	return base.MakeUnexpectedValueError(x, in)
}
func (x ProjectFormat) Extension() string {
	switch x {
	case PROJECTFORMAT_JSON:
		return ".json"
	case PROJECTFORMAT_TOML:
		return ".toml"
	case PROJECTFORMAT_YAML:
		return ".yaml"
	default:
		base.UnexpectedValue(x)
		return ""
	}
}

func ProjectFormatFromFilename(filename string) (ProjectFormat, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return PROJECTFORMAT_JSON, nil
	case ".toml":
		return PROJECTFORMAT_TOML, nil
	case ".yaml", ".yml":
		return PROJECTFORMAT_YAML, nil
	default:
		return PROJECTFORMAT_JSON, fmt.Errorf("unsupported project file extension: %q", filename)
	}
}

func DecodeProject(content []byte, format ProjectFormat) (*Project, error) {
	project := &Project{}

	var err error
	switch format {
	case PROJECTFORMAT_JSON:
		err = base.JsonDeserialize(project, bytes.NewReader(content))
	case PROJECTFORMAT_TOML:
		err = toml.Unmarshal(content, project)
	case PROJECTFORMAT_YAML:
		err = yaml.Unmarshal(content, project)
	default:
		err = base.MakeUnexpectedValueError(format, format)
	}
	if err != nil {
		return nil, err
	}

	project.PostLoad()
	return project, nil
}

func EncodeProject(project *Project, format ProjectFormat) ([]byte, error) {
	switch format {
	case PROJECTFORMAT_JSON:
		buf := bytes.Buffer{}
		if err := base.JsonSerialize(project, &buf, base.OptionJsonPrettyPrint(true)); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case PROJECTFORMAT_TOML:
		buf := bytes.Buffer{}
		encoder := toml.NewEncoder(&buf)
		encoder.SetIndentTables(true)
		if err := encoder.Encode(project); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case PROJECTFORMAT_YAML:
		buf := bytes.Buffer{}
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(project); err != nil {
			return nil, err
		}
		if err := encoder.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, base.MakeUnexpectedValueError(format, format)
	}
}

func LoadProject(filename string) (*Project, error) {
	format, err := ProjectFormatFromFilename(filename)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	project, err := DecodeProject(content, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %v project %q: %w", format, filename, err)
	}

	if project.Folder, err = filepath.Abs(filepath.Dir(filename)); err != nil {
		return nil, err
	}

	if err = project.Validate(); err != nil {
		return nil, err
	}

	base.LogVerbose(LogModel, "loaded %v project %q from %q", format, project.Name, filename)
	return project, nil
}

func SaveProject(filename string, project *Project) error {
	format, err := ProjectFormatFromFilename(filename)
	if err != nil {
		return err
	}

	content, err := EncodeProject(project, format)
	if err != nil {
		return fmt.Errorf("failed to encode %v project %q: %w", format, filename, err)
	}

	if err = os.WriteFile(filename, content, 0o644); err != nil {
		return err
	}

	base.LogVerbose(LogModel, "saved %v project %q to %q", format, project.Name, filename)
	return nil
}
