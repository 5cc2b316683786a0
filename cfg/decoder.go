package cfg

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// Format 配置文件格式
type Format string

const (
	FormatYaml Format = "yaml"
	FormatJson Format = "json"
	FormatToml Format = "toml"
	FormatIni  Format = "ini"
)

// FormatOf 根据文件扩展名推断格式
func FormatOf(path string) (Format, error) {
	idx := strings.LastIndex(path, ".")
	if idx < 0 {
		return "", errors.Errorf("cannot detect config format of %s", path)
	}
	switch strings.ToLower(path[idx+1:]) {
	case "yaml", "yml":
		return FormatYaml, nil
	case "json":
		return FormatJson, nil
	case "toml":
		return FormatToml, nil
	case "ini":
		return FormatIni, nil
	}
	return "", errors.Errorf("unsupported config format %q", path[idx+1:])
}

// Decode 将配置数据解码为 Node
func Decode(data []byte, format Format) (*Node, error) {
	var result any
	var err error

	switch format {
	case FormatYaml:
		err = yaml.Unmarshal(data, &result)
	case FormatJson:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		err = decoder.Decode(&result)
	case FormatToml:
		var m map[string]any
		err = toml.Unmarshal(data, &m)
		result = m
	case FormatIni:
		result, err = decodeIni(data)
	default:
		return nil, errors.Errorf("unsupported config format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", format)
	}

	return NewNode(result), nil
}

// decodeIni 值保持为字符串，转换时再按目标类型解析；section 名中的点号表示嵌套
func decodeIni(data []byte) (map[string]any, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		AllowBooleanKeys:         true,
		SpaceBeforeInlineComment: true,
	}, data)
	if err != nil {
		return nil, err
	}

	result := map[string]any{}
	for _, section := range file.Sections() {
		m := result
		if section.Name() != ini.DefaultSection {
			for _, part := range strings.Split(section.Name(), ".") {
				sub, ok := m[part].(map[string]any)
				if !ok {
					sub = map[string]any{}
					m[part] = sub
				}
				m = sub
			}
		}
		for _, key := range section.Keys() {
			m[key.Name()] = key.String()
		}
	}
	return result, nil
}
