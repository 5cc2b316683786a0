package cfg

import (
	"os"

	"github.com/pkg/errors"
)

// LoadFile 读取配置文件并转换到 object，格式由扩展名决定
func LoadFile(path string, object any) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read config file %s failed", path)
	}
	return errors.WithMessagef(Load(data, format, object), "load config file %s failed", path)
}

// Load 解码配置数据，转换到 object，再设置默认值并校验
func Load(data []byte, format Format, object any) error {
	node, err := Decode(data, format)
	if err != nil {
		return err
	}
	return node.ConvertTo(object)
}

// LoadFileNode 读取配置文件，返回 Node，用于只取其中一部分的场景
func LoadFileNode(path string) (*Node, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config file %s failed", path)
	}
	return Decode(data, format)
}
