package sequence

import (
	"encoding/hex"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type UUIDOptions struct {
	Version string `cfg:"version" def:"v4" validate:"omitempty,oneof=v1 v4 v6 v7"`

	// Compact 去掉中划线，UNIQUEID 列是 CHAR(36)，默认保留
	Compact bool `cfg:"compact"`
}

// UUIDGenerator UNIQUEID 列的自动值
type UUIDGenerator struct {
	version string
	compact bool
}

func NewUUIDGeneratorWithOptions(options *UUIDOptions) (*UUIDGenerator, error) {
	g := &UUIDGenerator{version: "v4"}
	if options == nil {
		return g, nil
	}
	switch options.Version {
	case "":
	case "v1", "v4", "v6", "v7":
		g.version = options.Version
	default:
		return nil, errors.Errorf("unsupported uuid version %q", options.Version)
	}
	g.compact = options.Compact
	return g, nil
}

func (g *UUIDGenerator) Generate() (string, error) {
	var u uuid.UUID
	var err error
	switch g.version {
	case "v1":
		u, err = uuid.NewUUID()
	case "v6":
		u, err = uuid.NewV6()
	case "v7":
		u, err = uuid.NewV7()
	default:
		u, err = uuid.NewRandom()
	}
	if err != nil {
		return "", errors.Wrapf(err, "generate uuid %s failed", g.version)
	}

	if g.compact {
		return hex.EncodeToString(u[:]), nil
	}
	return u.String(), nil
}
