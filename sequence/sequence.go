package sequence

import (
	"context"

	"github.com/hatlonely/dbx/ref"
	"github.com/pkg/errors"
)

func init() {
	ref.MustRegisterT[*TableGenerator](NewTableGeneratorWithOptions)
	ref.MustRegisterT[*RedisGenerator](NewRedisGeneratorWithOptions)
	ref.MustRegisterT[*BoltGenerator](NewBoltGeneratorWithOptions)
	ref.MustRegisterT[*SnowflakeGenerator](NewSnowflakeGeneratorWithOptions)
	ref.MustRegisterT[*ObservableGenerator](NewObservableGeneratorWithOptions)
}

// Generator 按名字生成递增的序列值
type Generator interface {
	// Next 返回序列 name 的下一个值，序列不存在或者当前值小于 minValue 时从 minValue 开始
	Next(ctx context.Context, name string, minValue int64) (int64, error)
}

// NewGeneratorWithOptions 根据配置创建生成器，Namespace 为空时使用 sequence 包
func NewGeneratorWithOptions(options *ref.TypeOptions) (Generator, error) {
	if options == nil {
		return nil, errors.New("options is nil")
	}

	opts := *options
	if opts.Namespace == "" {
		opts.Namespace = "github.com/hatlonely/dbx/sequence"
	}
	generator, err := ref.NewWithTypeOptions[Generator](&opts)
	if err != nil {
		return nil, errors.WithMessage(err, "ref.NewWithTypeOptions failed")
	}
	return generator, nil
}
