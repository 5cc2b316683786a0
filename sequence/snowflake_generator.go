package sequence

import (
	"context"
	"net"
	"sync/atomic"
	"time"
)

type SnowflakeOptions struct {
	// MachineID 为空时从本机 IPv4 地址的最后两个字节获取
	MachineID *int64 `cfg:"machineID"`

	// Epoch 起始时间，默认 2020-01-01 00:00:00 UTC
	Epoch time.Time `cfg:"epoch"`
}

// SnowflakeGenerator 不依赖外部存储的全局唯一序列，所有序列名共享同一个计数器
//
// 64 位结构：1 位符号位 + 41 位时间戳 + 10 位机器 ID + 12 位序列号
type SnowflakeGenerator struct {
	state     int64 // 高 52 位时间戳 + 低 12 位序列号
	machineID int64
	epoch     int64
}

const (
	sequenceBits  = 12
	machineIDBits = 10

	maxSequence  = (1 << sequenceBits) - 1
	maxMachineID = (1 << machineIDBits) - 1

	machineIDShift = sequenceBits
	timestampShift = sequenceBits + machineIDBits
)

var defaultEpoch = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func NewSnowflakeGeneratorWithOptions(options *SnowflakeOptions) (*SnowflakeGenerator, error) {
	var machineID int64
	if options != nil && options.MachineID != nil {
		machineID = *options.MachineID
	} else {
		machineID = machineIDFromIP()
	}

	epoch := defaultEpoch
	if options != nil && !options.Epoch.IsZero() {
		epoch = options.Epoch
	}

	g := &SnowflakeGenerator{
		machineID: machineID & maxMachineID,
		epoch:     epoch.UnixMilli(),
	}
	g.state = (time.Now().UnixMilli() - g.epoch) << sequenceBits
	return g, nil
}

func machineIDFromIP() int64 {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return 0
	}
	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ipv4 := ipnet.IP.To4(); ipv4 != nil {
				return int64(ipv4[2])<<8 | int64(ipv4[3])
			}
		}
	}
	return 0
}

// Next 忽略 name，生成的值远大于常见的 minValue
func (g *SnowflakeGenerator) Next(ctx context.Context, name string, minValue int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if id := g.Generate(); id >= minValue {
		return id, nil
	}
	return minValue, nil
}

func (g *SnowflakeGenerator) Generate() int64 {
	for {
		oldState := atomic.LoadInt64(&g.state)
		oldTimestamp := oldState >> sequenceBits
		oldSequence := oldState & maxSequence

		now := time.Now().UnixMilli() - g.epoch

		var timestamp, seq int64
		if now <= oldTimestamp {
			// 同一毫秒或者时钟回拨，沿用旧时间戳递增序列号
			timestamp = oldTimestamp
			seq = (oldSequence + 1) & maxSequence
			if seq == 0 {
				for now <= oldTimestamp {
					now = time.Now().UnixMilli() - g.epoch
				}
				timestamp = now
			}
		} else {
			timestamp = now
		}

		if atomic.CompareAndSwapInt64(&g.state, oldState, timestamp<<sequenceBits|seq) {
			return timestamp<<timestampShift | g.machineID<<machineIDShift | seq
		}
	}
}
