package conf

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
)

// 配置加载（服务、存储、演示账户等）

type Db struct {
	DbName   string `yaml:"dbname"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	FileName   string `yaml:"file-name"`
	TimeFormat string `yaml:"time-format"`
	MaxSize    int    `yaml:"max-size"`
	MaxBackups int    `yaml:"max-backups"`
	MaxAge     int    `yaml:"max-age"`
	Compress   bool   `yaml:"compress"`
	LocalTime  bool   `yaml:"local-time"`
	Console    bool   `yaml:"console"`
}

// RedisConfig is used to configure redis
type RedisConfig struct {
	Addr         string `yaml:"address"`
	Password     string `yaml:"password"`
	Db           int    `yaml:"db"`
	PoolSize     int    `yaml:"pool-size"`
	MinIdleConns int    `yaml:"min-idle-conns"`
	IdleTimeout  int    `yaml:"idle-timeout"`
}

type JwtConfig struct {
	Secret                  string `yaml:"secret"`
	JwtTtl                  int64  `yaml:"ttl"`              // token 有效期（秒）
	JwtBlacklistGracePeriod int64  `yaml:"blacklistperiod" ` // 黑名单宽限时间（秒）
}

// 会话槽存储配置。backend 可选 memory / file / redis / mysql
type StoreConfig struct {
	Backend  string `yaml:"backend"`
	FilePath string `yaml:"file-path"`
	SealKey  string `yaml:"seal-key"` // 非空时对file存储的内容加密
}

// 演示账户的初始持仓
type DemoAsset struct {
	Symbol string  `yaml:"symbol"`
	Name   string  `yaml:"name"`
	Amount float64 `yaml:"amount"`
	Value  float64 `yaml:"value"`
}

// 演示账户配置。login在没有存档时合成这个账户
type DemoConfig struct {
	Username      string      `yaml:"username"`
	Balance       float64     `yaml:"balance"`
	RegisterBonus float64     `yaml:"register-bonus"` // 注册赠送的USDT
	Watchlist     []string    `yaml:"watchlist"`
	Assets        []DemoAsset `yaml:"assets"`
}

// 模拟交易机器人配置
type BotConfig struct {
	Enabled    bool     `yaml:"enabled"`
	Symbols    []string `yaml:"symbols"`
	Interval   int      `yaml:"interval"`    // 采样周期（秒）
	TradeUSDT  float64  `yaml:"trade-usdt"`  // 每次买入的USDT金额
	FastPeriod int      `yaml:"fast-period"` // SMA快线周期
	SlowPeriod int      `yaml:"slow-period"` // SMA慢线周期
}

type TradeConfig struct {
	// 模拟网络延迟（毫秒），包在整个交易操作外面，0表示不延迟
	SimulatedLatency int `yaml:"simulated-latency"`
}

type Config struct {
	AppName      string `yaml:"app_name"`
	Listen       string `yaml:"listen"`
	Mode         string `yaml:"mode"`
	Language     string `yaml:"language"`
	MaxPingCount int    `yaml:"max-ping-count"`

	Db    `yaml:"database"`
	Log   LogConfig   `yaml:"log"`
	Jwt   JwtConfig   `yaml:"jwt"`
	Redis RedisConfig `yaml:"redis"`
	Store StoreConfig `yaml:"store"`
	Demo  DemoConfig  `yaml:"demo"`
	Bot   BotConfig   `yaml:"bot"`
	Trade TradeConfig `yaml:"trade"`
}

var AppConfig Config

func LoadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("Read config file error %w", err)
	}
	if err := yaml.Unmarshal(data, &AppConfig); err != nil {
		return fmt.Errorf("Unmarshal config yaml error: %w", err)
	}
	AppConfig.Demo.ApplyDefaults()
	return nil
}

// ApplyDefaults 没有配置演示账户时的兜底默认值
func (d *DemoConfig) ApplyDefaults() {
	if d.Username == "" {
		d.Username = "demo_trader"
	}
	if d.Balance == 0 {
		d.Balance = 10000
	}
	if d.RegisterBonus == 0 {
		d.RegisterBonus = 10000
	}
	if len(d.Watchlist) == 0 {
		d.Watchlist = []string{"btc", "eth"}
	}
}
