package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	VariantMesh  = "mesh"
	VariantLocal = "local"

	SlotFile     = "file"
	SlotRedis    = "redis"
	SlotPostgres = "postgres"
)

type Config struct {
	Env         string            `yaml:"env" env-default:"local"`
	Variant     string            `yaml:"variant" env:"ARCHIVE_VARIANT" env-default:"mesh"`
	HTTP        HTTPConfig        `yaml:"http"`
	Redis       RedisConf         `yaml:"redis"`
	Mesh        MeshConfig        `yaml:"mesh"`
	Local       LocalConfig       `yaml:"local"`
	FileStorage FileStorageConfig `yaml:"file_storage"`
	AI          AIConfig          `yaml:"ai"`
}

type HTTPConfig struct {
	Host    string        `yaml:"host"`
	Port    string        `yaml:"port" env-default:"8080"`
	Timeout time.Duration `yaml:"timeout" env-default:"10s"`
}

type RedisConf struct {
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `yaml:"redispassword" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db"`
}

// MeshConfig общее пространство для варианта mesh
type MeshConfig struct {
	Namespace string        `yaml:"namespace" env-default:"xr-archive-global-v1"`
	SeedDelay time.Duration `yaml:"seed_delay" env-default:"2s"`
}

// LocalConfig слот для локального варианта
type LocalConfig struct {
	Slot string `yaml:"slot" env-default:"file"` // file, redis или postgres
	Key  string `yaml:"key" env-default:"xr-archive-v1"`
	Path string `yaml:"path" env-default:"./data/archive.json"`
	DSN  string `yaml:"dsn" env:"ARCHIVE_DSN"`
}

type FileStorageConfig struct {
	BaseDir string `yaml:"base_dir" env-default:"./uploads"`
	BaseURL string `yaml:"base_url" env-default:"http://localhost:8080/uploads"`
	MaxSize int64  `yaml:"max_size" env-default:"10485760"`
}

type AIConfig struct {
	APIKey   string        `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model    string        `yaml:"model" env-default:"gemini-3-flash-preview"`
	Timeout  time.Duration `yaml:"timeout" env-default:"30s"`
	CacheTTL time.Duration `yaml:"cache_ttl" env-default:"10m"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
