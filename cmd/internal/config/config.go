package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

const (
	defaultSSMPrefix = "/rfqengine/prod/"
	defaultAWSRegion = "us-east-2"
)

type Config struct {
	Env                 string
	Port                int
	DBDriver            string
	DBDSN               string
	RequestNumberPrefix string
	JWTSecret           string
	RedisAddr           string
	LockTTL             time.Duration
	LockWait            time.Duration
	LogLevel            log.Lvl
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads the configuration from the environment. In production the
// environment is first populated from SSM Parameter Store, elsewhere from .env.
func Load(ctx context.Context) (*Config, error) {
	if os.Getenv("GO_ENV") == "production" {
		if err := loadProdEnv(ctx); err != nil {
			return nil, err
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return FromEnv()
}

// FromEnv parses the already populated process environment.
func FromEnv() (*Config, error) {
	port, err := intEnv("PORT", 7070)
	if err != nil {
		return nil, err
	}

	ttl, err := intEnv("LOCK_TTL_SECONDS", 30)
	if err != nil {
		return nil, err
	}

	wait, err := intEnv("LOCK_WAIT_SECONDS", 5)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:                 stringEnv("GO_ENV", "development"),
		Port:                port,
		DBDriver:            strings.ToLower(stringEnv("DB_DRIVER", "sqlite")),
		DBDSN:               stringEnv("DB_DSN", "database.db"),
		RequestNumberPrefix: stringEnv("REQUEST_NUMBER_PREFIX", "SOMVI"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		LockTTL:             time.Duration(ttl) * time.Second,
		LockWait:            time.Duration(wait) * time.Second,
		LogLevel:            parseLevel(os.Getenv("LOG_LEVEL")),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}

func loadProdEnv(ctx context.Context) error {
	prefix := stringEnv("SSM_PREFIX", defaultSSMPrefix)
	region := stringEnv("AWS_REGION", defaultAWSRegion)

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return err
	}

	client := ssm.NewFromConfig(cfg)
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})

	count := 0
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return err
		}

		for _, param := range out.Parameters {
			key := strings.TrimPrefix(aws.ToString(param.Name), prefix)
			if err = os.Setenv(key, aws.ToString(param.Value)); err != nil {
				return err
			}
			count++
		}
	}

	log.Debugf("loaded %d prod environment variables", count)
	return nil
}

func stringEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, errors.New(key + " must be a positive integer")
	}
	return v, nil
}

func parseLevel(level string) log.Lvl {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
