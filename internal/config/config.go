package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config 应用配置
type Config struct {
	Port  string
	Debug bool

	// Static directory shared with the heatmap generator. The page shell,
	// the default combined image and every generated PNG live here.
	StaticDir string
	PageShell string

	PythonBin           string
	HeatmapScript       string
	HeatmapImagePattern string // fmt pattern keyed on K, e.g. heatmaps_resmodel_rank_%d.png
	DefaultHeatmapImage string
	GenerateTimeout     time.Duration // 0 means wait for the process to finish

	DepthMin  float64
	DepthMax  float64
	DepthStep float64

	RateLimit int // generation requests per minute per client, 0 disables
}

// Load 加载配置
func Load() *Config {
	return &Config{
		Port:                getEnv("PORT", ":3000"),
		Debug:               getEnvBool("DEBUG", false),
		StaticDir:           getEnv("STATIC_DIR", "./public"),
		PageShell:           getEnv("PAGE_SHELL", "template.html"),
		PythonBin:           getEnv("PYTHON_BIN", "python3"),
		HeatmapScript:       getEnv("HEATMAP_SCRIPT", "generate_heatmaps.py"),
		HeatmapImagePattern: getEnv("HEATMAP_IMAGE_PATTERN", "heatmaps_resmodel_rank_%d.png"),
		DefaultHeatmapImage: getEnv("DEFAULT_HEATMAP_IMAGE", "all_heatmaps.png"),
		GenerateTimeout:     getEnvDuration("GENERATE_TIMEOUT", 0),
		DepthMin:            getEnvFloat("DEPTH_MIN", 0),
		DepthMax:            getEnvFloat("DEPTH_MAX", 640),
		DepthStep:           getEnvFloat("DEPTH_STEP", 40),
		RateLimit:           getEnvInt("RATE_LIMIT", 30),
	}
}

// Validate checks the values that would otherwise break the depth catalog
// or the generator.
func (c *Config) Validate() error {
	if c.DepthStep <= 0 {
		return fmt.Errorf("DEPTH_STEP must be positive, got %g", c.DepthStep)
	}
	if c.DepthMin > c.DepthMax {
		return fmt.Errorf("DEPTH_MIN (%g) must not exceed DEPTH_MAX (%g)", c.DepthMin, c.DepthMax)
	}
	if c.HeatmapScript == "" {
		return errors.New("HEATMAP_SCRIPT must be set")
	}
	if c.GenerateTimeout < 0 {
		return errors.New("GENERATE_TIMEOUT must not be negative")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func getEnvFloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return def
	}
	return v
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
