package experiment

import (
	"bytes"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/limaJavier/minorembed/pkg/sat"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const DefaultOutputDir = "outputs"

type Config struct {
	OutputDir   string            `mapstructure:"output_dir"`
	MetricsFile string            `mapstructure:"metrics_file"`
	Engines     map[string]string `mapstructure:"engines" validate:"omitempty,dive,keys,oneof=kissat cadical cryptominisat minisat glucosesimp,endkeys,required"`
	Experiments []Experiment      `mapstructure:"experiments" validate:"required,min=1,unique=ID,dive"`
}

// Experiment describes one embedding attempt of a batch
type Experiment struct {
	ID                        int     `mapstructure:"id" json:"id" validate:"gte=0"`
	LogicalGraph              string  `mapstructure:"logical_graph" json:"logical_graph" validate:"required"`
	PhysicalGraph             string  `mapstructure:"physical_graph" json:"physical_graph" validate:"required"`
	TimeoutSeconds            float64 `mapstructure:"timeout_seconds" json:"timeout_seconds,omitempty" validate:"gte=0"`
	AllowSharedPhysicalQubits bool    `mapstructure:"allow_shared_physical_qubits" json:"allow_shared_physical_qubits"`
	Engine                    string  `mapstructure:"engine" json:"engine" validate:"oneof=gini gophersat kissat cadical cryptominisat minisat glucosesimp"`
}

// Timeout converts TimeoutSeconds; zero means no deadline
func (experiment Experiment) Timeout() time.Duration {
	return time.Duration(experiment.TimeoutSeconds * float64(time.Second))
}

var validate = validator.New()

func LoadConfigFile(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "cannot read config file")
	}
	return LoadConfig(bytes.NewReader(content))
}

// LoadConfig decodes a YAML batch description, fills in defaults and validates it
func LoadConfig(r io.Reader) (Config, error) {
	var raw map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, errors.New("config is empty")
		}
		return Config{}, errors.Wrap(err, "cannot parse config")
	}

	var config Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &config,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, errors.Wrap(err, "invalid config")
	}

	//** Defaults
	if config.OutputDir == "" {
		config.OutputDir = DefaultOutputDir
	}
	for i := range config.Experiments {
		if config.Experiments[i].ID == 0 {
			config.Experiments[i].ID = i + 1
		}
		if config.Experiments[i].Engine == "" {
			config.Experiments[i].Engine = sat.DefaultSolver
		}
	}

	if err := validate.Struct(config); err != nil {
		return Config{}, errors.Wrap(err, "invalid config")
	}
	return config, nil
}
