package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/flipbook"
)

// Window configures the desktop host.
type Window struct {
	Title         string `yaml:"title"`
	Width         int    `yaml:"width" validate:"gte=320"`
	Height        int    `yaml:"height" validate:"gte=240"`
	TPS           int    `yaml:"tps" validate:"gte=0,lte=240"`
	Resizable     bool   `yaml:"resizable"`
	Fullscreen    bool   `yaml:"fullscreen"`
	ShowFPS       bool   `yaml:"showFPS"`
	ScreenshotDir string `yaml:"screenshotDir"`
}

// Bookmark configures persistence of the reading position.
type Bookmark struct {
	Enabled bool   `yaml:"enabled"`
	AppName string `yaml:"appName" validate:"required_if=Enabled true"`
}

// Log configures the application logger.
type Log struct {
	Level string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error"`
	Debug bool   `yaml:"debug"`
}

// File is the top-level layout of a flipbook YAML config file.
type File struct {
	Book     flipbook.Config `yaml:"book"`
	Window   Window          `yaml:"window"`
	Bookmark Bookmark        `yaml:"bookmark"`
	Log      Log             `yaml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() *File {
	return &File{
		Book: flipbook.DefaultConfig(),
		Window: Window{
			Title:         "flipbook",
			Width:         800,
			Height:        700,
			ScreenshotDir: "screenshots",
		},
		Bookmark: Bookmark{Enabled: true, AppName: "flipbook"},
		Log:      Log{Level: "info"},
	}
}

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// Load reads and validates the config file at path. Keys missing from the
// file keep their defaults; unknown keys are rejected.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewParseError(path, 0, err)
	}
	return Parse(path, data)
}

// Parse decodes data over the defaults and validates the result. path is
// only used in error messages.
func Parse(path string, data []byte) (*File, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, NewParseError(path, extractLine(err), err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the book section with flipbook's own rules and the host
// sections with the struct tags above.
func Validate(cfg *File) error {
	if err := cfg.Book.Validate(); err != nil {
		return NewValidationError("book", err.Error(), err)
	}
	sections := []struct {
		name  string
		value any
	}{
		{"window", cfg.Window},
		{"bookmark", cfg.Bookmark},
		{"log", cfg.Log},
	}
	for _, sec := range sections {
		name := sec.name
		if err := validatorInstance().Struct(sec.value); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				fe := verrs[0]
				return NewValidationError(fmt.Sprintf("%s.%s", name, fe.Field()),
					fmt.Sprintf("failed %q (value %v)", fe.Tag(), fe.Value()), err)
			}
			return NewValidationError(name, err.Error(), err)
		}
	}
	return nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
