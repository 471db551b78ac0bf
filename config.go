package flipbook

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// SpringConfig holds the damped-spring constants of the smoothing filter.
type SpringConfig struct {
	Stiffness float64 `yaml:"stiffness" validate:"gt=0"`
	Damping   float64 `yaml:"damping" validate:"gt=0"`
	Mass      float64 `yaml:"mass" validate:"gt=0"`
	RestDelta float64 `yaml:"restDelta" validate:"gt=0"`
	RestSpeed float64 `yaml:"restSpeed" validate:"gt=0"`
}

// Geometry describes the on-screen book. Angles are in degrees, lengths in
// pixels.
type Geometry struct {
	Width       float64 `yaml:"width" validate:"gt=0"`
	Height      float64 `yaml:"height" validate:"gt=0"`
	Perspective float64 `yaml:"perspective" validate:"gt=0"`
	TiltX       float64 `yaml:"tiltX" validate:"gte=-45,lte=45"`
	MaxTiltZ    float64 `yaml:"maxTiltZ" validate:"gte=-45,lte=45"`
	HitMargin   float64 `yaml:"hitMargin" validate:"gte=0"`
}

// Config is fixed at construction; a Book never reconfigures itself.
type Config struct {
	PageCount         int          `yaml:"pageCount" validate:"gte=1,lte=1024"`
	ScrollSensitivity float64      `yaml:"scrollSensitivity" validate:"gt=0"`
	DragSensitivity   float64      `yaml:"dragSensitivity" validate:"gt=0"`
	WheelUnit         float64      `yaml:"wheelUnit" validate:"gt=0"`
	DragDeadZone      float64      `yaml:"dragDeadZone" validate:"gte=0"`
	Spring            SpringConfig `yaml:"spring"`
	Geometry          Geometry     `yaml:"geometry"`
}

// Default configuration values.
const (
	DefaultPageCount         = 16
	DefaultScrollSensitivity = 0.005
	DefaultDragSensitivity   = 0.02

	// DefaultWheelUnit converts one device wheel notch into scroll units
	// (roughly the pixel delta a browser reports per notch).
	DefaultWheelUnit = 100

	// DefaultDragDeadZone matches the usual pan threshold of pointer
	// gesture recognizers.
	DefaultDragDeadZone = 3.0
)

// DefaultConfig returns the standard 16-page book.
func DefaultConfig() Config {
	return Config{
		PageCount:         DefaultPageCount,
		ScrollSensitivity: DefaultScrollSensitivity,
		DragSensitivity:   DefaultDragSensitivity,
		WheelUnit:         DefaultWheelUnit,
		DragDeadZone:      DefaultDragDeadZone,
		Spring: SpringConfig{
			Stiffness: 200,
			Damping:   30,
			Mass:      0.8,
			RestDelta: 0.001,
			RestSpeed: 0.01,
		},
		Geometry: Geometry{
			Width:       300,
			Height:      440,
			Perspective: 1500,
			TiltX:       10,
			MaxTiltZ:    2,
			HitMargin:   160,
		},
	}
}

// TotalSteps is the length of the progress domain: front cover, every page,
// back cover.
func (c Config) TotalSteps() float64 {
	return float64(c.PageCount + 2)
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func configValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New(validator.WithRequiredStructEnabled())
	})
	return validateInst
}

// Validate checks every field against its documented range and returns an
// error naming each offending field.
func (c Config) Validate() error {
	err := configValidator().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("flipbook: validate config: %w", err)
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("flipbook: invalid config: %s", strings.Join(parts, "; "))
}
